package xlsx

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"strings"
)

// CustomRecords is the flattened content of a workbook's embedded custom
// XML payload: one field map per <event>, <participant>, and
// <participant_event> element. Field values are raw element text; typing
// happens downstream.
type CustomRecords struct {
	Events            []map[string]string
	Participants      []map[string]string
	ParticipantEvents []map[string]string
}

// Empty reports whether no records of any kind were found.
func (r *CustomRecords) Empty() bool {
	return r == nil ||
		len(r.Events)+len(r.Participants)+len(r.ParticipantEvents) == 0
}

type customItem struct {
	XMLName           xml.Name       `xml:"data"`
	Events            []customRecord `xml:"event"`
	Participants      []customRecord `xml:"participant"`
	ParticipantEvents []customRecord `xml:"participant_event"`
}

type customRecord struct {
	Fields []customField `xml:",any"`
}

type customField struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

func (r customRecord) toMap() map[string]string {
	m := make(map[string]string, len(r.Fields))
	for _, f := range r.Fields {
		m[f.XMLName.Local] = strings.TrimSpace(f.Value)
	}
	return m
}

// CollectCustomRecords reads every customXml/item*.xml part whose root is a
// <data> element and returns the embedded records. A workbook with no such
// parts, or whose items do not match the expected shape, yields nil;
// callers then fall back to table discovery. Only failing to open the
// container at all is an error.
func CollectCustomRecords(filePath string) (*CustomRecords, error) {
	zr, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var out CustomRecords
	for _, f := range zr.File {
		if !strings.HasPrefix(f.Name, "customXml/item") || !strings.HasSuffix(f.Name, ".xml") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			continue
		}

		var item customItem
		if err := xml.Unmarshal(data, &item); err != nil {
			continue
		}
		for _, rec := range item.Events {
			out.Events = append(out.Events, rec.toMap())
		}
		for _, rec := range item.Participants {
			out.Participants = append(out.Participants, rec.toMap())
		}
		for _, rec := range item.ParticipantEvents {
			out.ParticipantEvents = append(out.ParticipantEvents, rec.toMap())
		}
	}
	if out.Empty() {
		return nil, nil
	}
	return &out, nil
}
