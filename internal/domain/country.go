package domain

import "fmt"

// Country is a reference entry mapping a stable code to a display name.
// Codes look like "C033"; new codes are allocated sequentially when an
// import encounters a previously unseen country.
type Country struct {
	CID  string `json:"cid" validate:"required,len=4"`
	Name string `json:"country" validate:"required,min=2"`
}

// Validate checks the reference entry shape.
func (c *Country) Validate() error {
	return structErr(fmt.Sprintf("country %q", c.CID), c)
}

// ToDoc serializes the country for the reference store.
func (c *Country) ToDoc() Doc {
	return Doc{"cid": c.CID, "country": c.Name}
}

// CountryFromDoc hydrates a Country from its stored document.
func CountryFromDoc(doc Doc) (*Country, error) {
	if doc == nil {
		return nil, fmt.Errorf("nil country document")
	}
	c := &Country{
		CID:  docString(doc, "cid"),
		Name: docString(doc, "country"),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
