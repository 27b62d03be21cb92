package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/etl"
	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/logging"
	"github.com/Blejzer/ExtractionAndSorting-sub000/internal/xlsx"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <workbook.xlsx>",
		Short: "Print the workbook's sheets and discovered tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			out := cmd.OutOrStdout()

			records, err := xlsx.CollectCustomRecords(path)
			if err != nil {
				return err
			}
			if !records.Empty() {
				fmt.Fprintf(out, "custom XML payload: %d events, %d participants, %d snapshots\n",
					len(records.Events), len(records.Participants), len(records.ParticipantEvents))
				return nil
			}

			sheets, err := xlsx.ListSheets(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "sheets (%d):\n", len(sheets))
			for _, sheet := range sheets {
				fmt.Fprintf(out, "  %s\n", sheet.Title)
			}

			tables, err := xlsx.ListTables(path)
			if err != nil {
				return err
			}
			sortTables(tables)
			fmt.Fprintf(out, "tables (%d):\n", len(tables))
			for _, t := range tables {
				fmt.Fprintf(out, "  %-24s %s!%s\n", t.Name, t.SheetTitle, t.Ref)
			}
			return nil
		},
	}
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <workbook.xlsx>",
		Short: "Check the workbook against the structural contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			out := cmd.OutOrStdout()

			cache := xlsx.NewWorkbookCache(path)
			defer cache.Clear()

			structure, err := a.pipeline.ValidateStructure(path, cache)
			if err != nil {
				return err
			}
			if structure.CustomXML {
				fmt.Fprintf(out, "OK (custom XML payload: %d events, %d participants, %d snapshots)\n",
					structure.Events, structure.Participants, structure.ParticipantEvents)
				return nil
			}
			if structure.OK() {
				fmt.Fprintf(out, "OK (%d tables discovered)\n", len(structure.Tables))
				return nil
			}

			fmt.Fprintf(out, "INVALID: %d missing elements\n", len(structure.Missing))
			for _, m := range structure.Missing {
				fmt.Fprintf(out, "  missing %s\n", m)
			}
			return structure.Err()
		},
	}
}

func newPreviewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "preview <workbook.xlsx>",
		Short: "Parse the workbook and print the merged attendees without writing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, runID := logging.NewRunContext(cmd.Context())
			log := logging.FromContext(ctx)
			log.Debug("preview started", "run_id", runID)

			preview, err := a.pipeline.ParseForPreview(ctx, args[0])
			if err != nil {
				return err
			}
			return printPreview(cmd, a, preview)
		},
	}
}

func printPreview(cmd *cobra.Command, a *app, preview *etl.Preview) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	existing, err := a.pipeline.Events.FindByEID(ctx, preview.Event.EID)
	if err != nil {
		return err
	}
	status := "NEW"
	if existing != nil {
		status = "EXIST"
	}
	e := preview.Event
	fmt.Fprintf(out, "[%s] event %s %q %s..%s %s\n", status, e.EID, e.Title,
		e.StartDate.Format("2006-01-02"), e.EndDate.Format("2006-01-02"), e.Place)

	fmt.Fprintf(out, "attendees (%d):\n", len(preview.Attendees))
	for _, att := range preview.Attendees {
		if att.PID != "" {
			fmt.Fprintf(out, "  [EXIST %s] %s (%s)\n", att.PID, att.Name, att.RepresentingCountry)
		} else {
			fmt.Fprintf(out, "  [NEW]        %s (%s)\n", att.Name, att.RepresentingCountry)
		}
	}

	if len(preview.Skipped) > 0 {
		fmt.Fprintf(out, "skipped (%d):\n", len(preview.Skipped))
		for _, row := range preview.Skipped {
			fmt.Fprintf(out, "  %s row %d %s: %s\n", row.Table, row.Row, row.Name, row.Reason)
		}
	}
	return nil
}

func newCommitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "commit <workbook.xlsx>",
		Short: "Parse the workbook and persist the event, participants, and snapshots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, runID := logging.NewRunContext(cmd.Context())
			out := cmd.OutOrStdout()
			log := logging.FromContext(ctx)
			log.Debug("commit started", "run_id", runID)

			preview, err := a.pipeline.ParseForPreview(ctx, args[0])
			if err != nil {
				return err
			}
			result, err := a.pipeline.Commit(ctx, preview)
			if errors.Is(err, etl.ErrDuplicateEvent) {
				return fmt.Errorf("event %s was already imported; nothing written", preview.Event.EID)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "committed event %s: %d created, %d updated, %d snapshots",
				result.Event.EID, len(result.Created), len(result.Updated), len(result.Snapshots))
			if n := len(result.Skipped) + len(preview.Skipped); n > 0 {
				fmt.Fprintf(out, ", %d skipped", n)
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}

func newPhonesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "phones",
		Short: "Renormalize stored phone numbers, clearing corrupt values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, _ := logging.NewRunContext(cmd.Context())

			result, err := a.pipeline.RenormalizePhones(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "scanned %d phones: %d fixed, %d cleared\n",
				result.Scanned, result.Fixed, result.Cleared)
			return nil
		},
	}
}

func newResetCmd(a *app) *cobra.Command {
	var confirmed bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Truncate every collection in the data store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return fmt.Errorf("reset is destructive; re-run with --yes to confirm")
			}
			if err := a.files.Reset(cmd.Context()); err != nil {
				return err
			}
			a.pipeline.Reset()
			fmt.Fprintln(cmd.OutOrStdout(), "all collections truncated")
			return nil
		},
	}
	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirm the destructive reset")
	return cmd
}

// sortTables orders table refs by sheet then name for stable output.
func sortTables(tables []xlsx.TableRef) {
	sort.Slice(tables, func(i, j int) bool {
		if tables[i].SheetTitle != tables[j].SheetTitle {
			return tables[i].SheetTitle < tables[j].SheetTitle
		}
		return tables[i].Name < tables[j].Name
	})
}
