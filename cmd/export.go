package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v2"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/suitability-engine/internal/model"
)

var (
	exportFormat string
	registerOut  string
)

var exportCmd = &cobra.Command{
	Use:   "export [session-id]",
	Short: "Export sessions as YAML or JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		var sessions []model.Session
		if len(args) == 1 {
			s, err := env.Store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			sessions = []model.Session{*s}
		} else {
			sessions, err = env.Store.List(cmd.Context())
			if err != nil {
				return err
			}
		}

		switch exportFormat {
		case "yaml":
			out, err := yaml.Marshal(sessions)
			if err != nil {
				return eris.Wrap(err, "export: marshal yaml")
			}
			fmt.Print(string(out))
		case "json":
			out, err := json.MarshalIndent(sessions, "", "  ")
			if err != nil {
				return eris.Wrap(err, "export: marshal json")
			}
			fmt.Println(string(out))
		default:
			return eris.Errorf("unknown export format %q", exportFormat)
		}
		return nil
	},
}

// exportRegisterCmd writes the compliance register: one row per session
// with its guardrail triggers, consents, and report status, for the
// adviser oversight workbook.
var exportRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Export the compliance register workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		sessions, err := env.Store.List(cmd.Context())
		if err != nil {
			return err
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Sessions")
		if err != nil {
			return eris.Wrap(err, "export: add sheet")
		}

		header := sheet.AddRow()
		for _, h := range []string{
			"Session", "Stage", "Client Type", "Risk", "Capacity",
			"Preference Level", "Labels", "Guardrails", "Data Consent",
			"Summary Confirmed", "Report",
		} {
			header.AddCell().Value = h
		}

		for _, s := range sessions {
			row := sheet.AddRow()
			row.AddCell().Value = s.ID
			row.AddCell().Value = s.Stage
			row.AddCell().Value = s.Data.ClientProfile.ClientType
			row.AddCell().SetInt(s.Data.ClientProfile.RiskTolerance)
			row.AddCell().Value = s.Data.ClientProfile.CapacityForLoss
			row.AddCell().Value = s.Data.Preferences.PreferenceLevel
			row.AddCell().Value = joinLabels(s.Data.Preferences.Labels)
			row.AddCell().Value = joinGuardrails(s.Data.GuardrailTriggers)
			row.AddCell().Value = fmt.Sprintf("%t", s.Data.Consent.DataProcessing.Granted)
			row.AddCell().Value = fmt.Sprintf("%t", s.Data.SummaryConfirmation.ClientSummaryConfirmed)
			row.AddCell().Value = s.Data.Report.Status
		}

		if err := file.Save(registerOut); err != nil {
			return eris.Wrapf(err, "export: save %s", registerOut)
		}
		fmt.Fprintf(os.Stderr, "wrote %d session(s) to %s\n", len(sessions), registerOut)
		return nil
	},
}

func joinLabels(labels []model.PreferenceLabel) string {
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		names = append(names, l.Name)
	}
	return strings.Join(names, "; ")
}

func joinGuardrails(triggers []model.GuardrailTrigger) string {
	parts := make([]string, 0, len(triggers))
	for _, g := range triggers {
		status := "pending"
		switch {
		case g.Confirmed:
			status = "confirmed"
		case g.Resolved:
			status = "resolved"
		}
		parts = append(parts, g.Type+" ("+status+")")
	}
	return strings.Join(parts, "; ")
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "yaml", "output format: yaml or json")
	exportRegisterCmd.Flags().StringVar(&registerOut, "out", "register.xlsx", "output workbook path")
	exportCmd.AddCommand(exportRegisterCmd)
	rootCmd.AddCommand(exportCmd)
}
