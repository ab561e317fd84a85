package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/suitability-engine/internal/model"
	"github.com/sells-group/suitability-engine/internal/validate"
)

var validateAll bool

var validateCmd = &cobra.Command{
	Use:   "validate [session-id]",
	Short: "Run the regulatory completeness battery over sessions",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		var sessions []model.Session
		if validateAll {
			sessions, err = env.Store.List(cmd.Context())
			if err != nil {
				return err
			}
		} else {
			if len(args) != 1 {
				return fmt.Errorf("a session id is required unless --all is set")
			}
			s, err := env.Store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			sessions = []model.Session{*s}
		}

		type outcome struct {
			id     string
			stage  string
			result validate.Result
		}
		outcomes := make([]outcome, len(sessions))

		var g errgroup.Group
		g.SetLimit(8)
		for i := range sessions {
			g.Go(func() error {
				s := sessions[i]
				outcomes[i] = outcome{id: s.ID, stage: s.Stage, result: validate.Validate(&s)}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		invalid := 0
		for _, o := range outcomes {
			if o.result.Valid {
				fmt.Printf("%s  %-14s valid\n", o.id, o.stage)
				continue
			}
			invalid++
			fmt.Printf("%s  %-14s %d issue(s)\n", o.id, o.stage, len(o.result.Issues))
			for _, issue := range o.result.Issues {
				fmt.Println("  -", issue)
			}
		}
		fmt.Printf("%d session(s) checked, %d invalid\n", len(outcomes), invalid)
		return nil
	},
}

func init() {
	validateCmd.Flags().BoolVar(&validateAll, "all", false, "validate every stored session")
	rootCmd.AddCommand(validateCmd)
}
