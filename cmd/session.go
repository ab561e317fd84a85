package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sells-group/suitability-engine/internal/model"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Create and drive sessions from the terminal",
}

var sessionNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new session",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		s := model.NewSession(time.Now())
		resp := env.Engine.Start(s)
		if err := env.Store.Save(cmd.Context(), s); err != nil {
			return err
		}

		fmt.Println("session:", s.ID)
		for _, m := range resp.Messages {
			fmt.Println(m)
		}
		return nil
	},
}

var sessionTurnCmd = &cobra.Command{
	Use:   "turn <session-id> <text>",
	Short: "Send a client message to a session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		s, err := env.Store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		resp, err := env.Engine.HandleClientTurn(cmd.Context(), s, args[1])
		if err != nil {
			return err
		}
		if err := env.Store.Save(cmd.Context(), s); err != nil {
			return err
		}

		fmt.Println("stage:", s.Stage)
		for _, m := range resp.Messages {
			fmt.Println(m)
		}
		return nil
	},
}

var sessionShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Print a session as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		s, err := env.Store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	sessionCmd.AddCommand(sessionNewCmd, sessionTurnCmd, sessionShowCmd)
	rootCmd.AddCommand(sessionCmd)
}
