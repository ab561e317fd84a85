package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/suitability-engine/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "suitability-engine",
	Short: "Conversational suitability and sustainability-preference capture",
	Long:  "Runs the staged suitability questionnaire: client profile, consents, SDR education, sustainability preferences, validation, and report generation.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
