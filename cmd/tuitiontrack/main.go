package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tuitiontrack/internal/config"
	"tuitiontrack/internal/service"
	"tuitiontrack/internal/storage/sqlite"
	"tuitiontrack/pkg/logging"
)

var (
	store *sqlite.SQLiteStore
	svc   *service.FeeService
)

var rootCmd = &cobra.Command{
	Use:   "tuitiontrack",
	Short: "Track tuition students and their monthly fee payments",
	Long: `tuitiontrack is a record-keeping tool for tuition teachers:
add students, record monthly fee payments, see who still owes for the
current month, and export the payment ledger as CSV.

The database path defaults to ./data/tuition.db and can be overridden
with the DB_PATH environment variable (a .env file is honored).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Setup()

		cfg := config.Load()
		var err error
		store, err = sqlite.New(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		svc = service.NewFeeService(store)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if store != nil {
			store.Close()
		}
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
