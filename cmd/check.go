package cmd

import (
	"fmt"
	"log"

	"asset-audit/core/config"
	"asset-audit/core/database"
	"asset-audit/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// requiredSchema lists the tables and columns the application depends on.
// Kept in sync with the inventory models.
var requiredSchema = map[string][]string{
	"buildings":   {"id", "name"},
	"floors":      {"id", "building_id", "level"},
	"rooms":       {"id", "floor_id", "name"},
	"assignees":   {"id", "name", "email"},
	"assets":      {"id", "room_id", "last_located", "status", "last_update"},
	"scan_events": {"id", "asset_id", "room_id", "status", "scanned_at"},
}

// checkCmd verifies the database schema without starting the server.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the inventory database schema",
	Long:  `Connects to the configured database and verifies every required table and column exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		problems, err := database.VerifySchema(db, requiredSchema)
		if err != nil {
			return err
		}
		if len(problems) > 0 {
			for _, p := range problems {
				logg.Warn("Schema problem", zap.String("problem", p))
			}
			return fmt.Errorf("schema verification failed with %d problems", len(problems))
		}

		logg.Info("Schema verified", zap.Int("tables", len(requiredSchema)))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(checkCmd)
}
