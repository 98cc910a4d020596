package cmd

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"asset-audit/core/config"
	"asset-audit/core/database"
	"asset-audit/core/logger"
	"asset-audit/feature/audit"
	"asset-audit/feature/audit/models"
	"asset-audit/feature/inventory"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	auditRoom   string
	auditMethod string
)

// consoleNotifier renders session events for the terminal operator.
type consoleNotifier struct{}

func (consoleNotifier) RosterLoaded(roomID string, count int) {
	fmt.Printf("Loaded %d expected assets for room %s\n", count, roomID)
}

func (consoleNotifier) AssetFound(rec models.ScannedRecord) {
	fmt.Printf("  FOUND      %s  %s\n", rec.ID, rec.Description)
}

func (consoleNotifier) AssetMisplaced(rec models.ScannedRecord) {
	fmt.Printf("  MISPLACED  %s  %s (assigned to %s)\n", rec.ID, rec.Description, rec.AssignedRoomID)
}

func (consoleNotifier) AssetUnexpected(rec models.ScannedRecord) {
	fmt.Printf("  UNEXPECTED %s\n", rec.ID)
}

func (consoleNotifier) AlreadyScanned(identifier string) {
	fmt.Printf("  duplicate  %s\n", identifier)
}

func (consoleNotifier) Progress(found, total int) {
	fmt.Printf("  %d of %d assets found\n", found, total)
}

func (consoleNotifier) SessionStarted(roomID string, method models.Method) {
	fmt.Printf("Audit started for room %s (%s). Type identifiers, or 'stop' / 'cancel'.\n", roomID, method)
}

func (consoleNotifier) SessionStopped(missingCount int) {
	fmt.Printf("Audit completed, %d assets marked as missing.\n", missingCount)
}

func (consoleNotifier) SessionCancelled() {
	fmt.Println("Audit cancelled. No assets were changed.")
}

func (consoleNotifier) Warning(message string) {
	fmt.Println("! " + message)
}

func (consoleNotifier) Error(message string) {
	fmt.Println("!! " + message)
}

// auditCmd runs a room audit interactively from the terminal.
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Run a room audit from the terminal",
	Long: `Runs an interactive audit session against the inventory database.
Scanned identifiers are typed (or piped) on stdin, one per line.`,
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

		svc := inventory.NewService(db, logg, cfg.Inventory)
		gateway := audit.NewCachedResolver(inventory.NewGateway(svc),
			time.Duration(cfg.Audit.ResolverTTLSeconds)*time.Second)
		manager := audit.NewManager(cfg.Audit, gateway, nil, logg, consoleNotifier{})

		method := models.Method(auditMethod)
		if !method.Valid() {
			return fmt.Errorf("unknown audit method %q", auditMethod)
		}

		if err := manager.Start(cmd.Context(), auditRoom, method); err != nil {
			return err
		}

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			switch line {
			case "":
				continue
			case "stop":
				return finishAudit(manager, true)
			case "cancel":
				_, err := manager.Cancel()
				return err
			default:
				if err := manager.Scan(line); err != nil {
					fmt.Println("! " + err.Error())
				}
			}
		}
		if err := scanner.Err(); err != nil {
			logg.Warn("Input closed with error", zap.Error(err))
		}

		// Stdin ended (piped input): finalize like an explicit stop.
		return finishAudit(manager, true)
	},
}

func finishAudit(manager *audit.Manager, markMissing bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	summary, err := manager.Stop(ctx, markMissing)
	if err != nil {
		return err
	}

	fmt.Printf("\nRoom %s: %d expected, %d found, %d missing, %d scanned\n",
		summary.RoomID, summary.Expected, summary.Found,
		len(summary.MissingIDs), len(summary.Scanned))
	for _, id := range summary.MissingIDs {
		fmt.Printf("  missing: %s\n", id)
	}
	return nil
}

func init() {
	auditCmd.Flags().StringVarP(&auditRoom, "room", "r", "", "room to audit (required)")
	auditCmd.Flags().StringVarP(&auditMethod, "method", "m", "manual", "input method (manual, barcode, rfid, qrcode)")
	_ = auditCmd.MarkFlagRequired("room")
	RootCmd.AddCommand(auditCmd)
}
