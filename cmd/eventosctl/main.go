// eventosctl is the operations CLI: migrations, availability exports and
// bulk auto-scheduling without going through the HTTP surface.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fascinar/eventos-api/internal/config"
	"github.com/fascinar/eventos-api/internal/database"
	"github.com/fascinar/eventos-api/internal/repository"
	"github.com/fascinar/eventos-api/internal/service"
)

type app struct {
	cfg    config.Config
	db     *sql.DB
	logger *zap.Logger
	ctx    context.Context
}

var a *app

func main() {
	rootCmd := &cobra.Command{
		Use:   "eventosctl",
		Short: "Operations CLI for the event staffing service",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a != nil {
				if a.logger != nil {
					_ = a.logger.Sync()
				}
				if a.db != nil {
					_ = a.db.Close()
				}
			}
		},
	}

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(autoScheduleCmd())
	rootCmd.AddCommand(statsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initApp() error {
	_ = godotenv.Load()
	a = &app{cfg: config.Load(), ctx: context.Background()}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.logger = logger

	db, err := database.Open(a.cfg.DBUser, a.cfg.DBPass, a.cfg.DBHost, a.cfg.DBPort, a.cfg.DBName)
	if err != nil {
		return fmt.Errorf("database connect: %w", err)
	}
	a.db = db
	return nil
}

func adminService() *service.AdminAgg {
	events := repository.NewEventRepo(a.db)
	slots := repository.NewStaffSlotRepo(a.db)
	availability := repository.NewAvailabilityRepo(a.db)
	return service.NewAdminAgg(events, availability, slots, a.logger)
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, _ := cmd.Flags().GetString("source")
			if err := database.Migrate(source, a.cfg.DBUser, a.cfg.DBPass, a.cfg.DBHost, a.cfg.DBPort, a.cfg.DBName); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Println("migrations applied")
			return nil
		},
	}
	cmd.Flags().String("source", "file://migrations", "Migration source URL")
	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <event_id>",
		Short: "Export an event's staff availability breakdown as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("event_id must be a number: %w", err)
			}
			out, _ := cmd.Flags().GetString("out")

			csv, err := adminService().ExportEventAvailabilities(a.ctx, eventID)
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				fmt.Print(csv)
				return nil
			}
			if err := os.WriteFile(out, []byte(csv), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Printf("wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().String("out", "-", "Output file, - for stdout")
	return cmd
}

func autoScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autoschedule <event_id>",
		Short: "Bulk-schedule available staff onto an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("event_id must be a number: %w", err)
			}
			maxStaff, _ := cmd.Flags().GetInt("max")

			n, err := adminService().AutoScheduleEvent(a.ctx, eventID, maxStaff, 0)
			if err != nil {
				return err
			}
			fmt.Printf("scheduled %d staff onto event %d\n", n, eventID)
			return nil
		},
	}
	cmd.Flags().Int("max", 10, "Maximum number of staff to schedule")
	return cmd
}

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the availability partition for upcoming events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			days, _ := cmd.Flags().GetInt("days")

			stats, err := adminService().GetEventStats(a.ctx, days)
			if err != nil {
				return err
			}
			if len(stats) == 0 {
				fmt.Println("no upcoming events in the window")
				return nil
			}
			for _, s := range stats {
				fmt.Printf("%4d  %-10s %-30s scheduled=%d available=%d unavailable=%d pending=%d\n",
					s.Event.ID, s.Event.DateOnly(), s.Event.Title,
					s.Scheduled, s.Available, s.Unavailable, s.Pending)
			}
			return nil
		},
	}
	cmd.Flags().Int("days", 30, "Window size in days from today")
	return cmd
}
