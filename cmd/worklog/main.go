package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	txStdLib "github.com/Thiht/transactor/stdlib"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/benjamonnguyen/worklog-go"
	"github.com/benjamonnguyen/worklog-go/sqlite"
	"github.com/benjamonnguyen/worklog-go/tracker"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalFlags struct {
	prod bool
	user string
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:           "worklog",
		Short:         "Track tickets, learning and daily progress with a focus timer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&flags.prod, "prod", false, "load .env instead of .env.dev")
	root.PersistentFlags().StringVar(&flags.user, "user", "", "act as this user id (overrides "+worklog.UserIDKey+")")

	root.AddCommand(newTimerCmd(&flags))
	root.AddCommand(newTicketCmd(&flags))
	root.AddCommand(newLearningCmd(&flags))
	root.AddCommand(newProgressCmd(&flags))
	root.AddCommand(newDashboardCmd(&flags))
	root.AddCommand(newReportCmd(&flags))
	root.AddCommand(newProfileCmd(&flags))
	return root
}

// app is the wiring shared by the record commands.
type app struct {
	cfg     worklog.Config
	l       *log.Logger
	db      *sql.DB
	svc     *tracker.Service
	userID  worklog.UserID
	printer printer
}

func loadConfig(flags *globalFlags) (worklog.Config, *log.Logger, error) {
	cfg, err := worklog.LoadConfig(flags.prod)
	if err != nil {
		return worklog.Config{}, nil, err
	}
	if flags.user != "" {
		cfg.UserID = worklog.UserID(flags.user)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           cfg.LogLevel,
		ReportTimestamp: true,
		Prefix:          "worklog",
	})
	return cfg, logger, nil
}

func openApp(cmd *cobra.Command, flags *globalFlags) (*app, error) {
	cfg, logger, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}
	if err := cfg.RequireUser(); err != nil {
		return nil, err
	}

	logger.Debug("opening db", "url", cfg.DatabaseURL)
	db, err := sqlite.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	tx, dbGetter := txStdLib.NewTransactor(db, txStdLib.NestedTransactionsSavepoints)
	svc := tracker.NewService(tracker.Repos{
		Tickets:  sqlite.NewTicketRepo(dbGetter, logger),
		Learning: sqlite.NewLearningLogRepo(dbGetter, logger),
		Progress: sqlite.NewDailyProgressRepo(dbGetter, logger),
		Profiles: sqlite.NewProfileRepo(dbGetter, logger),
	}, tx, logger)

	uid, _ := worklog.StaticUser(cfg.UserID).CurrentUser(cmd.Context())
	return &app{
		cfg:     cfg,
		l:       logger,
		db:      db,
		svc:     svc,
		userID:  uid,
		printer: newPrinter(cmd.OutOrStdout()),
	}, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.l.Error("failed to close db", "err", err)
	}
}

// withApp adapts a record command body to cobra, opening and closing the app around it.
func withApp(flags *globalFlags, run func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, flags)
		if err != nil {
			return err
		}
		defer a.Close()
		return run(cmd, args, a)
	}
}
