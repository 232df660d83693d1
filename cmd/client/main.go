package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iudanet/todosync/internal/client/app"
	"github.com/iudanet/todosync/internal/client/cli"
	"github.com/iudanet/todosync/internal/client/iocli"
	"github.com/iudanet/todosync/internal/config"
	"github.com/iudanet/todosync/internal/models"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// globalFlags флаги, общие для всех команд
type globalFlags struct {
	configPath     string
	serverURL      string
	dbPath         string
	logLevel       string
	passphrase     string
	passphraseFile string
}

// session клиент, собранный для одной команды
type session struct {
	app *app.App
	cli *cli.Cli
	io  iocli.IO
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, s := newRootCmd()
	err := root.ExecuteContext(ctx)
	if cerr := s.close(); cerr != nil {
		slog.Error("Failed to close database", "error", cerr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() (*cobra.Command, *session) {
	flags := &globalFlags{}
	s := &session{io: iocli.NewStdio()}

	root := &cobra.Command{
		Use:           "todosync",
		Short:         "Offline-first todo client with background sync",
		Version:       fmt.Sprintf("%s (built %s, commit %s)", Version, BuildDate, GitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !needsStorage(cmd) {
				return nil
			}
			return s.open(cmd.Context(), flags)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&flags.configPath, "config", "", "path to config file (default: todosync.yaml or $"+config.ConfigPathEnvVar+")")
	f.StringVar(&flags.serverURL, "server", "", "server URL, overrides server.url")
	f.StringVar(&flags.dbPath, "db", "", "path to local database, overrides storage.path")
	f.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	f.StringVar(&flags.passphrase, "passphrase", "", "token passphrase (not recommended, use $"+cli.PassphraseEnvVar+" or --passphrase-file)")
	f.StringVar(&flags.passphraseFile, "passphrase-file", "", "path to file containing the token passphrase")

	root.AddCommand(
		newTokenCmd(s, flags),
		newLogoutCmd(s),
		newStatusCmd(s),
		newAddCmd(s),
		newUpdateCmd(s),
		newDoneCmd(s),
		newDeleteCmd(s),
		newListCmd(s),
		newGetCmd(s),
		newSyncCmd(s),
		newRecordsCmd(s, "lists", "Manage shared lists", models.CollectionSharedLists),
		newRecordsCmd(s, "comments", "Manage todo comments", models.CollectionComments),
		newWatchCmd(s),
	)
	return root, s
}

// needsStorage встроенные help и completion не открывают базу
func needsStorage(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "help" || c.Name() == "completion" {
			return false
		}
	}
	return true
}

func (s *session) open(ctx context.Context, flags *globalFlags) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}
	if flags.serverURL != "" {
		cfg.Server.URL = flags.serverURL
	}
	if flags.dbPath != "" {
		cfg.Storage.Path = flags.dbPath
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	passphrase, err := cli.ReadPassphrase(s.io, cli.Passphrases{
		FromFile: flags.passphraseFile,
		FromArgs: flags.passphrase,
	}, false)
	if err != nil {
		return err
	}

	a, err := app.New(ctx, cfg, logger, app.WithIO(s.io), app.WithPassphrase(passphrase))
	if err != nil {
		return err
	}
	s.app = a
	s.cli = cli.New(s.io, a.Auth, a.Data, a.Engine)
	return nil
}

func (s *session) close() error {
	if s.app == nil {
		return nil
	}
	err := s.app.Close()
	s.app = nil
	return err
}

// newLogger пишет в stderr, чтобы не смешиваться с выводом команд
func newLogger(cfg config.LoggingConfig) (*slog.Logger, error) {
	level, err := config.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
}
