// Package cli wires config, logging, storage and the task store behind a
// cobra command tree. With no subcommand the root runs the terminal UI.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskpad/internal/config"
	"github.com/sandeepkv93/taskpad/internal/logging"
	"github.com/sandeepkv93/taskpad/internal/storage"
	"github.com/sandeepkv93/taskpad/internal/store"
	"github.com/sandeepkv93/taskpad/internal/update"
)

// app holds the dependencies opened for one command invocation.
type app struct {
	cfg       config.Config
	logger    *log.Logger
	logCloser io.Closer
	store     *store.Store
	now       func() time.Time
	startedAt time.Time
}

type rootOptions struct {
	cfgFile string
	verbose bool
	now     func() time.Time
	// runTUI is replaced in tests.
	runTUI func(update.Model) error
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&rootOptions{now: time.Now, runTUI: runProgram})
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	a := &app{now: opts.now}

	root := &cobra.Command{
		Use:   "taskpad",
		Short: "taskpad - a personal task tracker",
		Long: `taskpad keeps a personal list of tasks with due dates and priorities.

Run without arguments for the interactive dashboard, or use the
subcommands to script it from the shell.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd, opts)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			m := update.NewModel(a.store, update.Options{
				Keys:   a.cfg.Keys,
				Filter: a.cfg.Filter(),
				Sort:   a.cfg.Sort(),
				Now:    a.now,
				Logger: a.logger,
			})
			return opts.runTUI(m)
		},
	}
	root.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "", "config file path")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr at debug level")

	root.AddCommand(
		newAddCmd(a),
		newListCmd(a),
		newDoneCmd(a),
		newEditCmd(a),
		newRemoveCmd(a),
		newClearCmd(a),
		newMoveCmd(a),
		newStatsCmd(a),
		newThemeCmd(a),
	)
	return root
}

func (a *app) open(cmd *cobra.Command, opts *rootOptions) error {
	path, err := config.ResolvePath(opts.cfgFile)
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if opts.verbose {
		a.logger, err = logging.NewWriter(cmd.ErrOrStderr(), "debug")
		a.logCloser = io.NopCloser(nil)
	} else {
		a.logger, a.logCloser, err = logging.New(cfg.LogPath, cfg.LogLevel)
	}
	if err != nil {
		return err
	}

	gw, err := storage.Open(cfg.Backend, cfg.DataPath())
	if err != nil {
		return err
	}
	a.store, err = store.Open(cmd.Context(), gw, store.WithLogger(a.logger), store.WithClock(a.now))
	if err != nil {
		return errors.Join(err, gw.Close())
	}
	a.startedAt = time.Now()
	a.logger.Info("command start", "command", cmd.CommandPath(), "backend", cfg.Backend, "path", cfg.DataPath())
	return nil
}

func (a *app) close(cmd *cobra.Command) error {
	var errs []error
	if a.store != nil {
		err := a.store.Close(cmd.Context())
		if errors.Is(err, store.ErrPersist) {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: changes still not saved: %v\n", err)
			err = nil
		}
		if err != nil {
			errs = append(errs, err)
		}
		a.store = nil
	}
	if a.logger != nil {
		a.logger.Info("command end", "duration_ms", time.Since(a.startedAt).Milliseconds())
	}
	if a.logCloser != nil {
		errs = append(errs, a.logCloser.Close())
		a.logCloser = nil
	}
	return errors.Join(errs...)
}

func runProgram(m update.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
