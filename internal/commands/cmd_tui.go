package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/hirewatch/internal/core/config"
	"github.com/colonyops/hirewatch/internal/printer"
	"github.com/colonyops/hirewatch/internal/tui"
	"github.com/colonyops/hirewatch/pkg/profiler"
	"github.com/colonyops/hirewatch/pkg/utils"
)

// errNotTerminal is returned when the dashboard is started without a TTY.
var errNotTerminal = errors.New("hirewatch needs an interactive terminal; use 'hirewatch toast' for headless output")

type TuiCmd struct {
	flags    *Flags
	simulate time.Duration
	isTTY    func() bool
	stdout   io.Writer
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{
		flags:  flags,
		stdout: os.Stdout,
		isTTY: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
		},
	}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "debug-port",
			Usage:       "serve pprof and Prometheus metrics on 127.0.0.1:<port>",
			Sources:     cli.EnvVars("HIREWATCH_DEBUG_PORT"),
			Destination: &cmd.flags.DebugPort,
		},
		&cli.DurationFlag{
			Name:        "simulate",
			Usage:       "emit a simulated pipeline event at this interval (0 disables)",
			Sources:     cli.EnvVars("HIREWATCH_SIMULATE"),
			Destination: &cmd.simulate,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	if !cmd.isTTY() {
		return errNotTerminal
	}

	// The alternate screen owns the terminal until the program exits, so
	// status lines are held and printed afterwards.
	held := &utils.DeferredWriter{}
	out := printer.New(held)
	defer func() {
		if err := held.Flush(cmd.stdout); err != nil {
			log.Error().Err(err).Msg("failed to flush deferred output")
		}
	}()

	var notices []string
	warnings := configWarnings(cmd.flags.Config)

	if cmd.flags.DebugPort > 0 {
		srv := profiler.New(cmd.flags.DebugPort, cmd.flags.Registry)
		if err := srv.Start(ctx); err != nil {
			return fmt.Errorf("start debug server: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown debug server")
				out.Warnf("debug server did not shut down cleanly: %v", err)
			}
		}()

		log.Info().
			Str("url", fmt.Sprintf("http://%s/debug/pprof/", srv.Addr())).
			Msg("debug endpoint available")
		out.Infof("Debug server was listening on http://%s", srv.Addr())
		notices = append(notices, fmt.Sprintf("Debug server listening on %s", srv.Addr()))
	}

	m := tui.New(cmd.flags.Config, tui.Options{
		Metrics:  cmd.flags.Metrics,
		Simulate: cmd.simulate,
		Warnings: warnings,
		Notices:  notices,
	})
	defer m.Close()

	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}

// configWarnings formats the advisory config warnings as toast titles.
func configWarnings(cfg *config.Config) []string {
	if cfg == nil {
		return nil
	}

	var titles []string
	for _, w := range cfg.Warnings() {
		titles = append(titles, fmt.Sprintf("config %s.%s: %s", w.Category, w.Item, w.Message))
	}
	return titles
}
