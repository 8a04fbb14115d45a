package commands

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/hirewatch/internal/core/clock"
	"github.com/colonyops/hirewatch/internal/core/notify"
	"github.com/colonyops/hirewatch/internal/core/toast"
	"github.com/colonyops/hirewatch/pkg/iojson"
)

// toastRequest is one toast to show. Durations use time.ParseDuration syntax.
type toastRequest struct {
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	Detail   string `json:"detail,omitempty"`
	Duration string `json:"duration,omitempty"` // empty uses the kind default
	Hold     string `json:"hold,omitempty"`     // pause right after showing, then resume
}

type parsedRequest struct {
	kind     notify.Kind
	title    string
	detail   string
	duration time.Duration
	hold     time.Duration
}

// lifecycleEvent is one JSON line of output.
type lifecycleEvent struct {
	Event       string `json:"event"`
	ElapsedMS   int64  `json:"elapsed_ms"`
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Reason      string `json:"reason,omitempty"`
	RemainingMS int64  `json:"remaining_ms"`
	Progress    string `json:"progress"`
}

type ToastCmd struct {
	flags *Flags
	clock clock.Clock
	input iojson.FileReader[[]toastRequest]

	kind     string
	detail   string
	duration time.Duration
	hold     time.Duration
}

// NewToastCmd creates the headless toast command.
func NewToastCmd(flags *Flags) *ToastCmd {
	return &ToastCmd{flags: flags, clock: clock.Real()}
}

// Register adds the toast command to the application.
func (cmd *ToastCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "toast",
		Usage:     "Run toasts headlessly and print their lifecycle as JSON lines",
		UsageText: "hirewatch toast [options] <title>\n   hirewatch toast -f requests.json",
		Description: `Shows one toast (or a batch read with --file) using the configured
durations, waits until every toast has expired, and prints one JSON line per
lifecycle event: shown, paused, resumed, removed.

--hold pauses the toast right after it is shown and resumes it after the
given duration, the same way hovering a toast does in the dashboard.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "kind",
				Aliases:     []string{"k"},
				Usage:       "notification kind (success, error, warning, info)",
				Value:       string(notify.KindInfo),
				Destination: &cmd.kind,
			},
			&cli.StringFlag{
				Name:        "detail",
				Aliases:     []string{"d"},
				Usage:       "secondary line shown under the title",
				Destination: &cmd.detail,
			},
			&cli.DurationFlag{
				Name:        "duration",
				Usage:       "lifetime override (defaults to the kind's configured duration)",
				Destination: &cmd.duration,
			},
			&cli.DurationFlag{
				Name:        "hold",
				Usage:       "pause the toast for this long right after showing it",
				Destination: &cmd.hold,
			},
			cmd.input.Flag(),
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ToastCmd) requests(c *cli.Command) ([]parsedRequest, error) {
	var raw []toastRequest
	if cmd.input.IsSet() {
		var err error
		if raw, err = cmd.input.Read(); err != nil {
			return nil, err
		}
	} else {
		title := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
		req := toastRequest{Kind: cmd.kind, Title: title, Detail: cmd.detail}
		if cmd.duration != 0 {
			req.Duration = cmd.duration.String()
		}
		if cmd.hold != 0 {
			req.Hold = cmd.hold.String()
		}
		raw = []toastRequest{req}
	}

	if len(raw) == 0 {
		return nil, fmt.Errorf("no toasts requested")
	}

	out := make([]parsedRequest, 0, len(raw))
	for i, r := range raw {
		p, err := parseRequest(r)
		if err != nil {
			return nil, fmt.Errorf("toast %d: %w", i, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func parseRequest(r toastRequest) (parsedRequest, error) {
	p := parsedRequest{title: r.Title, detail: r.Detail}

	if p.title == "" {
		return p, fmt.Errorf("title is required")
	}

	kind := r.Kind
	if kind == "" {
		kind = string(notify.KindInfo)
	}
	k, err := notify.ParseKind(kind)
	if err != nil {
		return p, err
	}
	p.kind = k

	if r.Duration != "" {
		if p.duration, err = time.ParseDuration(r.Duration); err != nil {
			return p, fmt.Errorf("duration: %w", err)
		}
		if p.duration <= 0 {
			return p, fmt.Errorf("duration must be positive; untimed toasts never finish headlessly")
		}
	}
	if r.Hold != "" {
		if p.hold, err = time.ParseDuration(r.Hold); err != nil {
			return p, fmt.Errorf("hold: %w", err)
		}
		if p.hold < 0 {
			return p, fmt.Errorf("hold must not be negative")
		}
	}
	return p, nil
}

func (cmd *ToastCmd) run(ctx context.Context, c *cli.Command) error {
	reqs, err := cmd.requests(c)
	if err != nil {
		return err
	}

	out := iojson.NewLineWriter(c.Root().Writer)
	start := cmd.clock.Now()

	emit := func(event string, t toast.Toast, reason toast.Reason) {
		e := lifecycleEvent{
			Event:       event,
			ElapsedMS:   cmd.clock.Now().Sub(start).Milliseconds(),
			ID:          t.ID,
			Kind:        string(t.Kind),
			Title:       t.Title,
			Reason:      string(reason),
			RemainingMS: t.Remaining.Milliseconds(),
			Progress:    fmt.Sprintf("%.2f", t.Progress),
		}
		if err := out.Write(e); err != nil {
			log.Error().Err(err).Str("event", event).Msg("failed to write lifecycle event")
		}
	}

	var pending sync.WaitGroup
	pending.Add(len(reqs))

	cfg := cmd.flags.Config
	mgr := toast.New(toast.Options{
		Clock:      cmd.clock,
		Durations:  cfg.Toasts.Durations,
		MaxVisible: cfg.Toasts.MaxVisible,
		Recorder:   cmd.flags.Metrics,
		OnShow: func(t toast.Toast) {
			emit("shown", t, "")
		},
		OnRemove: func(t toast.Toast, reason toast.Reason) {
			emit("removed", t, reason)
			pending.Done()
		},
	})
	defer mgr.Close()

	var (
		mu      sync.Mutex
		holders []clock.Timer
	)
	defer func() {
		mu.Lock()
		defer mu.Unlock()
		for _, h := range holders {
			h.Stop()
		}
	}()

	for _, r := range reqs {
		opts := []toast.Option{toast.WithDetail(r.detail)}
		if r.duration > 0 {
			opts = append(opts, toast.WithDuration(r.duration))
		}

		id := mgr.Show(r.kind, r.title, opts...)

		if r.hold > 0 && mgr.Pause(id) {
			if t, ok := mgr.Get(id); ok {
				emit("paused", t, "")
			}

			timer := cmd.clock.AfterFunc(r.hold, func() {
				if mgr.Resume(id) {
					if t, ok := mgr.Get(id); ok {
						emit("resumed", t, "")
					}
				}
			})
			mu.Lock()
			holders = append(holders, timer)
			mu.Unlock()
		}
	}

	done := make(chan struct{})
	go func() {
		pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		mgr.Close()
		<-done
		return ctx.Err()
	}
}
