package app

import (
	"context"
	"os"

	"golang.org/x/term"

	"llb/internal/config"
	"llb/internal/execx"
	"llb/internal/journal"
	"llb/internal/logger"
	"llb/internal/menu"
	"llb/internal/service"
	"llb/internal/ui"
)

// App wires the bootstrap components behind either the interactive menu
// (when stdin is a terminal) or a single non-interactive install pass.
type App struct {
	cfg     *config.Config
	log     logger.Logger
	printer *ui.Printer
	store   *journal.Store
	boot    *Bootstrapper
	svc     *service.Manager
}

// New constructs the application. The run journal is best-effort: when it
// cannot be opened the bootstrap still proceeds, just unrecorded.
func New(cfg *config.Config, log logger.Logger) *App {
	printer := ui.NewPrinter()
	runner := execx.System{}

	var store *journal.Store
	if err := os.MkdirAll(cfg.StateDir, 0o755); err != nil {
		log.Warn("state directory unavailable, run journal disabled: %v", err)
	} else {
		opened, err := journal.Open(context.Background(), cfg.JournalPath())
		if err != nil {
			log.Warn("run journal disabled: %v", err)
		} else {
			store = opened
		}
	}

	return &App{
		cfg:     cfg,
		log:     log,
		printer: printer,
		store:   store,
		boot:    NewBootstrapper(cfg, log, printer, runner, store),
		svc:     service.NewManager(config.ServiceUnit, cfg.UnitSourcePath(), runner, log),
	}
}

// Close releases held resources.
func (a *App) Close() error {
	return a.store.Close()
}

// Run executes the bootstrap. A terminal gets the menu; pipes, provisioning
// scripts and cloud-init runs go straight into the install pass.
func (a *App) Run(ctx context.Context) error {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return a.interactive(ctx)
	}
	return a.boot.Run(ctx)
}

func (a *App) interactive(ctx context.Context) error {
	a.printer.PrintBanner()

	options := []menu.Option{
		{
			Label: "Install",
			Desc:  "run the full bootstrap pass",
			Run:   func() error { return a.boot.Run(ctx) },
		},
		{
			Label: "Service status",
			Desc:  "show setup service state",
			Run:   func() error { return a.showStatus(ctx) },
		},
		{
			Label: "Recent runs",
			Desc:  "show the bootstrap run journal",
			Run:   func() error { return a.showRecentRuns(ctx) },
		},
		{
			Label: "Exit",
		},
	}

	return menu.NewMenu(a.log, options).Show()
}

func (a *App) showStatus(ctx context.Context) error {
	status := a.svc.Status(ctx)
	a.printer.PrintServiceStatus(config.ServiceUnit, status.Active, status.Enabled)
	return nil
}

func (a *App) showRecentRuns(ctx context.Context) error {
	if a.store == nil {
		a.log.Warn("run journal is disabled")
		return nil
	}

	runs, err := a.store.RecentRuns(ctx, 10)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		a.log.Info("no recorded runs yet")
		return nil
	}

	a.printer.PrintSeparator("-", 57)
	for _, run := range runs {
		a.log.Info("run #%d  %s  %s", run.ID, run.StartedAt, run.Outcome)

		steps, err := a.store.Steps(ctx, run.ID)
		if err != nil {
			return err
		}
		for _, step := range steps {
			if step.Detail != "" {
				a.log.Info("  %-32s %-9s %s", step.Name, step.Status, step.Detail)
				continue
			}
			a.log.Info("  %-32s %s", step.Name, step.Status)
		}
	}
	a.printer.PrintSeparator("-", 57)
	return nil
}
