package app

import (
	"context"

	"llb/internal/config"
	"llb/internal/execx"
	"llb/internal/journal"
	"llb/internal/logger"
	"llb/internal/pkgmgr"
	"llb/internal/pydeps"
	"llb/internal/repo"
	"llb/internal/service"
	"llb/internal/ui"
)

// Component contracts consumed by the Bootstrapper. The concrete
// implementations live in their own packages; tests substitute fakes.
type (
	// PackageEnsurer installs missing base OS packages.
	PackageEnsurer interface {
		EnsureBase(ctx context.Context) error
	}

	// CheckoutSyncer clones or fast-forwards the installer checkout.
	CheckoutSyncer interface {
		Sync(ctx context.Context) (repo.Action, error)
	}

	// DependencyInstaller installs the Python dependency manifest.
	DependencyInstaller interface {
		Install(ctx context.Context) error
	}

	// ServiceInstaller registers and activates the setup service unit.
	ServiceInstaller interface {
		Install(ctx context.Context) error
	}
)

// Bootstrapper runs the complete linear install pass.
type Bootstrapper struct {
	cfg     *config.Config
	log     logger.Logger
	printer *ui.Printer
	store   *journal.Store

	validate func() error
	packages PackageEnsurer
	checkout CheckoutSyncer
	deps     DependencyInstaller
	svc      ServiceInstaller
}

// NewBootstrapper wires the concrete components behind a Bootstrapper.
func NewBootstrapper(cfg *config.Config, log logger.Logger, printer *ui.Printer, runner execx.Runner, store *journal.Store) *Bootstrapper {
	if runner == nil {
		runner = execx.System{}
	}

	validator := NewValidator(cfg, log)

	return &Bootstrapper{
		cfg:      cfg,
		log:      log,
		printer:  printer,
		store:    store,
		validate: validator.ValidateEnvironment,
		packages: pkgmgr.NewManager(runner, log),
		checkout: repo.NewSyncer(cfg.RepoURL, cfg.Branch, cfg.InstallDir, runner, log),
		deps:     pydeps.NewInstaller(cfg.ManifestPath(), runner, log),
		svc:      service.NewManager(config.ServiceUnit, cfg.UnitSourcePath(), runner, log),
	}
}

// Run executes the bootstrap pass: validate, packages, checkout, Python
// dependencies, service. The checkout update is the only tolerated failure;
// everything else aborts on first error. On success the usage instructions
// are printed.
func (b *Bootstrapper) Run(ctx context.Context) error {
	runID, err := b.store.BeginRun(ctx)
	if err != nil {
		b.log.Warn("run journal unavailable: %v", err)
	}

	pipeline := NewPipeline(b.log, func(result StepResult) {
		detail := ""
		if result.Err != nil {
			detail = result.Err.Error()
		}
		if err := b.store.RecordStep(ctx, runID, result.Name, string(result.Status), detail, result.Duration); err != nil {
			b.log.Debug("failed to journal step %q: %v", result.Name, err)
		}
	})

	steps := []Step{
		{
			Name: "Validate environment",
			Fn:   func(context.Context) error { return b.validate() },
		},
		{
			Name: "Install base packages",
			Fn:   b.packages.EnsureBase,
		},
		{
			Name: "Synchronize installer checkout",
			Fn: func(ctx context.Context) error {
				action, err := b.checkout.Sync(ctx)
				if err == nil {
					b.log.Debug("checkout %s", action)
				}
				return err
			},
			// A failed fast-forward keeps the existing checkout usable,
			// so the run continues.
			Tolerate: repo.IsUpdateError,
		},
		{
			Name: "Install Python dependencies",
			Fn:   b.deps.Install,
		},
		{
			Name: "Install setup service",
			Fn:   b.svc.Install,
		},
	}

	if err := pipeline.Execute(ctx, steps); err != nil {
		if journalErr := b.store.FinishRun(ctx, runID, "failed"); journalErr != nil {
			b.log.Debug("failed to journal run outcome: %v", journalErr)
		}
		return err
	}

	if journalErr := b.store.FinishRun(ctx, runID, "succeeded"); journalErr != nil {
		b.log.Debug("failed to journal run outcome: %v", journalErr)
	}

	b.log.Success("bootstrap completed")
	if b.printer != nil {
		b.printer.PrintInstructions(config.ServiceUnit, b.cfg.SetupPort)
	}
	return nil
}
