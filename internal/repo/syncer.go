// Package repo keeps the installer checkout present and up to date.
package repo

import (
	"context"
	"os"

	apperrors "llb/internal/errors"
	"llb/internal/execx"
	"llb/internal/logger"
)

// Action describes what Sync did to the checkout.
type Action string

const (
	// ActionCloned means the install directory was absent and a fresh clone was made.
	ActionCloned Action = "cloned"
	// ActionUpdated means the existing checkout was fast-forwarded.
	ActionUpdated Action = "updated"
)

// Syncer clones the installer repository on first run and fast-forwards it afterwards.
type Syncer struct {
	runner execx.Runner
	log    logger.Logger

	url    string
	branch string
	dir    string
}

// NewSyncer constructs a Syncer for the given repository and install directory.
func NewSyncer(url, branch, dir string, runner execx.Runner, log logger.Logger) *Syncer {
	if runner == nil {
		runner = execx.System{}
	}
	return &Syncer{runner: runner, log: log, url: url, branch: branch, dir: dir}
}

// Sync ensures a working copy exists at the install directory.
//
// A missing directory triggers a clone; clone failures are fatal. An existing
// directory triggers a fast-forward pull; pull failures surface as an
// *UpdateError, the single failure the bootstrap is expected to tolerate.
func (s *Syncer) Sync(ctx context.Context) (Action, error) {
	_, err := os.Stat(s.dir)
	switch {
	case err == nil:
		return ActionUpdated, s.update(ctx)
	case os.IsNotExist(err):
		return ActionCloned, s.clone(ctx)
	default:
		return "", repoError("repo.Sync", "failed to inspect install directory", err, apperrors.Metadata{
			"dir": s.dir,
		})
	}
}

func (s *Syncer) clone(ctx context.Context) error {
	args := []string{"clone"}
	if s.branch != "" {
		args = append(args, "--branch", s.branch)
	}
	args = append(args, s.url, s.dir)

	if err := s.runner.Run(ctx, "git", args...); err != nil {
		return repoError("repo.clone", "git clone failed", err, apperrors.Metadata{
			"url": s.url,
			"dir": s.dir,
		})
	}

	s.log.Debug("cloned %s into %s", s.url, s.dir)
	return nil
}

func (s *Syncer) update(ctx context.Context) error {
	if err := s.runner.Run(ctx, "git", "-C", s.dir, "pull", "--ff-only"); err != nil {
		return &UpdateError{Dir: s.dir, Err: err}
	}

	s.log.Debug("fast-forwarded checkout at %s", s.dir)
	return nil
}

func repoError(operation, message string, err error, metadata apperrors.Metadata) *apperrors.AppError {
	appErr := apperrors.RepositoryError(apperrors.CodeRepositoryGeneric, message, err).
		WithModule("repo").
		WithOperation(operation)
	if metadata != nil {
		appErr.WithFields(metadata)
	}
	return appErr
}
