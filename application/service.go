package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/bundleup/bundleup/domain"
	"github.com/bundleup/bundleup/infrastructure/gemfile"
)

// UpdateService orchestrates the full per-line update flow:
// classify -> fetch release history -> resolve -> rebuild.
// Lines are processed strictly sequentially, in original order; the output
// buffer is owned by the service and always has the same length as the input.
type UpdateService struct {
	source       domain.ReleaseSource
	resolver     *domain.Resolver
	store        *gemfile.Store
	fetchTimeout time.Duration
}

// NewUpdateService creates a new service with the given collaborators.
func NewUpdateService(
	source domain.ReleaseSource,
	resolver *domain.Resolver,
	store *gemfile.Store,
	fetchTimeout time.Duration,
) *UpdateService {
	return &UpdateService{
		source:       source,
		resolver:     resolver,
		store:        store,
		fetchTimeout: fetchTimeout,
	}
}

// RunOptions holds runtime options for a single run.
type RunOptions struct {
	DryRun  bool
	Verbose bool
}

// Run rewrites the Gemfile at path in place. A missing manifest is fatal;
// every per-gem failure only skips that line and the run continues.
func (s *UpdateService) Run(ctx context.Context, path string, opts RunOptions) error {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	if !s.store.Exists(path) {
		return fmt.Errorf("manifest %q does not exist", path)
	}

	content, err := s.store.Read(path)
	if err != nil {
		return err
	}

	lines := strings.Split(content, "\n")
	out := make([]string, len(lines))

	rewritten := 0
	skipped := 0

	for i, line := range lines {
		out[i] = line

		decl := gemfile.Parse(line, i+1)
		if decl == nil {
			continue
		}

		if decl.HasAltSource {
			skipped++
			logger.Infof(
				"Skipping %s (line %d): %s",
				decl.Name, decl.LineNo, domain.SkipAlternateSource,
			)
			continue
		}

		if decl.ConstraintRaw != "" && !decl.Pinned() {
			logger.Debugf(
				"%s (line %d): constraint %q is not a clean version, treating as unpinned",
				decl.Name, decl.LineNo, decl.ConstraintRaw,
			)
		}

		res := s.resolveDeclaration(ctx, decl)
		if res.Skipped {
			skipped++
			logger.Warnf(
				"Skipping %s (line %d): %s",
				decl.Name, decl.LineNo, res.Reason,
			)
			continue
		}

		newLine := gemfile.Rebuild(line, decl.Name, res.Version)
		if newLine == line {
			logger.Debugf("%s: already at ~> %s", decl.Name, res.Version)
			continue
		}

		rewritten++
		if opts.DryRun {
			logger.Infof(
				"[DRY RUN] Would pin %s to ~> %s (line %d)",
				decl.Name, res.Version, decl.LineNo,
			)
			continue
		}

		logger.Infof("Pinning %s to ~> %s (line %d)", decl.Name, res.Version, decl.LineNo)
		out[i] = newLine
	}

	logger.Infof(
		"Run complete: %d lines rewritten, %d gems skipped",
		rewritten, skipped,
	)

	if opts.DryRun || rewritten == 0 {
		return nil
	}
	return s.store.Write(path, strings.Join(out, "\n"))
}

// resolveDeclaration fetches the gem's release history and applies the
// staleness policy. The fetch timeout is local to the gem: a slow or failing
// registry call turns into a skip, never into a run-level error.
func (s *UpdateService) resolveDeclaration(
	ctx context.Context,
	decl *domain.Declaration,
) domain.Resolution {
	fetchCtx := ctx
	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}

	history, err := s.source.Releases(fetchCtx, decl.Name)
	if err != nil {
		logger.Debugf("%s: %v", decl.Name, err)
		return domain.Skipped(domain.SkipFetchFailed)
	}

	return s.resolver.Resolve(decl.CurrentVersion, history)
}
