package cmd

import (
	"time"

	"go.uber.org/dig"

	"github.com/bundleup/bundleup/application"
	"github.com/bundleup/bundleup/config"
	"github.com/bundleup/bundleup/domain"
	"github.com/bundleup/bundleup/infrastructure/gemfile"
	"github.com/bundleup/bundleup/infrastructure/registry/rubygems"
)

// registerProviders registers all constructors with the DIG container,
// bottom-up: registry client -> resolver -> store -> service.
func registerProviders(container *dig.Container, cfg *config.Config) error {
	if err := container.Provide(func() *config.Config { return cfg }); err != nil {
		return err
	}

	if err := container.Provide(func(c *config.Config) domain.ReleaseSource {
		return rubygems.New(
			c.Registry.URL,
			time.Duration(c.Registry.TimeoutSeconds)*time.Second,
		)
	}); err != nil {
		return err
	}

	if err := container.Provide(func(c *config.Config) *domain.Resolver {
		return domain.NewResolver(c.Policy.StalenessDays)
	}); err != nil {
		return err
	}

	if err := container.Provide(gemfile.NewStore); err != nil {
		return err
	}

	if err := container.Provide(func(
		source domain.ReleaseSource,
		resolver *domain.Resolver,
		store *gemfile.Store,
		c *config.Config,
	) *application.UpdateService {
		return application.NewUpdateService(
			source,
			resolver,
			store,
			time.Duration(c.Registry.TimeoutSeconds)*time.Second,
		)
	}); err != nil {
		return err
	}

	return nil
}

// injectUpdateService builds the service graph and extracts the service.
func injectUpdateService(cfg *config.Config) (*application.UpdateService, error) {
	container := dig.New()

	if err := registerProviders(container, cfg); err != nil {
		return nil, err
	}

	var svc *application.UpdateService
	if err := container.Invoke(func(s *application.UpdateService) {
		svc = s
	}); err != nil {
		return nil, err
	}

	return svc, nil
}
