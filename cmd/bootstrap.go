package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-pricing/app/repository"
	"github.com/vibast-solutions/ms-go-pricing/app/service"
	"github.com/vibast-solutions/ms-go-pricing/config"
)

func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg.Log); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}
	return cfg
}

func mustCreatePricingService(cfg *config.Config) *service.PricingService {
	planRepo, err := newPlanRepository(cfg.Catalog)
	if err != nil {
		logrus.WithError(err).WithField("catalog_path", cfg.Catalog.Path).Fatal("Failed to load plan catalog")
	}
	return service.NewPricingService(planRepo)
}

func newPlanRepository(cfg config.CatalogConfig) (*repository.PlanRepository, error) {
	if cfg.Path == "" {
		return repository.NewEmbeddedPlanRepository()
	}
	return repository.NewPlanRepositoryFromFile(cfg.Path)
}

func defaultTheme(cfg config.PageConfig) service.Theme {
	theme, err := service.ParseTheme(cfg.DefaultTheme)
	if err != nil {
		logrus.WithError(err).Warn("Unknown DEFAULT_THEME, falling back to system")
		return service.ThemeSystem
	}
	return theme
}
