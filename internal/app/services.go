package app

import (
	"io"
	"log/slog"

	"github.com/odyssey-erp/odyssey-admin/internal/dashboard"
	"github.com/odyssey-erp/odyssey-admin/internal/forms"
	"github.com/odyssey-erp/odyssey-admin/internal/roles"
	"github.com/odyssey-erp/odyssey-admin/internal/simulate"
	"github.com/odyssey-erp/odyssey-admin/internal/store"
	"github.com/odyssey-erp/odyssey-admin/internal/users"
)

// Services groups the in-process API that the dashboard screens call.
type Services struct {
	Store     *store.Store
	Simulator *simulate.Simulator
	Users     *users.Service
	Roles     *roles.Service
	Dashboard *dashboard.Service
	Forms     *forms.Validator
}

// SimulationProfile derives the latency and failure settings from cfg.
func SimulationProfile(cfg *Config) simulate.Profile {
	if cfg == nil {
		return simulate.DefaultProfile()
	}
	profile := simulate.Disabled()
	if cfg.MockLatency {
		profile = simulate.DefaultProfile().Scaled(cfg.MockLatencyScale)
	}
	profile.ErrorRate = cfg.MockErrorRate
	return profile
}

// NewServices wires the store, the simulator and every service. Users and
// roles share one store so the role delete guard sees the live user list.
func NewServices(cfg *Config, logger *slog.Logger, opts ...simulate.Option) (*Services, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	idPolicy := "sequential"
	if cfg != nil {
		idPolicy = cfg.MockIDPolicy
	}
	st := store.New(store.PolicyByName(idPolicy))
	sim := simulate.New(SimulationProfile(cfg), opts...)

	userService := users.NewService(st, sim, logger.With(slog.String("service", "users")))
	roleService := roles.NewService(st, sim, logger.With(slog.String("service", "roles")))
	validator, err := forms.NewValidator()
	if err != nil {
		return nil, err
	}

	return &Services{
		Store:     st,
		Simulator: sim,
		Users:     userService,
		Roles:     roleService,
		Dashboard: dashboard.NewService(userService, roleService),
		Forms:     validator,
	}, nil
}
