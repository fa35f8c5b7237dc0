// Command odyssey-admin wires the mock users and roles services from the
// environment and logs the seeded dashboard state. Screens embed
// app.NewServices directly; this binary is a quick way to inspect a
// configuration.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/odyssey-erp/odyssey-admin/internal/app"
	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	services, err := app.NewServices(cfg, logger)
	if err != nil {
		logger.Error("wire services", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("mock services ready",
		slog.String("env", cfg.AppEnv),
		slog.Bool("latency", cfg.MockLatency),
		slog.Float64("error_rate", cfg.MockErrorRate),
		slog.String("id_policy", cfg.MockIDPolicy),
	)

	overview, err := services.Dashboard.Overview(ctx)
	if err != nil {
		logger.Error("load overview", slog.Any("error", err), slog.String("message", shared.UserSafeMessage(err)))
		os.Exit(1)
	}
	logger.Info("overview",
		slog.Int("users", overview.TotalUsers),
		slog.Int("active", overview.ActiveUsers),
		slog.Int("roles", overview.TotalRoles),
		slog.Int("dangling_role_refs", len(overview.Dangling)),
	)
	for _, usage := range overview.RoleUsage {
		logger.Info("role usage", slog.String("role", usage.RoleName), slog.Int("users", usage.Users))
	}

	matrix, err := services.Roles.PermissionMatrix(ctx)
	if err != nil {
		logger.Error("load permission matrix", slog.Any("error", err), slog.String("message", shared.UserSafeMessage(err)))
		os.Exit(1)
	}
	for _, row := range matrix {
		for _, section := range row.Sections {
			var granted []string
			for _, cell := range section.Cells {
				if cell.Granted {
					granted = append(granted, cell.Label)
				}
			}
			logger.Info("permissions",
				slog.String("role", row.RoleName),
				slog.String("category", section.Label),
				slog.Any("granted", granted),
			)
		}
	}
}
