// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	router "aquaflow-kiosk/internal/api"
	"aquaflow-kiosk/internal/api/handler"
	"aquaflow-kiosk/internal/config"
	"aquaflow-kiosk/internal/repository"
	"aquaflow-kiosk/internal/repository/memory"
	"aquaflow-kiosk/internal/service"
	"aquaflow-kiosk/internal/util"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger

	// Repositories
	UserRepository   repository.UserRepository
	LedgerRepository repository.LedgerRepository

	// Services
	KioskService service.KioskService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Initialize Logger first so initialization failures are reportable
	util.InitLogger(slog.LevelInfo)
	app.Logger = util.GetLogger()

	// 2. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg
	app.Logger.Info("Application configuration loaded.",
		"max_users", cfg.MaxUsers, "max_transactions", cfg.MaxTransactions)

	// 3. Initialize in-memory stores
	app.UserRepository = memory.NewUserStore(cfg.MaxUsers)
	app.LedgerRepository = memory.NewLedger(cfg.MaxTransactions)
	app.Logger.Info("In-memory stores initialized.")

	// 4. Initialize Services
	app.KioskService = service.NewKioskService(app.UserRepository, app.LedgerRepository)
	app.Logger.Info("Services initialized.")

	// 5. Initialize HTTP Handlers and Router
	kioskHandler := handler.NewKioskHandler(app.KioskService, app.Logger)
	app.HTTPHandler = router.NewRouter(kioskHandler, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources. The stores live in
// memory, so there is nothing to flush; their contents are discarded.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
