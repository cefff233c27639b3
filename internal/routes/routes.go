package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/globalpay/internal/config"
	"github.com/example/globalpay/internal/handlers"
	"github.com/example/globalpay/internal/ledger"
	"github.com/example/globalpay/internal/middleware"
	"github.com/example/globalpay/internal/qr"
	"github.com/example/globalpay/internal/storage"
	"github.com/example/globalpay/pkg/logger"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, cfg *config.Config, store storage.Store, log *logger.Logger) {
	ldgr := ledger.New(store, log, cfg.SettleDelay)
	interpreter := qr.NewInterpreter()

	scanHandler := handlers.NewScanHandler(interpreter)
	transactionHandler := handlers.NewTransactionHandler(ldgr, log)
	profileHandler := handlers.NewProfileHandler(ldgr)
	sessionHandler := handlers.NewSessionHandler(ldgr, cfg)

	api := app.Group("/api")

	api.Post("/session", sessionHandler.Create)
	api.Post("/scan", scanHandler.Scan)

	transactions := api.Group("/transactions")
	transactions.Post("/", transactionHandler.Create)
	transactions.Get("/", transactionHandler.List)
	transactions.Get("/:id", transactionHandler.Get)
	transactions.Post("/:id/confirm", transactionHandler.Confirm)
	transactions.Patch("/:id/status", transactionHandler.UpdateStatus)

	// Protected routes
	protected := api.Group("", middleware.AuthMiddleware(cfg))
	protected.Get("/profile", profileHandler.GetProfile)
}
