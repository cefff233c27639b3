package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/urfave/cli/v2"

	"github.com/example/globalpay/internal/config"
	"github.com/example/globalpay/internal/routes"
	"github.com/example/globalpay/internal/storage"
	"github.com/example/globalpay/pkg/logger"
)

func main() {
	app := &cli.App{
		Name:  "globalpay",
		Usage: "Global QR Pay demo payment backend",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Aliases: []string{"p"}, Usage: "HTTP port"},
			&cli.StringFlag{Name: "store", Aliases: []string{"s"}, Usage: "Storage driver: file, memory or postgres"},
			&cli.StringFlag{Name: "data-dir", Aliases: []string{"d"}, Usage: "Data directory for the file driver"},
			&cli.StringFlag{Name: "database-url", Aliases: []string{"u"}, Usage: "Postgres DSN for the postgres driver"},
			&cli.IntFlag{Name: "settle-delay-ms", Aliases: []string{"w"}, Usage: "Simulated settlement delay in milliseconds"},
			&cli.BoolFlag{Name: "development", Aliases: []string{"D"}, Usage: "Development mode"},
		},
		Action: func(c *cli.Context) error {
			return run(c)
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	cfg := config.Load()

	// Override with flags if set
	if c.IsSet("port") {
		cfg.AppPort = c.String("port")
	}
	if c.IsSet("store") {
		cfg.StoreDriver = c.String("store")
	}
	if c.IsSet("data-dir") {
		cfg.DataDir = c.String("data-dir")
	}
	if c.IsSet("database-url") {
		cfg.DatabaseURL = c.String("database-url")
	}
	if c.IsSet("settle-delay-ms") {
		cfg.SettleDelay = time.Duration(c.Int("settle-delay-ms")) * time.Millisecond
	}
	if c.IsSet("development") {
		cfg.Development = c.Bool("development")
	}

	zlog, err := logger.NewLogger(cfg.Development)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %v", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %v", cfg.StoreDriver, err)
	}

	app := fiber.New(fiber.Config{
		AppName: "Global QR Pay Backend",
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())

	routes.Register(app, cfg, store, zlog)

	zlog.Infof("Starting server on :%s (store driver %s)", cfg.AppPort, cfg.StoreDriver)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		return fmt.Errorf("fiber.Listen error: %v", err)
	}
	return nil
}

func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.StoreDriver {
	case "memory":
		return storage.NewMemory(), nil
	case "file":
		return storage.NewFile(cfg.DataDir)
	case "postgres":
		return storage.NewPostgres(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
