package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang-migrate/migrate/v4"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	adminservice "github.com/ruansmarques/MedFerpa-Store-2/pkg/catalog/application/service"
	catalogmodel "github.com/ruansmarques/MedFerpa-Store-2/pkg/catalog/domain/model"
	catalogservice "github.com/ruansmarques/MedFerpa-Store-2/pkg/catalog/domain/service"
	"github.com/ruansmarques/MedFerpa-Store-2/pkg/identity"
	"github.com/ruansmarques/MedFerpa-Store-2/pkg/infrastructure/blob"
	"github.com/ruansmarques/MedFerpa-Store-2/pkg/infrastructure/config"
	"github.com/ruansmarques/MedFerpa-Store-2/pkg/infrastructure/events"
	"github.com/ruansmarques/MedFerpa-Store-2/pkg/infrastructure/memory"
	"github.com/ruansmarques/MedFerpa-Store-2/pkg/infrastructure/mysql"
	"github.com/ruansmarques/MedFerpa-Store-2/pkg/infrastructure/transport"
	ordermodel "github.com/ruansmarques/MedFerpa-Store-2/pkg/order/domain/model"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	app := &cli.App{
		Name:  "medferpa-store",
		Usage: "MedFerpa storefront and admin API",
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("command failed")
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the storefront API",
		Action: func(_ *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			var (
				products catalogmodel.ProductRepository
				orders   ordermodel.OrderRepository
			)
			if cfg.DSN == "" {
				store := memory.NewProductStore()
				if err := memory.Seed(store); err != nil {
					return err
				}
				log.Warn("no DSN configured, serving the seed catalog from memory")
				products = store
				orders = memory.NewOrderStore()
			} else {
				db, err := mysql.Connect(cfg.DSN)
				if err != nil {
					return err
				}
				defer db.Close()
				products = mysql.NewProductRepository(db, cfg.WatchInterval)
				orders = mysql.NewOrderRepository(db)
			}

			dispatcher := events.NewLoggingDispatcher()
			catalog := catalogservice.NewCatalogService(products)
			admin := adminservice.NewAdminService(products, blob.NewFileStorage(cfg.BlobDir, cfg.BlobBaseURL), dispatcher)
			authorizer := identity.NewAuthorizer(cfg.AdminEmails)

			srv := &http.Server{
				Addr:    cfg.Addr,
				Handler: transport.Router(catalog, admin, orders, authorizer),
			}
			go func() {
				log.WithFields(log.Fields{"addr": cfg.Addr}).Info("starting server")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.WithError(err).Fatal("failed to start server")
				}
			}()

			waitForKillSignal(getKillSignalChan())
			return srv.Shutdown(context.Background())
		},
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "apply database migrations",
		Action: func(_ *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.DSN == "" {
				return errors.New("STORE_DSN is required to run migrations")
			}

			m, err := migrate.New("file://"+cfg.MigrationsPath, "mysql://"+cfg.DSN)
			if err != nil {
				return errors.Wrap(err, "open migrations")
			}
			defer m.Close()

			if err := m.Up(); err != nil {
				if errors.Is(err, migrate.ErrNoChange) {
					log.Info("migrations already up to date")
					return nil
				}
				return errors.Wrap(err, "apply migrations")
			}
			log.Info("migrations applied")
			return nil
		},
	}
}

func getKillSignalChan() chan os.Signal {
	killSignalChan := make(chan os.Signal, 1)
	signal.Notify(killSignalChan, os.Interrupt, syscall.SIGTERM)
	return killSignalChan
}

func waitForKillSignal(killSignalChan <-chan os.Signal) {
	killSignal := <-killSignalChan
	switch killSignal {
	case os.Interrupt:
		log.Info("got SIGINT, shutting down")
	case syscall.SIGTERM:
		log.Info("got SIGTERM, shutting down")
	}
}
