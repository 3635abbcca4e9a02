package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/trendora/storefront/config"
	"github.com/trendora/storefront/internal/account"
	"github.com/trendora/storefront/internal/app"
	"github.com/trendora/storefront/internal/audit"
	"github.com/trendora/storefront/internal/cart"
	"github.com/trendora/storefront/internal/catalog"
	"github.com/trendora/storefront/internal/imagestore"
	"github.com/trendora/storefront/internal/notify"
	"github.com/trendora/storefront/internal/order"
	"github.com/trendora/storefront/internal/payment"
	"github.com/trendora/storefront/internal/storeapi"
	"github.com/trendora/storefront/internal/webserver"
)

var (
	configFile = pflag.String("config", "/etc/storefront.yaml", "config file")
	initDb     = pflag.Bool("initdb", false, "drop and recreate all tables, then exit")
)

func main() {
	pflag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(2)
	}

	application := app.NewApplication(cfg)
	application.Init()
	defer application.Release()

	if *initDb {
		application.InitDb()
		return
	}

	issuer, err := account.NewTokenIssuer(cfg.Auth)
	if err != nil {
		zap.S().Fatalf("token issuer init failed: %v", err)
	}

	uploads, err := imagestore.NewStore(
		imagestore.NewHTTPUploader(cfg.ImageStore), cfg.ImageStore.Workers)
	if err != nil {
		zap.S().Fatalf("image store init failed: %v", err)
	}
	defer uploads.Release()

	db := application.DB()
	auditRec := audit.NewGormRecorder(db)

	accounts := account.NewService(account.NewGormUserRepository(db), issuer, cfg.Admin)
	carts := cart.NewService(cart.NewGormRepository(db))
	catalogSvc := catalog.NewService(catalog.NewGormProductRepository(db), uploads, auditRec)
	orders := order.NewService(
		order.NewGormOrderRepository(db),
		order.NewGormUserDirectory(db),
		payment.NewCheckoutClient(cfg.Checkout),
		payment.NewCollectClient(cfg.Collect),
		application.Settings(),
		notify.NewMailer(cfg.Mail),
		auditRec,
	)

	ws := webserver.New(cfg)
	storeapi.NewHandlers(accounts, carts, catalogSvc, orders).Register(ws, issuer)

	g, ctx := errgroup.WithContext(context.Background())
	g.Go(ws.Start)
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		select {
		case sig := <-quit:
			zap.L().Info("shutting down", zap.String("signal", sig.String()))
		case <-ctx.Done():
			return ctx.Err()
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return ws.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		zap.S().Errorf("server exited: %v", err)
	}
}
