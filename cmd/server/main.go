package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fashniz-be/internal/cart"
	"fashniz-be/internal/checkout"
	"fashniz-be/internal/complaint"
	"fashniz-be/internal/config"
	"fashniz-be/internal/db"
	"fashniz-be/internal/discount"
	"fashniz-be/internal/events"
	"fashniz-be/internal/httpapi"
	"fashniz-be/internal/logger"
	"fashniz-be/internal/mailer"
	"fashniz-be/internal/order"
	"fashniz-be/internal/payment"
	"fashniz-be/internal/product"
	"fashniz-be/internal/shipping"
	"fashniz-be/internal/user"
	"fashniz-be/internal/wishlist"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	bus := events.NewBus()
	gateway := payment.NewGateway(cfg.PaymentSecretKey, cfg.PaymentBaseURL)
	mail := mailer.NewMailer(cfg.MailerAPIKey, cfg.MailerBaseURL, cfg.MailerFromAddr)

	userRepo := user.NewRepository(database)
	productRepo := product.NewRepository(database)
	cartRepo := cart.NewRepository(database)
	wishlistRepo := wishlist.NewRepository(database)
	shippingRepo := shipping.NewRepository(database)
	discountRepo := discount.NewRepository(database)
	checkoutRepo := checkout.NewRepository(database)
	orderRepo := order.NewRepository(database)
	complaintRepo := complaint.NewRepository(database)

	userSvc := user.NewService(userRepo)
	productSvc := product.NewService(productRepo)
	cartSvc := cart.NewService(cartRepo, productRepo, bus)
	wishlistSvc := wishlist.NewService(wishlistRepo, bus)
	discountSvc := discount.NewService(discountRepo)
	orderSvc := order.NewService(orderRepo, shippingRepo, mail, bus)
	checkoutSvc := checkout.NewService(checkoutRepo, cartRepo, productRepo, shippingRepo, discountSvc, gateway, orderSvc)
	complaintSvc := complaint.NewService(complaintRepo)
	reconciler := order.NewReconciler(orderSvc)

	stopWorker := order.StartConfirmationWorker(bus, mail)
	defer stopWorker()

	stopSweeper := startSessionSweeper(checkoutRepo)
	defer stopSweeper()

	server := httpapi.NewServer(
		userSvc, productSvc, cartSvc, wishlistSvc,
		shippingRepo, discountSvc, checkoutSvc,
		orderSvc, reconciler, complaintSvc,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.L().Info("🚀 Server running", zap.String("port", cfg.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.L().Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.L().Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.L().Error("graceful shutdown failed", zap.Error(err))
	}
}

// startSessionSweeper expires stale checkout sessions every minute.
func startSessionSweeper(repo checkout.Repository) func() {
	done := make(chan struct{})
	ticker := time.NewTicker(time.Minute)

	go func() {
		for {
			select {
			case <-done:
				ticker.Stop()
				return
			case <-ticker.C:
				n, err := repo.ExpireStale(context.Background())
				if err != nil {
					logger.L().Warn("session sweep failed", zap.Error(err))
					continue
				}
				if n > 0 {
					logger.L().Info("expired stale checkout sessions", zap.Int64("count", n))
				}
			}
		}
	}()

	return func() { close(done) }
}
