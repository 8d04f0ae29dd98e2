package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"checkroute/internal/cache"
	"checkroute/internal/checkout"
	"checkroute/internal/config"
	"checkroute/internal/core/stats"
	httpx "checkroute/internal/http"
	"checkroute/internal/selector"
	catalogsvc "checkroute/internal/services/catalog"
	merchantsvc "checkroute/internal/services/merchant"
	resolvesvc "checkroute/internal/services/resolve"
	"checkroute/internal/store/postgres"
	"checkroute/internal/widget"
	"checkroute/internal/widget/creditcard"
	"checkroute/internal/widget/hosted"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init DB
	pool := postgres.MustOpen(ctx, cfg.DB.DSN)
	defer pool.Close()
	merchantRepo := postgres.NewMerchantRepository(pool)
	resolutionRepo := postgres.NewResolutionRepository(pool)

	// Checkout collaborator
	state := checkout.NewClient(cfg.Checkout.BaseURL, cfg.Checkout.TimeoutSec)

	// Widget registry
	registry := widget.NewRegistry()
	registry.Register(creditcard.New(state))
	for kind, name := range hostedKinds() {
		registry.Register(hosted.New(kind, name, state))
	}

	// Optional redis-backed decision cache
	var decisionCache resolvesvc.DecisionCache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		decisionCache = cache.NewResolutionCache(rdb, time.Duration(cfg.Redis.CacheTTLMin)*time.Minute)
	}

	// Services
	merchantService := merchantsvc.NewService(merchantRepo, cfg)
	resolveService := resolvesvc.NewService(selector.New(), registry, resolutionRepo, decisionCache, state)
	catalogService := catalogsvc.NewService(resolutionRepo, registry)

	// Usage stats worker
	worker := stats.NewWorker(resolutionRepo)
	go worker.Run(ctx)

	// Router
	r := httpx.NewRouter(httpx.RouterDependencies{
		Config:          cfg,
		MerchantService: merchantService,
		ResolveService:  resolveService,
		CatalogService:  catalogService,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Msgf("CheckRoute API listening on :%s", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	cancel()
	ctx2, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	log.Info().Msg("server stopped")
}

// hostedKinds lists every redirect-style widget this deployment backs
// with the hosted integration, keyed by kind.
func hostedKinds() map[widget.Kind]string {
	return map[widget.Kind]string{
		widget.KindHosted:         "Hosted Payment Page",
		widget.KindPPSDK:          "Payments SDK",
		widget.KindAmazonPay:      "Amazon Pay",
		widget.KindAffirm:         "Affirm",
		widget.KindBarclaycard:    "Barclaycard",
		widget.KindBlueSnapV2:     "BlueSnap",
		widget.KindBolt:           "Bolt",
		widget.KindKlarna:         "Klarna",
		widget.KindMasterpass:     "Masterpass",
		widget.KindOpy:            "Opy",
		widget.KindPaypalCommerce: "PayPal Commerce",
		widget.KindSquareV2:       "Square",
		widget.KindStripeV3:       "Stripe",
		widget.KindWorldpayAccess: "Worldpay Access",
		widget.KindMoneris:        "Moneris",
	}
}
