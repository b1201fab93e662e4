package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/xenking/shophub/internal/cache"
	"github.com/xenking/shophub/internal/domain/cart"
	"github.com/xenking/shophub/internal/domain/checkout"
	"github.com/xenking/shophub/internal/domain/coupon"
	"github.com/xenking/shophub/internal/domain/likes"
	"github.com/xenking/shophub/internal/domain/notification"
	"github.com/xenking/shophub/internal/domain/order"
	"github.com/xenking/shophub/internal/domain/product"
	"github.com/xenking/shophub/internal/domain/session"
	"github.com/xenking/shophub/internal/domain/wishlist"
	"github.com/xenking/shophub/internal/gateway"
	"github.com/xenking/shophub/internal/handler"
	"github.com/xenking/shophub/internal/storage/sessionfile"
	"github.com/xenking/shophub/internal/toast"
	"github.com/xenking/shophub/internal/view"
	"github.com/xenking/shophub/pkg/health"
	"github.com/xenking/shophub/pkg/httpclient"
	"github.com/xenking/shophub/pkg/httpmiddleware"
)

type tokenSourceFunc func() string

func (f tokenSourceFunc) Token() string { return f() }

// Run creates all dependencies, starts the local UI server, and handles
// graceful shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing",
		zap.String("addr", cfg.Addr),
		zap.String("gateway", cfg.GatewayURL),
	)

	emitter := toast.NewEmitter(cfg.ToastTTL)
	views := view.NewSwitcher()

	// Outbound HTTP stack for the gateway: instrumented transport with
	// request IDs and debug logging layered on top.
	httpClient := &http.Client{
		Timeout: cfg.RequestTimeout,
		Transport: otelhttp.NewTransport(
			httpclient.Wrap(http.DefaultTransport,
				httpclient.RequestID(),
				httpclient.LogRequests(),
			),
			otelhttp.WithTracerProvider(m.TracerProvider()),
			otelhttp.WithMeterProvider(m.MeterProvider()),
		),
	}

	// The gateway needs a token source and the session manager needs the
	// gateway for login calls. The closure breaks the cycle: it is only
	// invoked per request, well after sessions is assigned below.
	var sessions *session.Manager
	gw, err := gateway.New(cfg.GatewayURL, httpClient, tokenSourceFunc(func() string {
		if sessions == nil {
			return ""
		}
		return sessions.Token()
	}))
	if err != nil {
		return errors.Wrap(err, "create gateway client")
	}

	sessionStore, err := sessionfile.New(cfg.SessionFile)
	if err != nil {
		return errors.Wrap(err, "create session store")
	}
	sessions = session.NewManager(gw, sessionStore, emitter)

	// Optional Redis catalog cache.
	var catalogCache product.Cache
	if cfg.CacheURL != "" {
		opts, err := redis.ParseURL(cfg.CacheURL)
		if err != nil {
			return errors.Wrap(err, "parse cache URL")
		}
		rdb := redis.NewClient(opts)
		defer func() { _ = rdb.Close() }()
		catalogCache = cache.NewCatalog(rdb, cfg.CacheTTL)
	}

	// Stores and the checkout orchestrator.
	catalog := product.NewStore(gw, catalogCache)
	carts := cart.NewStore(gw, sessions, emitter)
	coupons := coupon.NewNegotiator(gw, emitter)
	orders := order.NewStore(gw)
	wishes := wishlist.NewStore(gw, sessions, emitter)
	liked := likes.NewStore(gw, sessions, emitter)
	inbox := notification.NewStore(gw)
	orchestrator := checkout.NewOrchestrator(gw, sessions, carts, coupons, orders, inbox, views, emitter)

	h := handler.New(sessions, catalog, carts, coupons, orchestrator, orders, wishes, liked, inbox, emitter, views, gw)

	// Warm up: restore a persisted session, load the catalog, and pull the
	// user's data. All best effort; the UI retries through its own calls.
	if restored, err := sessions.Restore(); err != nil {
		lg.Warn("Session restore failed", zap.Error(err))
	} else if restored {
		lg.Info("Session restored")
		h.LoadUserData(ctx)
	}
	if err := catalog.Load(ctx); err != nil {
		lg.Warn("Initial catalog load failed", zap.Error(err))
	}

	// Health check service: ready when the gateway answers.
	healthSvc := health.New()
	healthSvc.AddReadinessCheck("gateway", 5*time.Second, gw.Ping)
	healthSvc.SetReady(true)

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	mux.Handle("/api/", http.StripPrefix("/api", h.Routes()))

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: httpmiddleware.Wrap(mux,
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowOrigins: cfg.CORS.Origins,
				AllowHeaders: []string{"Content-Type"},
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.LogRequests(),
		),
	}

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}
