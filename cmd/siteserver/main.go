package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ipschool.org/internal/backend"
	"ipschool.org/internal/config"
	"ipschool.org/internal/content"
	"ipschool.org/internal/httpapi"
	"ipschool.org/internal/kv"
	"ipschool.org/internal/obs"
	"ipschool.org/internal/session"
	"ipschool.org/internal/site"
)

var (
	version = "0.3.1"
	commit  = "dev"
)

func main() {
	obs.Init()
	obs.InitBuildInfo(version, commit)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	store, err := openKV(ctx, cfg)
	if err != nil {
		log.Fatalf("open kv store: %v", err)
	}
	defer store.Close()

	tokens := session.NewStore(ctx, store)

	client := backend.New(cfg.BackendBaseURL,
		backend.WithTimeout(cfg.BackendTimeout),
		backend.WithTokenSource(tokens.Token),
	)

	validator := session.NewValidator(tokens, client)
	defer validator.Close()
	auth := session.NewAuth(tokens, validator)

	merger := content.NewMerger(content.Defaults)
	cache := content.NewCache(client, cfg.ContentCacheTTL)
	svc := site.New(client, merger, cache)

	api := httpapi.New(svc, auth, client.Ready, version, httpapi.Config{
		MaxBodyBytes:  cfg.MaxBodyBytes,
		RateBurst:     cfg.RateBurst,
		RatePerSecond: cfg.RatePerSecond,
	})

	// Track the remote authority's availability so held sessions are
	// validated as soon as it comes up, and parked when it goes away.
	probeCtx, stopProbe := context.WithCancel(ctx)
	defer stopProbe()
	go watchAuthority(probeCtx, client, validator)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting ipschool-site %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(shutdownCtx)
	log.Println("Stopped")
}

func openKV(ctx context.Context, cfg config.Config) (kv.Store, error) {
	switch cfg.KVDriver {
	case "redis":
		return kv.OpenRedis(ctx, cfg.RedisURL)
	case "memory":
		return kv.NewMemory(), nil
	default:
		return kv.OpenSQLite(cfg.KVPath)
	}
}

// watchAuthority polls the remote store's health endpoint and feeds the
// result to the session validator.
func watchAuthority(ctx context.Context, client *backend.Client, validator *session.Validator) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	probe := func() {
		probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		validator.SetReady(ctx, client.Ready(probeCtx) == nil)
	}

	probe()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			probe()
		}
	}
}
