package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/cartlab/cart-fetch/cache"
	"github.com/cartlab/cart-fetch/cache/backends/memory"
	cacheredis "github.com/cartlab/cart-fetch/cache/backends/redis"
	"github.com/cartlab/cart-fetch/cart_fetch"
	"github.com/cartlab/cart-fetch/clients/cartapi"
	"github.com/cartlab/cart-fetch/config"
	"github.com/cartlab/cart-fetch/controller"
	"github.com/cartlab/cart-fetch/server"
	"github.com/cartlab/cart-fetch/utils/logger"
	"github.com/cartlab/cart-fetch/utils/parallel"
)

// demoCarts is the canned data served by the local endpoint
var demoCarts = map[int][]cartapi.CartItem{
	1: {{Name: "apple", Quantity: 2}, {Name: "milk", Quantity: 1}},
	2: {{Name: "bread", Quantity: 1}, {Name: "butter", Quantity: 1}, {Name: "jam", Quantity: 3}},
	3: {},
}

func main() {
	fmt.Println("Cart Fetch Demo")
	fmt.Println("===============")

	cfg := config.Default()
	if len(os.Args) > 1 {
		loaded, err := config.Load(os.Args[1])
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
		cfg = loaded
	} else {
		// Short backoffs so the retry path is visible without long waits
		cfg.BackoffSeconds = []int{1, 2, 3}
	}

	appLogger := buildLogger(cfg)
	defer appLogger.Close()

	// Serve canned carts locally with injected failures to exercise retries
	cartServer := server.New(demoCarts, server.WithFailureRate(0.3), server.WithLogger(appLogger))
	httpServer := &http.Server{
		Addr:    ":8080",
		Handler: cartServer.Handler(),
	}
	go func() {
		fmt.Println("Canned cart server running on http://localhost:8080/cart")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("cart server error: %v", err)
		}
	}()

	fetcher := buildFetcher(cfg, appLogger)
	ctrl := controller.NewCartController(fetcher, appLogger)

	// Fetch every demo cart in parallel, plus one unknown user to show the
	// exhaustion path
	userIDs := []int{1, 2, 3, 99}
	tasks := map[string]parallel.Task[string]{}
	for _, uid := range userIDs {
		uid := uid
		tasks[strconv.Itoa(uid)] = func(ctx context.Context) (string, error) {
			var buf bytes.Buffer
			if err := ctrl.RenderCart(ctx, uid, &buf); err != nil {
				return "", err
			}
			return buf.String(), nil
		}
	}

	results := parallel.Run(context.Background(), tasks)
	for _, uid := range userIDs {
		result := results[strconv.Itoa(uid)]
		fmt.Printf("\n--- user %d ---\n", uid)
		if result.Error != nil {
			fmt.Printf("failed: %v\n", result.Error)
			continue
		}
		fmt.Print(result.Value)
	}

	fmt.Println("\nPress Ctrl+C to stop the cart server")
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	fmt.Println("\nShutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	httpServer.Shutdown(shutdownCtx)
}

// buildLogger creates the logger selected by the config
func buildLogger(cfg *config.Config) logger.Logger {
	switch cfg.Log.Type {
	case "file":
		fileLogger, err := logger.NewFileLogger(cfg.Log.Path)
		if err != nil {
			log.Fatalf("creating file logger: %v", err)
		}
		return fileLogger
	case "noop":
		return logger.NewNoopLogger()
	default:
		return logger.NewStdoutLogger()
	}
}

// buildFetcher wires the fetcher and, when configured, its cache layer
func buildFetcher(cfg *config.Config, appLogger logger.Logger) cache.Fetcher {
	fetcher := cart_fetch.New(cart_fetch.Options{
		Endpoint:  cfg.Endpoint,
		Transport: cartapi.NewHTTPTransport(),
		Schedule:  cfg.Schedule(),
		Logger:    appLogger,
	})

	switch cfg.Cache.Backend {
	case "memory":
		return cache.NewCachedFetcher(fetcher, memory.NewStore(), cfg.CacheTTL(), appLogger)
	case "redis":
		store, err := cacheredis.NewStore(cfg.Cache.Addr, cfg.Cache.Password, cfg.Cache.DB)
		if err != nil {
			log.Fatalf("connecting to redis cache: %v", err)
		}
		return cache.NewCachedFetcher(fetcher, store, cfg.CacheTTL(), appLogger)
	default:
		return fetcher
	}
}
