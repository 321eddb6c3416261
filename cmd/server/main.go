// ============================================================================
// MAIN.GO - APPLICATION ENTRY POINT
// ============================================================================
// Startup flow:
// 1. Load configuration
// 2. Initialize structured logger
// 3. Build the seeded in-memory store
// 4. Wire store → service → handler → router
// 5. Start the metrics listener (optional) and the main server on :9090
// 6. Shut down gracefully on SIGINT/SIGTERM
// ============================================================================

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"minishort/internal/config"
	"minishort/internal/domain"
	httpHandler "minishort/internal/handler/http"
	"minishort/internal/metrics"
	"minishort/internal/repository/memory"
	"minishort/internal/service"
	"minishort/pkg/logger"
)

func main() {
	// ========================================================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================================================
	// Ambient settings come from environment variables; the service port
	// itself is fixed at 9090.
	// ========================================================================
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// ========================================================================
	// STEP 2: INITIALIZE STRUCTURED LOGGER
	// ========================================================================
	// Example output:
	// {"time":"2025-12-25T15:00:00Z","level":"INFO","msg":"Starting URL Shortener","environment":"development","port":"9090"}
	// ========================================================================
	appLogger := logger.New(cfg.App.LogLevel)
	appLogger.Info("Starting URL Shortener",
		"environment", cfg.App.Environment,
		"port", cfg.Server.Port,
	)

	// ========================================================================
	// STEP 3: DEPENDENCY INJECTION - BUILD THE DEPENDENCY GRAPH
	// ========================================================================
	// DEPENDENCY FLOW:
	// Store → Service → Handler → Router
	//
	// The store lives for the whole process and is shared by reference;
	// nothing survives a restart.
	// ========================================================================
	store := memory.NewStore(domain.SeedEntries()...)
	appLogger.Info("Store initialized", "entries", store.Len())

	entryService := service.NewEntryService(store, service.GenerateShortID)
	handler := httpHandler.NewHandler(entryService, appLogger)

	// ========================================================================
	// STEP 4: CREATE HTTP SERVERS
	// ========================================================================
	// Main server: /api management routes + /{id} redirects.
	// Metrics server: /metrics on its own port so it can't shadow a short ID.
	// ========================================================================
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      httpHandler.NewRouter(handler, appLogger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		metricsServer = &http.Server{
			Addr:         cfg.Metrics.Addr(),
			Handler:      mux,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		}
	}

	// ========================================================================
	// STEP 5: START SERVERS IN BACKGROUND (GOROUTINES)
	// ========================================================================
	go func() {
		appLogger.Info("Server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Server failed", "error", err)
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if metricsServer != nil {
		go func() {
			appLogger.Info("Metrics server starting", "address", metricsServer.Addr)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				// Metrics are not critical; keep serving redirects
				appLogger.Error("Metrics server failed", "error", err)
			}
		}()
	}

	// ========================================================================
	// STEP 6: GRACEFUL SHUTDOWN
	// ========================================================================
	// 1. Wait for SIGINT/SIGTERM
	// 2. Stop accepting new requests
	// 3. Let in-flight requests finish (up to SERVER_SHUTDOWN_TIMEOUT)
	// ========================================================================
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			appLogger.Warn("Metrics server forced to shutdown", "error", err)
		}
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", "error", err)
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	appLogger.Info("Server exited gracefully")
}
