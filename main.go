package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"frontend/internal/apiclient"
	intconfig "frontend/internal/config"
	router "frontend/internal/http"
	"frontend/internal/http/handlers"
	"frontend/internal/jobs"
	"frontend/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	durable, session, closers, err := openStorage(env)
	if err != nil {
		log.Fatalf("Failed to open client storage: %v", err)
	}
	defer func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}()

	var purgers []storage.Purger
	for _, b := range []storage.Backend{durable, session} {
		if p, ok := b.(storage.Purger); ok {
			purgers = append(purgers, p)
		}
	}
	janitor, err := jobs.StartJanitor(env.JanitorSpec, purgers...)
	if err != nil {
		log.Fatalf("Failed to start storage janitor: %v", err)
	}
	defer janitor.Stop()

	hd := &handlers.Handler{
		Env:     env,
		API:     apiclient.New(env.APIBaseURL, apiclient.WithTimeout(env.APITimeout)),
		Durable: storage.NewObserved(durable),
		Session: storage.NewObserved(session),
	}
	r := router.NewRouter(env, hd)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on http://localhost%s (api=%s storage=%s)", env.AppAddr, env.APIBaseURL, env.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown failed: %v", err)
		return
	}

	log.Println("Server stopped.")
}

// openStorage picks the durable backend from STORAGE_DRIVER. Session storage
// shares Redis when configured and otherwise stays in process memory.
func openStorage(env intconfig.Env) (storage.Backend, storage.Backend, []io.Closer, error) {
	switch env.StorageDriver {
	case "mysql":
		db, err := intconfig.OpenMySQL(env.MySQLDSN)
		if err != nil {
			return nil, nil, nil, err
		}
		durable := storage.MySQLBackend{DB: db, TTL: env.DurableTTL}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := durable.EnsureTable(ctx); err != nil {
			_ = db.Close()
			return nil, nil, nil, err
		}
		return durable, storage.NewMemoryBackend(env.SessionTTL), []io.Closer{db}, nil
	case "redis":
		client, err := intconfig.OpenRedis(env)
		if err != nil {
			return nil, nil, nil, err
		}
		return storage.RedisBackend{Client: client, TTL: env.DurableTTL},
			storage.RedisBackend{Client: client, TTL: env.SessionTTL},
			[]io.Closer{client}, nil
	default:
		return storage.NewMemoryBackend(env.DurableTTL), storage.NewMemoryBackend(env.SessionTTL), nil, nil
	}
}
