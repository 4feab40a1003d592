package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	site "github.com/devinschumacher/devinschumacher.com"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	addr := fs.String("addr", ":3000", "Listen address")
	contentDir := fs.String("content-dir", "", "Path to the markdown content root (overrides CONTENT_DIR)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := site.ConfigFromEnv()
	if *contentDir != "" {
		cfg.Content.Dir = *contentDir
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	module, err := site.New(ctx, cfg, site.Options{Catalog: defaultCatalog()})
	if err != nil {
		return fmt.Errorf("build module: %w", err)
	}
	defer module.Close()

	mux := http.NewServeMux()
	module.RegisterRoutes(mux)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		module.Logger().Info("server listening", "addr", *addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}
