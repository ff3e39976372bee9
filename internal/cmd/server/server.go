// Package server parses server command flags and starts the HTTP service.
package server

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"

	"github.com/stagecall/stagecall/internal/app"
	"github.com/stagecall/stagecall/internal/app/httpapi"
	"github.com/stagecall/stagecall/internal/docstore"
	entrypoint "github.com/stagecall/stagecall/internal/platform/cmd"
	"github.com/stagecall/stagecall/internal/platform/timeouts"
)

// Config holds server command configuration.
type Config struct {
	Port   int    `env:"STAGECALL_PORT" envDefault:"8080"`
	Addr   string `env:"STAGECALL_ADDR"`
	DBPath string `env:"STAGECALL_DB_PATH" envDefault:"stagecall.db"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The server port")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "The server listen address (overrides -port)")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the document store database file")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the HTTP API service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceServer, func(ctx context.Context) error {
		db, err := docstore.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open document store: %w", err)
		}
		defer db.Close()

		addr := cfg.Addr
		if addr == "" {
			addr = fmt.Sprintf(":%d", cfg.Port)
		}

		srv := &http.Server{
			Addr:              addr,
			Handler:           httpapi.NewServer(app.New(db)),
			ReadHeaderTimeout: timeouts.ReadHeader,
			WriteTimeout:      timeouts.Request,
			BaseContext:       func(net.Listener) context.Context { return ctx },
		}

		errCh := make(chan error, 1)
		go func() {
			log.Printf("listening on %s", addr)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown server: %w", err)
			}
			return nil
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		}
	})
}
