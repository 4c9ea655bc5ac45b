package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"doc-ingest/internal/app"
	"doc-ingest/internal/httputil"
	"doc-ingest/internal/result"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve persisted results and the archive over HTTP",
	Long:  `Read-only HTTP API over the vault: the reflection archive and individual result entries.`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	deps, err := app.Build()
	if err != nil {
		return err
	}

	r := httputil.NewRouter(deps.Log)
	r.Get("/healthz", httputil.HealthHandler(deps.Log))
	r.Get("/api/archive", archiveHandler(deps))
	r.Get("/api/results/{name}", resultHandler(deps))

	srv := &http.Server{Addr: fmt.Sprintf(":%d", deps.Config.Port), Handler: r}

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		deps.Log.Info("serving vault", "addr", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(stop)
		select {
		case <-ctx.Done():
		case <-stop:
			deps.Log.Info("shutting down")
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func archiveHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := deps.Archive.Load()
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to load archive", err, http.StatusInternalServerError)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, a)
	}
}

func resultHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if name == "" || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
			httputil.Fail(deps.Log, w, "invalid result name", nil, http.StatusBadRequest)
			return
		}
		path := filepath.Join(deps.Config.VaultDir, "modi", name+".json")
		entry, err := result.Load(path)
		if err != nil {
			httputil.Fail(deps.Log, w, "result not found", err, http.StatusNotFound)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, entry)
	}
}
