package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/suitability-engine/internal/engine"
	"github.com/sells-group/suitability-engine/internal/model"
	"github.com/sells-group/suitability-engine/internal/report"
	"github.com/sells-group/suitability-engine/internal/store"
	"github.com/sells-group/suitability-engine/internal/validate"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the session API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))

		api := &sessionAPI{store: env.Store, engine: env.Engine}

		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		r.Route("/api/sessions", func(r chi.Router) {
			r.Post("/", api.createSession)
			r.Get("/{id}", api.getSession)
			r.Post("/{id}/events", api.postEvent)
			r.Get("/{id}/validate", api.validateSession)
			r.Get("/{id}/report.pdf", api.downloadReport)
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			gracefulShutdown(srv)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

const shutdownGrace = 10 * time.Second

// gracefulShutdown drains in-flight requests on a fresh timeout context.
// The signal context that triggered it is already cancelled and would abort
// draining immediately.
func gracefulShutdown(srv interface{ Shutdown(context.Context) error }) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.L().Warn("server shutdown", zap.Error(err))
	}
}

type sessionAPI struct {
	store  store.Store
	engine *engine.Engine
}

func (a *sessionAPI) createSession(w http.ResponseWriter, r *http.Request) {
	s := model.NewSession(time.Now())
	resp := a.engine.Start(s)

	if err := a.store.Save(r.Context(), s); err != nil {
		zap.L().Error("create session: save failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to persist session"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"session":  s,
		"messages": resp.Messages,
	})
}

func (a *sessionAPI) getSession(w http.ResponseWriter, r *http.Request) {
	s, ok := a.loadSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (a *sessionAPI) postEvent(w http.ResponseWriter, r *http.Request) {
	s, ok := a.loadSession(w, r)
	if !ok {
		return
	}

	var ev model.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid event body"})
		return
	}

	resp, err := a.engine.HandleEvent(r.Context(), s, ev)
	if err != nil {
		zap.L().Error("event handling failed",
			zap.String("session_id", s.ID),
			zap.Error(err),
		)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "the compliance responder is unavailable"})
		return
	}

	if err := a.store.Save(r.Context(), s); err != nil {
		zap.L().Error("post event: save failed", zap.String("session_id", s.ID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to persist session"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"stage":    s.Stage,
		"response": resp,
	})
}

func (a *sessionAPI) validateSession(w http.ResponseWriter, r *http.Request) {
	s, ok := a.loadSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, validate.Validate(s))
}

func (a *sessionAPI) downloadReport(w http.ResponseWriter, r *http.Request) {
	s, ok := a.loadSession(w, r)
	if !ok {
		return
	}
	if s.Data.Report.GeneratedAt == nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "no report has been generated for this session"})
		return
	}

	artifacts := report.Generate(s)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "suitability-report-"+s.ID+".pdf"))
	w.WriteHeader(http.StatusOK)
	w.Write(artifacts.ArtifactBytes)
}

func (a *sessionAPI) loadSession(w http.ResponseWriter, r *http.Request) (*model.Session, bool) {
	id := chi.URLParam(r, "id")
	s, err := a.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
			return nil, false
		}
		zap.L().Error("load session failed", zap.String("session_id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load session"})
		return nil, false
	}
	return s, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
