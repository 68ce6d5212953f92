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

	"github.com/sells-group/contact-finder/internal/export"
	"github.com/sells-group/contact-finder/internal/failure"
	"github.com/sells-group/contact-finder/internal/model"
	"github.com/sells-group/contact-finder/internal/scrape"
)

const maxRequestBody = 1 << 20

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the JSON/CSV HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           newRouter(newResearchService(cfg), newScrapeService(cfg)),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// newRouter builds the HTTP surface. Each request runs its pipeline
// synchronously; handlers share no mutable state.
func newRouter(rs researcher, sc scrape.Scraper) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSONStatus(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/models", func(w http.ResponseWriter, r *http.Request) {
		ids, err := rs.Models(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSONStatus(w, http.StatusOK, map[string][]string{"models": ids})
	})

	r.Post("/lookup", func(w http.ResponseWriter, r *http.Request) {
		var q model.ContactQuery
		if err := decodeBody(w, r, &q); err != nil {
			writeError(w, err)
			return
		}
		res, err := rs.Research(r.Context(), q)
		if err != nil {
			writeError(w, err)
			return
		}
		if wantsCSV(r) {
			text, err := export.ContactsCSV(res.Contacts)
			if err != nil {
				writeError(w, err)
				return
			}
			writeCSVAttachment(w, export.ContactsFileName(q.CompanyName), text)
			return
		}
		writeJSONStatus(w, http.StatusOK, res)
	})

	r.Post("/scrape", func(w http.ResponseWriter, r *http.Request) {
		var target model.ScrapeTarget
		if err := decodeBody(w, r, &target); err != nil {
			writeError(w, err)
			return
		}
		res, err := sc.Scrape(r.Context(), target)
		if err != nil {
			writeError(w, err)
			return
		}
		if wantsCSV(r) {
			text, err := export.EmailsCSV(res.Emails)
			if err != nil {
				writeError(w, err)
				return
			}
			writeCSVAttachment(w, export.EmailsFileName, text)
			return
		}
		writeJSONStatus(w, http.StatusOK, res)
	})

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Info("http request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(v); err != nil {
		return failure.InvalidInput("invalid request body: %v", err)
	}
	return nil
}

func wantsCSV(r *http.Request) bool {
	return r.URL.Query().Get("format") == "csv"
}

// statusForError maps a failure kind to the response status.
func statusForError(err error) int {
	switch failure.KindOf(err) {
	case failure.KindInvalidInput:
		return http.StatusBadRequest
	case failure.KindConfigurationMissing:
		return http.StatusServiceUnavailable
	case failure.KindNetwork, failure.KindHTTPStatus:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	kind := failure.KindOf(err)
	if kind == failure.KindNone {
		kind = "internal"
	}
	if status >= http.StatusInternalServerError {
		zap.L().Warn("request failed", zap.String("kind", string(kind)), zap.Error(err))
	}
	writeJSONStatus(w, status, map[string]string{
		"error": failure.Message(err),
		"kind":  string(kind),
	})
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeCSVAttachment(w http.ResponseWriter, filename, text string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
