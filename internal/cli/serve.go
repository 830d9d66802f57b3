package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"buntab/pkg/suggest"
)

const (
	defaultListenAddr = "127.0.0.1:4877"
	shutdownTimeout   = 5 * time.Second
	requestTimeout    = 15 * time.Second
)

// serveCommand creates the serve command: a local HTTP daemon that shell
// widgets can query per keystroke. Keeping one long-lived process avoids
// paying process startup and cache-open cost on every completion request.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the suggestion daemon",
		Long: `Run the suggestion daemon.

Endpoints:

  GET /v1/suggest?line=<partial line>   completion suggestions as JSON
  GET /v1/healthz                       liveness probe

Use --redis to share the response cache between daemon instances.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			engine, err := c.newEngine(ctx)
			if err != nil {
				return err
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           newServer(engine, c.Logger),
				ReadHeaderTimeout: requestTimeout,
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.ListenAndServe()
			}()
			c.Logger.Info("daemon listening", "addr", addr)

			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				_ = server.Shutdown(shutdownCtx)
				return nil
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultListenAddr, "listen address")
	return cmd
}

// newServer builds the daemon's HTTP handler.
func newServer(engine *suggest.Engine, logger *log.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(logger))

	r.Get("/v1/healthz", handleHealthz)
	r.Get("/v1/suggest", handleSuggest(engine))

	return r
}

// requestID tags each request with a unique identifier, echoed in the
// X-Request-Id header and attached to the request context.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(withRequestID(r.Context(), id)))
	})
}

// requestLogger logs each request with its duration at debug level.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request",
				"id", requestIDFromContext(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"duration", time.Since(start).Round(time.Millisecond))
		})
	}
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleSuggest completes the line passed in the "line" query parameter.
// The response is always a JSON list; suggestion failures inside the engine
// already degrade to an empty one.
func handleSuggest(engine *suggest.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		line := r.URL.Query().Get("line")

		items := engine.Suggest(r.Context(), line)
		if items == nil {
			items = []suggest.Suggestion{}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(items)
	}
}
