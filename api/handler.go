// Package api provides the inbound HTTP surface of the relay: a single
// webhook ingestion route plus a health probe.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/xraph/hookgate"
)

// SignatureHeader carries the sender's HMAC signature of the request body.
const SignatureHeader = "X-Webhook-Signature"

// statusClientClosedRequest is the nginx convention for a caller that went
// away before the response was written.
const statusClientClosedRequest = 499

// Handler is the root HTTP handler for webhook ingestion.
type Handler struct {
	gw     *hookgate.Gateway
	logger *slog.Logger
	mux    *http.ServeMux
}

// NewHandler creates the ingestion handler around a gateway.
func NewHandler(gw *hookgate.Gateway, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	h := &Handler{
		gw:     gw,
		logger: logger,
		mux:    http.NewServeMux(),
	}

	h.registerRoutes()
	return h
}

func (h *Handler) registerRoutes() {
	h.mux.HandleFunc("POST /webhook/{tenantId}", h.receiveWebhook)
	h.mux.HandleFunc("GET /healthz", h.healthz)
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.withMiddleware(h.mux).ServeHTTP(w, r)
}

func (h *Handler) withMiddleware(next http.Handler) http.Handler {
	return h.panicRecovery(h.logging(next))
}

func (h *Handler) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		h.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (h *Handler) panicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.logger.Error("panic recovered",
					"error", rec,
					"stack", string(debug.Stack()),
				)
				writeMessage(w, http.StatusInternalServerError, "Internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// receiveWebhook handles POST /webhook/{tenantId}.
func (h *Handler) receiveWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Empty payload")
		return
	}
	defer r.Body.Close() //nolint:errcheck // read already completed

	req := &hookgate.Request{
		TenantID:  r.PathValue("tenantId"),
		Payload:   payload,
		Signature: r.Header.Get(SignatureHeader),
	}

	if err := h.gw.Deliver(r.Context(), req); err != nil {
		status, msg := mapError(err)
		writeMessage(w, status, msg)
		return
	}

	writeMessage(w, http.StatusOK, "Webhook delivered")
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "ok")
}

// mapError translates pipeline errors to an HTTP status and response message.
func mapError(err error) (int, string) {
	var de *hookgate.DeliveryError

	switch {
	case errors.Is(err, hookgate.ErrMissingTenant):
		return http.StatusBadRequest, "Missing tenantId"
	case errors.Is(err, hookgate.ErrEmptyPayload):
		return http.StatusBadRequest, "Empty payload"
	case errors.Is(err, hookgate.ErrUnknownTenant):
		return http.StatusNotFound, "Unknown tenant"
	case errors.Is(err, hookgate.ErrInvalidSignature):
		return http.StatusUnauthorized, "Invalid signature"
	case errors.Is(err, hookgate.ErrRateLimited):
		return http.StatusTooManyRequests, "Too many requests"
	case errors.As(err, &de):
		return http.StatusBadGateway, "Delivery failed after retries: " + de.Detail
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest, "Client closed request"
	default:
		return http.StatusInternalServerError, "Internal error"
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": msg}) //nolint:errcheck // best effort
}
