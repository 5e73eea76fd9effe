package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/sagarc03/dataapi"
)

// RootMessage is returned by GET /.
const RootMessage = "Data API is running!"

// DocumentFetcher reads the served document.
type DocumentFetcher interface {
	Fetch(ctx context.Context) (dataapi.Document, error)
}

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age" validate:"min=0"`
}

type HandlerConfig struct {
	CORS CORSConfig
}

// Handler serves the liveness probe and the document endpoint.
type Handler struct {
	config  HandlerConfig
	service DocumentFetcher
}

// NewHandler creates a new Handler with the given configuration and service.
func NewHandler(config *HandlerConfig, service DocumentFetcher) *Handler {
	return &Handler{
		config:  *config,
		service: service,
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

// Router returns an http.Handler with all routes and middleware configured.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(AccessLogMiddleware)

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		WriteError(w, http.StatusNotFound, DetailRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, DetailMethodNotAllowed)
	})

	r.Get("/", h.handleRoot)
	r.Get("/data", h.handleData)

	return r
}

func (h *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	_ = WriteJSON(w, http.StatusOK, messageResponse{Message: RootMessage})
}

func (h *Handler) handleData(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.Fetch(r.Context())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, doc); err != nil {
		slog.ErrorContext(r.Context(), "failed to write document", "error", err, "request_id", RequestIDFromContext(r.Context()))
	}
}
