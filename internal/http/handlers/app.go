package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/service"
)

// App is the handler container: orchestrators, the creation store, and the
// response helpers shared by every endpoint.
type App struct {
	AI        *service.AI
	Creations domain.CreationRepository
	Logger    zerolog.Logger
}

// NewApp constructs the handler container.
func NewApp(ai *service.AI, creations domain.CreationRepository, logger zerolog.Logger) *App {
	return &App{AI: ai, Creations: creations, Logger: logger}
}

type apiError struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// fail maps the error kind to an HTTP status and writes the uniform error
// envelope. Every error path funnels through here.
func (a *App) fail(w http.ResponseWriter, err error) {
	kind := domain.KindOf(err)

	status := http.StatusInternalServerError
	switch kind {
	case domain.KindValidation, domain.KindQuota:
		status = http.StatusBadRequest
	case domain.KindAuth:
		status = http.StatusUnauthorized
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindProvider:
		status = http.StatusBadGateway
	}

	out := apiError{Message: "Something went wrong"}
	var de *domain.Error
	if errors.As(err, &de) {
		out.Message = de.Message
		out.Field = de.Field
	}
	if status >= 500 || kind == domain.KindProvider {
		a.Logger.Error().Err(err).Str("kind", string(kind)).Msg("request failed")
	}

	a.json(w, status, map[string]any{"success": false, "errors": []apiError{out}})
}
