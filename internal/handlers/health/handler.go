package health

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"quiethours/infras/postgres"
	"quiethours/transport/http/response"
)

type Handler struct {
	db *postgres.Connection
}

func New(db *postgres.Connection) Handler {
	return Handler{
		db: db,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Get("/health", handler.Health)
}

// Health reports service liveness
// @Summary Health check
// @Description Report whether the service and its database are reachable.
// @Tags Health
// @Produce json
// @Success 200 {object} response.Message "OK"
// @Failure 503 {object} response.Message
// @Router /api/health [get]
func (handler *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := handler.db.Write.PingContext(r.Context()); err != nil {
		log.Error().Err(err).Msg("health check failed to ping database")

		response.WithUnhealthy(w)

		return
	}

	response.WithMessage(w, http.StatusOK, "OK")
}
