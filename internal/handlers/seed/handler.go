package seed

import (
	"net/http"

	"spacebook/infras/otel"
	"spacebook/internal/domains/seed/model/dto"
	"spacebook/internal/domains/seed/service"
	"spacebook/shared/constant"
	"spacebook/transport/http/middleware"
	"spacebook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Seed
	otel    otel.Otel
}

func New(service service.Seed, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router, auth middleware.AuthRole) {
	router.With(auth.Auth, auth.RBAC).Post("/seed", handler.Seed)
}

// Seed loads the demo catalog and accounts
// @Summary Seed demo data
// @Description Inserts the sample spaces and the admin/user demo accounts that are missing. Existing rows are left alone.
// @Tags Seed
// @Produce json
// @Success 200 {object} dto.SeedResponse "Seed result"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/seed [post]
// @Security BearerAuth
func (handler *Handler) Seed(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Seed")
	defer scope.End()

	var (
		res dto.SeedResponse
		err error
	)

	if res, err = handler.service.Run(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to seed database")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Database seeded")

	response.WithJSON(w, http.StatusOK, res)
}
