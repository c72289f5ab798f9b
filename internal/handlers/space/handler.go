package space

import (
	"net/http"

	"spacebook/infras/otel"
	bookingDto "spacebook/internal/domains/booking/model/dto"
	bookingService "spacebook/internal/domains/booking/service"
	"spacebook/internal/domains/space/model/dto"
	"spacebook/internal/domains/space/service"
	"spacebook/shared/constant"
	gDto "spacebook/shared/dto"
	"spacebook/shared/failure"
	"spacebook/shared/validator"
	"spacebook/transport/http/middleware"
	"spacebook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Space
	booking bookingService.Booking
	otel    otel.Otel
}

func New(service service.Space, booking bookingService.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		booking: booking,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router, auth middleware.AuthRole) {
	router.Route("/spaces", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetSpaces)
		routerGroup.Get("/{id}", handler.GetSpaceByID)
		routerGroup.Get("/{id}/bookings", handler.GetBookedDays)
		routerGroup.Get("/{id}/availability", handler.GetAvailability)
		routerGroup.Get("/{id}/quote", handler.GetQuote)

		routerGroup.Group(func(admin chi.Router) {
			admin.Use(auth.Auth, auth.RBAC)

			admin.Post("/", handler.CreateSpace)
			admin.Put("/{id}", handler.UpdateSpace)
			admin.Delete("/{id}", handler.DeleteSpace)
			admin.Post("/{id}/images", handler.UploadImage)
		})
	})
}

// CreateSpace handles the creation of a new space.
// @Summary Create a new space
// @Description Add a space to the catalog. Admin only.
// @Tags Space
// @Accept json
// @Produce json
// @Param request body dto.CreateSpaceRequest true "Create Space Request"
// @Success 201 {object} dto.SpaceResponse "Space created"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/spaces [post]
// @Security BearerAuth
func (handler *Handler) CreateSpace(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateSpace")
	defer scope.End()

	req := dto.CreateSpaceRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create space")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Space created " + res.ID)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetSpaces lists the catalog.
// @Summary Get all spaces
// @Description List spaces with optional filters, pagination and sorting.
// @Tags Space
// @Produce json
// @Param type query string false "Space type" Enums(coworking, meeting room, event venue, conference hall)
// @Param location query string false "Location contains"
// @Param name query string false "Name contains"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param sort_by query string false "Sort column" Enums(name, capacity, price_per_hour, location)
// @Param sort_dir query string false "Sort direction" Enums(ASC, DESC)
// @Success 200 {object} dto.GetSpacesResponse "List of spaces"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/spaces [get]
func (handler *Handler) GetSpaces(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSpaces")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()
	filter := dto.ListFilter{
		Type:     query.Get(constant.RequestParamType),
		Location: query.Get(constant.RequestParamLocation),
		Name:     query.Get(constant.RequestParamName),
	}

	if err := validator.ValidateStruct(&filter); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	spaces, err := handler.service.GetAll(ctx, queryParams, filter.ToFilterGroup())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get spaces")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Spaces retrieved successfully")

	response.WithJSON(w, http.StatusOK, spaces)
}

// GetSpaceByID retrieves a space by its ID.
// @Summary Get a space by ID
// @Tags Space
// @Produce json
// @Param id path string true "Space ID"
// @Success 200 {object} dto.SpaceResponse "Space details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/spaces/{id} [get]
func (handler *Handler) GetSpaceByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSpaceByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	space, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get space by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, space)
}

// UpdateSpace updates an existing space by its ID.
// @Summary Update a space by ID
// @Description Only the fields present in the body change. Admin only.
// @Tags Space
// @Accept json
// @Produce json
// @Param id path string true "Space ID"
// @Param request body dto.UpdateSpaceRequest true "Update Space Request"
// @Success 200 {object} response.Message "Space updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/spaces/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateSpace(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateSpace")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateSpaceRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update space")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Space updated " + id)

	response.WithMessage(w, http.StatusOK, "Space updated successfully")
}

// DeleteSpace deletes a space and its bookings.
// @Summary Delete a space by ID
// @Tags Space
// @Produce json
// @Param id path string true "Space ID"
// @Success 200 {object} response.Message "Space deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/spaces/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteSpace(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteSpace")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete space")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Space deleted " + id)

	response.WithMessage(w, http.StatusOK, "Space deleted successfully")
}

// UploadImage appends an uploaded image to the space.
// @Summary Upload a space image
// @Tags Space
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Space ID"
// @Param file formData file true "Image file (png, jpg, jpeg, webp; max 5 MB)"
// @Success 200 {object} dto.SpaceResponse "Space with the new image"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/spaces/{id}/images [post]
// @Security BearerAuth
func (handler *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadImage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequest(err))

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get file from form")

		response.WithError(w, failure.BadRequestFromString(constant.FormFile+" is required"))

		return
	}
	defer file.Close()

	req := dto.UploadImageRequest{
		Image:     fileHeader,
		ImageFile: file,
	}

	if err = validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	res, err := handler.service.AddImage(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload space image")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetBookedDays lists the days taken by active bookings of a space.
// @Summary Get booked days of a space
// @Description Days are YYYY-MM-DD. from/to optionally limit the result.
// @Tags Space
// @Produce json
// @Param id path string true "Space ID"
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD)"
// @Success 200 {object} bookingDto.BookedDaysResponse "Booked days"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/spaces/{id}/bookings [get]
func (handler *Handler) GetBookedDays(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookedDays")
	defer scope.End()

	query := bookingDto.HorizonQuery{
		From: r.URL.Query().Get(constant.RequestParamFrom),
		To:   r.URL.Query().Get(constant.RequestParamTo),
	}

	if err := validator.ValidateStruct(&query); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	res, err := handler.booking.BookedDays(ctx, chi.URLParam(r, constant.RequestParamID), query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booked days")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

func rangeQuery(r *http.Request) (bookingDto.RangeQuery, error) {
	query := bookingDto.RangeQuery{
		StartDate: r.URL.Query().Get(constant.RequestParamStartDate),
		EndDate:   r.URL.Query().Get(constant.RequestParamEndDate),
	}

	return query, validator.ValidateStruct(&query)
}

// GetAvailability reports whether a date range can be booked.
// @Summary Check availability of a space
// @Tags Space
// @Produce json
// @Param id path string true "Space ID"
// @Param start_date query string true "First day (YYYY-MM-DD)"
// @Param end_date query string true "Last day (YYYY-MM-DD)"
// @Success 200 {object} bookingDto.AvailabilityResponse "Availability"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/spaces/{id}/availability [get]
func (handler *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	query, err := rangeQuery(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	res, err := handler.booking.Availability(ctx, chi.URLParam(r, constant.RequestParamID), query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetQuote prices a date range at 24 billable hours per day.
// @Summary Get a price quote
// @Tags Space
// @Produce json
// @Param id path string true "Space ID"
// @Param start_date query string true "First day (YYYY-MM-DD)"
// @Param end_date query string true "Last day (YYYY-MM-DD)"
// @Success 200 {object} paymentDto.QuoteResponse "Quote"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/spaces/{id}/quote [get]
func (handler *Handler) GetQuote(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetQuote")
	defer scope.End()

	query, err := rangeQuery(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	res, err := handler.booking.Quote(ctx, chi.URLParam(r, constant.RequestParamID), query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to quote space")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
