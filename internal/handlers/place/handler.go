package place

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"quiethours/infras/otel"
	"quiethours/internal/domains/place/model"
	"quiethours/internal/domains/place/model/dto"
	"quiethours/internal/domains/place/service"
	"quiethours/shared"
	"quiethours/shared/constant"
	gDto "quiethours/shared/dto"
	"quiethours/shared/failure"
	"quiethours/shared/validator"
	"quiethours/transport/http/response"
)

type Handler struct {
	service service.Place
	otel    otel.Otel
}

func New(service service.Place, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/places", func(routerGroup chi.Router) {
		routerGroup.Get("/nearby", handler.GetNearbyPlaces)
		routerGroup.Get("/", handler.GetPlaces)
		routerGroup.Get("/{id}", handler.GetPlaceByID)
		routerGroup.Post("/search", handler.SearchPlaces)
		routerGroup.Post("/", handler.CreatePlace)
	})
}

// GetNearbyPlaces returns places within a radius of a coordinate.
// @Summary Get nearby places
// @Description Retrieve places within a radius (meters, default 5000) of the given coordinate, nearest first.
// @Tags Place
// @Accept json
// @Produce json
// @Param latitude query number true "Latitude"
// @Param longitude query number true "Longitude"
// @Param radius query number false "Radius in meters"
// @Success 200 {object} response.Data[dto.NearbyPlacesResponse] "Nearby places"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/places/nearby [get]
func (handler *Handler) GetNearbyPlaces(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetNearbyPlaces")
	defer scope.End()

	lat := shared.ConvertStringToFloat(r.URL.Query().Get(constant.RequestParamLatitude))
	lng := shared.ConvertStringToFloat(r.URL.Query().Get(constant.RequestParamLongitude))

	if lat == nil || lng == nil {
		err := failure.BadRequestFromString("latitude and longitude are required")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	var radius float64
	if converted := shared.ConvertStringToFloat(r.URL.Query().Get(constant.RequestParamRadius)); converted != nil {
		radius = *converted
	}

	places, err := handler.service.Nearby(ctx, *lat, *lng, radius)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get nearby places")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Nearby places retrieved successfully")

	response.WithJSON(w, http.StatusOK, places)
}

// GetPlaces retrieves all places with pagination.
// @Summary Get all places
// @Description Retrieve all places with optional type filtering and pagination, most recent first.
// @Tags Place
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param type query string false "Filter by place type"
// @Success 200 {object} response.Data[dto.GetPlacesResponse] "List of places"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/places [get]
func (handler *Handler) GetPlaces(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPlaces")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	placeType := r.URL.Query().Get(constant.RequestParamType)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if placeType != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldPlaceType,
			Operator: gDto.FilterOperatorEq,
			Value:    placeType,
			Table:    model.TableName,
		})
	}

	places, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get places")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Places retrieved successfully")

	response.WithJSON(w, http.StatusOK, places)
}

// GetPlaceByID retrieves a place with its reviews.
// @Summary Get a place by ID
// @Description Retrieve a place by its unique identifier, including its reviews.
// @Tags Place
// @Accept json
// @Produce json
// @Param id path string true "Place ID"
// @Success 200 {object} response.Data[dto.PlaceDetailResponse] "Place details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/places/{id} [get]
func (handler *Handler) GetPlaceByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPlaceByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	place, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get place by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Place retrieved successfully")

	response.WithJSON(w, http.StatusOK, place)
}

// SearchPlaces performs a free-text place search.
// @Summary Search places
// @Description Search places by free text, optionally biased toward a coordinate. Falls back to the local catalog when the external geocoder fails or returns nothing.
// @Tags Place
// @Accept json
// @Produce json
// @Param request body dto.SearchPlacesRequest true "Search Places Request"
// @Success 200 {object} response.Data[dto.SearchPlacesResponse] "Search results"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/places/search [post]
func (handler *Handler) SearchPlaces(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchPlaces")
	defer scope.End()

	req := dto.SearchPlacesRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	results, err := handler.service.Search(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search places")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Places searched successfully")

	response.WithJSON(w, http.StatusOK, results)
}

// CreatePlace adds a place to the catalog, deduplicating against existing rows.
// @Summary Add a place
// @Description Add a place to the catalog. An existing place matched by external ID or by name and address is returned instead of inserting a duplicate.
// @Tags Place
// @Accept json
// @Produce json
// @Param request body dto.CreatePlaceRequest true "Create Place Request"
// @Success 200 {object} response.Data[dto.PlaceResponse] "Existing place returned"
// @Success 201 {object} response.Data[dto.PlaceResponse] "Place created successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/places [post]
// @Security BearerAuth
func (handler *Handler) CreatePlace(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePlace")
	defer scope.End()

	req := dto.CreatePlaceRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	place, created, err := handler.service.GetOrCreate(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create place")

		response.WithError(w, err)

		return
	}

	if !created {
		scope.AddEvent("Existing place returned")

		response.WithMessageJSON(w, http.StatusOK, "Place already exists", place)

		return
	}

	scope.AddEvent("Place created successfully")

	response.WithMessageJSON(w, http.StatusCreated, "Place created successfully", place)
}
