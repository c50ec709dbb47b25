package favorite

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"quiethours/infras/otel"
	"quiethours/internal/domains/favorite/model/dto"
	"quiethours/internal/domains/favorite/service"
	reviewDto "quiethours/internal/domains/review/model/dto"
	reviewService "quiethours/internal/domains/review/service"
	"quiethours/shared/constant"
	gDto "quiethours/shared/dto"
	"quiethours/shared/validator"
	"quiethours/transport/http/response"
)

// Handler serves the favorites routes. Review creation lives here too since
// the client posts reviews under /favorites/review.
type Handler struct {
	service       service.Favorite
	reviewService reviewService.Review
	otel          otel.Otel
}

func New(service service.Favorite, reviewService reviewService.Review, otel otel.Otel) Handler {
	return Handler{
		service:       service,
		reviewService: reviewService,
		otel:          otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/favorites", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.AddFavorite)
		routerGroup.Get("/", handler.GetFavorites)
		routerGroup.Delete("/{placeId}", handler.RemoveFavorite)
		routerGroup.Get("/{placeId}/check", handler.CheckFavorite)
		routerGroup.Post("/review", handler.CreateReview)
	})
}

// AddFavorite marks a place as a favorite of the authenticated user.
// @Summary Add a favorite
// @Description Mark a place as a favorite. Adding the same place twice is a conflict.
// @Tags Favorite
// @Accept json
// @Produce json
// @Param request body dto.AddFavoriteRequest true "Add Favorite Request"
// @Success 201 {object} response.Data[dto.FavoriteResponse] "Favorite added successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/favorites [post]
// @Security BearerAuth
func (handler *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddFavorite")
	defer scope.End()

	req := dto.AddFavoriteRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	favorite, err := handler.service.Add(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add favorite")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Favorite added successfully")

	response.WithMessageJSON(w, http.StatusCreated, "Favorite added successfully", favorite)
}

// GetFavorites lists the authenticated user's favorites.
// @Summary Get favorites
// @Description Retrieve the authenticated user's favorite places, most recently favorited first.
// @Tags Favorite
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetFavoritesResponse] "List of favorites"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/favorites [get]
// @Security BearerAuth
func (handler *Handler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFavorites")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	favorites, err := handler.service.List(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get favorites")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Favorites retrieved successfully")

	response.WithJSON(w, http.StatusOK, favorites)
}

// RemoveFavorite unmarks a favorite place.
// @Summary Remove a favorite
// @Description Remove a place from the authenticated user's favorites.
// @Tags Favorite
// @Accept json
// @Produce json
// @Param placeId path string true "Place ID"
// @Success 200 {object} response.Message "Favorite removed successfully"
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/favorites/{placeId} [delete]
// @Security BearerAuth
func (handler *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveFavorite")
	defer scope.End()

	placeID := chi.URLParam(r, constant.RequestParamPlaceID)

	if err := handler.service.Remove(ctx, placeID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to remove favorite")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Favorite removed successfully")

	response.WithMessage(w, http.StatusOK, "Favorite removed successfully")
}

// CheckFavorite reports whether a place is a favorite of the user.
// @Summary Check a favorite
// @Description Check whether the given place is among the authenticated user's favorites.
// @Tags Favorite
// @Accept json
// @Produce json
// @Param placeId path string true "Place ID"
// @Success 200 {object} response.Data[dto.CheckFavoriteResponse] "Favorite status"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/favorites/{placeId}/check [get]
// @Security BearerAuth
func (handler *Handler) CheckFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckFavorite")
	defer scope.End()

	placeID := chi.URLParam(r, constant.RequestParamPlaceID)

	res, err := handler.service.Check(ctx, placeID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check favorite")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Favorite checked successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// CreateReview leaves a review on a place.
// @Summary Create a review
// @Description Leave a rating (1-5) and optional comment on a place. Reviews are append-only.
// @Tags Favorite
// @Accept json
// @Produce json
// @Param request body reviewDto.CreateReviewRequest true "Create Review Request"
// @Success 201 {object} response.Data[reviewDto.ReviewResponse] "Review created successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/favorites/review [post]
// @Security BearerAuth
func (handler *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReview")
	defer scope.End()

	req := reviewDto.CreateReviewRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	review, err := handler.reviewService.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create review")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Review created successfully")

	response.WithMessageJSON(w, http.StatusCreated, "Review created successfully", review)
}
