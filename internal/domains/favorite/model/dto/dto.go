package dto

import (
	"quiethours/internal/domains/favorite/model"
	"quiethours/shared"
	gDto "quiethours/shared/dto"
	gModel "quiethours/shared/model"
	"quiethours/shared/timezone"

	"github.com/google/uuid"
)

type AddFavoriteRequest struct {
	PlaceID string `json:"place_id" validate:"required,uuid4"`
}

func (r *AddFavoriteRequest) ToModel(userID string) model.Favorite {
	return model.Favorite{
		ID:      uuid.NewString(),
		UserID:  userID,
		PlaceID: r.PlaceID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}
}

type FavoriteResponse struct {
	ID      string `json:"id"`
	UserID  string `json:"user_id"`
	PlaceID string `json:"place_id"`
	gDto.Metadata
}

func (r *FavoriteResponse) FromModel(model model.Favorite) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.PlaceID = model.PlaceID
	r.Metadata.FromModel(model.Metadata)
}

type FavoritePlaceResponse struct {
	FavoriteResponse
	PlaceName    string   `json:"place_name"`
	PlaceAddress string   `json:"place_address"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	PlaceType    *string  `json:"place_type,omitempty"`
	PlaceRating  float64  `json:"place_rating"`
	PlaceImage   *string  `json:"place_image,omitempty"`
	HourlyRate   *float64 `json:"hourly_rate,omitempty"`
}

func (r *FavoritePlaceResponse) FromModel(model model.FavoriteWithPlace) {
	r.FavoriteResponse.FromModel(model.Favorite)
	r.PlaceName = model.PlaceName
	r.PlaceAddress = model.PlaceAddress
	r.Latitude = model.Latitude
	r.Longitude = model.Longitude
	r.PlaceType = model.PlaceType
	r.PlaceRating = model.PlaceRating
	r.PlaceImage = model.PlaceImage
	r.HourlyRate = model.HourlyRate
}

type GetFavoritesResponse struct {
	Favorites []FavoritePlaceResponse `json:"favorites"`
	TotalPage int                     `json:"total_page"`
	TotalData int                     `json:"total_data"`
}

func (r *GetFavoritesResponse) FromModels(models []model.FavoriteWithPlace, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Favorites = make([]FavoritePlaceResponse, len(models))
	for i, mod := range models {
		r.Favorites[i].FromModel(mod)
	}
}

type CheckFavoriteResponse struct {
	IsFavorite bool `json:"is_favorite"`
}
