package dto

import (
	"quiethours/infras/photon"
	"quiethours/internal/domains/place/model"
	reviewModel "quiethours/internal/domains/review/model"
	"quiethours/shared"
	gDto "quiethours/shared/dto"
	gModel "quiethours/shared/model"
	"quiethours/shared/timezone"

	"github.com/google/uuid"
)

type PlaceResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Address     string   `json:"address"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	PlaceType   *string  `json:"place_type,omitempty"`
	Amenities   *string  `json:"amenities,omitempty"`
	Rating      float64  `json:"rating"`
	Image       *string  `json:"image,omitempty"`
	HourlyRate  *float64 `json:"hourly_rate,omitempty"`
	ExternalID  *string  `json:"external_id,omitempty"`
	Distance    *float64 `json:"distance,omitempty"`
	gDto.Metadata
}

func (r *PlaceResponse) FromModel(model model.Place) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Address = model.Address
	r.Latitude = model.Latitude
	r.Longitude = model.Longitude
	r.PlaceType = model.PlaceType
	r.Amenities = model.Amenities
	r.Rating = model.Rating
	r.Image = model.Image
	r.HourlyRate = model.HourlyRate
	r.ExternalID = model.ExternalID
	r.Metadata.FromModel(model.Metadata)
}

func (r *PlaceResponse) FromModelWithDistance(model model.PlaceWithDistance) {
	r.FromModel(model.Place)

	distance := model.Distance
	r.Distance = &distance
}

type GetPlacesResponse struct {
	Places    []PlaceResponse `json:"places"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetPlacesResponse) FromModels(models []model.Place, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Places = make([]PlaceResponse, len(models))
	for i, mod := range models {
		r.Places[i].FromModel(mod)
	}
}

type NearbyPlacesResponse struct {
	Places []PlaceResponse `json:"places"`
}

func (r *NearbyPlacesResponse) FromModels(models []model.PlaceWithDistance) {
	r.Places = make([]PlaceResponse, len(models))
	for i, mod := range models {
		r.Places[i].FromModelWithDistance(mod)
	}
}

type PlaceReviewResponse struct {
	ID           string  `json:"id"`
	Rating       int     `json:"rating"`
	Comment      *string `json:"comment,omitempty"`
	ReviewerName string  `json:"reviewer_name"`
	gDto.Metadata
}

func (r *PlaceReviewResponse) FromModel(model reviewModel.ReviewWithUser) {
	r.ID = model.ID
	r.Rating = model.Rating
	r.Comment = model.Comment
	r.ReviewerName = model.ReviewerFirstName + " " + model.ReviewerLastName
	r.Metadata.FromModel(model.Metadata)
}

type PlaceDetailResponse struct {
	PlaceResponse
	Reviews []PlaceReviewResponse `json:"reviews"`
}

func (r *PlaceDetailResponse) FromModel(place model.Place, reviews []reviewModel.ReviewWithUser) {
	r.PlaceResponse.FromModel(place)

	r.Reviews = make([]PlaceReviewResponse, len(reviews))
	for i, review := range reviews {
		r.Reviews[i].FromModel(review)
	}
}

type CreatePlaceRequest struct {
	Name        string   `json:"name"        validate:"required"`
	Description *string  `json:"description,omitempty"`
	Address     string   `json:"address"     validate:"required"`
	Latitude    float64  `json:"latitude"    validate:"required,latitude"`
	Longitude   float64  `json:"longitude"   validate:"required,longitude"`
	PlaceType   *string  `json:"place_type,omitempty"`
	Amenities   *string  `json:"amenities,omitempty"`
	Image       *string  `json:"image,omitempty"`
	HourlyRate  *float64 `json:"hourly_rate,omitempty" validate:"omitempty,gte=0"`
	ExternalID  *string  `json:"external_id,omitempty"`
}

func (r *CreatePlaceRequest) ToModel(username string) model.Place {
	return model.Place{
		ID:          uuid.NewString(),
		Name:        r.Name,
		Description: r.Description,
		Address:     r.Address,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		PlaceType:   r.PlaceType,
		Amenities:   r.Amenities,
		Image:       r.Image,
		HourlyRate:  r.HourlyRate,
		ExternalID:  r.ExternalID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

type SearchPlacesRequest struct {
	Query     string   `json:"query" validate:"required"`
	Latitude  *float64 `json:"latitude,omitempty"  validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
}

const (
	SearchSourceExternal = "external"
	SearchSourceLocal    = "local"
)

type SearchResultResponse struct {
	ID         *string `json:"id,omitempty"`
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	PlaceType  *string `json:"place_type,omitempty"`
	ExternalID *string `json:"external_id,omitempty"`
	Source     string  `json:"source"`
}

type SearchPlacesResponse struct {
	Results []SearchResultResponse `json:"results"`
	Source  string                 `json:"source"`
}

func (r *SearchPlacesResponse) FromPhotonResults(results []photon.Result) {
	r.Source = SearchSourceExternal

	r.Results = make([]SearchResultResponse, len(results))
	for i, result := range results {
		externalID := result.ExternalID
		placeType := result.PlaceType

		r.Results[i] = SearchResultResponse{
			Name:       result.Name,
			Address:    result.Address,
			Latitude:   result.Latitude,
			Longitude:  result.Longitude,
			PlaceType:  &placeType,
			ExternalID: &externalID,
			Source:     SearchSourceExternal,
		}
	}
}

func (r *SearchPlacesResponse) FromModels(models []model.Place) {
	r.Source = SearchSourceLocal

	r.Results = make([]SearchResultResponse, len(models))
	for i, mod := range models {
		id := mod.ID

		r.Results[i] = SearchResultResponse{
			ID:         &id,
			Name:       mod.Name,
			Address:    mod.Address,
			Latitude:   mod.Latitude,
			Longitude:  mod.Longitude,
			PlaceType:  mod.PlaceType,
			ExternalID: mod.ExternalID,
			Source:     SearchSourceLocal,
		}
	}
}
