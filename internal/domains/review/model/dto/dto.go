package dto

import (
	"quiethours/internal/domains/review/model"
	gDto "quiethours/shared/dto"
	gModel "quiethours/shared/model"
	"quiethours/shared/timezone"

	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	PlaceID string  `json:"place_id" validate:"required,uuid4"`
	Rating  int     `json:"rating"   validate:"required,min=1,max=5"`
	Comment *string `json:"comment,omitempty"`
}

func (r *CreateReviewRequest) ToModel(userID string) model.Review {
	return model.Review{
		ID:      uuid.NewString(),
		UserID:  userID,
		PlaceID: r.PlaceID,
		Rating:  r.Rating,
		Comment: r.Comment,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}
}

type ReviewResponse struct {
	ID      string  `json:"id"`
	UserID  string  `json:"user_id"`
	PlaceID string  `json:"place_id"`
	Rating  int     `json:"rating"`
	Comment *string `json:"comment,omitempty"`
	gDto.Metadata
}

func (r *ReviewResponse) FromModel(model model.Review) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.PlaceID = model.PlaceID
	r.Rating = model.Rating
	r.Comment = model.Comment
	r.Metadata.FromModel(model.Metadata)
}
