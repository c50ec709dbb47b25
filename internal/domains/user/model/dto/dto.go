package dto

import (
	"quiethours/internal/domains/user/model"
	gDto "quiethours/shared/dto"
)

type UserResponse struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Phone        *string `json:"phone,omitempty"`
	Bio          *string `json:"bio,omitempty"`
	ProfileImage *string `json:"profile_image,omitempty"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.FirstName = model.FirstName
	r.LastName = model.LastName
	r.Phone = model.Phone
	r.Bio = model.Bio
	r.ProfileImage = model.ProfileImage
	r.Metadata.FromModel(model.Metadata)
}

// UpdateProfileFields carries only db-tagged fields so the generic update
// writes exactly what the caller set. Omitted fields stay untouched.
type UpdateProfileFields struct {
	FirstName    *string `db:"first_name"    json:"first_name,omitempty"`
	LastName     *string `db:"last_name"     json:"last_name,omitempty"`
	Phone        *string `db:"phone"         json:"phone,omitempty"`
	Bio          *string `db:"bio"           json:"bio,omitempty"`
	ProfileImage *string `db:"profile_image" json:"profile_image,omitempty"`
}
