package dto

import (
	"quiethours/infras/jwt"
	userModel "quiethours/internal/domains/user/model"
	userDto "quiethours/internal/domains/user/model/dto"
	gModel "quiethours/shared/model"
	"quiethours/shared/timezone"

	"github.com/google/uuid"
)

type SignupRequest struct {
	FirstName       string `json:"first_name"       validate:"required"`
	LastName        string `json:"last_name"        validate:"required"`
	Email           string `json:"email"            validate:"required,email"`
	Password        string `json:"password"         validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

func (r *SignupRequest) ToUserModel(hashedPassword string) userModel.User {
	id := uuid.NewString()

	return userModel.User{
		ID:        id,
		Email:     r.Email,
		Password:  hashedPassword,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  id,
			ModifiedBy: id,
		},
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken string               `json:"access_token"`
	TokenType   string               `json:"token_type"`
	ExpiresIn   int64                `json:"expires_in"`
	User        userDto.UserResponse `json:"user"`
}

func (r *AuthResponse) FromToken(token *jwt.Token, user userModel.User) {
	r.AccessToken = token.AccessToken
	r.TokenType = token.TokenType
	r.ExpiresIn = token.ExpiresIn
	r.User.FromModel(user)
}

type UpdateProfileRequest struct {
	FirstName    *string `json:"first_name,omitempty"`
	LastName     *string `json:"last_name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Bio          *string `json:"bio,omitempty"`
	ProfileImage *string `json:"profile_image,omitempty" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=5"`
}
