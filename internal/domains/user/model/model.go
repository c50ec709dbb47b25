package model

import "quiethours/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID           = "id"
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldFirstName    = "first_name"
	FieldLastName     = "last_name"
	FieldPhone        = "phone"
	FieldBio          = "bio"
	FieldProfileImage = "profile_image"
)

type User struct {
	ID           string  `db:"id"`
	Email        string  `db:"email"`
	Password     string  `db:"password"`
	FirstName    string  `db:"first_name"`
	LastName     string  `db:"last_name"`
	Phone        *string `db:"phone"`
	Bio          *string `db:"bio"`
	ProfileImage *string `db:"profile_image"`
	model.Metadata
}
