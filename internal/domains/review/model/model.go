package model

import "quiethours/shared/model"

const (
	TableName  = "reviews"
	EntityName = "review"

	FieldID      = "id"
	FieldUserID  = "user_id"
	FieldPlaceID = "place_id"
	FieldRating  = "rating"
	FieldComment = "comment"
)

type Review struct {
	ID      string  `db:"id"`
	UserID  string  `db:"user_id"`
	PlaceID string  `db:"place_id"`
	Rating  int     `db:"rating"`
	Comment *string `db:"comment"`
	model.Metadata
}

// ReviewWithUser carries the reviewer's name joined from users.
type ReviewWithUser struct {
	Review
	ReviewerFirstName string `db:"reviewer_first_name"`
	ReviewerLastName  string `db:"reviewer_last_name"`
}
