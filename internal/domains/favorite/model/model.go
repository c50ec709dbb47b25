package model

import "quiethours/shared/model"

const (
	TableName  = "favorites"
	EntityName = "favorite"

	FieldID      = "id"
	FieldUserID  = "user_id"
	FieldPlaceID = "place_id"
)

type Favorite struct {
	ID      string `db:"id"`
	UserID  string `db:"user_id"`
	PlaceID string `db:"place_id"`
	model.Metadata
}

// FavoriteWithPlace joins the favorited place for listings.
type FavoriteWithPlace struct {
	Favorite
	PlaceName    string   `db:"place_name"        table:"places" column:"name"`
	PlaceAddress string   `db:"place_address"     table:"places" column:"address"`
	Latitude     float64  `db:"place_latitude"    table:"places" column:"latitude"`
	Longitude    float64  `db:"place_longitude"   table:"places" column:"longitude"`
	PlaceType    *string  `db:"place_type"        table:"places" column:"place_type"`
	PlaceRating  float64  `db:"place_rating"      table:"places" column:"rating"`
	PlaceImage   *string  `db:"place_image"       table:"places" column:"image"`
	HourlyRate   *float64 `db:"place_hourly_rate" table:"places" column:"hourly_rate"`
}

func (f FavoriteWithPlace) GetJoinQuery() string {
	return "JOIN places ON places.id = favorites.place_id"
}
