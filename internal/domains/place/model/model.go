package model

import "quiethours/shared/model"

const (
	TableName  = "places"
	EntityName = "place"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldAddress     = "address"
	FieldLatitude    = "latitude"
	FieldLongitude   = "longitude"
	FieldPlaceType   = "place_type"
	FieldAmenities   = "amenities"
	FieldRating      = "rating"
	FieldImage       = "image"
	FieldHourlyRate  = "hourly_rate"
	FieldExternalID  = "external_id"
)

type Place struct {
	ID          string   `db:"id"`
	Name        string   `db:"name"`
	Description *string  `db:"description"`
	Address     string   `db:"address"`
	Latitude    float64  `db:"latitude"`
	Longitude   float64  `db:"longitude"`
	PlaceType   *string  `db:"place_type"`
	Amenities   *string  `db:"amenities"`
	Rating      float64  `db:"rating"`
	Image       *string  `db:"image"`
	HourlyRate  *float64 `db:"hourly_rate"`
	ExternalID  *string  `db:"external_id"`
	model.Metadata
}

// PlaceWithDistance is a Place plus the great-circle distance (meters)
// computed by the nearby query.
type PlaceWithDistance struct {
	Place
	Distance float64 `db:"distance"`
}
