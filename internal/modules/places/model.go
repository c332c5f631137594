// README: Place search kinds and the shared response schema for attractions, hotels and restaurants.
package places

import (
	"travelapi/internal/modules/enrichment"
)

type Kind string

const (
	KindAttraction Kind = "attraction"
	KindHotel      Kind = "hotel"
	KindRestaurant Kind = "restaurant"
)

const (
	noPhoto   = "No photo available"
	noAddress = "No address available"
	noName    = "No name available"
	unknown   = "Unknown"
)

type kindConfig struct {
	categories   string
	defaultLimit int
	prices       enrichment.PriceRange
	withDetails  bool
}

var kinds = map[Kind]kindConfig{ //nolint:gochecknoglobals
	KindAttraction: {categories: "16023,16032,16001,16021,16019", defaultLimit: 10, prices: enrichment.AttractionPrices},
	KindHotel:      {categories: "19014", defaultLimit: 5, prices: enrichment.HotelPrices},
	KindRestaurant: {categories: "13065", defaultLimit: 5, prices: enrichment.RestaurantPrices, withDetails: true},
}

const defaultRadius = 1000

type Query struct {
	City       string `form:"city" validate:"required,max=200"`
	Radius     int    `form:"radius" validate:"omitempty,min=1,max=100000"`
	Limit      int    `form:"limit" validate:"omitempty,min=1,max=50"`
	Query      string `form:"query" validate:"max=200"`
	Categories string `form:"categories" validate:"omitempty,max=200"`
}

// Place is one venue. Rating and price are derived from the venue id since
// the search API does not return them.
type Place struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Location   string   `json:"location"`
	Distance   any      `json:"distance"`
	Rating     float64  `json:"rating"`
	Price      int64    `json:"price"`
	Currency   string   `json:"currency"`
	Categories []string `json:"categories"`
	Photos     []string `json:"photos"`
	Phone      string   `json:"phone,omitempty"`
	Website    string   `json:"website,omitempty"`
}
