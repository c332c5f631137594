package foursquare_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"travelapi/internal/config"
	"travelapi/internal/providers/foursquare"
	"travelapi/internal/types"
)

func TestClient(t *testing.T) {
	rq := require.New(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/places/search", func(w http.ResponseWriter, r *http.Request) {
		rq.Equal("fsq-key", r.Header.Get("Authorization"))
		rq.Equal("43.7,7.26", r.URL.Query().Get("ll"))
		rq.Equal("1000", r.URL.Query().Get("radius"))
		rq.Equal("19014", r.URL.Query().Get("categories"))
		rq.Empty(r.URL.Query().Get("query"))
		_, _ = w.Write([]byte(`{"results":[{"fsq_id":"abc","name":"Hotel Negresco","distance":120,
			"location":{"address":"37 Prom. des Anglais","formatted_address":"37 Prom. des Anglais, 06000 Nice"},
			"categories":[{"name":"Hotel"}]}]}`))
	})
	mux.HandleFunc("/places/abc", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"fsq_id":"abc","name":"Hotel Negresco","tel":"04 93 16 64 00","website":"https://www.hotel-negresco-nice.com"}`))
	})
	mux.HandleFunc("/places/abc/photos", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"prefix":"https://fastly.4sqi.net/img/general/","suffix":"/1.jpg"}]`))
	})
	httpServer := httptest.NewServer(mux)
	defer httpServer.Close()

	c := foursquare.New(config.Foursquare{APIKey: "fsq-key", BaseURL: httpServer.URL}, httpServer.Client())
	ctx := context.Background()

	places, err := c.Search(ctx, foursquare.SearchParams{
		Near:       types.Point{Lat: 43.7, Lng: 7.26},
		Radius:     1000,
		Limit:      5,
		Categories: "19014",
	})
	rq.NoError(err)
	rq.Len(places, 1)
	rq.Equal("abc", places[0].ID)
	rq.Equal(120, *places[0].Distance)
	rq.Equal("Hotel", places[0].Categories[0].Name)

	details, err := c.Details(ctx, "abc")
	rq.NoError(err)
	rq.Equal("04 93 16 64 00", details.Tel)

	photos, err := c.Photos(ctx, "abc")
	rq.NoError(err)
	rq.Equal("https://fastly.4sqi.net/img/general/original/1.jpg", photos[0].URL())
}
