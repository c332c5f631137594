// README: Airport dataset: embedded CSV by default, optionally replaced by a Postgres table.
package airport

import (
	"context"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"travelapi/internal/apperr"
	"travelapi/internal/types"
)

//go:embed airports.csv
var embeddedCSV string

var csvHeader = []string{"iata", "icao", "name", "city", "country", "lat", "lon"} //nolint:gochecknoglobals

// Store is immutable after construction and safe for concurrent reads.
type Store struct {
	airports []Airport
	byCode   map[string]int
	byCity   map[string]int
	byName   map[string]int
}

// NewStore indexes airports. The first airport listed for a city is that
// city's primary airport.
func NewStore(airports []Airport) *Store {
	s := &Store{
		airports: airports,
		byCode:   make(map[string]int, len(airports)*2),
		byCity:   make(map[string]int, len(airports)),
		byName:   make(map[string]int, len(airports)),
	}
	for i, a := range airports {
		for _, entry := range []struct {
			key string
			idx map[string]int
		}{
			{strings.ToUpper(a.IATA), s.byCode},
			{strings.ToUpper(a.ICAO), s.byCode},
			{fold(a.City), s.byCity},
			{fold(a.Name), s.byName},
		} {
			if entry.key == "" {
				continue
			}
			if _, seen := entry.idx[entry.key]; !seen {
				entry.idx[entry.key] = i
			}
		}
	}
	return s
}

func LoadEmbedded() (*Store, error) {
	airports, err := ParseCSV(strings.NewReader(embeddedCSV))
	if err != nil {
		return nil, fmt.Errorf("embedded airports: %w", err)
	}
	return NewStore(airports), nil
}

// ParseCSV reads rows of iata,icao,name,city,country,lat,lon with a header line.
func ParseCSV(r io.Reader) ([]Airport, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(csvHeader)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, col := range csvHeader {
		if strings.TrimSpace(strings.ToLower(header[i])) != col {
			return nil, fmt.Errorf("unexpected column %d: %q, want %q", i, header[i], col)
		}
	}

	var airports []Airport
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		lat, err := strconv.ParseFloat(rec[5], 64)
		if err != nil {
			return nil, fmt.Errorf("airport %s lat: %w", rec[0], err)
		}
		lng, err := strconv.ParseFloat(rec[6], 64)
		if err != nil {
			return nil, fmt.Errorf("airport %s lon: %w", rec[0], err)
		}
		airports = append(airports, Airport{
			IATA:     rec[0],
			ICAO:     rec[1],
			Name:     rec[2],
			City:     rec[3],
			Country:  rec[4],
			Location: types.Point{Lat: lat, Lng: lng},
		})
	}
	return airports, nil
}

// LoadFromDB reads the dataset from table, keeping the table's id order so
// the primary airport of each city stays first.
func LoadFromDB(ctx context.Context, db *pgxpool.Pool, table string) (*Store, error) {
	query := fmt.Sprintf(
		"SELECT iata, icao, name, city, country, lat, lon FROM %s ORDER BY id",
		pgx.Identifier(strings.Split(table, ".")).Sanitize(),
	)
	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db.Query: %w", err)
	}

	airports, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Airport, error) {
		var a Airport
		err := row.Scan(&a.IATA, &a.ICAO, &a.Name, &a.City, &a.Country, &a.Location.Lat, &a.Location.Lng)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("pgx.CollectRows: %w", err)
	}
	if len(airports) == 0 {
		return nil, fmt.Errorf("table %s holds no airports", table)
	}
	return NewStore(airports), nil
}

func (s *Store) Len() int {
	return len(s.airports)
}

// Lookup resolves a city, airport name or code. Matching ignores case and
// accents; city matches win over name matches.
func (s *Store) Lookup(query string) (Airport, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return Airport{}, apperr.InvalidInput("city is required")
	}

	if len(q) == 3 || len(q) == 4 {
		if i, ok := s.byCode[strings.ToUpper(q)]; ok {
			return s.airports[i], nil
		}
	}

	key := fold(q)
	if i, ok := s.byCity[key]; ok {
		return s.airports[i], nil
	}
	if i, ok := s.byName[key]; ok {
		return s.airports[i], nil
	}
	for _, a := range s.airports {
		if strings.HasPrefix(fold(a.Name), key+" ") {
			return a, nil
		}
	}
	return Airport{}, apperr.NoAirport(query)
}
