// README: Deterministic rating/price derivation for entities the upstream leaves unrated.
package enrichment

import (
	"crypto/md5" //nolint:gosec // distribution, not security
	"math/big"
	"strconv"
)

// PriceRange is an inclusive whole-euro range.
type PriceRange struct {
	Min int64
	Max int64
}

var (
	AttractionPrices = PriceRange{Min: 10, Max: 50}  //nolint:gochecknoglobals
	RestaurantPrices = PriceRange{Min: 10, Max: 50}  //nolint:gochecknoglobals
	HotelPrices      = PriceRange{Min: 80, Max: 169} //nolint:gochecknoglobals
)

const ratingSteps = 2000

// Derived is a stable rating and price for one identifier.
type Derived struct {
	Rating float64
	Price  int64
}

// Derive maps identifier into a rating in [3.0, 5.0] and a price in r.
// The result depends on nothing but the identifier bytes.
func Derive(identifier string, r PriceRange) Derived {
	h := hash(identifier)
	rating := 3.0 + float64(mod(h, ratingSteps))/1000.0
	return Derived{
		Rating: round1(rating),
		Price:  r.Min + int64(mod(h, uint64(r.Max-r.Min+1))),
	}
}

// round1 rounds to one decimal on the exact binary value, ties to even:
// 3.05 is stored below the tie and gives 3.0, 3.25 is exact and gives 3.2.
func round1(x float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 1, 64), 64)
	return r
}

// Project returns hash(identifier) mod n, for other synthetic values.
func Project(identifier string, n uint64) uint64 {
	if n == 0 {
		return 0
	}
	return mod(hash(identifier), n)
}

// hash reads the MD5 digest as a big-endian unsigned integer.
func hash(identifier string) *big.Int {
	sum := md5.Sum([]byte(identifier)) //nolint:gosec
	return new(big.Int).SetBytes(sum[:])
}

func mod(h *big.Int, n uint64) uint64 {
	return new(big.Int).Mod(h, new(big.Int).SetUint64(n)).Uint64()
}
