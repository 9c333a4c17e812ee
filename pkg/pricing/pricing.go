// Package pricing holds the pure arithmetic behind booking totals and
// displayed prices.
package pricing

import (
	"math"
	"time"
)

const (
	ChildFactor  = 0.7
	InfantFactor = 0.1

	DefaultCurrency = "USD"
)

const day = 24 * time.Hour

// Nights is the ceiling of the whole-day difference between the two dates.
// It returns 0 when checkOut is not after checkIn.
func Nights(checkIn, checkOut time.Time) int {
	diff := checkOut.Sub(checkIn)
	if diff <= 0 {
		return 0
	}
	return int(math.Ceil(float64(diff) / float64(day)))
}

func HotelTotal(pricePerNight float64, nights, rooms int) float64 {
	return pricePerNight * float64(nights) * float64(rooms)
}

func TourTotal(pricePerPerson float64, adults, children, infants int) float64 {
	return pricePerPerson*float64(adults) +
		pricePerPerson*ChildFactor*float64(children) +
		pricePerPerson*InfantFactor*float64(infants)
}

// ToMinorUnits converts an amount to the smallest currency unit (cents).
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}
