package models

import "fmt"

// CapacityClass is the number of seats a spot offers.
type CapacityClass string

const (
	CapacitySingle CapacityClass = "single"
	CapacityDouble CapacityClass = "double"
	CapacityTriple CapacityClass = "triple"
	CapacityQuad   CapacityClass = "quad"
)

// Seats returns how many people the class seats.
func (c CapacityClass) Seats() int {
	switch c {
	case CapacitySingle:
		return 1
	case CapacityDouble:
		return 2
	case CapacityTriple:
		return 3
	case CapacityQuad:
		return 4
	}
	return 0
}

// CapacityForSeats maps a seat count reported by the booking service to a class.
func CapacityForSeats(n int) (CapacityClass, error) {
	switch n {
	case 1:
		return CapacitySingle, nil
	case 2:
		return CapacityDouble, nil
	case 3:
		return CapacityTriple, nil
	case 4:
		return CapacityQuad, nil
	}
	return "", fmt.Errorf("unsupported spot capacity %d", n)
}

// Spot is a bookable place in a coworking, as seen by one availability query.
type Spot struct {
	ID        string        `json:"id"`
	Name      string        `json:"name,omitempty"`
	Position  int           `json:"position"` // 1-based display index
	Capacity  CapacityClass `json:"capacity,omitempty"`
	Available bool          `json:"available"`
}
