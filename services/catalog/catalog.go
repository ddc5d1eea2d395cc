package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"bookit/models"
)

// Canvas metrics shared by every floor plan, in pixels.
const (
	CellSize     = 48
	PaddingSize  = 8
	BlockPadding = 24
)

// Side is the half of the room a slot belongs to.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// SpotSlot is one drawable place on a floor plan.
type SpotSlot struct {
	Position int                  `json:"position"`
	Capacity models.CapacityClass `json:"capacity"`
	Side     Side                 `json:"side,omitempty"`
	X        int                  `json:"x"`
	Y        int                  `json:"y"`
	Width    int                  `json:"width"`
	Height   int                  `json:"height"`
}

// UnknownLayoutError is returned for coworkings without a known floor plan.
type UnknownLayoutError struct {
	CoworkingID string
}

func (e *UnknownLayoutError) Error() string {
	return fmt.Sprintf("no floor plan for coworking %q", e.CoworkingID)
}

var (
	mu          sync.RWMutex
	assignments = map[string]int{
		"1": 1,
	}
)

// LayoutFor returns the position-ordered slots of the coworking's floor plan.
// The result is a fresh copy.
func LayoutFor(coworkingID string) ([]SpotSlot, error) {
	mu.RLock()
	scheme, ok := assignments[coworkingID]
	mu.RUnlock()
	if !ok {
		return nil, &UnknownLayoutError{CoworkingID: coworkingID}
	}
	table, ok := schemes[scheme]
	if !ok {
		return nil, &UnknownLayoutError{CoworkingID: coworkingID}
	}
	out := make([]SpotSlot, len(table))
	copy(out, table)
	return out, nil
}

// Assign maps a coworking to a known scheme.
func Assign(coworkingID string, scheme int) error {
	if _, ok := schemes[scheme]; !ok {
		return fmt.Errorf("unknown floor plan scheme %d", scheme)
	}
	mu.Lock()
	assignments[coworkingID] = scheme
	mu.Unlock()
	return nil
}

// ConfigureLayouts applies "id=scheme" pairs separated by commas, e.g. "cw-42=1,cw-43=1".
func ConfigureLayouts(spec string) error {
	for _, pair := range strings.Split(spec, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		id, raw, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(id) == "" {
			return fmt.Errorf("invalid layout assignment %q", pair)
		}
		scheme, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("invalid layout scheme in %q: %w", pair, err)
		}
		if err := Assign(strings.TrimSpace(id), scheme); err != nil {
			return err
		}
	}
	return nil
}

// GenericGrid lays n single slots out row by row. Used when a coworking has no floor plan.
func GenericGrid(n, columns int) []SpotSlot {
	if n <= 0 {
		return []SpotSlot{}
	}
	if columns <= 0 {
		columns = 4
	}
	step := CellSize + PaddingSize
	slots := make([]SpotSlot, n)
	for i := range slots {
		slots[i] = SpotSlot{
			Position: i + 1,
			Capacity: models.CapacitySingle,
			X:        BlockPadding + (i%columns)*step,
			Y:        BlockPadding + (i/columns)*step,
			Width:    CellSize,
			Height:   CellSize,
		}
	}
	return slots
}

// PlacedSpot is a slot paired with the spot fetched for it.
type PlacedSpot struct {
	SpotSlot
	Spot models.Spot `json:"spot"`
}

// Arrange pairs every slot with the spot at the same position. Slots without a
// spot are returned as unavailable placeholders. Spots with no slot are dropped.
func Arrange(layout []SpotSlot, spots []models.Spot) []PlacedSpot {
	byPosition := make(map[int]models.Spot, len(spots))
	for _, s := range spots {
		if _, dup := byPosition[s.Position]; !dup {
			byPosition[s.Position] = s
		}
	}
	placed := make([]PlacedSpot, 0, len(layout))
	for _, slot := range layout {
		spot, ok := byPosition[slot.Position]
		if !ok {
			spot = models.Spot{Position: slot.Position, Capacity: slot.Capacity}
		}
		if spot.Capacity == "" {
			spot.Capacity = slot.Capacity
		}
		placed = append(placed, PlacedSpot{SpotSlot: slot, Spot: spot})
	}
	return placed
}
