package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookit/models"
)

func TestSchemeOneTable(t *testing.T) {
	slots, err := LayoutFor("1")
	require.NoError(t, err)
	require.Len(t, slots, 28)

	counts := map[models.CapacityClass]int{}
	for i, s := range slots {
		assert.Equal(t, i+1, s.Position, "slots are position ordered")
		counts[s.Capacity]++
	}
	assert.Equal(t, 16, counts[models.CapacitySingle])
	assert.Equal(t, 8, counts[models.CapacityDouble])
	assert.Equal(t, 2, counts[models.CapacityTriple])
	assert.Equal(t, 2, counts[models.CapacityQuad])

	assert.Equal(t, SideLeft, slots[11].Side)
	assert.Equal(t, SideRight, slots[12].Side)
	assert.Equal(t, models.CapacityQuad, slots[24].Capacity)
	assert.Equal(t, models.CapacityTriple, slots[27].Capacity)
}

func TestLayoutForReturnsCopy(t *testing.T) {
	a, err := LayoutFor("1")
	require.NoError(t, err)
	a[0].Position = 99

	b, err := LayoutFor("1")
	require.NoError(t, err)
	assert.Equal(t, 1, b[0].Position)
}

func TestLayoutForUnknown(t *testing.T) {
	_, err := LayoutFor("nowhere")
	var unknown *UnknownLayoutError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "nowhere", unknown.CoworkingID)
}

func TestConfigureLayouts(t *testing.T) {
	require.NoError(t, ConfigureLayouts(" cw-42=1 , ,cw-43=1"))

	slots, err := LayoutFor("cw-42")
	require.NoError(t, err)
	assert.Len(t, slots, 28)

	assert.Error(t, ConfigureLayouts("cw-44"))
	assert.Error(t, ConfigureLayouts("cw-44=x"))
	assert.Error(t, ConfigureLayouts("cw-44=9"))
}

func TestGenericGrid(t *testing.T) {
	slots := GenericGrid(6, 4)
	require.Len(t, slots, 6)
	assert.Equal(t, SpotSlot{Position: 5, Capacity: models.CapacitySingle, X: 24, Y: 80, Width: 48, Height: 48}, slots[4])

	assert.Empty(t, GenericGrid(0, 4))
	assert.Len(t, GenericGrid(3, 0), 3)
}

func TestArrange(t *testing.T) {
	layout := GenericGrid(3, 3)
	spots := []models.Spot{
		{ID: "s3", Position: 3, Available: true},
		{ID: "s1", Position: 1, Capacity: models.CapacityDouble},
		{ID: "s9", Position: 9, Available: true},
	}

	placed := Arrange(layout, spots)
	require.Len(t, placed, 3)
	assert.Equal(t, "s1", placed[0].Spot.ID)
	assert.Equal(t, models.CapacityDouble, placed[0].Spot.Capacity)
	assert.Equal(t, models.Spot{Position: 2, Capacity: models.CapacitySingle}, placed[1].Spot)
	assert.True(t, placed[2].Spot.Available)
}
