package catalog

import "bookit/models"

var schemes = map[int][]SpotSlot{
	1: schemeOne,
}

// schemeOne is the 28-place open space: two columns of four blocks
// (two singles over a double), a quad and a triple under each column.
var schemeOne = []SpotSlot{
	{Position: 1, Capacity: models.CapacitySingle, Side: SideLeft, X: 24, Y: 24, Width: 48, Height: 48},
	{Position: 2, Capacity: models.CapacitySingle, Side: SideLeft, X: 80, Y: 24, Width: 48, Height: 48},
	{Position: 3, Capacity: models.CapacityDouble, Side: SideLeft, X: 24, Y: 80, Width: 104, Height: 48},
	{Position: 4, Capacity: models.CapacitySingle, Side: SideLeft, X: 24, Y: 176, Width: 48, Height: 48},
	{Position: 5, Capacity: models.CapacitySingle, Side: SideLeft, X: 80, Y: 176, Width: 48, Height: 48},
	{Position: 6, Capacity: models.CapacityDouble, Side: SideLeft, X: 24, Y: 232, Width: 104, Height: 48},
	{Position: 7, Capacity: models.CapacitySingle, Side: SideLeft, X: 24, Y: 328, Width: 48, Height: 48},
	{Position: 8, Capacity: models.CapacitySingle, Side: SideLeft, X: 80, Y: 328, Width: 48, Height: 48},
	{Position: 9, Capacity: models.CapacityDouble, Side: SideLeft, X: 24, Y: 384, Width: 104, Height: 48},
	{Position: 10, Capacity: models.CapacitySingle, Side: SideLeft, X: 24, Y: 480, Width: 48, Height: 48},
	{Position: 11, Capacity: models.CapacitySingle, Side: SideLeft, X: 80, Y: 480, Width: 48, Height: 48},
	{Position: 12, Capacity: models.CapacityDouble, Side: SideLeft, X: 24, Y: 536, Width: 104, Height: 48},
	{Position: 13, Capacity: models.CapacitySingle, Side: SideRight, X: 304, Y: 24, Width: 48, Height: 48},
	{Position: 14, Capacity: models.CapacitySingle, Side: SideRight, X: 360, Y: 24, Width: 48, Height: 48},
	{Position: 15, Capacity: models.CapacityDouble, Side: SideRight, X: 304, Y: 80, Width: 104, Height: 48},
	{Position: 16, Capacity: models.CapacitySingle, Side: SideRight, X: 304, Y: 176, Width: 48, Height: 48},
	{Position: 17, Capacity: models.CapacitySingle, Side: SideRight, X: 360, Y: 176, Width: 48, Height: 48},
	{Position: 18, Capacity: models.CapacityDouble, Side: SideRight, X: 304, Y: 232, Width: 104, Height: 48},
	{Position: 19, Capacity: models.CapacitySingle, Side: SideRight, X: 304, Y: 328, Width: 48, Height: 48},
	{Position: 20, Capacity: models.CapacitySingle, Side: SideRight, X: 360, Y: 328, Width: 48, Height: 48},
	{Position: 21, Capacity: models.CapacityDouble, Side: SideRight, X: 304, Y: 384, Width: 104, Height: 48},
	{Position: 22, Capacity: models.CapacitySingle, Side: SideRight, X: 304, Y: 480, Width: 48, Height: 48},
	{Position: 23, Capacity: models.CapacitySingle, Side: SideRight, X: 360, Y: 480, Width: 48, Height: 48},
	{Position: 24, Capacity: models.CapacityDouble, Side: SideRight, X: 304, Y: 536, Width: 104, Height: 48},
	{Position: 25, Capacity: models.CapacityQuad, Side: SideLeft, X: 24, Y: 656, Width: 104, Height: 104},
	{Position: 26, Capacity: models.CapacityTriple, Side: SideLeft, X: 24, Y: 808, Width: 160, Height: 48},
	{Position: 27, Capacity: models.CapacityQuad, Side: SideRight, X: 304, Y: 656, Width: 104, Height: 104},
	{Position: 28, Capacity: models.CapacityTriple, Side: SideRight, X: 248, Y: 808, Width: 160, Height: 48},
}
