package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookit/models"
	"bookit/services/catalog"
	"bookit/utils"
)

const gridColumns = 4

// CoworkingDirectory is the part of *coworking.Service used here.
type CoworkingDirectory interface {
	List(ctx context.Context) ([]models.CoworkingSummary, error)
	Get(ctx context.Context, id string) (models.CoworkingDetail, error)
}

// SpotFetcher is the part of the booking service behind the floor plan.
type SpotFetcher interface {
	FetchSpots(ctx context.Context, coworkingID string, window models.TimeWindow) ([]models.Spot, error)
}

type CoworkingHandler struct {
	Directory CoworkingDirectory
	Spots     SpotFetcher
}

func NewCoworkingHandler(dir CoworkingDirectory, spots SpotFetcher) *CoworkingHandler {
	return &CoworkingHandler{Directory: dir, Spots: spots}
}

func (h *CoworkingHandler) ListHandler(c *gin.Context) {
	list, err := h.Directory.List(c.Request.Context())
	if err != nil {
		utils.JSONError(c, utils.RemoteStatus(err), "Failed to load coworkings", err.Error())
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CoworkingHandler) GetHandler(c *gin.Context) {
	detail, err := h.Directory.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, utils.RemoteStatus(err), "Failed to load coworking", err.Error())
		return
	}
	c.JSON(http.StatusOK, detail)
}

// LayoutHandler returns the floor plan slots. Coworkings without a drawn
// scheme get a generic grid of ?spots= cells.
func (h *CoworkingHandler) LayoutHandler(c *gin.Context) {
	n, err := intQuery(c, "spots")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	layout, generic := layoutFor(c.Param("id"), n)
	c.JSON(http.StatusOK, gin.H{"generic": generic, "slots": layout})
}

// SpotsHandler places the spots available in the requested window on the
// floor plan. A failed fetch renders as an empty plan.
func (h *CoworkingHandler) SpotsHandler(c *gin.Context) {
	logger := getLogger(c)
	coworkingID := c.Param("id")

	var in windowInput
	if err := c.ShouldBindQuery(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	window, err := in.window()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid time window", err.Error())
		return
	}

	spots, err := h.Spots.FetchSpots(c.Request.Context(), coworkingID, window)
	degraded := err != nil
	if degraded {
		logger.Warn("Failed to fetch spots, showing empty plan",
			zap.String("coworkingID", coworkingID),
			zap.Error(err))
	}

	layout, generic := layoutFor(coworkingID, len(spots))
	c.JSON(http.StatusOK, gin.H{
		"generic":  generic,
		"degraded": degraded,
		"spots":    catalog.Arrange(layout, spots),
	})
}

func layoutFor(coworkingID string, n int) ([]catalog.SpotSlot, bool) {
	layout, err := catalog.LayoutFor(coworkingID)
	var unknown *catalog.UnknownLayoutError
	if errors.As(err, &unknown) {
		return catalog.GenericGrid(n, gridColumns), true
	}
	return layout, false
}
