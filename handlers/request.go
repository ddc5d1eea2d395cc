package handlers

import (
	"fmt"
	"strconv"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin"

	"bookit/models"
)

// windowInput is the date plus HH:MM pair the app sends for a booking window.
type windowInput struct {
	Date      string `json:"date" form:"date"`
	TimeFrom  string `json:"time_from" form:"time_from"`
	TimeUntil string `json:"time_until" form:"time_until"`
}

func (in windowInput) window() (models.TimeWindow, error) {
	date, err := civil.ParseDate(in.Date)
	if err != nil {
		return models.TimeWindow{}, fmt.Errorf("invalid date %q", in.Date)
	}
	from, err := models.ParseClock(in.TimeFrom)
	if err != nil {
		return models.TimeWindow{}, err
	}
	until, err := models.ParseClock(in.TimeUntil)
	if err != nil {
		return models.TimeWindow{}, err
	}
	return models.NewTimeWindow(date, from, until)
}

// pageQuery reads ?page=&count=. Missing values fall back to 0.
func pageQuery(c *gin.Context) (page, count int, err error) {
	if page, err = intQuery(c, "page"); err != nil {
		return 0, 0, err
	}
	if count, err = intQuery(c, "count"); err != nil {
		return 0, 0, err
	}
	return page, count, nil
}

func intQuery(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return n, nil
}
