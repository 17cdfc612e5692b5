package api

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/pidfan/internal/controller"
)

const (
	queryParamLimit     = "limit"
	defaultHistoryLimit = 100
)

func (s *restService) registerHistoryEndpoints(rest *echo.Echo) {
	group := rest.Group("/history")

	group.GET("/", s.getHistory)
}

// returns the most recent cycles of the controlled fan, oldest first
func (s *restService) getHistory(c echo.Context) error {
	if s.status.History == nil {
		return returnNotFound(c, "history")
	}

	limit := defaultHistoryLimit
	if value := c.QueryParam(queryParamLimit); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 0 {
			return c.JSONPretty(http.StatusBadRequest, &Result{
				Name:    "Bad Request",
				Message: "limit must be a non-negative number",
			}, indentationChar)
		}
		limit = parsed
	}

	fanId := s.status.Fan.GetId()
	data, err := s.status.History.LoadCycles(fanId, limit)
	if errors.Is(err, os.ErrNotExist) {
		data = []controller.CycleResult{}
	} else if err != nil {
		return returnError(c, err)
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}
