package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/pidfan/internal/heatsources"
)

type HeatSourceStatus struct {
	Name        string  `json:"name"`
	Source      string  `json:"source"`
	SetPoint    float64 `json:"setPoint"`
	LastReading float64 `json:"lastReading"`
}

func (s *restService) registerHeatSourceEndpoints(rest *echo.Echo) {
	group := rest.Group("/heatsource")

	group.GET("/", s.getHeatSources)
	group.GET("/:"+urlParamId+"/", s.getHeatSource)
}

func toHeatSourceStatus(list []*heatsources.HeatSource) []HeatSourceStatus {
	result := make([]HeatSourceStatus, 0, len(list))
	for _, h := range list {
		result = append(result, HeatSourceStatus{
			Name:        h.Name(),
			Source:      h.SourceId(),
			SetPoint:    h.SetPoint(),
			LastReading: h.CachedReading(),
		})
	}
	return result
}

// returns all configured heat sources in configuration order
func (s *restService) getHeatSources(c echo.Context) error {
	data := toHeatSourceStatus(s.status.HeatSources)
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

// returns all probes of the zone with the given name
func (s *restService) getHeatSource(c echo.Context) error {
	id := c.Param(urlParamId)
	zone, exists := heatsources.HeatSourceMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	}
	return c.JSONPretty(http.StatusOK, toHeatSourceStatus(zone), indentationChar)
}
