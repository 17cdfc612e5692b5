package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/pidfan/internal/controller"
)

type ControllerStatus struct {
	FanId      string                  `json:"fanId"`
	Statistics controller.Statistics   `json:"statistics"`
	LastResult *controller.CycleResult `json:"lastResult"`
}

func (s *restService) registerControllerEndpoints(rest *echo.Echo) {
	group := rest.Group("/controller")

	group.GET("/", s.getController)
}

func (s *restService) getController(c echo.Context) error {
	contr := s.status.Controller
	data := ControllerStatus{
		FanId:      contr.GetFanId(),
		Statistics: contr.Statistics(),
	}
	if result, ok := contr.LastResult(); ok {
		data.LastResult = &result
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}
