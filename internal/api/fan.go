package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type FanStatus struct {
	Id     string `json:"id"`
	MinRpm int    `json:"minRpm"`
	MaxRpm int    `json:"maxRpm"`
	// Duty is the last applied duty, -1 before the first cycle
	Duty         int `json:"duty"`
	ReportedDuty int `json:"reportedDuty"`
	TargetRpm    int `json:"targetRpm"`
}

func (s *restService) registerFanEndpoints(rest *echo.Echo) {
	group := rest.Group("/fan")

	group.GET("/", s.getFan)
}

func (s *restService) getFan(c echo.Context) error {
	fan := s.status.Fan
	data := FanStatus{
		Id:           fan.GetId(),
		MinRpm:       fan.MinRpm(),
		MaxRpm:       fan.MaxRpm(),
		Duty:         fan.LastAppliedDuty(),
		ReportedDuty: fan.LastReadDuty(),
	}
	if data.Duty >= 0 {
		data.TargetRpm = fan.DutyToRpm(data.Duty)
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}
