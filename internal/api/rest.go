package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/markusressel/pidfan/internal/controller"
	"github.com/markusressel/pidfan/internal/fans"
	"github.com/markusressel/pidfan/internal/heatsources"
	"github.com/markusressel/pidfan/internal/persistence"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	urlParamId      = "id"
	indentationChar = "  "

	EndpointPathAlive = "/alive/"
	metricsSubsystem  = "pidfan_api"
)

type (
	Result struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
)

// Status holds everything the read-only API exposes
type Status struct {
	Controller  controller.FanController
	Fan         *fans.Fan
	HeatSources []*heatsources.HeatSource
	// History is nil if the cycle history is disabled
	History persistence.History
	Stream  *Stream
}

type restService struct {
	status Status
}

// CreateRestService creates the status API. Request metrics are registered with registerer
// and everything known to gatherer is served at /metrics.
func CreateRestService(status Status, registerer prometheus.Registerer, gatherer prometheus.Gatherer) *echo.Echo {
	echoRest := CreateWebserver()

	echoRest.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  metricsSubsystem,
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics/" || c.Path() == "/ws/"
		},
	}))

	service := &restService{status: status}

	echoRest.GET(EndpointPathAlive, isAlive)
	echoRest.GET("/metrics/", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))

	service.registerHeatSourceEndpoints(echoRest)
	service.registerFanEndpoints(echoRest)
	service.registerControllerEndpoints(echoRest)
	service.registerHistoryEndpoints(echoRest)
	if status.Stream != nil {
		echoRest.GET("/ws/", status.Stream.handleWebsocket)
	}

	return echoRest
}

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// return a "not found" message
func returnNotFound(c echo.Context, id string) (err error) {
	return c.JSONPretty(http.StatusNotFound, &Result{
		Name:    "Not found",
		Message: "No item with id '" + id + "' found",
	}, indentationChar)
}

// return the error message of an error
func returnError(c echo.Context, e error) (err error) {
	return c.JSONPretty(http.StatusInternalServerError, &Result{
		Name:    "Unknown Error",
		Message: e.Error(),
	}, indentationChar)
}
