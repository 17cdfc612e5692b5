package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/markusressel/pidfan/internal/control_loop"
	"github.com/markusressel/pidfan/internal/controller"
	"github.com/markusressel/pidfan/internal/fans"
	"github.com/markusressel/pidfan/internal/heatsources"
	"github.com/markusressel/pidfan/internal/persistence"
	"github.com/markusressel/pidfan/internal/testingutils"
	"github.com/markusressel/pidfan/internal/ui"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiFixture struct {
	echo     *echo.Echo
	status   Status
	actuator *testingutils.FakeActuator
}

func createApi(t *testing.T, withHistory bool) apiFixture {
	cpu := heatsources.NewHeatSource("cpu", 50, testingutils.NewFakeTemperatureSource("cpu", 70), ui.NopLogger{})
	heatSources := []*heatsources.HeatSource{cpu}
	heatsources.HeatSourceMap.Clear()
	heatsources.Register(heatSources)

	actuator := &testingutils.FakeActuator{Duty: 10}
	fan, err := fans.NewFan("case", 500, 2000, actuator, ui.NopLogger{})
	require.NoError(t, err)
	loop, err := control_loop.NewPidControlLoop(1, 0, 0, 0, 100)
	require.NoError(t, err)
	contr := controller.NewFanController(fan, heatSources, loop, time.Second, 100, ui.NopLogger{})

	status := Status{
		Controller:  contr,
		Fan:         fan,
		HeatSources: heatSources,
		Stream:      NewStream(ui.NopLogger{}),
	}
	if withHistory {
		history := persistence.NewHistory(filepath.Join(t.TempDir(), "pidfan.db"), 0, ui.NopLogger{})
		require.NoError(t, history.Init())
		status.History = history
	}
	contr.AddObserver(status.Stream)

	registry := prometheus.NewRegistry()
	return apiFixture{
		echo:     CreateRestService(status, registry, registry),
		status:   status,
		actuator: actuator,
	}
}

func get(f apiFixture, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func TestAlive(t *testing.T) {
	// GIVEN
	f := createApi(t, false)

	// WHEN
	rec := get(f, "/alive")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetHeatSources(t *testing.T) {
	// GIVEN
	f := createApi(t, false)
	_, err := f.status.Controller.Cycle(context.Background())
	require.NoError(t, err)

	// WHEN
	rec := get(f, "/heatsource/")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var data []HeatSourceStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	require.Len(t, data, 1)
	assert.Equal(t, "cpu", data[0].Name)
	assert.Equal(t, 70.0, data[0].LastReading)
	assert.Equal(t, 50.0, data[0].SetPoint)
}

func TestGetHeatSource_NotFound(t *testing.T) {
	// GIVEN
	f := createApi(t, false)

	// WHEN
	rec := get(f, "/heatsource/gpu/")

	// THEN
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetHeatSource(t *testing.T) {
	// GIVEN
	f := createApi(t, false)

	// WHEN
	rec := get(f, "/heatsource/cpu")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name": "cpu"`)
}

func TestGetFan(t *testing.T) {
	// GIVEN
	f := createApi(t, false)
	_, err := f.status.Controller.Cycle(context.Background())
	require.NoError(t, err)

	// WHEN
	rec := get(f, "/fan/")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var data FanStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	assert.Equal(t, "case", data.Id)
	assert.Equal(t, 20, data.Duty)
	assert.Equal(t, 10, data.ReportedDuty)
	assert.Equal(t, 800, data.TargetRpm)
}

func TestGetController_BeforeFirstCycle(t *testing.T) {
	// GIVEN
	f := createApi(t, false)

	// WHEN
	rec := get(f, "/controller/")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var data ControllerStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	assert.Equal(t, "case", data.FanId)
	assert.Nil(t, data.LastResult)
}

func TestHistory_Disabled(t *testing.T) {
	// GIVEN
	f := createApi(t, false)

	// WHEN
	rec := get(f, "/history/")

	// THEN
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHistory(t *testing.T) {
	// GIVEN
	f := createApi(t, true)
	for n := 0; n < 3; n++ {
		result, err := f.status.Controller.Cycle(context.Background())
		require.NoError(t, err)
		require.NoError(t, f.status.History.SaveCycle("case", result))
	}

	// WHEN
	rec := get(f, "/history/?limit=2")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var data []controller.CycleResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	assert.Len(t, data, 2)
}

func TestHistory_InvalidLimit(t *testing.T) {
	// GIVEN
	f := createApi(t, true)

	// WHEN
	rec := get(f, "/history/?limit=abc")

	// THEN
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistory_Empty(t *testing.T) {
	// GIVEN
	f := createApi(t, true)

	// WHEN
	rec := get(f, "/history/")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestNoWriteEndpoints(t *testing.T) {
	// GIVEN
	f := createApi(t, false)

	for _, path := range []string{"/fan/", "/controller/", "/heatsource/"} {
		// WHEN
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"duty": 100}`))
		rec := httptest.NewRecorder()
		f.echo.ServeHTTP(rec, req)

		// THEN
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, path)
	}
	assert.Empty(t, f.actuator.Applied())
}

func TestMetrics(t *testing.T) {
	// GIVEN
	f := createApi(t, false)
	get(f, "/alive/")

	// WHEN
	rec := get(f, "/metrics/")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pidfan_api_requests_total")
}

func TestStream(t *testing.T) {
	// GIVEN
	f := createApi(t, false)
	server := httptest.NewServer(f.echo)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	assert.Eventually(t, func() bool {
		return f.status.Stream.ClientCount() == 1
	}, 5*time.Second, 10*time.Millisecond)

	// WHEN
	_, err = f.status.Controller.Cycle(context.Background())
	require.NoError(t, err)

	// THEN
	var result controller.CycleResult
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(&result))
	assert.Equal(t, 20, result.Duty)
}
