package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/pidfan/internal/api"
	"github.com/markusressel/pidfan/internal/configuration"
	"github.com/markusressel/pidfan/internal/control_loop"
	"github.com/markusressel/pidfan/internal/controller"
	"github.com/markusressel/pidfan/internal/fans"
	"github.com/markusressel/pidfan/internal/heatsources"
	"github.com/markusressel/pidfan/internal/persistence"
	"github.com/markusressel/pidfan/internal/statistics"
	"github.com/markusressel/pidfan/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	defaultStatisticsPort = 9000
	defaultApiPort        = 9001
	shutdownTimeout       = 5 * time.Second
	failSafeTimeout       = 10 * time.Second
)

// Daemon holds all objects created from a configuration
type Daemon struct {
	config configuration.Configuration
	logger ui.Logger

	HeatSources []*heatsources.HeatSource
	Fan         *fans.Fan
	Controller  controller.FanController
	// History and Recorder are nil if disabled
	History  persistence.History
	Recorder *persistence.HistoryRecorder
	Stream   *api.Stream
}

// RunDaemon runs the fan controller until it is stopped by a signal (nil)
// or fails (the failure). In both cases the fan is driven to the fail-safe duty.
func RunDaemon(config configuration.Configuration) error {
	if getProcessOwner() != "root" {
		ui.Warning("pidfan is not running as root, controlling the fan may not be possible")
	}

	logger := ui.NewPtermLogger()
	daemon, err := InitializeObjects(config, logger)
	if err != nil {
		return err
	}

	if config.Statistics.Enabled || config.Api.Enabled {
		daemon.RegisterCollectors(prometheus.DefaultRegisterer)
	}

	return daemon.Run(context.Background())
}

// InitializeObjects creates heat sources, fan, control loop and controller from the given configuration
func InitializeObjects(config configuration.Configuration, logger ui.Logger) (*Daemon, error) {
	daemon := &Daemon{
		config: config,
		logger: logger,
	}

	for _, heatSourceConfig := range config.HeatSources {
		heatSource, err := heatsources.NewHeatSourceFromConfig(heatSourceConfig, config.CommandTimeout, logger)
		if err != nil {
			return nil, fmt.Errorf("unable to process heat source configuration %s: %w", heatSourceConfig.Name, err)
		}
		daemon.HeatSources = append(daemon.HeatSources, heatSource)
	}
	heatsources.Register(daemon.HeatSources)

	fan, err := fans.NewFanFromConfig(config.Fan, config.CommandTimeout, logger)
	if err != nil {
		return nil, fmt.Errorf("unable to process fan configuration %s: %w", config.Fan.ID, err)
	}
	daemon.Fan = fan

	pid := config.Pid
	loop, err := control_loop.NewPidControlLoop(pid.P, pid.I, pid.D, pid.OutputMin, pid.OutputMax)
	if err != nil {
		return nil, err
	}

	daemon.Controller = controller.NewFanController(fan, daemon.HeatSources, loop, config.SampleInterval, config.FailSafeDuty, logger)

	if config.History.Enabled {
		history := persistence.NewHistory(config.DbPath, config.History.MaxEntries, logger)
		err = history.Init()
		if err != nil {
			return nil, fmt.Errorf("unable to initialize history at %s: %w", config.DbPath, err)
		}
		daemon.History = history
		daemon.Recorder = persistence.NewHistoryRecorder(history, fan.GetId(), persistence.DefaultRecorderBufferSize, logger)
		daemon.Controller.AddObserver(daemon.Recorder)
	}

	if config.Api.Enabled {
		daemon.Stream = api.NewStream(logger)
		daemon.Controller.AddObserver(daemon.Stream)
	}

	return daemon, nil
}

// RegisterCollectors registers all prometheus collectors of this daemon
func (d *Daemon) RegisterCollectors(registerer prometheus.Registerer) {
	registerer.MustRegister(
		statistics.NewHeatSourceCollector(d.HeatSources),
		statistics.NewFanCollector(d.Fan),
		statistics.NewControllerCollector(d.Controller),
	)
}

// Run executes the controller and all enabled servers until ctx is cancelled,
// a signal is received or the controller fails.
func (d *Daemon) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var g run.Group
	{
		if d.config.Statistics.Enabled {
			// === Prometheus Exporter
			port := d.config.Statistics.Port
			if port <= 0 || port >= 65535 {
				port = defaultStatisticsPort
			}
			server := api.CreateWebserver()
			server.GET("/metrics/", echo.WrapHandler(promhttp.Handler()))
			d.addServer(&g, ctx, "statistics", server, fmt.Sprintf(":%d", port))
		}
	}
	{
		if d.config.Api.Enabled {
			// === REST API
			port := d.config.Api.Port
			if port <= 0 || port >= 65535 {
				port = defaultApiPort
			}
			status := api.Status{
				Controller:  d.Controller,
				Fan:         d.Fan,
				HeatSources: d.HeatSources,
				History:     d.History,
				Stream:      d.Stream,
			}
			server := api.CreateRestService(status, prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
			d.addServer(&g, ctx, "api", server, fmt.Sprintf("%s:%d", d.config.Api.Host, port))
		}
	}
	{
		if d.Recorder != nil {
			// === history writer
			recorderCtx, recorderCancel := context.WithCancel(context.Background())
			g.Add(func() error {
				return d.Recorder.Run(recorderCtx)
			}, func(err error) {
				recorderCancel()
			})
		}
	}
	{
		// === fan controller
		g.Add(func() error {
			err := d.Controller.Run(ctx)
			d.logger.Info("Fan controller for fan %s stopped.", d.Fan.GetId())
			return err
		}, func(err error) {
			cancel()
		})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case s := <-sig:
				d.logger.Info("Received %s signal, exiting...", s)
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	err := g.Run()

	failSafeCtx, failSafeCancel := context.WithTimeout(context.Background(), failSafeTimeout+d.config.CommandTimeout)
	defer failSafeCancel()
	failSafeErr := d.Controller.FailSafe(failSafeCtx)

	if d.Recorder != nil {
		d.Recorder.Flush()
	}

	if err != nil {
		return err
	}
	if failSafeErr != nil {
		return fmt.Errorf("applying fail-safe duty: %w", failSafeErr)
	}
	d.logger.Info("Done.")
	return nil
}

// addServer runs server at addr until ctx is done. A server failing to start is logged
// and does not affect the controller.
func (d *Daemon) addServer(g *run.Group, ctx context.Context, name string, server *echo.Echo, addr string) {
	g.Add(func() error {
		d.logger.Info("Starting %s server on %s", name, addr)
		if err := server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			d.logger.Error("Cannot start %s server (%v)", name, err)
		}
		<-ctx.Done()
		return nil
	}, func(err error) {
		timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer timeoutCancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			d.logger.Warning("Error stopping %s server: %v", name, err)
		} else {
			d.logger.Info("%s server stopped.", name)
		}
	})
}

func getProcessOwner() string {
	stdout, err := exec.Command("ps", "-o", "user=", "-p", strconv.Itoa(os.Getpid())).Output()
	if err != nil {
		ui.Warning("Error checking process owner: %v", err)
		return ""
	}
	return strings.TrimSpace(string(stdout))
}
