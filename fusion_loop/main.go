package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"vehicle-fusion-core/bus"
	"vehicle-fusion-core/carstate"
	"vehicle-fusion-core/utils"
)

func main() {
	var (
		cfgPath  = flag.String("config", "config/deploy.yaml", "Deployment config file")
		logLevel = flag.String("log", "", "Override configured log level")
	)
	flag.Parse()

	log := utils.Logger

	cfg, err := LoadDeployConfig(*cfgPath)
	if err != nil {
		log.WithError(err).Fatal("load config")
	}
	level := cfg.Log.Level
	if *logLevel != "" {
		level = *logLevel
	}
	utils.SetupLogger(level, cfg.Log.Format)

	carCfg, err := cfg.CarConfig()
	if err != nil {
		log.WithError(err).Fatal("vehicle config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner, err := buildRunner(ctx, cfg, carCfg)
	if err != nil {
		log.WithError(err).Fatal("startup failed")
	}
	defer closeRunner(runner)

	if err := runner.Run(ctx); err != nil && err != context.Canceled {
		log.WithError(err).Fatal("fusion loop failed")
	}
}

func buildRunner(ctx context.Context, cfg DeployConfig, carCfg carstate.Config) (*Runner, error) {
	log := utils.Logger
	cycle := time.Duration(cfg.CycleMS) * time.Millisecond

	r := &Runner{
		log:     log,
		decoder: carstate.NewDecoder(carCfg, carstate.NewGearRegistry(cfg.Vehicle.GearLabels)),
		cycle:   cycle,
	}

	var err error
	r.powertrain, r.ptDB, err = buildSegment(ctx, "powertrain", cfg.Powertrain,
		carstate.PowertrainRequirements(carCfg), cycle)
	if err != nil {
		return nil, err
	}

	if cfg.Gateway != nil {
		r.gateway, _, err = buildSegment(ctx, "gateway", *cfg.Gateway,
			carstate.GatewayRequirements(carCfg), cycle)
		if err != nil {
			return nil, err
		}
	}
	if cfg.Loopback != nil {
		r.loopback, _, err = buildSegment(ctx, "loopback", *cfg.Loopback,
			carstate.LoopbackRequirements(carCfg), cycle)
		if err != nil {
			return nil, err
		}
	}

	if carCfg.Safety == carstate.SafetyActive {
		r.tx, err = bus.NewSocketCANTransmitter(ctx, cfg.Powertrain.Interface)
		if err != nil {
			return nil, err
		}
	}

	if cfg.Telemetry != nil {
		r.pub, err = NewPublisher(ctx, *cfg.Telemetry)
		if err != nil {
			return nil, err
		}
	}

	return r, nil
}

func buildSegment(ctx context.Context, name string, cfg SegmentConfig,
	reqs []carstate.MessageRequirement, cycle time.Duration) (*segment, *bus.Database, error) {

	db, err := bus.LoadDatabase(cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	recv, err := bus.NewSocketCANReceiver(ctx, cfg.Interface)
	if err != nil {
		return nil, nil, err
	}

	return &segment{
		name:      name,
		collector: bus.NewCollector(db),
		recv:      recv,
		watchdog:  NewWatchdog(reqs, cycle),
	}, db, nil
}

func closeRunner(r *Runner) {
	for _, seg := range []*segment{r.powertrain, r.gateway, r.loopback} {
		if seg != nil {
			_ = seg.recv.Close()
		}
	}
	if r.tx != nil {
		_ = r.tx.Close()
	}
	if r.pub != nil {
		_ = r.pub.Close()
	}
}
