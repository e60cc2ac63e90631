package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"vehicle-fusion-core/carstate"
)

// VehicleConfig selects the variant the decoder is built for.
type VehicleConfig struct {
	Topology               string           `yaml:"topology"`     // integrated | forward-gateway
	Transmission           string           `yaml:"transmission"` // conventional | direct-drive
	GasInterceptor         bool             `yaml:"gas_interceptor"`
	ConventionalCruiseOnly bool             `yaml:"conventional_cruise_only"`
	Safety                 string           `yaml:"safety"` // passive | no-output | active
	SteerTorqueThreshold   float64          `yaml:"steer_torque_threshold"`
	GearLabels             map[int64]string `yaml:"gear_labels"`
}

type SegmentConfig struct {
	Interface string `yaml:"interface"`
	Database  string `yaml:"database"`
}

type TelemetryConfig struct {
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"client_id"`
	Topic    string `yaml:"topic"`
	QoS      int    `yaml:"qos"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text | json
}

// DeployConfig is the per-installation wiring file.
type DeployConfig struct {
	Vehicle    VehicleConfig    `yaml:"vehicle"`
	Powertrain SegmentConfig    `yaml:"powertrain"`
	Gateway    *SegmentConfig   `yaml:"gateway,omitempty"`
	Loopback   *SegmentConfig   `yaml:"loopback,omitempty"`
	Telemetry  *TelemetryConfig `yaml:"telemetry,omitempty"`
	Log        LogConfig        `yaml:"log"`
	CycleMS    int              `yaml:"cycle_ms"`
}

func LoadDeployConfig(path string) (DeployConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DeployConfig{}, fmt.Errorf("read config: %w", err)
	}

	var cfg DeployConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DeployConfig{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.CycleMS <= 0 {
		cfg.CycleMS = 10
	}
	if cfg.Powertrain.Interface == "" || cfg.Powertrain.Database == "" {
		return DeployConfig{}, fmt.Errorf("powertrain interface and database are required")
	}
	return cfg, nil
}

// CarConfig resolves the yaml variant strings into the decoder's config.
// The consistency rules the decoder itself does not check live here: a
// forward-gateway topology needs a gateway segment wired.
func (c DeployConfig) CarConfig() (carstate.Config, error) {
	var out carstate.Config

	switch c.Vehicle.Topology {
	case "integrated", "":
		out.Topology = carstate.TopologyIntegrated
	case "forward-gateway":
		out.Topology = carstate.TopologyForwardGateway
	default:
		return out, fmt.Errorf("unknown topology %q", c.Vehicle.Topology)
	}

	switch c.Vehicle.Transmission {
	case "conventional", "":
		out.Transmission = carstate.TransmissionConventional
	case "direct-drive":
		out.Transmission = carstate.TransmissionDirectDrive
	default:
		return out, fmt.Errorf("unknown transmission %q", c.Vehicle.Transmission)
	}

	switch c.Vehicle.Safety {
	case "passive", "":
		out.Safety = carstate.SafetyPassive
	case "no-output":
		out.Safety = carstate.SafetyNoOutput
	case "active":
		out.Safety = carstate.SafetyActive
	default:
		return out, fmt.Errorf("unknown safety mode %q", c.Vehicle.Safety)
	}

	out.GasInterceptor = c.Vehicle.GasInterceptor
	out.ConventionalCruiseOnly = c.Vehicle.ConventionalCruiseOnly
	out.SteerTorqueThreshold = c.Vehicle.SteerTorqueThreshold

	if out.Topology == carstate.TopologyForwardGateway && c.Gateway == nil {
		return out, fmt.Errorf("forward-gateway topology requires a gateway segment")
	}
	if len(c.Vehicle.GearLabels) == 0 {
		return out, fmt.Errorf("vehicle gear_labels are required")
	}
	return out, nil
}
