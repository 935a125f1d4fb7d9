package driver

import "time"

type DriverOpt func(*driverConfig)

type driverConfig struct {
	tickLength time.Duration
	managers   []Manager
}

func WithTickLength(tickLength time.Duration) DriverOpt {
	return func(c *driverConfig) {
		c.tickLength = tickLength
	}
}

// WithManagers adds managers ticked after every frame.
func WithManagers(managers ...Manager) DriverOpt {
	return func(c *driverConfig) {
		c.managers = append(c.managers, managers...)
	}
}
