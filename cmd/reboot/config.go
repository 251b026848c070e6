// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

const (
	transportPeriph = "periph"
	transportD2R2   = "d2r2"
	transportSim    = "sim"
)

// Config defines a struct to match a configuration yaml file.
type Config struct {
	// Transport is one of periph, d2r2 or sim.
	Transport string `yaml:"Transport"`
	// Bus is the periph bus name, empty for the first bus found.
	Bus string `yaml:"Bus"`
	// BusNumber is N in /dev/i2c-N for the d2r2 transport.
	BusNumber int `yaml:"BusNumber"`
	// LogFile enables logging to a rotated file instead of stderr.
	LogFile string `yaml:"LogFile"`
	// Listen is the address of the HTTP server started by serve.
	Listen string `yaml:"Listen"`
	// Brightness, when set, is applied to both displays after they are
	// initialized.
	Brightness    *int `yaml:"Brightness"`
	SafetyRetries int  `yaml:"SafetyRetries"`
}

func defaultConfig() *Config {
	return &Config{
		Transport:     transportPeriph,
		BusNumber:     1,
		Listen:        ":8042",
		SafetyRetries: 2,
	}
}

// NewConfig will create a new Config instance from the specified yaml file.
// Fields missing from the file keep their default value. An empty path
// returns the defaults.
func NewConfig(yamlFile string) (*Config, error) {
	config := defaultConfig()
	if yamlFile == "" {
		return config, nil
	}
	source, err := os.ReadFile(yamlFile)
	if err != nil {
		return nil, err
	}
	if err = yaml.UnmarshalStrict(source, config); err != nil {
		return nil, fmt.Errorf("%s: %w", yamlFile, err)
	}
	return config, config.validate()
}

func (c *Config) validate() error {
	switch c.Transport {
	case transportPeriph, transportD2R2, transportSim:
		return nil
	default:
		return fmt.Errorf("unknown transport %q, expected %s, %s or %s", c.Transport, transportPeriph, transportD2R2, transportSim)
	}
}
