// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/ava-labs/pairfactory/consts"
	"github.com/ava-labs/pairfactory/controller"
	"github.com/ava-labs/pairfactory/pebble"
	"github.com/ava-labs/pairfactory/pubsub"
	"github.com/ava-labs/pairfactory/server"
	"github.com/ava-labs/pairfactory/trace"
)

const (
	defaultListenAddress     = "127.0.0.1:9650"
	defaultReadTimeout       = 30 * time.Second
	defaultReadHeaderTimeout = 30 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultShutdownTimeout   = 10 * time.Second
	defaultResultsBufferSize = 256
	defaultRateLimitBurst    = 60
	defaultLogMaxSize        = 8 // MB
	defaultLogMaxFiles       = 5
	defaultLogMaxAge         = 7 // days
)

type Config struct {
	// Logging
	LogLevel        logging.Level `json:"logLevel"`
	LogDisplayLevel logging.Level `json:"logDisplayLevel"`
	LogDir          string        `json:"logDir"` // no file logs when empty
	LogMaxSize      int           `json:"logMaxSize"`
	LogMaxFiles     int           `json:"logMaxFiles"`
	LogMaxAge       int           `json:"logMaxAge"`

	// Storage
	DataDir string        `json:"dataDir"` // in memory when empty
	Pebble  pebble.Config `json:"pebble"`

	// API
	ListenAddress   string            `json:"listenAddress"`
	HTTP            server.HTTPConfig `json:"http"`
	AllowedOrigins  []string          `json:"allowedOrigins"`
	AllowedHosts    []string          `json:"allowedHosts"`
	ShutdownTimeout time.Duration     `json:"shutdownTimeout"`
	SubmitEnabled   bool              `json:"submitEnabled"`

	// Number of recent results kept for the results endpoint
	ResultsBufferSize int `json:"resultsBufferSize"`

	// Websocket stream of committed results
	StreamEnabled bool                 `json:"streamEnabled"`
	Stream        *pubsub.ServerConfig `json:"stream"`

	// Per client request rate, 0 disables limiting
	RateLimitRPS   float64 `json:"rateLimitRPS"`
	RateLimitBurst int     `json:"rateLimitBurst"`

	// Execution
	Controller controller.Config `json:"controller"`

	// Tracing
	TraceEnabled    bool    `json:"traceEnabled"`
	TraceEndpoint   string  `json:"traceEndpoint"`
	TraceSampleRate float64 `json:"traceSampleRate"`
}

func New(b []byte) (*Config, error) {
	c := &Config{}
	c.setDefault()
	if len(b) > 0 {
		if err := json.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config %s: %w", string(b), err)
		}
	}
	return c, nil
}

func (c *Config) setDefault() {
	c.LogLevel = logging.Info
	c.LogDisplayLevel = logging.Info
	c.LogMaxSize = defaultLogMaxSize
	c.LogMaxFiles = defaultLogMaxFiles
	c.LogMaxAge = defaultLogMaxAge
	c.Pebble = pebble.NewDefaultConfig()
	c.ListenAddress = defaultListenAddress
	c.HTTP = server.HTTPConfig{
		ReadTimeout:       defaultReadTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		WriteTimeout:      defaultWriteTimeout,
		IdleTimeout:       defaultIdleTimeout,
	}
	c.AllowedOrigins = []string{"*"}
	c.AllowedHosts = []string{"*"}
	c.ShutdownTimeout = defaultShutdownTimeout
	c.ResultsBufferSize = defaultResultsBufferSize
	c.StreamEnabled = true
	c.Stream = pubsub.NewDefaultServerConfig()
	c.RateLimitBurst = defaultRateLimitBurst
	c.Controller = controller.NewDefaultConfig()
	c.TraceSampleRate = 1
}

func (c *Config) ServerOptions() server.Options {
	return server.Options{
		HTTP:            c.HTTP,
		AllowedOrigins:  c.AllowedOrigins,
		AllowedHosts:    c.AllowedHosts,
		ShutdownTimeout: c.ShutdownTimeout,
	}
}

func (c *Config) GetTraceConfig() *trace.Config {
	return &trace.Config{
		Enabled:         c.TraceEnabled,
		Endpoint:        c.TraceEndpoint,
		TraceSampleRate: c.TraceSampleRate,
		AppName:         consts.Name,
		Agent:           consts.Name,
		Version:         consts.Version.String(),
	}
}
