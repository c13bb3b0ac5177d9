package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// TransportStreamableHTTP is the streamable HTTP transport.
	TransportStreamableHTTP = "streamable-http"
	// TransportStdio is the standard I/O transport.
	TransportStdio = "stdio"
)

// RezConfig is the top-level configuration structure for rez.
type RezConfig struct {
	Upstream UpstreamConfig `yaml:"upstream"`
	Server   ServerConfig   `yaml:"server"`
	Auth     AuthConfig     `yaml:"auth"`
}

// UpstreamConfig describes the portal being brokered.
type UpstreamConfig struct {
	BaseURL string `yaml:"baseURL"` // Base URL of the results portal (required)
}

// ServerConfig describes how rez itself is exposed.
type ServerConfig struct {
	Host      string `yaml:"host,omitempty"`      // Host to bind to (default: 0.0.0.0)
	Port      int    `yaml:"port,omitempty"`      // Port for the MCP and auth endpoints (default: 4567)
	Transport string `yaml:"transport,omitempty"` // MCP transport (default: streamable-http)
	PublicURL string `yaml:"publicURL"`           // Externally reachable base URL embedded in login/download links (required)
}

// AuthConfig describes the session and token lifetimes.
type AuthConfig struct {
	SessionTTL    Duration `yaml:"sessionTTL,omitempty"`    // Session record lifetime (default: 15m)
	TokenTTL      Duration `yaml:"tokenTTL,omitempty"`      // Signed token lifetime (default: 10m)
	SweepInterval Duration `yaml:"sweepInterval,omitempty"` // Eviction and blacklist-clear cadence (default: 10m)
}

// Duration is a time.Duration that unmarshals from yaml strings like
// "15m" or "90s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// AsDuration returns the underlying time.Duration.
func (d Duration) AsDuration() time.Duration {
	return time.Duration(d)
}

// GetDefaultConfig returns the default configuration for rez. The
// upstream and public URLs have no sensible defaults and must come from
// config or environment.
func GetDefaultConfig() RezConfig {
	return RezConfig{
		Server: ServerConfig{
			Host:      "0.0.0.0",
			Port:      4567,
			Transport: TransportStreamableHTTP,
		},
		Auth: AuthConfig{
			SessionTTL:    Duration(15 * time.Minute),
			TokenTTL:      Duration(10 * time.Minute),
			SweepInterval: Duration(10 * time.Minute),
		},
	}
}
