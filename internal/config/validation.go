package config

import (
	"fmt"
	"net/url"
)

// Validate checks the configuration for values the service cannot run
// with. It is called once at startup; a validation failure aborts the
// process rather than letting a misconfiguration surface later as a
// security hole.
func (c RezConfig) Validate() error {
	if err := validateURL("upstream.baseURL", c.Upstream.BaseURL); err != nil {
		return err
	}
	if err := validateURL("server.publicURL", c.Server.PublicURL); err != nil {
		return err
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", c.Server.Port)
	}

	switch c.Server.Transport {
	case TransportStreamableHTTP, TransportStdio:
	default:
		return fmt.Errorf("server.transport %q is not one of %q, %q",
			c.Server.Transport, TransportStreamableHTTP, TransportStdio)
	}

	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("auth.sessionTTL must be positive")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.tokenTTL must be positive")
	}
	if c.Auth.SweepInterval <= 0 {
		return fmt.Errorf("auth.sweepInterval must be positive")
	}

	// A consumed token must outlive its own blacklist entry, or a
	// wholesale blacklist clear would make it replayable while still
	// cryptographically valid.
	if c.Auth.SweepInterval < c.Auth.TokenTTL {
		return fmt.Errorf("auth.sweepInterval (%s) must be at least auth.tokenTTL (%s)",
			c.Auth.SweepInterval.AsDuration(), c.Auth.TokenTTL.AsDuration())
	}

	return nil
}

func validateURL(field, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", field)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s %q is not a valid URL: %w", field, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s %q must use http or https", field, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s %q is missing a host", field, raw)
	}
	return nil
}
