package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Environment variables read at start-up.
const (
	EnvLaunchTime = "LAUNCH_TIME"
	EnvBaseURL    = "BASE_URL"
	EnvConfigDir  = "W3MINT_CONFIG_DIR"
	EnvContract   = "W3MINT_CONTRACT"
	EnvNetwork    = "W3MINT_NETWORK"
	EnvArtifact   = "W3MINT_ARTIFACT"
)

// ApplyEnv overrides config values with any non-empty environment variables.
// getenv is os.Getenv in production.
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&c.LaunchTime, EnvLaunchTime)
	set(&c.BaseURL, EnvBaseURL)
	set(&c.ContractAddress, EnvContract)
	set(&c.Network, EnvNetwork)
	set(&c.ArtifactPath, EnvArtifact)
}

// LaunchTarget returns the parsed launch time, or the zero time when it is
// unset or unparsable (no countdown is shown in that case).
func (c *Config) LaunchTarget() time.Time {
	t, err := ParseLaunchTime(c.LaunchTime)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ParseLaunchTime accepts unix seconds or an RFC 3339 timestamp.
func ParseLaunchTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("launch time is empty")
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("launch time %q is neither unix seconds nor RFC 3339", s)
	}
	return t, nil
}
