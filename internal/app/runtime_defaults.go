package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charlesng35/kurukshetra/pkg/crypto"
)

const (
	jwtSecretBytes = 48

	fallbackPort          = 5000
	fallbackLoginRequests = 20
	fallbackLoginWindow   = time.Minute
)

// ApplyRuntimeDefaults fills values the server cannot start without. Missing
// secrets are generated and their keys returned so the caller can warn that
// sessions will not survive a restart. Zeroed server settings, as left by an
// environment override, fall back to the built-in defaults.
func ApplyRuntimeDefaults(cfg *Config) (map[string]bool, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	generated := make(map[string]bool)
	if strings.TrimSpace(cfg.Auth.JWT.Secret) == "" {
		secret, err := crypto.GenerateToken(jwtSecretBytes)
		if err != nil {
			return nil, fmt.Errorf("generate jwt secret: %w", err)
		}
		cfg.Auth.JWT.Secret = secret
		generated["auth.jwt.secret"] = true
	}

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = fallbackPort
	}
	if limit := &cfg.Server.RateLimit; limit.Enabled {
		if limit.Requests <= 0 {
			limit.Requests = fallbackLoginRequests
		}
		if limit.Window <= 0 {
			limit.Window = fallbackLoginWindow
		}
	}

	return generated, nil
}
