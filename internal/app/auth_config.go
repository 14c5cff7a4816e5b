package app

import (
	"strings"

	"github.com/charlesng35/kurukshetra/internal/auth"
)

const defaultIssuer = "kurukshetra"

// JWTServiceConfig converts AuthConfig into the parameters expected by the JWT service.
func (c AuthConfig) JWTServiceConfig() auth.JWTConfig {
	ttl := c.JWT.TTL
	if ttl <= 0 {
		ttl = auth.DefaultTokenTTL
	}

	issuer := strings.TrimSpace(c.JWT.Issuer)
	if issuer == "" {
		issuer = defaultIssuer
	}

	return auth.JWTConfig{
		Secret: c.JWT.Secret,
		Issuer: issuer,
		TTL:    ttl,
	}
}
