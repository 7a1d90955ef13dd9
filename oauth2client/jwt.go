package oauth2client

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type tokenTimes struct {
	issuedAt  time.Time
	expiresAt time.Time
}

// jwtTimes reads iat and exp from a JWT access token without verifying its signature.
// The client only uses them to schedule refreshes; the resource server does the verification.
func jwtTimes(raw string) (tokenTimes, bool) {
	if strings.Count(raw, ".") != 2 {
		return tokenTimes{}, false
	}

	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return tokenTimes{}, false
	}

	var times tokenTimes
	if claims.IssuedAt != nil {
		times.issuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		times.expiresAt = claims.ExpiresAt.Time
	}
	return times, true
}
