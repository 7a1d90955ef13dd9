package testutil

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// signingKey signs test access tokens. Clients never verify them.
var signingKey = []byte("beer-api-test-signing-key")

// SignAccessToken signs claims into a compact JWT with HS256.
func SignAccessToken(tb testing.TB, claims jwt.MapClaims) string {
	tb.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(signingKey)
	if err != nil {
		tb.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

// AccessTokenClaims returns the claims a client-credentials access token usually carries.
func AccessTokenClaims(subject string, issuedAt, expiresAt time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"iss":   "https://auth.example.com",
		"sub":   subject,
		"aud":   []string{"beer-api"},
		"scope": "message.read message.write",
		"iat":   issuedAt.Unix(),
		"exp":   expiresAt.Unix(),
	}
}

// TokenResponse builds a token endpoint response. A non-positive expiresIn omits the
// expires_in field.
func TokenResponse(req *http.Request, accessToken string, expiresIn int) *http.Response {
	body := fmt.Sprintf(`{"access_token":%q,"token_type":"Bearer"}`, accessToken)
	if expiresIn > 0 {
		body = fmt.Sprintf(`{"access_token":%q,"token_type":"Bearer","expires_in":%d}`, accessToken, expiresIn)
	}

	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	}
}

// ErrorResponse builds an OAuth2 error response such as invalid_client.
func ErrorResponse(req *http.Request, status int, code string) *http.Response {
	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	return &http.Response{
		StatusCode: status,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(fmt.Sprintf(`{"error":%q}`, code))),
		Request:    req,
	}
}
