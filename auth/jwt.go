package auth

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

const bearerPrefix = "Bearer "

// ErrNoToken is returned when a request carries no bearer token.
var ErrNoToken = errors.New("auth: no bearer token")

// Verifier validates bearer JWTs. Keys are resolved through a JWKS endpoint
// that is fetched once and refreshed in the background.
type Verifier struct {
	issuer  string
	keyfunc jwt.Keyfunc
	methods []string
}

// NewVerifier builds a verifier for tokens issued by baseURL, whose keys are
// published at baseURL/.well-known/jwks.json.
func NewVerifier(baseURL string) (*Verifier, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("auth: base URL is not set")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("auth: invalid base URL: %w", err)
	}
	jwks, err := keyfunc.NewDefault([]string{strings.TrimRight(baseURL, "/") + "/.well-known/jwks.json"})
	if err != nil {
		return nil, fmt.Errorf("auth: jwks: %w", err)
	}
	return &Verifier{
		issuer:  u.Scheme + "://" + u.Host,
		keyfunc: jwks.Keyfunc,
		methods: []string{"EdDSA", "RS256", "ES256"},
	}, nil
}

// NewStaticVerifier builds a verifier around a fixed key lookup.
func NewStaticVerifier(issuer string, kf jwt.Keyfunc, methods ...string) *Verifier {
	return &Verifier{issuer: issuer, keyfunc: kf, methods: methods}
}

// Verify parses and validates a token and returns its claims.
func (v *Verifier) Verify(tokenString string) (jwt.MapClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods(v.methods)}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	token, err := jwt.Parse(tokenString, v.keyfunc, opts...)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("auth: invalid token claims")
	}
	return claims, nil
}

// UserID validates the request's bearer token and returns its subject.
func (v *Verifier) UserID(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", ErrNoToken
	}
	claims, err := v.Verify(strings.TrimSpace(header[len(bearerPrefix):]))
	if err != nil {
		return "", err
	}
	id := UserIDFromClaims(claims)
	if id == "" {
		return "", fmt.Errorf("auth: token has no subject")
	}
	return id, nil
}

// UserIDFromClaims returns the user id from claims ("sub" or "id").
func UserIDFromClaims(claims jwt.MapClaims) string {
	if sub, ok := claims["sub"].(string); ok && sub != "" {
		return sub
	}
	if id, ok := claims["id"].(string); ok && id != "" {
		return id
	}
	return ""
}
