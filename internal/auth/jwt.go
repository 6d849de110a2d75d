package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrNoOwner is returned when a token carries no user identifier claim.
	ErrNoOwner = errors.New("token has no user identifier")
	// ErrExpired is returned for tokens past their exp claim.
	ErrExpired = errors.New("token expired")
	// ErrUnsigned is returned for alg "none" tokens.
	ErrUnsigned = errors.New("token is not signed")
)

// Claim names the ordering backend issues. Lookups match by substring so
// both the long schema URIs and short names resolve.
const (
	claimNameIdentifier = "nameidentifier"
	claimRole           = "role"
	claimEmail          = "emailaddress"
)

// Identity is what the storefront learns about the caller from a token.
// Verified is false when the signature was not checked; such identities only
// scope storage and must not be used for authorization.
type Identity struct {
	ID        string
	Role      string
	Email     string
	ExpiresAt time.Time
	Verified  bool
}

// Decoder turns bearer tokens into identities.
//
// With a secret, tokens must be HS256-signed with it. Without one the
// signature is not checked: tokens come from the ordering backend and this
// service only needs the owner id to scope storage.
type Decoder struct {
	secret []byte
	now    func() time.Time
}

// NewDecoder returns a Decoder. An empty secret disables signature checks.
func NewDecoder(secret string) *Decoder {
	var key []byte
	if secret != "" {
		key = []byte(secret)
	}
	return &Decoder{secret: key, now: time.Now}
}

// Verifies reports whether signatures are checked.
func (d *Decoder) Verifies() bool {
	return d.secret != nil
}

// Decode parses tokenString and returns the identity it carries.
func (d *Decoder) Decode(tokenString string) (Identity, error) {
	claims := jwt.MapClaims{}

	if d.secret != nil {
		// 1. Parse and verify the signature and time claims.
		_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return d.secret, nil
		}, jwt.WithTimeFunc(d.now))
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return Identity{}, ErrExpired
			}
			return Identity{}, fmt.Errorf("invalid token: %w", err)
		}
	} else {
		// 1. Read the claims only.
		token, _, err := jwt.NewParser().ParseUnverified(tokenString, claims)
		if err != nil {
			return Identity{}, fmt.Errorf("malformed token: %w", err)
		}
		if token.Method == nil || token.Method.Alg() == jwt.SigningMethodNone.Alg() {
			return Identity{}, ErrUnsigned
		}
	}

	// 2. Reject expired tokens in both modes.
	var expiresAt time.Time
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expiresAt = exp.Time
		if !d.now().Before(expiresAt) {
			return Identity{}, ErrExpired
		}
	}

	// 3. Pull out the owner id, falling back to the standard subject.
	id := findClaim(claims, claimNameIdentifier)
	if id == "" {
		id = claimString(claims["sub"])
	}
	if id == "" {
		return Identity{}, ErrNoOwner
	}

	return Identity{
		ID:        id,
		Role:      findClaim(claims, claimRole),
		Email:     findClaim(claims, claimEmail),
		ExpiresAt: expiresAt,
		Verified:  d.secret != nil,
	}, nil
}

// GenerateToken signs an HS256 token for id, valid for ttl.
func GenerateToken(secret string, id Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": id.ID,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	if id.Role != "" {
		claims[claimRole] = id.Role
	}
	if id.Email != "" {
		claims[claimEmail] = id.Email
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// findClaim returns the first claim whose name contains part.
func findClaim(claims jwt.MapClaims, part string) string {
	for k, v := range claims {
		if strings.Contains(strings.ToLower(k), part) {
			if s := claimString(v); s != "" {
				return s
			}
		}
	}
	return ""
}

func claimString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []interface{}:
		if len(t) > 0 {
			return claimString(t[0])
		}
	}
	return ""
}
