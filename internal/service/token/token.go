// Package token issues and validates the signed session claims carried as a
// bearer credential. Tokens are stateless: there is no revocation list, and
// a valid, unexpired token is always accepted.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/intania/shop-backend/internal/apperr"
	"github.com/intania/shop-backend/internal/models"
)

// Session lifetime per role: elevated roles get the short one.
var roleTTL = map[models.Role]time.Duration{
	models.RoleAdmin: 30 * time.Minute,
	models.RoleUser:  24 * time.Hour,
}

// Claims is the decoded identity assertion: subject id, role, and the
// issued-at/expires-at pair as integer Unix timestamps.
type Claims struct {
	ID   string      `json:"id"`
	Role models.Role `json:"role"`
	Iat  int64       `json:"iat"`
	Exp  int64       `json:"exp"`
}

func (c *Claims) GetExpirationTime() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(c.Exp, 0)), nil
}

func (c *Claims) GetIssuedAt() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(c.Iat, 0)), nil
}

func (c *Claims) GetNotBefore() (*jwt.NumericDate, error) { return nil, nil }
func (c *Claims) GetIssuer() (string, error)              { return "", nil }
func (c *Claims) GetSubject() (string, error)             { return c.ID, nil }
func (c *Claims) GetAudience() (jwt.ClaimStrings, error)  { return nil, nil }

type Service struct {
	secret []byte
	keyID  string
}

// New fails when the secret or key id is absent so a misconfigured process
// dies at startup instead of at the first request.
func New(secret []byte, keyID string) (*Service, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("token: signing secret is empty")
	}
	if keyID == "" {
		return nil, fmt.Errorf("token: key id is empty")
	}
	return &Service{secret: secret, keyID: keyID}, nil
}

// Issue signs {id, role, iat, exp} with HS512, stamping the configured key
// identifier into the header. Expiry is role-dependent; unknown roles get
// the regular user lifetime.
func (s *Service) Issue(subject string, role models.Role) (string, error) {
	ttl, ok := roleTTL[role]
	if !ok {
		ttl = roleTTL[models.RoleUser]
	}

	now := time.Now()
	claims := &Claims{
		ID:   subject,
		Role: role,
		Iat:  now.Unix(),
		Exp:  now.Add(ttl).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	tok.Header["kid"] = s.keyID

	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "failed to sign token", err)
	}
	return signed, nil
}

// Validate verifies the signature and expiry of a raw token (the caller has
// already stripped the "Bearer " prefix). Bad signature, malformed payload
// and expiry all collapse to the same Unauthorized result on purpose.
func (s *Service) Validate(raw string) (*Claims, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}))
	if err != nil || !tok.Valid {
		return nil, apperr.Unauthorized()
	}
	if claims.Exp <= time.Now().Unix() {
		return nil, apperr.Unauthorized()
	}
	return &claims, nil
}
