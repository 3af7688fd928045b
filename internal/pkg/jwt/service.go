package jwt

import (
	"errors"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const TokenTypeAccess = "access"

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims are the access-token claims issued by the accounts service that
// shares JWT_ACCESS_SECRET with this one.
type Claims struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	TokenType string    `json:"token_type"`

	jwtlib.RegisteredClaims
}

type Validator interface {
	ValidateAccessToken(tokenString string) (Claims, error)
}

type HMACService struct {
	secret    []byte
	expiresIn time.Duration
	now       func() time.Time
}

func NewHMACService(secret string, expiresIn time.Duration) *HMACService {
	return &HMACService{secret: []byte(secret), expiresIn: expiresIn, now: time.Now}
}

// Enabled reports whether a secret is configured. Without one every token is
// rejected.
func (s *HMACService) Enabled() bool {
	return s != nil && len(s.secret) > 0
}

// GenerateAccessToken signs a token for userID. Production tokens come from
// the accounts service; this exists for tooling and tests.
func (s *HMACService) GenerateAccessToken(userID uuid.UUID, email string) (string, error) {
	if !s.Enabled() || s.expiresIn <= 0 || userID == uuid.Nil {
		return "", ErrTokenInvalid
	}
	now := s.now().UTC()
	c := Claims{
		UserID:    userID,
		Email:     strings.TrimSpace(email),
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.expiresIn)),
			Subject:   userID.String(),
		},
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString(s.secret)
}

func (s *HMACService) ValidateAccessToken(tokenString string) (Claims, error) {
	if !s.Enabled() {
		return Claims{}, ErrTokenInvalid
	}

	p := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(s.now),
		jwtlib.WithExpirationRequired(),
	)

	var c Claims
	tok, err := p.ParseWithClaims(tokenString, &c, func(*jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}
	if c.TokenType != TokenTypeAccess || c.UserID == uuid.Nil {
		return Claims{}, ErrTokenInvalid
	}
	return c, nil
}

var _ Validator = (*HMACService)(nil)
