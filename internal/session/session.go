package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid session token")

const issuer = "glucorisk"

type Claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// Email is the subject of the token.
func (c *Claims) Email() string { return c.Subject }

type Manager struct {
	hmac []byte
	ttl  time.Duration
	now  func() time.Time
}

func NewManager(secret []byte, ttl time.Duration) *Manager {
	return &Manager{hmac: secret, ttl: ttl, now: time.Now}
}

// Issue signs a token for the account identified by email.
func (m *Manager) Issue(email, name string) (string, error) {
	now := m.now()
	claims := &Claims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.hmac)
}

func (m *Manager) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return m.hmac, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	c, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || c.Subject == "" {
		return nil, ErrInvalidToken
	}
	return c, nil
}
