// Package auth issues and parses the session tokens. A token embeds the
// enriched user projection so every request carries the derived stats
// without another database round trip.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/retypegame/retype-api/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the JWT payload: registered claims plus the enriched public
// user computed at issuance time.
type Claims struct {
	jwt.RegisteredClaims
	User models.PublicUser `json:"user"`
}

type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token carrying the enriched user.
func (m *Manager) Issue(user models.PublicUser) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		User: user,
	})
	return token.SignedString(m.secret)
}

// Parse validates a token and returns the embedded user.
func (m *Manager) Parse(tokenString string) (*models.PublicUser, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return &claims.User, nil
}
