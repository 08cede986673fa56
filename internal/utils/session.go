package utils

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"doctor-portal-server/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the cookie carrying the signed session.
const SessionCookieName = "session"

// Session is the server-trusted state of the current request.
type Session struct {
	Authenticated  bool
	PractitionerID uint
}

// SessionClaims is the signed payload of the session cookie.
type SessionClaims struct {
	Authenticated  bool `json:"authenticated"`
	PractitionerID uint `json:"practitioner_id"`
	jwt.RegisteredClaims
}

// SessionCodec signs, verifies and stores sessions in an HTTP-only cookie.
type SessionCodec struct {
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// NewSessionCodec creates a SessionCodec from the server configuration.
func NewSessionCodec(cfg *config.Config) *SessionCodec {
	return &SessionCodec{
		secret: []byte(cfg.SessionSecret),
		ttl:    time.Duration(cfg.SessionTTLMinutes) * time.Minute,
		secure: cfg.IsProduction(),
		now:    time.Now,
	}
}

// Encode signs an authenticated session for practitionerID.
func (s *SessionCodec) Encode(practitionerID uint) (string, error) {
	now := s.now()
	claims := &SessionClaims{
		Authenticated:  true,
		PractitionerID: practitionerID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   strconv.FormatUint(uint64(practitionerID), 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return tokenString, nil
}

// Decode verifies a signed session.
func (s *SessionCodec) Decode(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid session")
	}

	return claims, nil
}

// Read returns the session of the request. A missing, expired or forged
// cookie reads as an unauthenticated session.
func (s *SessionCodec) Read(c *gin.Context) Session {
	raw, err := c.Cookie(SessionCookieName)
	if err != nil || raw == "" {
		return Session{}
	}
	claims, err := s.Decode(raw)
	if err != nil || !claims.Authenticated || claims.PractitionerID == 0 {
		return Session{}
	}
	return Session{Authenticated: true, PractitionerID: claims.PractitionerID}
}

// Issue starts an authenticated session for practitionerID.
func (s *SessionCodec) Issue(c *gin.Context, practitionerID uint) error {
	token, err := s.Encode(practitionerID)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		SessionCookieName,
		token,
		int(s.ttl.Seconds()),
		"/",
		"",
		s.secure,
		true,
	)
	return nil
}

// Clear drops both the authenticated flag and the practitioner id by
// expiring the cookie. Clearing an absent session is a no-op for the client.
func (s *SessionCodec) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", s.secure, true)
}
