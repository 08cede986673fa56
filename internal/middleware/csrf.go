package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"doctor-portal-server/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	csrfCookieName = "csrf_token"
	csrfFormField  = "csrf_token"
	csrfHeader     = "X-CSRF-Token"
)

// GenerateToken returns a random hex token.
func GenerateToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("csrf: " + err.Error())
	}
	return hex.EncodeToString(b)
}

func issueToken(c *gin.Context, secure bool) string {
	token, err := c.Cookie(csrfCookieName)
	if err != nil || token == "" {
		token = GenerateToken()
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(csrfCookieName, token, 0, "/", "", secure, true)
	}
	c.Set(utils.CSRFTokenKey, token)
	return token
}

// CSRFToken only issues the token so the rendered forms carry one. Sign-in
// uses it: a first visit may post credentials without a prior GET.
func CSRFToken(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		issueToken(c, secure)
		c.Next()
	}
}

// CSRF issues a double-submit token cookie and checks it on every POST.
func CSRF(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := issueToken(c, secure)

		if c.Request.Method == http.MethodPost {
			reqToken := c.PostForm(csrfFormField)
			if reqToken == "" {
				reqToken = c.GetHeader(csrfHeader)
			}
			if subtle.ConstantTimeCompare([]byte(reqToken), []byte(token)) != 1 {
				c.String(http.StatusForbidden, "Invalid CSRF token")
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
