package middleware

import (
	"net/http"

	"doctor-portal-server/internal/utils"

	"github.com/gin-gonic/gin"
)

const practitionerIDKey = "practitionerID"

// SignInPath is where unauthenticated callers are sent.
const SignInPath = "/signin"

// GuardResult is the outcome of the session check: either Authorized with
// the practitioner's id, or not authorized and to be redirected.
type GuardResult struct {
	PractitionerID uint
	Authorized     bool
}

// Authorize inspects the request's session.
func Authorize(c *gin.Context, sessions *utils.SessionCodec) GuardResult {
	s := sessions.Read(c)
	if !s.Authenticated || s.PractitionerID == 0 {
		return GuardResult{}
	}
	return GuardResult{PractitionerID: s.PractitionerID, Authorized: true}
}

// SessionGuard stops unauthenticated requests before they reach a handler
// and redirects them to the sign-in page. Authorized requests carry the
// practitioner id in the context.
func SessionGuard(sessions *utils.SessionCodec) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := Authorize(c, sessions)
		if !result.Authorized {
			c.Redirect(http.StatusSeeOther, SignInPath)
			c.Abort()
			return
		}

		c.Set(practitionerIDKey, result.PractitionerID)
		c.Next()
	}
}

// GetPractitionerIDFromContext returns the id set by SessionGuard.
func GetPractitionerIDFromContext(c *gin.Context) (uint, bool) {
	v, exists := c.Get(practitionerIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}
