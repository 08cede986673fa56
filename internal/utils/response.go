package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CSRFTokenKey is the gin context key holding the request's CSRF token.
const CSRFTokenKey = "csrf_token"

// Render executes a named template with the page data. Every page gets the
// CSRF token so forms can post back.
func Render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if token, ok := c.Get(CSRFTokenKey); ok {
		data["CSRFToken"] = token
	}
	c.HTML(status, name, data)
}

// Page renders a page with 200 OK.
func Page(c *gin.Context, name string, data gin.H) {
	Render(c, http.StatusOK, name, data)
}

// FormError re-renders a form with an error message.
func FormError(c *gin.Context, status int, name string, data gin.H, message string) {
	if data == nil {
		data = gin.H{}
	}
	data["Error"] = message
	Render(c, status, name, data)
}

// Redirect sends a 303 so the browser follows up with a GET.
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

// NotFound renders the 404 page. It is also what a request for another
// practitioner's record gets.
func NotFound(c *gin.Context) {
	Render(c, http.StatusNotFound, "404.html", gin.H{"Title": "Page not found"})
}

// InternalServerError renders the 500 page.
func InternalServerError(c *gin.Context) {
	Render(c, http.StatusInternalServerError, "500.html", gin.H{"Title": "Something went wrong"})
}
