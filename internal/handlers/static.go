package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"doctor-portal-server/internal/utils"

	"github.com/gin-gonic/gin"
)

// StaticHandler serves the public asset directory and the not-found page.
type StaticHandler struct {
	Dir string
}

// NewStaticHandler creates a new StaticHandler.
func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{Dir: dir}
}

// lookup maps a URL path onto a regular file inside Dir.
func (h *StaticHandler) lookup(urlPath string) (string, bool) {
	if h.Dir == "" {
		return "", false
	}
	clean := path.Clean("/" + urlPath)
	full := filepath.Join(h.Dir, filepath.FromSlash(clean))
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return "", false
	}
	return full, true
}

// Index serves the landing page.
func (h *StaticHandler) Index(c *gin.Context) {
	if file, ok := h.lookup("index.html"); ok {
		c.File(file)
		return
	}
	utils.NotFound(c)
}

// NotFound serves a static asset when one matches the path and renders the
// 404 page otherwise.
func (h *StaticHandler) NotFound(c *gin.Context) {
	if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
		if file, ok := h.lookup(c.Request.URL.Path); ok {
			c.File(file)
			return
		}
	}
	utils.NotFound(c)
}

// Health reports that the process is serving.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}
