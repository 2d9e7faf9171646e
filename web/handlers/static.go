package handlers

import (
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"stt-relay/internal/api/errors"
	"stt-relay/internal/api/middleware"
)

const indexFile = "index.html"

// StaticHandler serves the browser client from an fs.FS
type StaticHandler struct {
	files fs.FS
}

// NewStaticHandler creates a new static file handler
func NewStaticHandler(files fs.FS) *StaticHandler {
	return &StaticHandler{files: files}
}

// ServeStatic serves static files and the main HTML page. It is mounted as
// the router's NoRoute handler so API routes always take precedence.
func (h *StaticHandler) ServeStatic(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		middleware.HandleError(c, nil, errors.NewNotFoundError("Route"))
		return
	}

	name := strings.TrimPrefix(path.Clean("/"+c.Request.URL.Path), "/")
	if name == "" {
		name = indexFile
	}

	data, err := fs.ReadFile(h.files, name)
	if err != nil {
		middleware.HandleError(c, nil, errors.NewNotFoundError("File"))
		return
	}

	// Set caching headers for static assets
	if name != indexFile {
		c.Header("Cache-Control", "public, max-age=3600")
	}

	c.Data(http.StatusOK, getContentType(name), data)
}

// getContentType returns the appropriate content type for a file
func getContentType(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".html":
		return "text/html; charset=utf-8"
	case ".css":
		return "text/css; charset=utf-8"
	case ".js":
		return "application/javascript; charset=utf-8"
	case ".json":
		return "application/json"
	case ".svg":
		return "image/svg+xml"
	case ".ico":
		return "image/x-icon"
	case ".png":
		return "image/png"
	case ".wav":
		return "audio/wav"
	case ".mp3":
		return "audio/mpeg"
	case ".m4a":
		return "audio/mp4"
	case ".webm":
		return "audio/webm"
	default:
		return "application/octet-stream"
	}
}
