package http

import (
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

var startTime = time.Now()

// HealthHandler handles GET /health.
func HealthHandler(c *gin.Context) {
	OK(c, gin.H{"status": "ok"})
}

// Status handles GET /status and returns runtime and corpus information.
func (h *ValidationHandler) Status(c *gin.Context) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	documents := 0
	if names, err := h.runner.Loader().List(); err == nil {
		documents = len(names)
	}

	OK(c, gin.H{
		"uptime":      time.Since(startTime).String(),
		"goroutines":  runtime.NumGoroutine(),
		"go_version":  runtime.Version(),
		"alloc_bytes": mem.Alloc,
		"documents":   documents,
		"cached":      h.runner.Cache().Len(),
	})
}
