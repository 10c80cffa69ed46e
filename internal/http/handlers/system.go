package handlers

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"frontend/internal/storage"

	"github.com/gin-gonic/gin"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for later inspection (e.g., /api/routes).
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "flight booking front-end is running"})
}

// StorageCheck writes and reads back a probe key in both storage backends.
func (h *Handler) StorageCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	result := gin.H{}
	ok := true
	for name, b := range map[string]storage.Backend{"durable": h.Durable, "session": h.Session} {
		if err := probe(ctx, b); err != nil {
			result[name] = err.Error()
			ok = false
			continue
		}
		result[name] = "ok"
	}

	status := http.StatusOK
	if !ok {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"storage": result, "driver": h.Env.StorageDriver})
}

var errProbeMismatch = errors.New("probe value was not read back")

func probe(ctx context.Context, b storage.Backend) error {
	stamp := time.Now().UTC().Format(time.RFC3339Nano)
	if err := b.Set(ctx, "_health", "probe", stamp); err != nil {
		return err
	}
	v, found, err := b.Get(ctx, "_health", "probe")
	if err != nil {
		return err
	}
	if !found || v != stamp {
		return errProbeMismatch
	}
	return nil
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "router is not ready"})
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
