package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"frontend/internal/auth"
	"frontend/internal/http/middleware"
	"frontend/internal/storage"
	"frontend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const wsWriteTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// cross-origin access is decided by the CORS middleware
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GET /ws/storage pushes the client's auth state whenever another tab changes
// its token.
func (h *Handler) StorageEvents(c *gin.Context) {
	cl := client(c)
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "ws", "upgrade", err.Error())
		return
	}
	defer conn.Close()
	// clear the deadline inherited from the server's ReadTimeout
	_ = conn.SetReadDeadline(time.Time{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var writeMu sync.Mutex
	send := func(st auth.State) {
		writeMu.Lock()
		defer writeMu.Unlock()
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteJSON(gin.H{"type": "auth", "state": st}); err != nil {
			cancel()
		}
	}

	unsubscribe := cl.Auth.Subscribe(send)
	defer unsubscribe()
	stopDurable := h.watch(ctx, cl, h.Durable, middleware.DurableScope(cl))
	defer stopDurable()
	stopSession := h.watch(ctx, cl, h.Session, middleware.SessionScope(cl))
	defer stopSession()

	send(cl.Auth.State())

	// the read loop only detects the peer going away
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
		if ctx.Err() != nil {
			return
		}
	}
}

func (h *Handler) watch(ctx context.Context, cl *middleware.Client, obs *storage.Observed, scope string) func() {
	if obs == nil {
		return func() {}
	}
	return cl.Auth.Watch(ctx, obs, scope)
}
