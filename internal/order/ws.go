package order

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type LiveHandler struct {
	feed *Feed
	log  zerolog.Logger
}

func NewLiveHandler(feed *Feed, log zerolog.Logger) *LiveHandler {
	return &LiveHandler{feed: feed, log: log.With().Str("component", "order-ws").Logger()}
}

// --------------------------------------------------
// WS /admin/orders/live
// --------------------------------------------------
func (h *LiveHandler) Serve(c *gin.Context) {
	restaurantID := c.GetInt64("restaurantID")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("ws upgrade")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// the client only sends control frames; a read error means it left
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	lists, err := h.feed.Watch(ctx, restaurantID)
	if err != nil {
		h.log.Error().Err(err).Int64("restaurant_id", restaurantID).Msg("start order feed")
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "feed unavailable"),
			time.Now().Add(writeWait))
		return
	}

	h.log.Debug().Int64("restaurant_id", restaurantID).Msg("live feed connected")
	for orders := range lists {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(orders); err != nil {
			h.log.Debug().Err(err).Msg("ws write")
			return
		}
	}
}
