package order

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiveHandler_StreamsOrderLists(t *testing.T) {
	gin.SetMode(gin.TestMode)

	n := NewMemoryNotifier()
	repo := NewInMemoryRepository(n)
	live := NewLiveHandler(NewFeed(repo, n, zerolog.Nop()), zerolog.Nop())

	r := gin.New()
	r.GET("/admin/orders/live", func(c *gin.Context) {
		c.Set("restaurantID", int64(1))
		c.Next()
	}, live.Serve)

	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/admin/orders/live"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var first []Order
	require.NoError(t, conn.ReadJSON(&first))
	assert.Empty(t, first)

	require.NoError(t, repo.Place(context.Background(), newOrder(1)))

	var second []Order
	require.NoError(t, conn.ReadJSON(&second))
	require.Len(t, second, 1)
	assert.Equal(t, "Asha", second[0].CustomerName)
}
