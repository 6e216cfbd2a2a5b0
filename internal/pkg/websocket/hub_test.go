package websocket

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/csecl/interviewhub/internal/app/models"
	"github.com/gin-gonic/gin"
	gws "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub(zerolog.Nop())
	go hub.Run()
	t.Cleanup(hub.Stop)

	r := gin.New()
	r.GET("/ws", NewHandler(hub, zerolog.Nop()).HandleConnection)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, userID string) *gws.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?userId=" + userID
	conn, _, err := gws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *gws.Conn) Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev Event
	require.NoError(t, json.Unmarshal(data, &ev))
	return ev
}

func TestHub_TargetedAndBroadcastDelivery(t *testing.T) {
	hub, srv := newTestServer(t)
	alice := dial(t, srv, "alice")
	bob := dial(t, srv, "bob")

	require.Eventually(t, func() bool { return hub.TotalClients() == 2 }, 2*time.Second, 10*time.Millisecond)

	hub.Publish(&models.Notification{ID: 1, RecipientUserID: models.StringPtr("alice"), Type: models.NotificationReply, Message: "hi"})
	ev := readEvent(t, alice)
	assert.Equal(t, EventNotification, ev.Type)
	assert.Equal(t, int64(1), ev.Notification.ID)

	hub.Publish(&models.Notification{ID: 2, Type: models.NotificationAnnouncement, Message: "all"})
	assert.Equal(t, int64(2), readEvent(t, alice).Notification.ID)
	// bob never saw alice's reply
	assert.Equal(t, int64(2), readEvent(t, bob).Notification.ID)
}

func TestHandler_RequiresIdentity(t *testing.T) {
	_, srv := newTestServer(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	_, resp, err := gws.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestHub_UnregisterOnClose(t *testing.T) {
	hub, srv := newTestServer(t)
	conn := dial(t, srv, "carol")
	require.Eventually(t, func() bool { return hub.ClientsCount("carol") == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.ClientsCount("carol") == 0 }, 2*time.Second, 10*time.Millisecond)
}
