package roomstatus

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelops/internal/domain"
	"hotelops/internal/pkg/jwt"
)

func newFeedServer(t *testing.T) (*Hub, *jwt.Service, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub(zerolog.Nop())
	jwtSvc := jwt.New("test-secret", time.Hour)

	r := gin.New()
	NewWSHandler(hub, jwtSvc, nil, zerolog.Nop()).RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, jwtSvc, srv
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/rooms?" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.ConnectedCount() == n }, 2*time.Second, 10*time.Millisecond)
}

func TestFeed_StreamsRoomEvents(t *testing.T) {
	hub, jwtSvc, srv := newFeedServer(t)
	token, err := jwtSvc.GenerateToken(1, "receptionist")
	require.NoError(t, err)

	conn := dial(t, srv, "token="+token)
	waitForClients(t, hub, 1)

	ev := domain.NewRoomEvent(domain.EventReservationCheckedIn, 12, time.Now())
	hub.Publish(ev)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got WSEvent
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, EventRoomStatus, got.Type)
	assert.Equal(t, ev.ID, got.Payload.ID)
	assert.Equal(t, int64(12), got.Payload.RoomID)
	assert.Equal(t, domain.RoomOccupied, got.Payload.Status)
}

func TestFeed_RoomFilter(t *testing.T) {
	hub, jwtSvc, srv := newFeedServer(t)
	token, err := jwtSvc.GenerateToken(2, "housekeeping")
	require.NoError(t, err)

	conn := dial(t, srv, "token="+token+"&room_id=5")
	waitForClients(t, hub, 1)

	hub.Publish(domain.NewRoomEvent(domain.EventReservationCheckedOut, 4, time.Now()))
	want := domain.NewRoomEvent(domain.EventReservationCheckedOut, 5, time.Now())
	hub.Publish(want)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got WSEvent
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, want.ID, got.Payload.ID)
}

func TestFeed_RejectsMissingOrBadToken(t *testing.T) {
	_, _, srv := newFeedServer(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/rooms"

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, resp, err = websocket.DefaultDialer.Dial(url+"?token=garbage", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHub_CloseDisconnectsClients(t *testing.T) {
	hub, jwtSvc, srv := newFeedServer(t)
	token, err := jwtSvc.GenerateToken(3, "manager")
	require.NoError(t, err)

	conn := dial(t, srv, "token="+token)
	waitForClients(t, hub, 1)

	hub.Close()
	assert.Equal(t, 0, hub.ConnectedCount())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
}
