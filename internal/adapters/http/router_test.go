package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	router "github.com/dkeye/Dicecells/internal/adapters/http"
	"github.com/dkeye/Dicecells/internal/app"
	"github.com/dkeye/Dicecells/internal/app/orch"
	"github.com/dkeye/Dicecells/internal/config"
	"github.com/dkeye/Dicecells/internal/core"
	"github.com/dkeye/Dicecells/internal/domain"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type discardConn struct{}

func (discardConn) TrySend(core.Frame) error { return nil }
func (discardConn) Close()                   {}

func setup(t *testing.T) (*gin.Engine, *orch.Orchestrator) {
	t.Helper()
	cfg := &config.Config{
		Mode:           config.ModeDebug,
		ReadLimit:      4096,
		PingPeriod:     time.Second,
		PongWait:       2 * time.Second,
		WriteWait:      time.Second,
		SendBuffer:     16,
		MaxRoomPlayers: 6,
		RateLimit:      50,
		RateInterval:   time.Second,
		DevOrigins:     []string{"http://localhost:5173"},
	}
	o := &orch.Orchestrator{
		Rooms:   app.NewRoomRegistry(cfg.MaxRoomPlayers),
		Gateway: app.NewGateway(),
		Policy:  app.SimplePolicy{},
		Events:  app.NopSink{},
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return router.SetupRouter(ctx, cfg, o), o
}

func TestHealth(t *testing.T) {
	r, _ := setup(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestListRooms(t *testing.T) {
	r, o := setup(t)
	o.Connect("a", discardConn{}, nil)
	o.CreateRoom("a", 4, "secret", "alice")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/rooms", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Rooms []domain.RoomSummary `json:"rooms"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Rooms, 1)
	assert.Equal(t, 1, body.Rooms[0].Players)
	assert.Equal(t, 4, body.Rooms[0].MaxPlayers)
	assert.True(t, body.Rooms[0].HasPassword)
	assert.NotContains(t, w.Body.String(), "secret")
}

func TestListRoomsEmpty(t *testing.T) {
	r, _ := setup(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/rooms", nil))

	assert.JSONEq(t, `{"rooms":[]}`, w.Body.String())
}

func TestCORS(t *testing.T) {
	r, _ := setup(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestWebsocketEndpoint(t *testing.T) {
	r, o := setup(t)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"http://localhost:5173"}})
	require.NoError(t, err)
	defer ws.Close()

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := ws.ReadMessage()
	require.NoError(t, err)
	env, err := core.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, core.MsgHello, env.Type)
	assert.Equal(t, 1, o.Gateway.Len())

	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"https://evil.example"}})
	assert.Error(t, err)
	if resp != nil {
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	}
}
