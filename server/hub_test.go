package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"netdefense/game"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func TestHubFanOut(t *testing.T) {
	h := NewHub()
	go h.Run()

	client := &Client{hub: h, send: make(chan []byte, 1)}
	h.register <- client

	h.BroadcastState(game.NewGameState(game.DefaultConfig()))

	select {
	case data := <-client.send:
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		require.Equal(t, "state_update", msg.Type)
	case <-time.After(time.Second):
		t.Fatal("registered client never received the broadcast")
	}
}

func TestWebSocketStateUpdates(t *testing.T) {
	s := newTestServer()
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	// The hub registers the client just after the handshake completes;
	// give those two channel handoffs a moment before the first move.
	time.Sleep(200 * time.Millisecond)

	res, err := http.Post(ts.URL+"/api/game/attack", "application/json", strings.NewReader(`{"attackId": 1}`))
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err, "An applied move should push a snapshot to connected clients")

	var msg struct {
		Type    string         `json:"type"`
		Payload game.GameState `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(data, &msg))
	require.Equal(t, "state_update", msg.Type)
	require.Equal(t, 1, msg.Payload.Turn)
	require.Equal(t, game.RoleDefender, msg.Payload.Current)
}
