package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"GoldTracker/internal/domain/models"

	"github.com/gorilla/websocket"
)

func TestStreamPushesFramesUntilEviction(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodGet, "/api/state", "")

	srv := httptest.NewServer(env.server.Echo())
	defer srv.Close()

	header := http.Header{}
	header.Add("Cookie", env.cookie.Name+"="+env.cookie.Value)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var f models.StreamFrame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("first frame: %v", err)
	}
	if f.Clock != "09:30:00" || f.ActiveTab != models.TabMarkets || len(f.Markets) != 6 {
		t.Fatalf("first frame=%+v", f)
	}

	tk := env.stream.Next(2 * time.Second)
	if tk == nil {
		t.Fatalf("stream timer not started")
	}
	if !tk.Fire(time.Now()) {
		t.Fatalf("stream tick not delivered")
	}
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("second frame: %v", err)
	}

	// eviction ends the stream
	env.sessions.Stop()
	tk.Fire(time.Now())
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				t.Fatalf("want normal close, got %v", err)
			}
			break
		}
	}
	deadline := time.Now().Add(2 * time.Second)
	for !tk.Stopped() {
		if time.Now().After(deadline) {
			t.Fatalf("stream timer still running after close")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
