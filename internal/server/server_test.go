package server

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/nnaakkaaii/tilemerge/internal/domain"
)

func newTestServer(t *testing.T, allow ...string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(Config{
		Size:         3,
		AllowOrigins: allow,
		NewRand:      func() domain.Rand { return rand.New(rand.NewSource(1)) },
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, ctx context.Context, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	c, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { c.CloseNow() })
	return c
}

func read(t *testing.T, ctx context.Context, c *websocket.Conn, wantType string) Message {
	t.Helper()
	var m Message
	if err := wsjson.Read(ctx, c, &m); err != nil {
		t.Fatalf("read %s: %v", wantType, err)
	}
	if m.T != wantType {
		t.Fatalf("got message %+v, want type %s", m, wantType)
	}
	return m
}

func countTiles(s *domain.Snapshot) int {
	n := 0
	for _, row := range s.Cells {
		for _, v := range row {
			if v != 0 {
				n++
			}
		}
	}
	return n
}

func TestSession(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	srv := newTestServer(t)
	c := dial(t, ctx, srv)

	initial := read(t, ctx, c, TypeState)
	if initial.State == nil || initial.State.Size != 3 || countTiles(initial.State) != 2 {
		t.Fatalf("unexpected initial state %+v", initial.State)
	}

	if err := wsjson.Write(ctx, c, Message{T: TypeMove, Dir: "x"}); err != nil {
		t.Fatal(err)
	}
	read(t, ctx, c, TypeState)
	if m := read(t, ctx, c, TypeNotice); m.Text != "Invalid move!" {
		t.Errorf("notice = %q, want Invalid move!", m.Text)
	}

	// 2枚のタイルなら4方向のうち少なくとも1つは動く
	moved := false
	for _, dir := range []string{"a", "d", "w", "s"} {
		if err := wsjson.Write(ctx, c, Message{T: TypeMove, Dir: dir}); err != nil {
			t.Fatal(err)
		}
		state := read(t, ctx, c, TypeState)
		if countTiles(state.State) == 3 || state.State.Score > 0 {
			moved = true
			break
		}
		read(t, ctx, c, TypeNotice)
	}
	if !moved {
		t.Fatal("no direction moved the board")
	}

	if err := wsjson.Write(ctx, c, Message{T: TypeQuit}); err != nil {
		t.Fatal(err)
	}
	if m := read(t, ctx, c, TypeNotice); m.Text != "Quit." {
		t.Errorf("notice = %q, want Quit.", m.Text)
	}

	var m Message
	err := wsjson.Read(ctx, c, &m)
	if websocket.CloseStatus(err) != websocket.StatusNormalClosure {
		t.Errorf("expected normal closure, got %v", err)
	}
}

func TestZeroConfigUsesDefaultSize(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	srv := httptest.NewServer(New(Config{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}))
	t.Cleanup(srv.Close)
	c := dial(t, ctx, srv)

	m := read(t, ctx, c, TypeState)
	if m.State == nil || m.State.Size != 4 || countTiles(m.State) != 2 {
		t.Errorf("unexpected initial state %+v", m.State)
	}
}

func TestUnknownMessageType(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c := dial(t, ctx, newTestServer(t))
	read(t, ctx, c, TypeState)

	if err := wsjson.Write(ctx, c, Message{T: "undo"}); err != nil {
		t.Fatal(err)
	}
	if m := read(t, ctx, c, TypeNotice); !strings.Contains(m.Text, "undo") {
		t.Errorf("unexpected notice %q", m.Text)
	}
}

func TestForbiddenOrigin(t *testing.T) {
	srv := newTestServer(t, "http://allowed.example")

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/ws", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Origin", "http://evil.example")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusForbidden)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Errorf("health = %d %q", resp.StatusCode, body)
	}
}
