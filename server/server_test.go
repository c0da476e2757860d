package server

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"snake-ai/game"
	"snake-ai/store"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type fakeHistory struct {
	mu     sync.Mutex
	rounds []game.Round
	limit  int
}

func (f *fakeHistory) lastLimit() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.limit
}

func (f *fakeHistory) Recent(ctx context.Context, limit int) ([]game.Round, error) {
	f.mu.Lock()
	f.limit = limit
	f.mu.Unlock()
	if limit < len(f.rounds) {
		return f.rounds[:limit], nil
	}
	return f.rounds, nil
}

func (f *fakeHistory) Summary(ctx context.Context) (store.Summary, error) {
	return store.Summarize(f.rounds), nil
}

func newTestServer(t *testing.T, opts Options) (*Server, *httptest.Server) {
	t.Helper()
	opts.Logger = log.New(io.Discard, "", 0)
	s := New(opts)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func getJSON(t *testing.T, url string, status int, v any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != status {
		t.Fatalf("GET %s: status %d, want %d", url, resp.StatusCode, status)
	}
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("GET %s: %v", url, err)
		}
	}
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t, Options{})
	var body map[string]string
	getJSON(t, ts.URL+"/api/health", http.StatusOK, &body)
	if body["status"] != "ok" {
		t.Errorf("health = %v", body)
	}
}

func TestStateReturnsLatestSnapshot(t *testing.T) {
	s, ts := newTestServer(t, Options{})
	getJSON(t, ts.URL+"/api/state", http.StatusServiceUnavailable, nil)

	s.OnEvent(game.Event{Type: game.EventTick, Snapshot: game.Snapshot{RoundID: "r", Tick: 1, Score: 2}})
	s.OnEvent(game.Event{Type: game.EventConsume})
	s.Publish(game.Snapshot{RoundID: "r", Tick: 2, Score: 3, Phase: game.Terminated, Reason: game.ReasonWall})

	var snap game.Snapshot
	getJSON(t, ts.URL+"/api/state", http.StatusOK, &snap)
	if snap.Tick != 2 || snap.Score != 3 || snap.Phase != game.Terminated || snap.Reason != game.ReasonWall {
		t.Errorf("state = %+v", snap)
	}
}

func TestRounds(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	hist := &fakeHistory{rounds: []game.Round{
		{ID: "a", Score: 5, StartedAt: base, EndedAt: base.Add(time.Second)},
		{ID: "b", Score: 3, StartedAt: base, EndedAt: base.Add(3 * time.Second)},
	}}
	_, ts := newTestServer(t, Options{History: hist})

	var resp roundsResponse
	getJSON(t, ts.URL+"/api/rounds?limit=1", http.StatusOK, &resp)
	if len(resp.Rounds) != 1 || resp.Rounds[0].ID != "a" {
		t.Errorf("rounds = %+v", resp.Rounds)
	}
	if resp.Summary.Rounds != 2 || resp.Summary.MaxScore != 5 {
		t.Errorf("summary = %+v", resp.Summary)
	}

	getJSON(t, ts.URL+"/api/rounds?limit=nope", http.StatusOK, &resp)
	if hist.lastLimit() != 20 {
		t.Errorf("default limit = %d, want 20", hist.lastLimit())
	}
	getJSON(t, ts.URL+"/api/rounds?limit=100000", http.StatusOK, &resp)
	if hist.lastLimit() != 500 {
		t.Errorf("clamped limit = %d, want 500", hist.lastLimit())
	}
}

func TestRoundsWithoutHistory(t *testing.T) {
	_, ts := newTestServer(t, Options{})
	getJSON(t, ts.URL+"/api/rounds", http.StatusServiceUnavailable, nil)
}

func TestRecord(t *testing.T) {
	dir := t.TempDir()
	id := uuid.NewString()
	rec, err := store.NewRecorder(dir, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatal(err)
	}
	rec.Record(game.Snapshot{RoundID: id, Tick: 1})
	rec.Record(game.Snapshot{RoundID: id, Tick: 2})
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}

	_, ts := newTestServer(t, Options{RecordsDir: dir})

	var snaps []game.Snapshot
	getJSON(t, ts.URL+"/api/rounds/"+id+"/record", http.StatusOK, &snaps)
	if len(snaps) != 2 || snaps[1].Tick != 2 {
		t.Errorf("record = %+v", snaps)
	}

	getJSON(t, ts.URL+"/api/rounds/"+uuid.NewString()+"/record", http.StatusNotFound, nil)
	getJSON(t, ts.URL+"/api/rounds/not-a-round/record", http.StatusBadRequest, nil)
}

func TestWebSocketStream(t *testing.T) {
	s, ts := newTestServer(t, Options{})
	s.Publish(game.Snapshot{RoundID: "r", Tick: 1})

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	// The latest snapshot arrives on connect, which also proves registration
	var snap game.Snapshot
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatal(err)
	}
	if snap.Tick != 1 {
		t.Errorf("first message tick = %d, want 1", snap.Tick)
	}

	s.Publish(game.Snapshot{RoundID: "r", Tick: 2})
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatal(err)
	}
	if snap.Tick != 2 {
		t.Errorf("second message tick = %d, want 2", snap.Tick)
	}
	if s.Clients() != 1 {
		t.Errorf("clients = %d, want 1", s.Clients())
	}
}
