package discovery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"token-radar/internal/domain"
)

func TestStaticSource_ReturnsCopy(t *testing.T) {
	list := []domain.Candidate{
		{Address: "addr1", Symbol: "ONE"},
		{Address: "addr2", Symbol: "TWO"},
	}
	s := NewStaticSource(list)

	first, err := s.Candidates(context.Background())
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	first[0].Symbol = "MUTATED"

	second, _ := s.Candidates(context.Background())
	if second[0].Symbol != "ONE" {
		t.Error("mutating a returned slice leaked into the source")
	}
}

func wsEchoServer(t *testing.T, payloads []string) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for _, p := range payloads {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(p)); err != nil {
				return
			}
		}
		// Hold the connection open so the reader does not churn reconnects.
		time.Sleep(2 * time.Second)
	}))
}

func TestFeedSource_BuffersAndDeduplicates(t *testing.T) {
	srv := wsEchoServer(t, []string{
		`{"address": "addr1", "symbol": "OLD", "crossPlatformScore": 40}`,
		`{"address": "addr2", "symbol": "TWO", "platforms": ["dexscreener"]}`,
		`{"address": "addr1", "symbol": "NEW", "crossPlatformScore": 70}`,
		`not json at all`,
		`{"symbol": "NOADDR"}`,
	})
	defer srv.Close()

	endpoint := "ws" + strings.TrimPrefix(srv.URL, "http")
	feed, err := NewFeedSource(context.Background(), endpoint, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewFeedSource: %v", err)
	}
	defer feed.Close()

	// Give the reader time to drain the scripted events.
	deadline := time.Now().Add(2 * time.Second)
	var got []domain.Candidate
	for time.Now().Before(deadline) {
		feed.mu.Lock()
		n := len(feed.buffer)
		feed.mu.Unlock()
		if n >= 2 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	got, err = feed.Candidates(context.Background())
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 deduplicated candidates, got %d: %v", len(got), got)
	}

	byAddr := make(map[string]domain.Candidate, len(got))
	for _, c := range got {
		byAddr[c.Address] = c
	}
	// Last event for addr1 wins.
	if byAddr["addr1"].Symbol != "NEW" || byAddr["addr1"].CrossPlatformScore != 70 {
		t.Errorf("dedup kept the wrong event: %+v", byAddr["addr1"])
	}

	// The buffer drains on read.
	again, _ := feed.Candidates(context.Background())
	if len(again) != 0 {
		t.Errorf("second drain returned %d candidates", len(again))
	}
}

func TestFeedSource_CloseUnblocksReader(t *testing.T) {
	// A server that sends nothing leaves the reader blocked in ReadMessage.
	srv := wsEchoServer(t, nil)
	defer srv.Close()

	endpoint := "ws" + strings.TrimPrefix(srv.URL, "http")
	feed, err := NewFeedSource(context.Background(), endpoint, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewFeedSource: %v", err)
	}

	closed := make(chan struct{})
	go func() {
		feed.Close()
		close(closed)
	}()

	select {
	case <-closed:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("Close did not return while the reader was blocked")
	}
}

func TestFeedSource_DialFailure(t *testing.T) {
	_, err := NewFeedSource(context.Background(), "ws://127.0.0.1:1/feed", nil, zerolog.Nop())
	if err == nil {
		t.Fatal("expected dial error for an unreachable endpoint")
	}
}
