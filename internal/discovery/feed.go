// Package discovery consumes the upstream token-discovery feed. The
// cross-platform discovery logic itself is external; this package only turns
// its event stream into per-cycle candidate lists.
package discovery

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"token-radar/internal/domain"
)

// Source produces the candidate list for one cycle.
type Source interface {
	Candidates(ctx context.Context) ([]domain.Candidate, error)
}

// StaticSource serves a fixed candidate list; used for tests and offline runs.
type StaticSource struct {
	list []domain.Candidate
}

// NewStaticSource creates a source over a fixed list.
func NewStaticSource(list []domain.Candidate) *StaticSource {
	return &StaticSource{list: list}
}

// Candidates returns a copy of the fixed list.
func (s *StaticSource) Candidates(_ context.Context) ([]domain.Candidate, error) {
	out := make([]domain.Candidate, len(s.list))
	copy(out, s.list)
	return out, nil
}

// FeedConfig configures the WebSocket feed client.
type FeedConfig struct {
	ReconnectDelay    time.Duration
	MaxReconnectDelay time.Duration
	ReadTimeout       time.Duration
}

// DefaultFeedConfig returns feed client defaults.
func DefaultFeedConfig() FeedConfig {
	return FeedConfig{
		ReconnectDelay:    1 * time.Second,
		MaxReconnectDelay: 30 * time.Second,
		ReadTimeout:       60 * time.Second,
	}
}

// candidateEvent is the feed's wire shape for one discovered token.
type candidateEvent struct {
	Address            string   `json:"address"`
	Symbol             string   `json:"symbol"`
	Platforms          []string `json:"platforms"`
	CrossPlatformScore float64  `json:"crossPlatformScore"`
	MarketCap          float64  `json:"marketCap"`
	Volume24h          float64  `json:"volume24h"`
	Liquidity          float64  `json:"liquidity"`
}

// FeedSource buffers discovery events between cycles. Candidates drains the
// buffer, deduplicated by address (last event wins).
type FeedSource struct {
	endpoint string
	config   FeedConfig
	log      zerolog.Logger

	mu     sync.Mutex
	buffer map[string]domain.Candidate
	conn   *websocket.Conn

	done chan struct{}
	wg   sync.WaitGroup
}

// NewFeedSource connects to the discovery feed and starts buffering events.
func NewFeedSource(ctx context.Context, endpoint string, config *FeedConfig, log zerolog.Logger) (*FeedSource, error) {
	cfg := DefaultFeedConfig()
	if config != nil {
		cfg = *config
	}

	f := &FeedSource{
		endpoint: endpoint,
		config:   cfg,
		log:      log,
		buffer:   make(map[string]domain.Candidate),
		done:     make(chan struct{}),
	}

	conn, err := f.dial(ctx)
	if err != nil {
		return nil, err
	}
	f.setConn(conn)

	f.wg.Add(1)
	go f.readLoop(conn)
	return f, nil
}

// Candidates drains the buffered events accumulated since the last call.
func (f *FeedSource) Candidates(_ context.Context) ([]domain.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]domain.Candidate, 0, len(f.buffer))
	for _, c := range f.buffer {
		out = append(out, c)
	}
	f.buffer = make(map[string]domain.Candidate)
	return out, nil
}

// Close stops the reader and closes the connection. Closing the connection
// here unblocks a reader waiting in ReadMessage.
func (f *FeedSource) Close() {
	close(f.done)
	f.mu.Lock()
	if f.conn != nil {
		f.conn.Close()
	}
	f.mu.Unlock()
	f.wg.Wait()
}

func (f *FeedSource) setConn(conn *websocket.Conn) {
	f.mu.Lock()
	f.conn = conn
	f.mu.Unlock()
}

func (f *FeedSource) dial(ctx context.Context) (*websocket.Conn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, f.endpoint, nil)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// readLoop decodes feed events into the buffer, reconnecting with capped
// backoff on read failure.
func (f *FeedSource) readLoop(conn *websocket.Conn) {
	defer f.wg.Done()
	defer func() {
		if conn != nil {
			conn.Close()
		}
	}()

	delay := f.config.ReconnectDelay
	for {
		select {
		case <-f.done:
			return
		default:
		}

		if conn == nil {
			select {
			case <-f.done:
				return
			case <-time.After(delay):
			}
			if delay *= 2; delay > f.config.MaxReconnectDelay {
				delay = f.config.MaxReconnectDelay
			}

			next, dialErr := f.dial(context.Background())
			if dialErr != nil {
				f.log.Warn().Err(dialErr).Msg("discovery feed reconnect failed")
				continue
			}
			conn = next
			f.setConn(conn)
		}

		conn.SetReadDeadline(time.Now().Add(f.config.ReadTimeout))
		_, payload, err := conn.ReadMessage()
		if err != nil {
			conn.Close()
			conn = nil
			f.setConn(nil)
			f.log.Warn().Err(err).Msg("discovery feed read failed, reconnecting")
			continue
		}
		delay = f.config.ReconnectDelay

		var event candidateEvent
		if err := json.Unmarshal(payload, &event); err != nil || event.Address == "" {
			f.log.Debug().Msg("skipping undecodable discovery event")
			continue
		}

		f.mu.Lock()
		f.buffer[event.Address] = domain.Candidate{
			Address:            event.Address,
			Symbol:             event.Symbol,
			Platforms:          event.Platforms,
			CrossPlatformScore: event.CrossPlatformScore,
			MarketCap:          event.MarketCap,
			Volume24h:          event.Volume24h,
			Liquidity:          event.Liquidity,
		}
		f.mu.Unlock()
	}
}

var (
	_ Source = (*StaticSource)(nil)
	_ Source = (*FeedSource)(nil)
)
