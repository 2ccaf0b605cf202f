package events

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/battleship-go/internal/model"
)

// Buffer size for outgoing messages per subscriber
const sendBufferSize = 64

// Publisher receives every event the match controller emits
type Publisher interface {
	Publish(event model.Event)
}

// Subscriber receives the encoded events of one match
type Subscriber struct {
	id          string
	send        chan []byte
	connectedAt time.Time
}

// NewSubscriber creates a subscriber with a buffered queue
func NewSubscriber(id string) *Subscriber {
	return &Subscriber{
		id:          id,
		send:        make(chan []byte, sendBufferSize),
		connectedAt: time.Now(),
	}
}

// Messages returns the subscriber's queue. It is closed when the subscriber
// is removed or the hub stops.
func (s *Subscriber) Messages() <-chan []byte {
	return s.send
}

// Hub fans events of a single match out to its subscribers
type Hub struct {
	matchID     model.MatchID
	subscribers map[*Subscriber]bool
	mu          sync.RWMutex
	logger      *slog.Logger

	unregister chan *Subscriber
	broadcast  chan []byte
	done       chan struct{}
	closeOnce  sync.Once
}

// NewHub creates a new Hub for a match
func NewHub(matchID model.MatchID, logger *slog.Logger) *Hub {
	return &Hub{
		matchID:     matchID,
		subscribers: make(map[*Subscriber]bool),
		logger:      logger.With(slog.String("match_id", string(matchID))),
		unregister:  make(chan *Subscriber),
		broadcast:   make(chan []byte, 256),
		done:        make(chan struct{}),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.subscribers[sub]; ok {
				delete(h.subscribers, sub)
				close(sub.send)
				count := len(h.subscribers)
				h.mu.Unlock()
				h.logger.Info("event subscriber unregistered",
					slog.String("subscriber", sub.id),
					slog.Duration("connection_duration", time.Since(sub.connectedAt)),
					slog.Int("total_subscribers", count))
			} else {
				h.mu.Unlock()
			}

		case message := <-h.broadcast:
			h.mu.RLock()
			dropped := 0
			for sub := range h.subscribers {
				select {
				case sub.send <- message:
				default:
					dropped++
				}
			}
			h.mu.RUnlock()
			if dropped > 0 {
				h.logger.Warn("event dropped for slow subscribers", slog.Int("dropped", dropped))
			}

		case <-h.done:
			h.mu.Lock()
			count := len(h.subscribers)
			for sub := range h.subscribers {
				close(sub.send)
				delete(h.subscribers, sub)
			}
			h.mu.Unlock()
			h.logger.Info("event hub stopped", slog.Int("disconnected_subscribers", count))
			return
		}
	}
}

// Subscribe adds a subscriber to the hub. The subscriber is counted by the
// time Subscribe returns; on a closed hub its queue is closed instead.
func (h *Hub) Subscribe(sub *Subscriber) {
	h.mu.Lock()
	select {
	case <-h.done:
		h.mu.Unlock()
		close(sub.send)
		return
	default:
	}
	h.subscribers[sub] = true
	count := len(h.subscribers)
	h.mu.Unlock()

	h.logger.Info("event subscriber registered",
		slog.String("subscriber", sub.id),
		slog.Int("total_subscribers", count))
}

// Unsubscribe removes a subscriber from the hub
func (h *Hub) Unsubscribe(sub *Subscriber) {
	select {
	case h.unregister <- sub:
	case <-h.done:
	}
}

// Broadcast queues an encoded event for every subscriber without blocking
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("event broadcast dropped - hub buffer full")
	}
}

// Close shuts down the hub
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// SubscriberCount returns the number of connected subscribers
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// HubManager owns one hub per match and publishes events to them
type HubManager struct {
	hubs   map[model.MatchID]*Hub
	mu     sync.RWMutex
	logger *slog.Logger
}

// NewHubManager creates a new HubManager
func NewHubManager(logger *slog.Logger) *HubManager {
	return &HubManager{
		hubs:   make(map[model.MatchID]*Hub),
		logger: logger.With(slog.String("component", "events")),
	}
}

var _ Publisher = (*HubManager)(nil)

// Publish encodes the event and hands it to the match's hub, if anyone is listening
func (m *HubManager) Publish(event model.Event) {
	hub := m.GetHub(event.MatchID)
	if hub == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		m.logger.Error("failed to encode event",
			slog.String("match_id", string(event.MatchID)),
			slog.String("type", string(event.Type)),
			slog.String("error", err.Error()))
		return
	}
	hub.Broadcast(data)
}

// GetOrCreateHub returns the hub for a match, creating one if it doesn't exist
func (m *HubManager) GetOrCreateHub(matchID model.MatchID) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getOrCreateLocked(matchID)
}

func (m *HubManager) getOrCreateLocked(matchID model.MatchID) *Hub {
	if hub, ok := m.hubs[matchID]; ok {
		return hub
	}

	hub := NewHub(matchID, m.logger)
	m.hubs[matchID] = hub
	go hub.Run()
	return hub
}

// Subscribe registers sub with the match's hub, creating the hub if needed.
// It holds the manager lock throughout so cleanup cannot close the hub
// before the subscriber is counted.
func (m *HubManager) Subscribe(matchID model.MatchID, sub *Subscriber) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()

	hub := m.getOrCreateLocked(matchID)
	hub.Subscribe(sub)
	return hub
}

// GetHub returns the hub for a match, or nil if it doesn't exist
func (m *HubManager) GetHub(matchID model.MatchID) *Hub {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hubs[matchID]
}

// RemoveHub removes and closes a hub
func (m *HubManager) RemoveHub(matchID model.MatchID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[matchID]; ok {
		hub.Close()
		delete(m.hubs, matchID)
	}
}

// CleanupEmptyHubs removes hubs with no subscribers
func (m *HubManager) CleanupEmptyHubs() {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, hub := range m.hubs {
		if hub.SubscriberCount() == 0 {
			hub.Close()
			delete(m.hubs, id)
			removed++
		}
	}
	if removed > 0 {
		m.logger.Info("empty event hubs cleaned up", slog.Int("removed", removed))
	}
}

// Close stops every hub
func (m *HubManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, hub := range m.hubs {
		hub.Close()
		delete(m.hubs, id)
	}
}

// Recorder is a Publisher that keeps every event
type Recorder struct {
	mu     sync.Mutex
	events []model.Event
}

// Publish appends the event
func (r *Recorder) Publish(event model.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of everything published so far
func (r *Recorder) Events() []model.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Event(nil), r.events...)
}

var _ Publisher = (*Recorder)(nil)
