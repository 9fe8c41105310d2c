// internal/services/session_service.go
package services

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/florist-backend/internal/catalog"
	"github.com/javajoker/florist-backend/internal/config"
	"github.com/javajoker/florist-backend/internal/storage"
)

// Event names published on a session's EventHub.
const (
	EventCart     = "cart"
	EventNavigate = "navigate"
)

type Event struct {
	Name string
	Data string
}

// EventHub fans session events out to streaming clients. Slow subscribers
// miss events instead of blocking the publisher.
type EventHub struct {
	mu     sync.Mutex
	subs   map[int]chan Event
	nextID int
}

func NewEventHub() *EventHub {
	return &EventHub{subs: make(map[int]chan Event)}
}

func (h *EventHub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan Event, 8)
	h.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Len is the number of open subscriptions.
func (h *EventHub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *EventHub) Publish(e Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Session bundles the stores of one anonymous shopper.
type Session struct {
	ID       string
	Cart     *CartStore
	Orders   *OrderHistory
	Drafts   *DraftStore
	Checkout *CheckoutService
	Filters  *FilterController
	Events   *EventHub

	lastSeen time.Time
}

// SessionManager keeps live sessions in memory. Their data lives in the
// shared storage under the session id, so an evicted session is rebuilt
// from storage on its next request.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	store    storage.Storage
	catalog  *catalog.Catalog
	notifier OrderNotifier
	checkout config.CheckoutConfig
	idle     time.Duration
}

// NewSessionManager builds sessions over store. Cart lines whose product is
// missing from cat are dropped; a nil cat keeps every line.
func NewSessionManager(store storage.Storage, cat *catalog.Catalog, cfg *config.Config, notifier OrderNotifier) *SessionManager {
	idle := time.Duration(cfg.Session.IdleMinutes) * time.Minute
	if idle <= 0 {
		idle = 30 * time.Minute
	}
	return &SessionManager{
		sessions: make(map[string]*Session),
		store:    store,
		catalog:  cat,
		notifier: notifier,
		checkout: cfg.Checkout,
		idle:     idle,
	}
}

// Get returns the session for id, creating it on first use.
func (m *SessionManager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		s.lastSeen = time.Now()
		return s
	}

	s := m.newSession(id)
	m.sessions[id] = s
	return s
}

func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *SessionManager) newSession(id string) *Session {
	log := logrus.WithField("session_id", id)
	store := storage.Namespaced(m.store, id)
	events := NewEventHub()

	cart := NewCartStore(store, log)
	if m.catalog != nil {
		cart.UseCatalog(m.catalog.ByID)
	}
	orders := NewOrderHistory(store, log)
	drafts := NewDraftStore(store, m.checkout.DraftDebounce, log)

	cart.Subscribe(func() {
		events.Publish(Event{Name: EventCart})
	})

	return &Session{
		ID:       id,
		Cart:     cart,
		Orders:   orders,
		Drafts:   drafts,
		Checkout: NewCheckoutService(cart, orders, drafts, m.notifier, m.checkout.ProcessingDelay, log),
		Filters: NewFilterController(func(query string) {
			events.Publish(Event{Name: EventNavigate, Data: query})
		}),
		Events:   events,
		lastSeen: time.Now(),
	}
}

// EvictIdle drops sessions not seen since the idle timeout, flushing their
// pending drafts first. A session with an open event stream is still in use
// and stays.
func (m *SessionManager) EvictIdle(now time.Time) int {
	m.mu.Lock()
	var evicted []*Session
	for id, s := range m.sessions {
		if now.Sub(s.lastSeen) > m.idle && s.Events.Len() == 0 {
			evicted = append(evicted, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range evicted {
		if err := s.Drafts.FlushDraft(); err != nil {
			logrus.WithError(err).WithField("session_id", s.ID).Warn("Failed to flush draft on eviction")
		}
	}
	return len(evicted)
}

// Run sweeps idle sessions every minute until ctx is done.
func (m *SessionManager) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.FlushAll()
			return
		case now := <-ticker.C:
			if n := m.EvictIdle(now); n > 0 {
				logrus.WithField("evicted", n).Debug("Evicted idle sessions")
			}
		}
	}
}

// FlushAll writes every pending draft.
func (m *SessionManager) FlushAll() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.Unlock()

	for _, s := range sessions {
		if err := s.Drafts.FlushDraft(); err != nil {
			logrus.WithError(err).WithField("session_id", s.ID).Warn("Failed to flush draft")
		}
	}
}
