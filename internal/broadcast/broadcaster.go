package broadcast

import (
	"meetsync/internal/models"
	"meetsync/internal/providers"
	"sync"

	json "github.com/goccy/go-json"
)

// Listener is one connected client that can receive group notifications.
type Listener interface {
	ID() string
	IsOpen() bool
	Send(message []byte) error
}

type PublishResult struct {
	Delivered int
	Skipped   int
}

// Broadcaster owns the group -> listeners subscription table. A listener is
// subscribed to at most one group at a time, and groups without listeners
// are dropped from the table.
type Broadcaster struct {
	mu         sync.Mutex
	groups     map[string]map[Listener]struct{}
	membership map[Listener]string
	logger     providers.Logger
}

func NewBroadcaster(logger providers.Logger) *Broadcaster {
	return &Broadcaster{
		groups:     make(map[string]map[Listener]struct{}),
		membership: make(map[Listener]string),
		logger:     logger,
	}
}

func (b *Broadcaster) Subscribe(l Listener, groupID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if current, ok := b.membership[l]; ok {
		if current == groupID {
			return
		}
		b.removeLocked(l, current)
	}

	set, ok := b.groups[groupID]
	if !ok {
		set = make(map[Listener]struct{})
		b.groups[groupID] = set
	}
	set[l] = struct{}{}
	b.membership[l] = groupID
	b.logger.Debugf(providers.TypeWs, "Listener %s joined group %s", l.ID(), groupID)
}

// Unsubscribe is safe to call for listeners that are not subscribed.
func (b *Broadcaster) Unsubscribe(l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if current, ok := b.membership[l]; ok {
		b.removeLocked(l, current)
		b.logger.Debugf(providers.TypeWs, "Listener %s left group %s", l.ID(), current)
	}
}

func (b *Broadcaster) removeLocked(l Listener, groupID string) {
	delete(b.membership, l)
	set, ok := b.groups[groupID]
	if !ok {
		return
	}
	delete(set, l)
	if len(set) == 0 {
		delete(b.groups, groupID)
	}
}

// Publish encodes env once and hands it to every open listener of the group.
func (b *Broadcaster) Publish(groupID string, env models.Envelope) (PublishResult, error) {
	data, err := json.Marshal(env)
	if err != nil {
		return PublishResult{}, err
	}
	return b.PublishRaw(groupID, data), nil
}

// PublishRaw delivers an already encoded frame. Closed listeners are skipped
// and dropped from the table; failed sends are skipped without retry.
func (b *Broadcaster) PublishRaw(groupID string, data []byte) PublishResult {
	b.mu.Lock()
	targets := make([]Listener, 0, len(b.groups[groupID]))
	for l := range b.groups[groupID] {
		targets = append(targets, l)
	}
	b.mu.Unlock()

	var result PublishResult
	var closed []Listener
	for _, l := range targets {
		if !l.IsOpen() {
			closed = append(closed, l)
			result.Skipped++
			continue
		}
		if err := l.Send(data); err != nil {
			b.logger.Debugf(providers.TypeWs, "Skipping listener %s: %s", l.ID(), err)
			result.Skipped++
			continue
		}
		result.Delivered++
	}

	if len(closed) > 0 {
		b.mu.Lock()
		for _, l := range closed {
			if b.membership[l] == groupID {
				b.removeLocked(l, groupID)
			}
		}
		b.mu.Unlock()
	}
	return result
}

// GroupOf returns the group l is subscribed to.
func (b *Broadcaster) GroupOf(l Listener) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	groupID, ok := b.membership[l]
	return groupID, ok
}

func (b *Broadcaster) GroupCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.groups)
}

func (b *Broadcaster) ListenerCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.membership)
}
