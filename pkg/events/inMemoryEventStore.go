package events

import (
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// EventStore resolves a log's topic0 to the event that emitted it.
type EventStore interface {
	GetEventByTopic(topic common.Hash) (*Event, bool)
	ListEvents() []*Event
}

// InMemoryEventStore is an EventStore backed by a map keyed on topic0. It is not
// modified after construction.
type InMemoryEventStore struct {
	events map[common.Hash]*Event
	logger *zap.Logger
}

// NewInMemoryEventStore indexes events by topic. A later event with the same topic
// replaces an earlier one.
func NewInMemoryEventStore(events []*Event, logger *zap.Logger) *InMemoryEventStore {
	byTopic := make(map[common.Hash]*Event, len(events))
	for _, e := range events {
		if existing, ok := byTopic[e.Topic]; ok {
			logger.Sugar().Warnw("Duplicate event topic, replacing",
				"topic", e.Topic.Hex(),
				"existing", existing.Signature,
				"replacement", e.Signature,
			)
		}
		byTopic[e.Topic] = e
	}
	logger.Sugar().Debugw("Loaded events", "count", len(byTopic))
	return &InMemoryEventStore{
		events: byTopic,
		logger: logger,
	}
}

// GetEventByTopic returns the event whose signature hashes to topic.
func (ies *InMemoryEventStore) GetEventByTopic(topic common.Hash) (*Event, bool) {
	e, ok := ies.events[topic]
	if !ok {
		ies.logger.Debug("Event not found", zap.String("topic", topic.Hex()))
	}
	return e, ok
}

// ListTopics returns every registered topic0 in ascending byte order.
func (ies *InMemoryEventStore) ListTopics() []common.Hash {
	topics := make([]common.Hash, 0, len(ies.events))
	for topic := range ies.events {
		topics = append(topics, topic)
	}
	sort.Slice(topics, func(i, j int) bool {
		return topics[i].Cmp(topics[j]) < 0
	})
	return topics
}

// ListEvents returns events ordered by signature.
func (ies *InMemoryEventStore) ListEvents() []*Event {
	out := make([]*Event, 0, len(ies.events))
	for _, e := range ies.events {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Signature < out[j].Signature
	})
	return out
}
