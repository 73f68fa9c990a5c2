// Package pubsub fans values out to any number of subscribers without
// letting a slow consumer block the publisher.
package pubsub

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var plog zerolog.Logger

func init() {
	plog = log.With().Str("component", "pubsub").Logger()
}

type SubscriptionID int64

// subscriberBuffer absorbs short bursts before messages get dropped.
const subscriberBuffer = 8

type Pubsub[T any] struct {
	mu          sync.RWMutex
	nextID      SubscriptionID
	subscribers map[SubscriptionID]chan T
}

func New[T any]() *Pubsub[T] {
	return &Pubsub[T]{
		subscribers: make(map[SubscriptionID]chan T),
	}
}

// Subscribe registers a new subscriber and returns its ID along with
// the channel it will receive on.
func (ps *Pubsub[T]) Subscribe() (SubscriptionID, <-chan T) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ch := make(chan T, subscriberBuffer)
	id := ps.nextID
	ps.nextID++
	ps.subscribers[id] = ch
	return id, ch
}

// Unsubscribe closes the subscription's channel. Unknown IDs are
// no-ops.
func (ps *Pubsub[T]) Unsubscribe(id SubscriptionID) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ch, ok := ps.subscribers[id]
	if !ok {
		return
	}
	delete(ps.subscribers, id)
	close(ch)
}

// Publish delivers message to every subscriber. A subscriber whose
// buffer is full misses the message rather than blocking everyone
// else.
func (ps *Pubsub[T]) Publish(message T) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	for id, ch := range ps.subscribers {
		select {
		case ch <- message:
		default:
			plog.Warn().Int64("subscription_id", int64(id)).Msg("Message dropped, subscriber buffer full")
		}
	}
}
