package service

import (
	"sync"

	"github.com/roadmaphq/roadmap/internal/model"
)

// snapshotBuffer is the channel depth per subscriber. Publishes never
// block: a subscriber that falls behind misses intermediate snapshots
// and catches up with a later full one.
const snapshotBuffer = 8

// Notifier fans out full goal-collection snapshots to the subscribers
// of each user. Snapshots are always whole collections, never deltas,
// so consumers replace their state wholesale on every receive.
type Notifier struct {
	mu   sync.RWMutex
	subs map[string]map[*subscriber]struct{}
}

type subscriber struct {
	ch   chan []*model.Goal
	once sync.Once
}

func NewNotifier() *Notifier {
	return &Notifier{
		subs: make(map[string]map[*subscriber]struct{}),
	}
}

// Subscribe registers a listener for userID and returns the snapshot
// channel plus a release func. Release is safe to call more than once;
// after release the channel is closed and no further snapshots arrive.
func (n *Notifier) Subscribe(userID string) (<-chan []*model.Goal, func()) {
	sub := &subscriber{
		ch: make(chan []*model.Goal, snapshotBuffer),
	}

	n.mu.Lock()
	set, ok := n.subs[userID]
	if !ok {
		set = make(map[*subscriber]struct{})
		n.subs[userID] = set
	}
	set[sub] = struct{}{}
	n.mu.Unlock()

	release := func() {
		sub.once.Do(func() {
			n.mu.Lock()
			delete(n.subs[userID], sub)
			if len(n.subs[userID]) == 0 {
				delete(n.subs, userID)
			}
			n.mu.Unlock()
			close(sub.ch)
		})
	}

	return sub.ch, release
}

// Publish delivers a fresh snapshot to every subscriber of userID.
func (n *Notifier) Publish(userID string, goals []*model.Goal) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for sub := range n.subs[userID] {
		select {
		case sub.ch <- goals:
		default:
			// Full buffer: drop. The subscriber still holds older full
			// snapshots and will receive a later one.
		}
	}
}

// Subscribers returns the current listener count for userID.
func (n *Notifier) Subscribers(userID string) int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subs[userID])
}
