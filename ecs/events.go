package ecs

import "github.com/milk9111/lanerunner/ecs/component"

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const EventCollision = "collision"

// CollisionEvent is raised by the physics step when the player starts
// touching an obstacle.
type CollisionEvent struct {
	Player   Entity
	Other    Entity
	Category component.ObstacleCategory
}

// EventQueue is a simple FIFO queue. It is flushed at the end of every frame.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// PushCollision queues a collision event.
func (q *EventQueue) PushCollision(evt CollisionEvent) {
	q.Push(Event{Type: EventCollision, Data: evt})
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// DrainCollisions removes and returns the queued collision events, keeping
// every other event in order.
func (q *EventQueue) DrainCollisions() []CollisionEvent {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	var out []CollisionEvent
	kept := q.items[:0]
	for _, evt := range q.items {
		if c, ok := evt.Data.(CollisionEvent); ok && evt.Type == EventCollision {
			out = append(out, c)
			continue
		}
		kept = append(kept, evt)
	}
	q.items = kept
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
