package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies a logged game action.
type EventType string

const (
	EventTypePlayerJoined    EventType = "player-joined"
	EventTypePlayerLeft      EventType = "player-left"
	EventTypePlayerReady     EventType = "player-ready"
	EventTypeChangeName      EventType = "change-name"
	EventTypeStartGame       EventType = "start-game"
	EventTypePlayCard        EventType = "play-card"
	EventTypeValidSlap       EventType = "valid-slap"
	EventTypeInvalidSlap     EventType = "invalid-slap"
	EventTypeChallengeWon    EventType = "challenge-won"
	EventTypeStartVote       EventType = "start-vote"
	EventTypeSubmitVote      EventType = "submit-vote"
	EventTypeResolveVote     EventType = "resolve-vote"
	EventTypeSettingsChanged EventType = "settings-changed"
	EventTypeEndGame         EventType = "end-game"
)

// GameEvent is one immutable log entry. An empty PlayerID marks a
// system-originated event.
type GameEvent struct {
	ID        string         `json:"id"`
	PlayerID  string         `json:"playerId"`
	Type      EventType      `json:"eventType"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data,omitempty"`
}

// EventLog is the append-only in-memory record of session actions. Entries are
// never mutated or removed except by Reset at session restart.
type EventLog struct {
	entries []GameEvent
}

// Append records an event and returns the stored entry.
func (l *EventLog) Append(playerID string, t EventType, data map[string]any) GameEvent {
	ev := GameEvent{
		ID:        uuid.New().String(),
		PlayerID:  playerID,
		Type:      t,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
	l.entries = append(l.entries, ev)
	return ev
}

// Events returns a copy of the log in append order.
func (l *EventLog) Events() []GameEvent {
	out := make([]GameEvent, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of logged events.
func (l *EventLog) Len() int { return len(l.entries) }

// Reset discards the log. Only called when the session restarts.
func (l *EventLog) Reset() { l.entries = nil }
