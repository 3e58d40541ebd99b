package app

import "ratscrew/internal/domain"

// EventKind identifies emitted session events for dispatch.
type EventKind string

const (
	EventPlayerJoined     EventKind = "player_joined"
	EventPlayerLeft       EventKind = "player_left"
	EventPlayerReady      EventKind = "player_ready"
	EventNameChanged      EventKind = "name_changed"
	EventGameStarted      EventKind = "game_started"
	EventCardPlayed       EventKind = "card_played"
	EventChallengeUpdated EventKind = "challenge_updated"
	EventPileAwarded      EventKind = "pile_awarded"
	EventSlapResult       EventKind = "slap_result"
	EventVoteStarted      EventKind = "vote_started"
	EventVoteSubmitted    EventKind = "vote_submitted"
	EventVoteResolved     EventKind = "vote_resolved"
	EventSettingsChanged  EventKind = "settings_changed"
	EventGameEnded        EventKind = "game_ended"
)

// Event is a session event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

type PlayerJoinedPayload struct {
	UserID   string `json:"user_id"`
	Nickname string `json:"nickname"`
	Seat     int    `json:"seat"`
	Rejoined bool   `json:"rejoined,omitempty"`
}

type PlayerLeftPayload struct {
	UserID string `json:"user_id"`
}

type PlayerReadyPayload struct {
	UserID string `json:"user_id"`
	Ready  bool   `json:"ready"`
}

type NameChangedPayload struct {
	UserID   string `json:"user_id"`
	Nickname string `json:"nickname"`
}

type GameStartedPayload struct {
	FirstTurnUserID string         `json:"first_turn_user_id"`
	HandCounts      map[string]int `json:"hand_counts"`
}

type CardPlayedPayload struct {
	UserID         string      `json:"user_id"`
	Card           domain.Card `json:"card"`
	Code           string      `json:"code"`
	PileSize       int         `json:"pile_size"`
	NextTurnUserID string      `json:"next_turn_user_id"`
}

type ChallengeUpdatedPayload struct {
	ChallengerID string `json:"challenger_id"`
	Total        int    `json:"total"`
	Remaining    int    `json:"remaining"`
	ResponderID  string `json:"responder_id"`
}

type PileAwardedPayload struct {
	UserID string `json:"user_id"`
	Cards  int    `json:"cards"`
	Reason string `json:"reason"` // "challenge" or "slap"
}

type SlapResultPayload struct {
	UserID     string       `json:"user_id"`
	Valid      bool         `json:"valid"`
	RuleName   string       `json:"rule_name,omitempty"`
	Action     string       `json:"action,omitempty"`
	BurnedCard *domain.Card `json:"burned_card,omitempty"`
	PileSize   int          `json:"pile_size"`
}

type VoteStartedPayload struct {
	Topic     string `json:"topic"`
	StartedBy string `json:"started_by"`
}

type VoteSubmittedPayload struct {
	UserID  string `json:"user_id"`
	Ballots int    `json:"ballots"`
	Needed  int    `json:"needed"`
}

type VoteResolvedPayload struct {
	Topic  string `json:"topic"`
	Yes    int    `json:"yes"`
	No     int    `json:"no"`
	Passed bool   `json:"passed"`
}

type SettingsChangedPayload struct {
	MaxPlayers int      `json:"max_players"`
	Rules      []string `json:"rules"`
}

type GameEndedPayload struct {
	WinnerID string `json:"winner_id"`
}
