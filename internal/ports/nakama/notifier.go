package nakama

import (
	"encoding/json"

	"ratscrew/internal/app"
	"ratscrew/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// The notifier is the single outbound seam: every externally observable result
// of an action is translated here into an opcode plus JSON payload and handed
// to the match dispatcher. Game logic never touches the transport directly.

var eventOpCodes = map[app.EventKind]int64{
	app.EventPlayerJoined:     OpPlayerJoined,
	app.EventPlayerLeft:       OpPlayerLeft,
	app.EventPlayerReady:      OpReadyChanged,
	app.EventNameChanged:      OpNameChanged,
	app.EventGameStarted:      OpGameStarted,
	app.EventCardPlayed:       OpCardPlayed,
	app.EventChallengeUpdated: OpChallengeUpdated,
	app.EventPileAwarded:      OpPileAwarded,
	app.EventSlapResult:       OpSlapResult,
	app.EventVoteStarted:      OpVoteStarted,
	app.EventVoteSubmitted:    OpVoteSubmitted,
	app.EventVoteResolved:     OpVoteResolved,
	app.EventSettingsChanged:  OpSettingsChanged,
	app.EventGameEnded:        OpGameEnded,
}

// dispatchEvents fans session events out to the room, honoring targeted
// recipients.
func dispatchEvents(s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		opCode, ok := eventOpCodes[ev.Kind]
		if !ok {
			logger.Warn("dispatchEvents: Unknown event kind: %v", ev.Kind)
			continue
		}
		data, err := json.Marshal(ev.Payload)
		if err != nil {
			logger.Error("dispatchEvents: Failed to marshal %v: %v", ev.Kind, err)
			continue
		}

		// Default to broadcast; narrow to the named recipients when set. If
		// every intended recipient is disconnected the event must not leak to
		// the rest of the room.
		var recipients []runtime.Presence
		if len(ev.Recipients) > 0 {
			for _, uid := range ev.Recipients {
				if p, ok := s.Presences[uid]; ok {
					recipients = append(recipients, p)
				}
			}
			if len(recipients) == 0 {
				continue
			}
		}

		_ = dispatcher.BroadcastMessage(opCode, data, recipients, nil, true)
	}
}

// errorPayload is the shape sent on the error channel.
type errorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// sendError emits a user-facing error to a single player.
func sendError(s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	presence, ok := s.Presences[userID]
	if !ok {
		logger.Warn("sendError: Cannot send error to %s: presence not found", userID)
		return
	}
	data, err := json.Marshal(errorPayload{Code: code, Message: message})
	if err != nil {
		logger.Error("sendError: Failed to marshal error payload: %v", err)
		return
	}
	_ = dispatcher.BroadcastMessage(OpError, data, []runtime.Presence{presence}, nil, true)
}

// clientPlayerState is a player's public view in a state snapshot.
type clientPlayerState struct {
	UserID    string `json:"user_id"`
	Nickname  string `json:"nickname"`
	Seat      int    `json:"seat"`
	Status    string `json:"status"`
	Online    bool   `json:"online"`
	CardCount int    `json:"card_count"`
}

type clientChallengeState struct {
	ChallengerID string `json:"challenger_id"`
	Total        int    `json:"total"`
	Remaining    int    `json:"remaining"`
	ResponderID  string `json:"responder_id"`
}

type clientVoteState struct {
	Topic   string `json:"topic"`
	Ballots int    `json:"ballots"`
	Needed  int    `json:"needed"`
}

// clientGameState is the serializable snapshot broadcast after every action.
// Hands are face-down in this game, so it carries card counts only.
type clientGameState struct {
	Phase             string                `json:"phase"`
	Players           []clientPlayerState   `json:"players"`
	PileSize          int                   `json:"pile_size"`
	TopCard           string                `json:"top_card,omitempty"`
	CurrentTurnUserID string                `json:"current_turn_user_id,omitempty"`
	WinnerID          string                `json:"winner_id,omitempty"`
	Challenge         *clientChallengeState `json:"challenge,omitempty"`
	Vote              *clientVoteState      `json:"vote,omitempty"`
	MaxPlayers        int                   `json:"max_players"`
	Rules             []string              `json:"rules"`
}

func buildSnapshot(g *domain.Game) clientGameState {
	snap := clientGameState{
		Phase:      string(g.Phase),
		PileSize:   len(g.Pile),
		WinnerID:   g.WinnerID,
		MaxPlayers: g.Settings.MaxPlayers,
	}
	for i, pl := range g.Players {
		snap.Players = append(snap.Players, clientPlayerState{
			UserID:    pl.UserID,
			Nickname:  pl.Nickname,
			Seat:      i,
			Status:    string(pl.Status),
			Online:    pl.Alive,
			CardCount: pl.Hand.Len(),
		})
	}
	if len(g.Pile) > 0 {
		snap.TopCard = g.Pile[len(g.Pile)-1].Code()
	}
	if cur := g.CurrentPlayer(); cur != nil && g.Phase == domain.PhasePlaying {
		snap.CurrentTurnUserID = cur.UserID
	}
	if ch := g.Challenge; ch != nil {
		snap.Challenge = &clientChallengeState{
			ChallengerID: ch.ChallengerID,
			Total:        ch.Total,
			Remaining:    ch.Remaining,
			ResponderID:  ch.ResponderID,
		}
	}
	if v := g.Vote; v != nil {
		snap.Vote = &clientVoteState{Topic: v.Topic, Ballots: len(v.Ballots), Needed: g.AliveCount()}
	}
	for _, r := range g.Settings.Rules {
		snap.Rules = append(snap.Rules, r.Name)
	}
	return snap
}

// broadcastSnapshot pushes the current game state to every participant.
func broadcastSnapshot(s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	data, err := json.Marshal(buildSnapshot(s.Game))
	if err != nil {
		logger.Error("broadcastSnapshot: Failed to marshal snapshot: %v", err)
		return
	}
	_ = dispatcher.BroadcastMessage(OpStateSnapshot, data, nil, nil, true)
}

// updateLabel refreshes the advertised match label.
func updateLabel(s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	labelBytes, err := json.Marshal(domain.ComputeLabel(s.Game))
	if err != nil {
		logger.Error("updateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("updateLabel: Failed to update: %v", err)
	}
}
