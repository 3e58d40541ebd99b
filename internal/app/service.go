package app

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"ratscrew/internal/domain"
)

// Service contains the session use-cases operating on a domain.Game. It holds
// no per-session state; every handler re-reads the aggregate it is given.
type Service struct {
	rng *rand.Rand

	// DeckCount is the number of combined decks dealt per game.
	DeckCount int
}

// NewService constructs a Service with the provided rng or a time-seeded
// default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng, DeckCount: DefaultDeckCount}
}

var (
	// Silent no-ops: logged at warning level by the caller, never surfaced to
	// the player.
	ErrNotPlaying    = errors.New("game not in playing phase")
	ErrUnknownPlayer = errors.New("player not found")
	ErrNotYourTurn   = errors.New("not this player's turn")

	// ErrEmptyHand flags a current player with no card at play extraction.
	// Turn advancement skips empty hands, so this is logged at error level.
	ErrEmptyHand = errors.New("current player has an empty hand")

	// User-facing errors, surfaced through the notifier's error channel.
	ErrVoteActive     = errors.New("a vote is already in progress")
	ErrNoVoteActive   = errors.New("no vote is in progress")
	ErrGameInProgress = errors.New("settings cannot change while a game is in progress")
	ErrBadSettings    = errors.New("invalid settings")
	ErrTooFewPlayers  = errors.New("not enough players to start")
)

// Join adds a connection to the session, or revives it on rejoin.
func (s *Service) Join(g *domain.Game, userID, nickname string) []Event {
	if existing := g.PlayerByID(userID); existing != nil {
		existing.Alive = true
		existing.Touch()
		return []Event{{
			Kind:    EventPlayerJoined,
			Payload: PlayerJoinedPayload{UserID: userID, Nickname: existing.Nickname, Seat: seatOf(g, userID), Rejoined: true},
		}}
	}

	pl := domain.NewPlayer(userID, nickname)
	g.AddPlayer(pl)
	g.Log.Append(userID, domain.EventTypePlayerJoined, map[string]any{"nickname": nickname})

	return []Event{{
		Kind:    EventPlayerJoined,
		Payload: PlayerJoinedPayload{UserID: userID, Nickname: nickname, Seat: seatOf(g, userID)},
	}}
}

// Leave handles a disconnect. In the lobby the player is removed outright;
// during play the player is marked offline and skipped by turn advancement.
// An open vote is re-checked against the reduced player count so a mid-vote
// disconnect cannot wedge it.
func (s *Service) Leave(g *domain.Game, userID string) []Event {
	pl := g.PlayerByID(userID)
	if pl == nil {
		return nil
	}

	events := []Event{{Kind: EventPlayerLeft, Payload: PlayerLeftPayload{UserID: userID}}}
	g.Log.Append(userID, domain.EventTypePlayerLeft, nil)

	if g.Phase == domain.PhaseLobby {
		g.RemovePlayer(userID)
	} else {
		pl.Alive = false
		if cur := g.CurrentPlayer(); cur != nil && cur.UserID == userID {
			g.AdvanceTurn()
		}
	}

	events = append(events, s.resolveVoteIfComplete(g)...)
	return events
}

// SetReady records a player's readiness. Once every connected player is ready
// and the minimum count is met, the game is dealt (system-originated start).
func (s *Service) SetReady(g *domain.Game, userID string, ready bool) ([]Event, error) {
	pl := g.PlayerByID(userID)
	if pl == nil {
		return nil, ErrUnknownPlayer
	}
	if ready {
		pl.Status = domain.StatusReady
	} else {
		pl.Status = domain.StatusNotReady
	}
	pl.Touch()
	g.Log.Append(userID, domain.EventTypePlayerReady, map[string]any{"ready": ready})

	events := []Event{{
		Kind:    EventPlayerReady,
		Payload: PlayerReadyPayload{UserID: userID, Ready: ready},
	}}

	if g.Phase != domain.PhasePlaying && g.AllReady() && g.AliveCount() >= MinPlayersToStart {
		started, err := s.StartGame(g)
		if err != nil {
			return events, err
		}
		events = append(events, started...)
	}
	return events, nil
}

// StartGame deals a fresh game: the deck is rebuilt, shuffled and distributed
// round-robin, and the first player in turn order leads.
func (s *Service) StartGame(g *domain.Game) ([]Event, error) {
	if g.Phase == domain.PhasePlaying {
		return nil, ErrGameInProgress
	}
	if g.AliveCount() < MinPlayersToStart {
		return nil, ErrTooFewPlayers
	}

	// A start from the ended phase is a session restart: the log is discarded.
	if g.Phase == domain.PhaseEnded {
		g.Log.Reset()
	}
	for _, pl := range g.Players {
		pl.Hand = domain.Hand{}
	}
	g.Vote = nil

	deck := domain.NewStandardDeck(s.DeckCount)
	deck.Shuffle(s.rng)
	deck.Deal(g.Players, 0)

	g.Phase = domain.PhasePlaying
	g.Pile = nil
	g.Challenge = nil
	g.WinnerID = ""
	g.CurrentIdx = 0
	if cur := g.CurrentPlayer(); cur == nil || !cur.Alive || cur.Hand.Len() == 0 {
		g.AdvanceTurn()
	}

	counts := make(map[string]int, len(g.Players))
	for _, pl := range g.Players {
		counts[pl.UserID] = pl.Hand.Len()
	}
	g.Log.Append("", domain.EventTypeStartGame, map[string]any{"players": len(g.Players)})

	first := ""
	if cur := g.CurrentPlayer(); cur != nil {
		first = cur.UserID
	}
	return []Event{{
		Kind:    EventGameStarted,
		Payload: GameStartedPayload{FirstTurnUserID: first, HandCounts: counts},
	}}, nil
}

// ChangeName updates a player's nickname.
func (s *Service) ChangeName(g *domain.Game, userID, nickname string) ([]Event, error) {
	pl := g.PlayerByID(userID)
	if pl == nil {
		return nil, ErrUnknownPlayer
	}
	pl.Nickname = nickname
	pl.Touch()
	g.Log.Append(userID, domain.EventTypeChangeName, map[string]any{"nickname": nickname})
	return []Event{{
		Kind:    EventNameChanged,
		Payload: NameChangedPayload{UserID: userID, Nickname: nickname},
	}}, nil
}

// ApplySettings replaces the session settings. Rejected while a game is in
// progress; an unknown rule name is a caller contract violation.
func (s *Service) ApplySettings(g *domain.Game, maxPlayers int, ruleNames []string) ([]Event, error) {
	if g.Phase == domain.PhasePlaying {
		return nil, ErrGameInProgress
	}
	if maxPlayers < MinPlayersToStart {
		return nil, fmt.Errorf("%w: max players %d below minimum %d", ErrBadSettings, maxPlayers, MinPlayersToStart)
	}
	if maxPlayers < len(g.Players) {
		return nil, fmt.Errorf("%w: max players %d below current player count %d", ErrBadSettings, maxPlayers, len(g.Players))
	}
	rules, err := domain.RulesByName(ruleNames)
	if err != nil {
		return nil, err
	}

	g.Settings.MaxPlayers = maxPlayers
	g.Settings.Rules = rules
	g.Log.Append("", domain.EventTypeSettingsChanged, map[string]any{
		"max_players": maxPlayers,
		"rules":       ruleNames,
	})
	return []Event{{
		Kind:    EventSettingsChanged,
		Payload: SettingsChangedPayload{MaxPlayers: maxPlayers, Rules: ruleNames},
	}}, nil
}

func seatOf(g *domain.Game, userID string) int {
	for i, pl := range g.Players {
		if pl.UserID == userID {
			return i
		}
	}
	return -1
}
