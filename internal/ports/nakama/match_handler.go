package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math/rand"
	"time"

	"ratscrew/internal/app"
	"ratscrew/internal/bot"
	"ratscrew/internal/config"
	"ratscrew/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for one game session. All
// inbound messages for the match are delivered to a single MatchLoop
// invocation and processed to completion in arrival order, which is what makes
// slap arbitration deterministic without locks.
type MatchState struct {
	Tick      int64
	Presences map[string]runtime.Presence
	App       *app.Service
	Game      *domain.Game

	BotsEnabled      bool
	BotMinDelay      int // seconds
	BotMaxDelay      int // seconds
	BotAutoFillDelay int // seconds

	Bots          map[string]*bot.Agent
	BotActAt      map[string]int64 // tick at which a pending bot move fires
	LoneHumanTick int64

	rng *rand.Rand
}

func newMatchHandler() runtime.Match {
	return &matchHandler{}
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}
	cfg := config.GetGameConfig()

	rules, err := domain.RulesByName(cfg.EnabledRules)
	if err != nil {
		logger.Warn("MatchInit: Bad enabled_rules in config, using defaults: %v", err)
		rules = domain.DefaultSlapRules()
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	svc := app.NewService(rng)
	svc.DeckCount = cfg.DeckCount

	state := &MatchState{
		Presences:        make(map[string]runtime.Presence),
		App:              svc,
		Game:             domain.NewGame(domain.GameSettings{MaxPlayers: cfg.MaxPlayers, Rules: rules}),
		BotsEnabled:      cfg.BotsEnabled,
		BotMinDelay:      cfg.BotMinDelaySeconds,
		BotMaxDelay:      cfg.BotMaxDelaySeconds,
		BotAutoFillDelay: cfg.BotAutoFillDelaySeconds,
		Bots:             make(map[string]*bot.Agent),
		BotActAt:         make(map[string]int64),
		rng:              rng,
	}

	// Environment overrides, tunable without a config redeploy.
	if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
		if val, ok := env["ratscrew_bots_enabled"]; ok {
			state.BotsEnabled = val == "true"
		}
	}

	labelBytes, err := json.Marshal(domain.ComputeLabel(state.Game))
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}
	return state, tickRate, string(labelBytes)
}

// MatchJoinAttempt validates whether a presence is allowed to join.
func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	s, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Rejoins are always allowed.
	if s.Game.PlayerByID(presence.GetUserId()) != nil {
		return state, true, ""
	}
	if s.Game.Phase != domain.PhaseLobby {
		return state, false, "match_in_progress"
	}
	if len(s.Game.Players) >= s.Game.Settings.MaxPlayers {
		return state, false, "match_full"
	}
	return state, true, ""
}

// MatchJoin mutates state when presences join.
func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	s, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		s.Presences[p.GetUserId()] = p
		events := s.App.Join(s.Game, p.GetUserId(), p.GetUsername())
		dispatchEvents(s, dispatcher, logger, events)
	}

	updateLabel(s, dispatcher, logger)
	broadcastSnapshot(s, dispatcher, logger)
	return s
}

// MatchLeave mutates state when presences leave. A session with no humans left
// is terminated.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	s, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(s.Presences, p.GetUserId())
		events := s.App.Leave(s.Game, p.GetUserId())
		dispatchEvents(s, dispatcher, logger, events)
	}

	if humanCount(s.Game) == 0 {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	updateLabel(s, dispatcher, logger)
	broadcastSnapshot(s, dispatcher, logger)
	return s
}

// MatchLoop processes inbound actions in arrival order, then drives bots.
func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	s, ok := state.(*MatchState)
	if !ok {
		return state
	}

	s.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpPlayCard:
			mh.handlePlayCard(s, dispatcher, logger, msg)
		case OpSlapPile:
			mh.handleSlap(s, dispatcher, logger, msg)
		case OpPlayerReady:
			mh.handleReady(s, dispatcher, logger, msg)
		case OpChangeName:
			mh.handleChangeName(s, dispatcher, logger, msg)
		case OpSetSettings:
			mh.handleSetSettings(s, dispatcher, logger, msg)
		case OpPlayerAction:
			mh.handlePlayerAction(s, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if s.BotsEnabled {
		mh.processBots(s, dispatcher, logger)
	}

	return s
}

func (mh *matchHandler) handlePlayCard(s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	userID := msg.GetUserId()
	events, err := s.App.PlayCard(s.Game, userID)
	if err != nil {
		if errors.Is(err, app.ErrEmptyHand) {
			logger.Error("handlePlayCard: User %s is current with an empty hand: %v", userID, err)
		} else {
			logger.Warn("handlePlayCard: User %s rejected: %v", userID, err)
		}
		return
	}
	mh.finishAction(s, dispatcher, logger, events)
}

func (mh *matchHandler) handleSlap(s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	userID := msg.GetUserId()
	events, err := s.App.Slap(s.Game, userID)
	if err != nil {
		logger.Warn("handleSlap: User %s rejected: %v", userID, err)
		return
	}
	mh.finishAction(s, dispatcher, logger, events)
}

func (mh *matchHandler) handleReady(s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	userID := msg.GetUserId()
	payload := struct {
		Ready bool `json:"ready"`
	}{Ready: true}
	if len(msg.GetData()) > 0 {
		if err := json.Unmarshal(msg.GetData(), &payload); err != nil {
			logger.Warn("handleReady: Invalid payload from %s: %v", userID, err)
			return
		}
	}

	events, err := s.App.SetReady(s.Game, userID, payload.Ready)
	if err != nil && len(events) == 0 {
		logger.Warn("handleReady: User %s rejected: %v", userID, err)
		return
	}
	if err != nil {
		logger.Warn("handleReady: Game start deferred for %s: %v", userID, err)
	}
	mh.finishAction(s, dispatcher, logger, events)
}

func (mh *matchHandler) handleChangeName(s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	userID := msg.GetUserId()
	var payload struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(msg.GetData(), &payload); err != nil || payload.Name == "" {
		logger.Warn("handleChangeName: Invalid payload from %s", userID)
		return
	}

	events, err := s.App.ChangeName(s.Game, userID, payload.Name)
	if err != nil {
		logger.Warn("handleChangeName: User %s rejected: %v", userID, err)
		return
	}
	mh.finishAction(s, dispatcher, logger, events)
}

func (mh *matchHandler) handleSetSettings(s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	userID := msg.GetUserId()
	var payload struct {
		MaxPlayers int      `json:"max_players"`
		Rules      []string `json:"rules"`
	}
	if err := json.Unmarshal(msg.GetData(), &payload); err != nil {
		logger.Warn("handleSetSettings: Invalid payload from %s: %v", userID, err)
		return
	}

	events, err := s.App.ApplySettings(s.Game, payload.MaxPlayers, payload.Rules)
	if err != nil {
		// Settings failures are caller contract violations, surfaced to the
		// sender on the error channel.
		logger.Warn("handleSetSettings: User %s rejected: %v", userID, err)
		sendError(s, dispatcher, logger, userID, 400, err.Error())
		return
	}
	mh.finishAction(s, dispatcher, logger, events)
}

func (mh *matchHandler) handlePlayerAction(s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	userID := msg.GetUserId()
	var envelope struct {
		Action string          `json:"action"`
		Data   json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(msg.GetData(), &envelope); err != nil {
		logger.Warn("handlePlayerAction: Invalid envelope from %s: %v", userID, err)
		return
	}

	switch envelope.Action {
	case "start-vote":
		var data struct {
			Topic string `json:"topic"`
		}
		if len(envelope.Data) > 0 {
			if err := json.Unmarshal(envelope.Data, &data); err != nil {
				logger.Warn("handlePlayerAction: Invalid start-vote data from %s: %v", userID, err)
				return
			}
		}
		events, err := s.App.StartVote(s.Game, userID, data.Topic)
		if err != nil {
			if errors.Is(err, app.ErrVoteActive) {
				sendError(s, dispatcher, logger, userID, 409, err.Error())
			} else {
				logger.Warn("handlePlayerAction: start-vote from %s rejected: %v", userID, err)
			}
			return
		}
		mh.finishAction(s, dispatcher, logger, events)

	case "submit-vote":
		var data struct {
			Approve bool `json:"approve"`
		}
		if err := json.Unmarshal(envelope.Data, &data); err != nil {
			logger.Warn("handlePlayerAction: Invalid submit-vote data from %s: %v", userID, err)
			return
		}
		events, err := s.App.SubmitVote(s.Game, userID, data.Approve)
		if err != nil {
			if errors.Is(err, app.ErrNoVoteActive) {
				sendError(s, dispatcher, logger, userID, 409, err.Error())
			} else {
				logger.Warn("handlePlayerAction: submit-vote from %s rejected: %v", userID, err)
			}
			return
		}
		mh.finishAction(s, dispatcher, logger, events)

	default:
		logger.Warn("handlePlayerAction: Unknown action %q from %s", envelope.Action, userID)
	}
}

// finishAction completes one handled action: emit its events, refresh the
// label and broadcast the new state.
func (mh *matchHandler) finishAction(s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	dispatchEvents(s, dispatcher, logger, events)
	updateLabel(s, dispatcher, logger)
	broadcastSnapshot(s, dispatcher, logger)
}

// processBots seats a bot for a lone human lobby and acts for seated bots with
// randomized reaction delays.
func (mh *matchHandler) processBots(s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	g := s.Game

	if g.Phase == domain.PhaseLobby {
		if humanCount(g) == 1 && len(g.Players) < g.Settings.MaxPlayers {
			if s.LoneHumanTick == 0 {
				s.LoneHumanTick = s.Tick
				logger.Debug("processBots: Single player detected, starting auto-fill timer.")
			}
			if s.Tick-s.LoneHumanTick >= int64(s.BotAutoFillDelay*tickRate) {
				id, name := bot.NewIdentity(len(s.Bots))
				s.Bots[id] = bot.NewAgent(id, name)
				logger.Info("processBots: Seating bot %s (%s)", name, id)

				dispatchEvents(s, dispatcher, logger, s.App.Join(g, id, name))
				events, err := s.App.SetReady(g, id, true)
				if err != nil {
					logger.Warn("processBots: Bot %s ready failed: %v", id, err)
				}
				mh.finishAction(s, dispatcher, logger, events)
				s.LoneHumanTick = 0
			}
		} else {
			s.LoneHumanTick = 0
		}
	}

	// Bots always approve an open vote so votes never wait on a bot ballot.
	if g.Vote != nil {
		for id := range s.Bots {
			if g.PlayerByID(id) == nil || g.Vote.HasVoted(id) {
				continue
			}
			events, err := s.App.SubmitVote(g, id, true)
			if err != nil {
				logger.Warn("processBots: Bot %s vote failed: %v", id, err)
				continue
			}
			mh.finishAction(s, dispatcher, logger, events)
			if g.Vote == nil {
				break
			}
		}
	}

	if g.Phase != domain.PhasePlaying {
		return
	}
	for id, agent := range s.Bots {
		move := agent.NextMove(g)
		if !move.Play && !move.Slap {
			delete(s.BotActAt, id)
			continue
		}

		actAt, pending := s.BotActAt[id]
		if !pending {
			delay := s.rng.Intn(s.BotMaxDelay-s.BotMinDelay+1) + s.BotMinDelay
			s.BotActAt[id] = s.Tick + int64(delay*tickRate)
			continue
		}
		if s.Tick < actAt {
			continue
		}
		delete(s.BotActAt, id)

		var events []app.Event
		var err error
		if move.Slap {
			events, err = s.App.Slap(g, id)
		} else {
			events, err = s.App.PlayCard(g, id)
		}
		if err != nil {
			logger.Warn("processBots: Bot %s action failed: %v", id, err)
			continue
		}
		mh.finishAction(s, dispatcher, logger, events)
	}
}

// MatchTerminate runs on match shutdown.
func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminated.")
	return state
}

// MatchSignal handles out-of-band signals; unused.
func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}

// humanCount returns the number of connected non-bot players.
func humanCount(g *domain.Game) int {
	n := 0
	for _, pl := range g.Players {
		if pl.Alive && !bot.IsBot(pl.UserID) {
			n++
		}
	}
	return n
}
