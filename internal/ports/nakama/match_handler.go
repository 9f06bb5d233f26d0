package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"strconv"
	"time"

	"callbreak/internal/app"
	"callbreak/internal/bot"
	"callbreak/internal/config"
	"callbreak/internal/domain"
	"callbreak/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Game         *domain.Game                `json:"-"`              // Authoritative session state
	App          *app.Service                `json:"-"`              // Call Break app service with game logic
	Cfg          config.GameConfig           `json:"-"`              // Effective pacing and scoring configuration
	Tick         int64                       `json:"tick"`           // Current tick of the match for time-based logic
	Presences    map[string]runtime.Presence `json:"-"`              // Map UserId -> Presence for targeted messaging
	Bots         map[string]*bot.Agent       `json:"-"`              // Active bot agents
	Economy      ports.EconomyPort           `json:"-"`              // Interface to Nakama wallet
	Tasks        *taskQueue                  `json:"-"`              // Scheduled phase advances and reconnect deadlines
	BotWaitUntil int64                       `json:"bot_wait_until"` // Tick when the current bot should act
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	// Load bot identities from data folder
	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}

	// Load game configuration
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}

	state := &MatchState{
		App:       app.NewService(nil),
		Cfg:       config.GetGameConfig(),
		Tick:      time.Now().Unix(),
		Presences: make(map[string]runtime.Presence),
		Bots:      make(map[string]*bot.Agent),
		Economy:   NewNakamaEconomyAdapter(nk),
		Tasks:     newTaskQueue(),
	}

	// Read environment variables for bot pacing overrides
	if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
		if val, ok := env["callbreak_bot_min_delay_sec"]; ok {
			if i, err := strconv.Atoi(val); err == nil {
				state.Cfg.BotMinDelaySeconds = i
			}
		}
		if val, ok := env["callbreak_bot_max_delay_sec"]; ok {
			if i, err := strconv.Atoi(val); err == nil {
				state.Cfg.BotMaxDelaySeconds = i
			}
		}
		if val, ok := env["callbreak_reconnect_grace_sec"]; ok {
			if i, err := strconv.Atoi(val); err == nil {
				state.Cfg.ReconnectGraceSeconds = i
			}
		}
	}

	// A private room created through the create_room RPC arrives with its
	// code pre-minted so the caller can share it before joining.
	roomCode, _ := params[JoinMetadataRoomCode].(string)
	if roomCode == "" {
		roomCode = state.App.NewRoomCode()
	}
	state.Game = domain.NewGame(roomCode)
	state.Game.TotalRounds = state.Cfg.TotalRounds
	state.Game.MaxBid = state.Cfg.MaxBid

	labelBytes, err := json.Marshal(domain.ComputeLabel(state.Game))
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1 // turn timers and bot pacing count in whole seconds
	return state, tickRate, string(labelBytes)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	userID := presence.GetUserId()
	g := matchState.Game

	// A seated player may always come back, full table or not.
	if _, exists := g.Players[userID]; exists {
		return state, true, ""
	}

	if code, ok := metadata[JoinMetadataRoomCode]; ok && code != "" && code != g.RoomCode {
		return state, false, JoinRejectRoomCodeMismatch
	}

	name := metadata[JoinMetadataName]
	if name == "" {
		name = presence.GetUsername()
	}
	if name == "" || len(name) > app.MaxNameLength {
		return state, false, JoinRejectInvalidName
	}

	if len(g.PlayerOrder) >= domain.NumPlayers {
		return state, false, JoinRejectMatchFull
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		matchState.Presences[userID] = p

		if _, exists := matchState.Game.Players[userID]; exists {
			matchState.Tasks.CancelReconnect(userID)
			events, err := matchState.App.Reconnect(matchState.Game, userID)
			if err != nil {
				logger.Warn("MatchJoin: Reconnect for %s failed: %v", userID, err)
				continue
			}
			logger.Info("MatchJoin: User %s reconnected.", userID)
			mh.broadcastEvents(ctx, matchState, dispatcher, logger, events)
			mh.sendHand(matchState, dispatcher, logger, userID)
			continue
		}

		name := p.GetUsername()
		events, err := matchState.App.Join(matchState.Game, userID, name)
		if err != nil {
			logger.Warn("MatchJoin: User %s could not be seated: %v", userID, err)
			continue
		}
		logger.Info("MatchJoin: User %s seated as %q.", userID, name)
		mh.broadcastEvents(ctx, matchState, dispatcher, logger, events)
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastStateSync(matchState, dispatcher, logger)

	return matchState
}

// MatchLeave is called when one or more players leave the match. Mid-game
// departures open a reconnect window instead of freeing the seat outright.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	g := matchState.Game
	for _, p := range presences {
		userID := p.GetUserId()
		delete(matchState.Presences, userID)

		if _, exists := g.Players[userID]; !exists {
			continue
		}

		if g.Phase == domain.PhaseWaiting || g.Phase == domain.PhaseGameOver {
			events, err := matchState.App.Depart(g, userID)
			if err != nil {
				logger.Warn("MatchLeave: Depart for %s failed: %v", userID, err)
				continue
			}
			logger.Info("MatchLeave: User %s left, seat freed.", userID)
			mh.broadcastEvents(ctx, matchState, dispatcher, logger, events)
			continue
		}

		if err := matchState.App.MarkDisconnected(g, userID); err != nil {
			logger.Warn("MatchLeave: MarkDisconnected for %s failed: %v", userID, err)
			continue
		}
		deadline := tick + int64(matchState.Cfg.ReconnectGraceSeconds)
		matchState.Tasks.Schedule(taskReconnectDeadline, deadline, userID)
		logger.Info("MatchLeave: User %s disconnected, reconnect window open until tick %d.", userID, deadline)
	}

	if g.HumanCount() == 0 {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastStateSync(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	prePhase := matchState.Game.Phase
	terminate := false
	acted := false

	// Handle incoming messages
	for _, msg := range messages {
		ok, term := mh.applyCommand(ctx, matchState, dispatcher, logger, msg.GetUserId(), msg.GetOpCode(), msg.GetData())
		acted = acted || ok
		terminate = terminate || term
	}

	// Fire scheduled phase advances and reconnect deadlines
	ok2, term := mh.processTasks(ctx, matchState, dispatcher, logger)
	acted = acted || ok2
	terminate = terminate || term

	// AI turns
	if mh.processBots(ctx, matchState, dispatcher, logger) {
		acted = true
	}

	if terminate {
		logger.Info("MatchLoop: Terminating match with no humans.")
		return nil
	}

	if acted {
		mh.broadcastStateSync(matchState, dispatcher, logger)
	}
	if matchState.Game.Phase != prePhase {
		mh.updateLabel(matchState, dispatcher, logger)
	}

	return matchState
}

// applyCommand is the single entry point for player commands; bots and humans
// both go through it. Invalid commands are logged and dropped without reply.
// It reports whether state changed and whether the match should terminate.
func (mh *matchHandler) applyCommand(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string, opCode int64, data []byte) (bool, bool) {
	g := state.Game

	switch opCode {
	case OpReady:
		events, err := state.App.Ready(g, senderID)
		if err != nil {
			logger.Warn("Ready: User %s rejected: %v", senderID, err)
			return false, false
		}
		mh.broadcastEvents(ctx, state, dispatcher, logger, events)
		if g.Phase == domain.PhaseWaiting && g.AllHumansReady() {
			mh.fillBotsAndDeal(ctx, state, dispatcher, logger)
		}
		return true, false

	case OpPlaceBid:
		var req bidRequest
		if err := json.Unmarshal(data, &req); err != nil {
			logger.Warn("PlaceBid: Invalid payload from %s: %v", senderID, err)
			return false, false
		}
		events, err := state.App.PlaceBid(g, senderID, req.Bid)
		if err != nil {
			logger.Warn("PlaceBid: User %s rejected: %v", senderID, err)
			return false, false
		}
		mh.broadcastEvents(ctx, state, dispatcher, logger, events)
		return true, false

	case OpPlayCard:
		var req playCardRequest
		if err := json.Unmarshal(data, &req); err != nil {
			logger.Warn("PlayCard: Invalid payload from %s: %v", senderID, err)
			return false, false
		}
		card, err := domain.CardFromID(req.CardID)
		if err != nil {
			logger.Warn("PlayCard: User %s sent unparseable card %q: %v", senderID, req.CardID, err)
			return false, false
		}
		events, err := state.App.PlayCard(g, senderID, card)
		if err != nil {
			logger.Warn("PlayCard: User %s rejected: %v", senderID, err)
			return false, false
		}
		mh.broadcastEvents(ctx, state, dispatcher, logger, events)
		if g.Phase == domain.PhaseTrickEnd {
			state.Tasks.Schedule(taskFinishTrick, state.Tick+int64(state.Cfg.TrickEndPauseSeconds), "")
		}
		return true, false

	case OpNextRound:
		events, err := state.App.NextRound(g, senderID, state.Cfg.BaseStake)
		if err != nil {
			logger.Warn("NextRound: User %s rejected: %v", senderID, err)
			return false, false
		}
		mh.broadcastEvents(ctx, state, dispatcher, logger, events)
		if g.Phase == domain.PhaseDealing {
			state.Tasks.Schedule(taskBeginBidding, state.Tick+int64(state.Cfg.DealRevealDelaySeconds), "")
		}
		return true, false

	case OpRestart:
		events, err := state.App.Restart(g, senderID)
		if err != nil {
			logger.Warn("Restart: User %s rejected: %v", senderID, err)
			return false, false
		}
		// Bot seats were cleared; drop their agents and pending phase work.
		state.Bots = make(map[string]*bot.Agent)
		state.BotWaitUntil = 0
		state.Tasks.CancelPhaseTasks()
		mh.broadcastEvents(ctx, state, dispatcher, logger, events)
		return true, false

	case OpLeave:
		if g.Phase == domain.PhaseWaiting || g.Phase == domain.PhaseGameOver {
			events, err := state.App.Depart(g, senderID)
			if err != nil {
				logger.Warn("Leave: User %s rejected: %v", senderID, err)
				return false, false
			}
			state.Tasks.CancelReconnect(senderID)
			mh.broadcastEvents(ctx, state, dispatcher, logger, events)
			return true, g.HumanCount() == 0
		}
		if !mh.replaceWithBot(ctx, state, dispatcher, logger, senderID) {
			return false, false
		}
		return true, g.HumanCount() == 0

	default:
		logger.Warn("MatchLoop: Unknown opcode %d from %s", opCode, senderID)
		return false, false
	}
}

// fillBotsAndDeal tops the table up with bot seats and starts the first deal.
func (mh *matchHandler) fillBotsAndDeal(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	g := state.Game

	for seat := len(g.PlayerOrder); seat < domain.NumPlayers; seat++ {
		identity := bot.SpawnIdentity(seat)
		if _, err := state.App.AddBot(g, identity.UserID, identity.DisplayName()); err != nil {
			logger.Error("fillBotsAndDeal: Could not seat bot %s: %v", identity.UserID, err)
			return
		}
		agent, err := bot.NewAgent(identity)
		if err != nil {
			logger.Error("fillBotsAndDeal: Could not create agent for %s: %v", identity.UserID, err)
			return
		}
		state.Bots[identity.UserID] = agent
		logger.Info("fillBotsAndDeal: Added bot %s (%s) to seat %d", identity.DisplayName(), identity.UserID, seat)
	}

	events, err := state.App.StartDealing(g)
	if err != nil {
		logger.Error("fillBotsAndDeal: StartDealing failed: %v", err)
		return
	}
	state.Tasks.Schedule(taskBeginBidding, state.Tick+int64(state.Cfg.DealRevealDelaySeconds), "")
	mh.broadcastEvents(ctx, state, dispatcher, logger, events)
}

// replaceWithBot hands a departed human's seat to a freshly spawned agent so
// active rounds keep four seats. The agent is primed with the inherited hand.
func (mh *matchHandler) replaceWithBot(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string) bool {
	g := state.Game
	p, exists := g.Players[userID]
	if !exists || p.IsBot {
		return false
	}

	identity := bot.SpawnIdentity(p.Seat)
	agent, err := bot.NewAgent(identity)
	if err != nil {
		logger.Error("replaceWithBot: Could not create agent for %s: %v", identity.UserID, err)
		return false
	}
	events, err := state.App.ReplaceWithBot(g, userID, identity.UserID, identity.DisplayName())
	if err != nil {
		logger.Warn("replaceWithBot: Seat handover for %s failed: %v", userID, err)
		return false
	}

	state.Tasks.CancelReconnect(userID)
	seat := g.Players[identity.UserID]
	agent.OnGameEvent(app.HandDealtPayload{UserID: identity.UserID, Hand: seat.Hand})
	state.Bots[identity.UserID] = agent
	logger.Info("replaceWithBot: Bot %s took over seat %d from %s.", identity.DisplayName(), seat.Seat, userID)
	mh.broadcastEvents(ctx, state, dispatcher, logger, events)
	return true
}

// processTasks fires every due scheduled task. It reports whether state
// changed and whether the match should terminate.
func (mh *matchHandler) processTasks(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) (bool, bool) {
	g := state.Game
	acted := false
	terminate := false

	for _, t := range state.Tasks.PopDue(state.Tick) {
		switch t.Kind {
		case taskBeginBidding:
			events, err := state.App.BeginBidding(g)
			if err != nil {
				logger.Debug("processTasks: BeginBidding skipped: %v", err)
				continue
			}
			mh.broadcastEvents(ctx, state, dispatcher, logger, events)
			acted = true

		case taskFinishTrick:
			events, err := state.App.FinishTrick(g)
			if err != nil {
				logger.Debug("processTasks: FinishTrick skipped: %v", err)
				continue
			}
			mh.broadcastEvents(ctx, state, dispatcher, logger, events)
			acted = true

		case taskReconnectDeadline:
			p, exists := g.Players[t.UserID]
			if !exists || p.IsConnected {
				continue
			}
			logger.Info("processTasks: Reconnect window expired for %s.", t.UserID)
			if g.Phase == domain.PhaseWaiting || g.Phase == domain.PhaseGameOver {
				events, err := state.App.Depart(g, t.UserID)
				if err != nil {
					logger.Warn("processTasks: Depart for %s failed: %v", t.UserID, err)
					continue
				}
				mh.broadcastEvents(ctx, state, dispatcher, logger, events)
			} else if !mh.replaceWithBot(ctx, state, dispatcher, logger, t.UserID) {
				continue
			}
			acted = true
			if g.HumanCount() == 0 {
				terminate = true
			}
		}
	}

	return acted, terminate
}

// processBots lets the bot on turn act after a short randomized pause, feeding
// its move through the same command path humans use.
func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) bool {
	g := state.Game

	if g.Phase != domain.PhaseBidding && g.Phase != domain.PhasePlaying {
		state.BotWaitUntil = 0
		return false
	}

	currentID := g.CurrentTurn
	if !bot.IsBot(currentID) {
		state.BotWaitUntil = 0
		return false
	}

	if state.BotWaitUntil == 0 {
		delay := rand.Intn(state.Cfg.BotMaxDelaySeconds-state.Cfg.BotMinDelaySeconds+1) + state.Cfg.BotMinDelaySeconds
		state.BotWaitUntil = state.Tick + int64(delay)
		logger.Debug("processBots: Bot %s will act at tick %d (current %d)", currentID, state.BotWaitUntil, state.Tick)
		return false
	}
	if state.Tick < state.BotWaitUntil {
		return false
	}
	state.BotWaitUntil = 0

	agent, exists := state.Bots[currentID]
	if !exists {
		logger.Error("processBots: No agent for bot %s on turn.", currentID)
		return false
	}

	switch g.Phase {
	case domain.PhaseBidding:
		bid, err := agent.Bid(g)
		if err != nil {
			logger.Error("processBots: Bot %s failed to bid: %v", currentID, err)
			return false
		}
		data, _ := json.Marshal(bidRequest{Bid: bid})
		acted, _ := mh.applyCommand(ctx, state, dispatcher, logger, currentID, OpPlaceBid, data)
		return acted

	case domain.PhasePlaying:
		card, err := agent.Play(g)
		if err != nil {
			logger.Error("processBots: Bot %s failed to pick a card: %v", currentID, err)
			return false
		}
		data, _ := json.Marshal(playCardRequest{CardID: card.ID()})
		acted, _ := mh.applyCommand(ctx, state, dispatcher, logger, currentID, OpPlayCard, data)
		return acted
	}

	return false
}

func (mh *matchHandler) broadcastEvents(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

// broadcastEvent handles the conversion and dispatching of app events to Nakama.
func (mh *matchHandler) broadcastEvent(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	var opCode int64
	var payload any

	switch ev.Kind {
	case app.EventSeated:
		opCode = OpSeated
		p := ev.Payload.(app.SeatedPayload)
		payload = seatedDTO{UserID: p.UserID, Seat: p.Seat, RoomCode: p.RoomCode}
	case app.EventPlayerJoined:
		opCode = OpPlayerJoined
		p := ev.Payload.(app.PlayerJoinedPayload)
		payload = playerJoinedDTO{UserID: p.UserID, Name: p.Name, Seat: p.Seat, IsBot: p.IsBot}
	case app.EventPlayerLeft:
		opCode = OpPlayerLeft
		p := ev.Payload.(app.PlayerLeftPayload)
		payload = playerLeftDTO{UserID: p.UserID, Name: p.Name}
	case app.EventReconnected:
		opCode = OpReconnected
		p := ev.Payload.(app.ReconnectedPayload)
		payload = reconnectedDTO{RoomCode: p.RoomCode}
	case app.EventPlayerReconnected:
		opCode = OpPlayerReconnected
		p := ev.Payload.(app.PlayerReconnectedPayload)
		payload = playerReconnectedDTO{UserID: p.UserID, Name: p.Name}
	case app.EventDealt:
		opCode = OpDealt
		p := ev.Payload.(app.DealtPayload)
		payload = dealtDTO{Round: p.Round, FirstBidder: p.FirstBidder}
	case app.EventHandDealt:
		opCode = OpHandDealt
		p := ev.Payload.(app.HandDealtPayload)
		payload = handDealtDTO{Hand: toCardDTOs(p.Hand)}
	case app.EventBiddingStarted:
		opCode = OpBiddingStarted
		p := ev.Payload.(app.BiddingStartedPayload)
		payload = biddingStartedDTO{Round: p.Round, CurrentTurn: p.CurrentTurn}
	case app.EventBidPlaced:
		opCode = OpBidPlaced
		p := ev.Payload.(app.BidPlacedPayload)
		payload = bidPlacedDTO{UserID: p.UserID, Bid: p.Bid, NextTurn: p.NextTurn, AllBid: p.AllBid}
	case app.EventCardPlayed:
		opCode = OpCardPlayed
		p := ev.Payload.(app.CardPlayedPayload)
		payload = cardPlayedDTO{
			UserID:        p.UserID,
			Card:          toCardDTO(p.Card),
			LeadSuit:      string(p.LeadSuit),
			NextTurn:      p.NextTurn,
			TrickComplete: p.TrickComplete,
		}
	case app.EventTrickEnded:
		opCode = OpTrickEnded
		p := ev.Payload.(app.TrickEndedPayload)
		payload = trickEndedDTO{WinnerID: p.WinnerID, TrickNumber: p.TrickNumber}
	case app.EventRoundEnded:
		opCode = OpRoundEnded
		p := ev.Payload.(app.RoundEndedPayload)
		payload = roundEndedDTO{Round: p.Round, Results: toRoundResultDTOs(p.Results), LastRound: p.LastRound}
	case app.EventGameOver:
		opCode = OpGameOver
		p := ev.Payload.(app.GameOverPayload)
		payload = gameOverDTO{Standings: toRoundResultDTOs(p.Standings), BalanceChanges: p.BalanceChanges}

		// Apply balance changes to Nakama wallets
		if state.Economy != nil {
			updates := make([]ports.WalletUpdate, 0, len(p.BalanceChanges))
			for userID, amount := range p.BalanceChanges {
				if bot.IsBot(userID) {
					continue
				}
				updates = append(updates, ports.WalletUpdate{
					UserID: userID,
					Amount: amount,
					Metadata: map[string]interface{}{
						"match_id": ctx.Value(runtime.RUNTIME_CTX_MATCH_ID),
						"reason":   "callbreak_settlement",
					},
				})
			}
			if err := state.Economy.UpdateBalances(ctx, updates); err != nil {
				logger.Error("Failed to update balances: %v", err)
			}
		}
	case app.EventMatchRestarted:
		opCode = OpMatchRestarted
		p := ev.Payload.(app.MatchRestartedPayload)
		payload = matchRestartedDTO{RoomCode: p.RoomCode}
	default:
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	// Determine recipients (default to broadcast)
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}

		// If we had intended recipients but none are connected (e.g. they are
		// bots), we MUST NOT broadcast to everyone else.
		if len(recipients) == 0 {
			mh.notifyBots(state, ev)
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)
	mh.notifyBots(state, ev)
}

// notifyBots forwards an event to the bot agents entitled to see it so their
// card memory stays honest. Targeted events only reach the named bots.
func (mh *matchHandler) notifyBots(state *MatchState, ev app.Event) {
	if len(ev.Recipients) == 0 {
		for _, agent := range state.Bots {
			agent.OnGameEvent(ev.Payload)
		}
		return
	}
	for _, uid := range ev.Recipients {
		if agent, ok := state.Bots[uid]; ok {
			agent.OnGameEvent(ev.Payload)
		}
	}
}

// sendHand re-sends a reconnecting player their private hand.
func (mh *matchHandler) sendHand(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string) {
	p, exists := state.Game.Players[userID]
	if !exists || len(p.Hand) == 0 {
		return
	}
	presence, ok := state.Presences[userID]
	if !ok {
		return
	}
	bytes, err := json.Marshal(handDealtDTO{Hand: toCardDTOs(p.Hand)})
	if err != nil {
		logger.Error("sendHand: Failed to marshal hand for %s: %v", userID, err)
		return
	}
	dispatcher.BroadcastMessage(OpHandDealt, bytes, []runtime.Presence{presence}, nil, true)
}

// broadcastStateSync pushes the full public snapshot so every client store
// converges regardless of which per-event deltas it saw.
func (mh *matchHandler) broadcastStateSync(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	bytes, err := json.Marshal(toStateSync(state.Game))
	if err != nil {
		logger.Error("broadcastStateSync: Failed to marshal snapshot: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpStateSync, bytes, nil, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	labelBytes, err := json.Marshal(domain.ComputeLabel(state.Game))
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	if matchState, ok := state.(*MatchState); ok {
		matchState.Tasks.Clear()
	}
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
