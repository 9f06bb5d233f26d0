// Command simulate runs bot-vs-bot Call Break games through the same
// use-case layer the Nakama handler drives, as a fast sanity harness for
// rules and strategy changes.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"callbreak/internal/app"
	"callbreak/internal/bot"
	"callbreak/internal/domain"

	"github.com/lmittmann/tint"
)

const maxStepsPerGame = 10000

func main() {
	games := flag.Int("games", 100, "number of games to simulate")
	seed := flag.Int64("seed", 1, "base rng seed; game i uses seed+i")
	level := flag.String("level", "", "force bot difficulty (easy, medium, hard)")
	stake := flag.Int64("stake", 100, "per-seat gold stake")
	verbose := flag.Bool("v", false, "log per-round results")
	flag.Parse()

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: logLevel}))
	slog.SetDefault(logger)

	failed := 0
	for i := 0; i < *games; i++ {
		if err := runGame(*seed+int64(i), *level, *stake); err != nil {
			logger.Error("game failed", "seed", *seed+int64(i), "err", err)
			failed++
		}
	}

	logger.Info("simulation finished", "games", *games, "failed", failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func runGame(seed int64, level string, stake int64) error {
	svc := app.NewService(rand.New(rand.NewSource(seed)))
	g := domain.NewGame(svc.NewRoomCode())

	agents := make(map[string]*bot.Agent, domain.NumPlayers)
	for seat := 0; seat < domain.NumPlayers; seat++ {
		identity := bot.SpawnIdentity(seat)
		if level != "" {
			identity.Difficulty = level
		}
		if _, err := svc.AddBot(g, identity.UserID, identity.DisplayName()); err != nil {
			return fmt.Errorf("seat bot %d: %w", seat, err)
		}
		agent, err := bot.NewAgent(identity)
		if err != nil {
			return fmt.Errorf("create agent %d: %w", seat, err)
		}
		agents[identity.UserID] = agent
	}

	events, err := svc.StartDealing(g)
	if err != nil {
		return fmt.Errorf("start dealing: %w", err)
	}
	dispatch(agents, events)

	for step := 0; step < maxStepsPerGame; step++ {
		switch g.Phase {
		case domain.PhaseDealing:
			events, err = svc.BeginBidding(g)
			if err != nil {
				return fmt.Errorf("begin bidding: %w", err)
			}

		case domain.PhaseBidding:
			agent := agents[g.CurrentTurn]
			bid, bidErr := agent.Bid(g)
			if bidErr != nil {
				return fmt.Errorf("bot %s bid: %w", agent.Name, bidErr)
			}
			events, err = svc.PlaceBid(g, agent.ID, bid)
			if err != nil {
				return fmt.Errorf("bot %s place bid %d: %w", agent.Name, bid, err)
			}

		case domain.PhasePlaying:
			agent := agents[g.CurrentTurn]
			card, playErr := agent.Play(g)
			if playErr != nil {
				return fmt.Errorf("bot %s pick card: %w", agent.Name, playErr)
			}
			events, err = svc.PlayCard(g, agent.ID, card)
			if err != nil {
				return fmt.Errorf("bot %s play %s: %w", agent.Name, card.ID(), err)
			}

		case domain.PhaseTrickEnd:
			events, err = svc.FinishTrick(g)
			if err != nil {
				return fmt.Errorf("finish trick: %w", err)
			}
			logRoundEnd(events)

		case domain.PhaseRoundEnd:
			if err := checkRound(g); err != nil {
				return err
			}
			events, err = svc.NextRound(g, g.PlayerOrder[0], stake)
			if err != nil {
				return fmt.Errorf("next round: %w", err)
			}

		case domain.PhaseGameOver:
			logGameOver(g, events)
			return nil

		default:
			return fmt.Errorf("unexpected phase %s", g.Phase)
		}

		dispatch(agents, events)
	}

	return fmt.Errorf("game did not finish within %d steps", maxStepsPerGame)
}

// dispatch forwards events to agents the way the match handler would,
// honoring targeted recipients so bots never see another hand.
func dispatch(agents map[string]*bot.Agent, events []app.Event) {
	for _, ev := range events {
		if len(ev.Recipients) == 0 {
			for _, agent := range agents {
				agent.OnGameEvent(ev.Payload)
			}
			continue
		}
		for _, uid := range ev.Recipients {
			if agent, ok := agents[uid]; ok {
				agent.OnGameEvent(ev.Payload)
			}
		}
	}
}

// checkRound asserts the round's bookkeeping adds up before moving on.
func checkRound(g *domain.Game) error {
	total := 0
	for _, id := range g.PlayerOrder {
		total += g.Players[id].TricksWon
	}
	if total != domain.HandSize {
		return fmt.Errorf("round %d: tricks won sum to %d, want %d", g.CurrentRound, total, domain.HandSize)
	}
	return nil
}

func logRoundEnd(events []app.Event) {
	for _, ev := range events {
		if ev.Kind != app.EventRoundEnded {
			continue
		}
		p := ev.Payload.(app.RoundEndedPayload)
		for _, r := range p.Results {
			slog.Debug("round result",
				"round", p.Round,
				"player", r.UserID,
				"bid", r.Bid,
				"won", r.TricksWon,
				"score", r.RoundScore,
				"total", r.TotalScore,
			)
		}
	}
}

func logGameOver(g *domain.Game, events []app.Event) {
	for _, ev := range events {
		if ev.Kind != app.EventGameOver {
			continue
		}
		p := ev.Payload.(app.GameOverPayload)
		if len(p.Standings) == 0 {
			continue
		}
		winner := p.Standings[0]
		slog.Info("game over",
			"room", g.RoomCode,
			"winner", g.Players[winner.UserID].Name,
			"score", winner.TotalScore,
			"gold", p.BalanceChanges[winner.UserID],
		)
	}
}
