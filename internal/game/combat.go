package game

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeoncrawl/internal/combat"
	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/telemetry"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

// engage starts an encounter with o. from is where the player stepped from and
// where a retreat sends them back to.
func (e *Engine) engage(ctx context.Context, s *Session, o *entity.Opponent, from world.Pos, report *Report) {
	tracer := telemetry.Tracer("combat")
	_, span := tracer.Start(ctx, "combat.start")
	span.SetAttributes(
		attribute.String("opponent", o.ID()),
		attribute.Int("opponent.hp", o.GetHP()),
		attribute.Int("player.hp", s.Player.GetHP()),
		attribute.String("player.implement", s.Player.Implement.Name),
		attribute.Int("session.level", s.Level),
	)
	span.End()

	s.Engaged = o
	s.Fighting = false
	s.Turns = 0
	s.Retreat = from
	s.Phase = PhaseEncounter
	report.add(Notice{Kind: NoticeEncounterStarted, Subject: o.Name})
}

// encounter handles a command while an opponent is engaged. Before the first
// turn the player chooses to fight or run; after that every command is a
// combat action and anything but attack or defend forfeits the turn.
func (e *Engine) encounter(ctx context.Context, s *Session, cmd Command) (Report, error) {
	o := s.Engaged
	if o == nil || !o.IsAlive() {
		s.endEncounter(PhaseExploring)
		return Report{Phase: s.Phase}, nil
	}

	if s.Fighting {
		return e.turn(ctx, s, cmd.action()), nil
	}

	switch cmd {
	case CommandFight:
		s.Fighting = true
		report := Report{Phase: s.Phase}
		report.add(Notice{Kind: NoticeFightChosen, Subject: o.Name})
		return report, nil
	case CommandRun:
		s.Player.MoveTo(s.Retreat.Row, s.Retreat.Col)
		e.endCombat(ctx, s, "retreat")
		s.endEncounter(PhaseExploring)
		report := Report{Phase: s.Phase}
		report.add(Notice{Kind: NoticeRetreated, Subject: o.Name})
		return report, nil
	default:
		return e.reject(s, cmd)
	}
}

// turn resolves one combat turn against the engaged opponent.
func (e *Engine) turn(ctx context.Context, s *Session, action combat.Action) Report {
	tracer := telemetry.Tracer("combat")
	ctx, span := tracer.Start(ctx, "combat.turn")
	defer span.End()

	o := s.Engaged
	result := e.resolver.ResolveTurn(action, s.Player, o)
	s.Turns++

	span.SetAttributes(
		attribute.Int("turn", s.Turns),
		attribute.String("action", result.Action.String()),
		attribute.String("decision", result.Decision.String()),
		attribute.String("outcome", result.Outcome.String()),
		attribute.Int("damage_dealt", result.DamageDealt),
		attribute.Int("damage_taken", result.DamageTaken),
		attribute.Bool("critical", result.WasCritical),
		attribute.Bool("heal_interrupted", result.HealInterrupted),
		attribute.String("opponent.condition", string(o.GetCondition().Kind)),
		attribute.String("result", result.Result.String()),
	)
	if result.ConditionApplied != "" {
		span.SetAttributes(attribute.String("status_applied", string(result.ConditionApplied)))
	}

	report := Report{Turn: &result}
	switch result.Result {
	case combat.Victory:
		e.endCombat(ctx, s, "victory")
		s.endEncounter(PhaseExploring)
		report.add(Notice{Kind: NoticeVictory, Subject: o.Name})
	case combat.Defeat:
		e.endCombat(ctx, s, "defeat")
		s.endEncounter(PhaseGameOver)
		report.add(Notice{Kind: NoticeDefeat, Subject: o.Name})
	}

	report.Phase = s.Phase
	return report
}

// endCombat records how the encounter finished.
func (e *Engine) endCombat(ctx context.Context, s *Session, outcome string) {
	tracer := telemetry.Tracer("combat")
	_, span := tracer.Start(ctx, "combat.end")
	span.SetAttributes(
		attribute.String("outcome", outcome),
		attribute.Int("turns_taken", s.Turns),
		attribute.Int("player.hp", s.Player.GetHP()),
		attribute.Int("opponents_remaining", len(s.LiveOpponents())),
	)
	span.End()
}
