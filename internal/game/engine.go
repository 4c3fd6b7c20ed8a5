package game

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeoncrawl/internal/combat"
	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/random"
	"github.com/samdwyer/dungeoncrawl/internal/telemetry"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

const (
	maxOpponents       = 3 // per level, before the floor-space cap
	opponentFloorRatio = 3 // at most one opponent per this many floor tiles
	maxChests          = 1
	chestFloorRatio    = 4
	healAmount         = 1
)

// Persistence saves and restores whole sessions between turns.
type Persistence interface {
	Save(ctx context.Context, s *Session) error
	Load(ctx context.Context) (*Session, error)
}

// Engine advances sessions one step at a time. It owns the randomness and
// the static game data; sessions own all mutable state.
type Engine struct {
	cfg      Config
	seed     int64
	rng      *rand.Rand
	roller   combat.Roller
	resolver *combat.Resolver
	catalog  Catalog
	persist  Persistence
}

// Option customises an Engine.
type Option func(*Engine)

// WithRand replaces the seeded random source used for levels and spawns.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithRoller replaces the dice used for combat. By default combat draws from
// the same source as everything else.
func WithRoller(r combat.Roller) Option {
	return func(e *Engine) { e.roller = r }
}

// WithCatalog supplies already loaded game data.
func WithCatalog(c Catalog) Option {
	return func(e *Engine) { e.catalog = c }
}

// WithPersistence enables save and load.
func WithPersistence(p Persistence) Option {
	return func(e *Engine) { e.persist = p }
}

// NewEngine creates an engine. A zero cfg.Seed draws a fresh seed; the
// embedded catalog is loaded unless one is supplied.
func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	e := &Engine{cfg: cfg.normalize()}
	for _, opt := range opts {
		opt(e)
	}

	if e.rng == nil {
		seed, err := random.Resolve(e.cfg.Seed)
		if err != nil {
			return nil, fmt.Errorf("resolve seed: %w", err)
		}
		e.seed = seed
		e.rng = rand.New(rand.NewSource(seed))
	}
	if e.roller == nil {
		e.roller = e.rng
	}
	e.resolver = combat.NewResolver(e.roller)

	if e.catalog.Weapons == nil || e.catalog.Enemies == nil {
		catalog, err := LoadCatalog()
		if err != nil {
			return nil, err
		}
		e.catalog = catalog
	}

	return e, nil
}

// Seed returns the seed the engine's random source was built from, or 0 when
// the source was supplied by the caller.
func (e *Engine) Seed() int64 { return e.seed }

// Catalog returns the engine's game data.
func (e *Engine) Catalog() Catalog { return e.catalog }

// Persistent reports whether save and load are available.
func (e *Engine) Persistent() bool { return e.persist != nil }

// NewSession starts a play-through. The first Advance builds level 1.
// An empty name falls back to the configured player name.
func (e *Engine) NewSession(name string) *Session {
	if name == "" {
		name = e.cfg.PlayerName
	}
	return &Session{
		ID:     uuid.New(),
		Phase:  PhaseLevelTransition,
		Player: entity.NewPlayer(&e.catalog.Player, e.catalog.startingImplement(), name),
	}
}

// Advance runs the phases that need no input. Only PhaseLevelTransition does
// any work; the other known phases are returned unchanged.
func (e *Engine) Advance(ctx context.Context, s *Session) (Report, error) {
	switch s.Phase {
	case PhaseLevelTransition:
		return e.transition(ctx, s), nil
	case PhaseExploring, PhaseEncounter, PhaseGameOver:
		return Report{Phase: s.Phase}, nil
	default:
		return e.unknownPhase(s)
	}
}

// Handle applies one player command to the session.
func (e *Engine) Handle(ctx context.Context, s *Session, cmd Command) (Report, error) {
	switch s.Phase {
	case PhaseExploring:
		return e.explore(ctx, s, cmd)
	case PhaseEncounter:
		return e.encounter(ctx, s, cmd)
	case PhaseLevelTransition, PhaseGameOver:
		return e.reject(s, cmd)
	default:
		return e.unknownPhase(s)
	}
}

func (e *Engine) reject(s *Session, cmd Command) (Report, error) {
	err := &InputError{Command: cmd, Phase: s.Phase}
	report := Report{Phase: s.Phase}
	report.add(Notice{Kind: NoticeInvalidCommand, Subject: cmd.String(), Err: err})
	return report, err
}

func (e *Engine) unknownPhase(s *Session) (Report, error) {
	err := fmt.Errorf("%w: %d", ErrUnknownPhase, int(s.Phase))
	s.endEncounter(PhaseGameOver)
	report := Report{Phase: s.Phase}
	report.add(Notice{Kind: NoticeUnknownPhase, Err: err})
	return report, err
}

// transition generates the next level and places the player at its entrance.
func (e *Engine) transition(ctx context.Context, s *Session) Report {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "session.level_transition")
	defer span.End()

	dungeon := world.NewDungeon(e.cfg.GridSize, e.rng)
	dungeon.Generate(ctx, e.cfg.WalkSteps)

	s.Dungeon = dungeon
	s.Player.MoveTo(dungeon.Entrance.Row, dungeon.Entrance.Col)
	s.Opponents, s.Chests = e.populate(dungeon)
	s.Level++
	s.endEncounter(PhaseExploring)

	span.SetAttributes(
		attribute.String("session.id", s.ID.String()),
		attribute.Int("session.level", s.Level),
		attribute.Int("level.opponents", len(s.Opponents)),
		attribute.Int("level.chests", len(s.Chests)),
	)

	report := Report{Phase: s.Phase}
	report.add(Notice{Kind: NoticeLevelEntered, Amount: s.Level})
	return report
}

// populate spreads opponents and chests over distinct floor tiles.
func (e *Engine) populate(d *world.Dungeon) ([]*entity.Opponent, []*entity.Chest) {
	floors := d.FloorTiles()
	e.rng.Shuffle(len(floors), func(i, j int) {
		floors[i], floors[j] = floors[j], floors[i]
	})

	numOpponents := min(1+e.rng.Intn(maxOpponents), len(floors)/opponentFloorRatio)
	numChests := min(maxChests, len(floors)/chestFloorRatio)
	if numOpponents+numChests > len(floors) {
		numChests = len(floors) - numOpponents
	}

	opponents := make([]*entity.Opponent, 0, numOpponents)
	for _, p := range floors[:numOpponents] {
		def := e.catalog.Enemies.SpawnRandom(e.rng)
		if def == nil {
			break
		}
		opponents = append(opponents, entity.NewOpponent(def, p.Row, p.Col, def.RollHP(e.rng)))
	}

	chests := make([]*entity.Chest, 0, numChests)
	for _, p := range floors[numOpponents : numOpponents+numChests] {
		contents := e.catalog.Weapons.ChestRandom(e.rng)
		if contents == nil {
			contents = e.catalog.Weapons.Default()
		}
		chests = append(chests, entity.NewChest(p.Row, p.Col, contents))
	}

	return opponents, chests
}

// explore handles a command while walking the level.
func (e *Engine) explore(ctx context.Context, s *Session, cmd Command) (Report, error) {
	if dRow, dCol, ok := cmd.delta(); ok {
		return e.move(ctx, s, dRow, dCol), nil
	}

	switch cmd {
	case CommandHeal:
		return e.heal(ctx, s)
	case CommandSave:
		return e.save(ctx, s)
	case CommandQuit:
		s.Phase = PhaseGameOver
		report := Report{Phase: s.Phase}
		report.add(Notice{Kind: NoticeQuit})
		return report, nil
	default:
		return e.reject(s, cmd)
	}
}

// move steps the player one tile. A wall rejects the move outright. Otherwise
// the player's own condition ticks first, then the destination is checked for
// an opponent, the exit and a chest, in that order.
func (e *Engine) move(ctx context.Context, s *Session, dRow, dCol int) Report {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "session.move")
	defer span.End()

	report := Report{Phase: s.Phase}
	from := s.PlayerPos()
	to := from.Step(dRow, dCol)
	span.SetAttributes(
		attribute.Int("move.row", to.Row),
		attribute.Int("move.col", to.Col),
	)

	if !s.Dungeon.IsPassable(to.Row, to.Col) {
		span.SetAttributes(attribute.Bool("move.blocked", true))
		report.add(Notice{Kind: NoticeWallBlocked})
		return report
	}

	if tick, ok := s.Player.TickCondition(); ok {
		report.add(Notice{Kind: NoticeConditionTick, Subject: s.Player.Name, Amount: tick.Damage, Tick: &tick})
		if !s.Player.IsAlive() {
			s.Phase = PhaseGameOver
			report.Phase = s.Phase
			report.add(Notice{Kind: NoticeDefeat, Tick: &tick})
			return report
		}
	}

	s.Player.MoveTo(to.Row, to.Col)

	switch {
	case s.OpponentAt(to.Row, to.Col) != nil:
		e.engage(ctx, s, s.OpponentAt(to.Row, to.Col), from, &report)

	case s.Dungeon.TileAt(to.Row, to.Col) == world.TileExit:
		if live := len(s.LiveOpponents()); live > 0 {
			report.add(Notice{Kind: NoticeExitBlocked, Amount: live})
		} else {
			s.Phase = PhaseLevelTransition
			report.add(Notice{Kind: NoticeExitReached})
		}

	case s.ChestAt(to.Row, to.Col) != nil:
		chest := s.ChestAt(to.Row, to.Col)
		if chest.Open(s.Player) {
			report.add(Notice{Kind: NoticeChestOpened, Subject: chest.Contents.Name})
		} else {
			report.add(Notice{Kind: NoticeChestEmpty})
		}
	}

	report.Phase = s.Phase
	return report
}

// heal trades a held implement for one point of health.
func (e *Engine) heal(ctx context.Context, s *Session) (Report, error) {
	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "session.heal")
	defer span.End()

	report := Report{Phase: s.Phase}
	p := s.Player

	var reason error
	switch {
	case p.HasCondition():
		reason = ErrConditionActive
	case p.IsFullHealth():
		reason = ErrHealthFull
	case !p.HasSpareImplement():
		reason = ErrNoSpareImplement
	}
	if reason != nil {
		err := &PreconditionError{Reason: reason}
		span.SetAttributes(attribute.String("heal.rejected", reason.Error()))
		report.add(Notice{Kind: NoticeHealRejected, Err: err})
		return report, err
	}

	sacrificed := p.Implement.Name
	p.Equip(e.catalog.Weapons.Default())
	healed := p.Heal(healAmount)

	span.SetAttributes(
		attribute.String("heal.sacrificed", sacrificed),
		attribute.Int("heal.amount", healed),
		attribute.Int("player.hp", p.GetHP()),
	)
	report.add(Notice{Kind: NoticeHealed, Subject: sacrificed, Amount: healed})
	return report, nil
}

func (e *Engine) save(ctx context.Context, s *Session) (Report, error) {
	report := Report{Phase: s.Phase}
	if err := e.Save(ctx, s); err != nil {
		report.add(Notice{Kind: NoticeSaveFailed, Err: err})
		return report, err
	}
	report.add(Notice{Kind: NoticeSaved})
	return report, nil
}

// Save writes the session through the configured persistence.
func (e *Engine) Save(ctx context.Context, s *Session) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "session.save")
	defer span.End()

	span.SetAttributes(
		attribute.String("session.id", s.ID.String()),
		attribute.Int("session.level", s.Level),
	)

	if e.persist == nil {
		return fmt.Errorf("%w: %w", ErrPersistence, ErrNoPersistence)
	}
	if s.Phase != PhaseExploring {
		return fmt.Errorf("%w: cannot save while %s", ErrPersistence, s.Phase)
	}
	if err := e.persist.Save(ctx, s); err != nil {
		span.RecordError(err)
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

// Load restores the saved session. Storage errors such as
// storage.ErrNotFound and storage.ErrCorrupt stay matchable with errors.Is.
func (e *Engine) Load(ctx context.Context) (*Session, error) {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "session.load")
	defer span.End()

	if e.persist == nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, ErrNoPersistence)
	}
	s, err := e.persist.Load(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	span.SetAttributes(
		attribute.String("session.id", s.ID.String()),
		attribute.Int("session.level", s.Level),
	)
	return s, nil
}
