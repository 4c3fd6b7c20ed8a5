package game

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/samdwyer/dungeoncrawl/internal/combat"
	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
	"github.com/samdwyer/dungeoncrawl/internal/storage"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

// scriptedRoller returns queued values in order and fails the test when it
// runs dry.
type scriptedRoller struct {
	t      *testing.T
	values []int
}

func roll(t *testing.T, values ...int) *scriptedRoller {
	return &scriptedRoller{t: t, values: values}
}

func (s *scriptedRoller) Intn(n int) int {
	s.t.Helper()
	if len(s.values) == 0 {
		s.t.Fatalf("roller exhausted (Intn(%d))", n)
	}
	v := s.values[0]
	s.values = s.values[1:]
	if v < 0 || v >= n {
		s.t.Fatalf("scripted value %d out of range for Intn(%d)", v, n)
	}
	return v
}

func testEngine(t *testing.T, roller combat.Roller, opts ...Option) *Engine {
	t.Helper()
	catalog, err := LoadCatalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	base := []Option{
		WithRand(rand.New(rand.NewSource(1))),
		WithCatalog(catalog),
	}
	if roller != nil {
		base = append(base, WithRoller(roller))
	}
	e, err := NewEngine(DefaultConfig(), append(base, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e
}

// testMap has the entrance at (1,2) and the exit at (3,3).
var testMap = []string{
	"#####",
	"#.<.#",
	"#...#",
	"#..>#",
	"#####",
}

func testSession(t *testing.T, e *Engine) *Session {
	t.Helper()
	d, err := world.FromRows(testMap, nil)
	if err != nil {
		t.Fatalf("build map: %v", err)
	}
	s := e.NewSession("Tester")
	s.Dungeon = d
	s.Level = 1
	s.Phase = PhaseExploring
	s.Player.MoveTo(d.Entrance.Row, d.Entrance.Col)
	return s
}

func addOpponent(t *testing.T, e *Engine, s *Session, row, col, hp int) *entity.Opponent {
	t.Helper()
	def := e.Catalog().Enemies.GetByID("goblin")
	if def == nil {
		t.Fatal("goblin missing from catalog")
	}
	o := entity.NewOpponent(def, row, col, hp)
	s.Opponents = append(s.Opponents, o)
	return o
}

func weapon(t *testing.T, e *Engine, id gamedata.ImplementID) *gamedata.WeaponDef {
	t.Helper()
	w := e.Catalog().Weapons.GetByID(id)
	if w == nil {
		t.Fatalf("implement %q missing from catalog", id)
	}
	return w
}

func handle(t *testing.T, e *Engine, s *Session, cmd Command) Report {
	t.Helper()
	report, _ := e.Handle(context.Background(), s, cmd)
	return report
}

// memStore is an in-memory storage.SessionStore.
type memStore struct {
	records map[string]storage.SessionRecord
	putErr  error
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]storage.SessionRecord)}
}

func (m *memStore) PutSession(_ context.Context, record storage.SessionRecord) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.records[record.Slot] = record
	return nil
}

func (m *memStore) GetSession(_ context.Context, slot string) (storage.SessionRecord, error) {
	record, ok := m.records[slot]
	if !ok {
		return storage.SessionRecord{}, storage.ErrNotFound
	}
	return record, nil
}

func (m *memStore) DeleteSession(_ context.Context, slot string) error {
	delete(m.records, slot)
	return nil
}

var errDiskFull = errors.New("disk full")

func addChest(t *testing.T, e *Engine, s *Session, row, col int) *entity.Chest {
	t.Helper()
	c := entity.NewChest(row, col, weapon(t, e, gamedata.ImplementBlade))
	s.Chests = append(s.Chests, c)
	return c
}
