package game

import "github.com/samdwyer/dungeoncrawl/internal/combat"

// NoticeKind identifies something the player should be told about.
type NoticeKind int

const (
	NoticeLevelEntered NoticeKind = iota
	NoticeWallBlocked
	NoticeExitBlocked // Amount: live opponents left
	NoticeExitReached
	NoticeChestOpened // Subject: implement found
	NoticeChestEmpty
	NoticeEncounterStarted // Subject: opponent
	NoticeFightChosen
	NoticeRetreated
	NoticeVictory // Subject: opponent
	NoticeDefeat  // Subject: opponent
	NoticeConditionTick
	NoticeHealed // Amount: health restored, Subject: implement sacrificed
	NoticeHealRejected
	NoticeSaved
	NoticeSaveFailed
	NoticeLoaded
	NoticeLoadFailed
	NoticeQuit
	NoticeInvalidCommand
	NoticeUnknownPhase
)

// String returns the notice kind's identifier.
func (k NoticeKind) String() string {
	switch k {
	case NoticeLevelEntered:
		return "level_entered"
	case NoticeWallBlocked:
		return "wall_blocked"
	case NoticeExitBlocked:
		return "exit_blocked"
	case NoticeExitReached:
		return "exit_reached"
	case NoticeChestOpened:
		return "chest_opened"
	case NoticeChestEmpty:
		return "chest_empty"
	case NoticeEncounterStarted:
		return "encounter_started"
	case NoticeFightChosen:
		return "fight_chosen"
	case NoticeRetreated:
		return "retreated"
	case NoticeVictory:
		return "victory"
	case NoticeDefeat:
		return "defeat"
	case NoticeConditionTick:
		return "condition_tick"
	case NoticeHealed:
		return "healed"
	case NoticeHealRejected:
		return "heal_rejected"
	case NoticeSaved:
		return "saved"
	case NoticeSaveFailed:
		return "save_failed"
	case NoticeLoaded:
		return "loaded"
	case NoticeLoadFailed:
		return "load_failed"
	case NoticeQuit:
		return "quit"
	case NoticeInvalidCommand:
		return "invalid_command"
	case NoticeUnknownPhase:
		return "unknown_phase"
	default:
		return "unknown"
	}
}

// Notice is one structured event. Which fields are set depends on Kind.
type Notice struct {
	Kind    NoticeKind
	Subject string
	Amount  int
	Tick    *combat.ConditionTick
	Err     error
}

// Report is everything that happened while handling one command or advancing
// one phase.
type Report struct {
	Phase   Phase // Phase after the step
	Notices []Notice
	Turn    *combat.TurnResult // Set when a combat turn was resolved
}

func (r *Report) add(n Notice) {
	r.Notices = append(r.Notices, n)
}

// Has reports whether a notice of the given kind was emitted.
func (r Report) Has(kind NoticeKind) bool {
	for _, n := range r.Notices {
		if n.Kind == kind {
			return true
		}
	}
	return false
}
