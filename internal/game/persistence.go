package game

import (
	"context"
	"fmt"
	"time"

	"github.com/samdwyer/dungeoncrawl/internal/storage"
)

// SlotStore adapts a storage.SessionStore to Persistence for a single slot.
type SlotStore struct {
	store   storage.SessionStore
	slot    string
	catalog Catalog
	now     func() time.Time
}

// NewSlotStore creates a SlotStore that saves into slot.
func NewSlotStore(store storage.SessionStore, slot string, catalog Catalog) *SlotStore {
	return &SlotStore{
		store:   store,
		slot:    slot,
		catalog: catalog,
		now:     time.Now,
	}
}

// Save encodes s and writes it into the slot, replacing any earlier save.
func (ss *SlotStore) Save(ctx context.Context, s *Session) error {
	payload, err := EncodeSession(s)
	if err != nil {
		return err
	}
	return ss.store.PutSession(ctx, storage.SessionRecord{
		Slot:      ss.slot,
		SessionID: s.ID.String(),
		Level:     s.Level,
		Payload:   payload,
		SavedAt:   ss.now(),
	})
}

// Load reads and decodes the slot's session.
func (ss *SlotStore) Load(ctx context.Context) (*Session, error) {
	record, err := ss.store.GetSession(ctx, ss.slot)
	if err != nil {
		return nil, err
	}
	s, err := DecodeSession(record.Payload, ss.catalog)
	if err != nil {
		return nil, err
	}
	if record.SessionID != "" && record.SessionID != s.ID.String() {
		return nil, fmt.Errorf("slot %s holds session %s but payload is %s: %w",
			ss.slot, record.SessionID, s.ID, storage.ErrCorrupt)
	}
	return s, nil
}

var _ Persistence = (*SlotStore)(nil)
