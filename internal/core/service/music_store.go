package service

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rl1809/musicstore/internal/core/domain"
)

// MusicStore owns every disc of the catalog, keyed by SID. Discs are kept in
// insertion order. The store is meant for a single owner and has no locking.
type MusicStore struct {
	discs  map[string]*domain.Disc
	order  []string
	events chan domain.TransactionEvent
	closed bool
	logger *zap.Logger
}

// NewMusicStore creates an empty store. A positive queueSize attaches a
// buffered transaction feed readable through Events.
func NewMusicStore(logger *zap.Logger, queueSize int) *MusicStore {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &MusicStore{
		discs:  make(map[string]*domain.Disc),
		logger: logger,
	}
	if queueSize > 0 {
		s.events = make(chan domain.TransactionEvent, queueSize)
	}
	return s
}

// AddDisc stores a new disc unless the SID is already taken, in which case
// the existing disc is left as is and false is returned.
func (s *MusicStore) AddDisc(sid, title, artist string, salePrice, purchasePrice decimal.Decimal, quantity int) bool {
	if _, exists := s.discs[sid]; exists {
		s.logger.Debug("disc already in catalog", zap.String("sid", sid))
		return false
	}

	s.discs[sid] = domain.NewDisc(sid, title, artist, salePrice, purchasePrice, quantity)
	s.order = append(s.order, sid)
	s.logger.Info("disc added",
		zap.String("sid", sid),
		zap.String("artist", artist),
		zap.Int("quantity", quantity),
	)
	return true
}

func (s *MusicStore) SearchBySID(sid string) (*domain.Disc, bool) {
	disc, ok := s.discs[sid]
	return disc, ok
}

// SearchByArtist returns the discs whose artist matches exactly.
func (s *MusicStore) SearchByArtist(artist string) []*domain.Disc {
	var found []*domain.Disc
	for _, sid := range s.order {
		if disc := s.discs[sid]; disc.Artist == artist {
			found = append(found, disc)
		}
	}
	return found
}

func (s *MusicStore) SellDisc(sid string, copies int) error {
	disc, ok := s.discs[sid]
	if !ok {
		return domain.ErrDiscNotFound
	}

	tx, err := disc.Sell(copies)
	if err != nil {
		s.logger.Info("sale rejected",
			zap.String("sid", sid),
			zap.Int("copies", copies),
			zap.Int("quantity", disc.Quantity()),
		)
		return err
	}

	s.emit(sid, tx)
	return nil
}

func (s *MusicStore) SupplyDisc(sid string, copies int) error {
	disc, ok := s.discs[sid]
	if !ok {
		return domain.ErrDiscNotFound
	}

	s.emit(sid, disc.Supply(copies))
	return nil
}

// WorstSellingDisc returns the disc with the fewest copies sold. Ties go to
// the disc added first.
func (s *MusicStore) WorstSellingDisc() (*domain.Disc, bool) {
	var worst *domain.Disc
	minSold := 0
	for _, sid := range s.order {
		disc := s.discs[sid]
		if sold := disc.CopiesSold(); worst == nil || sold < minSold {
			worst, minSold = disc, sold
		}
	}
	return worst, worst != nil
}

func (s *MusicStore) Len() int {
	return len(s.order)
}

// Discs returns the catalog in insertion order.
func (s *MusicStore) Discs() []*domain.Disc {
	discs := make([]*domain.Disc, 0, len(s.order))
	for _, sid := range s.order {
		discs = append(discs, s.discs[sid])
	}
	return discs
}

// emit never blocks: when the feed queue is full the event is dropped.
func (s *MusicStore) emit(sid string, tx domain.Transaction) {
	s.logger.Debug("transaction recorded",
		zap.String("sid", sid),
		zap.String("tx_id", tx.ID),
		zap.String("kind", string(tx.Kind)),
		zap.Int("copies", tx.Copies),
	)

	if s.events == nil || s.closed {
		return
	}

	select {
	case s.events <- domain.TransactionEvent{SID: sid, Transaction: tx}:
	default:
		s.logger.Warn("feed queue full, dropping event",
			zap.String("sid", sid),
			zap.String("tx_id", tx.ID),
		)
	}
}

// Events returns nil when the store was created without a feed.
func (s *MusicStore) Events() <-chan domain.TransactionEvent {
	return s.events
}

// Close stops the feed. Store operations keep working afterwards and
// their transactions are no longer emitted. Calling Close twice is a no-op.
func (s *MusicStore) Close() {
	if s.closed {
		return
	}
	s.closed = true
	if s.events != nil {
		close(s.events)
	}
}
