package create_booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/slot"
)

// memStore in-memory реализация репозиториев и менеджера транзакций для тестов.
// LockByID держит мьютекс места до конца транзакции, записи применяются только при commit
type memStore struct {
	mu        sync.Mutex
	slots     map[int64]*domain.Slot
	bookings  []*domain.Booking
	nextID    int64
	slotLocks map[int64]*sync.Mutex

	failStatusUpdate error
	failLookup       error
}

type memTx struct {
	locked   []*sync.Mutex
	bookings []*domain.Booking
	statuses map[int64]domain.SlotStatus
}

type memTxKey struct{}

func newMemStore(slots ...*domain.Slot) *memStore {
	s := &memStore{
		slots:     make(map[int64]*domain.Slot),
		slotLocks: make(map[int64]*sync.Mutex),
	}
	for _, slot := range slots {
		s.slots[slot.ID] = slot
		s.slotLocks[slot.ID] = &sync.Mutex{}
	}
	return s
}

func txFrom(ctx context.Context) *memTx {
	tx, _ := ctx.Value(memTxKey{}).(*memTx)
	return tx
}

func (s *memStore) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	tx := &memTx{statuses: make(map[int64]domain.SlotStatus)}

	defer func() {
		for i := len(tx.locked) - 1; i >= 0; i-- {
			tx.locked[i].Unlock()
		}
	}()

	if err := fn(context.WithValue(ctx, memTxKey{}, tx)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = append(s.bookings, tx.bookings...)
	for id, status := range tx.statuses {
		s.slots[id].Status = status
	}
	return nil
}

func (s *memStore) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	if s.failLookup != nil {
		return nil, s.failLookup
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	copied := *slot
	return &copied, nil
}

func (s *memStore) LockByID(ctx context.Context, id int64) (*domain.Slot, error) {
	s.mu.Lock()
	lock, ok := s.slotLocks[id]
	s.mu.Unlock()
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}

	lock.Lock()
	if tx := txFrom(ctx); tx != nil {
		tx.locked = append(tx.locked, lock)
	} else {
		defer lock.Unlock()
	}

	return s.GetByID(ctx, id)
}

func (s *memStore) UpdateStatus(ctx context.Context, id int64, status domain.SlotStatus) error {
	if s.failStatusUpdate != nil {
		return s.failStatusUpdate
	}
	if tx := txFrom(ctx); tx != nil {
		tx.statuses[id] = status
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[id].Status = status
	return nil
}

func (s *memStore) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	s.nextID++
	booking.ID = s.nextID
	booking.CreatedAt = time.Now()
	s.mu.Unlock()

	if tx := txFrom(ctx); tx != nil {
		tx.bookings = append(tx.bookings, booking)
		return booking, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = append(s.bookings, booking)
	return booking, nil
}

func (s *memStore) FindOverlapping(ctx context.Context, slotID int64, start, end time.Time) ([]*domain.Booking, error) {
	s.mu.Lock()
	candidates := append([]*domain.Booking(nil), s.bookings...)
	s.mu.Unlock()

	if tx := txFrom(ctx); tx != nil {
		candidates = append(candidates, tx.bookings...)
	}

	result := make([]*domain.Booking, 0)
	for _, b := range candidates {
		if b.SlotID == slotID && b.Overlaps(start, end) {
			result = append(result, b)
		}
	}
	return result, nil
}

func (s *memStore) committedBookings(slotID int64) []*domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if b.SlotID == slotID {
			result = append(result, b)
		}
	}
	return result
}

func (s *memStore) slotStatus(id int64) domain.SlotStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slots[id].Status
}

// failingTxManager возвращает ошибку commit после успешного fn
type failingTxManager struct {
	*memStore
	commitErr error
}

func (m failingTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.memStore.Do(ctx, func(txCtx context.Context) error {
		if err := fn(txCtx); err != nil {
			return err
		}
		return m.commitErr
	})
}

var errConnectionRefused = errors.New("dial tcp 127.0.0.1:5432: connection refused")

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type countingRecorder struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (r *countingRecorder) RecordBooking(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.outcomes == nil {
		r.outcomes = make(map[string]int)
	}
	r.outcomes[outcome]++
}

func (r *countingRecorder) count(outcome string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outcomes[outcome]
}
