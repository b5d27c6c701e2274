package service

import (
	"context"
	"sort"
	"sync"
	"time"

	bookingserrors "sportsclub/internal/bookings/errors"
	"sportsclub/internal/bookings/repository"
	mongotx "sportsclub/pkg/db/mongo"
	apperrors "sportsclub/pkg/errors"
	"sportsclub/pkg/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeBookingRepo struct {
	mu       sync.Mutex
	txMu     sync.Mutex
	bookings map[string]*model.Booking
	creates  int
	failNext error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[string]*model.Booking{}}
}

func (r *fakeBookingRepo) Create(_ context.Context, b *model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return err
	}
	b.ID = primitive.NewObjectID().Hex()
	b.CreatedAt = time.Now().UTC()
	cp := *b
	r.bookings[b.ID] = &cp
	r.creates++
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id string) (*model.Booking, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, bookingserrors.ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingserrors.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) byDate(date string) []*model.Booking {
	var out []*model.Booking
	for _, b := range r.bookings {
		if b.Date == date {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime < out[j].StartTime
		}
		return out[i].Sport < out[j].Sport
	})
	return out
}

func (r *fakeBookingRepo) FindByDate(_ context.Context, date string, limit int, offset int64) ([]*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.byDate(date)
	if int(offset) >= len(all) {
		return []*model.Booking{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeBookingRepo) TotalsByDate(_ context.Context, date string) (*repository.DayTotals, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := &repository.DayTotals{}
	for _, b := range r.byDate(date) {
		t.Count++
		t.Revenue += int64(b.TotalAmount)
		t.Visitors += int64(b.Customer.Count)
	}
	return t, nil
}

func (r *fakeBookingRepo) FindOverlapping(_ context.Context, sport, date, start, end string) ([]*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Booking
	for _, b := range r.byDate(date) {
		if b.Sport == sport && b.StartTime < end && b.EndTime > start {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) CountBySport(_ context.Context, sport string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, b := range r.bookings {
		if b.Sport == sport {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return bookingserrors.ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return bookingserrors.ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}

// ExecuteTransaction serializes transactions, which is what a Mongo
// transaction over the same documents amounts to for these tests.
func (r *fakeBookingRepo) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return fn(ctx)
}

func (r *fakeBookingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bookings)
}

type fakeLockRepo struct {
	mu       sync.Mutex
	locks    map[string]*model.BookingLock
	creates  int
	released int
}

func newFakeLockRepo() *fakeLockRepo {
	return &fakeLockRepo{locks: map[string]*model.BookingLock{}}
}

func (r *fakeLockRepo) Create(_ context.Context, lock *model.BookingLock) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if _, ok := r.locks[lock.ID]; ok {
		return bookingserrors.ErrLockHeld
	}
	cp := *lock
	r.locks[lock.ID] = &cp
	return nil
}

func (r *fakeLockRepo) DeleteExpired(_ context.Context, id string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.locks[id]; ok && l.ExpiresAt.Before(now) {
		delete(r.locks, id)
		return true, nil
	}
	return false, nil
}

func (r *fakeLockRepo) Delete(_ context.Context, id, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.locks[id]; ok && l.Owner == owner {
		delete(r.locks, id)
		r.released++
	}
	return nil
}

func (r *fakeLockRepo) held() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.locks)
}

type fakeCatalog struct {
	sports []*model.Sport
}

func (c *fakeCatalog) GetByID(_ context.Context, id string) (*model.Sport, error) {
	for _, s := range c.sports {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, apperrors.NotFoundWithID("Sport", id)
}

func (c *fakeCatalog) GetActiveByName(_ context.Context, name string) (*model.Sport, error) {
	for _, s := range c.sports {
		if s.IsActive && s.Name == name {
			return s, nil
		}
	}
	return nil, apperrors.NotFound("Sport")
}

func (c *fakeCatalog) ListActive(context.Context) ([]*model.Sport, error) {
	var out []*model.Sport
	for _, s := range c.sports {
		if s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeSnapshot struct {
	items []*model.Booking
}

func (s *fakeSnapshot) Ready() bool             { return true }
func (s *fakeSnapshot) Items() []*model.Booking { return s.items }

type recordingPublisher struct {
	mu       sync.Mutex
	bookings []*model.BookingEvent
}

func (p *recordingPublisher) PublishBooking(_ context.Context, e *model.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bookings = append(p.bookings, e)
	return nil
}

func (p *recordingPublisher) PublishSport(context.Context, *model.SportEvent) error { return nil }
func (p *recordingPublisher) Close() error                                         { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.bookings {
		out = append(out, e.Type)
	}
	return out
}
