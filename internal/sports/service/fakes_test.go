package service

import (
	"context"
	"sort"
	"sync"

	sportserrors "sportsclub/internal/sports/errors"
	mongotx "sportsclub/pkg/db/mongo"
	"sportsclub/pkg/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeSportRepo struct {
	mu     sync.Mutex
	sports map[string]*model.Sport
}

func newFakeSportRepo(seed ...*model.Sport) *fakeSportRepo {
	r := &fakeSportRepo{sports: map[string]*model.Sport{}}
	for _, s := range seed {
		cp := *s
		r.sports[s.ID] = &cp
	}
	return r
}

func (r *fakeSportRepo) Create(_ context.Context, s *model.Sport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.sports {
		if existing.IsActive && s.IsActive && existing.NameKey == s.NameKey {
			return sportserrors.ErrDuplicateName
		}
	}
	s.ID = primitive.NewObjectID().Hex()
	cp := *s
	r.sports[s.ID] = &cp
	return nil
}

func (r *fakeSportRepo) FindByID(_ context.Context, id string) (*model.Sport, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, sportserrors.ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sports[id]
	if !ok {
		return nil, sportserrors.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSportRepo) list(activeOnly bool) []*model.Sport {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*model.Sport{}
	for _, s := range r.sports {
		if activeOnly && !s.IsActive {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *fakeSportRepo) FindAll(context.Context) ([]*model.Sport, error) {
	return r.list(false), nil
}

func (r *fakeSportRepo) FindActive(context.Context) ([]*model.Sport, error) {
	return r.list(true), nil
}

func (r *fakeSportRepo) FindActiveByNameKey(_ context.Context, key string) (*model.Sport, error) {
	for _, s := range r.list(true) {
		if s.NameKey == key {
			return s, nil
		}
	}
	return nil, sportserrors.ErrNotFound
}

func (r *fakeSportRepo) Update(_ context.Context, id string, price int, isActive bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sports[id]
	if !ok {
		return sportserrors.ErrNotFound
	}
	s.Price = price
	s.IsActive = isActive
	return nil
}

func (r *fakeSportRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sports[id]; !ok {
		return sportserrors.ErrNotFound
	}
	delete(r.sports, id)
	return nil
}

func (r *fakeSportRepo) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(ctx)
}

type fakeCounter struct {
	counts map[string]int64
}

func (c *fakeCounter) CountBySport(_ context.Context, sport string) (int64, error) {
	return c.counts[sport], nil
}

type fakeSnapshot struct {
	items []*model.Sport
}

func (f *fakeSnapshot) Ready() bool           { return f.items != nil }
func (f *fakeSnapshot) Items() []*model.Sport { return f.items }

type recordingPublisher struct {
	mu     sync.Mutex
	sports []*model.SportEvent
}

func (p *recordingPublisher) PublishBooking(context.Context, *model.BookingEvent) error { return nil }

func (p *recordingPublisher) PublishSport(_ context.Context, e *model.SportEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sports = append(p.sports, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.sports {
		out = append(out, e.Type)
	}
	return out
}
