package service

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"sportsclub/internal/events"
	sportserrors "sportsclub/internal/sports/errors"
	"sportsclub/internal/sports/repository"
	"sportsclub/internal/sports/validator"
	"sportsclub/pkg/config"
	apperrors "sportsclub/pkg/errors"
	"sportsclub/pkg/model"
	"sportsclub/pkg/sanitizer"
)

// SportSnapshot is the last sport list seen on the change feed.
type SportSnapshot interface {
	Ready() bool
	Items() []*model.Sport
}

// BookingCounter reports how many bookings still name a sport.
type BookingCounter interface {
	CountBySport(ctx context.Context, sport string) (int64, error)
}

type SportService interface {
	Create(ctx context.Context, req *model.SportCreate) (*model.Sport, error)
	GetByID(ctx context.Context, id string) (*model.Sport, error)
	GetActiveByName(ctx context.Context, name string) (*model.Sport, error)
	ListActive(ctx context.Context) ([]*model.Sport, error)
	ListAll(ctx context.Context) ([]*model.Sport, error)
	Update(ctx context.Context, id string, update *model.SportUpdate) (*model.Sport, error)
	Toggle(ctx context.Context, id string) (*model.Sport, error)
	Delete(ctx context.Context, id string) error
}

type sportService struct {
	repo      repository.SportRepository
	bookings  BookingCounter
	snapshot  SportSnapshot
	publisher events.Publisher
	validator *validator.SportValidator
	cfg       *config.Config
	now       func() time.Time
}

// NewSportService wires sport administration. snapshot and bookings may be
// nil; reads then go to the store and deletes skip the orphan count.
func NewSportService(
	repo repository.SportRepository,
	bookings BookingCounter,
	snapshot SportSnapshot,
	publisher events.Publisher,
	validator *validator.SportValidator,
	cfg *config.Config,
) SportService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &sportService{
		repo:      repo,
		bookings:  bookings,
		snapshot:  snapshot,
		publisher: publisher,
		validator: validator,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Create adds an active sport. A missing price falls back to the default.
func (s *sportService) Create(ctx context.Context, req *model.SportCreate) (*model.Sport, error) {
	req.Name = sanitizer.NormalizeName(req.Name)
	if req.Price == 0 {
		req.Price = model.DefaultSportPrice
	}

	if err := s.validator.ValidateCreate(req); err != nil {
		s.cfg.Log.Warn("Sport validation failed", "name", req.Name, "error", err)
		return nil, validationError(err)
	}

	sport := &model.Sport{
		Name:     req.Name,
		NameKey:  sanitizer.NameKey(req.Name),
		Price:    req.Price,
		IsActive: true,
	}

	err := s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		if err := s.ensureNameFree(txCtx, sport.NameKey, ""); err != nil {
			return err
		}
		return s.repo.Create(txCtx, sport)
	})
	if err != nil {
		return nil, s.writeError("create", sport.Name, err)
	}

	s.cfg.Log.Info("Sport created", "id", sport.ID, "name", sport.Name, "price", sport.Price)
	s.publishSport(ctx, model.EventSportCreated, sport)
	return sport, nil
}

func (s *sportService) GetByID(ctx context.Context, id string) (*model.Sport, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Sport ID cannot be empty")
	}

	sport, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, readError(id, err)
	}
	return sport, nil
}

func (s *sportService) GetActiveByName(ctx context.Context, name string) (*model.Sport, error) {
	key := sanitizer.NameKey(name)
	if key == "" {
		return nil, apperrors.InvalidInput("Sport name cannot be empty")
	}

	if s.snapshotReady() {
		for _, sport := range s.snapshot.Items() {
			if sport.IsActive && sport.NameKey == key {
				return sport, nil
			}
		}
		return nil, apperrors.NotFound("Sport")
	}

	sport, err := s.repo.FindActiveByNameKey(ctx, key)
	if err != nil {
		if errors.Is(err, sportserrors.ErrNotFound) {
			return nil, apperrors.NotFound("Sport")
		}
		return nil, apperrors.Store("Failed to retrieve sport", err)
	}
	return sport, nil
}

// ListActive serves the public sport list from the feed snapshot once it has
// loaded, and from the store before that.
func (s *sportService) ListActive(ctx context.Context) ([]*model.Sport, error) {
	if s.snapshotReady() {
		active := []*model.Sport{}
		for _, sport := range s.snapshot.Items() {
			if sport.IsActive {
				active = append(active, sport)
			}
		}
		slices.SortFunc(active, func(a, b *model.Sport) int {
			return strings.Compare(a.Name, b.Name)
		})
		return active, nil
	}

	sports, err := s.repo.FindActive(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list active sports", "error", err)
		return nil, apperrors.Store("Failed to retrieve sports", err)
	}
	return sports, nil
}

func (s *sportService) ListAll(ctx context.Context) ([]*model.Sport, error) {
	sports, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list sports", "error", err)
		return nil, apperrors.Store("Failed to retrieve sports", err)
	}
	return sports, nil
}

func (s *sportService) Update(ctx context.Context, id string, update *model.SportUpdate) (*model.Sport, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Sport ID cannot be empty")
	}
	if err := s.validator.ValidateUpdate(update); err != nil {
		s.cfg.Log.Warn("Sport validation failed", "id", id, "error", err)
		return nil, validationError(err)
	}

	return s.mutate(ctx, id, func(sport *model.Sport) {
		if update.Price != nil {
			sport.Price = *update.Price
		}
		if update.IsActive != nil {
			sport.IsActive = *update.IsActive
		}
	})
}

func (s *sportService) Toggle(ctx context.Context, id string) (*model.Sport, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Sport ID cannot be empty")
	}

	return s.mutate(ctx, id, func(sport *model.Sport) {
		sport.IsActive = !sport.IsActive
	})
}

// mutate reads, changes and writes a sport in one transaction. Turning a
// sport on re-checks that no other active sport shares its name.
func (s *sportService) mutate(ctx context.Context, id string, change func(*model.Sport)) (*model.Sport, error) {
	var updated *model.Sport

	err := s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		sport, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return readError(id, err)
		}

		wasActive := sport.IsActive
		change(sport)

		if sport.IsActive && !wasActive {
			if err := s.ensureNameFree(txCtx, sport.NameKey, sport.ID); err != nil {
				return err
			}
		}

		if err := s.repo.Update(txCtx, id, sport.Price, sport.IsActive); err != nil {
			return err
		}
		updated = sport
		return nil
	})
	if err != nil {
		return nil, s.writeError("update", id, err)
	}

	s.cfg.Log.Info("Sport updated", "id", updated.ID, "name", updated.Name, "price", updated.Price, "is_active", updated.IsActive)
	s.publishSport(ctx, model.EventSportUpdated, updated)
	return updated, nil
}

// Delete removes a sport. Bookings that still name it are kept and counted in
// the log. Deleting a missing sport is a no-op.
func (s *sportService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Sport ID cannot be empty")
	}

	sport, err := s.repo.FindByID(ctx, id)
	switch {
	case errors.Is(err, sportserrors.ErrNotFound):
		s.cfg.Log.Info("Sport already deleted", "id", id)
		return nil
	case err != nil:
		return readError(id, err)
	}

	if s.bookings != nil {
		count, err := s.bookings.CountBySport(ctx, sport.Name)
		if err != nil {
			s.cfg.Log.Warn("Failed to count bookings for sport", "id", id, "name", sport.Name, "error", err)
		} else if count > 0 {
			s.cfg.Log.Warn("Deleting sport that still has bookings", "id", id, "name", sport.Name, "bookings", count)
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sportserrors.ErrNotFound) {
			s.cfg.Log.Info("Sport already deleted", "id", id)
			return nil
		}
		s.cfg.Log.Error("Failed to delete sport", "id", id, "error", err)
		return apperrors.Store("Failed to delete sport", err)
	}

	s.cfg.Log.Info("Sport deleted", "id", id, "name", sport.Name)
	s.publishSport(ctx, model.EventSportDeleted, sport)
	return nil
}

func (s *sportService) ensureNameFree(ctx context.Context, nameKey, selfID string) error {
	existing, err := s.repo.FindActiveByNameKey(ctx, nameKey)
	switch {
	case errors.Is(err, sportserrors.ErrNotFound):
		return nil
	case err != nil:
		return apperrors.Store("Failed to check sport name", err)
	case existing.ID == selfID:
		return nil
	}
	return duplicateName(existing.Name)
}

func (s *sportService) snapshotReady() bool {
	return s.snapshot != nil && s.snapshot.Ready()
}

func (s *sportService) writeError(op, ref string, err error) error {
	if errors.Is(err, sportserrors.ErrDuplicateName) {
		return duplicateName(ref)
	}
	if apperrors.IsAppError(err) {
		return err
	}
	s.cfg.Log.Error("Failed to "+op+" sport", "ref", ref, "error", err)
	return apperrors.Store("Failed to "+op+" sport", err)
}

func (s *sportService) publishSport(ctx context.Context, eventType string, sport *model.Sport) {
	if err := s.publisher.PublishSport(ctx, model.NewSportEvent(eventType, sport, s.now())); err != nil {
		s.cfg.Log.Error("Failed to publish sport event", "type", eventType, "id", sport.ID, "error", err)
	}
}

func readError(id string, err error) error {
	switch {
	case errors.Is(err, sportserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Sport", id)
	case errors.Is(err, sportserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid sport ID format")
	}
	return apperrors.Store("Failed to retrieve sport", err)
}

func duplicateName(name string) error {
	return apperrors.Conflict("An active sport with this name already exists").
		WithDetails(map[string]any{"name": name})
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation("Sport validation failed", map[string]any{"errors": verrs})
	}
	return apperrors.Validation("Sport validation failed", map[string]any{"error": err.Error()})
}
