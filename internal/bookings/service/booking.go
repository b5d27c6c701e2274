package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	bookingserrors "sportsclub/internal/bookings/errors"
	"sportsclub/internal/bookings/repository"
	"sportsclub/internal/bookings/validator"
	"sportsclub/internal/events"
	"sportsclub/internal/scheduling"
	"sportsclub/pkg/config"
	apperrors "sportsclub/pkg/errors"
	"sportsclub/pkg/model"
	"sportsclub/pkg/sanitizer"
	"sportsclub/pkg/whatsapp"

	"github.com/google/uuid"
)

const (
	lockAttempts    = 3
	lockBackoffBase = 50 * time.Millisecond
)

// SportCatalog resolves the sport a booking is for. Errors are AppErrors.
type SportCatalog interface {
	GetByID(ctx context.Context, id string) (*model.Sport, error)
	GetActiveByName(ctx context.Context, name string) (*model.Sport, error)
	ListActive(ctx context.Context) ([]*model.Sport, error)
}

// BookingSnapshot is the last booking list seen on the change feed.
type BookingSnapshot interface {
	Ready() bool
	Items() []*model.Booking
}

type PlanRequest struct {
	SportID   string
	Date      string
	StartTime string
	EndTime   string
}

type BookingService interface {
	Create(ctx context.Context, req *model.BookingRequest) (*model.Confirmation, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	DaySheet(ctx context.Context, date string, limit int, offset int64) (*model.DaySheet, error)
	Delete(ctx context.Context, id string) error
	Plan(ctx context.Context, req PlanRequest) (*scheduling.Plan, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.BookingLockRepository
	sports    SportCatalog
	snapshot  BookingSnapshot
	publisher events.Publisher
	validator *validator.BookingValidator
	hours     scheduling.OperatingHours
	horizon   scheduling.Horizon
	cfg       *config.Config
	now       func() time.Time
	sleep     func(time.Duration)
}

// NewBookingService wires the lifecycle. snapshot may be nil, in which case
// only the transactional conflict check runs.
func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	sports SportCatalog,
	snapshot BookingSnapshot,
	publisher events.Publisher,
	validator *validator.BookingValidator,
	cfg *config.Config,
) BookingService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		sports:    sports,
		snapshot:  snapshot,
		publisher: publisher,
		validator: validator,
		hours:     scheduling.DefaultHours,
		horizon:   scheduling.NewHorizon(cfg.VenueLocation, cfg.BookingHorizonDays),
		cfg:       cfg,
		now:       time.Now,
		sleep:     time.Sleep,
	}
}

func (s *bookingService) Create(ctx context.Context, req *model.BookingRequest) (*model.Confirmation, error) {
	a := newAttempt()

	booking, err := s.validate(ctx, req)
	if err != nil {
		return nil, a.reject(err)
	}
	if err := a.advance(model.AttemptValidated); err != nil {
		return nil, a.reject(apperrors.Internal("Booking attempt out of order", err))
	}

	if conflict := s.snapshotConflict(booking); conflict != nil {
		s.cfg.Log.Warn("Booking rejected by snapshot check",
			"sport", booking.Sport,
			"date", booking.Date,
			"start_time", booking.StartTime,
			"end_time", booking.EndTime,
			"conflicts_with", conflict.ID,
		)
		return nil, a.reject(slotTaken(conflict))
	}

	if err := a.advance(model.AttemptSubmitted); err != nil {
		return nil, a.reject(apperrors.Internal("Booking attempt out of order", err))
	}

	if err := s.persist(ctx, booking); err != nil {
		return nil, a.reject(err)
	}

	if err := a.advance(model.AttemptConfirmed); err != nil {
		return nil, a.reject(apperrors.Internal("Booking attempt out of order", err))
	}

	s.cfg.Log.Info("Booking confirmed",
		"id", booking.ID,
		"sport", booking.Sport,
		"date", booking.Date,
		"start_time", booking.StartTime,
		"end_time", booking.EndTime,
		"total_amount", booking.TotalAmount,
	)

	s.publishBooking(ctx, model.EventBookingConfirmed, booking)

	return &model.Confirmation{
		Booking:     booking,
		State:       a.state,
		WhatsAppURL: whatsapp.ConfirmationLink(s.cfg.AdminWhatsAppPhone, s.cfg.VenueName, booking),
	}, nil
}

// validate turns a request into a priced booking or a validation error.
func (s *bookingService) validate(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	s.sanitize(req)

	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return nil, validationError(err)
	}

	sport, err := s.resolveSport(ctx, req)
	if err != nil {
		return nil, err
	}

	date, err := scheduling.ParseDate(req.Date)
	if err != nil {
		return nil, fieldError("date", err.Error())
	}
	if !s.horizon.Contains(date) {
		return nil, fieldError("date", fmt.Sprintf("date must be between %s and %s",
			scheduling.FormatDate(s.horizon.Today()), scheduling.FormatDate(s.horizon.Last())))
	}
	if err := s.hours.CheckSlot(req.Date, req.StartTime, req.EndTime); err != nil {
		field := "end_time"
		if !slices.Contains(s.hours.StartSlots(date), req.StartTime) {
			field = "start_time"
		}
		return nil, fieldError(field, err.Error())
	}

	return &model.Booking{
		SportID:     sport.ID,
		Sport:       sport.Name,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		TotalAmount: scheduling.Price(req.StartTime, req.EndTime, sport.Price),
		PaymentMode: model.PaymentAtVenue,
		Customer:    req.Customer,
	}, nil
}

func (s *bookingService) resolveSport(ctx context.Context, req *model.BookingRequest) (*model.Sport, error) {
	var (
		sport *model.Sport
		err   error
	)
	if req.SportID != "" {
		sport, err = s.sports.GetByID(ctx, req.SportID)
	} else {
		sport, err = s.sports.GetActiveByName(ctx, req.Sport)
	}

	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeNotFound) {
			return nil, fieldError("sport", "sport is not available")
		}
		return nil, err
	}
	if !sport.IsActive {
		return nil, fieldError("sport", "sport is not available")
	}
	return sport, nil
}

func (s *bookingService) sanitize(req *model.BookingRequest) {
	req.Sport = sanitizer.NormalizeName(req.Sport)
	req.Customer.Name = sanitizer.NormalizeName(req.Customer.Name)
	if phone := sanitizer.NormalizePhone(req.Customer.Phone, s.cfg.PhoneRegion); phone != "" {
		req.Customer.Phone = phone
	}
}

func (s *bookingService) snapshotConflict(b *model.Booking) *model.Booking {
	if s.snapshot == nil || !s.snapshot.Ready() {
		return nil
	}
	return scheduling.FindConflict(b, s.snapshot.Items())
}

// persist holds the (sport, date) lock while a transaction re-checks for
// overlaps against the store and inserts the booking.
func (s *bookingService) persist(ctx context.Context, booking *model.Booking) error {
	lockID, owner, err := s.acquireSlotLock(ctx, booking.Sport, booking.Date)
	if err != nil {
		return err
	}
	defer s.releaseSlotLock(lockID, owner)

	err = s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindOverlapping(txCtx, booking.Sport, booking.Date, booking.StartTime, booking.EndTime)
		if err != nil {
			return apperrors.Store("Failed to check existing bookings", err)
		}
		if conflict := scheduling.FindConflict(booking, existing); conflict != nil {
			s.cfg.Log.Warn("Booking rejected by store check",
				"sport", booking.Sport,
				"date", booking.Date,
				"start_time", booking.StartTime,
				"end_time", booking.EndTime,
				"conflicts_with", conflict.ID,
			)
			return slotTaken(conflict)
		}
		if err := s.repo.Create(txCtx, booking); err != nil {
			return apperrors.Store("Failed to save booking", err)
		}
		return nil
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return err
		}
		s.cfg.Log.Error("Failed to create booking", "sport", booking.Sport, "date", booking.Date, "error", err)
		return apperrors.Store("Failed to save booking", err)
	}
	return nil
}

func lockID(sport, date string) string {
	return fmt.Sprintf("booking_lock_%s_%s", sanitizer.NameKey(sport), date)
}

// acquireSlotLock tries a few times with growing backoff. A lock past its
// expiry is reclaimed on the spot.
func (s *bookingService) acquireSlotLock(ctx context.Context, sport, date string) (string, string, error) {
	id := lockID(sport, date)
	owner := uuid.NewString()

	for i := 1; i <= lockAttempts; i++ {
		lock := &model.BookingLock{
			ID:        id,
			Owner:     owner,
			ExpiresAt: s.now().Add(s.cfg.BookingLockTTL),
		}

		err := s.lockRepo.Create(ctx, lock)
		if err == nil {
			return id, owner, nil
		}
		if !errors.Is(err, bookingserrors.ErrLockHeld) {
			s.cfg.Log.Error("Failed to acquire booking lock", "lock_id", id, "error", err)
			return "", "", apperrors.Store("Failed to acquire booking lock", err)
		}

		reclaimed, err := s.lockRepo.DeleteExpired(ctx, id, s.now())
		if err != nil {
			s.cfg.Log.Error("Failed to reclaim booking lock", "lock_id", id, "error", err)
			return "", "", apperrors.Store("Failed to acquire booking lock", err)
		}
		if reclaimed {
			s.cfg.Log.Warn("Reclaimed stale booking lock", "lock_id", id)
			continue
		}

		if i < lockAttempts {
			s.cfg.Log.Debug("Booking lock busy, backing off", "lock_id", id, "attempt", i)
			s.sleep(lockBackoffBase * time.Duration(1<<(i-1)))
		}
		if ctx.Err() != nil {
			return "", "", apperrors.Store("Booking request cancelled", ctx.Err())
		}
	}

	s.cfg.Log.Warn("Booking lock still busy after retries", "lock_id", id, "attempts", lockAttempts)
	return "", "", apperrors.Store("This time slot is being booked by someone else. Please try again.", bookingserrors.ErrLockHeld)
}

// releaseSlotLock runs detached from the request so a cancelled request
// still frees the slot.
func (s *bookingService) releaseSlotLock(lockID, owner string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.WriteTimeout)
	defer cancel()

	if err := s.lockRepo.Delete(ctx, lockID, owner); err != nil {
		s.cfg.Log.Warn("Failed to release booking lock", "lock_id", lockID, "error", err)
	}
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Store("Failed to retrieve booking", err)
	}

	return booking, nil
}

// DaySheet lists one day for the admin. An empty date means today at the
// venue; any well-formed date may be inspected.
func (s *bookingService) DaySheet(ctx context.Context, date string, limit int, offset int64) (*model.DaySheet, error) {
	if date == "" {
		date = scheduling.FormatDate(s.horizon.Today())
	}
	if _, err := scheduling.ParseDate(date); err != nil {
		return nil, apperrors.InvalidInput("date must be in YYYY-MM-DD format")
	}

	var totals *repository.DayTotals
	var bookings []*model.Booking
	var errTotals, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		totals, errTotals = s.repo.TotalsByDate(ctx, date)
		if errTotals != nil {
			s.cfg.Log.Error("Failed to compute day totals", "date", date, "error", errTotals)
			errTotals = apperrors.Store("Failed to compute day totals", errTotals)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindByDate(ctx, date, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "date", date, "limit", limit, "offset", offset, "error", errFind)
			errFind = apperrors.Store("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errTotals != nil {
		return nil, errTotals
	}
	if errFind != nil {
		return nil, errFind
	}

	return &model.DaySheet{
		Date:          date,
		Bookings:      bookings,
		TotalBookings: totals.Count,
		Revenue:       totals.Revenue,
		Visitors:      totals.Visitors,
		Limit:         limit,
		Offset:        offset,
	}, nil
}

// Delete is idempotent: a booking that is already gone is logged and
// treated as deleted.
func (s *bookingService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	switch {
	case errors.Is(err, bookingserrors.ErrNotFound):
		s.cfg.Log.Info("Booking already deleted", "id", id)
		return nil
	case errors.Is(err, bookingserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid booking ID format")
	case err != nil:
		return apperrors.Store("Failed to retrieve booking", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			s.cfg.Log.Info("Booking already deleted", "id", id)
			return nil
		}
		s.cfg.Log.Error("Failed to delete booking", "id", id, "error", err)
		return apperrors.Store("Failed to delete booking", err)
	}

	s.cfg.Log.Info("Booking deleted", "id", id, "sport", booking.Sport, "date", booking.Date)
	s.publishBooking(ctx, model.EventBookingDeleted, booking)
	return nil
}

// Plan derives the booking form for a selection. Without a sport id the first
// active sport is used.
func (s *bookingService) Plan(ctx context.Context, req PlanRequest) (*scheduling.Plan, error) {
	rate := 0
	if req.SportID != "" {
		sport, err := s.sports.GetByID(ctx, req.SportID)
		if err != nil {
			return nil, err
		}
		if sport.IsActive {
			rate = sport.Price
		}
	} else {
		active, err := s.sports.ListActive(ctx)
		if err != nil {
			return nil, err
		}
		if len(active) > 0 {
			rate = active[0].Price
		}
	}

	plan, err := s.hours.Plan(s.horizon, scheduling.Selection{
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Rate:      rate,
	})
	if err != nil {
		return nil, fieldError("date", err.Error())
	}
	return plan, nil
}

func (s *bookingService) publishBooking(ctx context.Context, eventType string, b *model.Booking) {
	if err := s.publisher.PublishBooking(ctx, model.NewBookingEvent(eventType, b, s.now())); err != nil {
		s.cfg.Log.Error("Failed to publish booking event", "type", eventType, "id", b.ID, "error", err)
	}
}

func slotTaken(existing *model.Booking) error {
	return apperrors.Conflict("This slot is already booked. Please choose another time.").
		WithDetails(map[string]any{
			"sport":      existing.Sport,
			"date":       existing.Date,
			"start_time": existing.StartTime,
			"end_time":   existing.EndTime,
		})
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation("Booking validation failed", map[string]any{"errors": verrs})
	}
	return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
}

func fieldError(field, message string) error {
	return validationError(validator.ValidationErrors{{Field: field, Message: message}})
}
