package service

import (
	"context"
	"errors"
	"time"

	bookingserrors "registrar/internal/bookings/errors"
	"registrar/internal/bookings/events"
	"registrar/internal/bookings/repository"
	"registrar/internal/bookings/validator"
	"registrar/pkg/config"
	apperrors "registrar/pkg/errors"
	"registrar/pkg/middleware"
	"registrar/pkg/model"
	"registrar/pkg/sanitizer"
)

const publishTimeout = 2 * time.Second

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	List(ctx context.Context, state string) ([]*model.Booking, error)
	BookedDates(ctx context.Context, state string) ([]string, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	return &bookingService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Create accepts booking when neither its (state, date) nor its
// (state, churchName) pair is taken. The two lookups give the common case a
// precise answer without a write; the unique indexes behind repo.Create are
// what actually hold the invariants when submissions race.
func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	booking.ID = ""
	s.sanitize(booking)
	if err := s.validate(booking); err != nil {
		return err
	}

	taken, err := s.repo.ExistsByStateAndDate(ctx, booking.State, booking.Date)
	if err != nil {
		s.cfg.Log.Error("Failed to check date availability",
			"state", booking.State,
			"date", booking.Date.String(),
			"error", err,
		)
		return apperrors.Internal(bookingserrors.MsgSaveFailed, err)
	}
	if taken {
		return s.conflict(booking, bookingserrors.ErrDateConflict)
	}

	taken, err = s.repo.ExistsByStateAndChurch(ctx, booking.State, booking.ChurchName)
	if err != nil {
		s.cfg.Log.Error("Failed to check church availability",
			"state", booking.State,
			"church_name", booking.ChurchName,
			"error", err,
		)
		return apperrors.Internal(bookingserrors.MsgSaveFailed, err)
	}
	if taken {
		return s.conflict(booking, bookingserrors.ErrChurchConflict)
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		if errors.Is(err, bookingserrors.ErrDateConflict) || errors.Is(err, bookingserrors.ErrChurchConflict) {
			return s.conflict(booking, err)
		}
		s.cfg.Log.Error("Failed to save booking", "state", booking.State, "error", err)
		return apperrors.Internal(bookingserrors.MsgSaveFailed, err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"state", booking.State,
		"date", booking.Date.String(),
		"church_name", booking.ChurchName,
	)
	s.publishCreated(ctx, booking)
	return nil
}

// List filters on state unless it is empty. A state that is only whitespace
// can match nothing, since stored states are trimmed.
func (s *bookingService) List(ctx context.Context, state string) ([]*model.Booking, error) {
	if state != "" {
		state = sanitizer.NormalizeState(state)
		if state == "" {
			return []*model.Booking{}, nil
		}
	}

	bookings, err := s.repo.FindAll(ctx, state)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "state", state, "error", err)
		return nil, apperrors.Internal(bookingserrors.MsgFetchFailed, err)
	}
	if bookings == nil {
		bookings = []*model.Booking{}
	}

	s.cfg.Log.Debug("Bookings listed", "state", state, "count", len(bookings))
	return bookings, nil
}

func (s *bookingService) BookedDates(ctx context.Context, state string) ([]string, error) {
	state = sanitizer.NormalizeState(state)
	if state == "" {
		return nil, apperrors.InvalidInput("State is required")
	}

	dates, err := s.repo.FindDatesByState(ctx, state)
	if err != nil {
		s.cfg.Log.Error("Failed to fetch booked dates", "state", state, "error", err)
		return nil, apperrors.Internal(bookingserrors.MsgFetchDatesFailed, err)
	}

	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.String())
	}
	return out, nil
}

// --- Helpers ---

func (s *bookingService) sanitize(b *model.Booking) {
	b.PersonName = sanitizer.NormalizeName(b.PersonName)
	b.ChurchName = sanitizer.NormalizeName(b.ChurchName)
	b.State = sanitizer.NormalizeState(b.State)
	b.Mobile = sanitizer.NormalizeMobile(b.Mobile, s.cfg.DefaultPhoneRegion)
	b.Email = sanitizer.NormalizeEmail(b.Email)
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return apperrors.Validation(bookingserrors.MsgValidationFailed, verrs.Details())
		}
		return apperrors.Validation(bookingserrors.MsgValidationFailed, map[string]any{"error": err.Error()})
	}
	return nil
}

func (s *bookingService) conflict(booking *model.Booking, reason error) error {
	s.cfg.Log.Info("Booking rejected",
		"state", booking.State,
		"date", booking.Date.String(),
		"church_name", booking.ChurchName,
		"reason", reason.Error(),
	)
	if errors.Is(reason, bookingserrors.ErrChurchConflict) {
		return apperrors.Conflict(apperrors.CodeChurchConflict, bookingserrors.MsgChurchConflict)
	}
	return apperrors.Conflict(apperrors.CodeDateConflict, bookingserrors.MsgDateConflict)
}

// publishCreated never fails the request: the booking is already stored.
func (s *bookingService) publishCreated(ctx context.Context, booking *model.Booking) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.publisher.BookingCreated(ctx, booking, middleware.RequestIDFromContext(ctx)); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event", "id", booking.ID, "error", err)
	}
}
