package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/target/timetracker/internal/core"
	"github.com/target/timetracker/internal/domain/model"
	apperrors "github.com/target/timetracker/internal/errors"
)

// EntryServiceOptions groups dependencies for EntryService.
type EntryServiceOptions struct {
	TimeEntries    core.TimeEntryRepository    // Required
	AbsenceEntries core.AbsenceEntryRepository // Required
	Logger         *slog.Logger                // Optional
}

// EntryService manages the time and absence entries of a user.
// Every call names the owning user; handlers pass either the session user or, for administrators, the target user.
type EntryService struct {
	times    core.TimeEntryRepository
	absences core.AbsenceEntryRepository
	logger   *slog.Logger
}

// NewEntryService constructs a new EntryService.
func NewEntryService(opts EntryServiceOptions) *EntryService {
	if opts.TimeEntries == nil {
		panic("TimeEntryRepository is required")
	}
	if opts.AbsenceEntries == nil {
		panic("AbsenceEntryRepository is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &EntryService{
		times:    opts.TimeEntries,
		absences: opts.AbsenceEntries,
		logger:   logger.With("component", "entry_service"),
	}
}

// Overview loads time and absence entries of userID concurrently and totals them.
func (s *EntryService) Overview(ctx context.Context, userID int64) (*model.EntryOverview, error) {
	var (
		times    []model.TimeEntry
		absences []model.AbsenceEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		times, err = s.times.ListByUser(gctx, userID)
		if err != nil {
			return fmt.Errorf("list time entries: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		absences, err = s.absences.ListByUser(gctx, userID)
		if err != nil {
			return fmt.Errorf("list absence entries: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &model.EntryOverview{
		TimeEntries:      times,
		AbsenceEntries:   absences,
		Time:             model.SummarizeTime(times),
		TotalAbsenceDays: len(absences),
	}, nil
}

// AddTimeEntry records a time entry for userID.
func (s *EntryService) AddTimeEntry(ctx context.Context, userID int64, e model.TimeEntry) (*model.TimeEntry, error) {
	if err := e.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	out, err := s.times.Create(ctx, userID, e)
	if err != nil {
		return nil, fmt.Errorf("add time entry: %w", err)
	}
	return out, nil
}

// EditTimeEntry updates a time entry of userID. The entry id and spent time are required.
func (s *EntryService) EditTimeEntry(ctx context.Context, userID int64, e model.TimeEntry) error {
	if err := e.ValidateForUpdate(); err != nil {
		return apperrors.Validation(err.Error())
	}
	ok, err := s.times.Update(ctx, userID, e)
	if err != nil {
		return fmt.Errorf("edit time entry: %w", err)
	}
	if !ok {
		return apperrors.NotFound("time entry not found")
	}
	return nil
}

// DeleteTimeEntry removes a time entry of userID.
func (s *EntryService) DeleteTimeEntry(ctx context.Context, userID, id int64) error {
	ok, err := s.times.Delete(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("delete time entry: %w", err)
	}
	if !ok {
		return apperrors.NotFound("time entry not found")
	}
	return nil
}

// AddAbsenceEntry records an absence for userID.
func (s *EntryService) AddAbsenceEntry(ctx context.Context, userID int64, e model.AbsenceEntry) (*model.AbsenceEntry, error) {
	if err := e.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	out, err := s.absences.Create(ctx, userID, e)
	if err != nil {
		return nil, fmt.Errorf("add absence entry: %w", err)
	}
	return out, nil
}

// EditAbsenceEntry updates an absence of userID. The entry id is required.
func (s *EntryService) EditAbsenceEntry(ctx context.Context, userID int64, e model.AbsenceEntry) error {
	if err := e.ValidateForUpdate(); err != nil {
		return apperrors.Validation(err.Error())
	}
	ok, err := s.absences.Update(ctx, userID, e)
	if err != nil {
		return fmt.Errorf("edit absence entry: %w", err)
	}
	if !ok {
		return apperrors.NotFound("absence entry not found")
	}
	return nil
}

// DeleteAbsenceEntry removes an absence of userID.
func (s *EntryService) DeleteAbsenceEntry(ctx context.Context, userID, id int64) error {
	ok, err := s.absences.Delete(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("delete absence entry: %w", err)
	}
	if !ok {
		return apperrors.NotFound("absence entry not found")
	}
	return nil
}
