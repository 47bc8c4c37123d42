package shift

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/cmlabs-hris/rota-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/rota-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/rota-backend-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type shiftServiceImpl struct {
	db        *database.DB
	shiftRepo shift.ShiftRepository
}

func companyIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}

	return companyID, nil
}

// CreateShift implements shift.ShiftService.
func (s *shiftServiceImpl) CreateShift(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	startTime, _ := validator.IsValidTime(req.StartTime)
	endTime, _ := validator.IsValidTime(req.EndTime)

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	created, err := s.shiftRepo.Create(ctx, shift.Shift{
		ID:        uuid.NewString(),
		CompanyID: companyID,
		Name:      req.Name,
		StartTime: startTime,
		EndTime:   endTime,
		Color:     req.Color,
		IsActive:  isActive,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return shift.ShiftResponse{}, shift.ErrShiftNameExists
		}
		return shift.ShiftResponse{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return s.mapShiftToResponse(created), nil
}

// GetShift implements shift.ShiftService.
func (s *shiftServiceImpl) GetShift(ctx context.Context, id string) (shift.ShiftResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	found, err := s.shiftRepo.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftResponse{}, shift.ErrShiftNotFound
		}
		return shift.ShiftResponse{}, fmt.Errorf("failed to get shift: %w", err)
	}

	return s.mapShiftToResponse(found), nil
}

// ListShifts implements shift.ShiftService.
func (s *shiftServiceImpl) ListShifts(ctx context.Context, filter shift.ShiftFilter) (shift.ListShiftResponse, error) {
	if err := filter.Validate(); err != nil {
		return shift.ListShiftResponse{}, err
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return shift.ListShiftResponse{}, err
	}

	shifts, total, err := s.shiftRepo.GetByCompanyID(ctx, companyID, filter)
	if err != nil {
		return shift.ListShiftResponse{}, fmt.Errorf("failed to list shifts: %w", err)
	}

	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		responses = append(responses, s.mapShiftToResponse(sh))
	}

	totalPages := 1
	if !filter.All && filter.Limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(filter.Limit)))
	}

	return shift.ListShiftResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Shifts:     responses,
	}, nil
}

// UpdateShift implements shift.ShiftService.
func (s *shiftServiceImpl) UpdateShift(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	req.CompanyID = companyID

	updated, err := s.shiftRepo.Update(ctx, req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftResponse{}, shift.ErrShiftNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return shift.ShiftResponse{}, shift.ErrShiftNameExists
		}
		return shift.ShiftResponse{}, fmt.Errorf("failed to update shift: %w", err)
	}

	return s.mapShiftToResponse(updated), nil
}

// DeleteShift implements shift.ShiftService.
func (s *shiftServiceImpl) DeleteShift(ctx context.Context, id string) error {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return err
	}

	if err := s.shiftRepo.SoftDelete(ctx, id, companyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ErrShiftAlreadyDeleted
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return shift.ErrShiftInUse
		}
		return fmt.Errorf("failed to delete shift: %w", err)
	}

	return nil
}

// SetDefaultShift implements shift.ShiftService.
func (s *shiftServiceImpl) SetDefaultShift(ctx context.Context, id string) error {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return err
	}

	found, err := s.shiftRepo.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ErrShiftNotFound
		}
		return fmt.Errorf("failed to get shift: %w", err)
	}
	if !found.IsActive {
		return shift.ErrShiftInactive
	}

	if err := s.shiftRepo.SetDefault(ctx, id, companyID); err != nil {
		return fmt.Errorf("failed to set default shift: %w", err)
	}

	return nil
}

func (s *shiftServiceImpl) mapShiftToResponse(sh shift.Shift) shift.ShiftResponse {
	return shift.ShiftResponse{
		ID:        sh.ID,
		CompanyID: sh.CompanyID,
		Name:      sh.Name,
		StartTime: sh.StartTime.Format("15:04"),
		EndTime:   sh.EndTime.Format("15:04"),
		Color:     sh.Color,
		IsDefault: sh.IsDefault,
		IsActive:  sh.IsActive,
		CreatedAt: sh.CreatedAt.Format(time.RFC3339),
		UpdatedAt: sh.UpdatedAt.Format(time.RFC3339),
	}
}

func NewShiftService(
	db *database.DB,
	shiftRepo shift.ShiftRepository,
) shift.ShiftService {
	return &shiftServiceImpl{
		db:        db,
		shiftRepo: shiftRepo,
	}
}
