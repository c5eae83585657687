package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/casacomune/community-api/internal/models"
	apperrors "github.com/casacomune/community-api/pkg/errors"
)

// InquiryAdminService exposes stored inquiries to the admin API
type InquiryAdminService struct {
	inquiryRepo InquiryRepositoryInterface
}

// NewInquiryAdminService creates a new admin inquiry service
func NewInquiryAdminService(inquiryRepo InquiryRepositoryInterface) *InquiryAdminService {
	return &InquiryAdminService{inquiryRepo: inquiryRepo}
}

// ListInquiries returns stored inquiries, optionally filtered by status
func (s *InquiryAdminService) ListInquiries(ctx context.Context, status string, limit, offset int) ([]*models.InquiryRow, error) {
	st, err := parseStatus(status)
	if err != nil {
		return nil, err
	}
	return s.inquiryRepo.List(ctx, st, limit, offset)
}

// UpdateStatus moves an inquiry to a new lifecycle status
func (s *InquiryAdminService) UpdateStatus(ctx context.Context, referenceID, status string) error {
	id, err := uuid.Parse(referenceID)
	if err != nil {
		return apperrors.InvalidInputError("referenceId", "must be a valid UUID")
	}

	st, err := parseStatus(status)
	if err != nil {
		return err
	}
	if st == "" {
		return apperrors.InvalidInputError("status", "is required")
	}

	return s.inquiryRepo.UpdateStatus(ctx, id, st)
}

func parseStatus(status string) (models.InquiryStatus, error) {
	switch models.InquiryStatus(status) {
	case "", models.InquiryStatusNew, models.InquiryStatusRead, models.InquiryStatusArchived:
		return models.InquiryStatus(status), nil
	default:
		return "", apperrors.InvalidInputError("status", fmt.Sprintf("%q is not a valid status", status))
	}
}
