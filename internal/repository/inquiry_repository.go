package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/casacomune/community-api/internal/database/postgres"
	"github.com/casacomune/community-api/internal/models"
)

// InquiryRepository handles inquiry data access
type InquiryRepository struct {
	client *postgres.Client
}

// NewInquiryRepository creates a new inquiry repository backed by the pool
func NewInquiryRepository(pool *pgxpool.Pool) *InquiryRepository {
	return &InquiryRepository{
		client: postgres.NewClient(pool),
	}
}

// Create stores a sanitized inquiry and returns its reference ID.
// Callers must never pass the raw submission here.
func (r *InquiryRepository) Create(ctx context.Context, inq *models.Inquiry) (uuid.UUID, error) {
	return r.client.CreateInquiry(ctx, inq)
}

// List returns stored inquiries, optionally filtered by status
func (r *InquiryRepository) List(ctx context.Context, status models.InquiryStatus, limit, offset int) ([]*models.InquiryRow, error) {
	return r.client.ListInquiries(ctx, status, limit, offset)
}

// UpdateStatus updates the status of an inquiry
func (r *InquiryRepository) UpdateStatus(ctx context.Context, referenceID uuid.UUID, status models.InquiryStatus) error {
	return r.client.UpdateInquiryStatus(ctx, referenceID, status)
}
