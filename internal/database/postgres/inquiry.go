package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/casacomune/community-api/internal/models"
	apperrors "github.com/casacomune/community-api/pkg/errors"
	"github.com/casacomune/community-api/pkg/logger"
	"github.com/casacomune/community-api/pkg/metrics"
)

// CreateInquiry stores a sanitized inquiry and returns its reference ID
func (c *Client) CreateInquiry(ctx context.Context, inq *models.Inquiry) (uuid.UUID, error) {
	if c.pool == nil {
		return uuid.Nil, apperrors.InternalError("database is not configured")
	}

	start := time.Now()
	operation := "createInquiry"

	referenceID := uuid.New()

	query := `
		INSERT INTO inquiries (reference_id, name, email, phone, subject, message, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := c.pool.Exec(ctx, query,
		referenceID,
		inq.Name,
		inq.Email,
		nilIfEmpty(inq.Phone),
		inq.Subject,
		inq.Message,
		models.InquiryStatusNew,
	)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return uuid.Nil, fmt.Errorf("failed to create inquiry: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration)

	return referenceID, nil
}

// ListInquiries returns stored inquiries, optionally filtered by status,
// newest first
func (c *Client) ListInquiries(ctx context.Context, status models.InquiryStatus, limit, offset int) ([]*models.InquiryRow, error) {
	if c.pool == nil {
		return nil, apperrors.InternalError("database is not configured")
	}

	start := time.Now()
	operation := "listInquiries"

	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT id, reference_id, name, email, phone, subject, message, status, created_at, updated_at
		FROM inquiries
	`
	args := []any{}
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT %d OFFSET %d", limit, offset)

	rows, err := c.pool.Query(ctx, query, args...)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		return nil, fmt.Errorf("failed to query inquiries: %w", err)
	}
	defer rows.Close()

	inquiries := make([]*models.InquiryRow, 0)
	for rows.Next() {
		row, err := scanInquiry(rows)
		if err != nil {
			duration := metrics.MeasureDuration(start)
			recordMetrics(operation, "error", duration)
			return nil, err
		}
		inquiries = append(inquiries, row)
	}

	duration := metrics.MeasureDuration(start)
	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int("count", len(inquiries)))

	return inquiries, nil
}

// UpdateInquiryStatus updates the status of an inquiry by reference ID
func (c *Client) UpdateInquiryStatus(ctx context.Context, referenceID uuid.UUID, status models.InquiryStatus) error {
	if c.pool == nil {
		return apperrors.InternalError("database is not configured")
	}

	start := time.Now()
	operation := "updateInquiryStatus"

	query := `
		UPDATE inquiries
		SET status = $1, updated_at = NOW()
		WHERE reference_id = $2
	`

	result, err := c.pool.Exec(ctx, query, status, referenceID)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to update inquiry status: %w", err)
	}

	if result.RowsAffected() == 0 {
		recordMetrics(operation, "not_found", duration)
		return apperrors.NotFoundError(fmt.Sprintf("inquiry %s", referenceID))
	}

	recordMetrics(operation, "success", duration)
	return nil
}

func scanInquiry(rows pgx.Rows) (*models.InquiryRow, error) {
	var row models.InquiryRow
	var phone *string

	err := rows.Scan(
		&row.ID,
		&row.ReferenceID,
		&row.Name,
		&row.Email,
		&phone,
		&row.Subject,
		&row.Message,
		&row.Status,
		&row.CreatedAt,
		&row.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan inquiry: %w", err)
	}

	if phone != nil {
		row.Phone = *phone
	}

	return &row, nil
}
