package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/casacomune/community-api/internal/models"
)

// InquiryRepositoryInterface defines the storage collaborator contract.
// Only sanitized inquiries are ever passed to Create.
type InquiryRepositoryInterface interface {
	Create(ctx context.Context, inq *models.Inquiry) (uuid.UUID, error)
	List(ctx context.Context, status models.InquiryStatus, limit, offset int) ([]*models.InquiryRow, error)
	UpdateStatus(ctx context.Context, referenceID uuid.UUID, status models.InquiryStatus) error
}

// NotifierInterface defines the notification collaborator contract.
// Failures are logged and swallowed; they never reach the client.
type NotifierInterface interface {
	Send(ctx context.Context, to, subject, textBody string) error
}

// ContactServiceInterface defines the contact service contract for handlers
type ContactServiceInterface interface {
	SubmitContactForm(ctx context.Context, sub *models.ContactSubmission) (*models.ContactResponse, error)
}

// InquiryAdminServiceInterface defines the admin inquiry service contract
type InquiryAdminServiceInterface interface {
	ListInquiries(ctx context.Context, status string, limit, offset int) ([]*models.InquiryRow, error)
	UpdateStatus(ctx context.Context, referenceID, status string) error
}
