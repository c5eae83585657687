package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/casacomune/community-api/config"
	"github.com/casacomune/community-api/internal/models"
	"github.com/casacomune/community-api/internal/sanitize"
	"github.com/casacomune/community-api/internal/validation"
	"github.com/casacomune/community-api/pkg/httpclient"
	"github.com/casacomune/community-api/pkg/logger"
	"github.com/casacomune/community-api/pkg/metrics"
	"github.com/casacomune/community-api/pkg/trigger"
)

// ContactService runs the admission pipeline for contact form
// submissions: honeypot check, whitelist validation, sanitization,
// storage, then best-effort notification.
type ContactService struct {
	inquiryRepo InquiryRepositoryInterface
	notifier    NotifierInterface
	config      *config.Config
	httpClient  httpclient.Client
}

// NewContactService creates a new contact service instance. notifier
// may be nil when mail delivery is not configured.
func NewContactService(
	inquiryRepo InquiryRepositoryInterface,
	notifier NotifierInterface,
	cfg *config.Config,
	httpClient httpclient.Client,
) *ContactService {
	return &ContactService{
		inquiryRepo: inquiryRepo,
		notifier:    notifier,
		config:      cfg,
		httpClient:  httpClient,
	}
}

// SubmitContactForm processes one submission. Validation failure is
// reported in the response, not as an error; a non-nil error means the
// submission could not be durably stored.
func (s *ContactService) SubmitContactForm(ctx context.Context, sub *models.ContactSubmission) (*models.ContactResponse, error) {
	// Honeypot: any non-empty decoy value marks bot traffic. Respond
	// exactly as the accepted path does, with no storage or
	// notification side effect, so bots cannot detect the trap.
	if sub.Website != "" {
		metrics.ContactSubmissions.WithLabelValues("honeypot").Inc()
		logger.Info("Honeypot triggered, dropping submission")
		return acceptedResponse(), nil
	}

	result := validation.ValidateContact(sub)
	if !result.Valid {
		metrics.ContactSubmissions.WithLabelValues("validation_failed").Inc()
		return &models.ContactResponse{
			Success: false,
			Error:   "Validation failed",
			Errors:  result.Errors,
		}, nil
	}

	// Only the sanitized copy goes anywhere; the raw submission is
	// dropped when this request ends
	inquiry := &models.Inquiry{
		Name:    sanitize.StripTags(sub.Name),
		Email:   sanitize.NormalizeEmail(sub.Email),
		Phone:   sanitize.StripTags(sub.Phone),
		Subject: sub.Subject,
		Message: sanitize.StripTags(sub.Message),
	}

	referenceID, err := s.inquiryRepo.Create(ctx, inquiry)
	if err != nil {
		metrics.ContactSubmissions.WithLabelValues("error").Inc()
		logger.Error("Failed to store inquiry", zap.Error(err))
		return nil, err
	}

	// Post-storage collaborators are async and best-effort; the client
	// response does not wait on them
	s.notifyAdmin(referenceID, inquiry)
	trigger.CallAsync(s.config.EventTriggers.InquiryCreatedTriggerURL, referenceID.String(), s.httpClient)

	metrics.ContactSubmissions.WithLabelValues("accepted").Inc()
	return acceptedResponse(), nil
}

// acceptedResponse is the single success body. The honeypot path must
// return a byte-identical response, so both paths share it.
func acceptedResponse() *models.ContactResponse {
	return &models.ContactResponse{
		Success: true,
		Message: "Thank you for reaching out. We will get back to you soon.",
	}
}

func (s *ContactService) notifyAdmin(referenceID uuid.UUID, inq *models.Inquiry) {
	if s.notifier == nil || s.config.Mail.AdminAddress == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		subject := fmt.Sprintf("New contact inquiry: %s", inq.Subject)
		body := fmt.Sprintf(
			"A new inquiry was submitted on the website.\n\n"+
				"Reference: %s\nName: %s\nEmail: %s\nPhone: %s\nSubject: %s\n\n%s\n",
			referenceID, inq.Name, inq.Email, inq.Phone, inq.Subject, inq.Message,
		)

		if err := s.notifier.Send(ctx, s.config.Mail.AdminAddress, subject, body); err != nil {
			// The inquiry is already stored; dropping the email is
			// recoverable by reading the admin list
			logger.Error("Failed to send admin notification",
				zap.Error(err),
				zap.String("reference_id", referenceID.String()))
		}
	}()
}
