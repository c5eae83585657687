package models

import (
	"time"

	"github.com/google/uuid"
)

// Inquiry subjects form a closed enumeration; anything else is rejected.
const (
	SubjectInfo        = "info"
	SubjectVisit       = "visit"
	SubjectPartnership = "partnership"
	SubjectOther       = "other"
)

// InquiryStatus represents the lifecycle state of a stored inquiry
type InquiryStatus string

const (
	InquiryStatusNew      InquiryStatus = "new"
	InquiryStatusRead     InquiryStatus = "read"
	InquiryStatusArchived InquiryStatus = "archived"
)

// ContactSubmission represents a contact form submission as received.
// No binding tags: validation runs inside the service, after the
// honeypot check, so a trapped bot still gets a success response.
type ContactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	// Website is a decoy field hidden from legitimate users via CSS.
	// Bots that autofill every input reveal themselves by filling it.
	Website string `json:"website"`
}

// ContactResponse represents the response after submitting the contact form
type ContactResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Error   string            `json:"error,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Inquiry is the sanitized copy of an accepted submission. Only this
// copy ever reaches storage and notification; the raw submission is
// discarded at the end of the request.
type Inquiry struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// InquiryRow represents a stored inquiry record
type InquiryRow struct {
	ID          int           `json:"id"`
	ReferenceID uuid.UUID     `json:"referenceId"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone,omitempty"`
	Subject     string        `json:"subject"`
	Message     string        `json:"message"`
	Status      InquiryStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}
