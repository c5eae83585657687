package services_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/casacomune/community-api/internal/models"
)

// MockInquiryRepository is a testify mock of the storage collaborator.
type MockInquiryRepository struct {
	mock.Mock
}

func (m *MockInquiryRepository) Create(ctx context.Context, inq *models.Inquiry) (uuid.UUID, error) {
	args := m.Called(ctx, inq)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockInquiryRepository) List(ctx context.Context, status models.InquiryStatus, limit, offset int) ([]*models.InquiryRow, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.InquiryRow), args.Error(1)
}

func (m *MockInquiryRepository) UpdateStatus(ctx context.Context, referenceID uuid.UUID, status models.InquiryStatus) error {
	args := m.Called(ctx, referenceID, status)
	return args.Error(0)
}

// MockNotifier is a testify mock of the mail collaborator.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, to, subject, textBody string) error {
	args := m.Called(ctx, to, subject, textBody)
	return args.Error(0)
}
