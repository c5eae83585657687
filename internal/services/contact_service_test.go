package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/casacomune/community-api/config"
	"github.com/casacomune/community-api/internal/models"
	"github.com/casacomune/community-api/internal/services"
)

func testConfig() *config.Config {
	// Empty admin address and trigger URL keep the post-storage
	// collaborators out of tests that do not assert on them.
	return &config.Config{}
}

func validContactSubmission() *models.ContactSubmission {
	return &models.ContactSubmission{
		Name:    "Marco Rossi",
		Email:   "Marco@Example.com",
		Phone:   "+39 06 1234567",
		Subject: "visit",
		Message: "I would like to visit the community next month.",
	}
}

func TestSubmitContactForm_Accepted(t *testing.T) {
	repo := new(MockInquiryRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Inquiry")).
		Return(uuid.New(), nil).Once()

	svc := services.NewContactService(repo, nil, testConfig(), nil)

	resp, err := svc.SubmitContactForm(context.Background(), validContactSubmission())

	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Thank you for reaching out. We will get back to you soon.", resp.Message)
	assert.Empty(t, resp.Errors)
	repo.AssertExpectations(t)
}

func TestSubmitContactForm_SanitizesBeforeStorage(t *testing.T) {
	repo := new(MockInquiryRepository)
	var stored *models.Inquiry
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Inquiry")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*models.Inquiry)
		}).
		Return(uuid.New(), nil).Once()

	svc := services.NewContactService(repo, nil, testConfig(), nil)

	sub := validContactSubmission()
	sub.Message = "Please <b>call</b> me <script>alert(1)</script> soon, thanks a lot"

	resp, err := svc.SubmitContactForm(context.Background(), sub)

	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Marco Rossi", stored.Name)
	assert.Equal(t, "marco@example.com", stored.Email)
	assert.Equal(t, "Please call me alert(1) soon, thanks a lot", stored.Message)
	repo.AssertExpectations(t)
}

func TestSubmitContactForm_HoneypotDropsSilently(t *testing.T) {
	repo := new(MockInquiryRepository)
	notifier := new(MockNotifier)
	cfg := testConfig()
	cfg.Mail.AdminAddress = "admin@example.com"

	svc := services.NewContactService(repo, notifier, cfg, nil)

	sub := validContactSubmission()
	sub.Website = "http://spam.example"

	resp, err := svc.SubmitContactForm(context.Background(), sub)

	// Byte-identical to the accepted response, with zero side effects.
	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Thank you for reaching out. We will get back to you soon.", resp.Message)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitContactForm_HoneypotSkipsValidation(t *testing.T) {
	repo := new(MockInquiryRepository)
	svc := services.NewContactService(repo, nil, testConfig(), nil)

	// Every visible field invalid; the decoy still wins.
	sub := &models.ContactSubmission{Website: "x"}

	resp, err := svc.SubmitContactForm(context.Background(), sub)

	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Errors)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitContactForm_ValidationFailure(t *testing.T) {
	repo := new(MockInquiryRepository)
	svc := services.NewContactService(repo, nil, testConfig(), nil)

	sub := validContactSubmission()
	sub.Name = "<img onerror=alert(1)>"
	sub.Email = "not-an-email"

	resp, err := svc.SubmitContactForm(context.Background(), sub)

	assert.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Validation failed", resp.Error)
	assert.Contains(t, resp.Errors, "name")
	assert.Contains(t, resp.Errors, "email")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitContactForm_StorageFailure(t *testing.T) {
	repo := new(MockInquiryRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Inquiry")).
		Return(uuid.Nil, errors.New("connection refused")).Once()

	svc := services.NewContactService(repo, nil, testConfig(), nil)

	resp, err := svc.SubmitContactForm(context.Background(), validContactSubmission())

	assert.Error(t, err)
	assert.Nil(t, resp)
	repo.AssertExpectations(t)
}

func TestSubmitContactForm_NotifiesAdmin(t *testing.T) {
	repo := new(MockInquiryRepository)
	referenceID := uuid.New()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Inquiry")).
		Return(referenceID, nil).Once()

	sent := make(chan struct{})
	notifier := new(MockNotifier)
	notifier.On("Send", mock.Anything, "admin@example.com", mock.AnythingOfType("string"), mock.AnythingOfType("string")).
		Run(func(mock.Arguments) { close(sent) }).
		Return(nil).Once()

	cfg := testConfig()
	cfg.Mail.AdminAddress = "admin@example.com"

	svc := services.NewContactService(repo, notifier, cfg, nil)

	resp, err := svc.SubmitContactForm(context.Background(), validContactSubmission())

	assert.NoError(t, err)
	assert.True(t, resp.Success)

	select {
	case <-sent:
	case <-time.After(2 * time.Second):
		t.Fatal("admin notification was never sent")
	}
	notifier.AssertExpectations(t)
}

func TestSubmitContactForm_NotificationFailureDoesNotSurface(t *testing.T) {
	repo := new(MockInquiryRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Inquiry")).
		Return(uuid.New(), nil).Once()

	sent := make(chan struct{})
	notifier := new(MockNotifier)
	notifier.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { close(sent) }).
		Return(errors.New("ses throttled")).Once()

	cfg := testConfig()
	cfg.Mail.AdminAddress = "admin@example.com"

	svc := services.NewContactService(repo, notifier, cfg, nil)

	resp, err := svc.SubmitContactForm(context.Background(), validContactSubmission())

	// The inquiry is stored; a lost email never reaches the client.
	assert.NoError(t, err)
	assert.True(t, resp.Success)

	select {
	case <-sent:
	case <-time.After(2 * time.Second):
		t.Fatal("notifier was never invoked")
	}
}
