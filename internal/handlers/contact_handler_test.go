package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/casacomune/community-api/internal/handlers"
	"github.com/casacomune/community-api/internal/models"
)

type MockContactService struct {
	mock.Mock
}

func (m *MockContactService) SubmitContactForm(ctx context.Context, sub *models.ContactSubmission) (*models.ContactResponse, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContactResponse), args.Error(1)
}

func setupContactRouter(svc *MockContactService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/v1/contact", handlers.NewContactHandler(svc).SubmitContact)
	return router
}

func postContact(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSubmitContact_Accepted(t *testing.T) {
	svc := new(MockContactService)
	svc.On("SubmitContactForm", mock.Anything, mock.AnythingOfType("*models.ContactSubmission")).
		Return(&models.ContactResponse{Success: true, Message: "Thank you for reaching out. We will get back to you soon."}, nil).Once()

	w := postContact(setupContactRouter(svc), `{
		"name": "Marco Rossi",
		"email": "marco@example.com",
		"subject": "info",
		"message": "I want information about cohousing."
	}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.ContactResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Message)
	svc.AssertExpectations(t)
}

func TestSubmitContact_PassesDecodedSubmission(t *testing.T) {
	svc := new(MockContactService)
	var got *models.ContactSubmission
	svc.On("SubmitContactForm", mock.Anything, mock.AnythingOfType("*models.ContactSubmission")).
		Run(func(args mock.Arguments) {
			got = args.Get(1).(*models.ContactSubmission)
		}).
		Return(&models.ContactResponse{Success: true}, nil).Once()

	postContact(setupContactRouter(svc), `{
		"name": "Marco Rossi",
		"email": "marco@example.com",
		"subject": "visit",
		"message": "I would like to visit.",
		"website": "http://spam.example"
	}`)

	assert.Equal(t, "Marco Rossi", got.Name)
	assert.Equal(t, "http://spam.example", got.Website)
}

func TestSubmitContact_MalformedJSON(t *testing.T) {
	svc := new(MockContactService)

	w := postContact(setupContactRouter(svc), `{"name": `)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "SubmitContactForm", mock.Anything, mock.Anything)
}

func TestSubmitContact_ValidationFailureResponse(t *testing.T) {
	svc := new(MockContactService)
	svc.On("SubmitContactForm", mock.Anything, mock.AnythingOfType("*models.ContactSubmission")).
		Return(&models.ContactResponse{
			Success: false,
			Error:   "Validation failed",
			Errors:  map[string]string{"email": "must be a valid email address"},
		}, nil).Once()

	w := postContact(setupContactRouter(svc), `{"name": "Marco Rossi", "email": "nope"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ContactResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Errors, "email")
}

func TestSubmitContact_StorageFailure(t *testing.T) {
	svc := new(MockContactService)
	svc.On("SubmitContactForm", mock.Anything, mock.AnythingOfType("*models.ContactSubmission")).
		Return(nil, assert.AnError).Once()

	w := postContact(setupContactRouter(svc), `{
		"name": "Marco Rossi",
		"email": "marco@example.com",
		"subject": "info",
		"message": "I want information about cohousing."
	}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "Internal server error"}`, w.Body.String())
}
