package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/spendscope/spendscope-backend/internal/apperrors"
	"github.com/spendscope/spendscope-backend/internal/core/domain"
	portssvc "github.com/spendscope/spendscope-backend/internal/core/ports/services"
	"github.com/spendscope/spendscope-backend/internal/dto"
	"github.com/spendscope/spendscope-backend/internal/handlers"
	"github.com/spendscope/spendscope-backend/internal/middleware"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UploadService ---

type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) ProcessUpload(ctx context.Context, organizationID, userID string, file io.Reader, fileName string, fileSize int64, skipDuplicates bool) (*domain.DataUpload, error) {
	args := m.Called(ctx, organizationID, userID, file, fileName, fileSize, skipDuplicates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DataUpload), args.Error(1)
}

func (m *MockUploadService) GetUploadByID(ctx context.Context, organizationID, uploadID, userID string) (*domain.DataUpload, error) {
	args := m.Called(ctx, organizationID, uploadID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DataUpload), args.Error(1)
}

func (m *MockUploadService) ListUploads(ctx context.Context, organizationID, userID string, limit, offset int) ([]domain.DataUpload, error) {
	args := m.Called(ctx, organizationID, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DataUpload), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.UploadSvcFacade = (*MockUploadService)(nil)

// --- Test Suite ---

type UploadHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockUploadService *MockUploadService
	jwtSecret         string
}

func (suite *UploadHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "spendscope-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *UploadHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockUploadService = new(MockUploadService)

	v1 := suite.router.Group("/api/v1/organizations/:organization_id")
	handlers.RegisterUploadRoutes(v1, suite.mockUploadService)
}

// multipartBody builds a multipart form carrying one file field plus optional
// extra string fields, returning the body and its content type.
func (suite *UploadHandlerTestSuite) multipartBody(fileName, fileContent string, fields map[string]string) (*bytes.Buffer, string) {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", fileName)
	suite.Require().NoError(err)
	_, err = part.Write([]byte(fileContent))
	suite.Require().NoError(err)

	for key, value := range fields {
		suite.Require().NoError(writer.WriteField(key, value))
	}
	suite.Require().NoError(writer.Close())

	return body, writer.FormDataContentType()
}

func (suite *UploadHandlerTestSuite) doRequest(method, url string, body *bytes.Buffer, contentType, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		reader = body
	}
	req, _ := http.NewRequest(method, url, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *UploadHandlerTestSuite) TestCreateUpload_Success() {
	organizationID := uuid.NewString()
	userID := uuid.NewString()
	fileContent := "supplier,category,amount,date\nAcme Corp,Office Supplies,100.00,2024-01-15\n"

	completedAt := time.Now()
	expected := &domain.DataUpload{
		UploadID:         uuid.NewString(),
		OrganizationID:   organizationID,
		UploadedBy:       userID,
		FileName:         "spend.csv",
		OriginalFileName: "spend.csv",
		FileSize:         int64(len(fileContent)),
		BatchID:          uuid.NewString(),
		TotalRows:        1,
		SuccessfulRows:   1,
		Status:           domain.UploadStatusCompleted,
		ErrorLog:         []domain.UploadRowError{},
		CreatedAt:        time.Now(),
		CompletedAt:      &completedAt,
	}

	suite.mockUploadService.On("ProcessUpload",
		mock.Anything,
		organizationID,
		userID,
		mock.Anything,
		"spend.csv",
		int64(len(fileContent)),
		true, // skipDuplicates defaults to true when the field is absent
	).Return(expected, nil).Once()

	body, contentType := suite.multipartBody("spend.csv", fileContent, nil)
	url := fmt.Sprintf("/api/v1/organizations/%s/uploads", organizationID)
	w := suite.doRequest(http.MethodPost, url, body, contentType, suite.generateTestToken(userID))

	suite.Equal(http.StatusCreated, w.Code)

	var responseBody dto.UploadResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &responseBody))
	suite.Equal(expected.UploadID, responseBody.UploadID)
	suite.Equal("completed", responseBody.Status)
	suite.Equal(1, responseBody.TotalRows)
	suite.Equal(1, responseBody.SuccessfulRows)
	suite.NotNil(responseBody.ErrorLog)

	suite.mockUploadService.AssertExpectations(suite.T())
}

func (suite *UploadHandlerTestSuite) TestCreateUpload_SkipDuplicatesFalse() {
	organizationID := uuid.NewString()
	userID := uuid.NewString()
	fileContent := "supplier,category,amount,date\n"

	expected := &domain.DataUpload{
		UploadID: uuid.NewString(),
		Status:   domain.UploadStatusFailed,
		ErrorLog: []domain.UploadRowError{},
	}

	suite.mockUploadService.On("ProcessUpload",
		mock.Anything, organizationID, userID, mock.Anything, "spend.csv", mock.AnythingOfType("int64"),
		false,
	).Return(expected, nil).Once()

	body, contentType := suite.multipartBody("spend.csv", fileContent, map[string]string{"skipDuplicates": "false"})
	url := fmt.Sprintf("/api/v1/organizations/%s/uploads", organizationID)
	w := suite.doRequest(http.MethodPost, url, body, contentType, suite.generateTestToken(userID))

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockUploadService.AssertExpectations(suite.T())
}

func (suite *UploadHandlerTestSuite) TestCreateUpload_MissingFile() {
	organizationID := uuid.NewString()
	userID := uuid.NewString()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	suite.Require().NoError(writer.WriteField("skipDuplicates", "true"))
	suite.Require().NoError(writer.Close())

	url := fmt.Sprintf("/api/v1/organizations/%s/uploads", organizationID)
	w := suite.doRequest(http.MethodPost, url, body, writer.FormDataContentType(), suite.generateTestToken(userID))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockUploadService.AssertNotCalled(suite.T(), "ProcessUpload",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UploadHandlerTestSuite) TestCreateUpload_ValidationError() {
	organizationID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockUploadService.On("ProcessUpload",
		mock.Anything, organizationID, userID, mock.Anything, "spend.xlsx", mock.AnythingOfType("int64"), true,
	).Return(nil, apperrors.NewValidationFailedError("file must have a .csv extension")).Once()

	body, contentType := suite.multipartBody("spend.xlsx", "not a csv", nil)
	url := fmt.Sprintf("/api/v1/organizations/%s/uploads", organizationID)
	w := suite.doRequest(http.MethodPost, url, body, contentType, suite.generateTestToken(userID))

	suite.Equal(http.StatusBadRequest, w.Code)

	var responseBody map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &responseBody))
	suite.Contains(responseBody["error"], ".csv extension")
}

func (suite *UploadHandlerTestSuite) TestCreateUpload_Forbidden() {
	organizationID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockUploadService.On("ProcessUpload",
		mock.Anything, organizationID, userID, mock.Anything, "spend.csv", mock.AnythingOfType("int64"), true,
	).Return(nil, apperrors.ErrForbidden).Once()

	body, contentType := suite.multipartBody("spend.csv", "supplier,category,amount,date\n", nil)
	url := fmt.Sprintf("/api/v1/organizations/%s/uploads", organizationID)
	w := suite.doRequest(http.MethodPost, url, body, contentType, suite.generateTestToken(userID))

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *UploadHandlerTestSuite) TestCreateUpload_Unauthorized() {
	organizationID := uuid.NewString()

	body, contentType := suite.multipartBody("spend.csv", "supplier,category,amount,date\n", nil)
	url := fmt.Sprintf("/api/v1/organizations/%s/uploads", organizationID)
	w := suite.doRequest(http.MethodPost, url, body, contentType, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockUploadService.AssertNotCalled(suite.T(), "ProcessUpload",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UploadHandlerTestSuite) TestListUploads_Success() {
	organizationID := uuid.NewString()
	userID := uuid.NewString()

	expected := []domain.DataUpload{
		{UploadID: uuid.NewString(), Status: domain.UploadStatusCompleted, ErrorLog: []domain.UploadRowError{}},
		{UploadID: uuid.NewString(), Status: domain.UploadStatusPartial, ErrorLog: []domain.UploadRowError{}},
	}

	suite.mockUploadService.On("ListUploads", mock.Anything, organizationID, userID, 10, 0).
		Return(expected, nil).Once()

	url := fmt.Sprintf("/api/v1/organizations/%s/uploads?limit=10", organizationID)
	w := suite.doRequest(http.MethodGet, url, nil, "", suite.generateTestToken(userID))

	suite.Equal(http.StatusOK, w.Code)

	var responseBody dto.ListUploadsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &responseBody))
	suite.Len(responseBody.Uploads, 2)
	suite.Equal(expected[0].UploadID, responseBody.Uploads[0].UploadID)

	suite.mockUploadService.AssertExpectations(suite.T())
}

func (suite *UploadHandlerTestSuite) TestGetUpload_NotFound() {
	organizationID := uuid.NewString()
	uploadID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockUploadService.On("GetUploadByID", mock.Anything, organizationID, uploadID, userID).
		Return(nil, apperrors.NewNotFoundError("upload not found")).Once()

	url := fmt.Sprintf("/api/v1/organizations/%s/uploads/%s", organizationID, uploadID)
	w := suite.doRequest(http.MethodGet, url, nil, "", suite.generateTestToken(userID))

	suite.Equal(http.StatusNotFound, w.Code)
}

// --- Run Test Suite ---
func TestUploadHandler(t *testing.T) {
	suite.Run(t, new(UploadHandlerTestSuite))
}
