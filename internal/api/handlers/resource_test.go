package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"trove-backend/internal/api/handlers"
	"trove-backend/internal/database/models"
	apperrors "trove-backend/internal/errors"
	"trove-backend/internal/mocks"
	"trove-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// ResourceHandlerTestSuite defines the test suite for ResourceHandler
type ResourceHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *mocks.MockResourceServiceInterface
	handler     *handlers.ResourceHandler
	router      *gin.Engine
}

func (suite *ResourceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockService = mocks.NewMockResourceServiceInterface(suite.ctrl)
	suite.handler = handlers.NewResourceHandler(suite.mockService)

	suite.router = gin.New()
	suite.router.POST("/resources", suite.handler.CreateResource)
	suite.router.GET("/resources", suite.handler.ListResources)
	suite.router.GET("/resources/:id", suite.handler.GetResource)
	suite.router.DELETE("/resources/:id", suite.handler.DeleteResource)
}

func (suite *ResourceHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *ResourceHandlerTestSuite) serve(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) handlers.ErrorResponse {
	var got handlers.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	return got
}

func (suite *ResourceHandlerTestSuite) TestCreateResource_Success() {
	body := `{"url":"https://example.com","source":"manual"}`
	id := uuid.New()
	title := "Example"

	suite.mockService.EXPECT().CreateResource(gomock.Any(), []byte(body)).Return(&models.Resource{
		BaseModel: models.BaseModel{ID: id},
		URL:       "https://example.com",
		Title:     &title,
		Source:    models.SourceManual,
		Tags:      []string{},
	}, nil)

	w := suite.serve(http.MethodPost, "/resources", body)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
	var got map[string]interface{}
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(suite.T(), id.String(), got["id"])
	assert.Equal(suite.T(), "Example", got["title"])
	assert.Equal(suite.T(), "manual", got["source"])
	assert.Nil(suite.T(), got["description"])
	assert.Equal(suite.T(), []interface{}{}, got["tags"])
}

func (suite *ResourceHandlerTestSuite) TestCreateResource_ValidationFailed() {
	verrs := &apperrors.ValidationErrors{}
	verrs.Add("url", "url is required and must be a string")
	verrs.Add("source", "source must be one of: github_star, extension, ios_shortcut, manual")
	suite.mockService.EXPECT().CreateResource(gomock.Any(), gomock.Any()).Return(nil, verrs)

	w := suite.serve(http.MethodPost, "/resources", `{}`)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	got := decodeError(suite.T(), w)
	assert.Equal(suite.T(), "Validation failed", got.Error)
	assert.Equal(suite.T(), apperrors.CodeBadRequest, got.Code)
	assert.Len(suite.T(), got.Details, 2)
	assert.Equal(suite.T(), "url", got.Details[0].Field)
	assert.Equal(suite.T(), "source", got.Details[1].Field)
}

func (suite *ResourceHandlerTestSuite) TestCreateResource_InvalidJSON() {
	suite.mockService.EXPECT().CreateResource(gomock.Any(), gomock.Any()).Return(nil, apperrors.ErrInvalidJSONBody)

	w := suite.serve(http.MethodPost, "/resources", `{"url":`)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	got := decodeError(suite.T(), w)
	assert.Equal(suite.T(), "invalid JSON body", got.Error)
	assert.Empty(suite.T(), got.Details)
}

func (suite *ResourceHandlerTestSuite) TestCreateResource_BodyTooLarge() {
	body := `{"url":"https://example.com","source":"manual","notes":"` + strings.Repeat("x", handlers.MaxRequestBodyBytes) + `"}`

	w := suite.serve(http.MethodPost, "/resources", body)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	got := decodeError(suite.T(), w)
	assert.Equal(suite.T(), apperrors.ErrRequestBodyTooLarge.Error(), got.Error)
	assert.Equal(suite.T(), apperrors.CodeBadRequest, got.Code)
}

func (suite *ResourceHandlerTestSuite) TestCreateResource_BodyAtLimit() {
	body := strings.Repeat(" ", handlers.MaxRequestBodyBytes-2) + "{}"
	suite.mockService.EXPECT().CreateResource(gomock.Any(), []byte(body)).Return(nil, apperrors.ErrInvalidJSONBody)

	w := suite.serve(http.MethodPost, "/resources", body)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *ResourceHandlerTestSuite) TestCreateResource_Duplicate() {
	suite.mockService.EXPECT().CreateResource(gomock.Any(), gomock.Any()).Return(nil, apperrors.ErrResourceExists)

	w := suite.serve(http.MethodPost, "/resources", `{"url":"https://example.com","source":"manual"}`)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	got := decodeError(suite.T(), w)
	assert.Equal(suite.T(), "Resource already exists", got.Error)
	assert.Equal(suite.T(), apperrors.CodeConflict, got.Code)
}

func (suite *ResourceHandlerTestSuite) TestCreateResource_InternalErrorIsNotLeaked() {
	suite.mockService.EXPECT().CreateResource(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("pq: password authentication failed for user trove"))

	w := suite.serve(http.MethodPost, "/resources", `{"url":"https://example.com","source":"manual"}`)

	assert.Equal(suite.T(), http.StatusInternalServerError, w.Code)
	assert.NotContains(suite.T(), w.Body.String(), "password")
	got := decodeError(suite.T(), w)
	assert.Equal(suite.T(), "Internal server error", got.Error)
	assert.Equal(suite.T(), apperrors.CodeInternal, got.Code)
}

func (suite *ResourceHandlerTestSuite) TestListResources_PassesRawQuery() {
	cursor := "2024-05-01T10:00:00Z"
	suite.mockService.EXPECT().ListResources(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, q service.ListResourcesQuery) (*service.ResourceListResponse, error) {
			suite.Require().NotNil(q.Source)
			suite.Equal("github_star", *q.Source)
			suite.Require().NotNil(q.Limit)
			suite.Equal("2", *q.Limit)
			suite.Nil(q.Cursor)
			return &service.ResourceListResponse{
				Data:    []models.Resource{{URL: "https://a"}, {URL: "https://b"}},
				Cursor:  &cursor,
				HasMore: true,
			}, nil
		})

	w := suite.serve(http.MethodGet, "/resources?source=github_star&limit=2", "")

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var got map[string]interface{}
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(suite.T(), got["data"], 2)
	assert.Equal(suite.T(), cursor, got["cursor"])
	assert.Equal(suite.T(), true, got["has_more"])
}

func (suite *ResourceHandlerTestSuite) TestListResources_LastPageHasNullCursor() {
	suite.mockService.EXPECT().ListResources(gomock.Any(), service.ListResourcesQuery{}).
		Return(&service.ResourceListResponse{Data: []models.Resource{}}, nil)

	w := suite.serve(http.MethodGet, "/resources", "")

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.JSONEq(suite.T(), `{"data":[],"cursor":null,"has_more":false}`, w.Body.String())
}

func (suite *ResourceHandlerTestSuite) TestListResources_BadLimit() {
	suite.mockService.EXPECT().ListResources(gomock.Any(), gomock.Any()).Return(nil, apperrors.ErrInvalidPaginationParams)

	w := suite.serve(http.MethodGet, "/resources?limit=500", "")

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Equal(suite.T(), apperrors.CodeBadRequest, decodeError(suite.T(), w).Code)
}

func (suite *ResourceHandlerTestSuite) TestGetResource() {
	id := uuid.New()
	suite.mockService.EXPECT().GetResource(gomock.Any(), id.String()).
		Return(&models.Resource{BaseModel: models.BaseModel{ID: id}, URL: "https://example.com"}, nil)

	w := suite.serve(http.MethodGet, "/resources/"+id.String(), "")

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), id.String())
}

func (suite *ResourceHandlerTestSuite) TestGetResource_NotFound() {
	suite.mockService.EXPECT().GetResource(gomock.Any(), "missing").Return(nil, apperrors.ErrResourceNotFound)

	w := suite.serve(http.MethodGet, "/resources/missing", "")

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	got := decodeError(suite.T(), w)
	assert.Equal(suite.T(), "resource not found", got.Error)
	assert.Equal(suite.T(), apperrors.CodeNotFound, got.Code)
}

func (suite *ResourceHandlerTestSuite) TestDeleteResource() {
	id := uuid.NewString()
	suite.mockService.EXPECT().DeleteResource(gomock.Any(), id).Return(nil)

	w := suite.serve(http.MethodDelete, "/resources/"+id, "")

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.JSONEq(suite.T(), `{"ok":true}`, w.Body.String())
}

func (suite *ResourceHandlerTestSuite) TestDeleteResource_NotFound() {
	suite.mockService.EXPECT().DeleteResource(gomock.Any(), gomock.Any()).Return(apperrors.ErrResourceNotFound)

	w := suite.serve(http.MethodDelete, "/resources/"+uuid.NewString(), "")

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func TestResourceHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ResourceHandlerTestSuite))
}
