package signature

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"signature-builder/internal/domain"
	apiError "signature-builder/internal/errors"
	"signature-builder/internal/middleware"
	"signature-builder/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupRouter(handler *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.Use(func(c *gin.Context) {
		c.Set("user_id", uint64(7))
	})
	router.GET("/signatures", handler.List)
	router.GET("/signatures/:id", handler.Show)
	router.PATCH("/signatures/:id", handler.Update)
	router.DELETE("/signatures/:id", handler.Delete)
	return router
}

func TestList_Success(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(NewHandler(mockService))

	result := &PaginatedSignatures{
		Data: []SignatureSummary{{ID: 1, Name: AutosaveName}},
		Meta: utils.NewPageMeta(1, 2, 5),
	}
	mockService.On("ListSignatures", mock.Anything, uint64(7), 2, 5).Return(result, nil)

	req := httptest.NewRequest("GET", "/signatures?page=2&per_page=5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response PaginatedSignatures
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, AutosaveName, response.Data[0].Name)
	assert.Equal(t, 2, response.Meta.CurrentPage)
	mockService.AssertExpectations(t)
}

func TestShow_Success(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(NewHandler(mockService))

	doc := &domain.SignatureDocument{ID: 3, UserID: 7, Name: "Work", Data: json.RawMessage(`{"rows":[]}`)}
	mockService.On("GetSignature", mock.Anything, uint64(3), uint64(7)).Return(doc, nil)

	req := httptest.NewRequest("GET", "/signatures/3", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]json.RawMessage
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.JSONEq(t, `{"rows":[]}`, string(response["data"]))
}

func TestShow_InvalidID(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(NewHandler(mockService))

	req := httptest.NewRequest("GET", "/signatures/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertNotCalled(t, "GetSignature", mock.Anything, mock.Anything, mock.Anything)
}

func TestShow_OtherOwnersSignatureIsNotFound(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(NewHandler(mockService))

	mockService.On("GetSignature", mock.Anything, uint64(9), uint64(7)).
		Return(nil, apiError.NotFound("Signature not found", nil))

	req := httptest.NewRequest("GET", "/signatures/9", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Signature not found")
}

func TestUpdate_Success(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(NewHandler(mockService))

	mockService.On("UpdateSignature", mock.Anything, uint64(3), uint64(7), mock.MatchedBy(func(in UpdateInput) bool {
		return in.IsFavorite != nil && *in.IsFavorite && in.Name == nil
	})).Return(&domain.SignatureDocument{ID: 3, IsFavorite: true}, nil)

	req := httptest.NewRequest("PATCH", "/signatures/3", bytes.NewBufferString(`{"is_favorite":true}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestUpdate_EmptyNameRejected(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(NewHandler(mockService))

	req := httptest.NewRequest("PATCH", "/signatures/3", bytes.NewBufferString(`{"name":""}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestDelete_Success(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(NewHandler(mockService))

	mockService.On("DeleteSignature", mock.Anything, uint64(3), uint64(7)).Return(nil)

	req := httptest.NewRequest("DELETE", "/signatures/3", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockService.AssertExpectations(t)
}
