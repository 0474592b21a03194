package handler_test

import (
	"mime"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hvacbill/internal/domain"
	"hvacbill/internal/export"
	"hvacbill/internal/handler"
	"hvacbill/internal/service"
	"hvacbill/mocks"
)

func newCustomerHandler() (*handler.CustomerHandler, *mocks.MockCustomerService) {
	mockSvc := new(mocks.MockCustomerService)
	return handler.NewCustomerHandler(mockSvc), mockSvc
}

func TestCustomerHandler_Create_Success(t *testing.T) {
	h, mockSvc := newCustomerHandler()
	expected := &domain.Customer{Meta: domain.Meta{ID: uuid.New()}, Name: "Johnson Residence", Type: domain.CustomerTypeResidential}
	mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(in service.CreateCustomerInput) bool {
		return in.Name == "Johnson Residence" && in.Email == "j@example.com"
	})).Return(expected, nil)

	c, w := newContext(http.MethodPost, "/api/v1/customers", map[string]string{"name": "Johnson Residence", "email": "j@example.com"})
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, decode(t, w).Success)
	mockSvc.AssertExpectations(t)
}

func TestCustomerHandler_Create_ValidationError(t *testing.T) {
	h, mockSvc := newCustomerHandler()
	mockSvc.On("Create", mock.Anything, mock.Anything).Return(nil, domain.NewValidationError("name", "is required"))

	c, w := newContext(http.MethodPost, "/api/v1/customers", map[string]string{"email": "j@example.com"})
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, "name", resp.Error.Field)
}

func TestCustomerHandler_Create_MalformedJSON(t *testing.T) {
	h, mockSvc := newCustomerHandler()

	c, w := newContext(http.MethodPost, "/api/v1/customers", nil)
	c.Request.Body = http.NoBody
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCustomerHandler_List(t *testing.T) {
	h, mockSvc := newCustomerHandler()
	mockSvc.On("List", mock.Anything, "john").Return([]*domain.Customer{{Name: "Johnson Residence"}}, nil)

	c, w := newContext(http.MethodGet, "/api/v1/customers?search=john", nil)
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, 1, resp.Meta.Total)
}

func TestCustomerHandler_GetByID_NotFound(t *testing.T) {
	h, mockSvc := newCustomerHandler()
	id := uuid.New()
	mockSvc.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	c, w := newContext(http.MethodGet, "/api/v1/customers/"+id.String(), nil)
	c.Params = idParam(id)
	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, w).Error.Code)
}

func TestCustomerHandler_Update(t *testing.T) {
	h, mockSvc := newCustomerHandler()
	id := uuid.New()
	mockSvc.On("Update", mock.Anything, id, mock.MatchedBy(func(in service.UpdateCustomerInput) bool {
		return in.Phone != nil && *in.Phone == "999" && in.Name == nil
	})).Return(&domain.Customer{Name: "A", Phone: "999"}, nil)

	c, w := newContext(http.MethodPut, "/api/v1/customers/"+id.String(), map[string]string{"phone": "999"})
	c.Params = idParam(id)
	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestCustomerHandler_Delete_StorageUnavailable(t *testing.T) {
	h, mockSvc := newCustomerHandler()
	id := uuid.New()
	mockSvc.On("Delete", mock.Anything, id).Return(&domain.StorageError{Op: "delete", Collection: "customers", Err: assert.AnError})

	c, w := newContext(http.MethodDelete, "/api/v1/customers/"+id.String(), nil)
	c.Params = idParam(id)
	h.Delete(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCustomerHandler_Export(t *testing.T) {
	h, mockSvc := newCustomerHandler()
	mockSvc.On("List", mock.Anything, "").Return([]*domain.Customer{{Name: "Johnson Residence", Type: domain.CustomerTypeResidential}}, nil)

	c, w := newContext(http.MethodGet, "/api/v1/customers/export?format=csv", nil)
	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.ContentTypeCSV, w.Header().Get("Content-Type"))
	disposition, params, err := mime.ParseMediaType(w.Header().Get("Content-Disposition"))
	require.NoError(t, err)
	assert.Equal(t, "attachment", disposition)
	assert.True(t, strings.HasPrefix(params["filename"], "customers_"))
	assert.True(t, strings.HasSuffix(params["filename"], ".csv"))
	assert.True(t, strings.Contains(w.Body.String(), "Johnson Residence,,,,Residential,"))
}

func TestCustomerHandler_Export_XLSXDefault(t *testing.T) {
	h, mockSvc := newCustomerHandler()
	mockSvc.On("List", mock.Anything, "").Return([]*domain.Customer{}, nil)

	c, w := newContext(http.MethodGet, "/api/v1/customers/export", nil)
	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.ContentTypeXLSX, w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "PK"))
}

func TestCustomerHandler_Export_BadFormat(t *testing.T) {
	h, mockSvc := newCustomerHandler()

	c, w := newContext(http.MethodGet, "/api/v1/customers/export?format=pdf", nil)
	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_FORMAT", decode(t, w).Error.Code)
	mockSvc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}
