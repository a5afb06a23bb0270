package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"scanid/internal/barcode/handler/mocks"
	"scanid/internal/barcode/models"
	"scanid/internal/barcode/service"
	"scanid/internal/platform/middleware"
	"scanid/pkg/domain"
	dErrors "scanid/pkg/domain-errors"
)

//go:generate mockgen -source=handler.go -destination=mocks/barcode-mocks.go -package=mocks Service
type BarcodeHandlerSuite struct {
	suite.Suite
	orgID domain.OrganizationID
}

func (s *BarcodeHandlerSuite) SetupSuite() {
	s.orgID = domain.OrganizationID(uuid.New())
}

func TestBarcodeHandlerSuite(t *testing.T) {
	suite.Run(t, new(BarcodeHandlerSuite))
}

func newTestHandler(t *testing.T) (*Handler, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := New(mockService, logger)
	r := chi.NewRouter()
	handler.Register(r)
	return handler, mockService
}

func (s *BarcodeHandlerSuite) authedRequest(method, target string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	return req.WithContext(middleware.WithIdentity(req.Context(), s.orgID, "operator"))
}

func (s *BarcodeHandlerSuite) TestHandleAllocate() {
	handler, mockService := newTestHandler(s.T())
	productID := uuid.New()

	mockService.EXPECT().Allocate(gomock.Any(), service.AllocateRequest{
		OrganizationID: s.orgID,
		ProductID:      domain.ProductID(productID),
		Mode:           models.ModeEAN13,
	}).Return(&service.Allocation{
		Barcode: "5901234123457",
		RenderSpec: models.RenderSpec{
			Symbology: models.SymbologyEAN13,
			Text:      "5901234123457",
		},
	}, nil)

	body, err := json.Marshal(map[string]string{"product_id": productID.String()})
	require.NoError(s.T(), err)

	w := httptest.NewRecorder()
	handler.HandleAllocate(w, s.authedRequest(http.MethodPost, "/barcodes/allocate", body))

	assert.Equal(s.T(), http.StatusCreated, w.Code)
	var resp AllocateResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "5901234123457", resp.Barcode)
	assert.Equal(s.T(), "ean13", resp.RenderSpec.Symbology)
}

func (s *BarcodeHandlerSuite) TestHandleAllocate_Unauthenticated() {
	handler, _ := newTestHandler(s.T())

	body, _ := json.Marshal(map[string]string{"product_id": uuid.NewString()})
	req := httptest.NewRequest(http.MethodPost, "/barcodes/allocate", bytes.NewReader(body))

	w := httptest.NewRecorder()
	handler.HandleAllocate(w, req)

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *BarcodeHandlerSuite) TestHandleAllocate_BadRequests() {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"product_id":`},
		{name: "missing product_id", body: `{}`},
		{name: "product_id not a uuid", body: `{"product_id":"SKU-1"}`},
		{name: "unknown mode", body: `{"product_id":"` + uuid.NewString() + `","mode":"QR"}`},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			handler, _ := newTestHandler(s.T())
			w := httptest.NewRecorder()
			handler.HandleAllocate(w, s.authedRequest(http.MethodPost, "/barcodes/allocate", []byte(tt.body)))
			assert.Equal(s.T(), http.StatusBadRequest, w.Code)
		})
	}
}

func (s *BarcodeHandlerSuite) TestHandleAllocate_Exhausted() {
	handler, mockService := newTestHandler(s.T())

	mockService.EXPECT().Allocate(gomock.Any(), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeExhausted, "barcode allocation space exhausted"))

	body, _ := json.Marshal(map[string]string{"product_id": uuid.NewString()})
	w := httptest.NewRecorder()
	handler.HandleAllocate(w, s.authedRequest(http.MethodPost, "/barcodes/allocate", body))

	assert.Equal(s.T(), http.StatusServiceUnavailable, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "exhausted", resp["error"])
}

func (s *BarcodeHandlerSuite) TestHandleValidate() {
	handler, mockService := newTestHandler(s.T())
	mockService.EXPECT().Validate("5901234123457").Return(true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/barcodes/validate", bytes.NewReader([]byte(`{"value":"5901234123457"}`)))
	handler.HandleValidate(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp ValidateResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(s.T(), resp.Valid)
	assert.Equal(s.T(), "5901234123457", resp.Value)
}

func (s *BarcodeHandlerSuite) TestHandleValidate_EmptyValue() {
	handler, _ := newTestHandler(s.T())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/barcodes/validate", bytes.NewReader([]byte(`{}`)))
	handler.HandleValidate(w, req)

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *BarcodeHandlerSuite) TestHandleRenderSpec() {
	handler, mockService := newTestHandler(s.T())
	mockService.EXPECT().RenderSpec("SKU-ABC-001").Return(models.RenderSpec{
		Symbology: models.SymbologyCode128,
		Text:      "SKU-ABC-001",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/barcodes/render-spec?value=SKU-ABC-001", nil)
	handler.HandleRenderSpec(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp RenderSpecResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "code128", resp.Symbology)
}

func (s *BarcodeHandlerSuite) TestHandleRenderSpec_MissingValue() {
	handler, _ := newTestHandler(s.T())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/barcodes/render-spec", nil)
	handler.HandleRenderSpec(w, req)

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}
