package book_slot

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	bookSlot "github.com/m04kA/SMC-SlotService/internal/usecase/book_slot"
	"github.com/m04kA/SMC-SlotService/pkg/logger"
)

type useCaseStub struct {
	got  *bookSlot.Request
	resp *bookSlot.Response
	err  error
}

func (s *useCaseStub) Execute(_ context.Context, req *bookSlot.Request) (*bookSlot.Response, error) {
	s.got = req
	return s.resp, s.err
}

func newRouter(stub *useCaseStub) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/public/slots/{id}/book", NewHandler(stub, logger.Nop()).Handle).Methods(http.MethodPost)
	return r
}

func book(r *mux.Router, slot string, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/public/slots/%s/book", slot),
		strings.NewReader(body)))
	return rec
}

const validBody = `{"customer_name":"Ann","customer_email":"ann@example.com","customer_phone":"+100"}`

func TestHandle_Confirmation(t *testing.T) {
	start := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)
	phone := "+100"
	stub := &useCaseStub{resp: &bookSlot.Response{
		SlotID:     42,
		ServiceID:  5,
		BusinessID: 7,
		Start:      start,
		End:        start.Add(30 * time.Minute),
		Customer:   domain.Customer{Name: "Ann", Email: "ann@example.com", Phone: &phone},
		BookedAt:   start.Add(-time.Hour),
	}}

	rec := book(newRouter(stub), "42", validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, stub.got)
	assert.Equal(t, int64(42), stub.got.SlotID)
	require.NotNil(t, stub.got.CustomerPhone)
	assert.Equal(t, "+100", *stub.got.CustomerPhone)
	assert.Contains(t, rec.Body.String(), `"slot_id":42`)
	assert.Contains(t, rec.Body.String(), `"start_time":"2030-01-01T09:00:00Z"`)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		slot       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "bad slot id", slot: "abc", body: validBody, wantStatus: http.StatusBadRequest},
		{name: "missing name", slot: "1", body: `{"customer_email":"ann@example.com"}`, wantStatus: http.StatusBadRequest},
		{name: "invalid customer", slot: "1", body: validBody, err: bookSlot.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "started", slot: "1", body: validBody, err: bookSlot.ErrSlotStarted, wantStatus: http.StatusBadRequest},
		{name: "not found", slot: "1", body: validBody, err: bookSlot.ErrSlotNotFound, wantStatus: http.StatusNotFound},
		{name: "taken", slot: "1", body: validBody, err: bookSlot.ErrSlotNotAvailable, wantStatus: http.StatusConflict},
		{name: "internal", slot: "1", body: validBody, err: bookSlot.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := book(newRouter(&useCaseStub{err: tt.err}), tt.slot, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
