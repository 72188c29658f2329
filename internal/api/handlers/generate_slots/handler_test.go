package generate_slots

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotService/internal/api/middleware"
	"github.com/m04kA/SMC-SlotService/internal/domain"
	generateSlots "github.com/m04kA/SMC-SlotService/internal/usecase/generate_slots"
	"github.com/m04kA/SMC-SlotService/pkg/logger"
)

type useCaseStub struct {
	got  *generateSlots.Request
	resp *generateSlots.Response
	err  error
}

func (s *useCaseStub) Execute(_ context.Context, req *generateSlots.Request) (*generateSlots.Response, error) {
	s.got = req
	return s.resp, s.err
}

const validBody = `{"service_id":5,"start_date":"2030-01-01","end_date":"2030-01-01",` +
	`"start_time":"09:00","end_time":"10:00","interval":20}`

func serve(h *Handler, body string, withPrincipal bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/slots/generate", strings.NewReader(body))
	if withPrincipal {
		req = req.WithContext(middleware.WithPrincipal(req.Context(), domain.Principal{UserID: 1, BusinessID: 7}))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_PartialResult(t *testing.T) {
	at := func(hhmm string) time.Time {
		v, _ := time.Parse("2006-01-02 15:04", "2030-01-01 "+hhmm)
		return v
	}

	stub := &useCaseStub{resp: &generateSlots.Response{
		BatchID:   "batch-1",
		ServiceID: 5,
		Accepted: []*domain.Slot{
			{ID: 11, BusinessID: 7, ServiceID: 5, Start: at("09:00"), End: at("09:30"), Status: domain.SlotAvailable},
		},
		Skipped: []domain.SkippedCandidate{
			{Candidate: domain.SlotCandidate{Start: at("09:20"), End: at("09:50")}, ConflictStart: at("09:00")},
		},
	}}

	rec := serve(NewHandler(stub, logger.Nop()), validBody, true)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, stub.got)
	assert.Equal(t, int64(7), stub.got.BusinessID, "business comes from the token")
	assert.Equal(t, 20, stub.got.IntervalMinutes)

	body := rec.Body.String()
	assert.Contains(t, body, `"batch_id":"batch-1"`)
	assert.Contains(t, body, `"reason":"`+msgReasonBatchOverlap+`"`)
	assert.NotContains(t, body, "conflict_slot_id")
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid date", err: generateSlots.ErrInvalidDate, wantStatus: http.StatusBadRequest},
		{name: "too many", err: generateSlots.ErrTooManyCandidates, wantStatus: http.StatusBadRequest},
		{name: "unknown service", err: generateSlots.ErrServiceNotFound, wantStatus: http.StatusBadRequest},
		{name: "internal", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&useCaseStub{err: tt.err}, logger.Nop()), validBody, true)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_RejectsBadRequests(t *testing.T) {
	stub := &useCaseStub{}
	h := NewHandler(stub, logger.Nop())

	assert.Equal(t, http.StatusUnauthorized, serve(h, validBody, false).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, `{"service_id":5}`, true).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, `{"business_id":1}`, true).Code)
	assert.Nil(t, stub.got)
}
