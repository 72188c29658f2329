package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers/book_slot"
	"github.com/m04kA/SMC-SlotService/internal/api/handlers/cancel_slot"
	"github.com/m04kA/SMC-SlotService/internal/api/handlers/create_service"
	"github.com/m04kA/SMC-SlotService/internal/api/handlers/delete_service"
	"github.com/m04kA/SMC-SlotService/internal/api/handlers/generate_slots"
	"github.com/m04kA/SMC-SlotService/internal/api/handlers/get_public_services"
	"github.com/m04kA/SMC-SlotService/internal/api/handlers/get_public_slots"
	"github.com/m04kA/SMC-SlotService/internal/api/handlers/health"
	"github.com/m04kA/SMC-SlotService/internal/api/handlers/list_services"
	"github.com/m04kA/SMC-SlotService/internal/api/handlers/list_slots"
	"github.com/m04kA/SMC-SlotService/internal/api/handlers/login"
	"github.com/m04kA/SMC-SlotService/internal/api/handlers/register"
	"github.com/m04kA/SMC-SlotService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SlotService/internal/service/accounts"
	"github.com/m04kA/SMC-SlotService/internal/service/catalog"
	"github.com/m04kA/SMC-SlotService/internal/service/slots"
	bookSlot "github.com/m04kA/SMC-SlotService/internal/usecase/book_slot"
	cancelSlot "github.com/m04kA/SMC-SlotService/internal/usecase/cancel_slot"
	generateSlots "github.com/m04kA/SMC-SlotService/internal/usecase/generate_slots"
	getPublicSlots "github.com/m04kA/SMC-SlotService/internal/usecase/get_public_slots"
	"github.com/m04kA/SMC-SlotService/pkg/jwtauth"
	"github.com/m04kA/SMC-SlotService/pkg/logger"
	"github.com/m04kA/SMC-SlotService/pkg/metrics"
)

type testServer struct {
	t       *testing.T
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := memory.NewStore()
	log := logger.Nop()

	tokens, err := jwtauth.NewManager("test-secret", "slot-service", time.Hour)
	require.NoError(t, err)

	var m *metrics.Metrics

	accountService := accounts.NewService(store.Accounts(), tokens, store.TxManager(), log)
	catalogService := catalog.NewService(store.Services(), store.Slots(), store.TxManager(), log)
	slotService := slots.NewService(store.Slots(), time.UTC, log)

	generateUC := generateSlots.NewUseCase(store.Services(), store.Slots(), m, log, generateSlots.Options{
		Location:      time.UTC,
		MaxDays:       366,
		MaxCandidates: 10000,
	})
	bookUC := bookSlot.NewUseCase(store.Slots(), m, log)
	cancelUC := cancelSlot.NewUseCase(store.Slots(), m, log)
	publicSlotsUC := getPublicSlots.NewUseCase(store.Services(), store.Slots(), store.TxManager(), time.UTC, log)

	h := NewRouter(Handlers{
		Health:         health.NewHandler(store, "memory", log),
		Login:          login.NewHandler(accountService, log),
		Register:       register.NewHandler(accountService, log),
		CreateService:  create_service.NewHandler(catalogService, log),
		ListServices:   list_services.NewHandler(catalogService, log),
		DeleteService:  delete_service.NewHandler(catalogService, log),
		PublicServices: get_public_services.NewHandler(catalogService, log),
		GenerateSlots:  generate_slots.NewHandler(generateUC, log),
		ListSlots:      list_slots.NewHandler(slotService, log),
		CancelSlot:     cancel_slot.NewHandler(cancelUC, log),
		PublicSlots:    get_public_slots.NewHandler(publicSlotsUC, log),
		BookSlot:       book_slot.NewHandler(bookUC, log),
	}, Options{
		Tokens: tokens,
		Logger: log,
	})

	return &testServer{t: t, handler: h}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

type owner struct {
	token      string
	businessID int64
}

func (s *testServer) registerOwner(email, business string) owner {
	s.t.Helper()

	rec := s.do(http.MethodPost, "/api/register", "", map[string]string{
		"email":         email,
		"password":      "secret-password",
		"full_name":     "Owner",
		"business_name": business,
	})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := decode[register.RegisterResponse](s.t, rec)
	require.NotEmpty(s.t, resp.Token)
	require.NotNil(s.t, resp.Business)

	return owner{token: resp.Token, businessID: resp.Business.ID}
}

func (s *testServer) createService(o owner, name string, duration int) int64 {
	s.t.Helper()

	rec := s.do(http.MethodPost, "/api/services", o.token, map[string]interface{}{
		"name":     name,
		"duration": duration,
	})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		ID int64 `json:"id"`
	}
	require.NoError(s.t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.ID
}

func futureDate() string {
	return time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
}

func (s *testServer) generate(o owner, serviceID int64, date, from, to string, interval int) generate_slots.GenerateSlotsResponse {
	s.t.Helper()

	rec := s.do(http.MethodPost, "/api/slots/generate", o.token, map[string]interface{}{
		"service_id": serviceID,
		"start_date": date,
		"end_date":   date,
		"start_time": from,
		"end_time":   to,
		"interval":   interval,
	})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[generate_slots.GenerateSlotsResponse](s.t, rec)
}

func TestAPI_BookingFlow(t *testing.T) {
	s := newTestServer(t)
	o := s.registerOwner("owner@example.com", "Barber")
	serviceID := s.createService(o, "Haircut", 30)
	date := futureDate()

	// Интервал меньше длительности: второй кандидат пересекается с первым
	gen := s.generate(o, serviceID, date, "09:00", "10:00", 20)
	require.Len(t, gen.Accepted, 1)
	require.Len(t, gen.Skipped, 1)
	assert.NotEmpty(t, gen.BatchID)
	assert.Nil(t, gen.Skipped[0].ConflictSlotID)
	require.NotNil(t, gen.Skipped[0].ConflictStart)

	// Повторная генерация той же сетки ничего не добавляет
	again := s.generate(o, serviceID, date, "09:00", "10:00", 20)
	assert.Empty(t, again.Accepted)
	require.Len(t, again.Skipped, 2)
	for _, skipped := range again.Skipped {
		require.NotNil(t, skipped.ConflictSlotID)
		assert.Equal(t, gen.Accepted[0].ID, *skipped.ConflictSlotID)
	}

	path := fmt.Sprintf("/api/public/slots?business_id=%d&service_id=%d&date=%s", o.businessID, serviceID, date)
	rec := s.do(http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	public := decode[[]get_public_slots.PublicSlot](t, rec)
	require.Len(t, public, 1)
	assert.Equal(t, 30, public[0].Duration)
	assert.Equal(t, "Haircut", public[0].ServiceName)
	assert.NotContains(t, rec.Body.String(), "customer")

	slotID := public[0].ID
	bookPath := fmt.Sprintf("/api/public/slots/%d/book", slotID)
	rec = s.do(http.MethodPost, bookPath, "", map[string]string{
		"customer_name":  "Ann",
		"customer_email": "ann@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	confirmation := decode[book_slot.ConfirmationResponse](t, rec)
	assert.Equal(t, slotID, confirmation.SlotID)
	assert.Equal(t, o.businessID, confirmation.BusinessID)

	rec = s.do(http.MethodPost, bookPath, "", map[string]string{
		"customer_name":  "Bob",
		"customer_email": "bob@example.com",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Забронированный слот исчезает из публичной выдачи
	rec = s.do(http.MethodGet, path, "", nil)
	assert.Empty(t, decode[[]get_public_slots.PublicSlot](t, rec))

	rec = s.do(http.MethodGet, "/api/slots?status=booked", o.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var inventory []struct {
		ID            int64   `json:"id"`
		Status        string  `json:"status"`
		ServiceName   string  `json:"service_name"`
		CustomerEmail *string `json:"customer_email"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&inventory))
	require.Len(t, inventory, 1)
	assert.Equal(t, "Haircut", inventory[0].ServiceName)
	require.NotNil(t, inventory[0].CustomerEmail)
	assert.Equal(t, "ann@example.com", *inventory[0].CustomerEmail)

	// Услугу с предстоящими бронированиями удалить нельзя
	rec = s.do(http.MethodDelete, fmt.Sprintf("/api/services/%d", serviceID), o.token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPost, fmt.Sprintf("/api/slots/%d/cancel", slotID), o.token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, fmt.Sprintf("/api/slots/%d/cancel", slotID), o.token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodDelete, fmt.Sprintf("/api/services/%d", serviceID), o.token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodGet, "/api/services", o.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestAPI_GenerateAcceptsFormPayload(t *testing.T) {
	s := newTestServer(t)
	o := s.registerOwner("owner@example.com", "Barber")
	serviceID := s.createService(o, "Haircut", 30)
	date := futureDate()

	payload := json.RawMessage(fmt.Sprintf(
		`{"service_id":%d,"start_date":%q,"end_date":%q,"start_time":"09:00","end_time":"10:00","interval":30}`,
		serviceID, date, date))

	rec := s.do(http.MethodPost, "/api/slots/generate", o.token, payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := decode[generate_slots.GenerateSlotsResponse](t, rec)
	assert.Len(t, resp.Accepted, 2)
	assert.Empty(t, resp.Skipped)

	// Старое имя поля больше не принимается
	legacy := json.RawMessage(fmt.Sprintf(
		`{"service_id":%d,"start_date":%q,"end_date":%q,"start_time":"11:00","end_time":"12:00","interval_minutes":30}`,
		serviceID, date, date))
	rec = s.do(http.MethodPost, "/api/slots/generate", o.token, legacy)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_ConcurrentBookingHasOneWinner(t *testing.T) {
	s := newTestServer(t)
	o := s.registerOwner("owner@example.com", "Barber")
	serviceID := s.createService(o, "Haircut", 30)
	gen := s.generate(o, serviceID, futureDate(), "09:00", "09:30", 30)
	require.Len(t, gen.Accepted, 1)

	const clients = 20
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		codes = map[int]int{}
	)
	wg.Add(clients)
	for i := 0; i < clients; i++ {
		go func(i int) {
			defer wg.Done()
			rec := s.do(http.MethodPost, fmt.Sprintf("/api/public/slots/%d/book", gen.Accepted[0].ID), "",
				map[string]string{
					"customer_name":  fmt.Sprintf("Client %d", i),
					"customer_email": fmt.Sprintf("client%d@example.com", i),
				})
			mu.Lock()
			codes[rec.Code]++
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, codes[http.StatusCreated])
	assert.Equal(t, clients-1, codes[http.StatusConflict])
}

func TestAPI_TenantIsolation(t *testing.T) {
	s := newTestServer(t)
	a := s.registerOwner("a@example.com", "A")
	b := s.registerOwner("b@example.com", "B")

	serviceA := s.createService(a, "Haircut", 30)
	serviceB := s.createService(b, "Massage", 60)
	date := futureDate()
	s.generate(a, serviceA, date, "09:00", "10:00", 30)
	genB := s.generate(b, serviceB, date, "09:00", "11:00", 60)

	// Сервис B под идентификатором бизнеса A
	rec := s.do(http.MethodGet, fmt.Sprintf("/api/public/slots?business_id=%d&service_id=%d", a.businessID, serviceB), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Владелец A не видит и не отменяет слоты B
	rec = s.do(http.MethodPost, fmt.Sprintf("/api/slots/%d/cancel", genB.Accepted[0].ID), a.token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/slots", a.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Massage")

	// Генерация для чужой услуги является ошибкой входных данных
	rec = s.do(http.MethodPost, "/api/slots/generate", a.token, map[string]interface{}{
		"service_id": serviceB,
		"start_date": date,
		"end_date":   date,
		"start_time": "12:00",
		"end_time":   "13:00",
		"interval":   30,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, fmt.Sprintf("/api/public/services?business_id=%d", b.businessID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Massage")
	assert.NotContains(t, rec.Body.String(), "Haircut")
}

func TestAPI_AuthAndValidation(t *testing.T) {
	s := newTestServer(t)
	o := s.registerOwner("owner@example.com", "Barber")
	serviceID := s.createService(o, "Haircut", 30)

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		body       interface{}
		wantStatus int
	}{
		{name: "services without token", method: http.MethodGet, path: "/api/services", wantStatus: http.StatusUnauthorized},
		{name: "generate with bad token", method: http.MethodPost, path: "/api/slots/generate", token: "bad", wantStatus: http.StatusUnauthorized},
		{name: "empty service name", method: http.MethodPost, path: "/api/services", token: o.token,
			body: map[string]interface{}{"name": "   ", "duration": 30}, wantStatus: http.StatusBadRequest},
		{name: "negative duration", method: http.MethodPost, path: "/api/services", token: o.token,
			body: map[string]interface{}{"name": "Shave", "duration": -5}, wantStatus: http.StatusBadRequest},
		{name: "reversed window", method: http.MethodPost, path: "/api/slots/generate", token: o.token,
			body: map[string]interface{}{
				"service_id": serviceID, "start_date": futureDate(), "end_date": futureDate(),
				"start_time": "10:00", "end_time": "09:00", "interval": 30,
			}, wantStatus: http.StatusBadRequest},
		{name: "bad date", method: http.MethodPost, path: "/api/slots/generate", token: o.token,
			body: map[string]interface{}{
				"service_id": serviceID, "start_date": "01.01.2030", "end_date": futureDate(),
				"start_time": "09:00", "end_time": "10:00", "interval": 30,
			}, wantStatus: http.StatusBadRequest},
		{name: "book unknown slot", method: http.MethodPost, path: "/api/public/slots/999/book",
			body: map[string]string{"customer_name": "Ann", "customer_email": "ann@example.com"}, wantStatus: http.StatusNotFound},
		{name: "book with invalid email", method: http.MethodPost, path: "/api/public/slots/1/book",
			body: map[string]string{"customer_name": "Ann", "customer_email": "not-an-email"}, wantStatus: http.StatusBadRequest},
		{name: "public slots without service", method: http.MethodGet, path: "/api/public/slots?business_id=1", wantStatus: http.StatusBadRequest},
		{name: "bad status filter", method: http.MethodGet, path: "/api/slots?status=free", token: o.token, wantStatus: http.StatusBadRequest},
		{name: "delete unknown service", method: http.MethodDelete, path: "/api/services/999", token: o.token, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestAPI_Login(t *testing.T) {
	s := newTestServer(t)
	o := s.registerOwner("owner@example.com", "Barber")

	rec := s.do(http.MethodPost, "/api/login", "", map[string]string{
		"email":    "OWNER@example.com",
		"password": "secret-password",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[login.LoginResponse](t, rec)
	assert.Equal(t, o.businessID, resp.User.BusinessID)

	rec = s.do(http.MethodGet, "/api/services", resp.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/api/login", "", map[string]string{
		"email":    "owner@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/api/register", "", map[string]string{
		"email":         "owner@example.com",
		"password":      "secret-password",
		"business_name": "Second",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAPI_Health(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","storage":"memory"}`, rec.Body.String())
}
