package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "hotelbook/pkg/errors"
	"hotelbook/pkg/logger"
	"hotelbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// Mock service for testing
type mockReservationService struct {
	createFunc func(ctx context.Context, req *model.ReservationRequest) (*model.Booking, error)
	modifyFunc func(ctx context.Context, code string, req *model.ReservationRequest) (*model.Booking, error)
	cancelFunc func(ctx context.Context, code string) (*model.Booking, error)
	getFunc    func(ctx context.Context, code string, includeCancelled bool) (*model.Booking, error)
	searchFunc func(ctx context.Context, search *model.RoomSearch) ([]model.Room, error)
}

func (m *mockReservationService) Create(ctx context.Context, req *model.ReservationRequest) (*model.Booking, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return &model.Booking{}, nil
}

func (m *mockReservationService) Modify(ctx context.Context, code string, req *model.ReservationRequest) (*model.Booking, error) {
	if m.modifyFunc != nil {
		return m.modifyFunc(ctx, code, req)
	}
	return &model.Booking{}, nil
}

func (m *mockReservationService) Cancel(ctx context.Context, code string) (*model.Booking, error) {
	if m.cancelFunc != nil {
		return m.cancelFunc(ctx, code)
	}
	return &model.Booking{}, nil
}

func (m *mockReservationService) Get(ctx context.Context, code string, includeCancelled bool) (*model.Booking, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, code, includeCancelled)
	}
	return &model.Booking{}, nil
}

func (m *mockReservationService) List(ctx context.Context) ([]*model.Booking, error) {
	return []*model.Booking{{ConfirmationCode: "CONF-AAAAAAAA"}, {ConfirmationCode: "CONF-BBBBBBBB"}}, nil
}

func (m *mockReservationService) Rooms() []model.Room {
	return []model.Room{{ID: "R000"}}
}

func (m *mockReservationService) SearchRooms(ctx context.Context, search *model.RoomSearch) ([]model.Room, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, search)
	}
	return []model.Room{}, nil
}

func newRouter(svc *mockReservationService) *httprouter.Router {
	router := httprouter.New()
	NewReservationHandler(svc, logger.Discard()).RegisterRoutes(router)
	return router
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreate(t *testing.T) {
	var received *model.ReservationRequest
	svc := &mockReservationService{
		createFunc: func(_ context.Context, req *model.ReservationRequest) (*model.Booking, error) {
			received = req
			return &model.Booking{ConfirmationCode: "CONF-AAAAAAAA", RoomID: req.RoomID}, nil
		},
	}
	router := newRouter(svc)

	body := `{"room_id":"R000","guest":{"name":"Ada","email":"ada@example.com","phone":"+16502530000"},"check_in":"2025-12-10","check_out":"2025-12-12"}`
	rec := serve(router, http.MethodPost, "/api/v1/reservations", body)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if received == nil || received.Guest.Email != "ada@example.com" {
		t.Errorf("service received %+v", received)
	}

	var resp struct {
		Data model.Booking `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.ConfirmationCode != "CONF-AAAAAAAA" {
		t.Errorf("response = %s", rec.Body)
	}
	if !strings.Contains(rec.Body.String(), `"confirmation_number":"CONF-AAAAAAAA"`) {
		t.Errorf("wire key should be confirmation_number: %s", rec.Body)
	}
}

func TestCreate_BadBody(t *testing.T) {
	router := newRouter(&mockReservationService{})

	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"room_id":`},
		{"unknown field", `{"room":"R000"}`},
		{"two objects", `{} {}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(router, http.MethodPost, "/api/v1/reservations", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", apperrors.Validation("bad", nil), http.StatusUnprocessableEntity, apperrors.CodeValidation},
		{"unavailable", apperrors.RoomUnavailable("R000"), http.StatusConflict, apperrors.CodeRoomUnavailable},
		{"not found", apperrors.NotFoundWithID("Reservation", "CONF-AAAAAAAA"), http.StatusNotFound, apperrors.CodeNotFound},
		{"persistence", apperrors.Persistence("disk", errors.New("full")), http.StatusInternalServerError, apperrors.CodePersistence},
		{"modify incomplete", apperrors.ModifyIncomplete("CONF-AAAAAAAA", errors.New("full")), http.StatusInternalServerError, apperrors.CodeModifyIncomplete},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, apperrors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockReservationService{
				modifyFunc: func(context.Context, string, *model.ReservationRequest) (*model.Booking, error) {
					return nil, tt.err
				},
			}
			body := `{"room_id":"R000","guest":{"name":"A","email":"a@b.c","phone":"1"},"check_in":"2025-12-10","check_out":"2025-12-12"}`
			rec := serve(newRouter(svc), http.MethodPut, "/api/v1/reservations/code/CONF-AAAAAAAA", body)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var resp struct {
				Code string `json:"code"`
			}
			_ = json.Unmarshal(rec.Body.Bytes(), &resp)
			if resp.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", resp.Code, tt.wantCode)
			}
			if tt.name == "plain error" && strings.Contains(rec.Body.String(), "boom") {
				t.Error("internal error text must not leak")
			}
		})
	}
}

func TestGetByCode_IncludeCancelled(t *testing.T) {
	var gotCode string
	var gotInclude bool
	svc := &mockReservationService{
		getFunc: func(_ context.Context, code string, include bool) (*model.Booking, error) {
			gotCode, gotInclude = code, include
			return &model.Booking{ConfirmationCode: code}, nil
		},
	}
	router := newRouter(svc)

	rec := serve(router, http.MethodGet, "/api/v1/reservations/code/CONF-AAAAAAAA?include_cancelled=true", "")
	if rec.Code != http.StatusOK || gotCode != "CONF-AAAAAAAA" || !gotInclude {
		t.Errorf("status=%d code=%s include=%v", rec.Code, gotCode, gotInclude)
	}

	rec = serve(router, http.MethodGet, "/api/v1/reservations/code/CONF-AAAAAAAA?include_cancelled=maybe", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad flag should be 400, got %d", rec.Code)
	}
}

func TestCancel(t *testing.T) {
	svc := &mockReservationService{
		cancelFunc: func(_ context.Context, code string) (*model.Booking, error) {
			return &model.Booking{ConfirmationCode: code, Status: model.StatusCancelled}, nil
		},
	}
	rec := serve(newRouter(svc), http.MethodDelete, "/api/v1/reservations/code/CONF-AAAAAAAA", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"CANCELLED"`) {
		t.Errorf("status=%d body=%s", rec.Code, rec.Body)
	}
}

func TestGetAll(t *testing.T) {
	rec := serve(newRouter(&mockReservationService{}), http.MethodGet, "/api/v1/reservations", "")
	var resp struct {
		Data       []model.Booking `json:"data"`
		TotalCount int             `json:"total_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.TotalCount != 2 || len(resp.Data) != 2 {
		t.Errorf("response = %s", rec.Body)
	}
}

func TestAvailableRooms_QueryParameters(t *testing.T) {
	var received *model.RoomSearch
	svc := &mockReservationService{
		searchFunc: func(_ context.Context, s *model.RoomSearch) ([]model.Room, error) {
			received = s
			return []model.Room{{ID: "R011"}}, nil
		},
	}
	router := newRouter(svc)

	tests := []struct {
		name           string
		query          string
		expectHTTPCode int
	}{
		{"all parameters", "check_in=2025-12-10&check_out=2025-12-12&guests=2&beds=1&amenities=wifi,Bath%20Tub", http.StatusOK},
		{"dates only", "check_in=2025-12-10&check_out=2025-12-12", http.StatusOK},
		{"bad guests", "check_in=2025-12-10&check_out=2025-12-12&guests=two", http.StatusBadRequest},
		{"bad beds", "check_in=2025-12-10&check_out=2025-12-12&beds=1.5", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			received = nil
			rec := serve(router, http.MethodGet, "/api/v1/rooms/available?"+tt.query, "")
			if rec.Code != tt.expectHTTPCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.expectHTTPCode)
			}
			if tt.name == "all parameters" {
				if received.Guests != 2 || received.Beds != 1 || len(received.Amenities) != 2 || received.Amenities[1] != "Bath Tub" {
					t.Errorf("search = %+v", received)
				}
			}
			if tt.name == "dates only" && received.Amenities != nil {
				t.Errorf("no amenities expected, got %v", received.Amenities)
			}
		})
	}
}

type mockPinger struct{ err error }

func (m mockPinger) Ping(context.Context) error { return m.err }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		handler    *HealthHandler
		wantStatus int
	}{
		{"local store", NewHealthHandler(nil, logger.Discard()), http.StatusOK},
		{"database up", NewHealthHandler(mockPinger{}, logger.Discard()), http.StatusOK},
		{"database down", NewHealthHandler(mockPinger{err: errors.New("no primary")}, logger.Discard()), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := httprouter.New()
			tt.handler.RegisterRoutes(router)

			if rec := serve(router, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
				t.Errorf("/health = %d", rec.Code)
			}
			if rec := serve(router, http.MethodGet, "/ready", ""); rec.Code != tt.wantStatus {
				t.Errorf("/ready = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
