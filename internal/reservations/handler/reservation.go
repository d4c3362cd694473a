package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"hotelbook/internal/reservations/service"
	apperrors "hotelbook/pkg/errors"
	httputil "hotelbook/pkg/http"
	"hotelbook/pkg/logger"
	"hotelbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type ReservationHandler struct {
	service service.ReservationService
	log     *logger.Logger
}

func NewReservationHandler(service service.ReservationService, log *logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log,
	}
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.ReservationRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	booking, err := h.service.Create(r.Context(), &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, booking)
}

func (h *ReservationHandler) GetByCode(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	code := ps.ByName("code")
	includeCancelled, err := parseBool(r, "include_cancelled")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	booking, err := h.service.Get(r.Context(), code, includeCancelled)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, booking)
}

func (h *ReservationHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	bookings, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteList(w, bookings, len(bookings))
}

// Modify replaces the reservation and answers with the new record, which
// carries a new confirmation number.
func (h *ReservationHandler) Modify(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	code := ps.ByName("code")

	var req model.ReservationRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	booking, err := h.service.Modify(r.Context(), code, &req)
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeModifyIncomplete) {
			h.log.Error("Modify left reservation without replacement",
				"confirmation_number", code,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, booking)
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	code := ps.ByName("code")

	booking, err := h.service.Cancel(r.Context(), code)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, booking)
}

func (h *ReservationHandler) Rooms(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	rooms := h.service.Rooms()
	httputil.WriteList(w, rooms, len(rooms))
}

func (h *ReservationHandler) AvailableRooms(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	guests, err := parseInt(r, "guests")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	beds, err := parseInt(r, "beds")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	search := &model.RoomSearch{
		CheckIn:   query.Get("check_in"),
		CheckOut:  query.Get("check_out"),
		Guests:    guests,
		Beds:      beds,
		Amenities: splitList(query.Get("amenities")),
	}

	rooms, err := h.service.SearchRooms(r.Context(), search)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteList(w, rooms, len(rooms))
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/rooms", h.Rooms)
	router.GET("/api/v1/rooms/available", h.AvailableRooms)

	router.POST("/api/v1/reservations", h.Create)
	router.GET("/api/v1/reservations", h.GetAll)
	router.GET("/api/v1/reservations/code/:code", h.GetByCode)
	router.PUT("/api/v1/reservations/code/:code", h.Modify)
	router.DELETE("/api/v1/reservations/code/:code", h.Cancel)
}

func parseInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.InvalidInput(fmt.Sprintf("invalid %s parameter: %s", name, raw))
	}
	return n, nil
}

func parseBool(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperrors.InvalidInput(fmt.Sprintf("invalid %s parameter: %s", name, raw))
	}
	return b, nil
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
