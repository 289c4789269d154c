package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	bookingserrors "registrar/internal/bookings/errors"
	"registrar/internal/bookings/service"
	apperrors "registrar/pkg/errors"
	httputil "registrar/pkg/http"
	"registrar/pkg/logger"
	"registrar/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const (
	bookingsPath    = "/api/bookings"
	bookedDatesPath = "/api/bookings/dates/:state"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var booking model.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		h.log.Warn("Rejected booking request body", "error", err)
		if errors.Is(err, model.ErrInvalidDate) {
			invalid := apperrors.Validation(bookingserrors.MsgValidationFailed, map[string]any{"date": err.Error()})
			if writeErr := httputil.WriteError(w, invalid); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
			}
			return
		}
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: bookingserrors.MsgInvalidRequestBody,
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &booking); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, bookingserrors.MsgBookingSaved, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	bookings, err := h.service.List(r.Context(), r.URL.Query().Get("state"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) BookedDates(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	dates, err := h.service.BookedDates(r.Context(), ps.ByName("state"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "BookedDates", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, dates); err != nil {
		h.log.Error("failed to write success response", "handler", "BookedDates", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST(bookingsPath, h.Create)
	router.GET(bookingsPath, h.List)
	router.GET(bookedDatesPath, h.BookedDates)
}
