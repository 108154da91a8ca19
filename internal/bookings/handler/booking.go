package handler

import (
	"net/http"

	"laundry/internal/bookings/service"
	apperrors "laundry/pkg/errors"
	httputil "laundry/pkg/http"
	"laundry/pkg/logger"
	"laundry/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const MsgInvalidRequestBody = "Invalid request body"

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

func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, "Book", apperrors.InvalidInput(MsgInvalidRequestBody))
		return
	}

	// Field values go to the service untouched so it alone decides the check order.
	confirmation, err := h.service.Book(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, "Book", err)
		return
	}

	h.writeJSONPayload(w, r, "Book", confirmation)
}

func (h *BookingHandler) ListBookedTimes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	bookedTimes, err := h.service.ListBookedTimes(r.Context())
	if err != nil {
		h.writeError(w, r, "ListBookedTimes", err)
		return
	}

	h.writeJSONPayload(w, r, "ListBookedTimes", bookedTimes)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req model.CancelRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, "Cancel", apperrors.InvalidInput(MsgInvalidRequestBody))
		return
	}

	msg, err := h.service.CancelBooking(r.Context(), ps.ByName("id"), req.HouseID)
	if err != nil {
		h.writeError(w, r, "Cancel", err)
		return
	}

	h.write(w, "Cancel", httputil.BuildSuccessResponse(msg))
}

func (h *BookingHandler) writeJSONPayload(w http.ResponseWriter, r *http.Request, handler string, data any) {
	resp, err := httputil.BuildJSONResponse(data)
	if err != nil {
		h.writeError(w, r, handler, apperrors.Internal(err))
		return
	}
	h.write(w, handler, resp)
}

// writeError is the one place an internal cause gets logged.
func (h *BookingHandler) writeError(w http.ResponseWriter, r *http.Request, handler string, err error) {
	if appErr := apperrors.AsAppError(err); appErr.IsInternal() {
		h.log.Error("Request failed",
			"handler", handler,
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}
	h.write(w, handler, httputil.BuildResponseFromError(err))
}

func (h *BookingHandler) write(w http.ResponseWriter, handler string, resp *model.Response) {
	if err := httputil.WriteResponse(w, resp); err != nil {
		h.log.Error("failed to write response", "handler", handler, "operation", "WriteResponse", "error", err)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.Book)
	router.GET("/api/v1/bookings/booked-times", h.ListBookedTimes)
	router.POST("/api/v1/bookings/id/:id/cancel", h.Cancel)
}
