package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"vaxslot/internal/booking"
	"vaxslot/internal/domain"
	"vaxslot/internal/metrics"
	"vaxslot/internal/store"
)

const dateLayout = "2006-01-02"

type bookingService interface {
	Book(ctx context.Context, in booking.BookInput) (domain.Appointment, error)
	CheckSlot(ctx context.Context, date time.Time, start, end domain.TimeOfDay) (bool, []domain.Appointment, error)
	ListAll(ctx context.Context) ([]domain.Appointment, error)
	ListByDate(ctx context.Context, date time.Time) ([]domain.Appointment, error)
	Cancel(ctx context.Context, userID string, date time.Time) (domain.Appointment, error)
}

type AppointmentsHandler struct {
	svc bookingService
	log *slog.Logger
	col *metrics.Collector
}

func NewAppointmentsHandler(svc bookingService, log *slog.Logger, col *metrics.Collector) *AppointmentsHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AppointmentsHandler{
		svc: svc,
		log: log.With(slog.String("component", "http.appointments")),
		col: col,
	}
}

type bookRequest struct {
	UserID      string `json:"user_id" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
}

type appointmentResponse struct {
	ID          int64            `json:"id"`
	UserID      string           `json:"user_id"`
	Description string           `json:"description"`
	Date        string           `json:"date"`
	StartTime   domain.TimeOfDay `json:"start_time"`
	EndTime     domain.TimeOfDay `json:"end_time"`
	CreatedAt   time.Time        `json:"created_at"`
}

func (h *AppointmentsHandler) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"msg": "Welcome to your Coronavirus Vaccination Appointment"})
}

func (h *AppointmentsHandler) CheckSlot(c *gin.Context) {
	log := h.log.With(slog.String("handler", "CheckSlot"), slog.String("request_id", requestIDFrom(c)))

	date, ok := parseDateParam(c, c.Query("date"))
	if !ok {
		return
	}
	start, ok := parseTimeParam(c, "start_time")
	if !ok {
		return
	}
	end, ok := parseTimeParam(c, "end_time")
	if !ok {
		return
	}

	available, conflicts, err := h.svc.CheckSlot(c.Request.Context(), date, start, end)
	if err != nil {
		log.Error("slot check failed", slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
		return
	}

	if available {
		c.JSON(http.StatusOK, gin.H{"msg": "Appointment Status", "data": "Available"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"msg":       "Appointment Status",
		"data":      "Unavailable",
		"conflicts": toResponses(conflicts),
	})
}

func (h *AppointmentsHandler) ListAll(c *gin.Context) {
	log := h.log.With(slog.String("handler", "ListAll"), slog.String("request_id", requestIDFrom(c)))

	appts, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		log.Error("appointments list failed", slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
		return
	}
	c.JSON(http.StatusOK, toResponses(appts))
}

func (h *AppointmentsHandler) ListByDate(c *gin.Context) {
	log := h.log.With(slog.String("handler", "ListByDate"), slog.String("request_id", requestIDFrom(c)))

	date, ok := parseDateParam(c, c.Param("date"))
	if !ok {
		return
	}

	appts, err := h.svc.ListByDate(c.Request.Context(), date)
	if err != nil {
		log.Error("appointments list failed", slog.Any("err", err), slog.Time("date", date))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
		return
	}
	c.JSON(http.StatusOK, toResponses(appts))
}

func (h *AppointmentsHandler) Book(c *gin.Context) {
	log := h.log.With(slog.String("handler", "Book"), slog.String("request_id", requestIDFrom(c)))

	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("invalid request", slog.Any("err", err))
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid request body", "data": nil})
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		log.Warn("invalid request", slog.String("reason", "bad_date"), slog.String("date", req.Date))
		c.JSON(http.StatusBadRequest, gin.H{"msg": "date must be formatted YYYY-MM-DD", "data": nil})
		return
	}
	start, err := domain.ParseTimeOfDay(req.StartTime)
	if err != nil {
		log.Warn("invalid request", slog.String("reason", "bad_start_time"), slog.String("start_time", req.StartTime))
		c.JSON(http.StatusBadRequest, gin.H{"msg": "start_time must be formatted HH:MM or HH:MM:SS", "data": nil})
		return
	}
	end, err := domain.ParseTimeOfDay(req.EndTime)
	if err != nil {
		log.Warn("invalid request", slog.String("reason", "bad_end_time"), slog.String("end_time", req.EndTime))
		c.JSON(http.StatusBadRequest, gin.H{"msg": "end_time must be formatted HH:MM or HH:MM:SS", "data": nil})
		return
	}

	appt, err := h.svc.Book(c.Request.Context(), booking.BookInput{
		UserID:      req.UserID,
		Description: req.Description,
		Date:        date,
		StartTime:   start,
		EndTime:     end,
	})
	if err != nil {
		h.respondBookError(c, log, req, err)
		return
	}

	h.col.BookingsTotal.WithLabelValues(metrics.OutcomeAccepted).Inc()
	log.Info("appointment booked",
		slog.Int64("appointment_id", appt.ID),
		slog.String("user_id", appt.UserID),
		slog.Time("date", appt.Date),
		slog.String("start_time", appt.StartTime.String()),
		slog.String("end_time", appt.EndTime.String()),
	)
	c.JSON(http.StatusCreated, gin.H{"msg": "Booking Successful", "data": toResponse(appt)})
}

func (h *AppointmentsHandler) respondBookError(c *gin.Context, log *slog.Logger, req bookRequest, err error) {
	switch {
	case errors.Is(err, store.ErrSlotUnavailable):
		h.col.BookingsTotal.WithLabelValues(metrics.OutcomeSlotUnavailable).Inc()
		log.Info("booking rejected: slot unavailable", slog.String("user_id", req.UserID), slog.String("date", req.Date))
		c.JSON(http.StatusConflict, gin.H{"msg": "Booking not available", "data": nil})
	case errors.Is(err, store.ErrUserAlreadyBooked):
		h.col.BookingsTotal.WithLabelValues(metrics.OutcomeUserBooked).Inc()
		log.Info("booking rejected: user already booked", slog.String("user_id", req.UserID))
		c.JSON(http.StatusConflict, gin.H{"msg": "Booking not available, User is already booked", "data": nil})
	default:
		var vErr *booking.ValidationError
		if errors.As(err, &vErr) {
			h.col.BookingsTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
			log.Warn("booking rejected: invalid", slog.Any("err", err), slog.String("user_id", req.UserID))
			c.JSON(http.StatusBadRequest, gin.H{"msg": vErr.Error(), "data": nil})
			return
		}
		h.col.BookingsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		log.Error("booking failed", slog.Any("err", err), slog.String("user_id", req.UserID))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
	}
}

func (h *AppointmentsHandler) Cancel(c *gin.Context) {
	log := h.log.With(slog.String("handler", "Cancel"), slog.String("request_id", requestIDFrom(c)))

	userID := c.Param("user_id")
	date, ok := parseDateParam(c, c.Query("date"))
	if !ok {
		return
	}

	appt, err := h.svc.Cancel(c.Request.Context(), userID, date)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.col.CancellationsTotal.WithLabelValues(metrics.OutcomeNotFound).Inc()
			log.Info("cancel target not found", slog.String("user_id", userID), slog.Time("date", date))
			c.JSON(http.StatusNotFound, gin.H{"msg": "Booking not found", "data": nil})
			return
		}
		h.col.CancellationsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		log.Error("cancel failed", slog.Any("err", err), slog.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
		return
	}

	h.col.CancellationsTotal.WithLabelValues(metrics.OutcomeDeleted).Inc()
	log.Info("appointment cancelled",
		slog.Int64("appointment_id", appt.ID),
		slog.String("user_id", appt.UserID),
		slog.Time("date", appt.Date),
	)
	c.JSON(http.StatusOK, gin.H{"msg": "Booking Deleted", "data": toResponse(appt)})
}

func parseDateParam(c *gin.Context, raw string) (time.Time, bool) {
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "date must be formatted YYYY-MM-DD", "data": nil})
		return time.Time{}, false
	}
	return date, true
}

func parseTimeParam(c *gin.Context, name string) (domain.TimeOfDay, bool) {
	t, err := domain.ParseTimeOfDay(c.Query(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": name + " must be formatted HH:MM or HH:MM:SS", "data": nil})
		return 0, false
	}
	return t, true
}

func toResponse(a domain.Appointment) appointmentResponse {
	return appointmentResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		Description: a.Description,
		Date:        a.Date.Format(dateLayout),
		StartTime:   a.StartTime,
		EndTime:     a.EndTime,
		CreatedAt:   a.CreatedAt,
	}
}

func toResponses(appts []domain.Appointment) []appointmentResponse {
	out := make([]appointmentResponse, 0, len(appts))
	for _, a := range appts {
		out = append(out, toResponse(a))
	}
	return out
}
