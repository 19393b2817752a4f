package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/scenicairways/backend/internal/domain"
	"github.com/scenicairways/backend/internal/service/booking"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	UserID           string             `json:"user_id" binding:"required"`
	FlightID         string             `json:"flight_id" binding:"required"`
	Seats            []string           `json:"seats" binding:"required,min=1"`
	PassengerDetails []domain.Passenger `json:"passenger_details" binding:"required,min=1"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type bookingResponse struct {
	ID               string             `json:"id"`
	UserID           string             `json:"user_id"`
	FlightID         string             `json:"flight_id"`
	Seats            []string           `json:"seats"`
	PassengerDetails []domain.Passenger `json:"passenger_details"`
	Status           string             `json:"status"`
	QRCode           string             `json:"qr_code"`
	BookingDate      string             `json:"booking_date"`
	UpdatedAt        string             `json:"updated_at"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/user/:userId", h.listByUser)
	router.GET("/:id", h.get)
	router.POST("/", h.create)
	router.PUT("/:id/status", h.updateStatus)
	router.DELETE("/:id", h.cancel)
}

func (h *BookingHandler) list(c *gin.Context) {
	bookings, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(bookings))
}

func (h *BookingHandler) listByUser(c *gin.Context) {
	bookings, err := h.service.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(bookings))
}

func (h *BookingHandler) get(c *gin.Context) {
	b, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		UserID:           req.UserID,
		FlightID:         req.FlightID,
		Seats:            req.Seats,
		PassengerDetails: req.PassengerDetails,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(b))
}

func (h *BookingHandler) updateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, ok := parseStatus(req.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	b, err := h.service.UpdateBookingStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	cancelled, err := h.service.CancelBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !cancelled {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

// parseStatus maps the transport string onto the closed status enum.
func parseStatus(raw string) (domain.BookingStatus, bool) {
	switch domain.BookingStatus(raw) {
	case domain.BookingStatusPending, domain.BookingStatusConfirmed, domain.BookingStatusCancelled:
		return domain.BookingStatus(raw), true
	default:
		return "", false
	}
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:               b.ID,
		UserID:           b.UserID,
		FlightID:         b.FlightID,
		Seats:            b.Seats,
		PassengerDetails: b.PassengerDetails,
		Status:           string(b.Status),
		QRCode:           b.QRCode,
		BookingDate:      b.BookingDate.Format(time.RFC3339),
		UpdatedAt:        b.UpdatedAt.Format(time.RFC3339),
	}
}

func toBookingResponses(bookings []domain.Booking) []bookingResponse {
	out := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResponse(&bookings[i]))
	}
	return out
}
