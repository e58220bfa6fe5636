//go:build unit

package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"barberslot/internal/domain/user"
	"barberslot/internal/handler/api"
	"barberslot/internal/pkg/errs"
	"barberslot/internal/usecase/commands"
	"barberslot/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// stubBookingCommands returns canned results per method; handler tests
// only care about the status mapping, not the command logic.
type stubBookingCommands struct {
	view *queries.BookingView
	err  error
}

func (s *stubBookingCommands) CommitBooking(context.Context, commands.CommitBookingParams) (*queries.BookingView, error) {
	return s.view, s.err
}

func (s *stubBookingCommands) Confirm(context.Context, uuid.UUID, commands.Actor) (*queries.BookingView, error) {
	return s.view, s.err
}

func (s *stubBookingCommands) Cancel(context.Context, uuid.UUID, commands.Actor) (*queries.BookingView, error) {
	return s.view, s.err
}

func (s *stubBookingCommands) Complete(context.Context, uuid.UUID, commands.Actor) (*queries.BookingView, error) {
	return s.view, s.err
}

type stubBookingQueries struct {
	view *queries.BookingView
	err  error
}

func (s *stubBookingQueries) GetByID(context.Context, uuid.UUID) (*queries.BookingView, error) {
	return s.view, s.err
}

func (s *stubBookingQueries) ListByUser(context.Context, uuid.UUID) ([]*queries.BookingView, error) {
	if s.view == nil {
		return nil, s.err
	}
	return []*queries.BookingView{s.view}, s.err
}

type BookingHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	commands *stubBookingCommands
	queries  *stubBookingQueries
	userID   uuid.UUID
	role     user.Role
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.commands = &stubBookingCommands{}
	s.queries = &stubBookingQueries{}
	s.userID = uuid.New()
	s.role = user.RoleCustomer
	handler := api.NewBookingHandler(s.commands, s.queries)

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", s.role)
		c.Next()
	}

	s.router.POST("/bookings", authMiddleware, handler.CreateBooking)
	s.router.GET("/bookings", authMiddleware, handler.GetUserBookings)
	s.router.GET("/bookings/:id", authMiddleware, handler.GetBooking)
	s.router.POST("/bookings/:id/confirm", authMiddleware, handler.ConfirmBooking)
	s.router.POST("/bookings/:id/cancel", authMiddleware, handler.CancelBooking)
	s.router.POST("/bookings/:id/complete", authMiddleware, handler.CompleteBooking)
}

func (s *BookingHandlerTestSuite) request(method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer token")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *BookingHandlerTestSuite) sampleView() *queries.BookingView {
	return &queries.BookingView{
		ID:          uuid.New(),
		BarberID:    uuid.New(),
		ServiceID:   uuid.New(),
		OptionID:    uuid.New(),
		UserID:      s.userID,
		StartAt:     time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC),
		DurationMin: 30,
		Status:      "pending",
	}
}

func (s *BookingHandlerTestSuite) createBody() string {
	body, _ := json.Marshal(gin.H{
		"barber_id":  uuid.New().String(),
		"service_id": uuid.New().String(),
		"start":      "2026-01-05T10:00:00Z",
	})
	return string(body)
}

func (s *BookingHandlerTestSuite) TestCreateBookingSuccess() {
	s.commands.view = s.sampleView()

	w := s.request(http.MethodPost, "/bookings", s.createBody())
	s.Equal(http.StatusCreated, w.Code)

	var resp map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("pending", resp["status"])
}

func (s *BookingHandlerTestSuite) TestCreateBookingStatusMapping() {
	cases := []struct {
		err  error
		code int
	}{
		{errs.ErrSlotUnavailable, http.StatusConflict},
		{errs.ErrBarberNotFound, http.StatusNotFound},
		{errs.ErrServiceNotFound, http.StatusNotFound},
		{errs.ErrValidation, http.StatusBadRequest},
		{errs.ErrTransientStore, http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		s.commands.err = tc.err
		w := s.request(http.MethodPost, "/bookings", s.createBody())
		s.Equal(tc.code, w.Code, tc.err.Error())
	}
}

func (s *BookingHandlerTestSuite) TestCreateBookingRejectsMalformedBody() {
	w := s.request(http.MethodPost, "/bookings", "{not json")
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *BookingHandlerTestSuite) TestCreateBookingRejectsTerminalInitialStatus() {
	body, _ := json.Marshal(gin.H{
		"barber_id":      uuid.New().String(),
		"service_id":     uuid.New().String(),
		"start":          "2026-01-05T10:00:00Z",
		"initial_status": "cancelled",
	})
	w := s.request(http.MethodPost, "/bookings", string(body))
	s.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (s *BookingHandlerTestSuite) TestCreateBookingRequiresAuth() {
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(s.createBody()))
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *BookingHandlerTestSuite) TestTransitionMapping() {
	id := uuid.New().String()

	s.commands.view = s.sampleView()
	s.commands.view.Status = "confirmed"
	w := s.request(http.MethodPost, "/bookings/"+id+"/confirm", "")
	s.Equal(http.StatusOK, w.Code)

	s.commands.view = nil
	s.commands.err = errs.ErrInvalidTransition
	w = s.request(http.MethodPost, "/bookings/"+id+"/complete", "")
	s.Equal(http.StatusUnprocessableEntity, w.Code)

	s.commands.err = errs.ErrBookingForbidden
	w = s.request(http.MethodPost, "/bookings/"+id+"/cancel", "")
	s.Equal(http.StatusForbidden, w.Code)

	s.commands.err = errs.ErrBookingNotFound
	w = s.request(http.MethodPost, "/bookings/"+id+"/confirm", "")
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *BookingHandlerTestSuite) TestTransitionRejectsBadID() {
	w := s.request(http.MethodPost, "/bookings/not-a-uuid/confirm", "")
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *BookingHandlerTestSuite) TestGetBookingOwnership() {
	s.queries.view = s.sampleView()
	w := s.request(http.MethodGet, "/bookings/"+uuid.New().String(), "")
	s.Equal(http.StatusOK, w.Code)

	// Someone else's booking is hidden from customers but visible to staff.
	s.queries.view.UserID = uuid.New()
	w = s.request(http.MethodGet, "/bookings/"+uuid.New().String(), "")
	s.Equal(http.StatusForbidden, w.Code)

	s.role = user.RoleBarber
	w = s.request(http.MethodGet, "/bookings/"+uuid.New().String(), "")
	s.Equal(http.StatusOK, w.Code)
}

func (s *BookingHandlerTestSuite) TestGetBookingNotFound() {
	s.queries.err = errs.ErrBookingNotFound
	w := s.request(http.MethodGet, "/bookings/"+uuid.New().String(), "")
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *BookingHandlerTestSuite) TestGetUserBookings() {
	s.queries.view = s.sampleView()
	w := s.request(http.MethodGet, "/bookings", "")
	s.Equal(http.StatusOK, w.Code)

	var resp []map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Len(resp, 1)
}

func TestBookingHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}
