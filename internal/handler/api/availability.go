package api

import (
	"net/http"
	"time"

	reqdto "barberslot/internal/handler/dto/request"
	resdto "barberslot/internal/handler/dto/response"
	"barberslot/internal/pkg/errs"
	"barberslot/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	availability queries.AvailabilityQueries
	loc          *time.Location
}

func NewAvailabilityHandler(availability queries.AvailabilityQueries, loc *time.Location) *AvailabilityHandler {
	return &AvailabilityHandler{
		availability: availability,
		loc:          loc,
	}
}

// @Summary Compute availability
// @Description List bookable slots for a barber, service and date range
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param barber_id query string true "Barber ID"
// @Param service_id query string true "Service ID"
// @Param option_id query string false "Service option ID (defaults to the service's default option)"
// @Param from query string true "Range start date (YYYY-MM-DD)"
// @Param to query string true "Range end date (YYYY-MM-DD, inclusive)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /availability [get]
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	var query reqdto.AvailabilityQuery
	if bindErr := c.ShouldBindQuery(&query); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	params, err := query.ToParams(h.loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	slots, err := h.availability.ComputeAvailability(c.Request.Context(), params)
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrBarberNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Barber not found",
			})
		case errs.Is(err, errs.ErrServiceNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Service not found",
			})
		case errs.Is(err, errs.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid availability range",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromSlots(slots))
}
