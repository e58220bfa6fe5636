package api

import (
	"net/http"

	reqdto "barberslot/internal/handler/dto/request"
	resdto "barberslot/internal/handler/dto/response"
	"barberslot/internal/handler/httperr"
	"barberslot/internal/handler/middleware"
	"barberslot/internal/pkg/errs"
	"barberslot/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type HoldHandler struct {
	holds commands.HoldCommands
}

func NewHoldHandler(holds commands.HoldCommands) *HoldHandler {
	return &HoldHandler{
		holds: holds,
	}
}

// @Summary Create hold
// @Description Place a short-lived hold on a slot while checkout completes
// @Tags holds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateHoldRequest true "Hold request"
// @Success 201 {object} resdto.HoldResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /holds [post]
func (h *HoldHandler) CreateHold(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("missing user context"), "Internal server error", nil)
		return
	}

	var req reqdto.CreateHoldRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	created, err := h.holds.CreateHold(c.Request.Context(), req.ToParams(userID))
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrBarberNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Barber not found", nil)
		case errs.Is(err, errs.ErrSlotUnavailable):
			httperr.AbortWithError(c, http.StatusConflict, err, "Slot is no longer available", nil)
		case errs.Is(err, errs.ErrValidation):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid hold window", nil)
		case errs.Is(err, errs.ErrTransientStore):
			httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Temporarily unable to place hold", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromHold(created))
}

// @Summary Release hold
// @Description Release a hold owned by the current user
// @Tags holds
// @Produce json
// @Security BearerAuth
// @Param id path string true "Hold ID"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /holds/{id} [delete]
func (h *HoldHandler) ReleaseHold(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("missing user context"), "Internal server error", nil)
		return
	}

	holdID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid hold ID format", nil)
		return
	}

	if err := h.holds.ReleaseHold(c.Request.Context(), holdID, userID); err != nil {
		switch {
		case errs.Is(err, errs.ErrHoldNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Hold not found", nil)
		case errs.Is(err, errs.ErrHoldForbidden):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Hold belongs to another user", nil)
		case errs.Is(err, errs.ErrTransientStore):
			httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Temporarily unable to release hold", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
