package request

import (
	"errors"
	"time"

	"barberslot/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	errInvalidID   = errors.New("invalid id format")
	errInvalidDate = errors.New("invalid date format")
)

const dateLayout = "2006-01-02"

// AvailabilityQuery binds the query string of GET /availability. From
// and To are calendar dates in the shop's timezone; the day walk is
// inclusive of both ends.
type AvailabilityQuery struct {
	BarberID  string `form:"barber_id" binding:"required"`
	ServiceID string `form:"service_id" binding:"required"`
	OptionID  string `form:"option_id"`
	From      string `form:"from" binding:"required"`
	To        string `form:"to" binding:"required"`
}

// ToParams parses From and To in the shop location. Binding them as
// time.Time would anchor the dates to the server's local zone and shift
// the requested range by up to a day.
func (r AvailabilityQuery) ToParams(loc *time.Location) (queries.ComputeAvailabilityParams, error) {
	barberID, err := uuid.Parse(r.BarberID)
	if err != nil {
		return queries.ComputeAvailabilityParams{}, errInvalidID
	}
	serviceID, err := uuid.Parse(r.ServiceID)
	if err != nil {
		return queries.ComputeAvailabilityParams{}, errInvalidID
	}

	var optionID *uuid.UUID
	if r.OptionID != "" {
		id, err := uuid.Parse(r.OptionID)
		if err != nil {
			return queries.ComputeAvailabilityParams{}, errInvalidID
		}
		optionID = &id
	}

	from, err := time.ParseInLocation(dateLayout, r.From, loc)
	if err != nil {
		return queries.ComputeAvailabilityParams{}, errInvalidDate
	}
	to, err := time.ParseInLocation(dateLayout, r.To, loc)
	if err != nil {
		return queries.ComputeAvailabilityParams{}, errInvalidDate
	}

	return queries.ComputeAvailabilityParams{
		BarberID:  barberID,
		ServiceID: serviceID,
		OptionID:  optionID,
		From:      from,
		To:        to,
	}, nil
}
