package user

import "errors"

var ErrInvalidRole = errors.New("invalid role")

// Role identifies who is acting on the scheduling API. Customers book for
// themselves; barbers and admins manage bookings for their shop.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleBarber   Role = "barber"
	RoleAdmin    Role = "admin"
)

func NewRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleBarber, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanManageBookings reports whether the role may confirm or complete
// bookings on behalf of the shop.
func (r Role) CanManageBookings() bool {
	return r == RoleBarber || r == RoleAdmin
}
