package models

import (
	"time"
)

// Staff roles derived from a username prefix.
const (
	RoleDoctor        = "Doctor"
	RoleNurse         = "Nurse"
	RoleLabTechnician = "Lab Technician"
	RolePharmacist    = "Pharmacist"
	RoleAdministrator = "Administrator"
	RoleReceptionist  = "Receptionist"
	RoleCashier       = "Cashier"
	RoleStaff         = "Staff"
)

// Session is the display identity of whoever signed in at the login page. It
// is cosmetic and grants nothing.
type Session struct {
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	Greeting    string    `json:"greeting"`
	Token       string    `json:"token,omitempty"`
	ExpiresAt   time.Time `json:"expires_at"`
}
