package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/caremitra/portal/internal/model"
)

// Portal identifies which of the three front-end modules a session
// belongs to. The portal decides which collection logins are checked
// against and which registration form applies.
type Portal string

const (
	PortalDoctor   Portal = "doctor"
	PortalPatient  Portal = "patient"
	PortalPharmacy Portal = "pharmacy"
)

// State is the position of a session in the auth state machine:
//
//	login -> otp-pending -> {registration, dashboard}
//	dashboard -> login (logout)
type State string

const (
	StateLogin        State = "login"
	StateOTPPending   State = "otp-pending"
	StateRegistration State = "registration"
	StateDashboard    State = "dashboard"
)

// Mode selects between the pharmacy portal's login and signup entry
// points. Doctor and patient sessions stay in ModeLogin; their
// registration step is reached through a failed lookup instead.
type Mode string

const (
	ModeLogin  Mode = "login"
	ModeSignup Mode = "signup"
)

// Session is the explicit per-user session context passed to every auth
// operation. It is created when a user opens a portal, carries all
// session-local state, and is wiped on logout. It is never a hidden
// singleton.
type Session struct {
	ID        uuid.UUID
	Portal    Portal
	State     State
	Mode      Mode
	Phone     string
	Token     string
	CreatedAt time.Time

	// Exactly one of these is set after a successful dashboard
	// transition, depending on Portal.
	Doctor       *model.Doctor
	Patient      *model.Patient
	PharmacyUser *model.PharmacyUser
}

// NewSession opens a fresh session for the given portal in the login
// state.
func NewSession(portal Portal) *Session {
	return &Session{
		ID:        uuid.New(),
		Portal:    portal,
		State:     StateLogin,
		Mode:      ModeLogin,
		CreatedAt: time.Now(),
	}
}
