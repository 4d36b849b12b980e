// Package auth implements the per-portal session state machine:
// login -> otp-pending -> {registration, dashboard}, with logout closing
// the cycle. Failed submissions never mutate session state or the record
// store.
package auth

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/caremitra/portal/internal/model"
	"github.com/caremitra/portal/internal/repository"
	"github.com/caremitra/portal/pkg/apperror"
	"github.com/caremitra/portal/pkg/idgen"
	"github.com/caremitra/portal/pkg/logger"
	"github.com/caremitra/portal/pkg/token"
)

type Service struct {
	doctors    repository.DoctorRepository
	patients   repository.PatientRepository
	pharmacies repository.PharmacyUserRepository
	verifier   Verifier
	tokens     *token.Service
	validate   *validator.Validate
	log        *logger.Logger
}

func NewService(
	doctors repository.DoctorRepository,
	patients repository.PatientRepository,
	pharmacies repository.PharmacyUserRepository,
	verifier Verifier,
	tokens *token.Service,
	log *logger.Logger,
) *Service {
	return &Service{
		doctors:    doctors,
		patients:   patients,
		pharmacies: pharmacies,
		verifier:   verifier,
		tokens:     tokens,
		validate:   validator.New(),
		log:        log,
	}
}

// StartLogin submits a phone number and issues a verification code. On
// success the session moves to otp-pending.
func (s *Service) StartLogin(ctx context.Context, sess *Session, phone string) error {
	if sess.State != StateLogin {
		return apperror.Validation("login already in progress")
	}
	if phone == "" {
		return apperror.Validation("phone number is required")
	}

	if err := s.verifier.Issue(ctx, phone); err != nil {
		return fmt.Errorf("failed to issue verification code: %w", err)
	}

	sess.Phone = phone
	sess.State = StateOTPPending
	s.log.Debug("login started", "portal", string(sess.Portal), "phone", phone)
	return nil
}

// ResendCode regenerates the verification code without changing state.
func (s *Service) ResendCode(ctx context.Context, sess *Session) error {
	if sess.State != StateOTPPending {
		return apperror.Validation("no verification in progress")
	}
	if err := s.verifier.Issue(ctx, sess.Phone); err != nil {
		return fmt.Errorf("failed to reissue verification code: %w", err)
	}
	return nil
}

// VerifyCode checks the submitted code. A mismatch keeps the session at
// otp-pending. On a match the session lands on the dashboard when a
// record with the session phone exists in the portal's collection, and on
// the registration step otherwise.
func (s *Service) VerifyCode(ctx context.Context, sess *Session, code string) error {
	if sess.State != StateOTPPending {
		return apperror.Validation("no verification in progress")
	}

	ok, err := s.verifier.Verify(ctx, sess.Phone, code)
	if err != nil {
		return fmt.Errorf("failed to verify code: %w", err)
	}
	if !ok {
		return apperror.Validation("invalid code")
	}

	switch sess.Portal {
	case PortalDoctor:
		return s.resolveDoctor(ctx, sess)
	case PortalPatient:
		return s.resolvePatient(ctx, sess)
	case PortalPharmacy:
		return s.resolvePharmacy(ctx, sess)
	default:
		return apperror.Validation(fmt.Sprintf("unknown portal %q", sess.Portal))
	}
}

func (s *Service) resolveDoctor(ctx context.Context, sess *Session) error {
	doctor, err := s.doctors.FindByPhone(ctx, sess.Phone)
	if apperror.IsNotFound(err) {
		sess.State = StateRegistration
		return nil
	}
	if err != nil {
		return err
	}

	sess.Doctor = doctor
	return s.enterDashboard(sess)
}

func (s *Service) resolvePatient(ctx context.Context, sess *Session) error {
	patient, err := s.patients.FindByPhone(ctx, sess.Phone)
	if apperror.IsNotFound(err) {
		sess.State = StateRegistration
		return nil
	}
	if err != nil {
		return err
	}

	sess.Patient = patient
	return s.enterDashboard(sess)
}

// resolvePharmacy covers the pharmacy portal's login/signup split. Signup
// with an unknown phone creates a placeholder profile on the spot; login
// with an unknown phone reports the miss and flips the session to signup
// mode so the user can resubmit.
func (s *Service) resolvePharmacy(ctx context.Context, sess *Session) error {
	user, err := s.pharmacies.FindByPhone(ctx, sess.Phone)
	switch {
	case err == nil:
		sess.PharmacyUser = user
		return s.enterDashboard(sess)
	case !apperror.IsNotFound(err):
		return err
	}

	if sess.Mode != ModeSignup {
		sess.Mode = ModeSignup
		sess.State = StateLogin
		return apperror.NotFound("pharmacy user")
	}

	created := &model.PharmacyUser{
		ID:            idgen.Next(),
		Phone:         sess.Phone,
		PharmacyName:  model.DefaultPharmacyName,
		LicenseNumber: model.DefaultLicenseNumber,
	}
	if err := s.pharmacies.Create(ctx, created); err != nil {
		return err
	}

	sess.PharmacyUser = created
	return s.enterDashboard(sess)
}

// RegisterDoctor completes a doctor registration and moves the session to
// the dashboard. Name and license are required; specialization and
// hospital are optional.
func (s *Service) RegisterDoctor(ctx context.Context, sess *Session, req model.RegisterDoctorRequest) error {
	if sess.State != StateRegistration {
		return apperror.Validation("registration is not open")
	}
	if err := s.validate.Struct(req); err != nil {
		return apperror.Validation("all required fields must be filled")
	}

	doctor := &model.Doctor{
		ID:             idgen.Next(),
		Phone:          sess.Phone,
		Name:           req.Name,
		License:        req.License,
		Specialization: req.Specialization,
		Hospital:       req.Hospital,
	}
	if err := s.doctors.Create(ctx, doctor); err != nil {
		return err
	}

	sess.Doctor = doctor
	return s.enterDashboard(sess)
}

// RegisterPatient completes a patient registration; name, age and place
// are all required.
func (s *Service) RegisterPatient(ctx context.Context, sess *Session, req model.RegisterPatientRequest) error {
	if sess.State != StateRegistration {
		return apperror.Validation("registration is not open")
	}
	if err := s.validate.Struct(req); err != nil {
		return apperror.Validation("all required fields must be filled")
	}

	patient := &model.Patient{
		ID:    idgen.Next(),
		Name:  req.Name,
		Age:   req.Age,
		Place: req.Place,
		Phone: sess.Phone,
	}
	if err := s.patients.Create(ctx, patient); err != nil {
		return err
	}

	sess.Patient = patient
	return s.enterDashboard(sess)
}

// Logout clears all session-local fields and returns to the login state.
// The record store is untouched.
func (s *Service) Logout(sess *Session) {
	sess.Phone = ""
	sess.Token = ""
	sess.Doctor = nil
	sess.Patient = nil
	sess.PharmacyUser = nil
	sess.Mode = ModeLogin
	sess.State = StateLogin
	s.log.Debug("session closed", "portal", string(sess.Portal))
}

func (s *Service) enterDashboard(sess *Session) error {
	signed, err := s.tokens.Issue(sess.Phone, string(sess.Portal))
	if err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}

	sess.Token = signed
	sess.State = StateDashboard
	s.log.Info("session opened", "portal", string(sess.Portal), "phone", sess.Phone)
	return nil
}
