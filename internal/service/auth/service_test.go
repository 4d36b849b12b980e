package auth

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caremitra/portal/internal/model"
	"github.com/caremitra/portal/internal/repository/localstore"
	"github.com/caremitra/portal/internal/store"
	"github.com/caremitra/portal/pkg/apperror"
	"github.com/caremitra/portal/pkg/logger"
	"github.com/caremitra/portal/pkg/token"
)

// captureNotifier records the last revealed code so tests can submit it.
type captureNotifier struct {
	code string
}

func (n *captureNotifier) Notify(phone, code string) {
	n.code = code
}

type fixture struct {
	svc      *Service
	notifier *captureNotifier
	store    store.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.New(&logger.Config{Level: logger.ErrorLevel, TimeFormat: time.RFC3339, Output: io.Discard})
	st, err := store.Open(filepath.Join(t.TempDir(), "portal.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	notifier := &captureNotifier{}
	verifier := NewMockVerifier(notifier, VerifierConfig{
		CodeTTL:     time.Minute,
		ResendEvery: time.Millisecond,
		ResendBurst: 100,
	}, log)
	tokens := token.NewService("test-secret", time.Hour)

	svc := NewService(
		localstore.NewDoctorRepository(st),
		localstore.NewPatientRepository(st),
		localstore.NewPharmacyUserRepository(st),
		verifier,
		tokens,
		log,
	)
	return &fixture{svc: svc, notifier: notifier, store: st}
}

func TestStartLoginRequiresPhone(t *testing.T) {
	f := newFixture(t)
	sess := NewSession(PortalPatient)

	err := f.svc.StartLogin(context.Background(), sess, "")
	assert.True(t, apperror.IsValidation(err))
	assert.Equal(t, StateLogin, sess.State)
}

func TestWrongCodeKeepsSessionPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess := NewSession(PortalPatient)
	require.NoError(t, f.svc.StartLogin(ctx, sess, "9000000001"))

	err := f.svc.VerifyCode(ctx, sess, "0000")
	if f.notifier.code == "0000" {
		t.Skip("generated code collided with the deliberately wrong guess")
	}
	assert.True(t, apperror.IsValidation(err))
	assert.Equal(t, StateOTPPending, sess.State)

	// the correct code still works afterwards
	require.NoError(t, f.svc.ResendCode(ctx, sess))
	require.NoError(t, f.svc.VerifyCode(ctx, sess, f.notifier.code))
}

func TestUnknownPatientGoesThroughRegistration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess := NewSession(PortalPatient)

	require.NoError(t, f.svc.StartLogin(ctx, sess, "9000000001"))
	assert.Equal(t, StateOTPPending, sess.State)

	require.NoError(t, f.svc.VerifyCode(ctx, sess, f.notifier.code))
	assert.Equal(t, StateRegistration, sess.State)

	// missing required fields block the transition and leave the store alone
	err := f.svc.RegisterPatient(ctx, sess, model.RegisterPatientRequest{Name: "A"})
	assert.True(t, apperror.IsValidation(err))
	assert.Equal(t, StateRegistration, sess.State)

	var patients []model.Patient
	require.NoError(t, f.store.Load(ctx, model.CollectionPatients, &patients))
	assert.Empty(t, patients)

	require.NoError(t, f.svc.RegisterPatient(ctx, sess, model.RegisterPatientRequest{
		Name: "A", Age: "30", Place: "X",
	}))
	assert.Equal(t, StateDashboard, sess.State)
	assert.NotEmpty(t, sess.Token)
	require.NotNil(t, sess.Patient)
	assert.Equal(t, "9000000001", sess.Patient.Phone)

	require.NoError(t, f.store.Load(ctx, model.CollectionPatients, &patients))
	require.Len(t, patients, 1, "registration appends exactly one record")
	assert.Equal(t, "9000000001", patients[0].Phone)
	assert.NotZero(t, patients[0].ID)
}

func TestKnownDoctorLandsOnDashboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	existing := []model.Doctor{{ID: 1, Phone: "9000000009", Name: "Asha Rao", License: "MCI-1"}}
	require.NoError(t, f.store.Save(ctx, model.CollectionDoctors, existing))

	sess := NewSession(PortalDoctor)
	require.NoError(t, f.svc.StartLogin(ctx, sess, "9000000009"))
	require.NoError(t, f.svc.VerifyCode(ctx, sess, f.notifier.code))

	assert.Equal(t, StateDashboard, sess.State)
	require.NotNil(t, sess.Doctor)
	assert.Equal(t, "Asha Rao", sess.Doctor.Name)
}

func TestDoctorRegistrationRequiresNameAndLicense(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess := NewSession(PortalDoctor)
	require.NoError(t, f.svc.StartLogin(ctx, sess, "9000000011"))
	require.NoError(t, f.svc.VerifyCode(ctx, sess, f.notifier.code))
	require.Equal(t, StateRegistration, sess.State)

	err := f.svc.RegisterDoctor(ctx, sess, model.RegisterDoctorRequest{Name: "No License"})
	assert.True(t, apperror.IsValidation(err))

	require.NoError(t, f.svc.RegisterDoctor(ctx, sess, model.RegisterDoctorRequest{
		Name:    "Vikram Shah",
		License: "MCI-2",
	}))
	assert.Equal(t, StateDashboard, sess.State)
}

func TestResendRegeneratesCodeWithoutStateChange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess := NewSession(PortalPatient)
	require.NoError(t, f.svc.StartLogin(ctx, sess, "9000000001"))

	require.NoError(t, f.svc.ResendCode(ctx, sess))
	assert.Equal(t, StateOTPPending, sess.State)
	require.NoError(t, f.svc.VerifyCode(ctx, sess, f.notifier.code))
}

func TestResendIsThrottled(t *testing.T) {
	log := logger.New(&logger.Config{Level: logger.ErrorLevel, TimeFormat: time.RFC3339, Output: io.Discard})
	notifier := &captureNotifier{}
	verifier := NewMockVerifier(notifier, VerifierConfig{
		CodeTTL:     time.Minute,
		ResendEvery: time.Hour,
		ResendBurst: 1,
	}, log)
	ctx := context.Background()

	require.NoError(t, verifier.Issue(ctx, "9000000001"))
	err := verifier.Issue(ctx, "9000000001")
	assert.True(t, apperror.IsThrottled(err))
}

func TestLogoutClearsSessionButNotStore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess := NewSession(PortalPatient)
	require.NoError(t, f.svc.StartLogin(ctx, sess, "9000000001"))
	require.NoError(t, f.svc.VerifyCode(ctx, sess, f.notifier.code))
	require.NoError(t, f.svc.RegisterPatient(ctx, sess, model.RegisterPatientRequest{Name: "A", Age: "30", Place: "X"}))

	f.svc.Logout(sess)

	assert.Equal(t, StateLogin, sess.State)
	assert.Empty(t, sess.Phone)
	assert.Empty(t, sess.Token)
	assert.Nil(t, sess.Patient)

	var patients []model.Patient
	require.NoError(t, f.store.Load(ctx, model.CollectionPatients, &patients))
	assert.Len(t, patients, 1, "logout must not mutate the record store")
}

func TestPharmacySignupCreatesPlaceholderProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess := NewSession(PortalPharmacy)
	sess.Mode = ModeSignup

	require.NoError(t, f.svc.StartLogin(ctx, sess, "9000000003"))
	require.NoError(t, f.svc.VerifyCode(ctx, sess, f.notifier.code))

	assert.Equal(t, StateDashboard, sess.State)
	require.NotNil(t, sess.PharmacyUser)
	assert.Equal(t, model.DefaultPharmacyName, sess.PharmacyUser.PharmacyName)
	assert.Equal(t, model.DefaultLicenseNumber, sess.PharmacyUser.LicenseNumber)

	var users []model.PharmacyUser
	require.NoError(t, f.store.Load(ctx, model.CollectionPharmacyUsers, &users))
	require.Len(t, users, 1)
}

func TestPharmacyLoginWithUnknownPhoneFlipsToSignup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess := NewSession(PortalPharmacy)

	require.NoError(t, f.svc.StartLogin(ctx, sess, "9000000004"))
	err := f.svc.VerifyCode(ctx, sess, f.notifier.code)

	assert.True(t, apperror.IsNotFound(err))
	assert.Equal(t, ModeSignup, sess.Mode)
	assert.Equal(t, StateLogin, sess.State)

	var users []model.PharmacyUser
	require.NoError(t, f.store.Load(ctx, model.CollectionPharmacyUsers, &users))
	assert.Empty(t, users, "a failed login lookup must not create a user")
}

func TestKnownPharmacyUserLogsInDirectly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Save(ctx, model.CollectionPharmacyUsers, []model.PharmacyUser{
		{ID: 1, Phone: "9000000005", PharmacyName: "Sunrise Medicals", LicenseNumber: "KA-99"},
	}))

	sess := NewSession(PortalPharmacy)
	require.NoError(t, f.svc.StartLogin(ctx, sess, "9000000005"))
	require.NoError(t, f.svc.VerifyCode(ctx, sess, f.notifier.code))

	assert.Equal(t, StateDashboard, sess.State)
	require.NotNil(t, sess.PharmacyUser)
	assert.Equal(t, "Sunrise Medicals", sess.PharmacyUser.PharmacyName)
}
