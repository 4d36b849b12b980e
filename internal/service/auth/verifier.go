package auth

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/caremitra/portal/pkg/apperror"
	"github.com/caremitra/portal/pkg/logger"
)

// Verifier is the credential verification boundary. The state machine
// never inspects codes itself, so a real verifier (an SMS OTP provider,
// say) can replace the mock without touching any transition logic.
type Verifier interface {
	// Issue generates a fresh credential for the phone number and hands
	// it to the delivery collaborator. Issuing again replaces the
	// previous credential.
	Issue(ctx context.Context, phone string) error
	// Verify checks a submitted code. A mismatch or an expired
	// credential returns false with a nil error; it is an expected
	// outcome, not a failure of the verifier.
	Verify(ctx context.Context, phone, code string) (bool, error)
}

// CodeNotifier reveals a generated code to the user out-of-band. The
// original surfaced it in a pop-up dialog; the demo shell prints it.
type CodeNotifier interface {
	Notify(phone, code string)
}

// VerifierConfig tunes the mock verifier.
type VerifierConfig struct {
	// CodeTTL bounds how long an issued code stays verifiable.
	CodeTTL time.Duration
	// ResendEvery and ResendBurst throttle per-phone code generation.
	ResendEvery time.Duration
	ResendBurst int
}

// MockVerifier issues 4-digit numeric codes. There is no security
// property here, it is a UX mock; still, only a bcrypt hash of the code
// is kept between issue and verify.
type MockVerifier struct {
	notifier CodeNotifier
	codes    *cache.Cache
	limiters *cache.Cache
	every    time.Duration
	burst    int
	log      *logger.Logger
}

func NewMockVerifier(notifier CodeNotifier, cfg VerifierConfig, log *logger.Logger) *MockVerifier {
	if cfg.CodeTTL <= 0 {
		cfg.CodeTTL = 5 * time.Minute
	}
	if cfg.ResendEvery <= 0 {
		cfg.ResendEvery = 30 * time.Second
	}
	if cfg.ResendBurst <= 0 {
		cfg.ResendBurst = 3
	}

	return &MockVerifier{
		notifier: notifier,
		codes:    cache.New(cfg.CodeTTL, 2*cfg.CodeTTL),
		limiters: cache.New(cache.NoExpiration, 0),
		every:    cfg.ResendEvery,
		burst:    cfg.ResendBurst,
		log:      log,
	}
}

func (v *MockVerifier) Issue(ctx context.Context, phone string) error {
	if !v.limiter(phone).Allow() {
		return apperror.Throttled("code requested too frequently")
	}

	code := fmt.Sprintf("%04d", 1000+rand.Intn(9000))
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.MinCost)
	if err != nil {
		return fmt.Errorf("failed to hash code: %w", err)
	}

	v.codes.Set(phone, hash, cache.DefaultExpiration)
	v.log.Debug("issued verification code", "phone", phone)
	v.notifier.Notify(phone, code)
	return nil
}

func (v *MockVerifier) Verify(ctx context.Context, phone, code string) (bool, error) {
	stored, ok := v.codes.Get(phone)
	if !ok {
		return false, nil
	}

	if err := bcrypt.CompareHashAndPassword(stored.([]byte), []byte(code)); err != nil {
		return false, nil
	}

	v.codes.Delete(phone)
	return true, nil
}

func (v *MockVerifier) limiter(phone string) *rate.Limiter {
	if lim, ok := v.limiters.Get(phone); ok {
		return lim.(*rate.Limiter)
	}
	lim := rate.NewLimiter(rate.Every(v.every), v.burst)
	v.limiters.Set(phone, lim, cache.NoExpiration)
	return lim
}
