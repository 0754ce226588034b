package otp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/email-otp-api/internal/domain"
	"github.com/email-otp-api/internal/infrastructure/email"
	"github.com/email-otp-api/internal/pkg/code"
	"github.com/email-otp-api/internal/pkg/id"
	"github.com/email-otp-api/internal/pkg/keylock"
)

// IdentityStore is what the service needs from the identities table.
type IdentityStore interface {
	Ensure(ctx context.Context, email string) error
	Get(ctx context.Context, email string) (*domain.Identity, error)
	MarkVerified(ctx context.Context, email string) error
}

// OTPStore is what the service needs from the OTP ledger.
type OTPStore interface {
	Put(ctx context.Context, rec *domain.OTPRecord) error
	Active(ctx context.Context, email string) (*domain.OTPRecord, error)
	ActiveAll(ctx context.Context, email string) ([]domain.OTPRecord, error)
	Consume(ctx context.Context, email, otpID string) error
}

// Service is the OTP lifecycle: issuance, delivery, verification, status.
type Service interface {
	// Issue supersedes any active code for email and inserts a fresh one.
	Issue(ctx context.Context, email string) (*domain.OTPRecord, error)
	// Send issues a code and delivers it. A delivery failure is returned as
	// an error but the issued code stays in the ledger; the next Send
	// supersedes it.
	Send(ctx context.Context, email string) error
	// Verify checks a submitted code against the active record and, on
	// success, consumes it and flips the identity's verified flag.
	Verify(ctx context.Context, email, submitted string) (domain.VerificationOutcome, error)
	// IsVerified reports the identity's verified flag; false when the
	// identity does not exist. Pure read.
	IsVerified(ctx context.Context, email string) (bool, error)
}

// ServiceDeps carries everything NewService needs.
type ServiceDeps struct {
	IdentityRepo IdentityStore
	OTPRepo      OTPStore
	Deliverer    email.Deliverer
	CodeLength   int
	TTL          time.Duration
}

type service struct {
	identityRepo IdentityStore
	otpRepo      OTPStore
	deliverer    email.Deliverer
	codeLength   int
	ttl          time.Duration

	// locks serializes the two read-modify-write sequences (supersede+insert,
	// select+consume) per normalized email. Distinct emails never contend.
	locks *keylock.KeyedMutex
}

func NewService(deps ServiceDeps) Service {
	return &service{
		identityRepo: deps.IdentityRepo,
		otpRepo:      deps.OTPRepo,
		deliverer:    deps.Deliverer,
		codeLength:   deps.CodeLength,
		ttl:          deps.TTL,
		locks:        keylock.New(),
	}
}

func (s *service) Issue(ctx context.Context, emailAddr string) (*domain.OTPRecord, error) {
	emailAddr = domain.NormalizeEmail(emailAddr)
	s.locks.Lock(emailAddr)
	defer s.locks.Unlock(emailAddr)

	if err := s.identityRepo.Ensure(ctx, emailAddr); err != nil {
		return nil, fmt.Errorf("ensure identity: %w", err)
	}

	// Supersession: retire every active record before inserting the new one,
	// so at most one unconsumed record exists once Issue returns.
	actives, err := s.otpRepo.ActiveAll(ctx, emailAddr)
	if err != nil {
		return nil, fmt.Errorf("list active otps: %w", err)
	}
	for i := range actives {
		err := s.otpRepo.Consume(ctx, emailAddr, actives[i].OTPID)
		if err != nil && !errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("supersede otp: %w", err)
		}
	}

	c, err := code.New(s.codeLength)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	rec := &domain.OTPRecord{
		Email:     emailAddr,
		OTPID:     id.New(),
		Code:      c,
		ExpiresAt: now.Add(s.ttl).Unix(),
		Consumed:  false,
		CreatedAt: now,
	}
	if err := s.otpRepo.Put(ctx, rec); err != nil {
		return nil, fmt.Errorf("store otp: %w", err)
	}
	slog.Info("otp issued", "email", emailAddr, "otp_id", rec.OTPID)
	return rec, nil
}

func (s *service) Send(ctx context.Context, emailAddr string) error {
	rec, err := s.Issue(ctx, emailAddr)
	if err != nil {
		return err
	}
	if err := s.deliverer.Deliver(ctx, rec.Email, rec.Code); err != nil {
		// The ledger keeps the undelivered code; the next Send supersedes it.
		slog.Error("otp delivery failed", "email", rec.Email, "err", err)
		return fmt.Errorf("%w: %v", email.ErrDelivery, err)
	}
	slog.Info("otp sent", "email", rec.Email)
	return nil
}

func (s *service) Verify(ctx context.Context, emailAddr, submitted string) (domain.VerificationOutcome, error) {
	emailAddr = domain.NormalizeEmail(emailAddr)
	s.locks.Lock(emailAddr)
	defer s.locks.Unlock(emailAddr)

	rec, err := s.otpRepo.Active(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.OutcomeNoActiveCode, nil
		}
		return domain.OutcomeNoActiveCode, fmt.Errorf("lookup active otp: %w", err)
	}

	// Time predicate only — an expired record is never usable again, but the
	// read path does not write.
	if rec.Expired(time.Now().UTC()) {
		return domain.OutcomeExpired, nil
	}

	if rec.Code != submitted {
		// The record stays active: the caller may retry before expiry.
		return domain.OutcomeMismatch, nil
	}

	// One-time use: the conditional consume loses gracefully. If another
	// verifier already took the record, this call saw a code that no longer
	// exists as far as the ledger is concerned.
	if err := s.otpRepo.Consume(ctx, emailAddr, rec.OTPID); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.OutcomeNoActiveCode, nil
		}
		return domain.OutcomeNoActiveCode, fmt.Errorf("consume otp: %w", err)
	}

	if err := s.identityRepo.Ensure(ctx, emailAddr); err != nil {
		return domain.OutcomeNoActiveCode, fmt.Errorf("ensure identity: %w", err)
	}
	if err := s.identityRepo.MarkVerified(ctx, emailAddr); err != nil {
		return domain.OutcomeNoActiveCode, fmt.Errorf("mark verified: %w", err)
	}
	slog.Info("email verified", "email", emailAddr)
	return domain.OutcomeAccepted, nil
}

func (s *service) IsVerified(ctx context.Context, emailAddr string) (bool, error) {
	emailAddr = domain.NormalizeEmail(emailAddr)
	ident, err := s.identityRepo.Get(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return ident.Verified, nil
}
