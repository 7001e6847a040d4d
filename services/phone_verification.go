package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Chukwwumaemmannuel233/kudora-backend/models"
	"github.com/Chukwwumaemmannuel233/kudora-backend/repositories"
	"github.com/Chukwwumaemmannuel233/kudora-backend/utils"
)

const (
	// EnvDevelopment enables debug codes and degraded SMS failures.
	EnvDevelopment = "development"
	// EnvProduction surfaces SMS delivery failures to the caller.
	EnvProduction = "production"

	codeTTL         = 10 * time.Minute
	codeSMSTemplate = "Your Kudora verification code is: %s. This code expires in 10 minutes."
)

// PhoneVerificationService issues, rate-limits, and redeems one-time codes
// proving phone possession. Per phone the state machine is
// NONE -> ISSUED -> {VERIFIED, EXPIRED}; re-issuing stays ISSUED with the
// code replaced.
type PhoneVerificationService struct {
	challenges repositories.ChallengeRepository
	buyers     repositories.BuyerRepository
	limiter    repositories.CodeAttemptLimiter
	sms        SMSSender
	env        string
	logger     *log.Logger
}

// NewPhoneVerificationService wires the verification service. env must be
// EnvDevelopment or EnvProduction; anything else is treated as production.
func NewPhoneVerificationService(
	challenges repositories.ChallengeRepository,
	buyers repositories.BuyerRepository,
	limiter repositories.CodeAttemptLimiter,
	sms SMSSender,
	env string,
) *PhoneVerificationService {
	if env != EnvDevelopment {
		env = EnvProduction
	}
	return &PhoneVerificationService{
		challenges: challenges,
		buyers:     buyers,
		limiter:    limiter,
		sms:        sms,
		env:        env,
		logger:     log.New(os.Stdout, "[SMS-VERIFY] ", log.LstdFlags),
	}
}

// IssueCode generates and stores a fresh challenge for the phone, replacing
// any prior one, then triggers SMS delivery. The stored code stays valid
// even when delivery fails; in production the delivery error is surfaced,
// in development it is logged and the response carries the code instead.
func (s *PhoneVerificationService) IssueCode(ctx context.Context, phone string) (*models.CodeIssue, error) {
	phone, err := utils.SanitizePhone(phone)
	if err != nil {
		return nil, ErrInvalidPhone
	}

	allowed, err := s.limiter.Allow(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}
	if !allowed {
		return nil, ErrRateLimited
	}

	code, err := utils.GenerateVerificationCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate code: %w", err)
	}

	now := time.Now()
	challenge := &models.PhoneVerification{
		Phone:     phone,
		Code:      code,
		ExpiresAt: now.Add(codeTTL),
		CreatedAt: now,
	}
	if err := s.challenges.Upsert(ctx, challenge); err != nil {
		return nil, fmt.Errorf("failed to store verification code: %w", err)
	}

	issue := &models.CodeIssue{
		Phone:     phone,
		ExpiresAt: challenge.ExpiresAt,
	}

	if err := s.sms.Send(phone, fmt.Sprintf(codeSMSTemplate, code)); err != nil {
		s.logger.Printf("SMS delivery to %s failed: %v", phone, err)
		if s.env == EnvProduction {
			return nil, fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
		}
		// Dev mode: the stored code is still redeemable, hand it back
		issue.DebugCode = code
		return issue, nil
	}

	issue.Delivered = true
	if s.env == EnvDevelopment {
		issue.DebugCode = code
	}
	return issue, nil
}

// VerifyCode redeems a challenge. It succeeds at most once per issued code:
// the challenge row is consumed atomically, so replays and concurrent
// attempts with the same code fail with ErrInvalidOrExpiredCode.
func (s *PhoneVerificationService) VerifyCode(ctx context.Context, phone, code string) error {
	phone, err := utils.SanitizePhone(phone)
	if err != nil {
		return ErrInvalidOrExpiredCode
	}

	_, err = s.challenges.Consume(ctx, phone, code, time.Now())
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrInvalidOrExpiredCode
		}
		return fmt.Errorf("failed to check verification code: %w", err)
	}

	// Mark the buyer verified if one exists with this phone; pre-signup
	// verification has no buyer row yet and that is fine.
	if err := s.buyers.MarkPhoneVerified(ctx, phone); err != nil {
		return fmt.Errorf("failed to mark phone verified: %w", err)
	}
	return nil
}

// ResendCode issues a fresh code to the buyer's registered phone. The same
// per-phone rate limit applies to prevent the admin path being abused.
func (s *PhoneVerificationService) ResendCode(ctx context.Context, buyerID primitive.ObjectID) (*models.CodeIssue, error) {
	buyer, err := s.buyers.FindByID(ctx, buyerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.IssueCode(ctx, buyer.Phone)
}
