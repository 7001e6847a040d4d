package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/Chukwwumaemmannuel233/kudora-backend/models"
	"github.com/Chukwwumaemmannuel233/kudora-backend/repositories"
	"github.com/Chukwwumaemmannuel233/kudora-backend/utils"
)

const signupBcryptCost = 12

// BuyerOnboarding orchestrates buyer registration: input validation, consent
// gates, uniqueness checks, password hashing, status derivation, and the
// atomic persist.
type BuyerOnboarding struct {
	buyers         repositories.BuyerRepository
	registry       *IdentityRegistry
	bcryptCost     int
	requireCaptcha bool
}

// NewBuyerOnboarding creates the onboarding orchestrator. requireCaptcha
// selects the stricter signup variant that demands a solved captcha.
func NewBuyerOnboarding(buyers repositories.BuyerRepository, registry *IdentityRegistry, requireCaptcha bool) *BuyerOnboarding {
	return &BuyerOnboarding{
		buyers:         buyers,
		registry:       registry,
		bcryptCost:     signupBcryptCost,
		requireCaptcha: requireCaptcha,
	}
}

// Signup registers a new buyer and returns its public projection. The
// returned summary never includes the password hash.
func (s *BuyerOnboarding) Signup(ctx context.Context, req *models.SignupRequest) (*models.BuyerSummary, error) {
	if missing := missingSignupFields(req); len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	// Consent booleans are gated separately so a declined checkbox reads as
	// a consent failure rather than a missing field.
	if !req.AcceptedTerms || !req.PrivacyAccepted {
		return nil, ErrConsentRequired
	}
	if s.requireCaptcha && !req.IsCaptchaVerified {
		return nil, ErrCaptchaRequired
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return nil, &MissingFieldsError{Fields: []string{"email"}}
	}
	phone, err := utils.SanitizePhone(req.Phone)
	if err != nil {
		return nil, ErrInvalidPhone
	}

	// Advisory pre-check; the unique index on insert is authoritative.
	conflict, err := s.registry.FindConflict(ctx, email, phone)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, conflict
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	buyer := &models.Buyer{
		ID:                primitive.NewObjectID(),
		FirstName:         utils.SanitizeInput(req.FirstName),
		LastName:          utils.SanitizeInput(req.LastName),
		Email:             email,
		Phone:             phone,
		Password:          string(hashed),
		StreetAddress:     utils.SanitizeInput(req.StreetAddress),
		City:              utils.SanitizeInput(req.City),
		State:             utils.SanitizeInput(req.State),
		Province:          utils.SanitizeInput(req.Province),
		ZipCode:           utils.SanitizeInput(req.ZipCode),
		Country:           utils.SanitizeInput(req.Country),
		IDType:            utils.SanitizeInput(req.IDType),
		IDNumber:          utils.SanitizeInput(req.IDNumber),
		IDFrontURL:        req.IDFrontURL,
		IDBackURL:         req.IDBackURL,
		SelfieURL:         req.SelfieURL,
		IsPhoneVerified:   req.IsPhoneVerified,
		IsCaptchaVerified: req.IsCaptchaVerified,
		AcceptedTerms:     req.AcceptedTerms,
		PrivacyAccepted:   req.PrivacyAccepted,
		MarketingAccepted: req.MarketingAccepted,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	buyer.Status = deriveInitialStatus(buyer)

	if err := s.buyers.Insert(ctx, buyer); err != nil {
		var dup *repositories.DuplicateKeyError
		if errors.As(err, &dup) {
			return nil, &ConflictError{Field: dup.Field}
		}
		return nil, fmt.Errorf("failed to create buyer: %w", err)
	}

	return &models.BuyerSummary{
		ID:              buyer.ID,
		Email:           buyer.Email,
		Name:            buyer.FirstName + " " + buyer.LastName,
		Status:          buyer.Status,
		IsPhoneVerified: buyer.IsPhoneVerified,
	}, nil
}

// GetProfile returns the buyer without its password hash.
func (s *BuyerOnboarding) GetProfile(ctx context.Context, id primitive.ObjectID) (*models.Buyer, error) {
	buyer, err := s.buyers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	buyer.Password = ""
	return buyer, nil
}

// deriveInitialStatus puts a buyer straight into the review queue when all
// three documents arrived with the signup, otherwise the account stays
// incomplete until DocumentIntake fills the gaps.
func deriveInitialStatus(buyer *models.Buyer) string {
	if buyer.HasAllDocuments() {
		return models.StatusPending
	}
	return models.StatusIncomplete
}

// missingSignupFields lists absent required fields in their request order.
func missingSignupFields(req *models.SignupRequest) []string {
	var missing []string

	required := []struct {
		name    string
		present bool
	}{
		{"first_name", req.FirstName != ""},
		{"last_name", req.LastName != ""},
		{"email", req.Email != ""},
		{"phone", req.Phone != ""},
		{"password", req.Password != ""},
		{"street_address", req.StreetAddress != ""},
		{"city", req.City != ""},
		{"state", req.State != ""},
		{"zip_code", req.ZipCode != ""},
		{"country", req.Country != ""},
	}

	for _, field := range required {
		if !field.present {
			missing = append(missing, field.name)
		}
	}
	return missing
}
