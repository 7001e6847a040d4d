package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/Chukwwumaemmannuel233/kudora-backend/models"
	"github.com/Chukwwumaemmannuel233/kudora-backend/repositories"
)

type OnboardingSuite struct {
	suite.Suite
	buyers     *repositories.InMemoryBuyerRepository
	onboarding *BuyerOnboarding
	ctx        context.Context
}

func (s *OnboardingSuite) SetupTest() {
	s.buyers = repositories.NewInMemoryBuyerRepository()
	registry := NewIdentityRegistry(s.buyers)
	s.onboarding = NewBuyerOnboarding(s.buyers, registry, false)
	// Cost 12 makes the suite crawl; the hash round-trip is what matters here.
	s.onboarding.bcryptCost = bcrypt.MinCost
	s.ctx = context.Background()
}

func TestOnboardingSuite(t *testing.T) {
	suite.Run(t, new(OnboardingSuite))
}

func (s *OnboardingSuite) validRequest() *models.SignupRequest {
	return &models.SignupRequest{
		FirstName:       "Ada",
		LastName:        "Obi",
		Email:           "ada@example.com",
		Phone:           "+2348012345678",
		Password:        "s3cret-password",
		StreetAddress:   "12 Marina Road",
		City:            "Lagos",
		State:           "Lagos",
		ZipCode:         "100001",
		Country:         "Nigeria",
		AcceptedTerms:   true,
		PrivacyAccepted: true,
	}
}

func (s *OnboardingSuite) TestSignup() {
	s.Run("registers a buyer and returns its summary", func() {
		summary, err := s.onboarding.Signup(s.ctx, s.validRequest())
		s.Require().NoError(err)
		s.Equal("ada@example.com", summary.Email)
		s.Equal("Ada Obi", summary.Name)
		s.Equal(models.StatusIncomplete, summary.Status)
		s.False(summary.IsPhoneVerified)
	})

	s.Run("stores a bcrypt hash, never the plaintext password", func() {
		req := s.validRequest()
		req.Email = "hash@example.com"
		req.Phone = "+2348012340001"

		summary, err := s.onboarding.Signup(s.ctx, req)
		s.Require().NoError(err)

		stored, err := s.buyers.FindByID(s.ctx, summary.ID)
		s.Require().NoError(err)
		s.NotEqual(req.Password, stored.Password)
		s.NoError(bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(req.Password)))
	})

	s.Run("normalizes email and phone before storing", func() {
		req := s.validRequest()
		req.Email = "  MiXeD@Example.COM "
		req.Phone = "+234 (801) 234-9999"

		summary, err := s.onboarding.Signup(s.ctx, req)
		s.Require().NoError(err)
		s.Equal("mixed@example.com", summary.Email)

		stored, err := s.buyers.FindByID(s.ctx, summary.ID)
		s.Require().NoError(err)
		s.Equal("+2348012349999", stored.Phone)
	})
}

func (s *OnboardingSuite) TestMissingFields() {
	s.Run("lists every absent required field", func() {
		req := s.validRequest()
		req.FirstName = ""
		req.Password = ""
		req.Country = ""

		_, err := s.onboarding.Signup(s.ctx, req)
		var missing *MissingFieldsError
		s.Require().ErrorAs(err, &missing)
		s.Equal([]string{"first_name", "password", "country"}, missing.Fields)
	})

	s.Run("empty request reports all required fields", func() {
		_, err := s.onboarding.Signup(s.ctx, &models.SignupRequest{})
		var missing *MissingFieldsError
		s.Require().ErrorAs(err, &missing)
		s.Len(missing.Fields, 10)
	})
}

func (s *OnboardingSuite) TestConsentGates() {
	s.Run("declined terms fail with a consent error, not a missing field", func() {
		req := s.validRequest()
		req.AcceptedTerms = false

		_, err := s.onboarding.Signup(s.ctx, req)
		s.Require().ErrorIs(err, ErrConsentRequired)
	})

	s.Run("declined privacy policy fails the same way", func() {
		req := s.validRequest()
		req.PrivacyAccepted = false

		_, err := s.onboarding.Signup(s.ctx, req)
		s.Require().ErrorIs(err, ErrConsentRequired)
	})

	s.Run("captcha is enforced only when required", func() {
		strict := NewBuyerOnboarding(s.buyers, NewIdentityRegistry(s.buyers), true)
		strict.bcryptCost = bcrypt.MinCost

		req := s.validRequest()
		req.Email = "captcha@example.com"
		req.Phone = "+2348012340002"
		_, err := strict.Signup(s.ctx, req)
		s.Require().ErrorIs(err, ErrCaptchaRequired)

		req.IsCaptchaVerified = true
		_, err = strict.Signup(s.ctx, req)
		s.Require().NoError(err)
	})
}

func (s *OnboardingSuite) TestUniqueness() {
	s.Run("duplicate email is rejected", func() {
		first := s.validRequest()
		_, err := s.onboarding.Signup(s.ctx, first)
		s.Require().NoError(err)

		second := s.validRequest()
		second.Phone = "+2348099990000"
		_, err = s.onboarding.Signup(s.ctx, second)

		conflict, ok := AsConflict(err)
		s.Require().True(ok)
		s.Equal("email", conflict.Field)
	})

	s.Run("duplicate phone is rejected", func() {
		second := s.validRequest()
		second.Email = "other@example.com"
		_, err := s.onboarding.Signup(s.ctx, second)

		conflict, ok := AsConflict(err)
		s.Require().True(ok)
		s.Equal("phone", conflict.Field)
	})

	s.Run("email takes precedence when both collide", func() {
		_, err := s.onboarding.Signup(s.ctx, s.validRequest())

		conflict, ok := AsConflict(err)
		s.Require().True(ok)
		s.Equal("email", conflict.Field)
	})

	s.Run("invalid phone fails before any uniqueness check", func() {
		req := s.validRequest()
		req.Phone = "123"
		_, err := s.onboarding.Signup(s.ctx, req)
		s.Require().ErrorIs(err, ErrInvalidPhone)
	})
}

func (s *OnboardingSuite) TestInitialStatus() {
	s.Run("signup without documents is incomplete", func() {
		summary, err := s.onboarding.Signup(s.ctx, s.validRequest())
		s.Require().NoError(err)
		s.Equal(models.StatusIncomplete, summary.Status)
	})

	s.Run("signup with partial documents stays incomplete", func() {
		req := s.validRequest()
		req.Email = "partial@example.com"
		req.Phone = "+2348012340003"
		req.IDFrontURL = "/uploads/verification/id-front/a.jpg"
		req.IDBackURL = "/uploads/verification/id-back/b.jpg"

		summary, err := s.onboarding.Signup(s.ctx, req)
		s.Require().NoError(err)
		s.Equal(models.StatusIncomplete, summary.Status)
	})

	s.Run("signup with all three documents enters the review queue", func() {
		req := s.validRequest()
		req.Email = "complete@example.com"
		req.Phone = "+2348012340004"
		req.IDFrontURL = "/uploads/verification/id-front/a.jpg"
		req.IDBackURL = "/uploads/verification/id-back/b.jpg"
		req.SelfieURL = "/uploads/verification/selfie/c.jpg"

		summary, err := s.onboarding.Signup(s.ctx, req)
		s.Require().NoError(err)
		s.Equal(models.StatusPending, summary.Status)
	})
}

func (s *OnboardingSuite) TestGetProfile() {
	s.Run("returns the buyer without the password hash", func() {
		summary, err := s.onboarding.Signup(s.ctx, s.validRequest())
		s.Require().NoError(err)

		profile, err := s.onboarding.GetProfile(s.ctx, summary.ID)
		s.Require().NoError(err)
		s.Equal("ada@example.com", profile.Email)
		s.Empty(profile.Password)
	})

	s.Run("unknown buyer yields ErrNotFound", func() {
		_, err := s.onboarding.GetProfile(s.ctx, primitive.NewObjectID())
		s.Require().True(errors.Is(err, ErrNotFound))
	})
}
