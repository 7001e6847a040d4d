package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Chukwwumaemmannuel233/kudora-backend/models"
	"github.com/Chukwwumaemmannuel233/kudora-backend/repositories"
)

// recordingEmail captures outgoing mail and can be told to fail.
type recordingEmail struct {
	sent []string
	fail bool
}

func (r *recordingEmail) Send(to, subject, body string) error {
	if r.fail {
		return errors.New("smtp unavailable")
	}
	r.sent = append(r.sent, to+": "+subject)
	return nil
}

type AdminReviewSuite struct {
	suite.Suite
	buyers     *repositories.InMemoryBuyerRepository
	challenges *repositories.InMemoryChallengeRepository
	email      *recordingEmail
	review     *AdminReviewWorkflow
	ctx        context.Context
}

func (s *AdminReviewSuite) SetupTest() {
	s.buyers = repositories.NewInMemoryBuyerRepository()
	s.challenges = repositories.NewInMemoryChallengeRepository()
	s.email = &recordingEmail{}
	s.review = NewAdminReviewWorkflow(s.buyers, s.challenges, s.email)
	s.ctx = context.Background()
}

func TestAdminReviewSuite(t *testing.T) {
	suite.Run(t, new(AdminReviewSuite))
}

func (s *AdminReviewSuite) insertBuyer(email, phone string) *models.Buyer {
	buyer := &models.Buyer{
		ID:        primitive.NewObjectID(),
		FirstName: "Review",
		LastName:  "Target",
		Email:     email,
		Phone:     phone,
		Password:  "$2a$12$hash",
		Status:    models.StatusPending,
		CreatedAt: time.Now(),
	}
	s.Require().NoError(s.buyers.Insert(s.ctx, buyer))
	return buyer
}

func (s *AdminReviewSuite) TestDecisions() {
	s.Run("approve applies the default note when none is given", func() {
		buyer := s.insertBuyer("approve@example.com", "+96171000001")

		s.Require().NoError(s.review.Approve(s.ctx, buyer.ID, ""))

		found, err := s.buyers.FindByID(s.ctx, buyer.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusApproved, found.Status)
		s.Equal("Approved by admin", found.AdminNotes)
	})

	s.Run("reject applies the default note when none is given", func() {
		buyer := s.insertBuyer("reject@example.com", "+96171000002")

		s.Require().NoError(s.review.Reject(s.ctx, buyer.ID, ""))

		found, err := s.buyers.FindByID(s.ctx, buyer.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusRejected, found.Status)
		s.Equal("Rejected by admin", found.AdminNotes)
	})

	s.Run("reviewer notes are kept verbatim", func() {
		buyer := s.insertBuyer("notes@example.com", "+96171000003")

		s.Require().NoError(s.review.Reject(s.ctx, buyer.ID, "ID photo is blurry"))

		found, err := s.buyers.FindByID(s.ctx, buyer.ID)
		s.Require().NoError(err)
		s.Equal("ID photo is blurry", found.AdminNotes)
	})

	s.Run("a later decision overwrites the earlier one", func() {
		buyer := s.insertBuyer("flip@example.com", "+96171000004")

		s.Require().NoError(s.review.Approve(s.ctx, buyer.ID, ""))
		s.Require().NoError(s.review.Reject(s.ctx, buyer.ID, "second look failed"))

		found, err := s.buyers.FindByID(s.ctx, buyer.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusRejected, found.Status)
		s.Equal("second look failed", found.AdminNotes)
	})

	s.Run("unknown buyer yields ErrNotFound", func() {
		s.Require().ErrorIs(s.review.Approve(s.ctx, primitive.NewObjectID(), ""), ErrNotFound)
	})
}

func (s *AdminReviewSuite) TestUpdateVerificationStatus() {
	s.Run("accepts pending, approved and rejected", func() {
		buyer := s.insertBuyer("status@example.com", "+96171000005")

		for _, status := range []string{models.StatusApproved, models.StatusRejected, models.StatusPending} {
			s.Require().NoError(s.review.UpdateVerificationStatus(s.ctx, buyer.ID, status, "note"))
			found, err := s.buyers.FindByID(s.ctx, buyer.ID)
			s.Require().NoError(err)
			s.Equal(status, found.Status)
		}
	})

	s.Run("refuses anything else", func() {
		buyer := s.insertBuyer("badstatus@example.com", "+96171000006")

		err := s.review.UpdateVerificationStatus(s.ctx, buyer.ID, "banned", "")
		s.Require().ErrorIs(err, ErrInvalidStatus)

		found, err := s.buyers.FindByID(s.ctx, buyer.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusPending, found.Status)
	})
}

func (s *AdminReviewSuite) TestNotifications() {
	s.Run("a decision emails the buyer", func() {
		buyer := s.insertBuyer("mail@example.com", "+96171000007")

		s.Require().NoError(s.review.Approve(s.ctx, buyer.ID, ""))
		s.Require().Len(s.email.sent, 1)
		s.Contains(s.email.sent[0], "mail@example.com")
	})

	s.Run("a mail failure never rolls back the decision", func() {
		buyer := s.insertBuyer("mailfail@example.com", "+96171000008")
		s.email.fail = true

		s.Require().NoError(s.review.Reject(s.ctx, buyer.ID, ""))

		found, err := s.buyers.FindByID(s.ctx, buyer.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusRejected, found.Status)
	})
}

func (s *AdminReviewSuite) TestListAll() {
	s.Run("annotates buyers and strips password hashes", func() {
		verified := s.insertBuyer("verified@example.com", "+96171000010")
		s.Require().NoError(s.buyers.MarkPhoneVerified(s.ctx, verified.Phone))

		active := s.insertBuyer("active@example.com", "+96171000011")
		s.Require().NoError(s.challenges.Upsert(s.ctx, &models.PhoneVerification{
			Phone:     active.Phone,
			Code:      "123456",
			ExpiresAt: time.Now().Add(5 * time.Minute),
			CreatedAt: time.Now(),
		}))

		expired := s.insertBuyer("expired@example.com", "+96171000012")
		s.Require().NoError(s.challenges.Upsert(s.ctx, &models.PhoneVerification{
			Phone:     expired.Phone,
			Code:      "654321",
			ExpiresAt: time.Now().Add(-5 * time.Minute),
			CreatedAt: time.Now().Add(-20 * time.Minute),
		}))

		idle := s.insertBuyer("idle@example.com", "+96171000013")

		listed, err := s.review.ListAll(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(listed, 4)

		byEmail := make(map[string]models.BuyerWithSummary, len(listed))
		for _, b := range listed {
			s.Empty(b.Password)
			byEmail[b.Email] = b
		}

		s.Equal(models.PhoneStatusVerified, byEmail[verified.Email].Verification.PhoneStatus)
		s.Equal(models.PhoneStatusCodeActive, byEmail[active.Email].Verification.PhoneStatus)
		s.Equal(models.PhoneStatusCodeExpired, byEmail[expired.Email].Verification.PhoneStatus)
		s.Equal(models.PhoneStatusNotStarted, byEmail[idle.Email].Verification.PhoneStatus)
	})

	s.Run("reports whether all documents were uploaded", func() {
		complete := s.insertBuyer("docs@example.com", "+96171000014")
		for _, field := range []string{repositories.FieldIDFrontURL, repositories.FieldIDBackURL, repositories.FieldSelfieURL} {
			s.Require().NoError(s.buyers.SetDocumentURL(s.ctx, complete.ID, field, "/uploads/verification/x.jpg"))
		}

		listed, err := s.review.ListAll(s.ctx)
		s.Require().NoError(err)

		for _, b := range listed {
			if b.Email == complete.Email {
				s.True(b.Verification.DocumentsUploaded)
			} else {
				s.False(b.Verification.DocumentsUploaded)
			}
		}
	})
}
