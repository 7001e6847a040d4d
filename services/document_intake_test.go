package services

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Chukwwumaemmannuel233/kudora-backend/models"
	"github.com/Chukwwumaemmannuel233/kudora-backend/repositories"
)

// fakeImageStore captures uploads without touching disk.
type fakeImageStore struct {
	uploads []string
	fail    bool
}

func (f *fakeImageStore) Upload(data []byte, folder string) (string, string, error) {
	if f.fail {
		return "", "", errors.New("disk full")
	}
	f.uploads = append(f.uploads, folder)
	return "/uploads/" + folder + "/test.jpg", "test-id", nil
}

type DocumentIntakeSuite struct {
	suite.Suite
	buyers *repositories.InMemoryBuyerRepository
	store  *fakeImageStore
	intake *DocumentIntake
	ctx    context.Context
}

func (s *DocumentIntakeSuite) SetupTest() {
	s.buyers = repositories.NewInMemoryBuyerRepository()
	s.store = &fakeImageStore{}
	s.intake = NewDocumentIntake(s.buyers, s.store)
	s.ctx = context.Background()
}

func TestDocumentIntakeSuite(t *testing.T) {
	suite.Run(t, new(DocumentIntakeSuite))
}

func (s *DocumentIntakeSuite) payload() string {
	return base64.StdEncoding.EncodeToString([]byte("fake image bytes"))
}

func (s *DocumentIntakeSuite) insertBuyer() *models.Buyer {
	buyer := &models.Buyer{
		ID:        primitive.NewObjectID(),
		Email:     "docs@example.com",
		Phone:     "+96171111111",
		Status:    models.StatusIncomplete,
		CreatedAt: time.Now(),
	}
	s.Require().NoError(s.buyers.Insert(s.ctx, buyer))
	return buyer
}

func (s *DocumentIntakeSuite) TestUpload() {
	s.Run("stores the image and returns its location", func() {
		result, err := s.intake.UploadVerificationImage(s.ctx, s.payload(), "id-front", nil)
		s.Require().NoError(err)
		s.Equal("/uploads/verification/id-front/test.jpg", result.URL)
		s.Equal("test-id", result.StorageID)
		s.Equal([]string{"verification/id-front"}, s.store.uploads)
	})

	s.Run("accepts a data URI payload", func() {
		_, err := s.intake.UploadVerificationImage(s.ctx, "data:image/jpeg;base64,"+s.payload(), "selfie", nil)
		s.Require().NoError(err)
	})

	s.Run("records the URL on the buyer when an id is given", func() {
		buyer := s.insertBuyer()

		result, err := s.intake.UploadVerificationImage(s.ctx, s.payload(), "id-back", &buyer.ID)
		s.Require().NoError(err)

		found, err := s.buyers.FindByID(s.ctx, buyer.ID)
		s.Require().NoError(err)
		s.Equal(result.URL, found.IDBackURL)
		s.Empty(found.IDFrontURL)
	})
}

func (s *DocumentIntakeSuite) TestUploadFailures() {
	s.Run("missing fields are reported together", func() {
		_, err := s.intake.UploadVerificationImage(s.ctx, "", "", nil)
		var missing *MissingFieldsError
		s.Require().ErrorAs(err, &missing)
		s.Equal([]string{"imageData", "imageType"}, missing.Fields)
	})

	s.Run("unknown image type is refused", func() {
		_, err := s.intake.UploadVerificationImage(s.ctx, s.payload(), "passport", nil)
		s.Require().ErrorIs(err, ErrUploadFailed)
	})

	s.Run("invalid base64 is refused", func() {
		_, err := s.intake.UploadVerificationImage(s.ctx, "not-base64!!!", "selfie", nil)
		s.Require().ErrorIs(err, ErrUploadFailed)
	})

	s.Run("a failed store leaves the buyer untouched", func() {
		buyer := s.insertBuyer()
		s.store.fail = true

		_, err := s.intake.UploadVerificationImage(s.ctx, s.payload(), "id-front", &buyer.ID)
		s.Require().ErrorIs(err, ErrUploadFailed)

		found, err := s.buyers.FindByID(s.ctx, buyer.ID)
		s.Require().NoError(err)
		s.Empty(found.IDFrontURL)
	})

	s.Run("unknown buyer yields ErrNotFound", func() {
		s.store.fail = false
		id := primitive.NewObjectID()
		_, err := s.intake.UploadVerificationImage(s.ctx, s.payload(), "selfie", &id)
		s.Require().ErrorIs(err, ErrNotFound)
	})
}
