package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Chukwwumaemmannuel233/kudora-backend/models"
	"github.com/Chukwwumaemmannuel233/kudora-backend/repositories"
)

// Accepted verification image types and the buyer fields they map to.
var documentFields = map[string]string{
	"id-front": repositories.FieldIDFrontURL,
	"id-back":  repositories.FieldIDBackURL,
	"selfie":   repositories.FieldSelfieURL,
}

// DocumentIntake accepts uploaded identity images, delegates binary storage,
// and records the resulting URL on the buyer record.
type DocumentIntake struct {
	buyers repositories.BuyerRepository
	store  ImageStore
}

// NewDocumentIntake wires the document intake service.
func NewDocumentIntake(buyers repositories.BuyerRepository, store ImageStore) *DocumentIntake {
	return &DocumentIntake{
		buyers: buyers,
		store:  store,
	}
}

// UploadVerificationImage stores the image and, when buyerID is given,
// writes the URL into the buyer field selected by imageType. A failed store
// call leaves the buyer untouched.
func (s *DocumentIntake) UploadVerificationImage(ctx context.Context, imageData, imageType string, buyerID *primitive.ObjectID) (*models.UploadImageResult, error) {
	if imageData == "" || imageType == "" {
		return nil, &MissingFieldsError{Fields: missingUploadFields(imageData, imageType)}
	}

	field, ok := documentFields[imageType]
	if !ok {
		return nil, fmt.Errorf("%w: unknown image type %q", ErrUploadFailed, imageType)
	}

	data, err := decodeImagePayload(imageData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	url, storageID, err := s.store.Upload(data, "verification/"+imageType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	if buyerID != nil {
		if err := s.buyers.SetDocumentURL(ctx, *buyerID, field, url); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
	}

	return &models.UploadImageResult{
		URL:       url,
		StorageID: storageID,
	}, nil
}

// decodeImagePayload accepts raw base64 or a data URI
// ("data:image/jpeg;base64,....").
func decodeImagePayload(payload string) ([]byte, error) {
	if idx := strings.Index(payload, ","); idx >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image data: %w", err)
	}
	return data, nil
}

func missingUploadFields(imageData, imageType string) []string {
	var missing []string
	if imageData == "" {
		missing = append(missing, "imageData")
	}
	if imageType == "" {
		missing = append(missing, "imageType")
	}
	return missing
}
