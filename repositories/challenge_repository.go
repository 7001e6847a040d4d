package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Chukwwumaemmannuel233/kudora-backend/models"
)

// MongoChallengeRepository stores phone verification challenges keyed by
// phone number. The unique index on phone plus upsert semantics keep at most
// one live challenge per phone.
type MongoChallengeRepository struct {
	collection *mongo.Collection
}

// NewMongoChallengeRepository creates a challenge repository on the given database.
func NewMongoChallengeRepository(db *mongo.Database) *MongoChallengeRepository {
	return &MongoChallengeRepository{
		collection: db.Collection("phone_verifications"),
	}
}

// Upsert replaces any prior challenge for the phone. The old code becomes
// immediately unusable.
func (r *MongoChallengeRepository) Upsert(ctx context.Context, challenge *models.PhoneVerification) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"phone": challenge.Phone}, challenge, opts)
	return err
}

func (r *MongoChallengeRepository) FindByPhone(ctx context.Context, phone string) (*models.PhoneVerification, error) {
	var challenge models.PhoneVerification
	err := r.collection.FindOne(ctx, bson.M{"phone": phone}).Decode(&challenge)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &challenge, nil
}

// Consume deletes and returns the live challenge matching phone and code.
// FindOneAndDelete is atomic, so when two verification attempts race on the
// same code only one of them gets the document back.
func (r *MongoChallengeRepository) Consume(ctx context.Context, phone, code string, now time.Time) (*models.PhoneVerification, error) {
	filter := bson.M{
		"phone":     phone,
		"code":      code,
		"expiresAt": bson.M{"$gt": now},
	}

	var challenge models.PhoneVerification
	err := r.collection.FindOneAndDelete(ctx, filter).Decode(&challenge)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &challenge, nil
}
