package repositories

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Chukwwumaemmannuel233/kudora-backend/models"
)

// MongoBuyerRepository is the MongoDB-backed buyer store.
type MongoBuyerRepository struct {
	collection *mongo.Collection
}

// NewMongoBuyerRepository creates a buyer repository on the given database.
func NewMongoBuyerRepository(db *mongo.Database) *MongoBuyerRepository {
	return &MongoBuyerRepository{
		collection: db.Collection("buyers"),
	}
}

func (r *MongoBuyerRepository) Insert(ctx context.Context, buyer *models.Buyer) error {
	if buyer.ID.IsZero() {
		buyer.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, buyer)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &DuplicateKeyError{Field: duplicateField(err)}
		}
		return err
	}
	return nil
}

// duplicateField extracts which unique index was violated. Email takes
// precedence when the message names neither index.
func duplicateField(err error) string {
	msg := err.Error()
	if strings.Contains(msg, "phone") {
		return "phone"
	}
	return "email"
}

func (r *MongoBuyerRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Buyer, error) {
	var buyer models.Buyer
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&buyer)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &buyer, nil
}

func (r *MongoBuyerRepository) FindByEmail(ctx context.Context, email string) (*models.Buyer, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoBuyerRepository) FindByPhone(ctx context.Context, phone string) (*models.Buyer, error) {
	return r.findOne(ctx, bson.M{"phone": phone})
}

func (r *MongoBuyerRepository) findOne(ctx context.Context, filter bson.M) (*models.Buyer, error) {
	var buyer models.Buyer
	err := r.collection.FindOne(ctx, filter).Decode(&buyer)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &buyer, nil
}

func (r *MongoBuyerRepository) FindAll(ctx context.Context) ([]models.Buyer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var buyers []models.Buyer
	if err := cursor.All(ctx, &buyers); err != nil {
		return nil, err
	}
	return buyers, nil
}

func (r *MongoBuyerRepository) MarkPhoneVerified(ctx context.Context, phone string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"phone": phone}, bson.M{
		"$set": bson.M{
			"isPhoneVerified": true,
			"updatedAt":       time.Now(),
		},
	})
	return err
}

func (r *MongoBuyerRepository) SetDocumentURL(ctx context.Context, id primitive.ObjectID, field, url string) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			field:       url,
			"updatedAt": time.Now(),
		},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoBuyerRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status, notes string) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"status":     status,
			"adminNotes": notes,
			"updatedAt":  time.Now(),
		},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
