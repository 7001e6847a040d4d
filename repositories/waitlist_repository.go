package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Chukwwumaemmannuel233/kudora-backend/models"
)

// MongoWaitlistRepository is the MongoDB-backed waitlist store.
type MongoWaitlistRepository struct {
	collection *mongo.Collection
}

// NewMongoWaitlistRepository creates a waitlist repository on the given database.
func NewMongoWaitlistRepository(db *mongo.Database) *MongoWaitlistRepository {
	return &MongoWaitlistRepository{
		collection: db.Collection("waitlist"),
	}
}

func (r *MongoWaitlistRepository) Insert(ctx context.Context, entry *models.WaitlistEntry) error {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &DuplicateKeyError{Field: "email"}
		}
		return err
	}
	return nil
}

func (r *MongoWaitlistRepository) FindAll(ctx context.Context) ([]models.WaitlistEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "joinedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.WaitlistEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// MongoAdminRepository looks up reviewer accounts.
type MongoAdminRepository struct {
	collection *mongo.Collection
}

// NewMongoAdminRepository creates an admin repository on the given database.
func NewMongoAdminRepository(db *mongo.Database) *MongoAdminRepository {
	return &MongoAdminRepository{
		collection: db.Collection("admins"),
	}
}

func (r *MongoAdminRepository) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&admin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}
