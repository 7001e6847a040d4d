package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WaitlistEntry represents a person waiting for marketplace access
type WaitlistEntry struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	Email    string             `json:"email" bson:"email"`
	JoinedAt time.Time          `json:"joinedAt" bson:"joinedAt"`
}

// JoinWaitlistRequest is the request body for joining the waitlist
type JoinWaitlistRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
