package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin reviews buyer verification submissions
type Admin struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"password,omitempty" bson:"password"`
	FullName  string             `json:"fullName,omitempty" bson:"fullName,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// AdminLoginRequest is the request body for admin authentication
type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ReviewDecisionRequest is the request body for approve/reject endpoints
type ReviewDecisionRequest struct {
	AdminNotes string `json:"admin_notes,omitempty"`
}

// VerificationStatusRequest is the request body for the direct status update endpoint
type VerificationStatusRequest struct {
	Status     string `json:"status"`
	AdminNotes string `json:"admin_notes,omitempty"`
}

// UploadImageRequest is the request body for verification image upload
type UploadImageRequest struct {
	ImageData string `json:"imageData"`
	ImageType string `json:"imageType"`
	BuyerID   string `json:"buyerId,omitempty"`
}

// UploadImageResult carries the stored image location
type UploadImageResult struct {
	URL       string `json:"url"`
	StorageID string `json:"storageId"`
}
