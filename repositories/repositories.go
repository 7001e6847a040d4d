// Package repositories contains the persistence contracts for the buyer
// verification pipeline and their MongoDB and in-memory implementations.
package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Chukwwumaemmannuel233/kudora-backend/models"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("record not found")

// DuplicateKeyError reports a uniqueness violation on insert. The storage
// constraint is authoritative for signup races; pre-checks are advisory only.
type DuplicateKeyError struct {
	Field string // "email" or "phone"
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key on field %q", e.Field)
}

// Buyer document fields that DocumentIntake is allowed to write.
const (
	FieldIDFrontURL = "idFrontUrl"
	FieldIDBackURL  = "idBackUrl"
	FieldSelfieURL  = "selfieUrl"
)

// BuyerRepository stores buyer records. Email and phone are unique across
// the store; Insert surfaces violations as DuplicateKeyError.
type BuyerRepository interface {
	Insert(ctx context.Context, buyer *models.Buyer) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Buyer, error)
	FindByEmail(ctx context.Context, email string) (*models.Buyer, error)
	FindByPhone(ctx context.Context, phone string) (*models.Buyer, error)
	FindAll(ctx context.Context) ([]models.Buyer, error)
	MarkPhoneVerified(ctx context.Context, phone string) error
	SetDocumentURL(ctx context.Context, id primitive.ObjectID, field, url string) error
	SetStatus(ctx context.Context, id primitive.ObjectID, status, notes string) error
}

// ChallengeRepository is a keyed single-slot store: at most one live
// challenge per phone. Upsert replaces any prior challenge for the phone;
// Consume atomically removes and returns the challenge iff phone and code
// match and the challenge has not expired, so concurrent verification
// attempts against the same code allow only one winner.
type ChallengeRepository interface {
	Upsert(ctx context.Context, challenge *models.PhoneVerification) error
	FindByPhone(ctx context.Context, phone string) (*models.PhoneVerification, error)
	Consume(ctx context.Context, phone, code string, now time.Time) (*models.PhoneVerification, error)
}

// WaitlistRepository stores waitlist signups with a unique email constraint.
type WaitlistRepository interface {
	Insert(ctx context.Context, entry *models.WaitlistEntry) error
	FindAll(ctx context.Context) ([]models.WaitlistEntry, error)
}

// AdminRepository looks up reviewer accounts for login.
type AdminRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
}

// CodeAttemptLimiter caps code issuance per phone within a rolling window.
// Allow reports whether another issuance is permitted and records the attempt.
type CodeAttemptLimiter interface {
	Allow(ctx context.Context, phone string) (bool, error)
}
