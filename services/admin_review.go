package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Chukwwumaemmannuel233/kudora-backend/models"
	"github.com/Chukwwumaemmannuel233/kudora-backend/repositories"
)

// Default notes applied when the reviewer leaves none.
const (
	defaultApproveNotes = "Approved by admin"
	defaultRejectNotes  = "Rejected by admin"
)

// AdminReviewWorkflow moves buyers through the human review decision:
// pending|incomplete -> approved or rejected. A later decision overwrites
// status and notes; no review history is kept.
type AdminReviewWorkflow struct {
	buyers     repositories.BuyerRepository
	challenges repositories.ChallengeRepository
	email      EmailSender
	logger     *log.Logger
}

// NewAdminReviewWorkflow wires the review workflow. email may be nil when
// status notifications are not wanted.
func NewAdminReviewWorkflow(buyers repositories.BuyerRepository, challenges repositories.ChallengeRepository, email EmailSender) *AdminReviewWorkflow {
	return &AdminReviewWorkflow{
		buyers:     buyers,
		challenges: challenges,
		email:      email,
		logger:     log.New(os.Stdout, "[ADMIN-REVIEW] ", log.LstdFlags),
	}
}

// Approve sets the buyer's status to approved.
func (w *AdminReviewWorkflow) Approve(ctx context.Context, buyerID primitive.ObjectID, notes string) error {
	if notes == "" {
		notes = defaultApproveNotes
	}
	return w.decide(ctx, buyerID, models.StatusApproved, notes)
}

// Reject sets the buyer's status to rejected.
func (w *AdminReviewWorkflow) Reject(ctx context.Context, buyerID primitive.ObjectID, notes string) error {
	if notes == "" {
		notes = defaultRejectNotes
	}
	return w.decide(ctx, buyerID, models.StatusRejected, notes)
}

// UpdateVerificationStatus sets the status directly after validating it is
// one of pending, approved, rejected.
func (w *AdminReviewWorkflow) UpdateVerificationStatus(ctx context.Context, buyerID primitive.ObjectID, status, notes string) error {
	switch status {
	case models.StatusPending, models.StatusApproved, models.StatusRejected:
	default:
		return ErrInvalidStatus
	}
	return w.decide(ctx, buyerID, status, notes)
}

func (w *AdminReviewWorkflow) decide(ctx context.Context, buyerID primitive.ObjectID, status, notes string) error {
	if err := w.buyers.SetStatus(ctx, buyerID, status, notes); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	w.notifyStatusChange(ctx, buyerID, status)
	return nil
}

// notifyStatusChange emails the buyer about the decision. Best-effort: a
// delivery failure is logged and never rolls back the status write.
func (w *AdminReviewWorkflow) notifyStatusChange(ctx context.Context, buyerID primitive.ObjectID, status string) {
	if w.email == nil {
		return
	}
	buyer, err := w.buyers.FindByID(ctx, buyerID)
	if err != nil {
		w.logger.Printf("could not load buyer %s for notification: %v", buyerID.Hex(), err)
		return
	}
	subject := "Your Kudora verification status"
	body := fmt.Sprintf("Hi %s,\n\nYour verification status is now: %s.\n\nThe Kudora Team", buyer.FirstName, status)
	if err := w.email.Send(buyer.Email, subject, body); err != nil {
		w.logger.Printf("status notification to %s failed: %v", buyer.Email, err)
	}
}

// ListAll returns every buyer annotated with a derived verification summary
// for the admin dashboard. Password hashes are stripped.
func (w *AdminReviewWorkflow) ListAll(ctx context.Context) ([]models.BuyerWithSummary, error) {
	buyers, err := w.buyers.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	annotated := make([]models.BuyerWithSummary, 0, len(buyers))
	for _, buyer := range buyers {
		buyer.Password = ""
		annotated = append(annotated, models.BuyerWithSummary{
			Buyer: buyer,
			Verification: models.VerificationSummary{
				PhoneStatus:       w.phoneStatus(ctx, &buyer),
				DocumentsUploaded: buyer.HasAllDocuments(),
			},
		})
	}
	return annotated, nil
}

func (w *AdminReviewWorkflow) phoneStatus(ctx context.Context, buyer *models.Buyer) string {
	if buyer.IsPhoneVerified {
		return models.PhoneStatusVerified
	}
	challenge, err := w.challenges.FindByPhone(ctx, buyer.Phone)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			w.logger.Printf("challenge lookup for %s failed: %v", buyer.Phone, err)
		}
		return models.PhoneStatusNotStarted
	}
	if challenge.Expired() {
		return models.PhoneStatusCodeExpired
	}
	return models.PhoneStatusCodeActive
}
