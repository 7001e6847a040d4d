package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Chukwwumaemmannuel233/kudora-backend/models"
	"github.com/Chukwwumaemmannuel233/kudora-backend/repositories"
	"github.com/Chukwwumaemmannuel233/kudora-backend/utils"
)

// WaitlistService records interest signups ahead of the marketplace launch.
// The insert is the unit of atomicity; the admin notification email is a
// best-effort side effect that never rolls it back.
type WaitlistService struct {
	repo       repositories.WaitlistRepository
	email      EmailSender
	adminEmail string
	logger     *log.Logger
}

// NewWaitlistService wires the waitlist service. adminEmail may be empty to
// disable notifications.
func NewWaitlistService(repo repositories.WaitlistRepository, email EmailSender, adminEmail string) *WaitlistService {
	return &WaitlistService{
		repo:       repo,
		email:      email,
		adminEmail: adminEmail,
		logger:     log.New(os.Stdout, "[WAITLIST] ", log.LstdFlags),
	}
}

// Join adds a person to the waitlist. Duplicate emails fail with a
// ConflictError on the email field.
func (s *WaitlistService) Join(ctx context.Context, name, email string) (*models.WaitlistEntry, error) {
	if name == "" || email == "" {
		var missing []string
		if name == "" {
			missing = append(missing, "name")
		}
		if email == "" {
			missing = append(missing, "email")
		}
		return nil, &MissingFieldsError{Fields: missing}
	}

	email, err := utils.SanitizeEmail(email)
	if err != nil {
		return nil, &MissingFieldsError{Fields: []string{"email"}}
	}

	entry := &models.WaitlistEntry{
		Name:     utils.SanitizeInput(name),
		Email:    email,
		JoinedAt: time.Now(),
	}
	if err := s.repo.Insert(ctx, entry); err != nil {
		var dup *repositories.DuplicateKeyError
		if errors.As(err, &dup) {
			return nil, &ConflictError{Field: "email"}
		}
		return nil, fmt.Errorf("failed to add waitlist entry: %w", err)
	}

	s.notifyAdmin(entry)
	return entry, nil
}

// List returns the waitlist newest-first.
func (s *WaitlistService) List(ctx context.Context) ([]models.WaitlistEntry, error) {
	return s.repo.FindAll(ctx)
}

func (s *WaitlistService) notifyAdmin(entry *models.WaitlistEntry) {
	if s.email == nil || s.adminEmail == "" {
		return
	}
	subject := "New waitlist signup"
	body := fmt.Sprintf("%s <%s> joined the waitlist.", entry.Name, entry.Email)
	if err := s.email.Send(s.adminEmail, subject, body); err != nil {
		s.logger.Printf("admin notification failed: %v", err)
	}
}
