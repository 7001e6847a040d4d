package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Chukwwumaemmannuel233/kudora-backend/models"
)

// InMemoryBuyerRepository is a map-backed buyer store with the same
// uniqueness guarantees as the Mongo implementation. Used in tests.
type InMemoryBuyerRepository struct {
	mu     sync.RWMutex
	buyers map[primitive.ObjectID]models.Buyer
}

// NewInMemoryBuyerRepository creates an empty in-memory buyer store.
func NewInMemoryBuyerRepository() *InMemoryBuyerRepository {
	return &InMemoryBuyerRepository{
		buyers: make(map[primitive.ObjectID]models.Buyer),
	}
}

func (r *InMemoryBuyerRepository) Insert(_ context.Context, buyer *models.Buyer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Email takes precedence when both collide
	for _, existing := range r.buyers {
		if existing.Email == buyer.Email {
			return &DuplicateKeyError{Field: "email"}
		}
	}
	for _, existing := range r.buyers {
		if existing.Phone == buyer.Phone {
			return &DuplicateKeyError{Field: "phone"}
		}
	}

	if buyer.ID.IsZero() {
		buyer.ID = primitive.NewObjectID()
	}
	r.buyers[buyer.ID] = *buyer
	return nil
}

func (r *InMemoryBuyerRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Buyer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	buyer, ok := r.buyers[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &buyer, nil
}

func (r *InMemoryBuyerRepository) FindByEmail(_ context.Context, email string) (*models.Buyer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, buyer := range r.buyers {
		if buyer.Email == email {
			b := buyer
			return &b, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryBuyerRepository) FindByPhone(_ context.Context, phone string) (*models.Buyer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, buyer := range r.buyers {
		if buyer.Phone == phone {
			b := buyer
			return &b, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryBuyerRepository) FindAll(_ context.Context) ([]models.Buyer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	buyers := make([]models.Buyer, 0, len(r.buyers))
	for _, buyer := range r.buyers {
		buyers = append(buyers, buyer)
	}
	sort.Slice(buyers, func(i, j int) bool {
		return buyers[i].CreatedAt.After(buyers[j].CreatedAt)
	})
	return buyers, nil
}

func (r *InMemoryBuyerRepository) MarkPhoneVerified(_ context.Context, phone string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, buyer := range r.buyers {
		if buyer.Phone == phone {
			buyer.IsPhoneVerified = true
			buyer.UpdatedAt = time.Now()
			r.buyers[id] = buyer
			return nil
		}
	}
	// No buyer with that phone yet; verification happens before signup too.
	return nil
}

func (r *InMemoryBuyerRepository) SetDocumentURL(_ context.Context, id primitive.ObjectID, field, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	buyer, ok := r.buyers[id]
	if !ok {
		return ErrNotFound
	}

	switch field {
	case FieldIDFrontURL:
		buyer.IDFrontURL = url
	case FieldIDBackURL:
		buyer.IDBackURL = url
	case FieldSelfieURL:
		buyer.SelfieURL = url
	default:
		return ErrNotFound
	}
	buyer.UpdatedAt = time.Now()
	r.buyers[id] = buyer
	return nil
}

func (r *InMemoryBuyerRepository) SetStatus(_ context.Context, id primitive.ObjectID, status, notes string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	buyer, ok := r.buyers[id]
	if !ok {
		return ErrNotFound
	}
	buyer.Status = status
	buyer.AdminNotes = notes
	buyer.UpdatedAt = time.Now()
	r.buyers[id] = buyer
	return nil
}

// InMemoryChallengeRepository is the keyed single-slot challenge store:
// a map from phone to at most one live challenge.
type InMemoryChallengeRepository struct {
	mu         sync.Mutex
	challenges map[string]models.PhoneVerification
}

// NewInMemoryChallengeRepository creates an empty in-memory challenge store.
func NewInMemoryChallengeRepository() *InMemoryChallengeRepository {
	return &InMemoryChallengeRepository{
		challenges: make(map[string]models.PhoneVerification),
	}
}

func (r *InMemoryChallengeRepository) Upsert(_ context.Context, challenge *models.PhoneVerification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.challenges[challenge.Phone] = *challenge
	return nil
}

func (r *InMemoryChallengeRepository) FindByPhone(_ context.Context, phone string) (*models.PhoneVerification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	challenge, ok := r.challenges[phone]
	if !ok {
		return nil, ErrNotFound
	}
	c := challenge
	return &c, nil
}

func (r *InMemoryChallengeRepository) Consume(_ context.Context, phone, code string, now time.Time) (*models.PhoneVerification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	challenge, ok := r.challenges[phone]
	if !ok || challenge.Code != code || !now.Before(challenge.ExpiresAt) {
		return nil, ErrNotFound
	}

	delete(r.challenges, phone)
	c := challenge
	return &c, nil
}

// InMemoryWaitlistRepository is a map-backed waitlist store. Used in tests.
type InMemoryWaitlistRepository struct {
	mu      sync.Mutex
	entries []models.WaitlistEntry
}

// NewInMemoryWaitlistRepository creates an empty in-memory waitlist store.
func NewInMemoryWaitlistRepository() *InMemoryWaitlistRepository {
	return &InMemoryWaitlistRepository{}
}

func (r *InMemoryWaitlistRepository) Insert(_ context.Context, entry *models.WaitlistEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.entries {
		if existing.Email == entry.Email {
			return &DuplicateKeyError{Field: "email"}
		}
	}
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *InMemoryWaitlistRepository) FindAll(_ context.Context) ([]models.WaitlistEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]models.WaitlistEntry, len(r.entries))
	copy(entries, r.entries)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].JoinedAt.After(entries[j].JoinedAt)
	})
	return entries, nil
}
