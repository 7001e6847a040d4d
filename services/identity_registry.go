package services

import (
	"context"
	"errors"

	"github.com/Chukwwumaemmannuel233/kudora-backend/repositories"
)

// IdentityRegistry answers uniqueness questions about buyer identities.
// All operations are read-only; the storage unique indexes remain the
// authority under concurrent signups.
type IdentityRegistry struct {
	buyers repositories.BuyerRepository
}

// NewIdentityRegistry creates an identity registry over the buyer store.
func NewIdentityRegistry(buyers repositories.BuyerRepository) *IdentityRegistry {
	return &IdentityRegistry{buyers: buyers}
}

// IsEmailAvailable reports whether no buyer exists with the given email.
func (r *IdentityRegistry) IsEmailAvailable(ctx context.Context, email string) (bool, error) {
	_, err := r.buyers.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}

// IsPhoneAvailable reports whether no buyer exists with the given phone.
func (r *IdentityRegistry) IsPhoneAvailable(ctx context.Context, phone string) (bool, error) {
	_, err := r.buyers.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}

// FindConflict checks email and phone together. When both collide, email is
// the reported conflict. Returns nil when neither is taken.
func (r *IdentityRegistry) FindConflict(ctx context.Context, email, phone string) (*ConflictError, error) {
	available, err := r.IsEmailAvailable(ctx, email)
	if err != nil {
		return nil, err
	}
	if !available {
		return &ConflictError{Field: "email"}, nil
	}

	available, err = r.IsPhoneAvailable(ctx, phone)
	if err != nil {
		return nil, err
	}
	if !available {
		return &ConflictError{Field: "phone"}, nil
	}

	return nil, nil
}
