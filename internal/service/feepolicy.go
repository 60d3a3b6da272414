package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/cerebrexia/fest-backend/internal/domain"
	"github.com/cerebrexia/fest-backend/internal/repository"
)

// FestPassWaiverPolicy waives the event fee for owners whose profile college
// matches the configured waiver college and who hold a completed fest pass.
// Coupon codes are recorded on the registration but do not feed this policy.
type FestPassWaiverPolicy struct {
	repo    RegistrationRepository
	college string
}

func NewFestPassWaiverPolicy(repo RegistrationRepository, college string) *FestPassWaiverPolicy {
	return &FestPassWaiverPolicy{
		repo:    repo,
		college: college,
	}
}

func (p *FestPassWaiverPolicy) EventFee(ctx context.Context, owner domain.User, declared float64) (float64, error) {
	if p.college == "" || owner.College != p.college {
		return declared, nil
	}

	_, err := p.repo.FindCompletedByOwner(ctx, owner.UserID, domain.KindFestPass, "")
	if err != nil {
		if errors.Is(err, repository.ErrRegistrationNotFound) {
			return declared, nil
		}

		return 0, fmt.Errorf("p.repo.FindCompletedByOwner -> %w", err)
	}

	return 0, nil
}
