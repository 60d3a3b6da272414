package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cerebrexia/fest-backend/internal/domain"
)

// EntryRepository is the store surface the venue-scan flow needs. MarkEntered
// must be transactional: it re-checks the attendee's entry state and allocates
// the pass number under the same lock, so double scans serialize.
type EntryRepository interface {
	MarkEntered(ctx context.Context, regID, memberID, agentID string) (domain.Registration, domain.Attendee, bool, error)
}

type EntryService struct {
	repo     EntryRepository
	notifier Notifier
}

func NewEntryService(repo EntryRepository, notifier Notifier) *EntryService {
	return &EntryService{
		repo:     repo,
		notifier: notifier,
	}
}

// Scan validates a scanned credential and records the check-in.
//
// A repeated scan is a warning, not an error: the result carries the original
// entry metadata untouched and triggers no notification. Unknown registration
// or member ids surface as not-found with no mutation.
func (s *EntryService) Scan(ctx context.Context, regID, memberID, agentID string) (domain.EntryResult, error) {
	reg, attendee, fresh, err := s.repo.MarkEntered(ctx, regID, memberID, agentID)
	if err != nil {
		return domain.EntryResult{}, fmt.Errorf("s.repo.MarkEntered -> %w", err)
	}

	result := domain.EntryResult{
		Status:         domain.EntryDuplicate,
		Attendee:       attendee,
		EnrollmentType: reg.EnrollmentType,
		NumMembers:     reg.NumMembers,
	}
	if !fresh {
		return result, nil
	}

	result.Status = domain.EntryNew

	go func() {
		if err := s.notifier.SendEntryConfirmation(reg, attendee); err != nil {
			zap.L().Error("entry confirmation email failed",
				zap.String("registrationID", reg.ID),
				zap.String("memberID", attendee.MemberID),
				zap.Error(err))
		}
	}()

	return result, nil
}
