package schedule

import (
	"context"
	"fmt"

	providerRepo "wellnest/database/repository/provider"
	"wellnest/models"
	"wellnest/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ScheduleService persists a provider's schedule edits. Every mutation goes
// through the pure editor and is written back as one combined availability
// update, so the derived summaries never drift from the schedule.
type ScheduleService interface {
	GetAvailability(providerID string) (*models.Availability, error)
	ToggleDay(providerID string, dayIndex int) (*models.Availability, error)
	AddRange(providerID string, dayIndex int) (*models.Availability, error)
	UpdateRange(providerID string, dayIndex, rangeIndex int, field, value string) (*models.Availability, error)
	RemoveRange(providerID string, dayIndex, rangeIndex int) (*models.Availability, error)
	AddBlocked(providerID, date string) (*models.Availability, error)
	RemoveBlocked(providerID, date string) (*models.Availability, error)
}

// DefaultScheduleService implements ScheduleService.
type DefaultScheduleService struct {
	Repo  providerRepo.ProviderRepository
	Cache *redis.Client
}

func (s *DefaultScheduleService) GetAvailability(providerID string) (*models.Availability, error) {
	prov, err := s.Repo.GetByID(providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider %s: %w", providerID, err)
	}
	return &prov.Availability, nil
}

func (s *DefaultScheduleService) ToggleDay(providerID string, dayIndex int) (*models.Availability, error) {
	return s.mutate(providerID, func(avail *models.Availability) error {
		return ToggleDayActive(avail, dayIndex)
	})
}

func (s *DefaultScheduleService) AddRange(providerID string, dayIndex int) (*models.Availability, error) {
	return s.mutate(providerID, func(avail *models.Availability) error {
		return AddTimeRange(avail, dayIndex)
	})
}

func (s *DefaultScheduleService) UpdateRange(providerID string, dayIndex, rangeIndex int, field, value string) (*models.Availability, error) {
	return s.mutate(providerID, func(avail *models.Availability) error {
		return UpdateTimeRange(avail, dayIndex, rangeIndex, field, value)
	})
}

func (s *DefaultScheduleService) RemoveRange(providerID string, dayIndex, rangeIndex int) (*models.Availability, error) {
	return s.mutate(providerID, func(avail *models.Availability) error {
		return RemoveTimeRange(avail, dayIndex, rangeIndex)
	})
}

func (s *DefaultScheduleService) AddBlocked(providerID, date string) (*models.Availability, error) {
	return s.mutate(providerID, func(avail *models.Availability) error {
		AddBlockedDate(avail, date)
		return nil
	})
}

func (s *DefaultScheduleService) RemoveBlocked(providerID, date string) (*models.Availability, error) {
	return s.mutate(providerID, func(avail *models.Availability) error {
		RemoveBlockedDate(avail, date)
		return nil
	})
}

// mutate loads the (already migrated) availability, applies the edit, and
// persists schedule plus derived summaries in a single update. The cached
// availability document is invalidated afterwards.
func (s *DefaultScheduleService) mutate(providerID string, apply func(*models.Availability) error) (*models.Availability, error) {
	prov, err := s.Repo.GetByID(providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider %s: %w", providerID, err)
	}

	avail := prov.Availability
	if err := apply(&avail); err != nil {
		return nil, err
	}

	if err := s.Repo.UpdateAvailability(providerID, avail); err != nil {
		return nil, fmt.Errorf("failed to persist availability for provider %s: %w", providerID, err)
	}

	s.invalidateCache(providerID)
	return &avail, nil
}

func (s *DefaultScheduleService) invalidateCache(providerID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(context.Background(), utils.AvailabilityCacheKey(providerID)).Err(); err != nil {
		utils.GetLogger().Error("failed to invalidate availability cache",
			zap.String("providerID", providerID), zap.Error(err))
	}
}
