package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	appointmentRepo "wellnest/database/repository/appointment"
	providerRepo "wellnest/database/repository/provider"
	"wellnest/models"
	"wellnest/services/availability"
	"wellnest/utils"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// DefaultSchedulingEngine answers slot queries. Listing is read-only and
// race-tolerant; the appointments it checks against may be stale by the time
// the caller reserves, so the transactional reservation path remains the only
// source of booking guarantees.
type DefaultSchedulingEngine struct {
	ProviderRepo    providerRepo.ProviderRepository
	AppointmentRepo appointmentRepo.AppointmentRepository
	Cache           *redis.Client
}

const availabilityCacheTTL = time.Minute

// GetProviderAvailability returns the open bookable slots of the requested
// duration for one provider on one "YYYY-MM-DD" date. A zero or negative
// duration falls back to the 60-minute default inside the engine.
func (se *DefaultSchedulingEngine) GetProviderAvailability(
	ctx context.Context,
	providerID, date string,
	durationMinutes int,
) ([]models.AvailabilitySlot, error) {
	logger := utils.GetLogger()

	avail, err := se.loadAvailability(ctx, providerID)
	if err != nil {
		return nil, err
	}

	dayStart, dayEnd, err := availability.DayWindow(*avail, date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	appointments, err := se.AppointmentRepo.ListByProviderBetween(ctx, providerID, dayStart, dayEnd)
	if err != nil {
		logger.Error("GetProviderAvailability: error fetching appointments",
			zap.String("providerID", providerID), zap.String("date", date), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch appointments: %w", err)
	}

	return availability.ComputeDaySlots(*avail, dayStart, durationMinutes, appointments, time.Now()), nil
}

// loadAvailability fetches the provider's availability document through a
// short-TTL cache. Schedule mutations invalidate the key.
func (se *DefaultSchedulingEngine) loadAvailability(ctx context.Context, providerID string) (*models.Availability, error) {
	logger := utils.GetLogger()
	cacheKey := utils.AvailabilityCacheKey(providerID)

	if se.Cache != nil {
		if cached, err := se.Cache.Get(ctx, cacheKey).Result(); err == nil {
			var avail models.Availability
			if err := json.Unmarshal([]byte(cached), &avail); err == nil {
				return &avail, nil
			}
			logger.Warn("discarding corrupt availability cache entry", zap.String("providerID", providerID))
		} else if err != redis.Nil {
			logger.Error("availability cache read failed", zap.Error(err))
		}
	}

	prov, err := se.ProviderRepo.GetByID(providerID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrProviderNotFound
		}
		return nil, fmt.Errorf("failed to fetch provider %s: %w", providerID, err)
	}

	if se.Cache != nil {
		if b, err := json.Marshal(prov.Availability); err == nil {
			if err := se.Cache.Set(ctx, cacheKey, b, availabilityCacheTTL).Err(); err != nil {
				logger.Error("availability cache write failed", zap.Error(err))
			}
		}
	}

	return &prov.Availability, nil
}

// isNotFound matches the driver's no-document error through repository wrapping.
func isNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
