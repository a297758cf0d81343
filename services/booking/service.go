package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wellnest/config"
	appointmentRepo "wellnest/database/repository/appointment"
	providerRepo "wellnest/database/repository/provider"
	"wellnest/models"
	"wellnest/services/notification"
	"wellnest/services/tasks"
	"wellnest/utils"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// BookingService is the reservation boundary. ReserveSlot is the only place
// where booking conflicts are authoritatively resolved.
type BookingService interface {
	ReserveSlot(ctx context.Context, req models.ReserveSlotRequest) (*models.Appointment, error)
	CancelAppointment(ctx context.Context, appointmentID, clientID string) error
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Providers       providerRepo.ProviderRepository
	Appointments    appointmentRepo.AppointmentRepository
	NotificationSvc notification.NotificationService
	AsynqClient     *asynq.Client
}

// ReserveSlot atomically books the requested window. A conflict inside the
// transaction surfaces as SlotUnavailableError so callers can re-fetch the
// slot list and retry; an unknown provider is terminal.
func (s *DefaultBookingService) ReserveSlot(ctx context.Context, req models.ReserveSlotRequest) (*models.Appointment, error) {
	logger := utils.GetLogger()

	if req.DurationMinutes <= 0 {
		req.DurationMinutes = 60
	}

	prov, err := s.Providers.GetByIDWithProjection(req.ProviderID, bson.M{"id": 1, "name": 1})
	if err != nil {
		if isNotFound(err) {
			return nil, ErrProviderNotFound
		}
		return nil, fmt.Errorf("failed to fetch provider %s: %w", req.ProviderID, err)
	}

	appt := &models.Appointment{
		ID:               uuid.New().String(),
		ProviderID:       prov.ID,
		ClientID:         req.ClientID,
		DateTime:         req.DateTime,
		DurationMinutes:  req.DurationMinutes,
		Status:           models.AppointmentConfirmed,
		ServicePackageID: req.ServicePackageID,
		AmountCents:      req.AmountCents,
		Notes:            req.Notes,
		CreatedAt:        time.Now(),
	}

	if err := s.Appointments.ReserveTransactionally(ctx, appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotConflict) {
			logger.Info("reservation conflict",
				zap.String("providerID", req.ProviderID),
				zap.Time("dateTime", req.DateTime))
			return nil, NewSlotUnavailableError("slot no longer available, please pick another")
		}
		return nil, fmt.Errorf("reservation failed: %w", err)
	}

	// Post-reservation side effects are best-effort; the booking stands
	// even when a push or reminder cannot be delivered.
	s.scheduleReminder(appt)
	s.notifyProvider(ctx, appt)

	logger.Info("appointment reserved",
		zap.String("appointmentID", appt.ID),
		zap.String("providerID", appt.ProviderID),
		zap.Time("dateTime", appt.DateTime))
	return appt, nil
}

// CancelAppointment marks the appointment cancelled, which frees its window
// for future slot computations. Only the client who booked the appointment
// may cancel it.
func (s *DefaultBookingService) CancelAppointment(ctx context.Context, appointmentID, clientID string) error {
	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		if isNotFound(err) {
			return ErrAppointmentNotFound
		}
		return fmt.Errorf("failed to fetch appointment %s: %w", appointmentID, err)
	}
	if appt.ClientID != clientID {
		return ErrNotAppointmentOwner
	}

	if err := s.Appointments.UpdateStatus(ctx, appointmentID, models.AppointmentCancelled); err != nil {
		return fmt.Errorf("failed to cancel appointment %s: %w", appointmentID, err)
	}
	return nil
}

func (s *DefaultBookingService) scheduleReminder(appt *models.Appointment) {
	if s.AsynqClient == nil {
		return
	}
	logger := utils.GetLogger()

	lead := time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute
	if lead <= 0 {
		lead = time.Hour
	}
	fireAt := appt.DateTime.Add(-lead)
	if fireAt.Before(time.Now()) {
		return
	}

	payload := models.ReminderPayload{
		ReminderID:    uuid.New().String(),
		Target:        "client",
		ID:            appt.ClientID,
		AppointmentID: appt.ID,
		FireDate:      fireAt.Format(time.RFC3339),
		Title:         "Upcoming appointment",
		Body:          fmt.Sprintf("Your appointment starts at %s.", appt.DateTime.Format("15:04")),
	}
	task, opts, err := tasks.NewReminderTask(payload, fireAt)
	if err != nil {
		logger.Error("failed to build reminder task", zap.Error(err))
		return
	}
	if _, err := s.AsynqClient.Enqueue(task, opts...); err != nil {
		logger.Error("failed to enqueue reminder task",
			zap.String("appointmentID", appt.ID), zap.Error(err))
	}
}

func (s *DefaultBookingService) notifyProvider(ctx context.Context, appt *models.Appointment) {
	if s.NotificationSvc == nil {
		return
	}
	logger := utils.GetLogger()

	data := map[string]string{
		"appointmentId": appt.ID,
		"dateTime":      appt.DateTime.Format(time.RFC3339),
	}
	body := fmt.Sprintf("New booking on %s.", appt.DateTime.Format("Mon Jan 2 15:04"))
	if err := s.NotificationSvc.SendProviderPushNotification(ctx, appt.ProviderID, "New appointment", body, data); err != nil {
		logger.Error("failed to notify provider of booking",
			zap.String("providerID", appt.ProviderID), zap.Error(err))
	}
}
