package handlers

import (
	clientRepo "wellnest/database/repository/client"
	providerRepo "wellnest/database/repository/provider"
)

// HandlerBundle groups the handlers and the repositories the auth middleware
// needs, so route registration takes a single argument.
type HandlerBundle struct {
	ProviderRepo providerRepo.ProviderRepository
	ClientRepo   clientRepo.ClientRepository

	Availability *AvailabilityHandler
	Schedule     *ScheduleHandler
	Booking      *BookingHandler
}
