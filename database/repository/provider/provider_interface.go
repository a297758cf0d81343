package providerRepo

import (
	"wellnest/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ProviderRepository defines methods for provider data access. Reads return
// documents whose availability has already been migrated off the legacy
// days-only shape.
type ProviderRepository interface {
	// GetByID retrieves a provider by its unique ID.
	GetByID(id string) (*models.Provider, error)
	// GetByIDWithProjection retrieves a provider by its unique ID with a projection.
	GetByIDWithProjection(id string, projection bson.M) (*models.Provider, error)
	// Create inserts a new provider record.
	Create(provider *models.Provider) error
	// Update modifies an existing provider record.
	Update(provider *models.Provider) error
	// Delete removes a provider record by its ID.
	Delete(id string) error
	// UpdateAvailability writes the full availability document (schedule,
	// derived summaries and blocked dates) in a single combined update.
	UpdateAvailability(id string, avail models.Availability) error
}
