package schedule

import (
	"errors"
	"testing"

	"wellnest/models"
	"wellnest/services/availability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeProviderRepo struct {
	provider     *models.Provider
	updateCalls  int
	lastWritten  models.Availability
	updateFailed error
}

func (r *fakeProviderRepo) GetByID(id string) (*models.Provider, error) {
	if r.provider == nil || r.provider.ID != id {
		return nil, mongo.ErrNoDocuments
	}
	cp := *r.provider
	return &cp, nil
}

func (r *fakeProviderRepo) GetByIDWithProjection(id string, _ bson.M) (*models.Provider, error) {
	return r.GetByID(id)
}

func (r *fakeProviderRepo) Create(*models.Provider) error { return nil }
func (r *fakeProviderRepo) Update(*models.Provider) error { return nil }
func (r *fakeProviderRepo) Delete(string) error           { return nil }

func (r *fakeProviderRepo) UpdateAvailability(id string, avail models.Availability) error {
	if r.updateFailed != nil {
		return r.updateFailed
	}
	r.updateCalls++
	r.lastWritten = avail
	r.provider.Availability = avail
	return nil
}

func newServiceUnderTest(legacyDays ...string) (*DefaultScheduleService, *fakeProviderRepo) {
	avail := availability.MigrateLegacyAvailability(models.Availability{Days: legacyDays})
	repo := &fakeProviderRepo{provider: &models.Provider{ID: "prov-1", Availability: avail}}
	return &DefaultScheduleService{Repo: repo}, repo
}

func TestToggleDay_PersistsScheduleAndSummariesTogether(t *testing.T) {
	svc, repo := newServiceUnderTest()

	got, err := svc.ToggleDay("prov-1", 0)

	require.NoError(t, err)
	assert.Equal(t, 1, repo.updateCalls)
	assert.True(t, repo.lastWritten.Schedule[0].Active)
	assert.Equal(t, []string{"Mon"}, repo.lastWritten.Days)
	assert.Equal(t, []string{"09:00 - 17:00"}, repo.lastWritten.Hours)
	assert.Equal(t, repo.lastWritten, *got)
}

func TestToggleDay_EditorErrorSkipsPersist(t *testing.T) {
	svc, repo := newServiceUnderTest()

	_, err := svc.ToggleDay("prov-1", 42)

	require.Error(t, err)
	assert.Zero(t, repo.updateCalls)
}

func TestMutate_UnknownProvider(t *testing.T) {
	svc, _ := newServiceUnderTest()

	_, err := svc.ToggleDay("other", 0)

	require.Error(t, err)
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)
}

func TestMutate_PersistFailureSurfaces(t *testing.T) {
	svc, repo := newServiceUnderTest()
	repo.updateFailed = errors.New("write concern timeout")

	_, err := svc.AddBlocked("prov-1", "2025-12-25")

	require.Error(t, err)
	assert.ErrorIs(t, err, repo.updateFailed)
}

func TestBlockedDates_RoundTrip(t *testing.T) {
	svc, repo := newServiceUnderTest("Mon")

	_, err := svc.AddBlocked("prov-1", "2025-07-04")
	require.NoError(t, err)
	_, err = svc.AddBlocked("prov-1", "2025-01-01")
	require.NoError(t, err)
	_, err = svc.AddBlocked("prov-1", "2025-07-04")
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-01-01", "2025-07-04"}, repo.lastWritten.BlockedDates)

	got, err := svc.RemoveBlocked("prov-1", "2025-01-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-07-04"}, got.BlockedDates)
}

func TestRangeEdits_RoundTrip(t *testing.T) {
	svc, repo := newServiceUnderTest("Mon")

	_, err := svc.AddRange("prov-1", 0)
	require.NoError(t, err)
	_, err = svc.UpdateRange("prov-1", 0, 1, "end", "13:30")
	require.NoError(t, err)
	got, err := svc.RemoveRange("prov-1", 0, 0)
	require.NoError(t, err)

	ranges := got.Schedule[0].TimeRanges
	require.Len(t, ranges, 1)
	assert.Equal(t, models.TimeRange{Start: "12:00", End: "13:30"}, ranges[0])
	assert.Equal(t, []string{"12:00 - 13:30"}, repo.lastWritten.Hours)
}

func TestGetAvailability(t *testing.T) {
	svc, repo := newServiceUnderTest("Mon", "Wed")

	got, err := svc.GetAvailability("prov-1")

	require.NoError(t, err)
	assert.Equal(t, repo.provider.Availability, *got)
	assert.Equal(t, []string{"Mon", "Wed"}, got.Days)
}
