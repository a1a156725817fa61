package services

import (
	"context"
	"testing"
	"time"

	"parishcare/internal/adapters/persistence/repositories"
	"parishcare/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMortuaryFixture(t *testing.T) (*MortuaryService, *repositories.MortuaryRepository) {
	t.Helper()

	db := setupTestDB(t)
	rackRepo := repositories.NewMortuaryRepository(db)
	return NewMortuaryService(rackRepo, 5, 5), rackRepo
}

func strPtr(s string) *string { return &s }

func TestInitializeRoundTrip(t *testing.T) {
	svc, _ := newMortuaryFixture(t)
	ctx := context.Background()

	created, err := svc.Initialize(ctx, 5, 5)
	require.NoError(t, err)
	assert.Equal(t, 25, created)

	racks, err := svc.ListRacks(ctx)
	require.NoError(t, err)
	require.Len(t, racks, 25)
	for _, rack := range racks {
		assert.Equal(t, domain.RackAvailable, rack.Status)
		assert.Nil(t, rack.Occupant)
		assert.Nil(t, rack.DateOccupied)
	}
	assert.Equal(t, "A1", racks[0].ID)
	assert.Equal(t, "E5", racks[24].ID)

	// Second run is non-destructive and creates nothing
	created, err = svc.Initialize(ctx, 5, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
}

func TestAddRackPositionOccupied(t *testing.T) {
	svc, _ := newMortuaryFixture(t)
	ctx := context.Background()

	_, err := svc.AddRack(ctx, &AddRackInput{ID: "A1", PositionRow: 0, PositionCol: 0})
	require.NoError(t, err)

	_, err = svc.AddRack(ctx, &AddRackInput{ID: "Z9", PositionRow: 0, PositionCol: 0})
	assert.ErrorIs(t, err, domain.ErrPositionOccupied)

	// Grid state unchanged by the failed add
	racks, err := svc.ListRacks(ctx)
	require.NoError(t, err)
	require.Len(t, racks, 1)
	assert.Equal(t, "A1", racks[0].ID)
}

func TestAddRackPairingValidation(t *testing.T) {
	svc, _ := newMortuaryFixture(t)
	ctx := context.Background()

	// Occupied without an occupant
	_, err := svc.AddRack(ctx, &AddRackInput{ID: "A1", Status: domain.RackOccupied})
	assert.ErrorIs(t, err, domain.ErrValidation)

	// Available with an occupant
	_, err = svc.AddRack(ctx, &AddRackInput{
		ID:       "A1",
		Status:   domain.RackAvailable,
		Occupant: strPtr("Juan Dela Cruz"),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	// Unknown status
	_, err = svc.AddRack(ctx, &AddRackInput{ID: "A1", Status: "pending"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	// Nothing was written
	stats, err := svc.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Total)
}

func TestAddRackOutsideGrid(t *testing.T) {
	svc, _ := newMortuaryFixture(t)

	_, err := svc.AddRack(context.Background(), &AddRackInput{ID: "F1", PositionRow: 5, PositionCol: 0})
	assert.ErrorIs(t, err, domain.ErrPositionOutside)
}

func TestAddRackDuplicateID(t *testing.T) {
	svc, _ := newMortuaryFixture(t)
	ctx := context.Background()

	_, err := svc.AddRack(ctx, &AddRackInput{ID: "A1", PositionRow: 0, PositionCol: 0})
	require.NoError(t, err)

	_, err = svc.AddRack(ctx, &AddRackInput{ID: "A1", PositionRow: 1, PositionCol: 1})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateRackEnforcesPairing(t *testing.T) {
	svc, _ := newMortuaryFixture(t)
	ctx := context.Background()

	_, err := svc.AddRack(ctx, &AddRackInput{ID: "B2", PositionRow: 1, PositionCol: 1})
	require.NoError(t, err)

	// Flipping to occupied without naming an occupant is rejected
	_, err = svc.UpdateRack(ctx, "B2", &UpdateRackInput{Status: strPtr(domain.RackOccupied)})
	assert.ErrorIs(t, err, domain.ErrValidation)

	// With an occupant it goes through and the date is stamped
	rack, err := svc.UpdateRack(ctx, "B2", &UpdateRackInput{
		Status:   strPtr(domain.RackOccupied),
		Occupant: strPtr("Maria Santos"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RackOccupied, rack.Status)
	require.NotNil(t, rack.Occupant)
	assert.Equal(t, "Maria Santos", *rack.Occupant)
	assert.NotNil(t, rack.DateOccupied)
}

func TestUpdateRackNotFound(t *testing.T) {
	svc, _ := newMortuaryFixture(t)

	_, err := svc.UpdateRack(context.Background(), "Z9", &UpdateRackInput{Notes: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrRackNotFound)
}

func TestResetRack(t *testing.T) {
	svc, _ := newMortuaryFixture(t)
	ctx := context.Background()

	occupiedAt := time.Now().AddDate(0, -1, 0)
	_, err := svc.AddRack(ctx, &AddRackInput{
		ID:           "A1",
		Status:       domain.RackOccupied,
		Occupant:     strPtr("Pedro Reyes"),
		DateOccupied: &occupiedAt,
		Notes:        "niche blessed",
	})
	require.NoError(t, err)

	rack, err := svc.ResetRack(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, domain.RackAvailable, rack.Status)
	assert.Nil(t, rack.Occupant)
	assert.Nil(t, rack.DateOccupied)
	assert.Equal(t, "A1", rack.ID)
	assert.Equal(t, 0, rack.PositionRow)
	assert.Equal(t, 0, rack.PositionCol)

	// Resetting an already-available rack is a no-op, not an error
	rack, err = svc.ResetRack(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, domain.RackAvailable, rack.Status)

	_, err = svc.ResetRack(ctx, "Z9")
	assert.ErrorIs(t, err, domain.ErrRackNotFound)
}

func TestDeleteRackFreesPosition(t *testing.T) {
	svc, _ := newMortuaryFixture(t)
	ctx := context.Background()

	_, err := svc.AddRack(ctx, &AddRackInput{ID: "A1", PositionRow: 0, PositionCol: 0})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRack(ctx, "A1"))
	assert.ErrorIs(t, svc.DeleteRack(ctx, "A1"), domain.ErrRackNotFound)

	// The freed cell accepts a new rack
	_, err = svc.AddRack(ctx, &AddRackInput{ID: "A1-new", PositionRow: 0, PositionCol: 0})
	require.NoError(t, err)
}

func TestBulkUpdateBestEffort(t *testing.T) {
	svc, _ := newMortuaryFixture(t)
	ctx := context.Background()

	_, err := svc.AddRack(ctx, &AddRackInput{ID: "A1", PositionRow: 0, PositionCol: 0})
	require.NoError(t, err)
	_, err = svc.AddRack(ctx, &AddRackInput{ID: "A2", PositionRow: 0, PositionCol: 1})
	require.NoError(t, err)

	results := svc.BulkUpdate(ctx, []BulkUpdateItem{
		{ID: "A1", Fields: UpdateRackInput{Status: strPtr(domain.RackReserved), Occupant: strPtr("Reserved for Cruz family")}},
		{ID: "Z9", Fields: UpdateRackInput{Notes: strPtr("missing rack")}},
		{ID: "A2", Fields: UpdateRackInput{Notes: strPtr("corner niche")}},
	})

	require.Len(t, results, 3)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.NotEmpty(t, results[1].Error)
	assert.True(t, results[2].Success)

	// The failed item did not roll back its neighbors
	rack, err := svc.GetRack(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, domain.RackReserved, rack.Status)
}

func TestRackStorageFailureIsNotNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMortuaryService(repositories.NewMortuaryRepository(db), 5, 5)
	ctx := context.Background()

	_, err := svc.AddRack(ctx, &AddRackInput{ID: "A1", PositionRow: 0, PositionCol: 0})
	require.NoError(t, err)

	// Pull the plug on the connection; every lookup now fails with a
	// storage error, which must surface as-is rather than as a 404
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = svc.GetRack(ctx, "A1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrRackNotFound)

	_, err = svc.UpdateRack(ctx, "A1", &UpdateRackInput{Notes: strPtr("x")})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrRackNotFound)

	_, err = svc.ResetRack(ctx, "A1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrRackNotFound)

	err = svc.DeleteRack(ctx, "A1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrRackNotFound)

	// The duplicate-id check must not read a failed lookup as "id free"
	_, err = svc.AddRack(ctx, &AddRackInput{ID: "B1", PositionRow: 1, PositionCol: 0})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrValidation)
	assert.NotErrorIs(t, err, domain.ErrPositionOccupied)
}

func TestGetAvailablePositions(t *testing.T) {
	svc, _ := newMortuaryFixture(t)
	ctx := context.Background()

	free, err := svc.GetAvailablePositions(ctx)
	require.NoError(t, err)
	assert.Len(t, free, 25)

	_, err = svc.AddRack(ctx, &AddRackInput{ID: "A1", PositionRow: 0, PositionCol: 0})
	require.NoError(t, err)

	free, err = svc.GetAvailablePositions(ctx)
	require.NoError(t, err)
	assert.Len(t, free, 24)
	assert.NotContains(t, free, Position{Row: 0, Col: 0})
}

func TestRackStatisticsSumToTotal(t *testing.T) {
	svc, _ := newMortuaryFixture(t)
	ctx := context.Background()

	_, err := svc.Initialize(ctx, 3, 3)
	require.NoError(t, err)

	_, err = svc.UpdateRack(ctx, "A1", &UpdateRackInput{Status: strPtr(domain.RackOccupied), Occupant: strPtr("Jose Rizal")})
	require.NoError(t, err)
	_, err = svc.UpdateRack(ctx, "B2", &UpdateRackInput{Status: strPtr(domain.RackReserved), Occupant: strPtr("Santos family")})
	require.NoError(t, err)

	stats, err := svc.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(9), stats.Total)
	assert.Equal(t, stats.Total, stats.Available+stats.Occupied+stats.Reserved)
	assert.Equal(t, int64(1), stats.Occupied)
	assert.Equal(t, int64(1), stats.Reserved)
	assert.Equal(t, int64(7), stats.Available)
}
