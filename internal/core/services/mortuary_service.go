package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"parishcare/internal/adapters/persistence/models"
	"parishcare/internal/adapters/persistence/repositories"
	"parishcare/internal/core/domain"

	"gorm.io/gorm"
)

// MortuaryService manages the columbarium rack grid
type MortuaryService struct {
	rackRepo *repositories.MortuaryRepository
	rows     int
	cols     int
}

// NewMortuaryService creates a new mortuary service with the configured
// grid dimensions
func NewMortuaryService(rackRepo *repositories.MortuaryRepository, rows, cols int) *MortuaryService {
	return &MortuaryService{
		rackRepo: rackRepo,
		rows:     rows,
		cols:     cols,
	}
}

// ============================================================
// Inputs & results
// ============================================================

// Position is one grid cell
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// AddRackInput represents a new rack request
type AddRackInput struct {
	ID           string     `json:"id" validate:"required"`
	PositionRow  int        `json:"position_row"`
	PositionCol  int        `json:"position_col"`
	Status       string     `json:"status"`
	Occupant     *string    `json:"occupant"`
	DateOccupied *time.Time `json:"date_occupied"`
	Notes        string     `json:"notes"`
}

// UpdateRackInput represents a partial rack update. Nil fields are
// left untouched.
type UpdateRackInput struct {
	Status       *string    `json:"status"`
	Occupant     *string    `json:"occupant"`
	DateOccupied *time.Time `json:"date_occupied"`
	Notes        *string    `json:"notes"`
}

// BulkUpdateItem is one entry of a bulk update request
type BulkUpdateItem struct {
	ID     string          `json:"id" validate:"required"`
	Fields UpdateRackInput `json:"fields"`
}

// BulkUpdateResult is the per-item outcome of a bulk update
type BulkUpdateResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// RackStats represents per-status rack counts
type RackStats struct {
	Total     int64 `json:"total"`
	Available int64 `json:"available"`
	Occupied  int64 `json:"occupied"`
	Reserved  int64 `json:"reserved"`
}

// ============================================================
// Invariant checks
// ============================================================

// validatePairing enforces the status/occupant pairing rule:
// available racks carry no occupant and no occupation date, while
// occupied and reserved racks must name an occupant.
func validatePairing(status string, occupant *string, dateOccupied *time.Time) error {
	if !domain.ValidRackStatus(status) {
		return fmt.Errorf("%w: invalid rack status '%s'", domain.ErrValidation, status)
	}

	hasOccupant := occupant != nil && *occupant != ""

	if status == domain.RackAvailable {
		if hasOccupant {
			return fmt.Errorf("%w: available rack cannot have an occupant", domain.ErrValidation)
		}
		if dateOccupied != nil {
			return fmt.Errorf("%w: available rack cannot have an occupation date", domain.ErrValidation)
		}
		return nil
	}

	if !hasOccupant {
		return fmt.Errorf("%w: %s rack requires an occupant", domain.ErrValidation, status)
	}
	return nil
}

// checkBounds rejects positions outside the configured grid
func (s *MortuaryService) checkBounds(row, col int) error {
	if row < 0 || row >= s.rows || col < 0 || col >= s.cols {
		return fmt.Errorf("%w: (%d,%d) outside %dx%d grid",
			domain.ErrPositionOutside, row, col, s.rows, s.cols)
	}
	return nil
}

// rackID builds the conventional rack name for a grid cell (A1, A2, ... B1)
func rackID(row, col int) string {
	return fmt.Sprintf("%c%d", 'A'+row, col+1)
}

// ============================================================
// Read side
// ============================================================

// ListRacks returns all racks ordered by grid position
func (s *MortuaryService) ListRacks(ctx context.Context) ([]*models.MortuaryRack, error) {
	return s.rackRepo.List(ctx)
}

// GetRack returns one rack by id
func (s *MortuaryService) GetRack(ctx context.Context, id string) (*models.MortuaryRack, error) {
	rack, err := s.rackRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRackNotFound
		}
		return nil, err
	}
	return rack, nil
}

// GetAvailablePositions returns the grid cells not currently assigned
// to any rack, bounded by the configured grid size
func (s *MortuaryService) GetAvailablePositions(ctx context.Context) ([]Position, error) {
	racks, err := s.rackRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	taken := make(map[Position]bool, len(racks))
	for _, rack := range racks {
		taken[Position{Row: rack.PositionRow, Col: rack.PositionCol}] = true
	}

	free := make([]Position, 0)
	for r := 0; r < s.rows; r++ {
		for c := 0; c < s.cols; c++ {
			pos := Position{Row: r, Col: c}
			if !taken[pos] {
				free = append(free, pos)
			}
		}
	}
	return free, nil
}

// Statistics returns per-status rack counts. Counts always sum to total.
func (s *MortuaryService) Statistics(ctx context.Context) (*RackStats, error) {
	counts, total, err := s.rackRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	return &RackStats{
		Total:     total,
		Available: counts[domain.RackAvailable],
		Occupied:  counts[domain.RackOccupied],
		Reserved:  counts[domain.RackReserved],
	}, nil
}

// ============================================================
// Write side
// ============================================================

// AddRack creates a single rack at an unoccupied grid cell. All
// invariants are checked before anything is written.
func (s *MortuaryService) AddRack(ctx context.Context, input *AddRackInput) (*models.MortuaryRack, error) {
	if input.ID == "" {
		return nil, fmt.Errorf("%w: rack id is required", domain.ErrValidation)
	}
	if err := s.checkBounds(input.PositionRow, input.PositionCol); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = domain.RackAvailable
	}
	if err := validatePairing(status, input.Occupant, input.DateOccupied); err != nil {
		return nil, err
	}

	// Rack ids are unique by primary key
	existing, err := s.rackRepo.GetByID(ctx, input.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: rack id '%s' already exists", domain.ErrValidation, input.ID)
	}

	// Position uniqueness, checked before the write
	occupied, err := s.rackRepo.GetByPosition(ctx, input.PositionRow, input.PositionCol)
	if err != nil {
		return nil, err
	}
	if occupied != nil {
		return nil, fmt.Errorf("%w: position (%d,%d) belongs to rack '%s'",
			domain.ErrPositionOccupied, input.PositionRow, input.PositionCol, occupied.ID)
	}

	dateOccupied := input.DateOccupied
	if status != domain.RackAvailable && dateOccupied == nil {
		now := time.Now()
		dateOccupied = &now
	}

	rack := &models.MortuaryRack{
		ID:           input.ID,
		Status:       status,
		Occupant:     input.Occupant,
		DateOccupied: dateOccupied,
		PositionRow:  input.PositionRow,
		PositionCol:  input.PositionCol,
		Notes:        input.Notes,
	}
	if err := s.rackRepo.Create(ctx, rack); err != nil {
		return nil, err
	}

	log.Printf("✅ Rack %s created at (%d,%d) [%s]", rack.ID, rack.PositionRow, rack.PositionCol, rack.Status)
	return rack, nil
}

// UpdateRack applies a partial update. The pairing invariant is
// re-validated against the record the update would produce; a change
// that would leave an occupied rack without an occupant is rejected,
// never silently corrected.
func (s *MortuaryService) UpdateRack(ctx context.Context, id string, input *UpdateRackInput) (*models.MortuaryRack, error) {
	rack, err := s.rackRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRackNotFound
		}
		return nil, err
	}

	// Project the update onto a copy to validate the resulting record
	next := *rack
	if input.Status != nil {
		next.Status = *input.Status
	}
	if input.Occupant != nil {
		next.Occupant = input.Occupant
	}
	if input.DateOccupied != nil {
		next.DateOccupied = input.DateOccupied
	}
	if input.Notes != nil {
		next.Notes = *input.Notes
	}

	// Moving back to available goes through ResetRack, which clears
	// occupant and date together
	if err := validatePairing(next.Status, next.Occupant, next.DateOccupied); err != nil {
		return nil, err
	}
	if next.Status != domain.RackAvailable && next.DateOccupied == nil {
		now := time.Now()
		next.DateOccupied = &now
	}

	updates := map[string]interface{}{
		"status":        next.Status,
		"occupant":      next.Occupant,
		"date_occupied": next.DateOccupied,
		"notes":         next.Notes,
	}
	if err := s.rackRepo.UpdateFields(ctx, id, updates); err != nil {
		return nil, err
	}

	log.Printf("✅ Rack %s updated [%s]", id, next.Status)
	return s.rackRepo.GetByID(ctx, id)
}

// ResetRack returns a rack to available, clearing occupant and
// occupation date. Idempotent for racks that are already available.
func (s *MortuaryService) ResetRack(ctx context.Context, id string) (*models.MortuaryRack, error) {
	if _, err := s.rackRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRackNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{
		"status":        domain.RackAvailable,
		"occupant":      nil,
		"date_occupied": nil,
	}
	if err := s.rackRepo.UpdateFields(ctx, id, updates); err != nil {
		return nil, err
	}

	log.Printf("✅ Rack %s reset to available", id)
	return s.rackRepo.GetByID(ctx, id)
}

// DeleteRack removes a rack entirely, freeing its grid cell
func (s *MortuaryService) DeleteRack(ctx context.Context, id string) error {
	if _, err := s.rackRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRackNotFound
		}
		return err
	}

	if err := s.rackRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("✅ Rack %s deleted", id)
	return nil
}

// BulkUpdate applies each update independently. One item's failure
// does not roll back the others; the caller gets a per-item report.
func (s *MortuaryService) BulkUpdate(ctx context.Context, items []BulkUpdateItem) []BulkUpdateResult {
	results := make([]BulkUpdateResult, 0, len(items))
	for _, item := range items {
		if _, err := s.UpdateRack(ctx, item.ID, &item.Fields); err != nil {
			results = append(results, BulkUpdateResult{ID: item.ID, Error: err.Error()})
			continue
		}
		results = append(results, BulkUpdateResult{ID: item.ID, Success: true})
	}
	return results
}

// Initialize fills every empty cell of the grid with a fresh available
// rack named by convention (A1..E5 for a 5x5 grid). Existing racks are
// left alone; returns how many racks were created.
func (s *MortuaryService) Initialize(ctx context.Context, rows, cols int) (int, error) {
	if rows <= 0 {
		rows = s.rows
	}
	if cols <= 0 {
		cols = s.cols
	}
	if rows > 26 {
		return 0, fmt.Errorf("%w: at most 26 rows (A-Z)", domain.ErrValidation)
	}

	created := 0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			existing, err := s.rackRepo.GetByPosition(ctx, r, c)
			if err != nil {
				return created, err
			}
			if existing != nil {
				continue
			}

			rack := &models.MortuaryRack{
				ID:          rackID(r, c),
				Status:      domain.RackAvailable,
				PositionRow: r,
				PositionCol: c,
			}
			if err := s.rackRepo.Create(ctx, rack); err != nil {
				return created, err
			}
			created++
		}
	}

	log.Printf("✅ Mortuary grid initialized: %d racks created (%dx%d)", created, rows, cols)
	return created, nil
}
