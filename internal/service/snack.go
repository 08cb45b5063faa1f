package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hearthplan/backend/internal/models"
	"github.com/hearthplan/backend/internal/planner"
)

// SnackSelection is one toggle state of a bulk snack-log update.
type SnackSelection struct {
	Date      time.Time
	Person    string
	SnackName string
	Consumed  bool
}

// SnackService handles the snack catalog and the consumption log
type SnackService struct {
	db *gorm.DB
}

func NewSnackService(db *gorm.DB) *SnackService {
	return &SnackService{db: db}
}

// ListSnacks returns the snack catalog ordered by name.
func (s *SnackService) ListSnacks(ctx context.Context) ([]models.Snack, error) {
	var snacks []models.Snack
	if err := s.db.WithContext(ctx).Order("name").Find(&snacks).Error; err != nil {
		return nil, err
	}
	return snacks, nil
}

// CreateSnack adds a catalog snack.
func (s *SnackService) CreateSnack(ctx context.Context, snack *models.Snack) (*models.Snack, error) {
	if err := s.db.WithContext(ctx).Create(snack).Error; err != nil {
		return nil, err
	}
	return snack, nil
}

// BulkUpdateLog upserts snack-log rows keyed by (date, person, snack).
// Selections naming an unknown person or snack are skipped. Returns
// the number of rows written.
func (s *SnackService) BulkUpdateLog(ctx context.Context, selections []SnackSelection) (int, error) {
	var people []models.Person
	if err := s.db.WithContext(ctx).Find(&people).Error; err != nil {
		return 0, err
	}
	personIDs := make(map[string]uuid.UUID, len(people))
	for _, p := range people {
		personIDs[strings.ToLower(p.Name)] = p.ID
	}

	var snacks []models.Snack
	if err := s.db.WithContext(ctx).Find(&snacks).Error; err != nil {
		return 0, err
	}
	snackIDs := make(map[string]uuid.UUID, len(snacks))
	for _, snack := range snacks {
		snackIDs[strings.ToLower(snack.Name)] = snack.ID
	}

	updated := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, sel := range selections {
			personID, ok := personIDs[strings.ToLower(sel.Person)]
			if !ok {
				continue
			}
			snackID, ok := snackIDs[strings.ToLower(sel.SnackName)]
			if !ok {
				continue
			}
			date := planner.DateOf(sel.Date)

			var entry models.SnackLogEntry
			err := tx.Where("date = ? AND person_id = ? AND snack_id = ?", date, personID, snackID).
				First(&entry).Error
			switch {
			case err == nil:
				if err := tx.Model(&entry).Update("consumed", sel.Consumed).Error; err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				entry = models.SnackLogEntry{
					Date:     date,
					PersonID: personID,
					SnackID:  snackID,
					Consumed: sel.Consumed,
				}
				if err := tx.Create(&entry).Error; err != nil {
					return err
				}
			default:
				return err
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}
