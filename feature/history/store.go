package history

import (
	"context"
	"fmt"

	"asset-loader/feature/batch"
	"asset-loader/feature/history/models"

	"gorm.io/gorm"
)

// Store persists finished batches. It implements batch.Recorder.
type Store struct {
	db *gorm.DB
}

// NewStore creates a history store on the given connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the history tables.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&models.Batch{}, &models.Resource{}); err != nil {
		return fmt.Errorf("failed to migrate history tables: %w", err)
	}
	return nil
}

// Record stores a finished batch and its per-resource outcomes in one
// transaction.
func (s *Store) Record(ctx context.Context, st batch.Status) error {
	b := models.Batch{
		ID:        st.ID,
		Mode:      st.Mode,
		Total:     len(st.Results),
		Failed:    st.Failed(),
		StartedAt: st.StartedAt,
	}
	if st.FinishedAt != nil {
		b.FinishedAt = *st.FinishedAt
	}

	resources := make([]models.Resource, 0, len(st.Results))
	for _, r := range st.Results {
		resources = append(resources, models.Resource{
			BatchID: st.ID,
			Name:    r.Name,
			URL:     r.URL,
			Size:    r.Size,
			Error:   r.Error,
		})
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&b).Error; err != nil {
			return fmt.Errorf("failed to insert batch: %w", err)
		}
		if len(resources) == 0 {
			return nil
		}
		if err := tx.Create(&resources).Error; err != nil {
			return fmt.Errorf("failed to insert batch resources: %w", err)
		}
		return nil
	})
}

// ListBatches returns the most recent batches, newest first.
func (s *Store) ListBatches(ctx context.Context, limit int) ([]models.Batch, error) {
	if limit <= 0 {
		limit = 50
	}

	var batches []models.Batch
	err := s.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&batches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	return batches, nil
}

// GetBatch returns one batch and its resource outcomes.
func (s *Store) GetBatch(ctx context.Context, id string) (*models.Batch, []models.Resource, error) {
	var b models.Batch
	err := s.db.WithContext(ctx).First(&b, "id = ?", id).Error
	if err != nil {
		return nil, nil, err
	}

	var resources []models.Resource
	err = s.db.WithContext(ctx).Find(&resources, "batch_id = ?", id).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load batch resources: %w", err)
	}
	return &b, resources, nil
}
