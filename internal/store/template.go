package store

import (
	"context"
	"fmt"

	"interview-scheduler-backend/internal/model"
)

// CreateTemplate adds a template to the catalog.
func (s *gormStore) CreateTemplate(ctx context.Context, t *model.InterviewTemplate) error {
	if t.Name == "" {
		return fmt.Errorf("template name is required")
	}
	if t.DurationMinutes <= 0 {
		return fmt.Errorf("template duration_minutes must be positive, got %d", t.DurationMinutes)
	}
	return s.db.WithContext(ctx).Create(t).Error
}

// GetTemplate fetches a template by id.
func (s *gormStore) GetTemplate(ctx context.Context, id string) (*model.InterviewTemplate, error) {
	var t model.InterviewTemplate
	if err := s.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &t, nil
}

// ListTemplates returns templates, newest first.
func (s *gormStore) ListTemplates(ctx context.Context, activeOnly bool) ([]model.InterviewTemplate, error) {
	q := s.db.WithContext(ctx).Model(&model.InterviewTemplate{})
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var templates []model.InterviewTemplate
	if err := q.Order("created_at DESC").Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// DeactivateTemplate retires a template. The catalog is append-only:
// referenced templates are never edited or deleted.
func (s *gormStore) DeactivateTemplate(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Model(&model.InterviewTemplate{}).
		Where("id = ?", id).
		Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
