package repository

import (
	"context"
	"errors"

	"PropScope/internal/interfaces"
	"PropScope/internal/model"

	"gorm.io/gorm"
)

type viewRepository struct {
	db *gorm.DB
}

// NewViewRepository creates the saved-view store
func NewViewRepository(db *gorm.DB) interfaces.ViewStore {
	return &viewRepository{db: db}
}

func (r *viewRepository) Create(ctx context.Context, view *model.SavedView) error {
	return r.db.WithContext(ctx).Create(view).Error
}

func (r *viewRepository) ListByUser(ctx context.Context, email string) ([]model.SavedView, error) {
	var list []model.SavedView
	if err := r.db.WithContext(ctx).
		Where("user_email = ?", email).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *viewRepository) GetByUUID(ctx context.Context, viewUUID string) (*model.SavedView, error) {
	var v model.SavedView
	if err := r.db.WithContext(ctx).Where("view_uuid = ?", viewUUID).First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrViewNotFound
		}
		return nil, err
	}
	return &v, nil
}

// Delete removes a view owned by email; false when nothing matched
func (r *viewRepository) Delete(ctx context.Context, email, viewUUID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_email = ? AND view_uuid = ?", email, viewUUID).
		Delete(&model.SavedView{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
