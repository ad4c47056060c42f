package emailtemplate

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, t *EmailTemplate) error
	FindAll(ctx context.Context) ([]EmailTemplate, error)
	FindByID(ctx context.Context, id string) (*EmailTemplate, error)
	FindEnabledByEvent(ctx context.Context, event string) (*EmailTemplate, error)
	Update(ctx context.Context, t *EmailTemplate) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, t *EmailTemplate) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindAll(ctx context.Context) ([]EmailTemplate, error) {
	var templates []EmailTemplate
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&templates).Error
	return templates, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*EmailTemplate, error) {
	var t EmailTemplate
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	return &t, err
}

func (r *repository) FindEnabledByEvent(ctx context.Context, event string) (*EmailTemplate, error) {
	var t EmailTemplate
	err := r.db.WithContext(ctx).
		Where("event = ?", event).
		Where("metadata ->> 'enabled' = 'true'").
		First(&t).Error
	return &t, err
}

func (r *repository) Update(ctx context.Context, t *EmailTemplate) error {
	return r.db.WithContext(ctx).Save(t).Error
}
