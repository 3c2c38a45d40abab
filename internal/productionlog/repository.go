package productionlog

import (
	"context"

	"github.com/ivancepe/Production-Trial/internal/models"

	"gorm.io/gorm"
)

// Repository is the production log store used by the handlers.
type Repository interface {
	List(ctx context.Context) ([]models.ProductionLog, error)
	Create(ctx context.Context, entry *models.ProductionLog) error
}

// GormRepository stores production logs in the production_logs table.
type GormRepository struct {
	db *gorm.DB
}

// NewRepository wraps the shared database handle.
func NewRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// List returns every record, newest date first, then latest start time.
func (r *GormRepository) List(ctx context.Context) ([]models.ProductionLog, error) {
	logs := make([]models.ProductionLog, 0)
	err := r.db.WithContext(ctx).
		Order("date DESC").
		Order("start_time DESC").
		Order("id DESC").
		Find(&logs).Error
	if err != nil {
		return nil, &StoreError{Op: "list", Err: err}
	}
	return logs, nil
}

// Create inserts entry in a single statement and fills in its generated id.
func (r *GormRepository) Create(ctx context.Context, entry *models.ProductionLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return &StoreError{Op: "create", Err: err}
	}
	return nil
}
