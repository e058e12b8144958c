package employee

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Save(ctx context.Context, empl *Employee) error
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindAll(ctx context.Context, status bool) ([]Employee, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// Save inserts a record without id (the id is assigned by BeforeCreate) and
// fully overwrites an existing one otherwise.
func (r *repository) Save(ctx context.Context, empl *Employee) error {
	if empl.ID == "" {
		return r.db.WithContext(ctx).Create(empl).Error
	}
	return r.db.WithContext(ctx).Omit("CreatedAt").Save(empl).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindAll(ctx context.Context, status bool) ([]Employee, error) {
	empls := make([]Employee, 0)
	err := r.db.WithContext(ctx).
		Scopes(statusScope(status)).
		Order("created_at ASC, id ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func statusScope(status bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ?", status)
	}
}
