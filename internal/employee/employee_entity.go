package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Employee struct {
	ID          string           `gorm:"type:varchar(36);primaryKey"`
	FirstName   string           `gorm:"size:255;not null"`
	LastName    string           `gorm:"size:255"`
	Email       string           `gorm:"size:255;not null;uniqueIndex:uq_employees_email"`
	PhoneNumber string           `gorm:"size:50"`
	Salary      *decimal.Decimal `gorm:"type:numeric(15,2)"`
	Status      bool             `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Employee) TableName() string {
	return "employees"
}

// BeforeCreate assigns the identifier on first save.
func (e *Employee) BeforeCreate(*gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// Equal reports identity equality: two records are equal when both carry
// the same non-empty id. A record without an id only equals itself.
func (e *Employee) Equal(other *Employee) bool {
	if e == other {
		return true
	}
	if e == nil || other == nil {
		return false
	}
	return e.ID != "" && e.ID == other.ID
}
