package employee

import "github.com/shopspring/decimal"

// CreateEmployeeRequest is the body of POST /employees. ID must be absent.
type CreateEmployeeRequest struct {
	ID          *string          `json:"id"`
	FirstName   *string          `json:"firstName" binding:"required,min=1"`
	LastName    *string          `json:"lastName"`
	Email       *string          `json:"email" binding:"required,min=1"`
	PhoneNumber *string          `json:"phoneNumber" binding:"omitempty,max=50"`
	Salary      *decimal.Decimal `json:"salary"`
	Status      *bool            `json:"status"`
}

// UpdateEmployeeRequest is the body of PUT /employees/:id, a full replacement.
type UpdateEmployeeRequest struct {
	ID          *string          `json:"id"`
	FirstName   *string          `json:"firstName" binding:"required,min=1"`
	LastName    *string          `json:"lastName"`
	Email       *string          `json:"email" binding:"required,min=1"`
	PhoneNumber *string          `json:"phoneNumber" binding:"omitempty,max=50"`
	Salary      *decimal.Decimal `json:"salary"`
	Status      *bool            `json:"status"`
}

// PatchEmployeeRequest is the body of PATCH /employees/:id. Nil fields are
// left untouched on the stored record.
type PatchEmployeeRequest struct {
	ID          *string          `json:"id"`
	FirstName   *string          `json:"firstName" binding:"omitnil,min=1"`
	LastName    *string          `json:"lastName"`
	Email       *string          `json:"email" binding:"omitnil,min=1"`
	PhoneNumber *string          `json:"phoneNumber" binding:"omitnil,max=50"`
	Salary      *decimal.Decimal `json:"salary"`
	Status      *bool            `json:"status"`
}

type EmployeeResponse struct {
	ID          string           `json:"id"`
	FirstName   string           `json:"firstName"`
	LastName    string           `json:"lastName,omitempty"`
	Email       string           `json:"email"`
	PhoneNumber string           `json:"phoneNumber,omitempty"`
	Salary      *decimal.Decimal `json:"salary,omitempty"`
	Status      bool             `json:"status"`
	Tier        string           `json:"tier"`
}
