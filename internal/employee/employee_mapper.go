package employee

import "github.com/shopspring/decimal"

const (
	TierBronze   = "Bronze"
	TierSilver   = "Silver"
	TierGold     = "Gold"
	TierPlatinum = "Platinum"
)

var (
	silverFloor   = decimal.NewFromInt(5000)
	goldFloor     = decimal.NewFromInt(10000)
	platinumFloor = decimal.NewFromInt(15000)
)

// Tier classifies a salary into its compensation band. Each band includes
// its lower bound. A nil salary counts as zero.
func Tier(salary *decimal.Decimal) string {
	s := decimal.Zero
	if salary != nil {
		s = *salary
	}

	switch {
	case s.LessThan(silverFloor):
		return TierBronze
	case s.LessThan(goldFloor):
		return TierSilver
	case s.LessThan(platinumFloor):
		return TierGold
	default:
		return TierPlatinum
	}
}

// ToEntity builds a new record for creation. Status is always true and any
// client supplied status is ignored.
func ToEntity(req CreateEmployeeRequest) *Employee {
	return &Employee{
		FirstName:   deref(req.FirstName),
		LastName:    deref(req.LastName),
		Email:       deref(req.Email),
		PhoneNumber: deref(req.PhoneNumber),
		Salary:      req.Salary,
		Status:      true,
	}
}

// ToReplacement builds the full overwrite of an existing record. An omitted
// status keeps the record active.
func ToReplacement(req UpdateEmployeeRequest) *Employee {
	status := true
	if req.Status != nil {
		status = *req.Status
	}

	return &Employee{
		ID:          deref(req.ID),
		FirstName:   deref(req.FirstName),
		LastName:    deref(req.LastName),
		Email:       deref(req.Email),
		PhoneNumber: deref(req.PhoneNumber),
		Salary:      req.Salary,
		Status:      status,
	}
}

// MergeNonNull copies every non-nil field of patch onto target. The id is
// never overwritten.
func MergeNonNull(target *Employee, patch PatchEmployeeRequest) {
	if patch.FirstName != nil {
		target.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		target.LastName = *patch.LastName
	}
	if patch.Email != nil {
		target.Email = *patch.Email
	}
	if patch.PhoneNumber != nil {
		target.PhoneNumber = *patch.PhoneNumber
	}
	if patch.Salary != nil {
		salary := *patch.Salary
		target.Salary = &salary
	}
	if patch.Status != nil {
		target.Status = *patch.Status
	}
}

func ToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:          empl.ID,
		FirstName:   empl.FirstName,
		LastName:    empl.LastName,
		Email:       empl.Email,
		PhoneNumber: empl.PhoneNumber,
		Salary:      empl.Salary,
		Status:      empl.Status,
		Tier:        Tier(empl.Salary),
	}
}

func ToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = ToResponse(e)
	}
	return res
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
