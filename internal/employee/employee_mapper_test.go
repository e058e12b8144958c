package employee

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestTier(t *testing.T) {
	tests := []struct {
		name   string
		salary *decimal.Decimal
		want   string
	}{
		{"nil counts as zero", nil, TierBronze},
		{"negative", dec("-1"), TierBronze},
		{"just below silver", dec("4999.99"), TierBronze},
		{"silver lower bound", dec("5000"), TierSilver},
		{"just below gold", dec("9999.99"), TierSilver},
		{"gold lower bound", dec("10000"), TierGold},
		{"just below platinum", dec("14999.99"), TierGold},
		{"platinum lower bound", dec("15000"), TierPlatinum},
		{"large", dec("1000000"), TierPlatinum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tier(tt.salary))
		})
	}
}

func TestToEntity_ForcesActiveStatus(t *testing.T) {
	inactive := false
	first, email := "Ada", "ada@example.com"

	e := ToEntity(CreateEmployeeRequest{FirstName: &first, Email: &email, Status: &inactive})

	assert.True(t, e.Status)
	assert.Empty(t, e.ID)
	assert.Equal(t, "Ada", e.FirstName)
	assert.Empty(t, e.LastName)
}

func TestToReplacement(t *testing.T) {
	id, first, email := "e-1", "Ada", "ada@example.com"

	t.Run("omitted status defaults to active", func(t *testing.T) {
		e := ToReplacement(UpdateEmployeeRequest{ID: &id, FirstName: &first, Email: &email})
		assert.Equal(t, "e-1", e.ID)
		assert.True(t, e.Status)
	})

	t.Run("explicit status wins", func(t *testing.T) {
		inactive := false
		e := ToReplacement(UpdateEmployeeRequest{ID: &id, FirstName: &first, Email: &email, Status: &inactive})
		assert.False(t, e.Status)
	})
}

func TestMergeNonNull(t *testing.T) {
	base := func() *Employee {
		return &Employee{
			ID:          "e-1",
			FirstName:   "Ada",
			LastName:    "Lovelace",
			Email:       "ada@example.com",
			PhoneNumber: "555-0100",
			Salary:      dec("4000"),
			Status:      true,
		}
	}

	t.Run("empty patch leaves record unchanged", func(t *testing.T) {
		target := base()
		MergeNonNull(target, PatchEmployeeRequest{})
		assert.Equal(t, base(), target)
	})

	t.Run("non-null fields overwrite", func(t *testing.T) {
		target := base()
		last, inactive := "Byron", false
		MergeNonNull(target, PatchEmployeeRequest{LastName: &last, Salary: dec("9000"), Status: &inactive})

		assert.Equal(t, "Ada", target.FirstName)
		assert.Equal(t, "Byron", target.LastName)
		assert.Equal(t, "555-0100", target.PhoneNumber)
		assert.Equal(t, "9000", target.Salary.String())
		assert.False(t, target.Status)
	})

	t.Run("id is never overwritten", func(t *testing.T) {
		target := base()
		other := "e-2"
		MergeNonNull(target, PatchEmployeeRequest{ID: &other})
		assert.Equal(t, "e-1", target.ID)
	})

	t.Run("salary is copied, not aliased", func(t *testing.T) {
		target := base()
		patch := PatchEmployeeRequest{Salary: dec("9000")}
		MergeNonNull(target, patch)
		*patch.Salary = decimal.NewFromInt(1)
		assert.Equal(t, "9000", target.Salary.String())
	})
}

func TestToListResponse(t *testing.T) {
	assert.NotNil(t, ToListResponse(nil))
	assert.Empty(t, ToListResponse(nil))

	res := ToListResponse([]Employee{{ID: "a", Salary: dec("12000")}, {ID: "b"}})
	assert.Equal(t, []string{TierGold, TierBronze}, []string{res[0].Tier, res[1].Tier})
}

func TestEmployee_Equal(t *testing.T) {
	a := &Employee{ID: "x", FirstName: "Ada"}
	b := &Employee{ID: "x", FirstName: "Different"}
	c := &Employee{ID: "y"}
	noID := &Employee{}
	otherNoID := &Employee{}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.True(t, noID.Equal(noID))
	assert.False(t, noID.Equal(otherNoID))
	assert.False(t, a.Equal(nil))
}
