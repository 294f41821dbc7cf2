package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func completeDraft() Draft {
	return Draft{
		Name:          "Nguyễn Văn A",
		Phone:         "0901234567",
		Email:         "a@example.com",
		Address:       "12 Lê Lợi",
		Province:      "Đà Nẵng",
		Ward:          "Hải Châu",
		DepartureDate: "2026-10-01",
		TotalPrice:    1_000_000,
		Seats:         10,
		HasAdditional: true,
		TotalPeople:   4,
	}
}

func TestValidateDraft_Complete(t *testing.T) {
	assert.Empty(t, ValidateDraft(completeDraft()))
}

func TestValidateDraft_ZeroTotal(t *testing.T) {
	d := completeDraft()
	d.TotalPrice = 0

	errs := ValidateDraft(d)

	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], "total price")
}

func TestValidateDraft_CollectsAllFailures(t *testing.T) {
	errs := ValidateDraft(Draft{})

	// seven required fields plus the invalid total
	assert.Len(t, errs, 8)
}

func TestValidateDraft_MissingFields(t *testing.T) {
	testCases := []struct {
		name     string
		mutate   func(*Draft)
		expected string
	}{
		{name: "name", mutate: func(d *Draft) { d.Name = "" }, expected: "customer name is required"},
		{name: "phone", mutate: func(d *Draft) { d.Phone = "" }, expected: "phone number is required"},
		{name: "email", mutate: func(d *Draft) { d.Email = "" }, expected: "email is required"},
		{name: "address", mutate: func(d *Draft) { d.Address = "" }, expected: "address is required"},
		{name: "province", mutate: func(d *Draft) { d.Province = "" }, expected: "province is required"},
		{name: "ward", mutate: func(d *Draft) { d.Ward = "" }, expected: "ward is required"},
		{name: "departure date", mutate: func(d *Draft) { d.DepartureDate = "" }, expected: "departure date is required"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := completeDraft()
			tc.mutate(&d)

			errs := ValidateDraft(d)

			assert.Equal(t, []string{tc.expected}, errs)
		})
	}
}

func TestValidateDraft_CapacityExceededWithoutSurchargeTable(t *testing.T) {
	d := completeDraft()
	d.HasAdditional = false
	d.TotalPeople = 12

	errs := ValidateDraft(d)

	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], "exceeding seat capacity")
}

func TestValidateDraft_CapacityRuleSkippedWhenCapacityUnknown(t *testing.T) {
	d := completeDraft()
	d.HasAdditional = false
	d.Seats = 0
	d.TotalPeople = 40

	assert.Empty(t, ValidateDraft(d))
}

func TestValidate_Reporter(t *testing.T) {
	var got []string
	d := completeDraft()
	d.Email = ""
	d.TotalPrice = 0

	Validate(d, func(msg string) { got = append(got, msg) })

	assert.Len(t, got, 2)
}
