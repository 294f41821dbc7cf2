package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vuhd/tourbooking/internal/domain"
)

func TestKeyForName(t *testing.T) {
	testCases := []struct {
		name     string
		display  string
		expected domain.PersonTypeKey
	}{
		{name: "adult", display: "Người lớn", expected: domain.PersonTypeAdult},
		{name: "child", display: "Trẻ em (từ 5 tuổi trở lên)", expected: domain.PersonTypeChild},
		{name: "small child by age range", display: "Trẻ em 2-5 tuổi", expected: domain.PersonTypeSmallChild},
		{name: "infant", display: "Em bé dưới 2 tuổi", expected: domain.PersonTypeInfant},
		{name: "unmatched name gets no key", display: "Người cao tuổi", expected: ""},
		{name: "empty name", display: "", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, KeyForName(tc.display))
		})
	}
}

func TestBuildCatalog(t *testing.T) {
	additional := []domain.AdditionalPrice{
		{TypeOfPerson: domain.PersonTypeRef{ID: "A", Name: "Người lớn"}, MoneyMore: 150_000},
		{TypeOfPerson: domain.PersonTypeRef{ID: "B", Name: "Trẻ em"}, MoneyMore: 100_000},
		{TypeOfPerson: domain.PersonTypeRef{}, MoneyMore: 50_000}, // no id, dropped
	}
	allow := []domain.PersonTypeRef{
		{ID: "A", Name: "Người lớn (trên 11 tuổi)"},
		{ID: "C", Name: "Em bé dưới 2 tuổi"},
	}

	catalog := BuildCatalog(additional, allow)

	assert.Equal(t, 3, catalog.Len())

	adult, ok := catalog.ByKey(domain.PersonTypeAdult)
	assert.True(t, ok)
	assert.Equal(t, "A", adult.ID)
	// allow-list display name wins over the surcharge row's name
	assert.Equal(t, "Người lớn (trên 11 tuổi)", adult.Name)
	assert.Equal(t, int64(150_000), adult.SurchargeRate)

	infant, ok := catalog.ByKey(domain.PersonTypeInfant)
	assert.True(t, ok)
	assert.Equal(t, "C", infant.ID)
	assert.Equal(t, int64(0), infant.SurchargeRate)

	assert.Equal(t, int64(100_000), catalog.Rate("B"))
	assert.Equal(t, int64(0), catalog.Rate("unknown"))
}

func TestBuildCatalog_UnkeyedCategoryExcludedFromKnown(t *testing.T) {
	additional := []domain.AdditionalPrice{
		{TypeOfPerson: domain.PersonTypeRef{ID: "A", Name: "Người lớn"}, MoneyMore: 150_000},
		{TypeOfPerson: domain.PersonTypeRef{ID: "X", Name: "Khách đặc biệt"}, MoneyMore: 80_000},
	}

	catalog := BuildCatalog(additional, nil)

	assert.Len(t, catalog.All(), 2)
	known := catalog.Known()
	assert.Len(t, known, 1)
	assert.Equal(t, "A", known[0].ID)
	// the unkeyed category still carries its surcharge rate
	assert.Equal(t, int64(80_000), catalog.Rate("X"))
}

func TestBuildCatalog_DeduplicatesByID(t *testing.T) {
	additional := []domain.AdditionalPrice{
		{TypeOfPerson: domain.PersonTypeRef{ID: "A", Name: "Người lớn"}, MoneyMore: 150_000},
		{TypeOfPerson: domain.PersonTypeRef{ID: "A", Name: "Người lớn"}, MoneyMore: 120_000},
	}

	catalog := BuildCatalog(additional, nil)

	assert.Equal(t, 1, catalog.Len())
	assert.Equal(t, int64(120_000), catalog.Rate("A"))
}
