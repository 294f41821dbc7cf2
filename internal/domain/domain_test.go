package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPersonTypeRef_UnmarshalJSON(t *testing.T) {
	testCases := []struct {
		name     string
		payload  string
		expected PersonTypeRef
	}{
		{name: "plain id string", payload: `"abc123"`, expected: PersonTypeRef{ID: "abc123"}},
		{name: "populated object", payload: `{"_id":"abc123","name":"Người lớn"}`, expected: PersonTypeRef{ID: "abc123", Name: "Người lớn"}},
		{name: "object with plain id key", payload: `{"id":"abc123","name":"Trẻ em"}`, expected: PersonTypeRef{ID: "abc123", Name: "Trẻ em"}},
		{name: "mongo id wins over plain id", payload: `{"_id":"m1","id":"p1"}`, expected: PersonTypeRef{ID: "m1"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var ref PersonTypeRef
			assert.NoError(t, json.Unmarshal([]byte(tc.payload), &ref))
			assert.Equal(t, tc.expected, ref)
		})
	}
}

func TestPersonTypeRef_MarshalJSON(t *testing.T) {
	idOnly, err := json.Marshal(PersonTypeRef{ID: "abc123"})
	assert.NoError(t, err)
	assert.JSONEq(t, `"abc123"`, string(idOnly))

	populated, err := json.Marshal(PersonTypeRef{ID: "abc123", Name: "Người lớn"})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"_id":"abc123","name":"Người lớn"}`, string(populated))
}

func TestParsePaymentMethod(t *testing.T) {
	for _, raw := range []string{"cash", "momo", "card"} {
		method, ok := ParsePaymentMethod(raw)
		assert.True(t, ok)
		assert.Equal(t, raw, string(method))
	}

	_, ok := ParsePaymentMethod("barter")
	assert.False(t, ok)
	_, ok = ParsePaymentMethod("")
	assert.False(t, ok)
}

func TestTour_HasAdditional(t *testing.T) {
	tour := &Tour{}
	assert.False(t, tour.HasAdditional())

	tour.AdditionalPrices = []AdditionalPrice{
		{TypeOfPerson: PersonTypeRef{ID: "A"}, MoneyMore: 100_000},
	}
	assert.True(t, tour.HasAdditional())
}
