package domain

import (
	"encoding/json"
	"time"
)

type PersonTypeKey string

const (
	PersonTypeAdult      PersonTypeKey = "adult"
	PersonTypeChild      PersonTypeKey = "child"
	PersonTypeSmallChild PersonTypeKey = "smallChild"
	PersonTypeInfant     PersonTypeKey = "infant"
)

// PersonTypeRef is a reference to a type-of-person record. On the wire it is
// either a plain id string or a populated object with _id/id and name.
type PersonTypeRef struct {
	ID   string
	Name string
}

func (r *PersonTypeRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		r.ID = id
		r.Name = ""
		return nil
	}

	var obj struct {
		MongoID string `json:"_id"`
		ID      string `json:"id"`
		Name    string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	r.ID = obj.MongoID
	if r.ID == "" {
		r.ID = obj.ID
	}
	r.Name = obj.Name
	return nil
}

func (r PersonTypeRef) MarshalJSON() ([]byte, error) {
	if r.Name == "" {
		return json.Marshal(r.ID)
	}
	return json.Marshal(struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
	}{ID: r.ID, Name: r.Name})
}

// AdditionalPrice binds a person type to the per-head surcharge charged for
// every seat taken beyond the tour's fixed capacity.
type AdditionalPrice struct {
	TypeOfPerson PersonTypeRef `json:"typeOfPersonId"`
	MoneyMore    int64         `json:"moneyMore"`
}

type Tour struct {
	ID               string            `json:"_id"`
	Slug             string            `json:"slug"`
	Title            string            `json:"title"`
	Seats            int               `json:"seats"`
	Price            int64             `json:"prices"`
	Discount         int               `json:"discount"`
	AdditionalPrices []AdditionalPrice `json:"additionalPrices"`
	AllowTypePeople  []PersonTypeRef   `json:"allowTypePeople"`
	CategoryID       string            `json:"categoryId"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// HasAdditional reports whether the tour carries a surcharge table. A tour
// without one forbids exceeding its seat capacity altogether.
func (t *Tour) HasAdditional() bool {
	return len(t.AdditionalPrices) > 0
}
