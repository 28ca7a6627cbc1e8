// Package mealplan models the plan document returned by the Spoonacular
// generator and renders it as a plain-text report. Parsing is deliberately
// tolerant: the upstream schema differs between day and week plans, so any
// section whose field is missing or has an unexpected shape is simply left
// out of the report. Only a top level that is not a JSON object is an error.
package mealplan

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotAPlan reports an upstream document whose top level is not a JSON
// object.
var ErrNotAPlan = errors.New("meal plan response is not a JSON object")

// Preferences carries the caller's request parameters. They are echoed back
// verbatim in the result envelope and drive the report header. Nil means the
// caller never supplied the value and serializes as null; an explicit zero
// or empty string is preserved in the echo but suppressed wherever the value
// is consumed.
type Preferences struct {
	FamilySize     *int    `json:"familySize"`
	TargetCalories *int    `json:"targetCalories"`
	Diet           *string `json:"diet"`
	Exclude        *string `json:"exclude"`
	EventDate      *string `json:"eventDate"`
}

// Plan holds the subset of the generator response the report consumes.
type Plan struct {
	Meals     []Meal
	Nutrients map[string]any
	Items     []GroceryItem
}

// Meal is one entry of the plan's "meals" array. Numeric fields keep their
// JSON literal form so the report prints them exactly as the API sent them.
type Meal struct {
	ID             json.Number `json:"id"`
	Title          string      `json:"title"`
	ReadyInMinutes json.Number `json:"readyInMinutes"`
	Servings       json.Number `json:"servings"`
	Day            DayLabel    `json:"day"`
}

// GroceryItem is one entry of the plan's "items" array.
type GroceryItem struct {
	Name  string `json:"name"`
	Aisle string `json:"aisle"`
}

// DayLabel accepts the "day" field as either a string or a number. Week
// plans from the API use numbers, but hand-built documents often use names,
// so both group under their string form.
type DayLabel string

func (d *DayLabel) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*d = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*d = DayLabel(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*d = DayLabel(n.String())
		return nil
	}
	return fmt.Errorf("day label must be a string or a number, got %s", data)
}

// Parse extracts the report fields from a raw generator response. Each
// section is decoded independently and dropped on a shape mismatch, never
// partially kept, so a malformed "items" array cannot poison the meals.
func Parse(raw json.RawMessage) (Plan, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Plan{}, ErrNotAPlan
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &top); err != nil {
		return Plan{}, fmt.Errorf("%w: %v", ErrNotAPlan, err)
	}

	var p Plan
	if field, ok := top["meals"]; ok {
		var meals []Meal
		if err := json.Unmarshal(field, &meals); err == nil {
			p.Meals = meals
		}
	}
	if field, ok := top["nutrients"]; ok {
		dec := json.NewDecoder(bytes.NewReader(field))
		dec.UseNumber()
		var nutrients map[string]any
		if err := dec.Decode(&nutrients); err == nil {
			p.Nutrients = nutrients
		}
	}
	if field, ok := top["items"]; ok {
		var items []GroceryItem
		if err := json.Unmarshal(field, &items); err == nil {
			p.Items = items
		}
	}
	return p, nil
}
