package mealplan

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

const displayDateLayout = "Monday, January 02 2006"

var (
	sectionRule = strings.Repeat("=", 50)
	blockRule   = strings.Repeat("-", 30)
)

// now is swapped out by tests that pin the generated date.
var now = time.Now

// Format renders the fixed-layout text report for a plan. The function is
// pure with respect to its inputs; rendering the same plan twice yields the
// same report. Preference lines appear only for values that are set and
// non-zero.
func Format(p Plan, prefs Preferences) string {
	var lines []string

	lines = append(lines, "WEEKLY MEAL PLAN")
	lines = append(lines, "Generated: "+displayDate(prefs.EventDate)+"\n")

	if prefs.FamilySize != nil && *prefs.FamilySize != 0 {
		lines = append(lines, fmt.Sprintf("Family Size: %d", *prefs.FamilySize))
	}
	if prefs.Diet != nil && *prefs.Diet != "" {
		lines = append(lines, "Dietary Preference: "+*prefs.Diet)
	}
	if prefs.Exclude != nil && *prefs.Exclude != "" {
		lines = append(lines, "Exclusions: "+*prefs.Exclude)
	}
	if prefs.TargetCalories != nil && *prefs.TargetCalories != 0 {
		lines = append(lines, fmt.Sprintf("Daily Calorie Target: %d", *prefs.TargetCalories))
	}
	lines = append(lines, "\n"+sectionRule+"\n")

	lines = append(lines, mealLines(p.Meals)...)

	if len(p.Nutrients) > 0 {
		lines = append(lines,
			sectionRule,
			"NUTRITION SUMMARY",
			blockRule,
			"Calories: "+nutrient(p.Nutrients, "calories"),
			"Protein: "+nutrient(p.Nutrients, "protein")+"g",
			"Fat: "+nutrient(p.Nutrients, "fat")+"g",
			"Carbohydrates: "+nutrient(p.Nutrients, "carbohydrates")+"g",
		)
	}

	if len(p.Items) > 0 {
		lines = append(lines, "\n"+sectionRule, "GROCERY LIST", blockRule)
		for _, item := range p.Items {
			name := item.Name
			if name == "" {
				name = "Unnamed Item"
			}
			if item.Aisle != "" {
				lines = append(lines, fmt.Sprintf("☑ %s (%s)", name, item.Aisle))
			} else {
				lines = append(lines, "☑ "+name)
			}
		}
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// mealLines groups meals under their day label and renders each group.
// Groups are ordered by the label's string form and meals keep their
// arrival order within a group.
func mealLines(meals []Meal) []string {
	grouped := make(map[string][]Meal)
	for _, m := range meals {
		label := string(m.Day)
		if label == "" {
			label = "Unknown"
		}
		grouped[label] = append(grouped[label], m)
	}

	days := make([]string, 0, len(grouped))
	for day := range grouped {
		days = append(days, day)
	}
	sort.Strings(days)

	var lines []string
	for _, day := range days {
		lines = append(lines, "DAY "+day, blockRule)
		for _, meal := range grouped[day] {
			title := meal.Title
			if title == "" {
				title = "Untitled Meal"
			}
			lines = append(lines, "🍽️ "+title)
			if truthy(meal.ReadyInMinutes) {
				lines = append(lines, fmt.Sprintf("   Ready in: %s minutes", meal.ReadyInMinutes))
			}
			if truthy(meal.Servings) {
				lines = append(lines, fmt.Sprintf("   Servings: %s", meal.Servings))
			}
			if truthy(meal.ID) {
				lines = append(lines, fmt.Sprintf("   Recipe URL: https://spoonacular.com/recipes/-%s", meal.ID))
			}
			lines = append(lines, "")
		}
		lines = append(lines, "")
	}
	return lines
}

// nutrient renders a nutrition value, or "N/A" when the key is missing. A
// value that is present is printed as sent, including zero.
func nutrient(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok {
		return "N/A"
	}
	return fmt.Sprint(v)
}

// truthy reports whether a numeric meal field should produce a report line.
// Absent and zero values are suppressed.
func truthy(n json.Number) bool {
	if n == "" {
		return false
	}
	f, err := n.Float64()
	return err == nil && f != 0
}

// displayDate renders the report header date. Event dates are ISO 8601,
// optionally with a trailing Z; a value that does not parse is echoed
// verbatim, and a missing date falls back to the current UTC date.
func displayDate(eventDate *string) string {
	if eventDate == nil || *eventDate == "" {
		return now().UTC().Format(displayDateLayout)
	}
	raw := *eventDate
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(displayDateLayout)
		}
	}
	return raw
}
