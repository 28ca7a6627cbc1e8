// Command mockapi is a stand-in Spoonacular API for local development. It
// serves generated meal plans so platewise can run end to end without a real
// API key: point SPOONACULAR_BASE_URL at it and use any non-empty key.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"net/http"
)

func main() {
	port := flag.Int("port", 9400, "Mock API port")
	flag.Parse()

	mux := http.NewServeMux()
	mux.HandleFunc("/mealplanner/generate", generateHandler)

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("Mock Spoonacular API on %s", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}

func generateHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("apiKey") == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"status":  "failure",
			"code":    401,
			"message": "You are not authorized. Please read https://spoonacular.com/food-api/docs#Authentication",
		})
		return
	}

	switch r.URL.Query().Get("timeFrame") {
	case "day":
		writeJSON(w, http.StatusOK, dayPlan())
	default:
		writeJSON(w, http.StatusOK, weekPlan(r.URL.Query().Get("diet")))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func jitter(base float64, pct float64) float64 {
	return math.Round((base+base*pct*(rand.Float64()*2-1))*100) / 100
}

// ── Recipes ──

type recipe struct {
	id       int
	title    string
	ready    int
	servings int
}

var breakfasts = []recipe{
	{1100, "Blueberry Overnight Oats", 10, 2},
	{1101, "Spinach and Feta Omelette", 15, 1},
	{1102, "Whole Grain Pancakes", 20, 4},
	{1103, "Greek Yogurt Parfait", 5, 1},
	{1104, "Avocado Toast with Poached Egg", 12, 2},
	{1105, "Banana Walnut Smoothie Bowl", 8, 2},
	{1106, "Mushroom Breakfast Burrito", 18, 2},
}

var lunches = []recipe{
	{2200, "Red Lentil Soup", 45, 4},
	{2201, "Quinoa Chickpea Salad", 25, 3},
	{2202, "Grilled Halloumi Wrap", 15, 2},
	{2203, "Tomato Basil Pasta", 30, 4},
	{2204, "Miso Noodle Bowl", 20, 2},
	{2205, "Black Bean Burrito Bowl", 25, 4},
	{2206, "Roasted Vegetable Panini", 18, 2},
}

var dinners = []recipe{
	{3300, "Vegetable Stir Fry with Tofu", 30, 4},
	{3301, "Eggplant Parmesan", 55, 6},
	{3302, "Thai Green Curry", 40, 4},
	{3303, "Stuffed Bell Peppers", 50, 4},
	{3304, "Mushroom Risotto", 45, 4},
	{3305, "Chickpea Tikka Masala", 35, 4},
	{3306, "Butternut Squash Lasagna", 65, 8},
}

func mealEntry(rec recipe, day int) map[string]any {
	m := map[string]any{
		"id":             rec.id,
		"title":          rec.title,
		"readyInMinutes": rec.ready,
		"servings":       rec.servings,
		"sourceUrl":      fmt.Sprintf("https://spoonacular.com/recipes/-%d", rec.id),
		"imageType":      "jpg",
	}
	if day > 0 {
		m["day"] = day
	}
	return m
}

func nutrients() map[string]any {
	return map[string]any{
		"calories":      jitter(1985.0, 0.05),
		"protein":       jitter(82.0, 0.08),
		"fat":           jitter(68.0, 0.08),
		"carbohydrates": jitter(245.0, 0.06),
	}
}

// ── Plans ──

func dayPlan() any {
	return map[string]any{
		"meals": []map[string]any{
			mealEntry(breakfasts[0], 0),
			mealEntry(lunches[0], 0),
			mealEntry(dinners[0], 0),
		},
		"nutrients": nutrients(),
	}
}

func weekPlan(diet string) any {
	var meals []map[string]any
	for day := 1; day <= 7; day++ {
		meals = append(meals,
			mealEntry(breakfasts[day-1], day),
			mealEntry(lunches[day-1], day),
			mealEntry(dinners[day-1], day),
		)
	}

	plan := map[string]any{
		"meals":     meals,
		"nutrients": nutrients(),
		"items": []map[string]any{
			{"name": "Rolled Oats", "aisle": "Cereal"},
			{"name": "Red Lentils", "aisle": "Pasta and Rice"},
			{"name": "Extra Firm Tofu", "aisle": "Refrigerated"},
			{"name": "Baby Spinach", "aisle": "Produce"},
			{"name": "Coconut Milk", "aisle": "Ethnic Foods"},
			{"name": "Arborio Rice", "aisle": "Pasta and Rice"},
			{"name": "Soy Sauce"},
		},
	}
	if diet != "" {
		plan["diet"] = diet
	}
	return plan
}
