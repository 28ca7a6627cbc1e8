// Package cli implements the one-shot command line surface: parse flags,
// generate one plan, print the result envelope to stdout as JSON.
package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/platewise/platewise/internal/planner"
)

// generator is the planner capability the CLI needs.
type generator interface {
	Generate(ctx context.Context, req planner.Request) (*planner.Envelope, error)
}

// Run executes one generation. args are the raw command line arguments
// without the program name. The envelope is written to stdout as a single
// JSON line; everything else belongs on stderr.
func Run(ctx context.Context, svc generator, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("platewise", flag.ContinueOnError)
	timeFrame := fs.String("time-frame", "week", "Plan horizon: day or week")
	targetCalories := fs.Int("target-calories", 0, "Daily calorie target")
	diet := fs.String("diet", "", "Diet the meals must conform to, e.g. vegetarian")
	exclude := fs.String("exclude", "", "Comma-separated ingredients or allergens to exclude")
	familySize := fs.Int("family-size", 0, "Number of people to plan for")
	eventDate := fs.String("event-date", "", "ISO 8601 date for the report header")

	if err := fs.Parse(args); err != nil {
		return err
	}

	req := planner.Request{TimeFrame: *timeFrame}

	// Only flags that were actually passed become preferences. An untouched
	// flag stays null in the envelope while an explicit zero survives.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "target-calories":
			req.Preferences.TargetCalories = targetCalories
		case "diet":
			req.Preferences.Diet = diet
		case "exclude":
			req.Preferences.Exclude = exclude
		case "family-size":
			req.Preferences.FamilySize = familySize
		case "event-date":
			req.Preferences.EventDate = eventDate
		}
	})

	env, err := svc.Generate(ctx, req)
	if err != nil {
		return err
	}

	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	fmt.Fprintln(stdout, string(data))
	return nil
}
