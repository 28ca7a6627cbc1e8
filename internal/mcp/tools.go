package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/platewise/platewise/internal/metrics"
	"github.com/platewise/platewise/internal/planner"
)

const toolGenerateMealPlan = "generate_meal_plan"

func generateMealPlanTool() mcp.Tool {
	return mcp.NewTool(toolGenerateMealPlan,
		mcp.WithDescription("Generate a meal plan for a day or a week via the Spoonacular API. "+
			"Returns a JSON envelope with the raw plan (mealPlan), a formatted text report "+
			"(formattedText), and the echoed preferences."),
		mcp.WithString("time_frame",
			mcp.Description("Plan horizon, either 'day' or 'week'."),
			mcp.Enum("day", "week"),
			mcp.DefaultString("week"),
		),
		mcp.WithNumber("target_calories",
			mcp.Description("Daily calorie target."),
		),
		mcp.WithString("diet",
			mcp.Description("Diet the meals must conform to, e.g. 'vegetarian' or 'gluten free'."),
		),
		mcp.WithString("exclude",
			mcp.Description("Comma-separated ingredients or allergens to exclude, e.g. 'shellfish, olives'."),
		),
		mcp.WithNumber("family_size",
			mcp.Description("Number of people to plan for. Shown in the report header, never sent upstream."),
		),
		mcp.WithString("event_date",
			mcp.Description("ISO 8601 date for the report header, e.g. '2026-03-14'."),
		),
	)
}

// handleGenerateMealPlan executes the tool. Failures come back as error
// results so the protocol exchange itself stays successful.
func (s *Server) handleGenerateMealPlan(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	req := planner.Request{TimeFrame: request.GetString("time_frame", "week")}
	req.Preferences.TargetCalories = intArg(args, "target_calories")
	req.Preferences.Diet = stringArg(args, "diet")
	req.Preferences.Exclude = stringArg(args, "exclude")
	req.Preferences.FamilySize = intArg(args, "family_size")
	req.Preferences.EventDate = stringArg(args, "event_date")

	s.logger.Info("calling tool", "tool", toolGenerateMealPlan, "time_frame", req.TimeFrame)

	env, err := s.planner.Generate(ctx, req)
	if err != nil {
		metrics.ToolCalls.WithLabelValues(toolGenerateMealPlan, "error").Inc()
		s.logger.Error("tool failed", "tool", toolGenerateMealPlan, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := json.Marshal(env)
	if err != nil {
		metrics.ToolCalls.WithLabelValues(toolGenerateMealPlan, "error").Inc()
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}

	metrics.ToolCalls.WithLabelValues(toolGenerateMealPlan, "ok").Inc()
	return mcp.NewToolResultText(string(data)), nil
}

// stringArg extracts an optional string argument. Absent arguments return
// nil; an explicit empty string is kept so the envelope can echo it.
func stringArg(args map[string]any, key string) *string {
	v, ok := args[key]
	if !ok || v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

// intArg extracts an optional numeric argument. JSON numbers arrive as
// float64 over the wire.
func intArg(args map[string]any, key string) *int {
	v, ok := args[key]
	if !ok || v == nil {
		return nil
	}
	switch n := v.(type) {
	case float64:
		i := int(n)
		return &i
	case int:
		return &n
	case json.Number:
		if parsed, err := n.Int64(); err == nil {
			i := int(parsed)
			return &i
		}
	}
	return nil
}
