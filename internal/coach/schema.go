package coach

import (
	"github.com/openai/openai-go/v3"
	"github.com/sdeery14/fitness-app-sub000/internal/fitnessplan"
)

func intensityEnum() []string {
	levels := fitnessplan.IntensityLevels()
	out := make([]string, 0, len(levels))
	for _, l := range levels {
		out = append(out, string(l))
	}
	return out
}

func object(properties map[string]any, required ...string) map[string]any {
	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
	}
}

func array(items map[string]any) map[string]any {
	return map[string]any{"type": "array", "items": items}
}

func str(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func date(description string) map[string]any {
	return map[string]any{"type": "string", "format": "date", "description": description}
}

// fitnessPlanSchema is the JSON schema of fitnessplan.FitnessPlan as accepted by fitnessplan.Decode.
func fitnessPlanSchema() openai.FunctionParameters {
	intensity := map[string]any{"type": "string", "enum": intensityEnum()}

	exercise := object(map[string]any{
		"name":        str("Exercise name."),
		"description": str("Coaching cues."),
		"duration":    map[string]any{"type": "integer", "description": "Duration in seconds."},
		"distance":    map[string]any{"type": "number", "description": "Distance in meters."},
		"sets":        map[string]any{"type": "integer"},
		"reps":        map[string]any{"type": "integer"},
		"intensity":   intensity,
	}, "name", "description")

	day := object(map[string]any{
		"name":         str("Day name, e.g. Push or Rest."),
		"order_number": map[string]any{"type": "integer", "description": "1-based position in the split."},
		"description":  str(""),
		"exercises":    array(exercise),
		"intensity":    intensity,
	}, "name", "order_number", "description", "exercises", "intensity")

	period := object(map[string]any{
		"name":        str("Period name, e.g. Base."),
		"description": str(""),
		"start_date":  date("Optional. Defaults to the day after the previous period."),
		"intensity":   intensity,
		"training_split": object(map[string]any{
			"name":          str(""),
			"description":   str(""),
			"training_days": array(day),
		}, "name", "description", "training_days"),
	}, "name", "description", "intensity", "training_split")

	mealPeriod := object(map[string]any{
		"name":          str(""),
		"description":   str(""),
		"start_date":    date("Optional."),
		"caloric_phase": map[string]any{"type": "string", "enum": []string{"deficit", "maintenance", "surplus"}},
		"intensity":     map[string]any{"type": "number", "minimum": 0, "maximum": 100},
		"daily_templates": array(object(map[string]any{
			"name":        str(""),
			"description": str(""),
			"slots": array(object(map[string]any{
				"name":         str("Meal, e.g. Breakfast."),
				"order_number": map[string]any{"type": "integer"},
				"options": array(object(map[string]any{
					"name":        str(""),
					"description": str(""),
					"ingredients": array(object(map[string]any{"name": str("")}, "name")),
				}, "name", "description", "ingredients")),
			}, "name", "order_number", "options")),
		}, "name", "description", "slots")),
	}, "name", "description", "caloric_phase", "intensity", "daily_templates")

	return object(map[string]any{
		"name":        str("Plan name."),
		"goal":        str("What the user wants to achieve."),
		"description": str(""),
		"start_date":  date("First day of the plan. Defaults to today."),
		"target_date": date("Last day of the plan."),
		"training_plan": object(map[string]any{
			"name":             str(""),
			"description":      str(""),
			"training_periods": array(period),
		}, "name", "description", "training_periods"),
		"meal_plan": object(map[string]any{
			"name":         str(""),
			"description":  str(""),
			"meal_periods": array(mealPeriod),
		}, "name", "description", "meal_periods"),
		"meal_guidance": str("Free text nutrition advice when no meal plan is given."),
	}, "name", "goal", "description", "training_plan")
}
