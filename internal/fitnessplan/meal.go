package fitnessplan

// CaloricPhase is the energy balance targeted during a meal period.
type CaloricPhase string

const (
	CaloricPhaseDeficit     CaloricPhase = "deficit"
	CaloricPhaseMaintenance CaloricPhase = "maintenance"
	CaloricPhaseSurplus     CaloricPhase = "surplus"
)

func (c CaloricPhase) Valid() bool {
	switch c {
	case CaloricPhaseDeficit, CaloricPhaseMaintenance, CaloricPhaseSurplus:
		return true
	default:
		return false
	}
}

type FoodOption struct {
	Name string `json:"name"`
}

type MealOption struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Ingredients []FoodOption `json:"ingredients"`
}

// MealSlot is a meal of the day, breakfast for example, with interchangeable options.
type MealSlot struct {
	Name        string       `json:"name"`
	OrderNumber int          `json:"order_number"`
	Options     []MealOption `json:"options"`
}

type MealDayTemplate struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Slots       []MealSlot `json:"slots"`
}

// MealPeriod mirrors a training period on the nutrition side.
type MealPeriod struct {
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	StartDate    *Date        `json:"start_date,omitempty"`
	CaloricPhase CaloricPhase `json:"caloric_phase"`
	// Intensity of the caloric phase from 0 to 100.
	Intensity      float64           `json:"intensity"`
	DailyTemplates []MealDayTemplate `json:"daily_templates"`
}

type MealPlan struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	MealPeriods []MealPeriod `json:"meal_periods"`
}
