package advisor

// Meal slots, in serving order.
const (
	SlotBreakfast = "Breakfast"
	SlotLunch     = "Lunch"
	SlotDinner    = "Dinner"
)

// Meal is one entry of a MealPlan.
type Meal struct {
	Slot        string `json:"slot"`
	Description string `json:"description"`
}

// MealPlan is a static dietary goal with breakfast, lunch and dinner.
type MealPlan struct {
	Goal  string  `json:"goal"`
	Meals [3]Meal `json:"meals"`
}

var (
	gainPlan = MealPlan{
		Goal: "Weight Gain (Calorie Dense)",
		Meals: [3]Meal{
			{SlotBreakfast, "High-calorie smoothie with nuts/oats."},
			{SlotLunch, "Pasta with chicken/fish."},
			{SlotDinner, "Red meat or lentil stew."},
		},
	}
	lossPlan = MealPlan{
		Goal: "Weight Loss (Calorie Deficit)",
		Meals: [3]Meal{
			{SlotBreakfast, "Egg whites and vegetables."},
			{SlotLunch, "Large leafy green salad with lean protein."},
			{SlotDinner, "Baked fish and steamed broccoli."},
		},
	}
	maintenancePlan = MealPlan{
		Goal: "Maintenance (Balanced Diet)",
		Meals: [3]Meal{
			{SlotBreakfast, "Oatmeal and fruit."},
			{SlotLunch, "Whole-grain sandwich and side salad."},
			{SlotDinner, "Lean protein stir-fry with brown rice."},
		},
	}
)

// SuggestMeals returns the meal plan for a category. Overweight and Obesity
// share the weight-loss plan; everything else that is not Underweight gets
// the maintenance plan. The result is a copy.
func SuggestMeals(c Category) MealPlan {
	switch {
	case c == Underweight:
		return gainPlan
	case c.heavy():
		return lossPlan
	default:
		return maintenancePlan
	}
}
