package insights

import (
	"fmt"
	"strings"

	"spendsight/internal/analytics"
	"spendsight/internal/core"
)

// Opportunity is one identified chance to save money.
type Opportunity struct {
	Type             string  `json:"type"`
	Message          string  `json:"message"`
	Category         string  `json:"category,omitempty"`
	FoodSpending     float64 `json:"food_spending,omitempty"`
	GrocerySpending  float64 `json:"grocery_spending,omitempty"`
	PotentialSavings float64 `json:"potential_savings"`
}

// SavingsOpportunities applies the three savings heuristics:
// subscription audits, frequent small purchases and dining out versus
// cooking. Category names are matched case-insensitively.
func SavingsOpportunities(s Snapshot) []Opportunity {
	opportunities := []Opportunity{}

	if sub, ok := findCategory(s.CategoryBreakdown, "SUBSCRIPTIONS"); ok && sub.Count > 3 {
		opportunities = append(opportunities, Opportunity{
			Type:             "subscription_audit",
			Message:          fmt.Sprintf("You have %d subscription charges. Review if you're using all of them.", sub.Count),
			PotentialSavings: core.Round2(sub.Total * 0.3),
		})
	}

	for _, name := range sortedCategories(s.CategoryBreakdown) {
		stat := s.CategoryBreakdown[name]
		if stat.Count > 10 && stat.Average < 20 {
			opportunities = append(opportunities, Opportunity{
				Type:             "small_purchases",
				Category:         name,
				Message:          fmt.Sprintf("You made %d small purchases in %s. These add up to $%.2f.", stat.Count, name, stat.Total),
				PotentialSavings: core.Round2(stat.Total * 0.2),
			})
		}
	}

	food, _ := findCategory(s.CategoryBreakdown, "FOOD")
	groceries, _ := findCategory(s.CategoryBreakdown, "GROCERIES")
	if food.Total > groceries.Total*1.5 {
		opportunities = append(opportunities, Opportunity{
			Type:             "dining_vs_cooking",
			Message:          "You're spending significantly more on dining out than groceries. Cooking more could save money.",
			FoodSpending:     food.Total,
			GrocerySpending:  groceries.Total,
			PotentialSavings: core.Round2((food.Total - groceries.Total) * 0.4),
		})
	}

	return opportunities
}

// findCategory looks a category up by name, ignoring case.
func findCategory(breakdown map[string]analytics.CategoryStat, name string) (analytics.CategoryStat, bool) {
	if stat, ok := breakdown[name]; ok {
		return stat, true
	}
	for cat, stat := range breakdown {
		if strings.EqualFold(cat, name) {
			return stat, true
		}
	}
	return analytics.CategoryStat{}, false
}
