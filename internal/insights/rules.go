// Package insights turns already-computed aggregates into natural
// language insights, budget recommendations and savings opportunities.
// It never touches raw transactions: everything here is a pure rule
// layer over the analytics package's summary shapes.
package insights

import (
	"fmt"
	"sort"

	"spendsight/internal/analytics"
	"spendsight/internal/core"
)

// Severity levels attached to insights.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityPositive = "positive"
)

// Snapshot is the aggregate view the rule set evaluates against.
type Snapshot struct {
	CategoryBreakdown map[string]analytics.CategoryStat
	MonthlySpending   map[string]float64
	TotalSpending     float64
}

// Insight is one generated observation. Optional fields are populated
// per insight type.
type Insight struct {
	Type              string  `json:"type"`
	Severity          string  `json:"severity"`
	Message           string  `json:"message"`
	Category          string  `json:"category,omitempty"`
	Amount            float64 `json:"amount,omitempty"`
	Percentage        float64 `json:"percentage,omitempty"`
	Recommendation    string  `json:"recommendation,omitempty"`
	CurrentMonth      float64 `json:"current_month,omitempty"`
	PreviousMonth     float64 `json:"previous_month,omitempty"`
	ChangePercentage  float64 `json:"change_percentage,omitempty"`
	AverageAmount     float64 `json:"average_amount,omitempty"`
	TotalTransactions int     `json:"total_transactions,omitempty"`
}

// Rule is one independent insight predicate: it inspects the snapshot
// and returns at most one insight. Rules never see each other's output.
type Rule struct {
	Name     string
	Evaluate func(Snapshot) *Insight
}

// spendingRules is the ordered rule table. Adding or removing a rule is
// a one-line change here.
var spendingRules = []Rule{
	{Name: "top_spending", Evaluate: topSpendingRule},
	{Name: "high_category_spending", Evaluate: highCategoryRule},
	{Name: "monthly_change", Evaluate: monthlyChangeRule},
	{Name: "average_spending", Evaluate: averageSpendingRule},
}

// SpendingInsights evaluates the rule table in order and collects every
// insight that fires.
func SpendingInsights(s Snapshot) []Insight {
	out := []Insight{}
	for _, rule := range spendingRules {
		if ins := rule.Evaluate(s); ins != nil {
			out = append(out, *ins)
		}
	}
	return out
}

// topCategory returns the category with the highest total, ties broken
// by name so output stays deterministic.
func topCategory(breakdown map[string]analytics.CategoryStat) (string, analytics.CategoryStat, bool) {
	var best string
	var bestStat analytics.CategoryStat
	found := false
	for _, name := range sortedCategories(breakdown) {
		stat := breakdown[name]
		if !found || stat.Total > bestStat.Total {
			best, bestStat, found = name, stat, true
		}
	}
	return best, bestStat, found
}

func sortedCategories(breakdown map[string]analytics.CategoryStat) []string {
	names := make([]string, 0, len(breakdown))
	for name := range breakdown {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func topSpendingRule(s Snapshot) *Insight {
	name, stat, ok := topCategory(s.CategoryBreakdown)
	if !ok {
		return nil
	}
	return &Insight{
		Type:       "top_spending",
		Severity:   SeverityInfo,
		Message:    fmt.Sprintf("You spent %.1f%% of your budget on %s", stat.Percentage, name),
		Category:   name,
		Amount:     stat.Total,
		Percentage: stat.Percentage,
	}
}

func highCategoryRule(s Snapshot) *Insight {
	name, stat, ok := topCategory(s.CategoryBreakdown)
	if !ok || stat.Percentage <= 40 {
		return nil
	}
	return &Insight{
		Type:           "high_category_spending",
		Severity:       SeverityWarning,
		Message:        fmt.Sprintf("Consider reducing %s spending - it's consuming over 40%% of your budget", name),
		Category:       name,
		Recommendation: fmt.Sprintf("Try to reduce %s spending by 10-15%%", name),
	}
}

// monthlyChangeRule compares the two most recent months and fires only
// when the swing exceeds 10% in either direction.
func monthlyChangeRule(s Snapshot) *Insight {
	if len(s.MonthlySpending) < 2 {
		return nil
	}
	months := analytics.SortedMonthKeys(s.MonthlySpending)
	current := s.MonthlySpending[months[len(months)-1]]
	previous := s.MonthlySpending[months[len(months)-2]]
	if previous <= 0 {
		return nil
	}
	change := (current - previous) / previous * 100

	switch {
	case change > 10:
		return &Insight{
			Type:             "spending_increase",
			Severity:         SeverityWarning,
			Message:          fmt.Sprintf("Your spending increased by %.1f%% compared to last month", change),
			CurrentMonth:     current,
			PreviousMonth:    previous,
			ChangePercentage: core.Round2(change),
		}
	case change < -10:
		return &Insight{
			Type:             "spending_decrease",
			Severity:         SeverityPositive,
			Message:          fmt.Sprintf("Great job! Your spending decreased by %.1f%% compared to last month", -change),
			CurrentMonth:     current,
			PreviousMonth:    previous,
			ChangePercentage: core.Round2(change),
		}
	}
	return nil
}

func averageSpendingRule(s Snapshot) *Insight {
	if s.TotalSpending <= 0 {
		return nil
	}
	var transactions int
	for _, stat := range s.CategoryBreakdown {
		transactions += stat.Count
	}
	if transactions == 0 {
		return nil
	}
	avg := s.TotalSpending / float64(transactions)
	return &Insight{
		Type:              "average_spending",
		Severity:          SeverityInfo,
		Message:           fmt.Sprintf("Your average transaction is $%.2f", avg),
		AverageAmount:     core.Round2(avg),
		TotalTransactions: transactions,
	}
}
