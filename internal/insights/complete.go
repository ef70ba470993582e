package insights

import (
	"spendsight/internal/analytics"
)

// Document is the complete insights package returned by the boundary.
type Document struct {
	Success              bool           `json:"success"`
	Insights             []Insight      `json:"insights"`
	BudgetAnalysis       BudgetAnalysis `json:"budget_analysis"`
	SavingsOpportunities []Opportunity  `json:"savings_opportunities"`
}

// Complete derives the full insights document from an analysis result.
// A failed upstream analysis short-circuits into a failure rather than
// producing insights over empty aggregates.
func Complete(analysis analytics.Analysis) (Document, bool) {
	if !analysis.Success {
		return Document{}, false
	}

	snapshot := Snapshot{
		CategoryBreakdown: analysis.CategoryBreakdown,
		MonthlySpending:   analysis.MonthlySpending,
		TotalSpending:     analysis.Summary.TotalSpending,
	}

	return Document{
		Success:              true,
		Insights:             SpendingInsights(snapshot),
		BudgetAnalysis:       BudgetRecommendations(snapshot),
		SavingsOpportunities: SavingsOpportunities(snapshot),
	}, true
}
