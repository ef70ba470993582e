package insights

import (
	"fmt"
	"math"
	"strings"

	"spendsight/internal/core"
)

// Static 50/30/20 bucket membership, matched case-insensitively.
// Categories outside all three buckets are excluded from the allocation
// total entirely.
var (
	needsCategories   = bucketSet("RENT", "UTILITIES", "GROCERIES", "HEALTHCARE", "INSURANCE", "TRANSPORT")
	wantsCategories   = bucketSet("ENTERTAINMENT", "SHOPPING", "FOOD", "SUBSCRIPTIONS", "TRAVEL")
	savingsCategories = bucketSet("SAVINGS")
)

func bucketSet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// Allocation is a needs/wants/savings percentage split.
type Allocation struct {
	Needs   float64 `json:"needs"`
	Wants   float64 `json:"wants"`
	Savings float64 `json:"savings"`
}

// BucketTotals carries the absolute amounts behind an allocation.
type BucketTotals struct {
	Needs   float64 `json:"needs"`
	Wants   float64 `json:"wants"`
	Savings float64 `json:"savings"`
}

// Recommendation is one budget adjustment suggestion.
type Recommendation struct {
	Type              string  `json:"type"`
	Message           string  `json:"message"`
	Category          string  `json:"category,omitempty"`
	Current           float64 `json:"current,omitempty"`
	Target            float64 `json:"target,omitempty"`
	CurrentPercentage float64 `json:"current_percentage,omitempty"`
	SuggestedLimit    float64 `json:"suggested_limit,omitempty"`
}

// BudgetAnalysis is the 50/30/20 classification of current spending.
type BudgetAnalysis struct {
	CurrentAllocation Allocation       `json:"current_allocation"`
	IdealAllocation   Allocation       `json:"ideal_allocation"`
	Recommendations   []Recommendation `json:"recommendations"`
	CategoryTotals    BucketTotals     `json:"category_totals"`
}

// BudgetRecommendations classifies spending into the 50/30/20 buckets
// and flags deviations from the rule. The allocation divisor floors to 1
// when all three buckets are empty, keeping the shares a defined 0.
func BudgetRecommendations(s Snapshot) BudgetAnalysis {
	var needs, wants, savings float64
	for name, stat := range s.CategoryBreakdown {
		upper := strings.ToUpper(name)
		switch {
		case needsCategories[upper]:
			needs += stat.Total
		case wantsCategories[upper]:
			wants += stat.Total
		case savingsCategories[upper]:
			savings += stat.Total
		}
	}

	total := needs + wants + savings
	if total == 0 {
		total = 1
	}

	current := Allocation{
		Needs:   round1(needs / total * 100),
		Wants:   round1(wants / total * 100),
		Savings: round1(savings / total * 100),
	}

	recommendations := []Recommendation{}
	if current.Needs > 55 {
		recommendations = append(recommendations, Recommendation{
			Type:    "reduce_needs",
			Message: "Your essential spending is above 50%. Consider ways to reduce fixed costs.",
			Current: current.Needs,
			Target:  50,
		})
	}
	if current.Wants > 35 {
		recommendations = append(recommendations, Recommendation{
			Type:    "reduce_wants",
			Message: "Your discretionary spending is above 30%. Try cutting back on non-essentials.",
			Current: current.Wants,
			Target:  30,
		})
	}
	if current.Savings < 15 {
		recommendations = append(recommendations, Recommendation{
			Type:    "increase_savings",
			Message: "Your savings rate is below 20%. Consider automating savings deposits.",
			Current: current.Savings,
			Target:  20,
		})
	}

	for _, name := range sortedCategories(s.CategoryBreakdown) {
		stat := s.CategoryBreakdown[name]
		if stat.Percentage <= 30 {
			continue
		}
		recommendations = append(recommendations, Recommendation{
			Type:              "category_warning",
			Category:          name,
			Message:           fmt.Sprintf("%s is taking over 30%% of your budget. Set a spending limit.", name),
			CurrentPercentage: stat.Percentage,
			SuggestedLimit:    core.Round2(stat.Total * 0.8),
		})
	}

	return BudgetAnalysis{
		CurrentAllocation: current,
		IdealAllocation:   Allocation{Needs: 50, Wants: 30, Savings: 20},
		Recommendations:   recommendations,
		CategoryTotals: BucketTotals{
			Needs:   core.Round2(needs),
			Wants:   core.Round2(wants),
			Savings: core.Round2(savings),
		},
	}
}

// round1 rounds to one decimal place, the precision allocations are
// reported at.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
