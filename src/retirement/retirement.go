// Package retirement projects savings to retirement age and suggests reading
// material for each stage of life.
package retirement

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const RetirementAge = 65

var growthRates = map[string]decimal.Decimal{
	"low":    decimal.RequireFromString("0.04"),
	"medium": decimal.RequireFromString("0.06"),
	"high":   decimal.RequireFromString("0.08"),
}

// ValidRiskLevel accepts low, medium and high in any case.
func ValidRiskLevel(level string) bool {
	_, ok := growthRates[strings.ToLower(level)]
	return ok
}

// ProjectSavings compounds savings yearly at the risk level's rate until age 65,
// rounded to cents. Savings of someone already 65 or older are returned as is.
func ProjectSavings(age int, savings decimal.Decimal, riskLevel string) (decimal.Decimal, error) {
	rate, ok := growthRates[strings.ToLower(riskLevel)]
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown risk level %q", riskLevel)
	}
	years := RetirementAge - age
	if years < 0 {
		years = 0
	}
	growth := decimal.NewFromInt(1).Add(rate).Pow(decimal.NewFromInt(int64(years)))
	return savings.Mul(growth).Round(2), nil
}

type Article struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

var (
	earlyArticles = []Article{
		{"Start Early: The Power of Compounding", "https://www.investopedia.com/terms/c/compounding.asp"},
		{"401(k) Basics for New Earners", "https://www.irs.gov/retirement-plans/plan-participant-employee/retirement-topics-401k-and-profit-sharing-plan-contribution-limits"},
		{"Beginner’s Guide to Roth vs Traditional", "https://www.investopedia.com/roth-ira-vs-traditional-ira-differences-and-how-to-choose-7485838"},
	}
	midArticles = []Article{
		{"Max Out Contributions in Your 40s–50s", "https://www.dol.gov/general/topic/retirement/planparticipant"},
		{"Building a Pre-Retirement Asset Mix", "https://www.bogleheads.org/wiki/Asset_allocation"},
		{"Catch-up Contributions: What to Know", "https://www.irs.gov/retirement-plans/plan-participant-employee/retirement-topics-catch-up-contributions"},
	}
	lateArticles = []Article{
		{"Social Security: When to Claim", "https://www.ssa.gov/benefits/retirement/learn/age.html"},
		{"Safe Withdrawal Strategies", "https://www.investopedia.com/terms/f/foursafewithdrawalrate.asp"},
		{"Required Minimum Distributions (RMDs)", "https://www.irs.gov/retirement-plans/retirement-plan-and-ira-required-minimum-distributions-faqs"},
	}
)

// ArticlesForAge picks the reading list for under 40, 40 to 59, and 60 plus.
func ArticlesForAge(age int) []Article {
	var list []Article
	switch {
	case age < 40:
		list = earlyArticles
	case age < 60:
		list = midArticles
	default:
		list = lateArticles
	}
	return append([]Article(nil), list...)
}
