package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSavingsGoalProgress(t *testing.T) {
	tests := []struct {
		name    string
		current string
		target  string
		want    string
	}{
		{"nothing saved", "0", "1000", "0"},
		{"partial", "250", "1000", "25"},
		{"rounds to cents", "1", "3", "33.33"},
		{"exactly reached", "1000", "1000", "100"},
		{"overshoot is capped", "1500", "1000", "100"},
		{"zero target", "50", "0", "0"},
		{"negative balance", "-10", "100", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := SavingsGoal{CurrentAmount: d(tt.current), TargetAmount: d(tt.target)}
			assert.True(t, d(tt.want).Equal(g.Progress()), "got %s", g.Progress())
		})
	}
}

func TestWithProgressFillsField(t *testing.T) {
	g := SavingsGoal{CurrentAmount: d("40"), TargetAmount: d("80")}.WithProgress()
	assert.True(t, d("50").Equal(g.ProgressPercentage))
}

func TestTotals(t *testing.T) {
	rows := []SummaryRow{
		{Type: CategoryIncome, CategoryName: "Salary", TotalAmount: d("3000"), TransactionCount: 2},
		{Type: CategoryExpense, CategoryName: "Housing", TotalAmount: d("1200.50"), TransactionCount: 1},
		{Type: CategoryExpense, CategoryName: "Food & Dining", TotalAmount: d("300.25"), TransactionCount: 6},
	}

	totals := Totals(rows)

	assert.True(t, d("3000").Equal(totals.Income))
	assert.True(t, d("1500.75").Equal(totals.Expense))
	assert.True(t, d("1499.25").Equal(totals.Net))
	assert.Equal(t, int64(9), totals.TransactionCount)
}

func TestNewMonthlySummaryEmpty(t *testing.T) {
	s := NewMonthlySummary(2024, 2, nil)

	require.NotNil(t, s.Summary)
	assert.Empty(t, s.Summary)
	assert.True(t, s.Totals.Net.IsZero())

	body, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"summary":[]`)
	assert.Contains(t, string(body), `"net":0`)
}

func TestRowsOfType(t *testing.T) {
	rows := []SummaryRow{
		{Type: CategoryIncome, CategoryName: "Salary"},
		{Type: CategoryExpense, CategoryName: "Housing"},
		{Type: CategoryExpense, CategoryName: "Shopping"},
	}
	got := RowsOfType(rows, CategoryExpense)
	require.Len(t, got, 2)
	assert.Equal(t, "Housing", got[0].CategoryName)
	assert.Equal(t, "Shopping", got[1].CategoryName)
}

func TestMonthRange(t *testing.T) {
	start, end, err := MonthRange(2024, 12)
	require.NoError(t, err)
	assert.Equal(t, "2024-12-01", start)
	assert.Equal(t, "2025-01-01", end)

	start, end, err = MonthRange(2024, 2)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", start)
	assert.Equal(t, "2024-03-01", end)

	_, _, err = MonthRange(2024, 13)
	assert.Error(t, err)
	_, _, err = MonthRange(0, 1)
	assert.Error(t, err)
}

func TestNewProgressOverview(t *testing.T) {
	eighty, hundredScore := 80, 100
	overview := NewProgressOverview([]UserProgress{
		{LessonID: 1, Completed: true, Score: &eighty},
		{LessonID: 2, Completed: true, Score: &hundredScore},
		{LessonID: 3, Completed: false},
	}, 6)

	assert.Equal(t, 2, overview.CompletedLessons)
	assert.Equal(t, 6, overview.TotalLessons)
	require.NotNil(t, overview.AverageScore)
	assert.InDelta(t, 90.0, *overview.AverageScore, 0.001)

	empty := NewProgressOverview(nil, 6)
	assert.NotNil(t, empty.Progress)
	assert.Nil(t, empty.AverageScore)
}

func TestDecimalMarshalsAsNumber(t *testing.T) {
	body, err := json.Marshal(Budget{MonthlyIncome: d("4200.50")})
	require.NoError(t, err)
	assert.Contains(t, string(body), `"monthly_income":4200.5`)
}

func TestCategoryAndDifficultyValidation(t *testing.T) {
	assert.True(t, ValidCategoryType("income"))
	assert.True(t, ValidCategoryType("expense"))
	assert.False(t, ValidCategoryType("transfer"))
	assert.True(t, ValidDifficulty("advanced"))
	assert.False(t, ValidDifficulty("expert"))
}
