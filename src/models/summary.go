package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type SummaryRow struct {
	Type             string          `json:"type"`
	CategoryName     string          `json:"category_name"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	TransactionCount int64           `json:"transaction_count"`
}

type SummaryTotals struct {
	Income           decimal.Decimal `json:"income"`
	Expense          decimal.Decimal `json:"expense"`
	Net              decimal.Decimal `json:"net"`
	TransactionCount int64           `json:"transaction_count"`
}

type MonthlySummary struct {
	Year    int           `json:"year"`
	Month   int           `json:"month"`
	Summary []SummaryRow  `json:"summary"`
	Totals  SummaryTotals `json:"totals"`
}

func NewMonthlySummary(year, month int, rows []SummaryRow) MonthlySummary {
	if rows == nil {
		rows = []SummaryRow{}
	}
	return MonthlySummary{
		Year:    year,
		Month:   month,
		Summary: rows,
		Totals:  Totals(rows),
	}
}

func Totals(rows []SummaryRow) SummaryTotals {
	totals := SummaryTotals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, row := range rows {
		switch row.Type {
		case CategoryIncome:
			totals.Income = totals.Income.Add(row.TotalAmount)
		case CategoryExpense:
			totals.Expense = totals.Expense.Add(row.TotalAmount)
		}
		totals.TransactionCount += row.TransactionCount
	}
	totals.Net = totals.Income.Sub(totals.Expense)
	return totals
}

// RowsOfType keeps the rows of one category type, preserving order.
func RowsOfType(rows []SummaryRow, categoryType string) []SummaryRow {
	var out []SummaryRow
	for _, row := range rows {
		if row.Type == categoryType {
			out = append(out, row)
		}
	}
	return out
}

// MonthRange returns the first day of the month and the first day of the next
// month as YYYY-MM-DD, for a half-open [start, end) date filter.
func MonthRange(year, month int) (string, string, error) {
	if year < 1 || year > 9999 {
		return "", "", fmt.Errorf("year %d out of range", year)
	}
	if month < 1 || month > 12 {
		return "", "", fmt.Errorf("month %d out of range", month)
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	return start.Format(time.DateOnly), end.Format(time.DateOnly), nil
}
