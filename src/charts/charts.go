package charts

import (
	"bytes"
	"fmt"

	"github.com/s155003/Budgetly/src/models"
	"github.com/wcharczuk/go-chart/v2"
)

// CategoryPie renders the category totals of one type as a PNG pie chart.
// It returns nil when there is nothing to draw.
func CategoryPie(rows []models.SummaryRow, categoryType string) ([]byte, error) {
	rows = models.RowsOfType(rows, categoryType)

	total := 0.0
	for _, row := range rows {
		if amount := row.TotalAmount.InexactFloat64(); amount > 0 {
			total += amount
		}
	}
	if total == 0 {
		return nil, nil
	}

	values := make([]chart.Value, 0, len(rows))
	for _, row := range rows {
		amount := row.TotalAmount.InexactFloat64()
		if amount <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: $%.2f (%.1f%%)", row.CategoryName, amount, amount/total*100),
			Value: amount,
		})
	}

	pie := chart.PieChart{
		Width:  800,
		Height: 600,
		Values: values,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   40,
				Right:  40,
				Bottom: 40,
			},
			FillColor: chart.ColorWhite,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render %s chart: %w", categoryType, err)
	}
	return buffer.Bytes(), nil
}
