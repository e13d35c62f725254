package models

import "github.com/shopspring/decimal"

func init() {
	// Amounts travel to the UI as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}
