// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/rental-forecast/internal/investment"
	"github.com/iwvelando/rental-forecast/internal/sensitivity"
	"github.com/iwvelando/rental-forecast/pkg/mathutil"
)

// FindYear finds the snapshot for analysis year in years.
// Returns a pointer to the snapshot if found, nil otherwise.
func FindYear(years []investment.YearlySnapshot, year int) *investment.YearlySnapshot {
	for i := range years {
		if years[i].Year == year {
			return &years[i]
		}
	}
	return nil
}

// FindRentRow finds the rent sensitivity row for a percentage change.
func FindRentRow(rows []sensitivity.RentRow, changePercent float64) *sensitivity.RentRow {
	for i := range rows {
		if mathutil.WithinTolerance(rows[i].ChangePercent, changePercent, 1e-9) {
			return &rows[i]
		}
	}
	return nil
}

// FindAppreciationRow finds the appreciation sensitivity row for a rate.
func FindAppreciationRow(rows []sensitivity.AppreciationRow, rate float64) *sensitivity.AppreciationRow {
	for i := range rows {
		if mathutil.WithinTolerance(rows[i].AppreciationRate, rate, 1e-9) {
			return &rows[i]
		}
	}
	return nil
}
