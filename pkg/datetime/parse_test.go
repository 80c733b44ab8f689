package datetime

import (
	"testing"
)

func TestMustParseTime(t *testing.T) {
	tests := []struct {
		name     string
		layout   string
		dateStr  string
		expected string
	}{
		{
			name:     "Valid date",
			layout:   DateTimeLayout,
			dateStr:  "2025-01",
			expected: "2025-01",
		},
		{
			name:     "Another valid date",
			layout:   DateTimeLayout,
			dateStr:  "2030-12",
			expected: "2030-12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MustParseTime(tt.layout, tt.dateStr)
			if result.Format(tt.layout) != tt.expected {
				t.Errorf("MustParseTime() = %s, expected %s", result.Format(tt.layout), tt.expected)
			}
		})
	}
}

func TestMustParseTimePanic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected MustParseTime to panic with invalid date")
		}
	}()

	MustParseTime(DateTimeLayout, "invalid-date")
}

func TestParsePurchaseDate(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		wantMonth int
		wantYear  int
		wantErr   bool
	}{
		{"June", "2026-06", 6, 2026, false},
		{"December", "2019-12", 12, 2019, false},
		{"Invalid month", "2026-13", 0, 0, true},
		{"Wrong layout", "06/2026", 0, 0, true},
		{"Empty", "", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			month, year, err := ParsePurchaseDate(tt.date)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePurchaseDate(%q) error = %v, wantErr %v", tt.date, err, tt.wantErr)
			}
			if month != tt.wantMonth || year != tt.wantYear {
				t.Errorf("ParsePurchaseDate(%q) = (%d, %d), expected (%d, %d)",
					tt.date, month, year, tt.wantMonth, tt.wantYear)
			}
		})
	}
}

func TestCalendarYear(t *testing.T) {
	if got := CalendarYear(2022, 1); got != 2023 {
		t.Errorf("CalendarYear(2022, 1) = %d, expected 2023", got)
	}
	if got := CalendarYear(2022, 3); got != 2025 {
		t.Errorf("CalendarYear(2022, 3) = %d, expected 2025", got)
	}
	if got := CalendarYear(0, 3); got != 0 {
		t.Errorf("CalendarYear(0, 3) = %d, expected 0", got)
	}
}

func TestMonthYearLabel(t *testing.T) {
	tests := []struct {
		name     string
		month    int
		year     int
		analysis int
		expected string
	}{
		{"First year", 6, 2026, 1, "Jun/2027"},
		{"Tenth year", 1, 2020, 10, "Jan/2030"},
		{"December", 12, 2024, 2, "Dec/2026"},
		{"Missing month", 0, 2026, 1, ""},
		{"Month out of range", 13, 2026, 1, ""},
		{"Missing year", 6, 0, 1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MonthYearLabel(tt.month, tt.year, tt.analysis)
			if result != tt.expected {
				t.Errorf("MonthYearLabel() = %q, expected %q", result, tt.expected)
			}
		})
	}
}
