// ABOUTME: Tests for date range boundary calculations
// ABOUTME: Verifies period starts and the period name parser

package timeutil

import (
	"testing"
	"time"
)

func TestStartOfToday(t *testing.T) {
	start := StartOfToday()
	now := time.Now()

	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 {
		t.Errorf("expected midnight, got %v", start)
	}
	if start.Day() != now.Day() || start.Month() != now.Month() || start.Year() != now.Year() {
		t.Errorf("expected today's date, got %v", start)
	}
}

func TestStartOfYesterday(t *testing.T) {
	yesterday := StartOfYesterday()
	today := StartOfToday()

	if !yesterday.AddDate(0, 0, 1).Equal(today) {
		t.Errorf("yesterday + 1 day should equal today: %v vs %v", yesterday, today)
	}
}

func TestEndOfYesterdayIsStartOfToday(t *testing.T) {
	if !EndOfYesterday().Equal(StartOfToday()) {
		t.Error("end of yesterday should be the start of today")
	}
}

func TestStartOfWeekIsSunday(t *testing.T) {
	start := StartOfWeek()
	if start.Weekday() != time.Sunday {
		t.Errorf("expected Sunday, got %v", start.Weekday())
	}
	if start.After(time.Now()) {
		t.Errorf("start of week is in the future: %v", start)
	}
}

func TestStartOfMonth(t *testing.T) {
	start := StartOfMonth()
	if start.Day() != 1 {
		t.Errorf("expected day 1, got %d", start.Day())
	}
	if start.Hour() != 0 {
		t.Errorf("expected midnight, got %v", start)
	}
}

func TestParsePeriod(t *testing.T) {
	for _, period := range []string{"today", "yesterday", "week", "month"} {
		if _, ok := ParsePeriod(period); !ok {
			t.Errorf("ParsePeriod(%q) not recognized", period)
		}
	}

	if _, ok := ParsePeriod("fortnight"); ok {
		t.Error("unknown period should not be recognized")
	}
}
