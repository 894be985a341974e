package util

import (
	"testing"
	"time"
)

func TestDateOnly(t *testing.T) {
	input := time.Date(2026, 8, 28, 15, 42, 13, 999, time.UTC)
	got := DateOnly(input)

	want := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestDateOnly_Idempotent(t *testing.T) {
	date := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	if !DateOnly(date).Equal(date) {
		t.Error("Expected DateOnly of a midnight date to be unchanged")
	}
}

func TestMonthStart(t *testing.T) {
	input := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	got := MonthStart(input)

	want := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestMonthStart_FirstOfMonth(t *testing.T) {
	input := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	if !MonthStart(input).Equal(input) {
		t.Error("Expected month start of the first to be itself")
	}
}

func TestSameDate(t *testing.T) {
	morning := time.Date(2026, 8, 28, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 8, 28, 22, 30, 0, 0, time.UTC)
	nextDay := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	if !SameDate(morning, evening) {
		t.Error("Expected same-day times to match")
	}
	if SameDate(evening, nextDay) {
		t.Error("Expected different days not to match")
	}
}

func TestToday(t *testing.T) {
	today := Today()
	if today.Hour() != 0 || today.Minute() != 0 || today.Second() != 0 {
		t.Errorf("Expected today at midnight, got %v", today)
	}
	if today.Location() != time.UTC {
		t.Errorf("Expected UTC, got %v", today.Location())
	}
}
