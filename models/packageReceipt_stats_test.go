package models

import (
	"testing"
	"time"
)

func TestBuildPackageStats(t *testing.T) {
	day1 := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 6, 3, 14, 30, 0, 0, time.UTC)
	nextMonth := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)

	receipts := []*PackageReceipt{
		{Quantity: 10, Plate: "ABC123", ReceivedAt: day1},
		{Quantity: 5, Plate: "ABC123", ReceivedAt: day1},
		{Quantity: 7, Plate: "XYZ789", ReceivedAt: day2},
		{Quantity: 3, Plate: "XYZ789", ReceivedAt: nextMonth},
	}

	stats := buildPackageStats(receipts)
	if stats.TotalPackages != 25 {
		t.Errorf("TotalPackages = %d, want 25", stats.TotalPackages)
	}
	if stats.Trailers != 2 {
		t.Errorf("Trailers = %d, want 2 (distinct plates)", stats.Trailers)
	}

	if len(stats.PerDay) != 3 {
		t.Fatalf("PerDay = %v, want 3 buckets", stats.PerDay)
	}
	if stats.PerDay[0].Label != "2025-06-02" || stats.PerDay[0].Packages != 15 {
		t.Errorf("PerDay[0] = %+v", stats.PerDay[0])
	}

	if len(stats.PerMonth) != 2 {
		t.Fatalf("PerMonth = %v, want 2 buckets", stats.PerMonth)
	}
	if stats.PerMonth[1].Label != "2025-07" || stats.PerMonth[1].Packages != 3 {
		t.Errorf("PerMonth[1] = %+v", stats.PerMonth[1])
	}
}

func TestBuildPackageStatsDistinctTrailers(t *testing.T) {
	when := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	receipts := []*PackageReceipt{
		{Quantity: 4, Plate: "ABC123", ReceivedAt: when},
		{Quantity: 2, Plate: " ABC123 ", ReceivedAt: when},
		{Quantity: 1, Plate: "", ReceivedAt: when},
	}

	stats := buildPackageStats(receipts)
	if stats.Trailers != 1 {
		t.Errorf("Trailers = %d, want 1 (repeat plate and blank plate do not count)", stats.Trailers)
	}
}

func TestBuildPackageStatsEmpty(t *testing.T) {
	stats := buildPackageStats(nil)
	if stats.TotalPackages != 0 || stats.Trailers != 0 {
		t.Errorf("stats = %+v, want zeroes", stats)
	}
	if len(stats.PerDay) != 0 || len(stats.PerWeek) != 0 || len(stats.PerMonth) != 0 {
		t.Errorf("series must be empty, got %+v", stats)
	}
}
