// Copyright 2026 The Fresh Keeper Authors
// SPDX-License-Identifier: Apache-2.0

package expiry

import (
	"testing"
	"time"
)

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		daysLeft int
		want     AlertLevel
	}{
		{-100, Expired},
		{-2, Expired},
		{-1, Expired},
		{0, Danger},
		{1, Danger},
		{2, Warning},
		{3, Warning},
		{4, Safe},
		{10, Safe},
		{365, Safe},
	}
	for _, test := range tests {
		if got := Classify(test.daysLeft); got != test.want {
			t.Errorf("Classify(%d) = %v, want %v", test.daysLeft, got, test.want)
		}
	}
}

func TestAlertLevelSeverityOrder(t *testing.T) {
	if !(Safe < Warning && Warning < Danger && Danger < Expired) {
		t.Fatalf("severity order broken: Safe=%d Warning=%d Danger=%d Expired=%d",
			Safe, Warning, Danger, Expired)
	}
}

func TestDaysLeftSameDayIsZero(t *testing.T) {
	now := time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC)
	expiry := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	if got := DaysLeft(expiry, now); got != 0 {
		t.Fatalf("DaysLeft(same day) = %d, want 0", got)
	}
}

func TestDaysLeftIgnoresTimeOfDay(t *testing.T) {
	// Expiry late tomorrow evening, reference early this morning:
	// still exactly one calendar day apart.
	now := time.Date(2026, 9, 1, 0, 5, 0, 0, time.UTC)
	expiry := time.Date(2026, 9, 2, 23, 55, 0, 0, time.UTC)
	if got := DaysLeft(expiry, now); got != 1 {
		t.Fatalf("DaysLeft = %d, want 1", got)
	}
}

func TestDaysLeftPastDateIsNegative(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	expiry := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	if got := DaysLeft(expiry, now); got != -2 {
		t.Fatalf("DaysLeft = %d, want -2", got)
	}
}

func TestDaysLeftIdempotent(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	expiry := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	first := DaysLeft(expiry, now)
	for i := 0; i < 5; i++ {
		if got := DaysLeft(expiry, now); got != first {
			t.Fatalf("DaysLeft not idempotent: %d then %d", first, got)
		}
	}
}

func TestDaysLeftNormalizesTimezones(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// 2026-09-02T00:30 JST is still 2026-09-01 in UTC. Both dates
	// must be truncated in the reference zone (JST here), so the
	// expiry counts as "tomorrow", not "today".
	now := time.Date(2026, 9, 1, 23, 0, 0, 0, tokyo)
	expiry := time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC) // 2026-09-02 00:30 JST
	if got := DaysLeft(expiry, now); got != 1 {
		t.Fatalf("DaysLeft across zones = %d, want 1", got)
	}
}

func TestDaysLeftAcrossDSTTransitions(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// US DST in 2026: clocks spring forward on 03-08 (a 23-hour day)
	// and fall back on 11-01 (a 25-hour day). The count must stay in
	// calendar days either way.
	tests := []struct {
		name   string
		now    time.Time
		expiry time.Time
		want   int
	}{
		{
			name:   "spring forward",
			now:    time.Date(2026, 3, 7, 9, 0, 0, 0, newYork),
			expiry: time.Date(2026, 3, 9, 0, 0, 0, 0, newYork),
			want:   2,
		},
		{
			name:   "fall back",
			now:    time.Date(2026, 10, 31, 9, 0, 0, 0, newYork),
			expiry: time.Date(2026, 11, 2, 0, 0, 0, 0, newYork),
			want:   2,
		},
		{
			name:   "expired across spring forward",
			now:    time.Date(2026, 3, 9, 9, 0, 0, 0, newYork),
			expiry: time.Date(2026, 3, 7, 0, 0, 0, 0, newYork),
			want:   -2,
		},
	}
	for _, test := range tests {
		if got := DaysLeft(test.expiry, test.now); got != test.want {
			t.Errorf("%s: DaysLeft = %d, want %d", test.name, got, test.want)
		}
	}
}

func TestLabelJapanese(t *testing.T) {
	tests := []struct {
		daysLeft int
		want     string
	}{
		{-2, "期限切れ"},
		{-1, "期限切れ"},
		{0, "今日が期限"},
		{1, "残り1日"},
		{3, "残り3日"},
		{10, "残り10日"},
	}
	for _, test := range tests {
		level := Classify(test.daysLeft)
		if got := Label(level, test.daysLeft, "ja"); got != test.want {
			t.Errorf("Label(%d, ja) = %q, want %q", test.daysLeft, got, test.want)
		}
	}
}

func TestLabelEnglish(t *testing.T) {
	tests := []struct {
		daysLeft int
		want     string
	}{
		{-1, "expired"},
		{0, "due today"},
		{1, "1 day left"},
		{4, "4 days left"},
	}
	for _, test := range tests {
		level := Classify(test.daysLeft)
		if got := Label(level, test.daysLeft, "en"); got != test.want {
			t.Errorf("Label(%d, en) = %q, want %q", test.daysLeft, got, test.want)
		}
	}
}

func TestTypeLabels(t *testing.T) {
	if got := TypeBestBefore.Label("ja"); got != "賞味期限" {
		t.Errorf("TypeBestBefore ja = %q", got)
	}
	if got := TypeUseBy.Label("ja"); got != "消費期限" {
		t.Errorf("TypeUseBy ja = %q", got)
	}
	if got := TypeUseBy.Label("en"); got != "use by" {
		t.Errorf("TypeUseBy en = %q", got)
	}
	if !TypeBestBefore.Valid() || !TypeUseBy.Valid() || Type("other").Valid() {
		t.Error("Type.Valid misclassifies")
	}
}
