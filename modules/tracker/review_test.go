package tracker

import (
	"testing"
	"time"
)

func TestValidReviewDate(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		reviewOn time.Time
		wantErr  bool
	}{
		{
			name:     "today",
			reviewOn: now,
			wantErr:  false,
		},
		{
			name:     "later today",
			reviewOn: startOfDay(now).Add(23 * time.Hour),
			wantErr:  false,
		},
		{
			name:     "tomorrow",
			reviewOn: now.AddDate(0, 0, 1),
			wantErr:  false,
		},
		{
			name:     "next month",
			reviewOn: now.AddDate(0, 1, 0),
			wantErr:  false,
		},
		{
			name:     "yesterday",
			reviewOn: now.AddDate(0, 0, -1),
			wantErr:  true,
		},
		{
			name:     "last year",
			reviewOn: now.AddDate(-1, 0, 0),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, err := validReviewDate(tt.reviewOn)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validReviewDate(%v) error = %v, wantErr %v", tt.reviewOn, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if !day.Equal(startOfDay(tt.reviewOn)) {
				t.Errorf("validReviewDate(%v) = %v, want truncated %v", tt.reviewOn, day, startOfDay(tt.reviewOn))
			}
		})
	}
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2026, 3, 14, 15, 9, 26, 535, time.Local)
	got := startOfDay(in)
	want := time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("startOfDay() = %v, want %v", got, want)
	}
}
