package booking

import (
	"testing"
	"time"

	"github.com/salonbook/salon-scheduler/internal/models"
)

func TestTotalDuration(t *testing.T) {
	cases := []struct {
		name       string
		serviceMin int
		addons     []models.Addon
		want       time.Duration
	}{
		{
			name:       "service only",
			serviceMin: 30,
			want:       30 * time.Minute,
		},
		{
			name:       "single addon",
			serviceMin: 45,
			addons:     []models.Addon{{DurationMin: 15}},
			want:       60 * time.Minute,
		},
		{
			name:       "multiple addons",
			serviceMin: 30,
			addons:     []models.Addon{{DurationMin: 10}, {DurationMin: 20}},
			want:       60 * time.Minute,
		},
		{
			name:       "zero duration addon",
			serviceMin: 30,
			addons:     []models.Addon{{DurationMin: 0}},
			want:       30 * time.Minute,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := TotalDuration(tc.serviceMin, tc.addons)
			if got != tc.want {
				t.Errorf("TotalDuration(%d, %v) = %v, want %v", tc.serviceMin, tc.addons, got, tc.want)
			}
		})
	}
}
