package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MacDuki/sharedShop/internal/models"
)

func TestPeriodEnd(t *testing.T) {
	now := time.Date(2026, 1, 15, 13, 45, 0, 0, time.UTC)
	custom := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		period  models.BudgetPeriod
		now     time.Time
		custom  *time.Time
		want    time.Time
		wantErr error
	}{
		{
			name:   "weekly keeps time of day",
			period: models.PeriodWeekly,
			now:    now,
			want:   time.Date(2026, 1, 22, 13, 45, 0, 0, time.UTC),
		},
		{
			name:   "monthly is midnight next month",
			period: models.PeriodMonthly,
			now:    now,
			want:   time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "monthly rolls over short months",
			period: models.PeriodMonthly,
			now:    time.Date(2026, 1, 31, 8, 0, 0, 0, time.UTC),
			want:   time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "monthly crosses the year",
			period: models.PeriodMonthly,
			now:    time.Date(2026, 12, 5, 8, 0, 0, 0, time.UTC),
			want:   time.Date(2027, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "custom uses supplied end",
			period: models.PeriodCustom,
			now:    now,
			custom: &custom,
			want:   custom,
		},
		{
			name:    "custom without end",
			period:  models.PeriodCustom,
			now:     now,
			wantErr: ErrCustomPeriodEndRequired,
		},
		{
			name:    "unknown period",
			period:  "yearly",
			now:     now,
			wantErr: ErrUnknownPeriod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PeriodEnd(tt.period, tt.now, tt.custom)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}
}

func TestPeriodStart(t *testing.T) {
	end := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, 3, 8, 10, 0, 0, 0, time.UTC), PeriodStart(models.PeriodWeekly, end))
	assert.Equal(t, time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC), PeriodStart(models.PeriodMonthly, end))
	assert.Equal(t, time.Date(2026, 2, 13, 10, 0, 0, 0, time.UTC), PeriodStart(models.PeriodCustom, end))
}
