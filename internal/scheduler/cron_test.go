package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCronSchedule(t *testing.T) {
	tests := []struct {
		schedule string
		valid    bool
	}{
		{"0 * * * *", true},    // Every hour
		{"*/15 * * * *", true}, // Every 15 minutes
		{"0 0 * * *", true},    // Daily at midnight
		{"0 0 * * 0", true},    // Weekly on Sunday
		{"0 */6 * * *", true},  // Every 6 hours
		{"invalid", false},
		{"* * * *", false},     // Missing field
		{"0 0 * * * *", false}, // Seconds are not supported
		{"60 * * * *", false},  // Invalid minute
		{"0 25 * * *", false},  // Invalid hour
	}

	for _, tt := range tests {
		t.Run(tt.schedule, func(t *testing.T) {
			err := ValidateCronSchedule(tt.schedule)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestGetCronDescription(t *testing.T) {
	tests := []struct {
		schedule    string
		description string
	}{
		{"0 * * * *", "Every hour at :00"},
		{"*/15 * * * *", "Every 15 minutes"},
		{"*/30 * * * *", "Every 30 minutes"},
		{"0 */6 * * *", "Every 6 hours"},
		{"0 0 * * *", "Daily at midnight"},
		{"0 0 * * 0", "Weekly on Sunday at midnight"},
		{"5 4 * * *", "Custom schedule: 5 4 * * *"},
	}

	for _, tt := range tests {
		t.Run(tt.schedule, func(t *testing.T) {
			assert.Equal(t, tt.description, GetCronDescription(tt.schedule))
		})
	}
}

func TestGetNextRunTime(t *testing.T) {
	next, err := GetNextRunTime("0 * * * *")
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.True(t, next.After(time.Now()))
	assert.Equal(t, 0, next.Minute())

	_, err = GetNextRunTime("invalid")
	assert.Error(t, err)
}
