package internal

import (
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{in: -time.Minute, want: "expired"},
		{in: 0, want: "expired"},
		{in: 30 * time.Second, want: "<1m"},
		{in: 45 * time.Minute, want: "45m"},
		{in: 2*time.Hour + 5*time.Minute, want: "2h5m"},
		{in: 8 * time.Hour, want: "8h0m"},
	}

	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			assert.Equal(t, FormatRemaining(tt.in), tt.want)
		})
	}
}
