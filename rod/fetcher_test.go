package rod_test

import (
	"testing"

	"github.com/shopcrawl/shopcrawl/rod"
	"github.com/stretchr/testify/assert"
)

func TestProfileUserAgent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		profile string
		want    string
	}{
		{
			profile: "chrome120",
			want:    "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		},
		{
			profile: "chrome99",
			want:    "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/99.0.0.0 Safari/537.36",
		},
		{profile: "firefox120", want: ""},
		{profile: "chrome", want: ""},
		{profile: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.profile, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, rod.ProfileUserAgent(tt.profile))
		})
	}
}
