package handler

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestResolveMonth(t *testing.T) {
	h := NewScheduleHandler(nil, zerolog.Nop())
	h.now = func() time.Time {
		return time.Date(2023, time.June, 15, 12, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		selector string
		want     string
	}{
		{selector: "", want: "2023-06"},
		{selector: "2014-02", want: "2014-02"},
		{selector: "2023-13", want: "2023-06"},
		{selector: "abc", want: "2023-06"},
		{selector: "2023-6", want: "2023-06"},
	}
	for _, tt := range tests {
		if got := h.resolveMonth(tt.selector).String(); got != tt.want {
			t.Errorf("resolveMonth(%q) = %s, want %s", tt.selector, got, tt.want)
		}
	}
}
