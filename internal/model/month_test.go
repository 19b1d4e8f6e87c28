package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestThursdaysFebruary2014(t *testing.T) {
	key, err := ParseMonth("2014-02")
	if err != nil {
		t.Fatalf("ParseMonth: %v", err)
	}
	got := key.Thursdays()
	want := []string{"2014-02-06", "2014-02-13", "2014-02-20", "2014-02-27"}
	if len(got) != len(want) {
		t.Fatalf("got %d Thursdays, want %d", len(got), len(want))
	}
	for i, day := range got {
		if day.String() != want[i] {
			t.Errorf("Thursdays()[%d] = %s, want %s", i, day, want[i])
		}
	}
}

func TestThursdaysProperties(t *testing.T) {
	for year := 2010; year <= 2030; year++ {
		for month := time.January; month <= time.December; month++ {
			key := MonthOf(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
			days := key.Thursdays()
			if len(days) != 4 && len(days) != 5 {
				t.Errorf("%s: got %d Thursdays, want 4 or 5", key, len(days))
			}
			for i, day := range days {
				if wd := day.Time().Weekday(); wd != time.Thursday {
					t.Errorf("%s: day %s is a %s", key, day, wd)
				}
				if day.Time().Month() != month || day.Time().Year() != year {
					t.Errorf("%s: day %s outside month", key, day)
				}
				if i > 0 && !days[i-1].Before(day) {
					t.Errorf("%s: days not strictly increasing at %d", key, i)
				}
			}
		}
	}
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "2023-06", want: "2023-06"},
		{in: "2014-02", want: "2014-02"},
		{in: "2023-13", wantErr: true},
		{in: "2023-00", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "2023-6", wantErr: true},
		{in: "2023-06-15", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseMonth(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseMonth(%q) = %s, want error", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMonth(%q): %v", tt.in, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("ParseMonth(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestMonthOf(t *testing.T) {
	key := MonthOf(time.Date(2023, time.June, 15, 13, 45, 0, 0, time.UTC))
	if key.String() != "2023-06" {
		t.Errorf("MonthOf(2023-06-15) = %s, want 2023-06", key)
	}
	if key.Year() != 2023 || key.Month() != time.June {
		t.Errorf("Year/Month = %d/%s", key.Year(), key.Month())
	}
}

func TestMonthKeyJSON(t *testing.T) {
	key, _ := ParseMonth("2024-11")
	raw, err := json.Marshal(key)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(raw) != `"2024-11"` {
		t.Errorf("Marshal = %s, want \"2024-11\"", raw)
	}

	var back MonthKey
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back != key {
		t.Errorf("round trip = %s, want %s", back, key)
	}

	if err := json.Unmarshal([]byte(`"2024-13"`), &back); err == nil {
		t.Error("Unmarshal accepted month 13")
	}
}
