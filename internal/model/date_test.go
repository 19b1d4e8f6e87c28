package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2023-06-15")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.String() != "2023-06-15" {
		t.Errorf("String() = %s", d)
	}

	for _, bad := range []string{"2023-6-15", "2023-06-32", "15/06/2023", ""} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) succeeded", bad)
		}
	}
}

func TestDateOfDropsTimeOfDay(t *testing.T) {
	d := DateOf(time.Date(2023, time.June, 15, 19, 20, 0, 0, time.UTC))
	if d != NewDate(2023, time.June, 15) {
		t.Errorf("DateOf = %s", d)
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2014, time.February, 6)
	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(raw) != `"2014-02-06"` {
		t.Errorf("Marshal = %s", raw)
	}

	var back Date
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back != d {
		t.Errorf("round trip = %s, want %s", back, d)
	}
}
