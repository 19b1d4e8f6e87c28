package service

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/jyasskin/920-checkin/internal/model"
)

func TestKnownSignupsSkipsUnknownKinds(t *testing.T) {
	s := &ScheduleService{log: zerolog.Nop()}

	signups := []model.Signup{
		{ID: 1, Kind: model.SignupMonth, ClassID: 1, StudentID: 1, DefaultRole: model.RoleLead},
		{ID: 2, Kind: "season", ClassID: 1, StudentID: 2},
		{ID: 3, Kind: model.SignupDay, ClassID: 1, StudentID: 3,
			Day: model.NewDate(2023, time.June, 1), Role: model.RoleFollow},
		{ID: 4, Kind: ""},
	}

	known := s.knownSignups(signups)
	if len(known) != 2 {
		t.Fatalf("got %d known signups, want 2", len(known))
	}
	if known[0].ID != 1 || known[1].ID != 3 {
		t.Errorf("kept IDs %d, %d; want 1, 3", known[0].ID, known[1].ID)
	}
}

func TestKnownSignupsEmptyIsNotNil(t *testing.T) {
	s := &ScheduleService{log: zerolog.Nop()}
	if s.knownSignups(nil) == nil {
		t.Error("knownSignups(nil) is nil; the document must serialize signups as []")
	}
}

func TestAcceptFallback(t *testing.T) {
	month, _ := model.ParseMonth("2023-06")
	cause := errors.New("serialization failure")

	classes := []model.Class{{ID: 1, MonthKey: month, TypeID: 4}}
	got, err := acceptFallback(month, classes, cause)
	if err != nil {
		t.Fatalf("non-empty fallback rejected: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("fallback classes = %+v", got)
	}

	// An empty read does not prove a concurrent initializer won; the original
	// failure must surface instead of an empty month being treated as truth.
	if _, err := acceptFallback(month, nil, cause); err == nil {
		t.Fatal("empty fallback accepted")
	} else if !errors.Is(err, cause) {
		t.Errorf("error %v does not wrap the cause", err)
	}
}

func TestMonthDocumentJSONShape(t *testing.T) {
	month, _ := model.ParseMonth("2014-02")
	thursdays := month.Thursdays()
	doc := MonthDocument{
		Month:      month,
		Students:   []model.Student{{ID: 1, Name: "First1 Last1"}},
		ClassTypes: []model.ClassType{{ID: 4, Name: "Level 1", Time: "20:20"}},
		Classes:    []model.Class{{ID: 9, MonthKey: month, TypeID: 4, Days: thursdays}},
		Signups: []model.Signup{{
			ID: 11, Kind: model.SignupDay, ClassID: 9, StudentID: 1,
			Day: thursdays[0], Role: model.RoleLead,
		}},
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"month":"2014-02",` +
		`"students":[{"id":1,"name":"First1 Last1"}],` +
		`"class_types":[{"id":4,"name":"Level 1","time":"20:20"}],` +
		`"classes":[{"type":4,"days":["2014-02-06","2014-02-13","2014-02-20","2014-02-27"]}],` +
		`"signups":[{"class":9,"student":1,"day":"2014-02-06","role":"Lead"}]}`
	if string(raw) != want {
		t.Errorf("document JSON:\n got %s\nwant %s", raw, want)
	}
}

func TestMonthDocumentJSONRoundTrip(t *testing.T) {
	month, _ := model.ParseMonth("2023-06")
	doc := MonthDocument{
		Month:      month,
		Students:   []model.Student{{ID: 1, Name: "First1 Last1", Email: "f1@example.com"}},
		ClassTypes: []model.ClassType{},
		Classes:    []model.Class{},
		Signups: []model.Signup{{
			Kind: model.SignupMonth, ClassID: 3, StudentID: 1, DefaultRole: model.RoleFollow,
			Presence: []model.Presence{{Day: model.NewDate(2023, time.June, 1)}},
		}},
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var back MonthDocument
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.Month != doc.Month {
		t.Errorf("month = %s, want %s", back.Month, doc.Month)
	}
	if len(back.Signups) != 1 || back.Signups[0].Kind != model.SignupMonth {
		t.Errorf("signups = %+v", back.Signups)
	}
	if len(back.Signups[0].Presence) != 1 || back.Signups[0].Presence[0].Role != "" {
		t.Errorf("presence = %+v", back.Signups[0].Presence)
	}
}
