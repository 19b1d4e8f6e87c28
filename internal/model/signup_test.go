package model

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestMonthSignupJSONRoundTrip(t *testing.T) {
	original := Signup{
		Kind:        SignupMonth,
		ClassID:     7,
		StudentID:   3,
		DefaultRole: RoleLead,
		Presence: []Presence{
			{Day: NewDate(2014, time.February, 6), Role: RoleFollow},
			{Day: NewDate(2014, time.February, 13)},
		},
	}

	raw, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var back Signup
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(back, original) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", back, original)
	}
}

func TestDaySignupJSONRoundTrip(t *testing.T) {
	original := Signup{
		Kind:      SignupDay,
		ClassID:   7,
		StudentID: 2,
		Day:       NewDate(2014, time.February, 13),
		Role:      RoleFollow,
	}

	raw, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var back Signup
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(back, original) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", back, original)
	}
}

func TestSignupWireShapes(t *testing.T) {
	month := Signup{
		Kind:        SignupMonth,
		ClassID:     1,
		StudentID:   2,
		DefaultRole: RoleLead,
		Presence: []Presence{
			{Day: NewDate(2023, time.June, 1), Role: RoleFollow},
			{Day: NewDate(2023, time.June, 8)},
		},
	}
	raw, err := json.Marshal(month)
	if err != nil {
		t.Fatalf("Marshal month signup: %v", err)
	}
	want := `{"class":1,"student":2,"role":"Lead","presence":[{"day":"2023-06-01","role":"Follow"},{"day":"2023-06-08"}]}`
	if string(raw) != want {
		t.Errorf("month signup JSON:\n got %s\nwant %s", raw, want)
	}

	day := Signup{Kind: SignupDay, ClassID: 1, StudentID: 2, Day: NewDate(2023, time.June, 1), Role: RoleLead}
	raw, err = json.Marshal(day)
	if err != nil {
		t.Fatalf("Marshal day signup: %v", err)
	}
	want = `{"class":1,"student":2,"day":"2023-06-01","role":"Lead"}`
	if string(raw) != want {
		t.Errorf("day signup JSON:\n got %s\nwant %s", raw, want)
	}
}

func TestSignupValidate(t *testing.T) {
	day := NewDate(2023, time.June, 1)
	valid := func() Signup {
		return Signup{Kind: SignupMonth, ClassID: 1, StudentID: 2, DefaultRole: RoleLead}
	}

	tests := []struct {
		name    string
		mutate  func(*Signup)
		wantErr bool
	}{
		{name: "month signup ok", mutate: func(s *Signup) {}},
		{name: "month signup with presence ok", mutate: func(s *Signup) {
			s.Presence = []Presence{{Day: day, Role: RoleFollow}, {Day: day}}
		}},
		{name: "day signup ok", mutate: func(s *Signup) {
			*s = Signup{Kind: SignupDay, ClassID: 1, StudentID: 2, Day: day, Role: RoleFollow}
		}},
		{name: "missing class", mutate: func(s *Signup) { s.ClassID = 0 }, wantErr: true},
		{name: "missing student", mutate: func(s *Signup) { s.StudentID = 0 }, wantErr: true},
		{name: "bad default role", mutate: func(s *Signup) { s.DefaultRole = "Both" }, wantErr: true},
		{name: "presence without day", mutate: func(s *Signup) {
			s.Presence = []Presence{{Role: RoleFollow}}
		}, wantErr: true},
		{name: "bad presence role", mutate: func(s *Signup) {
			s.Presence = []Presence{{Day: day, Role: "Switch"}}
		}, wantErr: true},
		{name: "day signup without day", mutate: func(s *Signup) {
			*s = Signup{Kind: SignupDay, ClassID: 1, StudentID: 2, Role: RoleLead}
		}, wantErr: true},
		{name: "day signup bad role", mutate: func(s *Signup) {
			*s = Signup{Kind: SignupDay, ClassID: 1, StudentID: 2, Day: day, Role: "lead"}
		}, wantErr: true},
		{name: "day signup with presence", mutate: func(s *Signup) {
			*s = Signup{Kind: SignupDay, ClassID: 1, StudentID: 2, Day: day, Role: RoleLead,
				Presence: []Presence{{Day: day}}}
		}, wantErr: true},
		{name: "unknown kind", mutate: func(s *Signup) { s.Kind = "season" }, wantErr: true},
	}
	for _, tt := range tests {
		s := valid()
		tt.mutate(&s)
		err := s.Validate()
		if tt.wantErr && err == nil {
			t.Errorf("%s: want error, got nil", tt.name)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
		}
	}
}

func TestRoleValid(t *testing.T) {
	for role, want := range map[Role]bool{
		RoleLead: true, RoleFollow: true, "lead": false, "": false, "Switch": false,
	} {
		if got := role.Valid(); got != want {
			t.Errorf("Role(%q).Valid() = %t, want %t", role, got, want)
		}
	}
}

func TestStudentJSONOmitsEmptyEmail(t *testing.T) {
	raw, err := json.Marshal(Student{ID: 1, Name: "First1 Last1"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(raw) != `{"id":1,"name":"First1 Last1"}` {
		t.Errorf("student JSON = %s", raw)
	}

	raw, _ = json.Marshal(Student{ID: 2, Name: "First2 Last2", Email: "f2@example.com"})
	if string(raw) != `{"id":2,"name":"First2 Last2","email":"f2@example.com"}` {
		t.Errorf("student JSON with email = %s", raw)
	}
}

func TestClassJSONShape(t *testing.T) {
	month, _ := ParseMonth("2014-02")
	class := Class{ID: 9, MonthKey: month, TypeID: 4, Days: month.Thursdays()}
	raw, err := json.Marshal(class)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"type":4,"days":["2014-02-06","2014-02-13","2014-02-20","2014-02-27"]}`
	if string(raw) != want {
		t.Errorf("class JSON:\n got %s\nwant %s", raw, want)
	}
}
