package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Role is the part a student dances in a class.
type Role string

const (
	RoleLead   Role = "Lead"
	RoleFollow Role = "Follow"
)

// Valid reports whether r is one of the two allowed roles.
func (r Role) Valid() bool {
	return r == RoleLead || r == RoleFollow
}

// SignupKind discriminates the two signup variants.
type SignupKind string

const (
	// SignupMonth is a student paying for a whole month (or the rest of one).
	SignupMonth SignupKind = "month"
	// SignupDay is a drop-in paying for a single lesson.
	SignupDay SignupKind = "day"
)

// Presence records one day a MonthSignup was actually used, optionally
// overriding the signup's default role. It is embedded in a MonthSignup's
// presence list and is never persisted on its own.
type Presence struct {
	Day  Date `json:"day"`
	Role Role `json:"role,omitempty"`
}

// Signup is a student paying for a class, as a tagged variant: Kind selects
// which of the variant fields apply. Signups live under a month scope.
type Signup struct {
	ID        int64
	MonthKey  MonthKey
	Kind      SignupKind
	ClassID   int64
	StudentID int64

	// SignupMonth fields.
	DefaultRole Role
	Presence    []Presence

	// SignupDay fields.
	Day  Date
	Role Role
}

// Validate checks the variant invariants before persistence.
func (s *Signup) Validate() error {
	if s.ClassID == 0 || s.StudentID == 0 {
		return errors.New("signup requires a class and a student")
	}
	switch s.Kind {
	case SignupMonth:
		if !s.DefaultRole.Valid() {
			return fmt.Errorf("invalid default role %q", s.DefaultRole)
		}
		for _, p := range s.Presence {
			if p.Day.IsZero() {
				return errors.New("presence entry requires a day")
			}
			if p.Role != "" && !p.Role.Valid() {
				return fmt.Errorf("invalid presence role %q", p.Role)
			}
		}
	case SignupDay:
		if s.Day.IsZero() {
			return errors.New("day signup requires a day")
		}
		if !s.Role.Valid() {
			return fmt.Errorf("invalid role %q", s.Role)
		}
		if len(s.Presence) > 0 {
			return errors.New("day signup cannot carry presence entries")
		}
	default:
		return fmt.Errorf("unknown signup kind %q", s.Kind)
	}
	return nil
}

type monthSignupJSON struct {
	Class    int64      `json:"class"`
	Student  int64      `json:"student"`
	Role     Role       `json:"role"`
	Presence []Presence `json:"presence"`
}

type daySignupJSON struct {
	Class   int64 `json:"class"`
	Student int64 `json:"student"`
	Day     Date  `json:"day"`
	Role    Role  `json:"role"`
}

// MarshalJSON dispatches on the kind tag: month signups serialize as
// {class, student, role, presence}, day signups as {class, student, day, role}.
func (s Signup) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case SignupMonth:
		presence := s.Presence
		if presence == nil {
			presence = []Presence{}
		}
		return json.Marshal(monthSignupJSON{
			Class:    s.ClassID,
			Student:  s.StudentID,
			Role:     s.DefaultRole,
			Presence: presence,
		})
	case SignupDay:
		return json.Marshal(daySignupJSON{
			Class:   s.ClassID,
			Student: s.StudentID,
			Day:     s.Day,
			Role:    s.Role,
		})
	}
	return nil, fmt.Errorf("unknown signup kind %q", s.Kind)
}

// UnmarshalJSON recovers the variant from the wire shape: a "day" field marks
// a day signup, otherwise the record is a month signup.
func (s *Signup) UnmarshalJSON(data []byte) error {
	var probe struct {
		Day json.RawMessage `json:"day"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if probe.Day != nil {
		var raw daySignupJSON
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*s = Signup{
			Kind:      SignupDay,
			ClassID:   raw.Class,
			StudentID: raw.Student,
			Day:       raw.Day,
			Role:      raw.Role,
		}
		return nil
	}
	var raw monthSignupJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = Signup{
		Kind:        SignupMonth,
		ClassID:     raw.Class,
		StudentID:   raw.Student,
		DefaultRole: raw.Role,
		Presence:    raw.Presence,
	}
	return nil
}
