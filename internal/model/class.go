package model

import "encoding/json"

// Class is one month's run of a ClassType. It lives under a month scope and is
// created exactly once per (month, type) by the class initializer, then never
// mutated.
type Class struct {
	ID       int64
	MonthKey MonthKey
	TypeID   int64
	Days     []Date
}

type classJSON struct {
	Type int64  `json:"type"`
	Days []Date `json:"days"`
}

// MarshalJSON renders the wire shape {type, days}. The month is implied by the
// enclosing document and the ID is only referenced from signups.
func (c Class) MarshalJSON() ([]byte, error) {
	days := c.Days
	if days == nil {
		days = []Date{}
	}
	return json.Marshal(classJSON{Type: c.TypeID, Days: days})
}

// UnmarshalJSON parses the {type, days} wire shape.
func (c *Class) UnmarshalJSON(data []byte) error {
	var raw classJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.TypeID = raw.Type
	c.Days = raw.Days
	return nil
}
