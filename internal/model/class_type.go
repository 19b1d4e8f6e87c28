package model

// ClassType is a recurring lesson definition ("Level 1" at 20:20), independent
// of any particular month. Top-level, like Student.
type ClassType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	// Time is the wall-clock start time, "HH:MM".
	Time string `json:"time"`
}

// CreateClassTypeRequest is the payload for defining a new lesson type.
type CreateClassTypeRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
	Time string `json:"time" binding:"required,datetime=15:04"`
}
