package model

// Student is a member of the studio's roster. Students are top-level records
// with no month scope; they are created by the admin API or the sample-data
// installer and only removed by a full reset.
type Student struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// CreateStudentRequest is the payload for adding a student to the roster.
type CreateStudentRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=200"`
	Email string `json:"email" binding:"omitempty,email"`
}
