package models

// Identifiers are hex encoded ObjectIDs, typed per collection so a patient id
// can never be passed where a user id is expected.
type (
	UserID    string
	PatientID string
	SessionID string
)

func (id UserID) String() string    { return string(id) }
func (id PatientID) String() string { return string(id) }
func (id SessionID) String() string { return string(id) }

func (id UserID) IsZero() bool    { return id == "" }
func (id PatientID) IsZero() bool { return id == "" }
func (id SessionID) IsZero() bool { return id == "" }
