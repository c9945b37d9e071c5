package team

// Team represents a row in the teams table. ID is zero until the row has
// been inserted.
type Team struct {
	ID           int64
	Name         string
	Headquarters string
}
