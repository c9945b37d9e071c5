package validation

import "strings"

// CreateTeamRequest is the body of POST /teams.
type CreateTeamRequest struct {
	Name         string `json:"name" validate:"required,max=255"`
	Headquarters string `json:"headquarters" validate:"required,max=255"`
}

// ValidateCreateTeamRequest trims and validates a create team request.
func ValidateCreateTeamRequest(req *CreateTeamRequest) []FieldError {
	req.Name = strings.TrimSpace(req.Name)
	req.Headquarters = strings.TrimSpace(req.Headquarters)
	return validateStruct(req)
}
