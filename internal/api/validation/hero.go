package validation

import "strings"

// CreateHeroRequest is the body of POST /heroes.
type CreateHeroRequest struct {
	Name       string  `json:"name" validate:"required,max=255"`
	SecretName string  `json:"secretName" validate:"required,max=255"`
	Age        *int    `json:"age" validate:"omitempty,min=0,max=1000"`
	TeamName   *string `json:"teamName" validate:"omitnil,min=1,max=255"`
}

// UpdateHeroRequest is the body of PATCH /heroes/{name}.
type UpdateHeroRequest struct {
	Age *int `json:"age" validate:"required,min=0,max=1000"`
}

// AssignTeamRequest is the body of PUT /heroes/{name}/team. A null teamName
// removes the hero from its team.
type AssignTeamRequest struct {
	TeamName *string `json:"teamName" validate:"omitnil,min=1,max=255"`
}

// ValidateCreateHeroRequest trims and validates a create hero request.
func ValidateCreateHeroRequest(req *CreateHeroRequest) []FieldError {
	req.Name = strings.TrimSpace(req.Name)
	req.SecretName = strings.TrimSpace(req.SecretName)
	if req.TeamName != nil {
		trimmed := strings.TrimSpace(*req.TeamName)
		req.TeamName = &trimmed
	}
	return validateStruct(req)
}

// ValidateUpdateHeroRequest validates an update hero request.
func ValidateUpdateHeroRequest(req *UpdateHeroRequest) []FieldError {
	return validateStruct(req)
}

// ValidateAssignTeamRequest trims and validates an assign team request.
func ValidateAssignTeamRequest(req *AssignTeamRequest) []FieldError {
	if req.TeamName != nil {
		trimmed := strings.TrimSpace(*req.TeamName)
		req.TeamName = &trimmed
	}
	return validateStruct(req)
}
