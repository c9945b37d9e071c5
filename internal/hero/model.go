package hero

import "github.com/daap14/heroes/internal/team"

// Hero represents a row in the heroes table.
//
// TeamID is the foreign key to teams.id and is nil for heroes without a team.
// Team is an optional in-memory reference: when set on a hero passed to
// Create, its ID is used as the foreign key.
type Hero struct {
	ID         int64
	Name       string
	SecretName string
	Age        *int
	TeamID     *int64
	Team       *team.Team
}

// WithTeam pairs a hero with its team. Team is nil when the hero has none.
type WithTeam struct {
	Hero Hero
	Team *team.Team
}

// ResolveTeamID copies the ID of the in-memory Team reference into TeamID.
// It fails with team.ErrTeamNotPersisted when the referenced team has no ID yet.
func (h *Hero) ResolveTeamID() error {
	if h.Team == nil {
		return nil
	}
	if h.Team.ID == 0 {
		return team.ErrTeamNotPersisted
	}
	id := h.Team.ID
	h.TeamID = &id
	return nil
}
