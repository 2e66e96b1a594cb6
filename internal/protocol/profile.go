package protocol

// UserProfile is the profile object returned by the auth collaborator and
// attached to handshakes so servers can display real names.
type UserProfile struct {
	ID             string `json:"id,omitempty"`
	Username       string `json:"username"`
	Email          string `json:"email,omitempty"`
	Bio            string `json:"bio,omitempty"`
	TournamentName string `json:"tournament_name,omitempty"`
	Avatar         string `json:"avatar,omitempty"`
}

// DisplayName prefers the tournament alias when one is set.
func (p UserProfile) DisplayName() string {
	if p.TournamentName != "" {
		return p.TournamentName
	}
	return p.Username
}
