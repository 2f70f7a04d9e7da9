package models

// Member is one person in a household.
type Member struct {
	// ID is the opaque identifier issued by the identity provider.
	ID string

	// DisplayName is the name shown in the UI.
	DisplayName string
}

// Group represents a household: a named, ordered list of members.
// Member order is significant; task rotation follows it.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Flat 3B").
	Name string

	// Members is the ordered member list.
	Members []Member

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether id belongs to the group.
func (g *Group) HasMember(id string) bool {
	for _, m := range g.Members {
		if m.ID == id {
			return true
		}
	}
	return false
}

// MemberIDs returns the member IDs in group order.
func (g *Group) MemberIDs() []string {
	ids := make([]string, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.ID
	}
	return ids
}
