package model

// AssigneeKind discriminates the three possible identities a staff slot can
// carry: nobody, a registered profile, or a free-text name for someone who
// has no account.
type AssigneeKind int

const (
	AssigneeNone       AssigneeKind = iota // slot has no person assigned
	AssigneeRegistered                     // assigned to a registered profile
	AssigneeFreeform                       // assigned by free-text name only
)

// Assignee is the tagged identity of the person filling a slot.  Exactly one
// of ProfileID/Name is meaningful depending on Kind, which makes the
// "both fields set at once" state unrepresentable at this layer; the two
// nullable columns only exist at the repository boundary.
type Assignee struct {
	Kind      AssigneeKind
	ProfileID uint64 // valid when Kind == AssigneeRegistered
	Name      string // valid when Kind == AssigneeFreeform; display name otherwise
}

// Unassigned returns the empty identity.
func Unassigned() Assignee { return Assignee{Kind: AssigneeNone} }

// Registered returns an identity bound to a profile.  The display name is
// carried along for rendering but the profile id is authoritative.
func Registered(profileID uint64, name string) Assignee {
	return Assignee{Kind: AssigneeRegistered, ProfileID: profileID, Name: name}
}

// Freeform returns an identity known only by name.
func Freeform(name string) Assignee {
	return Assignee{Kind: AssigneeFreeform, Name: name}
}

// Assigned reports whether the slot has a person, registered or not.
func (a Assignee) Assigned() bool { return a.Kind != AssigneeNone }

// DisplayName returns the name to render for the assignee, empty for an
// unassigned slot.
func (a Assignee) DisplayName() string {
	if a.Kind == AssigneeNone {
		return ""
	}
	return a.Name
}
