package models

// RegistrationState describes how a contact relates to a credential record.
// It replaces scattered nil-checks on the user link with one tagged value.
type RegistrationState int

const (
	// StateUnlinked: the contact has no credential record at all.
	StateUnlinked RegistrationState = iota
	// StateLinkedNoSecret: a credential exists but no password is set.
	StateLinkedNoSecret
	// StateLinkedRegistered: a credential with a usable password exists.
	StateLinkedRegistered
)

func (s RegistrationState) String() string {
	switch s {
	case StateUnlinked:
		return "unlinked"
	case StateLinkedNoSecret:
		return "linkedNoSecret"
	case StateLinkedRegistered:
		return "linkedRegistered"
	default:
		return "unknown"
	}
}

// Contact is a person who may be assigned to tasks, whether or not they ever
// registered an account. UserID is set when a credential record is linked.
type Contact struct {
	ID     int64
	UserID *string
	Name   string
	Email  string
	Color  string
	Online bool
	Phone  *string
}

// State derives the registration state from the contact's linked user, which
// may be nil when no credential record exists.
func (c *Contact) State(user *User) RegistrationState {
	if c.UserID == nil || user == nil {
		return StateUnlinked
	}
	if user.HasUsableSecret() {
		return StateLinkedRegistered
	}
	return StateLinkedNoSecret
}

// IsRegistered is the single fact the reconciliation and deletion rules key
// off of: a linked credential with a usable secret.
func (c *Contact) IsRegistered(user *User) bool {
	return c.State(user) == StateLinkedRegistered
}
