package team

// Selectors are pure projections over a Team snapshot: total, free of
// side effects, and safe to call repeatedly. A nil team behaves like an
// empty one.

// HasServer reports whether the team has registered a sync server with
// exactly this host. Hosts are compared by value; no normalization.
func HasServer(t *Team, host Host) bool {
	if t == nil {
		return false
	}
	for _, s := range t.state.Servers {
		if s.Host == host {
			return true
		}
	}
	return false
}

// HasMember reports whether the team knows a user with this id.
func HasMember(t *Team, id UserID) bool {
	if t == nil {
		return false
	}
	for _, m := range t.state.Members {
		if m.ID == id {
			return true
		}
	}
	return false
}

// HasDevice reports whether the team has enrolled a device with this id.
func HasDevice(t *Team, id DeviceID) bool {
	if t == nil {
		return false
	}
	for _, d := range t.state.Devices {
		if d.ID == id {
			return true
		}
	}
	return false
}

// RoleOf returns the roles granted to the given member, and whether the
// member is known at all.
func RoleOf(t *Team, id UserID) ([]Role, bool) {
	if t == nil {
		return nil, false
	}
	for _, m := range t.state.Members {
		if m.ID == id {
			return append([]Role(nil), m.Roles...), true
		}
	}
	return nil, false
}

// MemberHasRole reports whether the given member holds the given role.
func MemberHasRole(t *Team, id UserID, role Role) bool {
	roles, ok := RoleOf(t, id)
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
