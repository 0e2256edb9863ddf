package auth

// Allowed is the role gate: it reports whether role belongs to the allowed
// set. Pure function, no I/O; callers translate a false result into a 403.
func Allowed(role string, allowed ...string) bool {
	for _, candidate := range allowed {
		if role == candidate {
			return true
		}
	}
	return false
}
