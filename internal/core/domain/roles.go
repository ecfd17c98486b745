package domain

// HasAnyRole reports whether the caller holds at least one of the required roles.
// An empty requirement is satisfied by everyone, including callers without roles.
func HasAnyRole(callerRoles, requiredRoles []string) bool {
	if len(requiredRoles) == 0 {
		return true
	}
	for _, required := range requiredRoles {
		for _, held := range callerRoles {
			if held == required {
				return true
			}
		}
	}
	return false
}

// UnionRoles merges role lists keeping first-seen order and dropping duplicates.
func UnionRoles(lists ...[]string) []string {
	var all []string
	for _, list := range lists {
		all = append(all, list...)
	}
	return UniqueStrings(all)
}

// UniqueStrings returns values without blanks or repeats, in first-seen order.
// The result is never nil.
func UniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := []string{}
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
