package allocation

import (
	"fmt"
	"strings"
)

// Policy selects how a total sample size is split across classes.
type Policy int

const (
	// Proportional allocates samples proportionally to class area.
	Proportional Policy = iota
	// Equal allocates samples as evenly as possible regardless of area.
	Equal
	// UserSpecified takes the per-class counts from the caller.
	UserSpecified
)

// String returns the selector name accepted by ParsePolicy.
func (p Policy) String() string {
	switch p {
	case Proportional:
		return "proportional"
	case Equal:
		return "equal"
	case UserSpecified:
		return "user"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// Description returns a human readable label for menus and reports.
func (p Policy) Description() string {
	switch p {
	case Proportional:
		return "Proportional to area"
	case Equal:
		return "Equal allocation"
	case UserSpecified:
		return "User specified"
	default:
		return p.String()
	}
}

// RequiresMinimum reports whether the policy guarantees one sample per class
// and therefore needs a total of at least the class count.
func (p Policy) RequiresMinimum() bool {
	return p == Proportional || p == Equal
}

// ParsePolicy parses a selector name, case-insensitively. "prop", "area",
// "equal" and "user"/"manual" forms are accepted.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "proportional", "prop", "area":
		return Proportional, nil
	case "equal":
		return Equal, nil
	case "user", "user-specified", "manual":
		return UserSpecified, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}
