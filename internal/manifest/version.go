package manifest

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizeConstraint converts a Poetry version constraint to the PEP 440
// shape the target manifest uses. The pipeline, in order: caret and tilde
// become ">=", a trailing wildcard is stripped, a post-release suffix is
// stripped, a ".0" patch component is appended unless the string already
// ends in ".0", and ">=..." constraints gain an exclusive upper bound one
// major version up. A non-numeric leading component is the one failure
// mode; callers record it as an invalid constraint.
//
// The output is a fixed point: feeding a normalized constraint back in
// returns it unchanged.
func NormalizeConstraint(constraint string) (string, error) {
	v := ensurePatch(stripMarkers(constraint))
	if !strings.HasPrefix(v, ">=") {
		return v, nil
	}
	return addUpperBound(v)
}

func stripMarkers(v string) string {
	v = strings.ReplaceAll(v, "^", ">=")
	v = strings.ReplaceAll(v, "~", ">=")
	v = strings.TrimSuffix(v, ".*")
	if i := strings.Index(v, ".post"); i >= 0 {
		v = v[:i]
	}
	return v
}

func ensurePatch(v string) string {
	if strings.HasSuffix(v, ".0") {
		return v
	}
	return v + ".0"
}

func addUpperBound(v string) (string, error) {
	// Already bounded constraints pass through untouched; this is what
	// makes normalization idempotent on its own output.
	if strings.Contains(v, ", <") {
		return v, nil
	}
	lead := strings.TrimPrefix(strings.SplitN(v, ".", 2)[0], ">=")
	major, err := strconv.Atoi(lead)
	if err != nil {
		return "", fmt.Errorf("non-numeric major version in %q: %w", v, err)
	}
	return fmt.Sprintf("%s, <%d.0", v, major+1), nil
}
