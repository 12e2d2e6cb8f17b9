package ccl

import "strings"

// MatchAction reports whether action satisfies pattern. A pattern segment of
// "*" matches exactly one dot-separated segment; a trailing ".*" matches the
// rest of the name after the dot; the bare pattern "**" matches anything.
func MatchAction(pattern, action string) bool {
	if pattern == "**" {
		return true
	}
	if strings.HasSuffix(pattern, ".*") {
		prefix := strings.TrimSuffix(pattern, ".*")
		return action == prefix || strings.HasPrefix(action, prefix+".")
	}
	return matchSegments(strings.Split(pattern, "."), strings.Split(action, "."))
}

// MatchResource reports whether resource satisfies pattern using the same
// wildcard grammar as MatchAction but over "/"-separated path segments,
// where a trailing "/**" matches the rest of the path after the slash.
func MatchResource(pattern, resource string) bool {
	if pattern == "**" {
		return true
	}
	if strings.HasSuffix(pattern, "/**") {
		prefix := strings.TrimSuffix(pattern, "/**")
		return resource == prefix || strings.HasPrefix(resource, prefix+"/")
	}
	return matchSegments(strings.Split(pattern, "/"), strings.Split(resource, "/"))
}

// matchSegments compares two segment lists position by position, where a "*"
// segment matches exactly one segment of the other side. A bare "**"
// segment inside the pattern (not as the whole pattern or a recognized
// suffix) matches the remainder of the segments from that position on.
func matchSegments(pattern, value []string) bool {
	pi, vi := 0, 0
	for pi < len(pattern) {
		seg := pattern[pi]
		if seg == "**" {
			if pi == len(pattern)-1 {
				return true
			}
			// Try every possible consumption of the wildcard, shortest first.
			for skip := 0; vi+skip <= len(value); skip++ {
				if matchSegments(pattern[pi+1:], value[vi+skip:]) {
					return true
				}
			}
			return false
		}
		if vi >= len(value) {
			return false
		}
		if seg != "*" && seg != value[vi] {
			return false
		}
		pi++
		vi++
	}
	return vi == len(value)
}
