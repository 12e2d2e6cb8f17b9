package ccl

import "strings"

// actionSpecificity scores an action pattern by how narrowly it matches: an
// exact literal pattern (no wildcard segments) scores highest; a bare "**"
// scores lowest; everything else scores by how many literal segments
// precede the first wildcard.
func actionSpecificity(pattern string) int {
	if pattern == "**" {
		return 0
	}
	if strings.HasSuffix(pattern, ".*") {
		prefix := strings.TrimSuffix(pattern, ".*")
		return 10 + len(strings.Split(prefix, "."))
	}
	segs := strings.Split(pattern, ".")
	return literalPrefixScore(segs) * 100
}

// resourceSpecificity is actionSpecificity's counterpart for "/"-separated
// resource patterns, recognizing the "/**" suffix form instead of ".*".
func resourceSpecificity(pattern string) int {
	if pattern == "**" {
		return 0
	}
	if strings.HasSuffix(pattern, "/**") {
		prefix := strings.TrimSuffix(pattern, "/**")
		return 10 + len(strings.Split(prefix, "/"))
	}
	segs := strings.Split(pattern, "/")
	return literalPrefixScore(segs) * 100
}

// literalPrefixScore counts leading literal (non-wildcard) segments, then
// adds a fractional-like bonus for the total segment count so that two
// fully-literal patterns of different depth still order by depth, and a
// pattern with an internal "*"/"**" scores below a fully literal one of the
// same depth.
func literalPrefixScore(segs []string) int {
	literal := 0
	allLiteral := true
	for _, s := range segs {
		if s == "*" || s == "**" {
			allLiteral = false
			break
		}
		literal++
	}
	score := literal
	if allLiteral {
		score += len(segs)
	}
	return score
}
