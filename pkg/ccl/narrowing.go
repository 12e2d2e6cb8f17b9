package ccl

import "fmt"

// Violation names one child-policy rule that is not a narrowing of the
// parent policy.
type Violation struct {
	Rule   Rule
	Reason string
}

// NarrowingResult reports whether a child policy only narrows, never
// widens, what its parent permits.
type NarrowingResult struct {
	Valid      bool
	Violations []Violation
}

// ValidateNarrowing checks that every permit in child is itself permitted by
// parent. A child may always add deny rules (a deny can only narrow); a
// child permit is only valid if the parent would also permit the same
// action/resource pair, and if the child's pattern is no broader than
// whatever parent rule covers it.
//
// Some comparisons are undecidable from pattern text alone (for example, a
// child permit with its own wildcard segment cannot be proven to never
// exceed the parent without enumerating concrete values). A child permit
// whose pattern contains a wildcard is therefore compared by specificity
// against the parent rule its pattern text matches, and is flagged as a
// violation when it scores lower (broader) than that rule.
func ValidateNarrowing(parent, child *Policy) NarrowingResult {
	result := NarrowingResult{Valid: true}
	for _, rule := range child.Permits {
		if ok, reason := isPermittedByParent(parent, rule); !ok {
			result.Valid = false
			result.Violations = append(result.Violations, Violation{Rule: rule, Reason: reason})
		}
	}
	return result
}

func isPermittedByParent(parent *Policy, child Rule) (bool, string) {
	ctx := map[string]interface{}{}
	probe := Evaluate(parent, literalOrProbe(child.Action), literalOrProbe(child.Resource), ctx)
	if !probe.Permitted {
		return false, fmt.Sprintf("parent policy does not permit %s on %s", child.Action, child.Resource)
	}

	childSpecificity := actionSpecificity(child.Action) + resourceSpecificity(child.Resource)
	parentSpecificity := actionSpecificity(probe.MatchedRule.Action) + resourceSpecificity(probe.MatchedRule.Resource)

	if containsWildcard(child.Action) || containsWildcard(child.Resource) {
		if childSpecificity < parentSpecificity {
			return false, fmt.Sprintf(
				"child permit %s on %s is broader than the parent rule %s on %s that covers it",
				child.Action, child.Resource, probe.MatchedRule.Action, probe.MatchedRule.Resource,
			)
		}
	}
	return true, ""
}

// literalOrProbe returns pattern unchanged, so Evaluate matches the child's
// pattern text (wildcards included) literally against the parent's rules.
func literalOrProbe(pattern string) string {
	return pattern
}

func containsWildcard(pattern string) bool {
	for _, seg := range []byte(pattern) {
		if seg == '*' {
			return true
		}
	}
	return false
}
