package ccl

import "fmt"

// Merge combines a parent and a child policy into the effective policy a
// delegated agent operates under: rules from both are unioned (exact
// duplicates collapsed), and limits on the same action take the lower
// per-second rate, since a child can only narrow what a parent allows.
func Merge(parent, child *Policy) *Policy {
	merged := &Policy{
		Permits: dedupRules(append(append([]Rule{}, parent.Permits...), child.Permits...)),
		Denies:  dedupRules(append(append([]Rule{}, parent.Denies...), child.Denies...)),
		Limits:  mergeLimits(parent.Limits, child.Limits),
	}
	merged.Statements = append(merged.Statements, parent.Statements...)
	merged.Statements = append(merged.Statements, child.Statements...)
	return merged
}

func dedupRules(rules []Rule) []Rule {
	seen := make(map[string]bool, len(rules))
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		key := ruleKey(r)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

func ruleKey(r Rule) string {
	cond := ""
	if r.Condition != nil {
		cond = fmt.Sprintf("%s%s%v", r.Condition.Variable, r.Condition.Op, r.Condition.Literal)
	}
	return r.Action + "\x00" + r.Resource + "\x00" + cond + "\x00" + string(r.Severity)
}

// mergeLimits unions limit rules by action, keeping whichever of a
// duplicated action's limits has the lower allowed rate.
func mergeLimits(parent, child []LimitRule) []LimitRule {
	byAction := make(map[string]LimitRule)
	order := make([]string, 0, len(parent)+len(child))

	add := func(l LimitRule) {
		existing, ok := byAction[l.Action]
		if !ok {
			byAction[l.Action] = l
			order = append(order, l.Action)
			return
		}
		if rateOf(l) < rateOf(existing) {
			byAction[l.Action] = l
		}
	}
	for _, l := range parent {
		add(l)
	}
	for _, l := range child {
		add(l)
	}

	out := make([]LimitRule, 0, len(order))
	for _, action := range order {
		out = append(out, byAction[action])
	}
	return out
}

// rateOf returns a limit's allowed rate in occurrences per second, the
// common unit limits from different periods are compared in.
func rateOf(l LimitRule) float64 {
	if l.PeriodSeconds <= 0 {
		return 0
	}
	return float64(l.Count) / float64(l.PeriodSeconds)
}
