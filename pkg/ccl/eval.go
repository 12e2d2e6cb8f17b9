package ccl

// EvalResult is the outcome of evaluating a policy against a single
// action/resource/context triple.
type EvalResult struct {
	Permitted   bool
	MatchedRule *Rule
	Reason      string
}

// candidate is an internal bookkeeping struct used to pick the
// highest-specificity, deny-wins winner among the rules that match.
type candidate struct {
	rule        Rule
	permit      bool
	specificity int
}

// Evaluate applies policy to the action/resource pair, considering ctx for
// any `when` condition clauses. Context values are addressed by dot path
// (e.g. "request.amount"); a path segment missing from ctx makes any
// condition referencing it evaluate to false, which in turn makes that rule
// not match.
//
// Every permit and deny rule whose action/resource patterns match is
// collected as a candidate. The candidate with the highest combined
// specificity wins; a tie between a permit and a deny candidate resolves to
// the deny, never the permit.
func Evaluate(policy *Policy, action, resource string, ctx map[string]interface{}) EvalResult {
	var best *candidate

	consider := func(rule Rule, permit bool) {
		if !MatchAction(rule.Action, action) || !MatchResource(rule.Resource, resource) {
			return
		}
		if rule.Condition != nil && !evaluateCondition(rule.Condition, ctx) {
			return
		}
		c := candidate{
			rule:        rule,
			permit:      permit,
			specificity: actionSpecificity(rule.Action) + resourceSpecificity(rule.Resource),
		}
		if best == nil {
			best = &c
			return
		}
		if c.specificity > best.specificity {
			best = &c
			return
		}
		if c.specificity == best.specificity && !permit && best.permit {
			// Deny wins a tie against a permit at equal specificity.
			best = &c
		}
	}

	for _, r := range policy.Permits {
		consider(r, true)
	}
	for _, r := range policy.Denies {
		consider(r, false)
	}

	if best == nil {
		return EvalResult{Permitted: false, Reason: "no matching rule; default deny"}
	}
	rule := best.rule
	if best.permit {
		return EvalResult{Permitted: true, MatchedRule: &rule, Reason: "matched permit rule"}
	}
	return EvalResult{Permitted: false, MatchedRule: &rule, Reason: "matched deny rule"}
}

// evaluateCondition resolves cond.Variable against ctx via dot-path lookup
// and compares it to cond.Literal using cond.Op.
func evaluateCondition(cond *Condition, ctx map[string]interface{}) bool {
	value, ok := resolveContextPath(ctx, cond.Variable)
	if !ok {
		return false
	}
	return evalComparator(cond.Op, value, cond.Literal)
}

// resolveContextPath walks a dot-separated path through nested
// map[string]interface{} values.
func resolveContextPath(ctx map[string]interface{}, path string) (interface{}, bool) {
	if ctx == nil {
		return nil, false
	}
	segments := splitDotPath(path)
	var cur interface{} = ctx
	for _, seg := range segments {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		v, ok := m[seg]
		if !ok {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

func splitDotPath(path string) []string {
	var segs []string
	start := 0
	for i := 0; i < len(path); i++ {
		if path[i] == '.' {
			segs = append(segs, path[start:i])
			start = i + 1
		}
	}
	segs = append(segs, path[start:])
	return segs
}
