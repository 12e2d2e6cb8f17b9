package ccl

import "fmt"

// RateLimitResult is the outcome of checking an observed count against a
// policy's limit rules for an action.
type RateLimitResult struct {
	Exceeded bool
	Limit    *LimitRule
	Reason   string
}

// CheckRateLimit reports whether observedCount occurrences of action within
// the matching limit rule's period would exceed that rule's allowance. The
// caller is responsible for tracking the sliding or fixed window the count
// was observed over; this function only compares count to the configured
// ceiling.
func CheckRateLimit(policy *Policy, action string, observedCount int) RateLimitResult {
	var matched *LimitRule
	for i := range policy.Limits {
		l := policy.Limits[i]
		if !MatchAction(l.Action, action) {
			continue
		}
		if matched == nil || actionSpecificity(l.Action) > actionSpecificity(matched.Action) {
			matched = &policy.Limits[i]
		}
	}
	if matched == nil {
		return RateLimitResult{Exceeded: false, Reason: "no limit rule applies"}
	}
	if observedCount > matched.Count {
		return RateLimitResult{
			Exceeded: true,
			Limit:    matched,
			Reason:   fmt.Sprintf("%d exceeds limit of %d per %d %s", observedCount, matched.Count, matched.Period, matched.Unit),
		}
	}
	return RateLimitResult{Exceeded: false, Limit: matched}
}
