package ccl

import (
	"sync"

	"golang.org/x/time/rate"
)

// LiveRateLimiter enforces a policy's limit rules against a live stream of
// calls using one token-bucket limiter per matched action, grounded in the
// same per-key *rate.Limiter map pattern the protocol's teacher codebase
// uses for its own request throttling. Unlike CheckRateLimit, which compares
// a caller-supplied observed count against a window, LiveRateLimiter tracks
// the window itself: Allow refills tokens continuously at the rule's
// configured rate and consumes one per call.
type LiveRateLimiter struct {
	mu       sync.Mutex
	policy   *Policy
	limiters map[string]*rate.Limiter
}

// NewLiveRateLimiter builds a limiter over policy's limit rules. It is safe
// for concurrent use.
func NewLiveRateLimiter(policy *Policy) *LiveRateLimiter {
	return &LiveRateLimiter{policy: policy, limiters: make(map[string]*rate.Limiter)}
}

// Allow reports whether action may proceed now, consuming one token from the
// matching limit rule's bucket on success. An action with no matching limit
// rule is always allowed.
func (l *LiveRateLimiter) Allow(action string) bool {
	limiter := l.limiterFor(action)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (l *LiveRateLimiter) limiterFor(action string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	var matched *LimitRule
	for i := range l.policy.Limits {
		r := l.policy.Limits[i]
		if !MatchAction(r.Action, action) {
			continue
		}
		if matched == nil || actionSpecificity(r.Action) > actionSpecificity(matched.Action) {
			matched = &l.policy.Limits[i]
		}
	}
	if matched == nil {
		return nil
	}

	if limiter, ok := l.limiters[matched.Action]; ok {
		return limiter
	}
	burst := matched.Count
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rateOf(*matched)), burst)
	l.limiters[matched.Action] = limiter
	return limiter
}
