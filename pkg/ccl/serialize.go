package ccl

import (
	"fmt"
	"strconv"
	"strings"
)

// Serialize reproduces a CCL source text from policy's statements in their
// original parse order, so that Parse(Serialize(p)) is semantically
// equivalent to p.
func Serialize(policy *Policy) string {
	var b strings.Builder
	for i, stmt := range policy.Statements {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(serializeStatement(stmt))
	}
	return b.String()
}

func serializeStatement(stmt Statement) string {
	switch stmt.Kind {
	case StatementPermit:
		return "permit " + serializeRule(stmt.Rule)
	case StatementDeny:
		return "deny " + serializeRule(stmt.Rule)
	case StatementLimit:
		return serializeLimit(stmt.Limit)
	default:
		return ""
	}
}

func serializeRule(r Rule) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s on '%s'", r.Action, r.Resource)
	if r.Condition != nil {
		fmt.Fprintf(&b, " when %s %s %s", r.Condition.Variable, r.Condition.Op, literalText(r.Condition.Literal))
	}
	if r.Severity != "" {
		fmt.Fprintf(&b, " severity %s", r.Severity)
	}
	return b.String()
}

func serializeLimit(l LimitRule) string {
	s := fmt.Sprintf("limit %s %d per %d %s", l.Action, l.Count, l.Period, l.Unit)
	if l.Severity != "" {
		s += " severity " + string(l.Severity)
	}
	return s
}

// literalText renders a parsed condition literal back to CCL source syntax.
func literalText(v interface{}) string {
	switch t := v.(type) {
	case string:
		return "'" + t + "'"
	case bool:
		return strconv.FormatBool(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case []interface{}:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = literalText(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprintf("%v", t)
	}
}
