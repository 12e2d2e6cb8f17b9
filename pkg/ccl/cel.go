package ccl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/ext"
)

// conditionEvaluator compiles and caches CEL programs for the fixed set of
// comparator expressions a Condition can require, following the same
// compile-once-cache pattern the policy engine uses for its own CEL rules.
type conditionEvaluator struct {
	env      *cel.Env
	mu       sync.RWMutex
	programs map[Comparator]cel.Program
}

var sharedEvaluator = newConditionEvaluator()

func newConditionEvaluator() *conditionEvaluator {
	env, err := cel.NewEnv(
		cel.Variable("lhs", cel.DynType),
		cel.Variable("rhs", cel.DynType),
		ext.Strings(),
	)
	if err != nil {
		panic(fmt.Sprintf("ccl: failed to build CEL environment: %v", err))
	}
	return &conditionEvaluator{env: env, programs: make(map[Comparator]cel.Program)}
}

var comparatorExpr = map[Comparator]string{
	OpEq:       "lhs == rhs",
	OpNeq:      "lhs != rhs",
	OpLt:       "lhs < rhs",
	OpLte:      "lhs <= rhs",
	OpGt:       "lhs > rhs",
	OpGte:      "lhs >= rhs",
	OpIn:       "lhs in rhs",
	OpContains: "lhs.contains(rhs)",
	OpMatches:  "lhs.matches(rhs)",
}

func (e *conditionEvaluator) program(op Comparator) (cel.Program, error) {
	e.mu.RLock()
	prg, ok := e.programs[op]
	e.mu.RUnlock()
	if ok {
		return prg, nil
	}

	expr, ok := comparatorExpr[op]
	if !ok {
		return nil, fmt.Errorf("ccl: unsupported comparator %q", op)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if prg, ok := e.programs[op]; ok {
		return prg, nil
	}

	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("ccl: compiling comparator %q: %w", op, issues.Err())
	}
	prg, err := e.env.Program(ast, cel.InterruptCheckFrequency(100), cel.CostLimit(10000))
	if err != nil {
		return nil, fmt.Errorf("ccl: building program for comparator %q: %w", op, err)
	}
	e.programs[op] = prg
	return prg, nil
}

// evalComparator evaluates lhs <op> rhs. Type mismatches between operands or
// an unsupported comparator are not protocol errors: per the condition
// evaluation rules, they simply make the condition false.
func evalComparator(op Comparator, lhs, rhs interface{}) bool {
	prg, err := sharedEvaluator.program(op)
	if err != nil {
		return false
	}
	out, _, err := prg.Eval(map[string]interface{}{"lhs": lhs, "rhs": rhs})
	if err != nil {
		return false
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false
	}
	return result
}
