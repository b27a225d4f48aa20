package filter

import (
	"fmt"
	"time"

	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"

	"github.com/louisbranch/radicex/event"
)

// Predicate reports whether an event matches a parsed filter.
type Predicate func(event.Event) bool

// ParsePredicate parses an AIP-160 filter expression into an in-memory
// predicate over journal entries. An empty filter matches everything.
func ParsePredicate(filterStr string) (Predicate, error) {
	parsed, err := parse(filterStr)
	if err != nil {
		return nil, err
	}
	if parsed == nil {
		return func(event.Event) bool { return true }, nil
	}
	return compileExpr(parsed)
}

func compileExpr(e *expr.Expr) (Predicate, error) {
	if e == nil {
		return nil, invalidFilter("nil expression")
	}

	switch kind := e.ExprKind.(type) {
	case *expr.Expr_CallExpr:
		return compileCall(kind.CallExpr)
	default:
		return nil, invalidFilter(fmt.Sprintf("unsupported expression type: %T", kind))
	}
}

func compileCall(call *expr.Expr_Call) (Predicate, error) {
	switch call.Function {
	case "_&&_", "AND":
		left, right, err := compileLogical(call.Args, "AND")
		if err != nil {
			return nil, err
		}
		return func(e event.Event) bool { return left(e) && right(e) }, nil
	case "_||_", "OR":
		left, right, err := compileLogical(call.Args, "OR")
		if err != nil {
			return nil, err
		}
		return func(e event.Event) bool { return left(e) || right(e) }, nil
	}
	op, ok := comparisonOps[call.Function]
	if !ok {
		return nil, invalidFilter(fmt.Sprintf("unsupported function: %s", call.Function))
	}
	return compileComparison(call.Args, op)
}

func compileLogical(args []*expr.Expr, op string) (Predicate, Predicate, error) {
	if len(args) != 2 {
		return nil, nil, invalidFilter(fmt.Sprintf("%s requires 2 arguments", op))
	}
	left, err := compileExpr(args[0])
	if err != nil {
		return nil, nil, err
	}
	right, err := compileExpr(args[1])
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func compileComparison(args []*expr.Expr, op string) (Predicate, error) {
	if len(args) != 2 {
		return nil, invalidFilter("comparison requires 2 arguments")
	}

	field, err := extractFieldName(args[0])
	if err != nil {
		return nil, err
	}
	value, err := extractValue(args[1])
	if err != nil {
		return nil, err
	}

	switch field {
	case "type":
		want, ok := value.(string)
		if !ok {
			return nil, invalidFilter("field type requires a string value")
		}
		return func(e event.Event) bool { return compareStrings(string(e.Type), want, op) }, nil
	case "ticket_id":
		want, err := intValue(value)
		if err != nil {
			return nil, invalidFilter("field ticket_id requires an integer value")
		}
		return func(e event.Event) bool { return compareInts(int64(e.TicketID), want, op) }, nil
	case "level":
		want, err := intValue(value)
		if err != nil {
			return nil, invalidFilter("field level requires an integer value")
		}
		return func(e event.Event) bool { return compareInts(int64(e.Level), want, op) }, nil
	case "ts":
		want, ok := value.(time.Time)
		if !ok {
			return nil, invalidFilter("field ts requires a timestamp value")
		}
		return func(e event.Event) bool { return compareTimes(e.Timestamp.UTC(), want, op) }, nil
	default:
		return nil, invalidFilter(fmt.Sprintf("unknown field: %s", field))
	}
}

func intValue(value any) (int64, error) {
	switch v := value.(type) {
	case int64:
		return v, nil
	case uint64:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("not an integer: %T", value)
	}
}

func compareStrings(got, want, op string) bool {
	switch op {
	case "=":
		return got == want
	case "!=":
		return got != want
	case "<":
		return got < want
	case "<=":
		return got <= want
	case ">":
		return got > want
	case ">=":
		return got >= want
	default:
		return false
	}
}

func compareInts(got, want int64, op string) bool {
	switch op {
	case "=":
		return got == want
	case "!=":
		return got != want
	case "<":
		return got < want
	case "<=":
		return got <= want
	case ">":
		return got > want
	case ">=":
		return got >= want
	default:
		return false
	}
}

func compareTimes(got, want time.Time, op string) bool {
	switch op {
	case "=":
		return got.Equal(want)
	case "!=":
		return !got.Equal(want)
	case "<":
		return got.Before(want)
	case "<=":
		return !got.After(want)
	case ">":
		return got.After(want)
	case ">=":
		return !got.Before(want)
	default:
		return false
	}
}
