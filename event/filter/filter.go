// Package filter provides AIP-160 filter expression parsing for the event
// journal, with translation to SQL conditions and in-memory predicates.
package filter

import (
	"fmt"
	"strings"
	"time"

	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"

	apperrors "github.com/louisbranch/radicex/errors"
)

// EventDeclarations returns the field declarations for event filtering.
func EventDeclarations() (*filtering.Declarations, error) {
	return filtering.NewDeclarations(
		filtering.DeclareStandardFunctions(),
		filtering.DeclareIdent("type", filtering.TypeString),
		filtering.DeclareIdent("ticket_id", filtering.TypeInt),
		filtering.DeclareIdent("level", filtering.TypeInt),
		filtering.DeclareIdent("ts", filtering.TypeTimestamp),
	)
}

// SQLCondition represents a SQL WHERE clause fragment with parameters.
type SQLCondition struct {
	// Clause is the SQL WHERE clause (e.g., "event_type = ?").
	Clause string
	// Params are the positional parameters for the clause.
	Params []any
}

// fieldMapping maps filter field names to SQL column names.
var fieldMapping = map[string]string{
	"type":      "event_type",
	"ticket_id": "ticket_id",
	"level":     "level",
	"ts":        "timestamp",
}

// comparisonOps maps CEL call functions to SQL comparison operators.
var comparisonOps = map[string]string{
	"_==_": "=",
	"=":    "=",
	"_!=_": "!=",
	"!=":   "!=",
	"_<_":  "<",
	"<":    "<",
	"_<=_": "<=",
	"<=":   "<=",
	"_>_":  ">",
	">":    ">",
	"_>=_": ">=",
	">=":   ">=",
}

// ParseEventFilter parses an AIP-160 filter expression and returns a SQL
// condition. Returns an empty condition for an empty filter string.
func ParseEventFilter(filterStr string) (SQLCondition, error) {
	parsed, err := parse(filterStr)
	if err != nil {
		return SQLCondition{}, err
	}
	if parsed == nil {
		return SQLCondition{}, nil
	}
	return translateExpr(parsed)
}

// parse checks the filter string against the event declarations and returns
// the checked expression, or nil for an empty filter.
func parse(filterStr string) (*expr.Expr, error) {
	if strings.TrimSpace(filterStr) == "" {
		return nil, nil
	}

	decls, err := EventDeclarations()
	if err != nil {
		return nil, fmt.Errorf("create declarations: %w", err)
	}

	parsed, err := filtering.ParseFilterString(filterStr, decls)
	if err != nil {
		return nil, apperrors.WrapWithMetadata(apperrors.CodeFilterInvalid,
			"parse filter", err,
			map[string]string{"Filter": filterStr})
	}
	return parsed.CheckedExpr.Expr, nil
}

// translateExpr translates a CEL expression to a SQL condition.
func translateExpr(e *expr.Expr) (SQLCondition, error) {
	if e == nil {
		return SQLCondition{}, nil
	}

	switch kind := e.ExprKind.(type) {
	case *expr.Expr_CallExpr:
		return translateCall(kind.CallExpr)
	default:
		return SQLCondition{}, invalidFilter(fmt.Sprintf("unsupported expression type: %T", kind))
	}
}

// translateCall translates a CEL function call to a SQL condition.
func translateCall(call *expr.Expr_Call) (SQLCondition, error) {
	switch call.Function {
	case "_&&_", "AND":
		return translateLogical(call.Args, "AND")
	case "_||_", "OR":
		return translateLogical(call.Args, "OR")
	}
	op, ok := comparisonOps[call.Function]
	if !ok {
		return SQLCondition{}, invalidFilter(fmt.Sprintf("unsupported function: %s", call.Function))
	}
	return translateComparison(call.Args, op)
}

func translateLogical(args []*expr.Expr, op string) (SQLCondition, error) {
	if len(args) != 2 {
		return SQLCondition{}, invalidFilter(fmt.Sprintf("%s requires 2 arguments", op))
	}

	left, err := translateExpr(args[0])
	if err != nil {
		return SQLCondition{}, err
	}
	right, err := translateExpr(args[1])
	if err != nil {
		return SQLCondition{}, err
	}

	return SQLCondition{
		Clause: fmt.Sprintf("(%s %s %s)", left.Clause, op, right.Clause),
		Params: append(left.Params, right.Params...),
	}, nil
}

func translateComparison(args []*expr.Expr, op string) (SQLCondition, error) {
	if len(args) != 2 {
		return SQLCondition{}, invalidFilter("comparison requires 2 arguments")
	}

	field, err := extractFieldName(args[0])
	if err != nil {
		return SQLCondition{}, err
	}
	column, ok := fieldMapping[field]
	if !ok {
		return SQLCondition{}, invalidFilter(fmt.Sprintf("unknown field: %s", field))
	}
	value, err := extractValue(args[1])
	if err != nil {
		return SQLCondition{}, err
	}
	// Timestamps are stored as integer milliseconds, so integer comparison
	// in SQL stays chronological.
	if t, ok := value.(time.Time); ok {
		value = t.UTC().UnixMilli()
	}

	return SQLCondition{
		Clause: fmt.Sprintf("%s %s ?", column, op),
		Params: []any{value},
	}, nil
}

func extractFieldName(e *expr.Expr) (string, error) {
	if e == nil {
		return "", invalidFilter("nil expression")
	}

	switch kind := e.ExprKind.(type) {
	case *expr.Expr_IdentExpr:
		return kind.IdentExpr.Name, nil
	default:
		return "", invalidFilter(fmt.Sprintf("expected identifier, got %T", kind))
	}
}

func extractValue(e *expr.Expr) (any, error) {
	if e == nil {
		return nil, invalidFilter("nil expression")
	}

	switch kind := e.ExprKind.(type) {
	case *expr.Expr_ConstExpr:
		return extractConstValue(kind.ConstExpr)
	case *expr.Expr_CallExpr:
		// Handle timestamp("...") function calls.
		if kind.CallExpr.Function == "timestamp" && len(kind.CallExpr.Args) == 1 {
			return extractTimestampValue(kind.CallExpr.Args[0])
		}
		return nil, invalidFilter(fmt.Sprintf("unsupported function in value position: %s", kind.CallExpr.Function))
	default:
		return nil, invalidFilter(fmt.Sprintf("expected constant or timestamp, got %T", kind))
	}
}

func extractConstValue(c *expr.Constant) (any, error) {
	if c == nil {
		return nil, invalidFilter("nil constant")
	}

	switch kind := c.ConstantKind.(type) {
	case *expr.Constant_StringValue:
		return kind.StringValue, nil
	case *expr.Constant_Int64Value:
		return kind.Int64Value, nil
	case *expr.Constant_Uint64Value:
		return kind.Uint64Value, nil
	case *expr.Constant_BoolValue:
		return kind.BoolValue, nil
	default:
		return nil, invalidFilter(fmt.Sprintf("unsupported constant type: %T", kind))
	}
}

// extractTimestampValue parses the timestamp() argument into a UTC time.
func extractTimestampValue(e *expr.Expr) (time.Time, error) {
	if e == nil {
		return time.Time{}, invalidFilter("nil timestamp argument")
	}

	switch kind := e.ExprKind.(type) {
	case *expr.Expr_ConstExpr:
		strVal, ok := kind.ConstExpr.ConstantKind.(*expr.Constant_StringValue)
		if !ok {
			return time.Time{}, invalidFilter("timestamp argument must be a string")
		}
		t, err := time.Parse(time.RFC3339, strVal.StringValue)
		if err != nil {
			t, err = time.Parse(time.RFC3339Nano, strVal.StringValue)
			if err != nil {
				return time.Time{}, invalidFilter(fmt.Sprintf("invalid timestamp format: %s", strVal.StringValue))
			}
		}
		return t.UTC(), nil
	default:
		return time.Time{}, invalidFilter("timestamp argument must be a constant string")
	}
}

func invalidFilter(message string) error {
	return apperrors.New(apperrors.CodeFilterInvalid, message)
}
