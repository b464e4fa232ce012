package sqlite

import (
	"fmt"
	"strings"
	"time"

	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// filterSchema describes which AIP-160 fields a listing accepts and how they
// map onto columns. Presence fields are booleans backed by a nullable
// timestamp column, e.g. started = true becomes started_at IS NOT NULL.
type filterSchema struct {
	declarations *filtering.Declarations
	columns      map[string]string
	presence     map[string]string
}

func meetingFilterSchema() (filterSchema, error) {
	declarations, err := filtering.NewDeclarations(
		filtering.DeclareStandardFunctions(),
		filtering.DeclareIdent("date", filtering.TypeTimestamp),
		filtering.DeclareIdent("started", filtering.TypeBool),
		filtering.DeclareIdent("ended", filtering.TypeBool),
		filtering.DeclareIdent("planned_minutes", filtering.TypeInt),
	)
	if err != nil {
		return filterSchema{}, fmt.Errorf("create meeting filter declarations: %w", err)
	}
	return filterSchema{
		declarations: declarations,
		columns: map[string]string{
			"date":            "meeting_date",
			"planned_minutes": "planned_minutes",
		},
		presence: map[string]string{
			"started": "started_at",
			"ended":   "ended_at",
		},
	}, nil
}

func impedimentFilterSchema() (filterSchema, error) {
	declarations, err := filtering.NewDeclarations(
		filtering.DeclareStandardFunctions(),
		filtering.DeclareIdent("state", filtering.TypeString),
		filtering.DeclareIdent("priority", filtering.TypeString),
		filtering.DeclareIdent("reporter_id", filtering.TypeString),
		filtering.DeclareIdent("resolver_id", filtering.TypeString),
		filtering.DeclareIdent("meeting_id", filtering.TypeString),
		filtering.DeclareIdent("reported_at", filtering.TypeTimestamp),
	)
	if err != nil {
		return filterSchema{}, fmt.Errorf("create impediment filter declarations: %w", err)
	}
	return filterSchema{
		declarations: declarations,
		columns: map[string]string{
			"state":       "state",
			"priority":    "priority",
			"reporter_id": "reporter_id",
			"resolver_id": "resolver_id",
			"meeting_id":  "meeting_id",
			"reported_at": "reported_at",
		},
	}, nil
}

// meetingFilterSQL translates an AIP-160 meeting filter into a SQL fragment
// with positional parameters. An empty filter yields an empty fragment.
func meetingFilterSQL(filterStr string) (string, []any, error) {
	schema, err := meetingFilterSchema()
	if err != nil {
		return "", nil, err
	}
	return translateFilter(filterStr, schema)
}

// impedimentFilterSQL translates an AIP-160 impediment filter into a SQL
// fragment with positional parameters.
func impedimentFilterSQL(filterStr string) (string, []any, error) {
	schema, err := impedimentFilterSchema()
	if err != nil {
		return "", nil, err
	}
	return translateFilter(filterStr, schema)
}

func translateFilter(filterStr string, schema filterSchema) (string, []any, error) {
	if strings.TrimSpace(filterStr) == "" {
		return "", nil, nil
	}
	parsed, err := filtering.ParseFilterString(filterStr, schema.declarations)
	if err != nil {
		return "", nil, fmt.Errorf("parse filter: %w", err)
	}
	return schema.translateExpr(parsed.CheckedExpr.Expr)
}

func (schema filterSchema) translateExpr(e *expr.Expr) (string, []any, error) {
	if e == nil {
		return "", nil, nil
	}
	switch kind := e.ExprKind.(type) {
	case *expr.Expr_CallExpr:
		return schema.translateCall(kind.CallExpr)
	default:
		return "", nil, fmt.Errorf("unsupported expression type: %T", kind)
	}
}

func (schema filterSchema) translateCall(call *expr.Expr_Call) (string, []any, error) {
	switch call.Function {
	case "_&&_", "AND":
		return schema.translateBinaryLogic(call.Args, "AND")
	case "_||_", "OR":
		return schema.translateBinaryLogic(call.Args, "OR")
	case "_==_", "=":
		return schema.translateComparison(call.Args, "=")
	case "_!=_", "!=":
		return schema.translateComparison(call.Args, "!=")
	case "_<_", "<":
		return schema.translateComparison(call.Args, "<")
	case "_<=_", "<=":
		return schema.translateComparison(call.Args, "<=")
	case "_>_", ">":
		return schema.translateComparison(call.Args, ">")
	case "_>=_", ">=":
		return schema.translateComparison(call.Args, ">=")
	default:
		return "", nil, fmt.Errorf("unsupported function: %s", call.Function)
	}
}

func (schema filterSchema) translateBinaryLogic(args []*expr.Expr, op string) (string, []any, error) {
	if len(args) != 2 {
		return "", nil, fmt.Errorf("%s requires 2 arguments", op)
	}
	leftClause, leftParams, err := schema.translateExpr(args[0])
	if err != nil {
		return "", nil, err
	}
	rightClause, rightParams, err := schema.translateExpr(args[1])
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("(%s %s %s)", leftClause, op, rightClause), append(leftParams, rightParams...), nil
}

func (schema filterSchema) translateComparison(args []*expr.Expr, op string) (string, []any, error) {
	if len(args) != 2 {
		return "", nil, fmt.Errorf("comparison requires 2 arguments")
	}
	field, err := extractFieldName(args[0])
	if err != nil {
		return "", nil, err
	}
	value, err := extractValue(args[1])
	if err != nil {
		return "", nil, err
	}

	if column, ok := schema.presence[field]; ok {
		present, ok := value.(bool)
		if !ok {
			return "", nil, fmt.Errorf("field %s requires a boolean value", field)
		}
		if op != "=" && op != "!=" {
			return "", nil, fmt.Errorf("field %s only supports equality", field)
		}
		if present == (op == "=") {
			return column + " IS NOT NULL", nil, nil
		}
		return column + " IS NULL", nil, nil
	}

	column, ok := schema.columns[field]
	if !ok {
		return "", nil, fmt.Errorf("unknown field: %s", field)
	}
	return fmt.Sprintf("%s %s ?", column, op), []any{value}, nil
}

func extractFieldName(e *expr.Expr) (string, error) {
	if e == nil {
		return "", fmt.Errorf("nil expression")
	}
	switch kind := e.ExprKind.(type) {
	case *expr.Expr_IdentExpr:
		return kind.IdentExpr.Name, nil
	default:
		return "", fmt.Errorf("expected identifier, got %T", kind)
	}
}

func extractValue(e *expr.Expr) (any, error) {
	if e == nil {
		return nil, fmt.Errorf("nil expression")
	}
	switch kind := e.ExprKind.(type) {
	case *expr.Expr_ConstExpr:
		return extractConstValue(kind.ConstExpr)
	case *expr.Expr_CallExpr:
		if kind.CallExpr.Function == "timestamp" && len(kind.CallExpr.Args) == 1 {
			return extractTimestampMillis(kind.CallExpr.Args[0])
		}
		return nil, fmt.Errorf("unsupported function in value position: %s", kind.CallExpr.Function)
	default:
		return nil, fmt.Errorf("expected constant or timestamp, got %T", kind)
	}
}

func extractConstValue(c *expr.Constant) (any, error) {
	if c == nil {
		return nil, fmt.Errorf("nil constant")
	}
	switch kind := c.ConstantKind.(type) {
	case *expr.Constant_StringValue:
		return kind.StringValue, nil
	case *expr.Constant_Int64Value:
		return kind.Int64Value, nil
	case *expr.Constant_Uint64Value:
		return kind.Uint64Value, nil
	case *expr.Constant_DoubleValue:
		return kind.DoubleValue, nil
	case *expr.Constant_BoolValue:
		return kind.BoolValue, nil
	default:
		return nil, fmt.Errorf("unsupported constant type: %T", kind)
	}
}

// extractTimestampMillis parses a timestamp("...") literal into the UnixMilli
// representation the tables store.
func extractTimestampMillis(e *expr.Expr) (int64, error) {
	if e == nil {
		return 0, fmt.Errorf("nil timestamp argument")
	}
	constExpr, ok := e.ExprKind.(*expr.Expr_ConstExpr)
	if !ok {
		return 0, fmt.Errorf("timestamp argument must be a constant string")
	}
	strVal, ok := constExpr.ConstExpr.ConstantKind.(*expr.Constant_StringValue)
	if !ok {
		return 0, fmt.Errorf("timestamp argument must be a string")
	}
	parsed, err := time.Parse(time.RFC3339, strVal.StringValue)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339Nano, strVal.StringValue)
		if err != nil {
			return 0, fmt.Errorf("invalid timestamp format: %s", strVal.StringValue)
		}
	}
	return parsed.UTC().UnixMilli(), nil
}
