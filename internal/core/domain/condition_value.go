package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/SscSPs/shopdesk_backend/internal/apperrors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ValueKind tags the variant held by a ConditionValue.
type ValueKind string

const (
	KindNumber ValueKind = "number"
	KindString ValueKind = "string"
	KindBool   ValueKind = "boolean"
)

// ConditionValue is a number, string or boolean. Numbers are held as decimals so that
// money amounts compare exactly.
type ConditionValue struct {
	kind ValueKind
	num  decimal.Decimal
	str  string
	b    bool
}

func NumberValue(d decimal.Decimal) ConditionValue {
	return ConditionValue{kind: KindNumber, num: d}
}

func IntValue(i int64) ConditionValue {
	return NumberValue(decimal.NewFromInt(i))
}

func StringValue(s string) ConditionValue {
	return ConditionValue{kind: KindString, str: s}
}

func BoolValue(b bool) ConditionValue {
	return ConditionValue{kind: KindBool, b: b}
}

// ValueOf converts an entity field value into a ConditionValue.
func ValueOf(v any) (ConditionValue, error) {
	switch x := v.(type) {
	case ConditionValue:
		return x, nil
	case decimal.Decimal:
		return NumberValue(x), nil
	case *decimal.Decimal:
		if x == nil {
			break
		}
		return NumberValue(*x), nil
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		if err != nil {
			return ConditionValue{}, fmt.Errorf("%w: %q is not a number", apperrors.ErrConditionEvaluation, x)
		}
		return NumberValue(d), nil
	case int:
		return IntValue(int64(x)), nil
	case int8:
		return IntValue(int64(x)), nil
	case int16:
		return IntValue(int64(x)), nil
	case int32:
		return IntValue(int64(x)), nil
	case int64:
		return IntValue(x), nil
	case uint:
		return uintValue(uint64(x)), nil
	case uint8:
		return IntValue(int64(x)), nil
	case uint16:
		return IntValue(int64(x)), nil
	case uint32:
		return IntValue(int64(x)), nil
	case uint64:
		return uintValue(x), nil
	case float32:
		return floatValue(float64(x))
	case float64:
		return floatValue(x)
	case string:
		return StringValue(x), nil
	case bool:
		return BoolValue(x), nil
	}
	return ConditionValue{}, fmt.Errorf("%w: unsupported value type %T", apperrors.ErrConditionEvaluation, v)
}

func uintValue(u uint64) ConditionValue {
	return NumberValue(decimal.RequireFromString(strconv.FormatUint(u, 10)))
}

func floatValue(f float64) (ConditionValue, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ConditionValue{}, fmt.Errorf("%w: %v is not a comparable number", apperrors.ErrConditionEvaluation, f)
	}
	return NumberValue(decimal.NewFromFloat(f)), nil
}

func (v ConditionValue) Kind() ValueKind { return v.kind }

// IsZero reports whether no variant has been set.
func (v ConditionValue) IsZero() bool { return v.kind == "" }

func (v ConditionValue) Number() (decimal.Decimal, bool) { return v.num, v.kind == KindNumber }

func (v ConditionValue) Text() (string, bool) { return v.str, v.kind == KindString }

func (v ConditionValue) Bool() (bool, bool) { return v.b, v.kind == KindBool }

func (v ConditionValue) String() string {
	switch v.kind {
	case KindNumber:
		return v.num.String()
	case KindString:
		return strconv.Quote(v.str)
	case KindBool:
		return strconv.FormatBool(v.b)
	}
	return "<unset>"
}

// Equal is structural equality: same kind and same value.
func (v ConditionValue) Equal(other ConditionValue) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num.Equal(other.num)
	case KindString:
		return v.str == other.str
	case KindBool:
		return v.b == other.b
	}
	return true
}

func (v ConditionValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return []byte(v.num.String()), nil
	case KindString:
		return json.Marshal(v.str)
	case KindBool:
		return json.Marshal(v.b)
	}
	return []byte("null"), nil
}

func (v *ConditionValue) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if raw == nil {
		*v = ConditionValue{}
		return nil
	}
	parsed, err := ValueOf(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v ConditionValue) MarshalYAML() (any, error) {
	switch v.kind {
	case KindNumber:
		tag := "!!float"
		if v.num.IsInteger() {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.num.String()}, nil
	case KindString:
		return v.str, nil
	case KindBool:
		return v.b, nil
	}
	return nil, nil
}

func (v *ConditionValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("condition value must be a scalar, got yaml kind %d at line %d", node.Kind, node.Line)
	}
	switch node.ShortTag() {
	case "!!int", "!!float":
		d, err := decimal.NewFromString(node.Value)
		if err != nil {
			return fmt.Errorf("condition value %q at line %d: %w", node.Value, node.Line, err)
		}
		*v = NumberValue(d)
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return err
		}
		*v = BoolValue(b)
	case "!!null":
		*v = ConditionValue{}
	default:
		*v = StringValue(node.Value)
	}
	return nil
}
