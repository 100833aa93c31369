package quickjs

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/godotjs/javascript/internal/codegen/pattern"
	"github.com/godotjs/javascript/internal/codegen/schema"
)

// jsOperators maps the native operator symbols that can be bound to the
// key used in the engine's operator table.
var jsOperators = map[string]string{
	"operator+":  "+",
	"operator-":  "-",
	"operator*":  "*",
	"operator/":  "/",
	"operator==": "==",
	"operator<":  "<",
}

// UnsupportedOperatorError reports an operator overload that cannot be
// expressed in the generated operator table.
type UnsupportedOperatorError struct {
	Class    string
	Operator string
	Reason   string
}

func (e *UnsupportedOperatorError) Error() string {
	return fmt.Sprintf("unsupported operator %s.%s: %s", e.Class, e.Operator, e.Reason)
}

var (
	operatorsHead = pattern.MustCompile("operators_head", `
	Vector<JSValue> operators;
	JSValue base_operators = JS_NewObject(octx);
`)

	operatorsTail = pattern.MustCompile("operators_tail", `
	operators.push_back(base_operators);
	binder->get_builtin_binder().get_cross_type_operators(${type}, operators);
	binder->get_builtin_binder().register_operators(${type}, operators);
`, "type")

	operatorBinding = pattern.MustCompile("operator", `
	JS_SetPropertyStr(octx, base_operators, "${js_op}",
		JS_NewCFunction(octx, [](JSContext *ctx, JSValueConst this_val, int argc, JSValueConst *argv) {
			JavaScriptGCHandler *bind = BINDING_DATA_FROM_JS(ctx, argv[0]);
			${class} *ptr = bind->get${class}();${target_declare}
			${call}
			return ${return};
		},
		"${name}",
		${argc})
	);
`, "js_op", "class", "target_declare", "call", "return", "name", "argc")

	targetDeclare = pattern.MustCompile("operator_target", `
#ifdef DEBUG_METHODS_ENABLED
			ERR_FAIL_COND_V(!QuickJSBinder::validate_type(ctx, ${type}, argv[1]), (JS_ThrowTypeError(ctx, "${target_class} expected for ${class}.${operator}")));
#endif
			JavaScriptGCHandler *bind1 = BINDING_DATA_FROM_JS(ctx, argv[1]);
			${target_class} *target = bind1->get${target_class}();`,
		"type", "target_class", "class", "operator")

	operatorCall = pattern.MustCompile("operator_call", "${prefix}ptr->${op}(${args});", "prefix", "op", "args")
)

// operatorKey returns the operator table key for op. Only unary negation and
// binary overloads whose operand is the class itself are representable;
// mixed-type overloads are bound by hand through get_cross_type_operators.
func operatorKey(cls schema.ClassSpec, op schema.OperatorSpec) (string, error) {
	unsupported := func(reason string) error {
		return &UnsupportedOperatorError{Class: cls.Name, Operator: op.Name, Reason: reason}
	}
	symbol, ok := jsOperators[op.NativeMethod]
	if !ok {
		return "", unsupported(fmt.Sprintf("native method %q is not a bindable operator", op.NativeMethod))
	}
	switch len(op.Arguments) {
	case 0:
		if op.NativeMethod != "operator-" {
			return "", unsupported(fmt.Sprintf("unary %s has no script equivalent", op.NativeMethod))
		}
		return "neg", nil
	case 1:
		if t := op.Arguments[0].Type; t != cls.Name {
			return "", unsupported(fmt.Sprintf("operand type %s differs from %s", t, cls.Name))
		}
		return symbol, nil
	default:
		return "", unsupported(fmt.Sprintf("%d operands", len(op.Arguments)))
	}
}

// generateOperators emits the operator table of cls. With allowUnknown set an
// operator that cannot be bound is logged and skipped instead of failing.
func generateOperators(logger *slog.Logger, cls schema.ClassSpec, allowUnknown bool) (string, error) {
	classTag, err := Types.Tag(cls.Name)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(operatorsHead.MustExpand(nil))

	bound := map[string]string{}
	for _, op := range cls.Operators {
		key, err := operatorKey(cls, op)
		if err == nil {
			if prev, dup := bound[key]; dup {
				err = &UnsupportedOperatorError{
					Class:    cls.Name,
					Operator: op.Name,
					Reason:   fmt.Sprintf("operator key %q already bound by %s", key, prev),
				}
			}
		}
		if err != nil {
			if !allowUnknown {
				return "", err
			}
			logger.Warn("Skipping operator", "class", cls.Name, "operator", op.Name, "error", err)
			continue
		}
		bound[key] = op.Name

		code, err := operatorDefinition(cls, op, key)
		if err != nil {
			return "", withWhere(err, cls.Name+"."+op.Name)
		}
		b.WriteString(code)
	}

	b.WriteString(operatorsTail.MustExpand(pattern.Values{"type": classTag}))
	return b.String(), nil
}

func operatorDefinition(cls schema.ClassSpec, op schema.OperatorSpec, key string) (string, error) {
	var target, args string
	argc := "1"
	if len(op.Arguments) == 1 {
		argType := op.Arguments[0].Type
		tag, err := Types.Tag(argType)
		if err != nil {
			return "", err
		}
		target = targetDeclare.MustExpand(pattern.Values{
			"type":         tag,
			"target_class": argType,
			"class":        cls.Name,
			"operator":     op.NativeMethod,
		})
		args = "*target"
		argc = "2"
	}

	prefix, err := callPrefix(op.Return)
	if err != nil {
		return "", err
	}
	ret, err := returnValue(op.Return)
	if err != nil {
		return "", err
	}

	return operatorBinding.MustExpand(pattern.Values{
		"js_op":          key,
		"class":          cls.Name,
		"target_declare": target,
		"call":           operatorCall.MustExpand(pattern.Values{"prefix": prefix, "op": op.NativeMethod, "args": args}),
		"return":         ret,
		"name":           op.Name,
		"argc":           argc,
	}), nil
}
