// Package builtins implements SimpleScript's standard library of
// globally-available functions: PRINT, PRINT_RET, INPUT, INPUT_INT,
// CLEAR, the IS_* type predicates, APPEND, POP, EXTEND, LEN, and TYPE.
// Register wires them all into a fresh Environment.
package builtins

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/LaputanMachines/simplescript/internal/runtime"
)

// Register defines every builtin function in env.
func Register(env *runtime.Environment) {
	for _, b := range all() {
		env.Define(b.Name, b)
	}
}

func all() []*runtime.BuiltinFunction {
	return []*runtime.BuiltinFunction{
		runtime.NewBuiltinFunction("PRINT", []string{"value"}, biPrint),
		runtime.NewBuiltinFunction("PRINT_RET", []string{"value"}, biPrintRet),
		runtime.NewBuiltinFunction("INPUT", nil, biInput),
		runtime.NewBuiltinFunction("INPUT_INT", nil, biInputInt),
		runtime.NewBuiltinFunction("CLEAR", nil, biClear),
		runtime.NewBuiltinFunction("IS_NUMBER", []string{"value"}, biIsNumber),
		runtime.NewBuiltinFunction("IS_STRING", []string{"value"}, biIsString),
		runtime.NewBuiltinFunction("IS_LIST", []string{"value"}, biIsList),
		runtime.NewBuiltinFunction("IS_FUNCTION", []string{"value"}, biIsFunction),
		runtime.NewBuiltinFunction("APPEND", []string{"list", "value"}, biAppend),
		runtime.NewBuiltinFunction("POP", []string{"list", "index"}, biPop),
		runtime.NewBuiltinFunction("EXTEND", []string{"listA", "listB"}, biExtend),
		runtime.NewBuiltinFunction("LEN", []string{"value"}, biLen),
		runtime.NewBuiltinFunction("TYPE", []string{"value"}, biType),
	}
}

func biPrint(ctx *runtime.Context, args []runtime.Value) (runtime.Value, error) {
	fmt.Fprintln(ctx.Stdout, args[0].String())
	return runtime.NewInt(0), nil
}

func biPrintRet(ctx *runtime.Context, args []runtime.Value) (runtime.Value, error) {
	return runtime.NewString(args[0].String()), nil
}

func biInput(ctx *runtime.Context, args []runtime.Value) (runtime.Value, error) {
	line, err := readLine(ctx)
	if err != nil {
		return nil, err
	}
	return runtime.NewString(line), nil
}

func biInputInt(ctx *runtime.Context, args []runtime.Value) (runtime.Value, error) {
	for {
		line, err := readLine(ctx)
		if err != nil {
			return nil, err
		}
		n, convErr := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if convErr == nil {
			return runtime.NewInt(n), nil
		}
		fmt.Fprintln(ctx.Stdout, "Invalid number. Try again!")
	}
}

func readLine(ctx *runtime.Context) (string, error) {
	reader := bufio.NewReader(ctx.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func biClear(ctx *runtime.Context, args []runtime.Value) (runtime.Value, error) {
	fmt.Fprint(ctx.Stdout, "\033[H\033[2J")
	return runtime.NewInt(0), nil
}

func biIsNumber(ctx *runtime.Context, args []runtime.Value) (runtime.Value, error) {
	_, ok := args[0].(*runtime.Number)
	return boolNum(ok), nil
}

func biIsString(ctx *runtime.Context, args []runtime.Value) (runtime.Value, error) {
	_, ok := args[0].(*runtime.String)
	return boolNum(ok), nil
}

func biIsList(ctx *runtime.Context, args []runtime.Value) (runtime.Value, error) {
	_, ok := args[0].(*runtime.List)
	return boolNum(ok), nil
}

func biIsFunction(ctx *runtime.Context, args []runtime.Value) (runtime.Value, error) {
	switch args[0].(type) {
	case *runtime.Function, *runtime.BuiltinFunction:
		return boolNum(true), nil
	default:
		return boolNum(false), nil
	}
}

func boolNum(b bool) runtime.Value {
	if b {
		return runtime.NewInt(1)
	}
	return runtime.NewInt(0)
}

func biAppend(ctx *runtime.Context, args []runtime.Value) (runtime.Value, error) {
	list, ok := args[0].(*runtime.List)
	if !ok {
		return nil, fmt.Errorf("APPEND: first argument must be a List, got %s", args[0].Type())
	}
	list.Elements = append(list.Elements, args[1])
	return runtime.NewInt(0), nil
}

func biPop(ctx *runtime.Context, args []runtime.Value) (runtime.Value, error) {
	list, ok := args[0].(*runtime.List)
	if !ok {
		return nil, fmt.Errorf("POP: first argument must be a List, got %s", args[0].Type())
	}
	idxVal, ok := args[1].(*runtime.Number)
	if !ok {
		return nil, fmt.Errorf("POP: index must be a Number, got %s", args[1].Type())
	}
	idx := int(idxVal.Val)
	if idx < 0 || idx >= len(list.Elements) {
		return nil, fmt.Errorf("POP: index %d out of bounds for list of length %d", idx, len(list.Elements))
	}
	popped := list.Elements[idx]
	list.Elements = append(list.Elements[:idx], list.Elements[idx+1:]...)
	return popped, nil
}

func biExtend(ctx *runtime.Context, args []runtime.Value) (runtime.Value, error) {
	listA, ok := args[0].(*runtime.List)
	if !ok {
		return nil, fmt.Errorf("EXTEND: first argument must be a List, got %s", args[0].Type())
	}
	listB, ok := args[1].(*runtime.List)
	if !ok {
		return nil, fmt.Errorf("EXTEND: second argument must be a List, got %s", args[1].Type())
	}
	listA.Elements = append(listA.Elements, listB.Elements...)
	return runtime.NewInt(0), nil
}

func biLen(ctx *runtime.Context, args []runtime.Value) (runtime.Value, error) {
	switch v := args[0].(type) {
	case *runtime.List:
		return runtime.NewInt(int64(len(v.Elements))), nil
	case *runtime.String:
		return runtime.NewInt(int64(len([]rune(v.Val)))), nil
	default:
		return nil, fmt.Errorf("LEN: argument must be a List or String, got %s", v.Type())
	}
}

func biType(ctx *runtime.Context, args []runtime.Value) (runtime.Value, error) {
	return runtime.NewString(args[0].Type()), nil
}
