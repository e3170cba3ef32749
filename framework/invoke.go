package framework

import (
	"fmt"
	"reflect"
	"runtime/debug"
)

var (
	errorType = reflect.TypeOf((*error)(nil)).Elem()
	tType     = reflect.TypeOf((*T)(nil))
)

type callShape struct {
	withInstance bool
	withT        bool
	returnsError bool
}

// Hook is a validated, invocable hook or test body.
type Hook struct {
	name  string
	fn    reflect.Value
	shape callShape
}

func (h Hook) Name() string { return h.name }

// PerTestHook validates fn as a per-test hook or body of c: it must accept a *C, optionally
// followed by a *T, and return nothing or an error.
func PerTestHook(c *Container, name string, fn interface{}) (Hook, error) {
	ft := reflect.TypeOf(fn)
	shape, ok := classifyInstanceFunc(ft, c.Type())
	if !ok {
		return Hook{}, fmt.Errorf("unsupported signature %s", describeType(ft))
	}
	return Hook{name: name, fn: reflect.ValueOf(fn), shape: shape}, nil
}

// StaticHook validates fn as a once-per-container hook: func() or func() error.
func StaticHook(name string, fn interface{}) (Hook, error) {
	ft := reflect.TypeOf(fn)
	shape, ok := classifyStaticFunc(ft)
	if !ok {
		return Hook{}, fmt.Errorf("unsupported signature %s", describeType(ft))
	}
	return Hook{name: name, fn: reflect.ValueOf(fn), shape: shape}, nil
}

func describeType(ft reflect.Type) string {
	if ft == nil {
		return "<nil>"
	}
	return ft.String()
}

func classifyInstanceFunc(ft, instanceType reflect.Type) (callShape, bool) {
	if ft == nil || ft.Kind() != reflect.Func || ft.IsVariadic() {
		return callShape{}, false
	}
	returnsError, ok := classifyResults(ft)
	if !ok {
		return callShape{}, false
	}
	switch {
	case ft.NumIn() == 1 && ft.In(0) == instanceType:
		return callShape{withInstance: true, returnsError: returnsError}, true
	case ft.NumIn() == 2 && ft.In(0) == instanceType && ft.In(1) == tType:
		return callShape{withInstance: true, withT: true, returnsError: returnsError}, true
	}
	return callShape{}, false
}

func classifyStaticFunc(ft reflect.Type) (callShape, bool) {
	if ft == nil || ft.Kind() != reflect.Func || ft.NumIn() != 0 {
		return callShape{}, false
	}
	returnsError, ok := classifyResults(ft)
	if !ok {
		return callShape{}, false
	}
	return callShape{returnsError: returnsError}, true
}

func classifyResults(ft reflect.Type) (returnsError bool, ok bool) {
	switch ft.NumOut() {
	case 0:
		return false, true
	case 1:
		return true, ft.Out(0) == errorType
	}
	return false, false
}

// isInstanceBound reports whether a function's first parameter is the container type,
// either as the pointer or as the value type of a method expression.
func isInstanceBound(ft, instanceType reflect.Type) bool {
	if ft == nil || ft.Kind() != reflect.Func || ft.NumIn() == 0 {
		return false
	}
	first := ft.In(0)
	return first == instanceType || (instanceType.Kind() == reflect.Ptr && first == instanceType.Elem())
}

// call invokes the hook and converts a returned error or a panic into an error. For
// static hooks instance and t are ignored.
func (h Hook) call(instance reflect.Value, t *T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recoveredError(r)
		}
	}()
	args := make([]reflect.Value, 0, 2)
	if h.shape.withInstance {
		args = append(args, instance)
	}
	if h.shape.withT {
		args = append(args, reflect.ValueOf(t))
	}
	out := h.fn.Call(args)
	if h.shape.returnsError && !out[0].IsNil() {
		return out[0].Interface().(error)
	}
	return nil
}

// recoveredError turns a recovered panic value into an error. A *T is the FailNow signal
// and resolves to the failures recorded on it.
func recoveredError(r interface{}) error {
	if t, ok := r.(*T); ok {
		return t.failure()
	}
	return &PanicError{Value: r, Stack: string(debug.Stack())}
}
