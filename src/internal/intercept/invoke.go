// FILE: autolog/src/internal/intercept/invoke.go
package intercept

import (
	"context"
	"fmt"
	"reflect"

	"autolog/src/internal/decision"
)

var (
	ctxType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errType = reflect.TypeOf((*error)(nil)).Elem()
)

// Invoke calls a method on svc by name through reflection, logging it
// per the cached decision. The method may optionally take a leading
// context.Context and optionally return a trailing error; all other
// results are returned in order. Reflection names arguments
// positionally (arg0, arg1, ...), so parameter mask patterns should use
// those names or property patterns for dynamic call sites.
func (i *Interceptor) Invoke(ctx context.Context, svc any, method string, args ...any) ([]any, error) {
	sv := reflect.ValueOf(svc)
	mv := sv.MethodByName(method)
	if !mv.IsValid() {
		return nil, fmt.Errorf("method %s not found on %T", method, svc)
	}

	mt := mv.Type()
	takesCtx := mt.NumIn() > 0 && mt.In(0) == ctxType

	want := mt.NumIn()
	if takesCtx {
		want--
	}
	if len(args) != want && !mt.IsVariadic() {
		return nil, fmt.Errorf("method %s expects %d arguments, got %d", method, want, len(args))
	}

	in := make([]reflect.Value, 0, mt.NumIn())
	if takesCtx {
		in = append(in, reflect.ValueOf(ctx))
	}
	for idx, arg := range args {
		if arg == nil {
			pos := idx
			if takesCtx {
				pos++
			}
			in = append(in, reflect.Zero(mt.In(pos)))
			continue
		}
		in = append(in, reflect.ValueOf(arg))
	}

	typeName := decision.TypeName(reflect.TypeOf(svc))
	d := i.decisions.Get(typeName, method)
	if !d.Enabled() {
		return splitResults(mv.Call(in))
	}

	named := make([]Arg, len(args))
	for idx, arg := range args {
		named[idx] = Arg{Name: fmt.Sprintf("arg%d", idx), Value: arg}
	}

	entry := i.begin(ctx, typeName, method, d, named)
	defer func() {
		if r := recover(); r != nil {
			i.finishPanic(entry, r)
			panic(r)
		}
	}()

	outputs, err := splitResults(mv.Call(in))

	switch len(outputs) {
	case 0:
		i.finish(entry, d, nil, false, err)
	case 1:
		i.finish(entry, d, outputs[0], true, err)
	default:
		i.finish(entry, d, outputs, true, err)
	}

	return outputs, err
}

// splitResults separates a trailing error from the remaining results.
func splitResults(results []reflect.Value) ([]any, error) {
	var err error
	n := len(results)

	if n > 0 && results[n-1].Type().Implements(errType) {
		if !results[n-1].IsNil() {
			err = results[n-1].Interface().(error)
		}
		n--
	}

	if n == 0 {
		return nil, err
	}

	outputs := make([]any, n)
	for idx := 0; idx < n; idx++ {
		outputs[idx] = results[idx].Interface()
	}
	return outputs, err
}
