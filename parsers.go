// Copyright 2021 Jonathan Amsterdam.

package clitree

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Parsers for option and argument values.

// Common parsers.
var (
	String   = Typed[string]()
	Int      = Typed[int]()
	Int64    = Typed[int64]()
	Uint     = Typed[uint]()
	Float    = Typed[float64]()
	Bool     = Typed[bool]()
	Duration = Typed[time.Duration]()
)

// Typed returns a parser producing values of type T, which must be a string,
// bool, integer, floating-point or duration type. It panics for other types.
func Typed[T any]() ParseFunc {
	p, err := ParserFor(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		panic(err)
	}
	return p
}

// List returns a parser that splits its input on sep and parses each part
// with elem. The result is a []any.
func List(sep string, elem ParseFunc) ParseFunc {
	return func(ctx context.Context, s string) (any, error) {
		parts := strings.Split(s, sep)
		vals := make([]any, len(parts))
		for i, p := range parts {
			p = strings.TrimSpace(p)
			v, err := parseValue(ctx, elem, p)
			if err != nil {
				return nil, fmt.Errorf("%q: %w", p, err)
			}
			vals[i] = v
		}
		return vals, nil
	}
}

// OneOf returns a parser that accepts only the given strings.
func OneOf(choices ...string) ParseFunc {
	return func(_ context.Context, s string) (any, error) {
		if err := checkOneof(s, choices); err != nil {
			return nil, err
		}
		return s, nil
	}
}

func checkOneof(s string, choices []string) error {
	for _, c := range choices {
		if s == c {
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", strings.Join(choices, ", "))
}

var durationType = reflect.TypeOf(time.Duration(0))

// ParserFor returns a parser for scalar values of type t.
func ParserFor(t reflect.Type) (ParseFunc, error) {
	if t == durationType {
		return func(_ context.Context, s string) (any, error) {
			return time.ParseDuration(s)
		}, nil
	}

	convert := func(v any) any {
		return reflect.ValueOf(v).Convert(t).Interface()
	}

	switch t.Kind() {
	case reflect.String:
		return func(_ context.Context, s string) (any, error) {
			return convert(s), nil
		}, nil
	case reflect.Bool:
		return func(_ context.Context, s string) (any, error) {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return nil, err
			}
			return convert(b), nil
		}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(_ context.Context, s string) (any, error) {
			i, err := strconv.ParseInt(s, 10, t.Bits())
			if err != nil {
				return nil, err
			}
			return convert(i), nil
		}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(_ context.Context, s string) (any, error) {
			u, err := strconv.ParseUint(s, 10, t.Bits())
			if err != nil {
				return nil, err
			}
			return convert(u), nil
		}, nil
	case reflect.Float32, reflect.Float64:
		return func(_ context.Context, s string) (any, error) {
			f, err := strconv.ParseFloat(s, t.Bits())
			if err != nil {
				return nil, err
			}
			return convert(f), nil
		}, nil
	default:
		return nil, fmt.Errorf("cannot parse string into %s", t)
	}
}
