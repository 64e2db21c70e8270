// Copyright 2021 Jonathan Amsterdam.

package clitree

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// Bind copies resolved values into the fields of the struct pointed to by dst.
//
// Each field to be set carries a struct tag with a "cli" key naming the
// value it receives:
//
//	type runArgs struct {
//	  Verbose bool     `cli:"flag=verbose"`
//	  Tags    []string `cli:"option=tag"`
//	  Count   int      `cli:"option=count"`
//	  Target  string   `cli:"arg=0"`
//	}
//
// As with the cli package's command structs, the "cli" key may be omitted
// and the whole tag is read instead. Untagged fields are left alone, as are
// fields whose value is absent. A value is assigned if it is assignable or
// convertible to the field's type; a Multiple option's values can be bound
// to a slice field.
func Bind(d Data, dst any) error {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%T is not a pointer to a struct", dst)
	}
	v = v.Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag := sf.Tag.Get("cli")
		if tag == "" {
			tag = string(sf.Tag)
		}
		if tag == "" {
			continue
		}
		if err := bindField(d, tag, sf, v.Field(i)); err != nil {
			return fmt.Errorf("field %q: %w", sf.Name, err)
		}
	}
	return nil
}

var validKeys = map[string]bool{
	"flag":   true,
	"option": true,
	"arg":    true,
	"doc":    true,
}

func bindField(d Data, tag string, sf reflect.StructField, field reflect.Value) error {
	if !sf.IsExported() {
		return errors.New("cli tag on unexported field")
	}
	m := tagToMap(tag)
	n := 0
	for k := range m {
		if !validKeys[k] {
			return fmt.Errorf("invalid key: %q", k)
		}
		if k != "doc" {
			n++
		}
	}
	if n > 1 {
		return errors.New("only one of 'flag', 'option' or 'arg' may be given")
	}
	var (
		val any
		ok  bool
	)
	switch {
	case m["flag"] != "":
		val, ok = d.Flags[m["flag"]]
	case m["option"] != "":
		val, ok = d.Options[m["option"]]
	case m["arg"] != "":
		i, err := strconv.Atoi(m["arg"])
		if err != nil {
			return fmt.Errorf("arg: %w", err)
		}
		if i < 0 {
			return errors.New("arg cannot be negative")
		}
		if i < len(d.Arguments) {
			val, ok = d.Arguments[i], true
		}
	default:
		return nil
	}
	if !ok || val == nil {
		return nil
	}
	return assign(field, val)
}

func assign(field reflect.Value, val any) error {
	if val == nil {
		return nil
	}
	rv := reflect.ValueOf(val)
	ft := field.Type()
	switch {
	case rv.Type().AssignableTo(ft):
		field.Set(rv)
	case ft.Kind() == reflect.Slice && rv.Kind() == reflect.Slice:
		slice := reflect.MakeSlice(ft, rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			if err := assign(slice.Index(i), rv.Index(i).Interface()); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		field.Set(slice)
	case rv.Type().ConvertibleTo(ft) && (rv.Kind() == ft.Kind() || isNumber(rv.Kind()) && isNumber(ft.Kind())):
		field.Set(rv.Convert(ft))
	default:
		return fmt.Errorf("cannot assign %T to %s", val, ft)
	}
	return nil
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

var keyRegexp = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]+=`)

// tagToMap splits a tag of the form "key=value, key=value, doc" into a map.
// Text that does not begin with a key is the value of "doc".
func tagToMap(tag string) map[string]string {
	m := map[string]string{}
	tag = strings.TrimSpace(tag)
	for len(tag) > 0 {
		loc := keyRegexp.FindStringIndex(tag)
		if loc == nil {
			m["doc"] = tag
			break
		}
		key := tag[:loc[1]-1]
		tag = tag[loc[1]:]
		before, after, found := strings.Cut(tag, ",")
		var value string
		if !found {
			value = tag
			tag = ""
		} else {
			value = before
			tag = strings.TrimSpace(after)
		}
		m[key] = strings.TrimSpace(value)
	}
	return m
}
