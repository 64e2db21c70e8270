// Copyright 2021 Jonathan Amsterdam.

package clitree

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTagToMap(t *testing.T) {
	for _, test := range []struct {
		tag  string
		want map[string]string
	}{
		{"", map[string]string{}},
		{
			" flag=fl,\t option=n, some doc   ",
			map[string]string{
				"flag":   "fl",
				"option": "n",
				"doc":    "some doc",
			},
		},
		{
			"arg=2",
			map[string]string{"arg": "2"},
		},
	} {
		got := tagToMap(test.tag)
		if !cmp.Equal(got, test.want) {
			t.Errorf("%q:\ngot  %+v\nwant %+v", test.tag, got, test.want)
		}
	}
}

type Level int

func TestBind(t *testing.T) {
	type args struct {
		Verbose bool     `cli:"flag=verbose"`
		Quiet   bool     "flag=quiet, bare tag"
		Count   int64    `cli:"option=count"`
		Level   Level    `cli:"option=level"`
		Tags    []string `cli:"option=tag"`
		Name    string   `cli:"option=name"`
		Src     string   `cli:"arg=0"`
		Dst     string   `cli:"arg=1"`
		Other   string   `json:"other"`
		Untagged string
	}
	d := Data{
		Flags:     map[string]bool{"verbose": true, "quiet": false},
		Options:   map[string]any{"count": 7, "level": 2, "tag": []any{"a", "b"}},
		Arguments: []any{"in.txt"},
	}
	got := args{Name: "keep", Dst: "keep", Untagged: "keep"}
	if err := Bind(d, &got); err != nil {
		t.Fatal(err)
	}
	want := args{
		Verbose:  true,
		Count:    7,
		Level:    2,
		Tags:     []string{"a", "b"},
		Name:     "keep",
		Src:      "in.txt",
		Dst:      "keep",
		Untagged: "keep",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want, +got):\n%s", diff)
	}
}

func TestBindErrors(t *testing.T) {
	d := Data{
		Options:   map[string]any{"n": 3},
		Arguments: []any{"x"},
	}
	check := func(dst any, want string) {
		t.Helper()
		got := Bind(d, dst)
		if got == nil || !strings.Contains(got.Error(), want) {
			t.Errorf("got %v, want error containing %q", got, want)
		}
	}

	check(struct{}{}, "not a pointer to a struct")

	type t1 struct {
		F string `cli:"option=n"`
	}
	check(&t1{}, "cannot assign int to string")

	type t2 struct {
		f int `cli:"option=n"`
	}
	check(&t2{}, "tag on unexported")

	type t3 struct {
		F int `cli:"flag=a, option=n"`
	}
	check(&t3{}, "only one of")

	type t4 struct {
		F int `cli:"opt=n"`
	}
	check(&t4{}, "invalid key")

	type t5 struct {
		F string `cli:"arg=-1"`
	}
	check(&t5{}, "negative")
}
