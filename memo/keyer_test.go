package memo

import (
	"errors"
	"reflect"
	"testing"
)

func mustKey(t *testing.T, args []any, kwargs Kwargs, typed bool) Key {
	t.Helper()
	key, err := BuildKey(args, kwargs, typed)
	if err != nil {
		t.Fatalf("BuildKey(%v, %v, %v) error = %v", args, kwargs, typed, err)
	}
	return key
}

type point struct {
	X, Y int
}

type vertex struct {
	X, Y int
}

type labeled struct {
	name  string
	inner any
}

type withSlice struct {
	Tags []string
}

func TestBuildKey_Deterministic(t *testing.T) {
	args := []any{"query", 10, 2.5, true, point{1, 2}}
	kwargs := Kwargs{"limit": 5, "sort": "asc"}

	first := mustKey(t, args, kwargs, false)
	for i := 0; i < 10; i++ {
		if got := mustKey(t, args, kwargs, false); got != first {
			t.Fatalf("iteration %d: key changed: %s != %s", i, got, first)
		}
	}
}

func TestBuildKey_KeywordOrderIrrelevant(t *testing.T) {
	a := Kwargs{}
	a["alpha"] = 1
	a["beta"] = "two"
	a["gamma"] = 3.0

	b := Kwargs{}
	b["gamma"] = 3.0
	b["alpha"] = 1
	b["beta"] = "two"

	if mustKey(t, []any{"x"}, a, false) != mustKey(t, []any{"x"}, b, false) {
		t.Fatal("keyword insertion order changed the key")
	}
}

func TestBuildKey_Equality(t *testing.T) {
	p := &point{1, 2}
	q := &point{1, 2}
	ch := make(chan int)
	s := &point{7, 8}

	tests := []struct {
		name  string
		a, b  []any
		kwA   Kwargs
		kwB   Kwargs
		typed bool
		equal bool
	}{
		{name: "int and float untyped", a: []any{1}, b: []any{1.0}, equal: true},
		{name: "int and float typed", a: []any{1}, b: []any{1.0}, typed: true, equal: false},
		{name: "int and int64 untyped", a: []any{1}, b: []any{int64(1)}, equal: true},
		{name: "int and int64 typed", a: []any{1}, b: []any{int64(1)}, typed: true, equal: false},
		{name: "uint and int untyped", a: []any{uint8(7)}, b: []any{7}, equal: true},
		{name: "negative zero", a: []any{-0.0}, b: []any{0}, equal: true},
		{name: "fraction", a: []any{1.5}, b: []any{1}, equal: false},
		{name: "complex with zero imaginary", a: []any{complex(2, 0)}, b: []any{2}, equal: true},
		{name: "complex", a: []any{complex(2, 1)}, b: []any{complex(2, 1)}, equal: true},
		{name: "string vs number", a: []any{"1"}, b: []any{1}, equal: false},
		{name: "bool vs number", a: []any{true}, b: []any{1}, equal: false},
		{name: "nil vs zero", a: []any{nil}, b: []any{0}, equal: false},
		{name: "nil vs empty string", a: []any{nil}, b: []any{""}, equal: false},
		{name: "different values", a: []any{1, 2}, b: []any{2, 1}, equal: false},
		{name: "argument boundaries", a: []any{"ab", "c"}, b: []any{"a", "bc"}, equal: false},
		{name: "arity", a: []any{1}, b: []any{1, nil}, equal: false},
		{name: "positional vs keyword", a: []any{1}, kwB: Kwargs{"x": 1}, b: nil, equal: false},
		{name: "keyword names", kwA: Kwargs{"x": 1}, kwB: Kwargs{"y": 1}, equal: false},
		{name: "equal structs", a: []any{point{1, 2}}, b: []any{point{1, 2}}, equal: true},
		{name: "different structs", a: []any{point{1, 2}}, b: []any{point{2, 1}}, equal: false},
		{name: "struct types", a: []any{point{1, 2}}, b: []any{vertex{1, 2}}, equal: false},
		{name: "unexported fields", a: []any{labeled{"a", 1}}, b: []any{labeled{"a", 1}}, equal: true},
		{name: "unexported fields differ", a: []any{labeled{"a", 1}}, b: []any{labeled{"a", "1"}}, equal: false},
		{name: "arrays", a: []any{[2]int{1, 2}}, b: []any{[2]int{1, 2}}, equal: true},
		{name: "arrays differ", a: []any{[2]int{1, 2}}, b: []any{[2]int{1, 3}}, equal: false},
		{name: "same pointer", a: []any{p}, b: []any{p}, equal: true},
		{name: "pointers by identity", a: []any{p}, b: []any{q}, equal: false},
		{name: "same channel", a: []any{ch}, b: []any{ch}, equal: true},
		{name: "struct pointer vs first field pointer", a: []any{s}, b: []any{&s.X}, equal: false},
		{name: "struct pointer vs first field pointer typed", a: []any{s}, b: []any{&s.X}, typed: true, equal: false},
		{name: "nil pointers of different types", a: []any{(*int)(nil)}, b: []any{(*string)(nil)}, equal: false},
		{name: "nil channels of different types", a: []any{(chan int)(nil)}, b: []any{(chan string)(nil)}, equal: false},
		{name: "nil pointers of same type", a: []any{(*int)(nil)}, b: []any{(*int)(nil)}, equal: true},
		{name: "nil pointer vs nil", a: []any{(*int)(nil)}, b: []any{nil}, equal: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ka := mustKey(t, tc.a, tc.kwA, tc.typed)
			kb := mustKey(t, tc.b, tc.kwB, tc.typed)
			if (ka == kb) != tc.equal {
				t.Errorf("keys equal = %v, want %v", ka == kb, tc.equal)
			}
		})
	}
}

func TestBuildKey_Unhashable(t *testing.T) {
	tests := []struct {
		name         string
		args         []any
		kwargs       Kwargs
		wantPosition int
		wantName     string
		wantType     reflect.Type
	}{
		{
			name:         "slice argument",
			args:         []any{1, []int{1, 2}},
			wantPosition: 1,
			wantType:     reflect.TypeOf([]int(nil)),
		},
		{
			name:         "map keyword",
			args:         []any{1},
			kwargs:       Kwargs{"opts": map[string]int{"a": 1}},
			wantPosition: -1,
			wantName:     "opts",
			wantType:     reflect.TypeOf(map[string]int(nil)),
		},
		{
			name:         "func argument",
			args:         []any{func() {}},
			wantPosition: 0,
			wantType:     reflect.TypeOf(func() {}),
		},
		{
			name:         "slice nested in struct",
			args:         []any{withSlice{Tags: []string{"a"}}},
			wantPosition: 0,
			wantType:     reflect.TypeOf([]string(nil)),
		},
		{
			name:         "slice behind interface field",
			args:         []any{labeled{name: "x", inner: []byte("y")}},
			wantPosition: 0,
			wantType:     reflect.TypeOf([]byte(nil)),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, typed := range []bool{false, true} {
				_, err := BuildKey(tc.args, tc.kwargs, typed)
				if !errors.Is(err, ErrUnhashableArgument) {
					t.Fatalf("typed=%v: error = %v, want ErrUnhashableArgument", typed, err)
				}

				var uerr *UnhashableArgumentError
				if !errors.As(err, &uerr) {
					t.Fatalf("typed=%v: error %T is not *UnhashableArgumentError", typed, err)
				}
				if uerr.Position != tc.wantPosition || uerr.Name != tc.wantName || uerr.Type != tc.wantType {
					t.Errorf("typed=%v: got {%d %q %v}, want {%d %q %v}", typed,
						uerr.Position, uerr.Name, uerr.Type, tc.wantPosition, tc.wantName, tc.wantType)
				}
			}
		})
	}
}

func TestUnhashableArgumentError_Message(t *testing.T) {
	pos := &UnhashableArgumentError{Position: 2, Type: reflect.TypeOf([]int(nil))}
	if got, want := pos.Error(), "memo: unhashable argument: argument 2 has type []int"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	kw := &UnhashableArgumentError{Position: -1, Name: "opts", Type: reflect.TypeOf(map[string]int(nil))}
	if got, want := kw.Error(), `memo: unhashable argument: keyword "opts" has type map[string]int`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestKey_String(t *testing.T) {
	key := mustKey(t, []any{1}, nil, false)
	if got := len(key.String()); got != 64 {
		t.Errorf("len(String()) = %d, want 64", got)
	}
}

func TestFormatFloat(t *testing.T) {
	tests := map[float64]string{
		1:        "1",
		-3:       "-3",
		0.5:      "0.5",
		1e21:     "1e+21",
		1 << 63:  "9223372036854775808",
		-1 << 63: "-9223372036854775808",
	}
	for in, want := range tests {
		if got := formatFloat(in); got != want {
			t.Errorf("formatFloat(%v) = %q, want %q", in, got, want)
		}
	}
}
