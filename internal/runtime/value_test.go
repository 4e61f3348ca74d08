package runtime

import "testing"

func TestNumber_String(t *testing.T) {
	if got := NewInt(5).String(); got != "5" {
		t.Errorf("NewInt(5).String() = %q, want %q", got, "5")
	}
	if got := NewFloat(3.5).String(); got != "3.5" {
		t.Errorf("NewFloat(3.5).String() = %q, want %q", got, "3.5")
	}
}

func TestNumber_IsTrue(t *testing.T) {
	if NewInt(0).IsTrue() {
		t.Error("0 should be falsey")
	}
	if !NewInt(1).IsTrue() {
		t.Error("1 should be truthy")
	}
}

func TestList_Copy_IsShallowAndIndependent(t *testing.T) {
	original := NewList([]Value{NewInt(1), NewInt(2)})
	cp := original.Copy().(*List)

	cp.Elements = append(cp.Elements, NewInt(3))
	if len(original.Elements) != 2 {
		t.Fatalf("mutating the copy's backing slice affected the original: %v", original.Elements)
	}
}

func TestIsFalsey(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want bool
	}{
		{"zero number", NewInt(0), true},
		{"nonzero number", NewInt(1), false},
		{"empty string", NewString(""), true},
		{"nonempty string", NewString("x"), false},
		{"empty list", NewList(nil), true},
		{"nonempty list", NewList([]Value{NewInt(1)}), false},
	}
	for _, tt := range cases {
		if got := IsFalsey(tt.v); got != tt.want {
			t.Errorf("%s: IsFalsey() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestParseNumber(t *testing.T) {
	n, err := ParseNumber("42", false)
	if err != nil || n.IsFloat || n.Val != 42 {
		t.Fatalf("ParseNumber(42, false) = %+v, %v", n, err)
	}
	f, err := ParseNumber("3.14", true)
	if err != nil || !f.IsFloat || f.Val != 3.14 {
		t.Fatalf("ParseNumber(3.14, true) = %+v, %v", f, err)
	}
}
