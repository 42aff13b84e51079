package value

import "testing"

func TestIsFalsey(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  bool
	}{
		{"nil is falsey", Nil(), true},
		{"false is falsey", Bool(false), true},
		{"true is truthy", Bool(true), false},
		{"zero number is truthy", Number(0), false},
		{"nonzero number is truthy", Number(42), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.IsFalsey(); got != tt.want {
				t.Errorf("IsFalsey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"equal numbers", Number(1), Number(1), true},
		{"unequal numbers", Number(1), Number(2), false},
		{"equal bools", Bool(true), Bool(true), true},
		{"nil equals nil", Nil(), Nil(), true},
		{"mismatched kinds never equal", Number(0), Bool(false), false},
		{"mismatched kinds never equal 2", Nil(), Bool(false), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestStringDisplay(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{Nil(), "nil"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Number(1), "1"},
		{Number(1.5), "1.5"},
	}
	for _, tt := range tests {
		if got := tt.value.String(); got != tt.want {
			t.Errorf("%v.String() = %q, want %q", tt.value, got, tt.want)
		}
	}
}
