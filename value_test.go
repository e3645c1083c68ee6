package golisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue_Truthy(t *testing.T) {
	rt := NewRuntime()

	tests := []struct {
		name     string
		value    *Value
		expected bool
	}{
		{"nonzero integer", rt.NewInt(1), true},
		{"negative integer", rt.NewInt(-1), true},
		{"zero integer", rt.NewInt(0), false},
		{"nil list", rt.heap.Nil(), false},
		{"nonempty list", rt.List(rt.NewInt(1)), false},
		{"string", rt.NewString("hi"), false},
		{"symbol", rt.Intern("x"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.value.Truthy())
		})
	}
}

func TestValue_IsNil(t *testing.T) {
	rt := NewRuntime()

	assert.True(t, rt.heap.Nil().IsNil())
	assert.False(t, rt.Cons(rt.NewInt(1), rt.heap.Nil()).IsNil())
	assert.False(t, rt.NewInt(0).IsNil())
}

func TestValue_NilSelfReference(t *testing.T) {
	rt := NewRuntime()
	n := rt.heap.Nil()

	assert.Same(t, n, n.Left)
	assert.Same(t, n, n.Right)
}

func TestValue_IsCallable(t *testing.T) {
	rt := NewRuntime()

	tests := []struct {
		name     string
		value    *Value
		expected bool
	}{
		{"builtin", rt.NewBuiltin(biCar, nil, true), true},
		{"lambda", rt.NewLambda(nil, rt.heap.Nil(), rt.Global, false), true},
		{"integer", rt.NewInt(1), false},
		{"symbol", rt.Intern("x"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.value.IsCallable())
		})
	}
}

func TestValue_Type(t *testing.T) {
	rt := NewRuntime()

	tests := []struct {
		name     string
		value    *Value
		expected string
	}{
		{"integer", rt.NewInt(1), "integer"},
		{"string", rt.NewString("s"), "string"},
		{"symbol", rt.Intern("x"), "symbol"},
		{"list", rt.heap.Nil(), "list"},
		{"lambda", rt.NewLambda(nil, rt.heap.Nil(), rt.Global, false), "lambda"},
		{"builtin", rt.NewBuiltin(biCar, nil, true), "builtin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.value.Type())
		})
	}
}

func TestValue_ExpandPairStopsAtNil(t *testing.T) {
	rt := NewRuntime()
	assert.Nil(t, rt.heap.Nil().expand())

	pair := rt.Cons(rt.NewInt(1), rt.heap.Nil())
	children := pair.expand()
	assert.Len(t, children, 2)
	assert.Same(t, pair.Left, children[0])
	assert.Same(t, pair.Right, children[1])
}
