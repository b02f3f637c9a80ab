// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License that can be found in the LICENSE file.

// Package stack provides a non-thread-safe generic stack backed by a singly linked list.
package stack

import (
	"fmt"
	"reflect"
	"strings"
)

// Interface is the behaviour of a last-in, first-out collection.
type Interface[T any] interface {
	// Push pushes an element onto the top.
	Push(element T)
	// Pop removes and returns the top element. ok is false if the stack is empty.
	Pop() (element T, ok bool)
	// Peek returns the top element without removing it.
	Peek() (element T, ok bool)
	// PeekMut returns a pointer to the top element so it can be modified in place.
	PeekMut() (element *T, ok bool)
}

// Cloner is implemented by elements which need more than a value copy
// when the stack holding them is cloned.
type Cloner[T any] interface {
	Clone() T
}

// Stack is a non-thread-safe stack. The zero value is an empty stack ready to use.
type Stack[T comparable] struct {
	top  *node[T]
	size int
}

type node[T any] struct {
	element T
	next    *node[T]
}

var (
	_ Interface[int] = (*Stack[int])(nil)
	_ Iterators[int] = (*Stack[int])(nil)
)

// New creates a stack.
func New[T comparable]() *Stack[T] {
	return &Stack[T]{}
}

// Size returns the stack size.
func (st *Stack[T]) Size() int {
	return st.size
}

// IsEmpty reports whether the stack holds no elements.
func (st *Stack[T]) IsEmpty() bool {
	return st.top == nil
}

// Reset drops every element of the stack.
func (st *Stack[T]) Reset() {
	release(st.top)
	st.top = nil
	st.size = 0
}

// release unlinks a chain node by node, so a long chain never costs call depth.
func release[T any](n *node[T]) {
	for n != nil {
		next := n.next
		n.next = nil
		n = next
	}
}

// Push pushes an element onto the stack.
func (st *Stack[T]) Push(element T) {
	st.top = &node[T]{
		element: element,
		next:    st.top,
	}
	st.size++
}

// Pop pops an element from the stack.
func (st *Stack[T]) Pop() (T, bool) {
	if st.top == nil {
		var zero T
		return zero, false
	}
	topNode := st.top
	st.top = topNode.next
	topNode.next = nil
	st.size--
	return topNode.element, true
}

// Peek looks at the top element of the stack.
func (st *Stack[T]) Peek() (T, bool) {
	if st.top == nil {
		var zero T
		return zero, false
	}
	return st.top.element, true
}

// PeekMut returns a pointer to the top element. Writes through it change the
// element in place; the stack keeps its nodes and order.
// The pointer must not be used once the element has been popped.
func (st *Stack[T]) PeekMut() (*T, bool) {
	if st.top == nil {
		return nil, false
	}
	return &st.top.element, true
}

// Clone returns a stack with its own chain of equal elements.
// Elements implementing Cloner are copied through Clone.
// Cloning a nil stack gives an empty one.
func (st *Stack[T]) Clone() *Stack[T] {
	if st == nil {
		return New[T]()
	}
	c := &Stack[T]{size: st.size}
	tail := &c.top
	for n := st.top; n != nil; n = n.next {
		*tail = &node[T]{element: cloneElement(n.element)}
		tail = &(*tail).next
	}
	return c
}

func cloneElement[T any](v T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	return v
}

// Equal reports whether both stacks hold the same elements in the same order.
// A nil stack equals an empty one. Elements are compared with ==, so like ==
// it panics when T is an interface type holding values that are not comparable,
// e.g. a Stack[any] holding slices.
func (st *Stack[T]) Equal(other *Stack[T]) bool {
	a, b := st.head(), other.head()
	for a != nil && b != nil {
		if a.element != b.element {
			return false
		}
		a, b = a.next, b.next
	}
	return a == nil && b == nil
}

func (st *Stack[T]) head() *node[T] {
	if st == nil {
		return nil
	}
	return st.top
}

// String renders the stack from top to bottom, e.g. "head->6->4->2.".
func (st *Stack[T]) String() string {
	var b strings.Builder
	b.WriteString("head")
	for n := st.head(); n != nil; n = n.next {
		fmt.Fprintf(&b, "->%v", n.element)
	}
	b.WriteByte('.')
	return b.String()
}

// GoString implements fmt.GoStringer, e.g. "stack.Stack[int]{6, 4, 2}".
func (st *Stack[T]) GoString() string {
	var b strings.Builder
	fmt.Fprintf(&b, "stack.Stack[%s]{", reflect.TypeOf((*T)(nil)).Elem())
	for n := st.head(); n != nil; n = n.next {
		if n != st.top {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%#v", n.element)
	}
	b.WriteByte('}')
	return b.String()
}
