// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License that can be found in the LICENSE file.

package stack

import "iter"

// Iterators builds the three traversals of a stack. All of them walk from the
// top, the most recently pushed element, to the bottom.
type Iterators[T any] interface {
	// IntoIter moves the elements into a consuming iterator and empties the stack.
	IntoIter() *IntoIter[T]
	// Iter returns a read-only iterator.
	Iter() *Iter[T]
	// IterMut returns an iterator yielding pointers to the elements.
	IterMut() *IterMut[T]
}

// IntoIter owns the elements moved out of a stack and pops them one by one.
type IntoIter[T any] struct {
	top *node[T]
}

// IntoIter moves the elements into a consuming iterator. The stack is empty afterwards.
func (st *Stack[T]) IntoIter() *IntoIter[T] {
	it := &IntoIter[T]{top: st.top}
	st.top = nil
	st.size = 0
	return it
}

// Next pops the next element. It keeps returning false once exhausted.
func (it *IntoIter[T]) Next() (T, bool) {
	if it.top == nil {
		var zero T
		return zero, false
	}
	n := it.top
	it.top = n.next
	n.next = nil
	return n.element, true
}

// Iter is a read-only cursor over a stack.
type Iter[T any] struct {
	next *node[T]
}

// Iter returns a read-only iterator starting at the top.
func (st *Stack[T]) Iter() *Iter[T] {
	return &Iter[T]{next: st.top}
}

// Next returns a copy of the next element and advances.
func (it *Iter[T]) Next() (T, bool) {
	n := it.next
	if n == nil {
		var zero T
		return zero, false
	}
	it.next = n.next
	return n.element, true
}

// IterMut is a cursor handing out pointers to the elements of a stack.
// It never changes which nodes the stack holds, only their values.
type IterMut[T any] struct {
	next *node[T]
}

// IterMut returns a mutable iterator starting at the top.
func (st *Stack[T]) IterMut() *IterMut[T] {
	return &IterMut[T]{next: st.top}
}

// Next takes the cursor, moves it to the successor and then returns a pointer
// into the taken node. Pointers from earlier calls are not touched again.
func (it *IterMut[T]) Next() (*T, bool) {
	n := it.next
	if n == nil {
		return nil, false
	}
	it.next = n.next
	return &n.element, true
}

// All returns a range-over-func form of Iter.
func (st *Stack[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for it := st.Iter(); ; {
			v, ok := it.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// AllMut returns a range-over-func form of IterMut.
func (st *Stack[T]) AllMut() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for it := st.IterMut(); ; {
			v, ok := it.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Drain moves the elements out of the stack right away and returns them as a
// sequence, like IntoIter. Stopping early drops the rest.
func (st *Stack[T]) Drain() iter.Seq[T] {
	it := st.IntoIter()
	return func(yield func(T) bool) {
		for {
			v, ok := it.Next()
			if !ok {
				return
			}
			if !yield(v) {
				release(it.top)
				it.top = nil
				return
			}
		}
	}
}
