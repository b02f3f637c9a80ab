// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License that can be found in the LICENSE file.

package scenario

import (
	"fmt"

	"github.com/spf13/cast"
)

// element describes how raw scenario values become stack elements of type T.
type element[T comparable] struct {
	name  string
	parse func(interface{}) (T, error)
	add   func(a, b T) T // nil if the kind has no addition
}

var (
	intElement = element[int]{
		name:  "int",
		parse: cast.ToIntE,
		add:   func(a, b int) int { return a + b },
	}
	floatElement = element[float64]{
		name:  "float",
		parse: cast.ToFloat64E,
		add:   func(a, b float64) float64 { return a + b },
	}
	stringElement = element[string]{
		name:  "string",
		parse: cast.ToStringE,
		add:   func(a, b string) string { return a + b },
	}
	boolElement = element[bool]{
		name:  "bool",
		parse: cast.ToBoolE,
	}
)

func (e element[T]) parseValue(v interface{}) (T, error) {
	if v == nil {
		var zero T
		return zero, fmt.Errorf("missing %s value", e.name)
	}
	t, err := e.parse(v)
	if err != nil {
		return t, fmt.Errorf("value %v is not %s: %w", v, e.name, err)
	}
	return t, nil
}

func (e element[T]) parseList(v interface{}) ([]T, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := cast.ToSliceE(v)
	if err != nil {
		return nil, fmt.Errorf("expect %v is not a list", v)
	}
	list := make([]T, 0, len(raw))
	for _, r := range raw {
		t, err := e.parseValue(r)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, nil
}
