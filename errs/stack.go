// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License that can be found in the LICENSE file.

package errs

import (
	"fmt"
	"runtime"
	"strings"
)

var (
	traceable bool               // if traceable is true, the error has a stack trace.
	content   string             // if content is not empty, only print frames whose function contains it.
	stackSkip = defaultStackSkip // number of stack frames skipped.
)

const defaultStackSkip = 3

// SetTraceable controls whether the error has a stack trace.
func SetTraceable(x bool) {
	traceable = x
}

// SetTraceableWithContent turns tracing on and keeps only the frames whose
// function name contains c when printing with %+v.
func SetTraceableWithContent(c string) {
	traceable = true
	content = c
}

// SetStackSkip sets the number of skipped stack frames. It is not concurrency safe.
func SetStackSkip(skip int) {
	stackSkip = skip
}

// stackTrace holds program counters from innermost (newest) to outermost (oldest).
type stackTrace []uintptr

// Format writes "\n<func>\n\t<file>:<line>" for every kept frame on %+v.
func (st stackTrace) Format(s fmt.State, verb rune) {
	if verb != 'v' || !s.Flag('+') {
		return
	}
	frames := runtime.CallersFrames(st)
	for {
		f, more := frames.Next()
		if f.Function != "" && strings.Contains(f.Function, content) {
			_, _ = fmt.Fprintf(s, "\n%s\n\t%s:%d", f.Function, f.File, f.Line)
		}
		if !more {
			return
		}
	}
}

func callers() stackTrace {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(stackSkip, pcs[:])
	st := make(stackTrace, n)
	copy(st, pcs[:n])
	return st
}
