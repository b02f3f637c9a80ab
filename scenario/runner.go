// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License that can be found in the LICENSE file.

package scenario

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cast"

	"trpc.group/trpc-go/llstack/errs"
	"trpc.group/trpc-go/llstack/log"
	"trpc.group/trpc-go/llstack/stack"
)

// emptyText is how an absent result is shown in reports.
const emptyText = "<empty>"

// Observer is notified after every executed step.
type Observer interface {
	OnStep(result StepResult)
}

// StepResult is the outcome of one step.
type StepResult struct {
	Index  int
	Op     string
	Got    string
	Passed bool
}

// Report is the outcome of a whole scenario.
type Report struct {
	Name    string
	Element string
	Steps   []StepResult
	// Final is the rendering of the stack after the last step.
	Final string
}

// Passed reports whether every step passed.
func (r *Report) Passed() bool {
	for _, s := range r.Steps {
		if !s.Passed {
			return false
		}
	}
	return true
}

// Runner runs scenarios.
type Runner struct {
	opts *Options
}

// Options are the runner options.
type Options struct {
	Logger   log.Logger
	Observer Observer
}

// Option modifies the Options.
type Option func(*Options)

// WithLogger sets the logger of the runner. Defaults to log.GetDefaultLogger().
func WithLogger(l log.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithObserver sets an observer notified after each step.
func WithObserver(ob Observer) Option {
	return func(o *Options) {
		o.Observer = ob
	}
}

// NewRunner creates a runner.
func NewRunner(opts ...Option) *Runner {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.Logger == nil {
		o.Logger = log.GetDefaultLogger()
	}
	return &Runner{opts: o}
}

// Run validates every step of sc and, if all are valid, executes them in order
// against a new stack. Invalid steps are all reported together with code
// errs.RetInvalidStep and nothing runs. Failed expectations do not stop the run;
// they are returned together with code errs.RetMismatch along with the report.
func (r *Runner) Run(sc *Scenario) (*Report, error) {
	switch sc.Element {
	case intElement.name, "":
		return run(r, sc, intElement)
	case floatElement.name:
		return run(r, sc, floatElement)
	case stringElement.name:
		return run(r, sc, stringElement)
	case boolElement.name:
		return run(r, sc, boolElement)
	default:
		return nil, errs.Newf(errs.RetInvalidStep, "unknown element kind %q", sc.Element)
	}
}

// instruction is a validated step with its operands converted to T.
type instruction[T comparable] struct {
	index    int
	op       string
	empty    bool
	value    T
	want     T
	hasWant  bool
	wantList []T
	wantSize int
	wantText string
	wantBool bool
}

func compile[T comparable](sc *Scenario, e element[T]) ([]instruction[T], error) {
	var (
		merr     *multierror.Error
		snapshot bool
		program  = make([]instruction[T], 0, len(sc.Steps))
	)
	for i, step := range sc.Steps {
		in, err := compileStep(i, step, e, snapshot)
		if err != nil {
			merr = multierror.Append(merr, errs.Newf(errs.RetInvalidStep, "step %d (%s): %v", i, step.Op, err))
			continue
		}
		if in.op == OpSnapshot {
			snapshot = true
		}
		program = append(program, in)
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return program, nil
}

func compileStep[T comparable](i int, step Step, e element[T], snapshot bool) (instruction[T], error) {
	in := instruction[T]{index: i, op: strings.ToLower(step.Op), empty: step.Empty}
	var err error
	switch in.op {
	case OpPush:
		in.value, err = e.parseValue(step.Value)
	case OpSet:
		if !step.Empty {
			in.value, err = e.parseValue(step.Value)
		}
	case OpPop, OpPeek:
		if step.Expect == nil {
			break
		}
		if step.Empty {
			return in, fmt.Errorf("expect and empty are exclusive")
		}
		in.hasWant = true
		in.want, err = e.parseValue(step.Expect)
	case OpSize:
		if step.Expect == nil {
			return in, fmt.Errorf("missing expect")
		}
		in.wantSize, err = cast.ToIntE(step.Expect)
	case OpRender:
		if step.Expect == nil {
			return in, fmt.Errorf("missing expect")
		}
		in.wantText, err = cast.ToStringE(step.Expect)
	case OpIter, OpDrain:
		in.hasWant = step.Expect != nil
		in.wantList, err = e.parseList(step.Expect)
	case OpIterMut:
		if e.add == nil {
			return in, fmt.Errorf("%s elements cannot be added", e.name)
		}
		in.value, err = e.parseValue(step.Value)
	case OpEqual:
		if !snapshot {
			return in, fmt.Errorf("no snapshot taken before")
		}
		if step.Expect == nil {
			return in, fmt.Errorf("missing expect")
		}
		in.wantBool, err = cast.ToBoolE(step.Expect)
	case OpSnapshot, OpReset:
	default:
		return in, fmt.Errorf("unknown op %q", step.Op)
	}
	return in, err
}

// machine holds the state of one scenario run.
type machine[T comparable] struct {
	st       *stack.Stack[T]
	snapshot *stack.Stack[T]
	add      func(a, b T) T
}

func run[T comparable](r *Runner, sc *Scenario, e element[T]) (*Report, error) {
	program, err := compile(sc, e)
	if err != nil {
		return nil, err
	}
	logger := r.opts.Logger.With(log.Field{Key: "scenario", Value: sc.Name})
	m := &machine[T]{st: stack.New[T](), add: e.add}
	report := &Report{Name: sc.Name, Element: e.name, Steps: make([]StepResult, 0, len(program))}
	var merr *multierror.Error
	for _, in := range program {
		res, want := m.exec(in)
		if res.Passed {
			logger.Debugf("step %d %s: %s", res.Index, res.Op, res.Got)
		} else {
			logger.Errorf("step %d %s: want %s, got %s", res.Index, res.Op, want, res.Got)
			merr = multierror.Append(merr,
				errs.Newf(errs.RetMismatch, "step %d (%s): want %s, got %s", res.Index, res.Op, want, res.Got))
		}
		report.Steps = append(report.Steps, res)
		if r.opts.Observer != nil {
			r.opts.Observer.OnStep(res)
		}
	}
	report.Final = m.st.String()
	return report, merr.ErrorOrNil()
}

// exec runs one instruction and returns its result and the expected text.
func (m *machine[T]) exec(in instruction[T]) (StepResult, string) {
	res := StepResult{Index: in.index, Op: in.op, Passed: true}
	var want string
	switch in.op {
	case OpPush:
		m.st.Push(in.value)
		res.Got = m.st.String()
	case OpPop, OpPeek:
		var (
			v  T
			ok bool
		)
		if in.op == OpPop {
			v, ok = m.st.Pop()
		} else {
			v, ok = m.st.Peek()
		}
		res.Got = optionText(v, ok)
		switch {
		case in.empty:
			want, res.Passed = emptyText, !ok
		case in.hasWant:
			want, res.Passed = fmt.Sprint(in.want), ok && v == in.want
		}
	case OpSet:
		p, ok := m.st.PeekMut()
		if ok && !in.empty {
			*p = in.value
		}
		res.Got = m.st.String()
		if in.empty {
			want, res.Passed = emptyText, !ok
		} else if !ok {
			want, res.Passed, res.Got = fmt.Sprint(in.value), false, emptyText
		}
	case OpSize:
		res.Got = fmt.Sprint(m.st.Size())
		want, res.Passed = fmt.Sprint(in.wantSize), m.st.Size() == in.wantSize
	case OpRender:
		res.Got = m.st.String()
		want, res.Passed = in.wantText, res.Got == in.wantText
	case OpIter, OpDrain:
		var got []T
		if in.op == OpIter {
			got = slices.Collect(m.st.All())
		} else {
			got = slices.Collect(m.st.Drain())
		}
		res.Got = fmt.Sprint(got)
		if in.hasWant {
			want, res.Passed = fmt.Sprint(in.wantList), slices.Equal(got, in.wantList)
		}
	case OpIterMut:
		for p := range m.st.AllMut() {
			*p = m.add(*p, in.value)
		}
		res.Got = m.st.String()
	case OpSnapshot:
		m.snapshot = m.st.Clone()
		res.Got = m.snapshot.String()
	case OpEqual:
		eq := m.st.Equal(m.snapshot)
		res.Got = fmt.Sprint(eq)
		want, res.Passed = fmt.Sprint(in.wantBool), eq == in.wantBool
	case OpReset:
		m.st.Reset()
		res.Got = m.st.String()
	}
	return res, want
}

func optionText[T any](v T, ok bool) string {
	if !ok {
		return emptyText
	}
	return fmt.Sprint(v)
}
