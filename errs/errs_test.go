// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License that can be found in the LICENSE file.

package errs_test

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/llstack/errs"
)

func TestErrs(t *testing.T) {
	var err *errs.Error
	assert.Contains(t, err.Error(), "success")

	e := errs.New(errs.RetInvalidStep, "inner fail")
	assert.NotNil(t, e)
	assert.Equal(t, errs.RetInvalidStep, errs.Code(e))
	assert.Equal(t, "inner fail", errs.Msg(e))

	assert.Equal(t, errs.RetOK, errs.Code(nil))
	assert.Equal(t, "success", errs.Msg(nil))
	assert.Equal(t, errs.RetOK, errs.Code((*errs.Error)(nil)))
	assert.Equal(t, "success", errs.Msg((*errs.Error)(nil)))

	e = errors.New("unknown error")
	assert.Equal(t, errs.RetUnknown, errs.Code(e))
	assert.Equal(t, "unknown error", errs.Msg(e))
}

func TestErrsFormat(t *testing.T) {
	err := errs.New(errs.RetMismatch, "test error")

	assert.Equal(t, "code:3, msg:test error", fmt.Sprintf("%s", err))
	assert.Equal(t, `"code:3, msg:test error"`, fmt.Sprintf("%q", err))
	assert.Equal(t, "code:3, msg:test error", fmt.Sprintf("%v", err))
	assert.Equal(t, "%!d(errs.Error=code:3, msg:test error)", fmt.Sprintf("%d", err))
}

func TestErrorChain(t *testing.T) {
	var e error = errs.Wrap(os.ErrNotExist, errs.RetReadFail, "open scenario")
	require.Contains(t, errs.Msg(e), os.ErrNotExist.Error())
	e = fmt.Errorf("%w", e)
	require.Equal(t, errs.RetReadFail, errs.Code(e))
	require.True(t, errors.Is(e, os.ErrNotExist))

	require.Nil(t, errs.Wrap(nil, errs.RetReadFail, "nothing"))
	require.Nil(t, errs.Wrapf(nil, errs.RetReadFail, "nothing %d", 1))
}

func TestMultiErrorCode(t *testing.T) {
	var merr *multierror.Error
	merr = multierror.Append(merr, errs.New(errs.RetInvalidStep, "step 0"))
	merr = multierror.Append(merr, errs.New(errs.RetInvalidStep, "step 3"))
	err := merr.ErrorOrNil()
	require.Error(t, err)
	require.Equal(t, errs.RetInvalidStep, errs.Code(err))
}

func TestWrapf(t *testing.T) {
	errs.SetTraceable(false)
	err := errs.Wrapf(parent(), errs.RetMismatch, "wrap %v", "err")

	br := bufio.NewReader(strings.NewReader(fmt.Sprintf("%+v", err)))
	line, _, _ := br.ReadLine()
	assert.Equal(t, "code:3, msg:wrap err", string(line))
	line, _, _ = br.ReadLine()
	assert.Equal(t, "Cause by code:2, msg:inner fail", string(line))
}

func TestTraceError(t *testing.T) {
	errs.SetTraceable(true)
	defer errs.SetTraceable(false)

	s := fmt.Sprintf("%+v", parent())
	br := bufio.NewReader(strings.NewReader(s))

	line, _, _ := br.ReadLine()
	assert.Equal(t, "code:2, msg:inner fail", string(line))
	line, _, _ = br.ReadLine()
	assert.Equal(t, "trpc.group/trpc-go/llstack/errs_test.grandson", string(line))
	_, _, _ = br.ReadLine()
	line, _, _ = br.ReadLine()
	assert.Equal(t, "trpc.group/trpc-go/llstack/errs_test.child", string(line))
}

func TestSetTraceableWithContent(t *testing.T) {
	errs.SetTraceableWithContent("child")
	defer errs.SetTraceableWithContent("")
	defer errs.SetTraceable(false)

	s := fmt.Sprintf("%+v", parent())
	br := bufio.NewReader(strings.NewReader(s))
	line, _, _ := br.ReadLine()
	assert.Equal(t, "code:2, msg:inner fail", string(line))
	line, _, _ = br.ReadLine()
	assert.Equal(t, "trpc.group/trpc-go/llstack/errs_test.child", string(line))
}

//go:noinline
func parent() error {
	return child()
}

//go:noinline
func child() error {
	return grandson()
}

//go:noinline
func grandson() error {
	return errs.Newf(errs.RetInvalidStep, "%s", "inner fail")
}
