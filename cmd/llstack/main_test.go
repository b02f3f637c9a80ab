// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/llstack/scenario"
)

const passing = `name: cli
steps:
  - op: push
    value: 2
  - op: push
    value: 4
  - op: push
    value: 6
  - op: render
    expect: "head->6->4->2."
`

func writeScenario(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunPass(t *testing.T) {
	var out bytes.Buffer
	code := run(context.Background(), []string{"-f", writeScenario(t, "s.yaml", passing), "-level", "error"}, &out)
	require.Equal(t, exitOK, code, out.String())
	assert.Contains(t, out.String(), "  [ok] 3 render head->6->4->2.")
	assert.Contains(t, out.String(), "PASS cli (int elements, 4 steps) head->6->4->2.")
}

func TestRunFail(t *testing.T) {
	var out bytes.Buffer
	path := writeScenario(t, "s.json", `{"steps": [{"op": "pop", "expect": 1}]}`)
	code := run(context.Background(), []string{"-f", path, "-level", "error"}, &out)
	require.Equal(t, exitFailed, code)
	assert.Contains(t, out.String(), "  [!!] 0 pop <empty>")
	assert.Contains(t, out.String(), "code 3): 1 of 1 steps failed")
}

func TestRunInvalidInput(t *testing.T) {
	var out bytes.Buffer
	path := writeScenario(t, "s.toml", "[[steps]]\nop = \"fly\"\n")
	require.Equal(t, exitFailed, run(context.Background(), []string{"-f", path, "-level", "error"}, &out))
	assert.Contains(t, out.String(), "unknown op")

	out.Reset()
	missing := filepath.Join(t.TempDir(), "none.yaml")
	require.Equal(t, exitFailed, run(context.Background(), []string{"-f", missing, "-level", "error"}, &out))
	assert.True(t, strings.HasPrefix(out.String(), "FAIL "))
}

func TestRunUsage(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, exitUsage, run(context.Background(), nil, &out))
	assert.Equal(t, exitUsage, run(context.Background(), []string{"-nope"}, &out))
	assert.Equal(t, exitUsage, run(context.Background(), []string{"-f", "x.yaml", "-level", "loud"}, &out))
}

// syncBuffer lets the watcher goroutine write while the test polls.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRunWatch(t *testing.T) {
	path := writeScenario(t, "s.yaml", passing)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := &syncBuffer{}
	done := make(chan int, 1)
	go func() {
		done <- run(ctx, []string{"-f", path, "-level", "error", "-watch"}, out)
	}()

	changed := strings.Replace(passing, "name: cli", "name: changed", 1)
	deadline := time.After(5 * time.Second)
	for !strings.Contains(out.String(), "PASS changed") {
		require.NoError(t, os.WriteFile(path, []byte(changed), 0o644))
		select {
		case <-deadline:
			t.Fatalf("no rerun after change, output:\n%s", out.String())
		case <-time.After(50 * time.Millisecond):
		}
	}
	cancel()
	select {
	case code := <-done:
		assert.Equal(t, exitOK, code)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatchAndRunCancelled(t *testing.T) {
	path := writeScenario(t, "s.yaml", passing)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	done := make(chan struct{})
	go func() {
		defer close(done)
		code, err := watchAndRun(ctx, path, &out, scenario.NewRunner(), exitFailed)
		assert.NoError(t, err)
		assert.Equal(t, exitFailed, code, "no rerun, the first code stays")
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher or runner still running after cancel")
	}
	assert.Empty(t, out.String())
}

func TestWatchAndRunWatchFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "s.yaml")
	var out bytes.Buffer
	done := make(chan error, 1)
	go func() {
		_, err := watchAndRun(context.Background(), path, &out, scenario.NewRunner(), exitOK)
		done <- err
	}()
	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not stop after the watcher failed")
	}

	var cli bytes.Buffer
	code := run(context.Background(), []string{"-f", path, "-level", "error", "-watch"}, &cli)
	assert.Equal(t, exitFailed, code)
}
