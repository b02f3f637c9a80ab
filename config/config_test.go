// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License that can be found in the LICENSE file.

package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/llstack/config"
)

func TestCodecByPath(t *testing.T) {
	tests := []struct {
		path string
		name string
	}{
		{"a.yaml", "yaml"},
		{"dir/a.YML", "yaml"},
		{"a.json", "json"},
		{"a.toml", "toml"},
	}
	for _, tt := range tests {
		c, err := config.CodecByPath(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.name, c.Name())
	}

	_, err := config.CodecByPath("a.ini")
	require.ErrorIs(t, err, config.ErrCodecNotExist)
	require.Nil(t, config.GetCodec("ini"))
}

func TestCodecsAgree(t *testing.T) {
	docs := map[string]string{
		"yaml": "element: int\nsteps:\n  - op: push\n    value: 2\n",
		"json": `{"element": "int", "steps": [{"op": "push", "value": 2}]}`,
		"toml": "element = \"int\"\n[[steps]]\nop = \"push\"\nvalue = 2\n",
	}
	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			var out map[string]interface{}
			require.NoError(t, config.GetCodec(name).Unmarshal([]byte(doc), &out))
			assert.Equal(t, "int", out["element"])
			assert.NotNil(t, out["steps"])
		})
	}
}

func TestFileProviderRead(t *testing.T) {
	p := config.NewFileProvider()
	assert.Equal(t, "file", p.Name())

	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: x"), 0o644))
	data, err := p.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "name: x", string(data))

	_, err = p.Read(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileProviderWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan string, 16)
	done := make(chan error, 1)
	go func() {
		done <- config.NewFileProvider().Watch(ctx, path, func(_ string, data []byte) {
			select {
			case got <- string(data):
			default:
			}
		})
	}()

	// writes to other files in the directory are ignored
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o644))
		require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))
		select {
		case data := <-got:
			// a write may be observed between truncation and the new content
			if data != "v2" {
				continue
			}
			cancel()
			require.NoError(t, <-done)
			return
		case <-tick.C:
		case <-deadline:
			t.Fatal("no change notification")
		}
	}
}
