// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License that can be found in the LICENSE file.

package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"trpc.group/trpc-go/llstack/log"
)

// ProviderCallback is the callback invoked with the new content of a changed file.
type ProviderCallback func(path string, data []byte)

// FileProvider reads files from the file system and watches them for changes.
type FileProvider struct{}

// NewFileProvider creates a file provider.
func NewFileProvider() *FileProvider {
	return &FileProvider{}
}

// Name returns file provider's name.
func (*FileProvider) Name() string {
	return "file"
}

// Read reads the specific path file, returns it content as bytes.
func (*FileProvider) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Debugf("llstack/config: failed to read file %v", err)
		return nil, err
	}
	return data, nil
}

// Watch calls cb each time path is written or recreated, until ctx is done.
// The parent directory is watched so editors which replace the file are also seen.
func (fp *FileProvider) Watch(ctx context.Context, path string, cb ProviderCallback) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}
	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isModified(e, target) {
				continue
			}
			data, err := fp.Read(path)
			if err != nil {
				continue
			}
			cb(path, data)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnf("llstack/config: watch %s: %v", path, err)
		}
	}
}

func isModified(e fsnotify.Event, target string) bool {
	if filepath.Clean(e.Name) != target {
		return false
	}
	return e.Op&(fsnotify.Write|fsnotify.Create) != 0
}
