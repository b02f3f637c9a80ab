// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License that can be found in the LICENSE file.

// Package config provides the codecs and the file provider used to load scenario files.
package config

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	jsoniter "github.com/json-iterator/go"
	yaml "gopkg.in/yaml.v3"
)

// ErrCodecNotExist is returned when no codec is registered for a name or extension.
var ErrCodecNotExist = errors.New("llstack/config: codec not exist")

// Codec defines a codec interface, this will be used to parse config data.
type Codec interface {
	// Name returns codec's name.
	Name() string
	// Unmarshal deserializes the config data bytes into
	// the second input parameter.
	Unmarshal([]byte, interface{}) error
}

var (
	codecMu sync.RWMutex
	codecs  = make(map[string]Codec)
	// extensions maps a file extension to a codec name.
	extensions = map[string]string{
		".yaml": "yaml",
		".yml":  "yaml",
		".json": "json",
		".toml": "toml",
	}
)

func init() {
	RegisterCodec(&YamlCodec{})
	RegisterCodec(&JSONCodec{})
	RegisterCodec(&TomlCodec{})
}

// RegisterCodec registers codec by its name.
func RegisterCodec(c Codec) {
	codecMu.Lock()
	codecs[c.Name()] = c
	codecMu.Unlock()
}

// GetCodec returns the codec by name, nil if not registered.
func GetCodec(name string) Codec {
	codecMu.RLock()
	defer codecMu.RUnlock()
	return codecs[name]
}

// CodecByPath returns the codec matching the extension of path.
func CodecByPath(path string) (Codec, error) {
	name, ok := extensions[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, ErrCodecNotExist
	}
	c := GetCodec(name)
	if c == nil {
		return nil, ErrCodecNotExist
	}
	return c, nil
}

// YamlCodec is yaml codec.
type YamlCodec struct{}

// Name returns yaml codec's name.
func (*YamlCodec) Name() string {
	return "yaml"
}

// Unmarshal deserializes the in bytes into out parameter by yaml.
func (c *YamlCodec) Unmarshal(in []byte, out interface{}) error {
	return yaml.Unmarshal(in, out)
}

// JSONCodec is json codec.
type JSONCodec struct{}

// Name returns json codec's name.
func (*JSONCodec) Name() string {
	return "json"
}

// Unmarshal deserializes the in bytes into out parameter by json.
func (c *JSONCodec) Unmarshal(in []byte, out interface{}) error {
	return jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(in, out)
}

// TomlCodec is toml codec.
type TomlCodec struct{}

// Name returns toml codec's name.
func (*TomlCodec) Name() string {
	return "toml"
}

// Unmarshal deserializes the in bytes into out parameter by toml.
func (c *TomlCodec) Unmarshal(in []byte, out interface{}) error {
	return toml.Unmarshal(in, out)
}
