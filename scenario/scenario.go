// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License that can be found in the LICENSE file.

// Package scenario replays scripted operations against a stack and checks their results.
package scenario

import (
	"github.com/mitchellh/mapstructure"

	"trpc.group/trpc-go/llstack/config"
	"trpc.group/trpc-go/llstack/errs"
	"trpc.group/trpc-go/llstack/internal/expandenv"
)

// Ops understood by the runner.
const (
	OpPush     = "push"
	OpPop      = "pop"
	OpPeek     = "peek"
	OpSet      = "set"
	OpSize     = "size"
	OpRender   = "render"
	OpIter     = "iter"
	OpIterMut  = "iter_mut"
	OpDrain    = "drain"
	OpSnapshot = "snapshot"
	OpEqual    = "equal"
	OpReset    = "reset"
)

// DefaultElement is the element kind used when a scenario names none.
const DefaultElement = "int"

// Scenario is a named sequence of steps run against one stack.
type Scenario struct {
	Name    string `mapstructure:"name"`
	Element string `mapstructure:"element"`
	Steps   []Step `mapstructure:"steps"`
}

// Step is one operation. Which of Value, Expect and Empty apply depends on Op.
type Step struct {
	Op     string      `mapstructure:"op"`
	Value  interface{} `mapstructure:"value"`
	Expect interface{} `mapstructure:"expect"`
	Empty  bool        `mapstructure:"empty"`
}

// Decode decodes data with the named codec into a Scenario.
// ${VAR} references in data are replaced by environment values first.
func Decode(data []byte, codecName string) (*Scenario, error) {
	c := config.GetCodec(codecName)
	if c == nil {
		return nil, errs.Newf(errs.RetDecodeFail, "no codec %q", codecName)
	}
	return decode(data, c)
}

// Load reads path through the file provider and decodes it with the codec
// matching its extension.
func Load(path string) (*Scenario, error) {
	data, err := config.NewFileProvider().Read(path)
	if err != nil {
		return nil, errs.Wrapf(err, errs.RetReadFail, "read scenario %s", path)
	}
	return Parse(path, data)
}

// Parse decodes data as the content of path.
func Parse(path string, data []byte) (*Scenario, error) {
	c, err := config.CodecByPath(path)
	if err != nil {
		return nil, errs.Wrapf(err, errs.RetDecodeFail, "scenario %s", path)
	}
	sc, err := decode(data, c)
	if err != nil {
		return nil, err
	}
	if sc.Name == "" {
		sc.Name = path
	}
	return sc, nil
}

func decode(data []byte, c config.Codec) (*Scenario, error) {
	raw := map[string]interface{}{}
	if err := c.Unmarshal(expandenv.ExpandEnv(data), &raw); err != nil {
		return nil, errs.Wrapf(err, errs.RetDecodeFail, "%s unmarshal", c.Name())
	}
	sc := &Scenario{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           sc,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, errs.Wrap(err, errs.RetDecodeFail, "new decoder")
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, errs.Wrap(err, errs.RetDecodeFail, "decode scenario")
	}
	if sc.Element == "" {
		sc.Element = DefaultElement
	}
	return sc, nil
}
