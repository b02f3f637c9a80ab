// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License that can be found in the LICENSE file.

package log

// Output names of the built-in writers.
const (
	OutputConsole = "console"
	OutputStderr  = "stderr"
)

// Config is the log config. Each log may have multiple outputs.
type Config []OutputConfig

// OutputConfig is the output config, includes console, stderr or a registered writer.
type OutputConfig struct {
	// Writer is the output of log, such as console or stderr.
	Writer string `yaml:"writer"`
	// Level controls the log level, like debug, info or error.
	Level string `yaml:"level"`
	// Formatter is the format of log, such as console or json.
	Formatter string `yaml:"formatter"`
	// FormatConfig configures the output keys.
	FormatConfig FormatConfig `yaml:"formatter_config"`
	// EnableColor determines if the output is colored. The default value is false.
	EnableColor bool `yaml:"enable_color"`
}

// FormatConfig is the log format config.
type FormatConfig struct {
	// TimeFmt is the time format of log output, default as "2006-01-02 15:04:05.000" on empty.
	// "seconds", "milliseconds" and "nanoseconds" select epoch encoders,
	// a pattern containing '%' is a strftime pattern, anything else is a Go time layout.
	TimeFmt string `yaml:"time_fmt"`

	// TimeKey is the time key of log output, default as "T".
	TimeKey string `yaml:"time_key"`
	// LevelKey is the level key of log output, default as "L".
	LevelKey string `yaml:"level_key"`
	// NameKey is the name key of log output, default as "N".
	NameKey string `yaml:"name_key"`
	// CallerKey is the caller key of log output, default as "C".
	CallerKey string `yaml:"caller_key"`
	// MessageKey is the message key of log output, default as "M".
	MessageKey string `yaml:"message_key"`
	// StacktraceKey is the stack trace key of log output, default as "S".
	StacktraceKey string `yaml:"stacktrace_key"`
}
