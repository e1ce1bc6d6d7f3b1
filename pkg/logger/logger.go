// Copyright 2023 LiveKit, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// process-wide logger, set once at startup and read-only afterwards
var defaultLogger = zap.NewNop().Sugar()

type Config struct {
	// valid levels: debug, info, warn, error, fatal, panic
	Level string `yaml:"level,omitempty"`
	JSON  bool   `yaml:"json,omitempty"`
}

func InitFromConfig(conf Config) {
	zc := zap.NewDevelopmentConfig()
	if conf.JSON {
		zc = zap.NewProductionConfig()
	}
	if conf.Level != "" {
		lvl := zapcore.Level(0)
		if err := lvl.UnmarshalText([]byte(conf.Level)); err == nil {
			zc.Level = zap.NewAtomicLevelAt(lvl)
		}
	}

	l, _ := zc.Build(zap.AddCallerSkip(1))
	defaultLogger = l.Sugar()
}

func GetLogger() *zap.SugaredLogger {
	return defaultLogger
}

func Debugw(msg string, keysAndValues ...interface{}) {
	defaultLogger.Debugw(msg, keysAndValues...)
}

func Infow(msg string, keysAndValues ...interface{}) {
	defaultLogger.Infow(msg, keysAndValues...)
}

func Warnw(msg string, err error, keysAndValues ...interface{}) {
	if err != nil {
		keysAndValues = append(keysAndValues, "error", err)
	}
	defaultLogger.Warnw(msg, keysAndValues...)
}

func Errorw(msg string, err error, keysAndValues ...interface{}) {
	if err != nil {
		keysAndValues = append(keysAndValues, "error", err)
	}
	defaultLogger.Errorw(msg, keysAndValues...)
}
