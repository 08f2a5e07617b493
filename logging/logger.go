/*
 * Copyright 2021. Go-Sharding Author All Rights Reserved.
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 *
 *  File author: Anders Xiao
 */

package logging

import (
	"os"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// StandardLogger is the subset of *zap.SugaredLogger used across the project.
type StandardLogger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Panic(args ...interface{})
	Fatal(args ...interface{})
	Debugf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Errorf(template string, args ...interface{})
	Panicf(template string, args ...interface{})
	Fatalf(template string, args ...interface{})
}

var _ StandardLogger = (*zap.SugaredLogger)(nil)

var loggerMutex sync.RWMutex // guards access to global logger state

// loggers is the set of loggers in the system
var loggers = make(map[string]*zap.SugaredLogger)

var levels = make(map[string]zap.AtomicLevel)
var defaultLevel = zapcore.InfoLevel

// logCore is shared by every logger, Configure swaps the underlying core.
var logCore = newSwitchCore(newCore(ColorizedOutput, zapcore.AddSync(os.Stdout)))

func newCore(format LogFormat, output zapcore.WriteSyncer) zapcore.Core {
	conf := zap.NewProductionEncoderConfig()
	conf.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	switch format {
	case JSONOutput:
		encoder = zapcore.NewJSONEncoder(conf)
	case PlaintextOutput:
		conf.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(conf)
	default:
		conf.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(conf)
	}
	// levels are filtered per logger
	return zapcore.NewCore(encoder, output, zapcore.DebugLevel)
}

// Configure changes format and output of all loggers, including the ones already created.
func Configure(format LogFormat, output zapcore.WriteSyncer) {
	if output == nil {
		output = zapcore.AddSync(os.Stdout)
	}
	logCore.store(newCore(format, output))
}

var DefaultLogger = GetLogger("sharding")

func GetLogger(name string) *zap.SugaredLogger {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	log, ok := loggers[name]
	if !ok {
		level, configured := levels[name]
		if !configured {
			level = zap.NewAtomicLevelAt(defaultLevel)
			levels[name] = level
		}

		log = zap.New(logCore, zap.AddCaller()).
			WithOptions(zap.IncreaseLevel(level)).
			Named(name).
			Sugar()

		loggers[name] = log
	}

	return log
}

// SetLevel changes the level of the named logger, or of every logger when name is empty.
func SetLevel(name string, level zapcore.Level) {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	if name == "" {
		defaultLevel = level
		for _, l := range levels {
			l.SetLevel(level)
		}
		return
	}
	if l, ok := levels[name]; ok {
		l.SetLevel(level)
		return
	}
	levels[name] = zap.NewAtomicLevelAt(level)
}

type coreHolder struct {
	core zapcore.Core
}

type switchCore struct {
	v atomic.Value
}

func newSwitchCore(core zapcore.Core) *switchCore {
	c := &switchCore{}
	c.store(core)
	return c
}

func (c *switchCore) store(core zapcore.Core) {
	c.v.Store(coreHolder{core: core})
}

func (c *switchCore) load() zapcore.Core {
	return c.v.Load().(coreHolder).core
}

func (c *switchCore) Enabled(level zapcore.Level) bool {
	return c.load().Enabled(level)
}

func (c *switchCore) With(fields []zapcore.Field) zapcore.Core {
	return c.load().With(fields)
}

func (c *switchCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	return c.load().Check(entry, checked)
}

func (c *switchCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	return c.load().Write(entry, fields)
}

func (c *switchCore) Sync() error {
	return c.load().Sync()
}
