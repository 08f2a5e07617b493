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

package command

import (
	"reflect"

	"github.com/pingcap/parser/ast"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/endink/go-sharding/logging"
)

var log = logging.GetLogger("command")

// Matcher reports whether a statement belongs to a tag, it must only depend on the statement type.
type Matcher func(stmt ast.StmtNode) bool

// Is matches statements of type T, T may be a concrete type or an interface.
func Is[T any]() Matcher {
	return func(stmt ast.StmtNode) bool {
		_, ok := stmt.(T)
		return ok
	}
}

type Association struct {
	Tag      Tag
	Matchers []Matcher
}

func Associate(tag Tag, matchers ...Matcher) Association {
	return Association{Tag: tag, Matchers: matchers}
}

type classification struct {
	tag Tag
	ok  bool
}

// Classifier maps statements to tags, the first association with a matching matcher wins.
// Results are cached per statement type, including misses.
type Classifier struct {
	associations []Association
	cache        *xsync.MapOf[reflect.Type, classification]
}

func NewClassifier(associations ...Association) *Classifier {
	list := make([]Association, len(associations))
	copy(list, associations)
	return &Classifier{
		associations: list,
		cache:        xsync.NewMapOf[reflect.Type, classification](),
	}
}

func (c *Classifier) Classify(stmt ast.StmtNode) (Tag, bool) {
	if stmt == nil {
		return 0, false
	}
	r, loaded := c.cache.LoadOrCompute(reflect.TypeOf(stmt), func() classification {
		return c.scan(stmt)
	})
	if loaded {
		classifyCounter.WithLabelValues(cacheHit).Inc()
	} else {
		classifyCounter.WithLabelValues(cacheMiss).Inc()
		if !r.ok {
			log.Debugf("no command tag is associated with statement type %T", stmt)
		}
	}
	return r.tag, r.ok
}

func (c *Classifier) scan(stmt ast.StmtNode) classification {
	for _, a := range c.associations {
		for _, match := range a.Matchers {
			if match(stmt) {
				return classification{tag: a.Tag, ok: true}
			}
		}
	}
	return classification{}
}

// CacheSize returns the number of statement types seen so far.
func (c *Classifier) CacheSize() int {
	return c.cache.Size()
}
