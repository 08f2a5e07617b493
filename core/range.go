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

package core

import (
	"errors"
	"fmt"

	"github.com/endink/go-sharding/core/comparison"
)

type Range interface {
	fmt.Stringer
	LowerBound() interface{}
	UpperBound() interface{}
	HasLower() bool
	HasUpper() bool
	IsLowerClosed() bool
	IsUpperClosed() bool
	ContainsValue(value interface{}) (bool, error)
	HasIntersection(v Range) (bool, error)
	// Intersect returns nil when the two ranges have nothing in common.
	Intersect(v Range) (Range, error)
}

var (
	ErrRangeBoundTypeNotSame     = errors.New("different types of boundary values cannot create range")
	ErrRangeInvalidBound         = errors.New("the lower bound of the range cannot be greater than the upper bound")
	ErrRangeBoundTypeUnsupported = errors.New("boundary value types for the range are not supported")
)

type defaultRange struct {
	lower       interface{}
	upper       interface{}
	hasL        bool
	hasU        bool
	lowerClosed bool
	upperClosed bool
}

// NewRange creates a range including both bounds, a nil bound means unbounded.
func NewRange(lower interface{}, upper interface{}) (Range, error) {
	return NewRangeWithBounds(lower, true, upper, true)
}

func NewRangeClose(lower interface{}, upper interface{}) (Range, error) {
	return NewRangeWithBounds(lower, true, upper, true)
}

func NewRangeOpen(lower interface{}, upper interface{}) (Range, error) {
	return NewRangeWithBounds(lower, false, upper, false)
}

// NewRangeClosedOpen creates [lower, upper).
func NewRangeClosedOpen(lower interface{}, upper interface{}) (Range, error) {
	return NewRangeWithBounds(lower, true, upper, false)
}

func NewRangeWithBounds(lower interface{}, lowerClosed bool, upper interface{}, upperClosed bool) (Range, error) {
	r := &defaultRange{}

	if lower != nil {
		if !comparison.IsCompareSupported(lower) {
			return nil, ErrRangeBoundTypeUnsupported
		}
		r.hasL = true
		r.lower = lower
		r.lowerClosed = lowerClosed
	}

	if upper != nil {
		if !comparison.IsCompareSupported(upper) {
			return nil, ErrRangeBoundTypeUnsupported
		}
		r.hasU = true
		r.upper = upper
		r.upperClosed = upperClosed
	}

	if r.hasL && r.hasU {
		c, err := comparison.Compare(r.lower, r.upper)
		if err != nil {
			return nil, ErrRangeBoundTypeNotSame
		}
		if c > 0 || (c == 0 && !(r.lowerClosed && r.upperClosed)) {
			return nil, ErrRangeInvalidBound
		}
	}

	return r, nil
}

func (d *defaultRange) LowerBound() interface{} {
	return d.lower
}

func (d *defaultRange) UpperBound() interface{} {
	return d.upper
}

func (d *defaultRange) HasLower() bool {
	return d.hasL
}

func (d *defaultRange) HasUpper() bool {
	return d.hasU
}

func (d *defaultRange) IsLowerClosed() bool {
	return d.hasL && d.lowerClosed
}

func (d *defaultRange) IsUpperClosed() bool {
	return d.hasU && d.upperClosed
}

func (d *defaultRange) ContainsValue(value interface{}) (bool, error) {
	if d.hasL {
		c, err := comparison.Compare(value, d.lower)
		if err != nil {
			return false, err
		}
		if c < 0 || (c == 0 && !d.lowerClosed) {
			return false, nil
		}
	}

	if d.hasU {
		c, err := comparison.Compare(value, d.upper)
		if err != nil {
			return false, err
		}
		if c > 0 || (c == 0 && !d.upperClosed) {
			return false, nil
		}
	}
	return true, nil
}

func (d *defaultRange) HasIntersection(v Range) (bool, error) {
	r, err := d.Intersect(v)
	if err != nil {
		return false, err
	}
	return r != nil, nil
}

func (d *defaultRange) Intersect(v Range) (Range, error) {
	if v == nil {
		return nil, errors.New("the range used to intersect cannot be nil")
	}

	n := &defaultRange{}

	switch {
	case d.hasL && v.HasLower():
		c, err := comparison.Compare(d.lower, v.LowerBound())
		if err != nil {
			return nil, err
		}
		switch {
		case c > 0:
			n.lower, n.lowerClosed = d.lower, d.lowerClosed
		case c < 0:
			n.lower, n.lowerClosed = v.LowerBound(), v.IsLowerClosed()
		default:
			n.lower, n.lowerClosed = d.lower, d.lowerClosed && v.IsLowerClosed()
		}
		n.hasL = true
	case d.hasL:
		n.lower, n.lowerClosed, n.hasL = d.lower, d.lowerClosed, true
	case v.HasLower():
		n.lower, n.lowerClosed, n.hasL = v.LowerBound(), v.IsLowerClosed(), true
	}

	switch {
	case d.hasU && v.HasUpper():
		c, err := comparison.Compare(d.upper, v.UpperBound())
		if err != nil {
			return nil, err
		}
		switch {
		case c < 0:
			n.upper, n.upperClosed = d.upper, d.upperClosed
		case c > 0:
			n.upper, n.upperClosed = v.UpperBound(), v.IsUpperClosed()
		default:
			n.upper, n.upperClosed = d.upper, d.upperClosed && v.IsUpperClosed()
		}
		n.hasU = true
	case d.hasU:
		n.upper, n.upperClosed, n.hasU = d.upper, d.upperClosed, true
	case v.HasUpper():
		n.upper, n.upperClosed, n.hasU = v.UpperBound(), v.IsUpperClosed(), true
	}

	if n.hasL && n.hasU {
		c, err := comparison.Compare(n.lower, n.upper)
		if err != nil {
			return nil, err
		}
		if c > 0 || (c == 0 && !(n.lowerClosed && n.upperClosed)) {
			return nil, nil
		}
	}
	return n, nil
}

func (d *defaultRange) String() string {
	left, right := "(", ")"
	var min, max string
	if d.hasL {
		min = fmt.Sprint(d.lower)
		if d.lowerClosed {
			left = "["
		}
	}
	if d.hasU {
		max = fmt.Sprint(d.upper)
		if d.upperClosed {
			right = "]"
		}
	}
	return fmt.Sprintf("%s%s..%s%s", left, min, max, right)
}
