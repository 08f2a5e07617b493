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

package comparison

import (
	"fmt"
	"reflect"
	"strings"
)

type numberClass int

const (
	classUnsupported numberClass = iota
	classSigned
	classUnsigned
	classFloat
	classString
)

func classOf(value interface{}) numberClass {
	if value == nil {
		return classUnsupported
	}
	switch reflect.TypeOf(value).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return classSigned
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return classUnsigned
	case reflect.Float32, reflect.Float64:
		return classFloat
	case reflect.String:
		return classString
	}
	return classUnsupported
}

func IsCompareSupported(value interface{}) bool {
	return classOf(value) != classUnsupported
}

// IsNumber reports whether value is an integer or float kind.
func IsNumber(value interface{}) bool {
	c := classOf(value)
	return c == classSigned || c == classUnsigned || c == classFloat
}

// Compare returns -1, 0 or 1. Integers of different widths and signedness are compared by value,
// an integer and a float are compared as float64. Strings only compare with strings.
func Compare(a, b interface{}) (int, error) {
	ca, cb := classOf(a), classOf(b)
	if ca == classUnsupported || cb == classUnsupported {
		return 0, fmt.Errorf("unsupported type for comparison: %T and %T", a, b)
	}
	if (ca == classString) != (cb == classString) {
		return 0, fmt.Errorf("values have different types cannot be compared, type a: %#v, type b: %#v", a, b)
	}

	va := reflect.ValueOf(a)
	vb := reflect.ValueOf(b)

	switch {
	case ca == classString:
		return strings.Compare(va.String(), vb.String()), nil
	case ca == classFloat || cb == classFloat:
		return compareFloat(toFloat(va, ca), toFloat(vb, cb)), nil
	case ca == classSigned && cb == classSigned:
		return compareInt(va.Int(), vb.Int()), nil
	case ca == classUnsigned && cb == classUnsigned:
		return compareUint(va.Uint(), vb.Uint()), nil
	case ca == classSigned:
		if va.Int() < 0 {
			return -1, nil
		}
		return compareUint(uint64(va.Int()), vb.Uint()), nil
	default:
		if vb.Int() < 0 {
			return 1, nil
		}
		return compareUint(va.Uint(), uint64(vb.Int())), nil
	}
}

func Min(a, b interface{}) (interface{}, error) {
	r, err := Compare(a, b)
	if err != nil {
		return nil, err
	}
	if r <= 0 {
		return a, nil
	}
	return b, nil
}

func Max(a, b interface{}) (interface{}, error) {
	r, err := Compare(a, b)
	if err != nil {
		return nil, err
	}
	if r >= 0 {
		return a, nil
	}
	return b, nil
}

// ToInt64 converts integer kinds to int64, floats are accepted only when they hold an integral value.
func ToInt64(value interface{}) (int64, bool) {
	switch classOf(value) {
	case classSigned:
		return reflect.ValueOf(value).Int(), true
	case classUnsigned:
		u := reflect.ValueOf(value).Uint()
		if u > 1<<63-1 {
			return 0, false
		}
		return int64(u), true
	case classFloat:
		f := reflect.ValueOf(value).Float()
		if f != float64(int64(f)) {
			return 0, false
		}
		return int64(f), true
	}
	return 0, false
}

func toFloat(v reflect.Value, c numberClass) float64 {
	switch c {
	case classSigned:
		return float64(v.Int())
	case classUnsigned:
		return float64(v.Uint())
	}
	return v.Float()
}

func compareInt(x, y int64) int {
	if x < y {
		return -1
	} else if x == y {
		return 0
	}
	return 1
}

func compareUint(x, y uint64) int {
	if x < y {
		return -1
	} else if x == y {
		return 0
	}
	return 1
}

func compareFloat(x, y float64) int {
	if x < y {
		return -1
	} else if x == y {
		return 0
	}
	return 1
}
