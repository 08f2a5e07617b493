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

package strategy

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

var _ PreciseAlgorithm = &HashMod{}

// HashMod picks the targets whose numeric name suffix equals xxhash(value) % Count.
// Hashing is not monotonic, so ranges always get every candidate.
type HashMod struct {
	Count uint64
}

func NewHashMod(count int64) (*HashMod, error) {
	if count <= 0 {
		return nil, errors.New("hash-mod sharding count must be greater than zero")
	}
	return &HashMod{Count: uint64(count)}, nil
}

func (h *HashMod) DoPreciseSharding(availableTargetNames []string, _ string, value interface{}) ([]string, error) {
	return matchSuffix(availableTargetNames, int64(h.Sum(value)%h.Count)), nil
}

func (h *HashMod) Sum(value interface{}) uint64 {
	switch v := value.(type) {
	case string:
		return xxhash.Sum64String(v)
	case []byte:
		return xxhash.Sum64(v)
	}
	return xxhash.Sum64String(fmt.Sprint(value))
}

func (h *HashMod) String() string {
	return fmt.Sprintf("hash-mod(%d)", h.Count)
}
