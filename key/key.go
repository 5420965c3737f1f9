// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package key defines interfaces for Key and Parameters types.
package key

// Parameters represents the public parameters a key is defined over, e.g.
// elliptic curve domain parameters.
type Parameters interface {
	// Equal compares this parameters object with other. Two parameters objects
	// are equal if keys defined over them are interchangeable, regardless of
	// how the parameters were named or encoded.
	Equal(other Parameters) bool
}

// Key represents a key.
type Key interface {
	// Parameters returns the parameters of this key.
	Parameters() Parameters
	// Equal compares this key object with other.
	Equal(other Key) bool
}
