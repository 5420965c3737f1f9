// Copyright 2025 Google LLC
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

package ecder

import (
	"fmt"
	"math/big"

	"github.com/tink-crypto/tink-go-eckey/ecparams"
	"github.com/tink-crypto/tink-go-eckey/internal/ec"
)

// Point encoding prefixes, SEC 1 v2.0 Section 2.3.3.
const (
	infinityPrefix     = 0x00
	compressedEven     = 0x02
	compressedOdd      = 0x03
	uncompressedPrefix = 0x04
)

// MarshalPoint encodes pt as per [SEC 1 v2.0, Section 2.3.3] using the
// uncompressed form. The point at infinity is encoded as a single zero byte.
//
// The coordinates must be in [0, p); pt need not be on the curve.
//
// [SEC 1 v2.0, Section 2.3.3]: https://www.secg.org/sec1-v2.pdf#page=17.08
func MarshalPoint(curve *ecparams.Curve, pt ecparams.Point) ([]byte, error) {
	if pt.IsInfinity() {
		return []byte{infinityPrefix}, nil
	}
	p := curve.P()
	x, err := ec.FieldElementBytes(pt.X(), p)
	if err != nil {
		return nil, fmt.Errorf("ecder.MarshalPoint: x: %v", err)
	}
	y, err := ec.FieldElementBytes(pt.Y(), p)
	if err != nil {
		return nil, fmt.Errorf("ecder.MarshalPoint: y: %v", err)
	}
	out := make([]byte, 0, 1+len(x)+len(y))
	out = append(out, uncompressedPrefix)
	out = append(out, x...)
	return append(out, y...), nil
}

// MarshalCompressedPoint encodes pt using the compressed form of SEC 1 v2.0.
func MarshalCompressedPoint(curve *ecparams.Curve, pt ecparams.Point) ([]byte, error) {
	if pt.IsInfinity() {
		return []byte{infinityPrefix}, nil
	}
	p := curve.P()
	x, err := ec.FieldElementBytes(pt.X(), p)
	if err != nil {
		return nil, fmt.Errorf("ecder.MarshalCompressedPoint: x: %v", err)
	}
	if !ec.InField(pt.Y(), p) {
		return nil, fmt.Errorf("ecder.MarshalCompressedPoint: y out of range")
	}
	prefix := byte(compressedEven)
	if pt.Y().Bit(0) == 1 {
		prefix = compressedOdd
	}
	return append([]byte{prefix}, x...), nil
}

// ParsePoint decodes a SEC 1 v2.0 point encoding.
//
// Uncompressed points are returned as encoded, without checking that they
// lie on the curve. Compressed points are decompressed, which fails if x
// is not the x coordinate of a curve point. A single zero byte decodes to
// the point at infinity.
func ParsePoint(curve *ecparams.Curve, data []byte) (ecparams.Point, error) {
	if len(data) == 0 {
		return ecparams.Point{}, fmt.Errorf("ecder.ParsePoint: empty encoding")
	}
	p := curve.P()
	size := ec.FieldElementSize(p)
	switch data[0] {
	case infinityPrefix:
		if len(data) != 1 {
			return ecparams.Point{}, fmt.Errorf("ecder.ParsePoint: invalid encoding of the point at infinity")
		}
		return ecparams.Infinity(), nil
	case uncompressedPrefix:
		if len(data) != 1+2*size {
			return ecparams.Point{}, fmt.Errorf("ecder.ParsePoint: invalid uncompressed point size: %d, want %d", len(data), 1+2*size)
		}
		x := new(big.Int).SetBytes(data[1 : 1+size])
		y := new(big.Int).SetBytes(data[1+size:])
		return ecparams.NewPoint(x, y), nil
	case compressedEven, compressedOdd:
		if len(data) != 1+size {
			return ecparams.Point{}, fmt.Errorf("ecder.ParsePoint: invalid compressed point size: %d, want %d", len(data), 1+size)
		}
		x := new(big.Int).SetBytes(data[1:])
		y, err := ec.DecompressY(p, curve.A(), curve.B(), x, uint(data[0]&1))
		if err != nil {
			return ecparams.Point{}, fmt.Errorf("ecder.ParsePoint: %v", err)
		}
		return ecparams.NewPoint(x, y), nil
	default:
		return ecparams.Point{}, fmt.Errorf("ecder.ParsePoint: unknown point format 0x%02x", data[0])
	}
}
