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

// Package ec provides utility functions for Elliptic Curves over prime
// fields in short Weierstrass form y^2 = x^3 + ax + b.
package ec

import (
	"fmt"
	"math/big"
)

var (
	bigOne   = big.NewInt(1)
	bigTwo   = big.NewInt(2)
	bigThree = big.NewInt(3)
	bigFour  = big.NewInt(4)
	big27    = big.NewInt(27)
)

// BigIntBytesToFixedSizeBuffer converts a big integer representation to a
// fixed size buffer.
//
// If the bytes representation is smaller, it is padded with leading zeros.
// If the bytes representation is larger, the leading bytes are removed.
// If the bytes representation is larger than the given size, an error is
// returned.
func BigIntBytesToFixedSizeBuffer(bigIntBytes []byte, size int) ([]byte, error) {
	// Nothing to do if the big integer representation is already of the given size.
	if len(bigIntBytes) == size {
		return bigIntBytes, nil
	}
	if len(bigIntBytes) < size {
		// Pad the big integer representation with leading zeros to the given size.
		buf := make([]byte, size-len(bigIntBytes), size)
		return append(buf, bigIntBytes...), nil
	}
	// Remove the leading len(bigIntValue)-size bytes. Fail if any is not zero.
	for i := 0; i < len(bigIntBytes)-size; i++ {
		if bigIntBytes[i] != 0 {
			return nil, fmt.Errorf("big int has invalid size: %v, want %v", len(bigIntBytes)-i, size)
		}
	}
	return bigIntBytes[len(bigIntBytes)-size:], nil
}

// FieldElementSize returns the size in bytes of an element of the prime
// field of order p.
func FieldElementSize(p *big.Int) int { return (p.BitLen() + 7) / 8 }

// FieldElementBytes encodes v as a big-endian octet string of
// FieldElementSize(p) bytes. v must be in [0, p).
func FieldElementBytes(v, p *big.Int) ([]byte, error) {
	if v.Sign() < 0 || v.Cmp(p) >= 0 {
		return nil, fmt.Errorf("field element out of range")
	}
	return v.FillBytes(make([]byte, FieldElementSize(p))), nil
}

// InField reports whether 0 <= v < p.
func InField(v, p *big.Int) bool {
	return v.Sign() >= 0 && v.Cmp(p) < 0
}

// IsSingular reports whether 4a^3 + 27b^2 = 0 (mod p).
func IsSingular(p, a, b *big.Int) bool {
	a3 := new(big.Int).Exp(a, bigThree, p)
	a3.Mul(a3, bigFour)
	b2 := new(big.Int).Exp(b, bigTwo, p)
	b2.Mul(b2, big27)
	d := a3.Add(a3, b2)
	return d.Mod(d, p).Sign() == 0
}

// IsOnCurve reports whether y^2 = x^3 + ax + b (mod p).
//
// x and y are expected to be reduced, i.e. in [0, p).
func IsOnCurve(p, a, b, x, y *big.Int) bool {
	lhs := new(big.Int).Mul(y, y)
	lhs.Mod(lhs, p)

	rhs := new(big.Int).Mul(x, x)
	rhs.Add(rhs, a)
	rhs.Mul(rhs, x)
	rhs.Add(rhs, b)
	rhs.Mod(rhs, p)
	return lhs.Cmp(rhs) == 0
}

// HasseUpperBound returns p + 1 + 2*ceil(sqrt(p)), an upper bound on the
// number of points of any elliptic curve over the prime field of order p.
func HasseUpperBound(p *big.Int) *big.Int {
	s := new(big.Int).Sqrt(p)
	if new(big.Int).Mul(s, s).Cmp(p) != 0 {
		s.Add(s, bigOne)
	}
	s.Lsh(s, 1)
	s.Add(s, p)
	return s.Add(s, bigOne)
}

// DecompressY returns the y coordinate of the point with the given x
// coordinate whose least significant bit equals yBit.
func DecompressY(p, a, b, x *big.Int, yBit uint) (*big.Int, error) {
	if !InField(x, p) {
		return nil, fmt.Errorf("x coordinate out of range")
	}
	rhs := new(big.Int).Mul(x, x)
	rhs.Add(rhs, a)
	rhs.Mul(rhs, x)
	rhs.Add(rhs, b)
	rhs.Mod(rhs, p)
	y := new(big.Int).ModSqrt(rhs, p)
	if y == nil {
		return nil, fmt.Errorf("x coordinate is not on the curve")
	}
	if y.Bit(0) != yBit {
		y.Sub(p, y)
		y.Mod(y, p)
	}
	if y.Bit(0) != yBit {
		// y == 0 has no odd counterpart.
		return nil, fmt.Errorf("invalid compressed point")
	}
	return y, nil
}
