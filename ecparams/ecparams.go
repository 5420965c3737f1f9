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

// Package ecparams defines elliptic curve domain parameters over prime
// fields and the candidate points validated against them.
//
// Curves are in short Weierstrass form y^2 = x^3 + ax + b (mod p). The
// subgroup order and cofactor of a [DomainParameters] value are carried as
// decoded and are NOT validated by this package; see package ecvalidation.
package ecparams

import (
	"encoding/asn1"
	"errors"
	"fmt"
	"math/big"

	"github.com/tink-crypto/tink-go-eckey/internal/ec"
	"github.com/tink-crypto/tink-go-eckey/key"
)

var (
	// ErrInvalidField is returned when the field modulus is not an odd prime
	// greater than 3, or a coefficient is not a reduced field element.
	ErrInvalidField = errors.New("invalid prime field")
	// ErrSingularCurve is returned when 4a^3 + 27b^2 = 0 (mod p).
	ErrSingularCurve = errors.New("singular curve")
	// ErrInvalidGenerator is returned when the generator is not an affine
	// point on the curve.
	ErrInvalidGenerator = errors.New("invalid generator")
)

var bigThree = big.NewInt(3)

// Curve is the curve y^2 = x^3 + ax + b over the prime field of order p.
type Curve struct {
	p, a, b *big.Int
}

func clone(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}

// CheckField returns an error wrapping [ErrInvalidField] if p is not a
// prime greater than 3 or if a or b are not in [0, p).
func CheckField(p, a, b *big.Int) error {
	if p == nil || a == nil || b == nil {
		return fmt.Errorf("%w: missing value", ErrInvalidField)
	}
	if p.Cmp(bigThree) <= 0 || !p.ProbablyPrime(20) {
		return fmt.Errorf("%w: modulus is not a prime > 3", ErrInvalidField)
	}
	if !ec.InField(a, p) || !ec.InField(b, p) {
		return fmt.Errorf("%w: coefficient out of range", ErrInvalidField)
	}
	return nil
}

// NewCurve creates a new Curve.
//
// It fails if p is not a prime greater than 3, a or b are not in [0, p), or
// the curve is singular.
func NewCurve(p, a, b *big.Int) (*Curve, error) {
	if err := CheckField(p, a, b); err != nil {
		return nil, fmt.Errorf("ecparams.NewCurve: %w", err)
	}
	if ec.IsSingular(p, a, b) {
		return nil, fmt.Errorf("ecparams.NewCurve: %w", ErrSingularCurve)
	}
	return &Curve{p: clone(p), a: clone(a), b: clone(b)}, nil
}

// P returns the field modulus.
func (c *Curve) P() *big.Int { return clone(c.p) }

// A returns the coefficient a.
func (c *Curve) A() *big.Int { return clone(c.a) }

// B returns the coefficient b.
func (c *Curve) B() *big.Int { return clone(c.b) }

// FieldSizeInBits returns the bit length of the field modulus.
func (c *Curve) FieldSizeInBits() int {
	if c.p == nil {
		return 0
	}
	return c.p.BitLen()
}

// Contains reports whether pt is an affine point with reduced coordinates
// satisfying the curve equation. The point at infinity is not contained.
func (c *Curve) Contains(pt Point) bool {
	if pt.IsInfinity() || c.p == nil {
		return false
	}
	if !ec.InField(pt.x, c.p) || !ec.InField(pt.y, c.p) {
		return false
	}
	return ec.IsOnCurve(c.p, c.a, c.b, pt.x, pt.y)
}

// Equal tells whether c and other define the same curve.
func (c *Curve) Equal(other *Curve) bool {
	if other == nil || c.p == nil || other.p == nil {
		return other != nil && c.p == nil && other.p == nil
	}
	return c.p.Cmp(other.p) == 0 && c.a.Cmp(other.a) == 0 && c.b.Cmp(other.b) == 0
}

// Point is either an affine point (x, y) or the point at infinity.
//
// The zero value is the point at infinity.
type Point struct {
	x, y *big.Int
}

// NewPoint returns the affine point (x, y). Coordinates are copied; they
// are not checked against any curve.
func NewPoint(x, y *big.Int) Point {
	if x == nil || y == nil {
		return Point{}
	}
	return Point{x: clone(x), y: clone(y)}
}

// Infinity returns the point at infinity.
func Infinity() Point { return Point{} }

// IsInfinity reports whether pt is the point at infinity.
func (pt Point) IsInfinity() bool { return pt.x == nil }

// X returns the x coordinate, or nil for the point at infinity.
func (pt Point) X() *big.Int { return clone(pt.x) }

// Y returns the y coordinate, or nil for the point at infinity.
func (pt Point) Y() *big.Int { return clone(pt.y) }

// Equal tells whether pt and other are the same point.
func (pt Point) Equal(other Point) bool {
	if pt.IsInfinity() || other.IsInfinity() {
		return pt.IsInfinity() == other.IsInfinity()
	}
	return pt.x.Cmp(other.x) == 0 && pt.y.Cmp(other.y) == 0
}

func (pt Point) String() string {
	if pt.IsInfinity() {
		return "(infinity)"
	}
	return fmt.Sprintf("(%x, %x)", pt.x, pt.y)
}

// DomainParameters are the parameters (curve, generator, order, cofactor)
// of an elliptic curve group.
type DomainParameters struct {
	name      string
	oid       asn1.ObjectIdentifier
	curve     *Curve
	generator Point
	order     *big.Int
	cofactor  *big.Int
}

var _ key.Parameters = (*DomainParameters)(nil)

// NewDomainParameters creates new domain parameters.
//
// The generator must be an affine point on curve. The order and cofactor are
// copied as given, including non-positive values, so that an encoding with a
// corrupted order or cofactor can still be represented and rejected by a
// validator. A nil cofactor means the cofactor is absent.
func NewDomainParameters(curve *Curve, generator Point, order, cofactor *big.Int) (*DomainParameters, error) {
	if curve == nil || curve.p == nil {
		return nil, fmt.Errorf("ecparams.NewDomainParameters: %w: curve is not initialized", ErrInvalidField)
	}
	if order == nil {
		return nil, fmt.Errorf("ecparams.NewDomainParameters: order is nil")
	}
	if !curve.Contains(generator) {
		return nil, fmt.Errorf("ecparams.NewDomainParameters: %w: %v", ErrInvalidGenerator, generator)
	}
	return &DomainParameters{
		curve:     curve,
		generator: generator,
		order:     clone(order),
		cofactor:  clone(cofactor),
	}, nil
}

func newNamedDomainParameters(name string, oid asn1.ObjectIdentifier, curve *Curve, generator Point, order, cofactor *big.Int) (*DomainParameters, error) {
	params, err := NewDomainParameters(curve, generator, order, cofactor)
	if err != nil {
		return nil, err
	}
	params.name = name
	params.oid = oid
	return params, nil
}

// Name returns the standard name of the curve, or "" for custom parameters.
func (d *DomainParameters) Name() string { return d.name }

// OID returns the named curve object identifier, or nil for custom
// parameters.
func (d *DomainParameters) OID() asn1.ObjectIdentifier {
	if d.oid == nil {
		return nil
	}
	return append(asn1.ObjectIdentifier(nil), d.oid...)
}

// Curve returns the curve.
func (d *DomainParameters) Curve() *Curve { return d.curve }

// Generator returns the generator point.
func (d *DomainParameters) Generator() Point { return d.generator }

// Order returns the subgroup order as decoded. It may be non-positive.
func (d *DomainParameters) Order() *big.Int { return clone(d.order) }

// Cofactor returns the cofactor as decoded, or nil if absent. It may be
// non-positive.
func (d *DomainParameters) Cofactor() *big.Int { return clone(d.cofactor) }

// FieldSizeInBits returns the bit length of the field modulus.
func (d *DomainParameters) FieldSizeInBits() int { return d.curve.FieldSizeInBits() }

func equalOptional(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Cmp(b) == 0
}

// Equal tells whether d and other have the same curve, generator, order and
// cofactor. Names and OIDs are not compared.
func (d *DomainParameters) Equal(other key.Parameters) bool {
	o, ok := other.(*DomainParameters)
	return ok && o != nil && d.curve.Equal(o.curve) &&
		d.generator.Equal(o.generator) &&
		d.order.Cmp(o.order) == 0 &&
		equalOptional(d.cofactor, o.cofactor)
}

// SameCurveAndGenerator tells whether d and other describe the same curve
// equation and generator, regardless of the claimed order and cofactor.
func (d *DomainParameters) SameCurveAndGenerator(other *DomainParameters) bool {
	return other != nil && d.curve.Equal(other.curve) && d.generator.Equal(other.generator)
}

func (d *DomainParameters) String() string {
	if d.name != "" {
		return d.name
	}
	return fmt.Sprintf("custom(p=%x, n=%v, h=%v)", d.curve.p, d.order, d.cofactor)
}
