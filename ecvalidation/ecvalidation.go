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

// Package ecvalidation validates elliptic curve public keys against their
// domain parameters.
//
// Validation is split in two operations with different contracts:
//
//   - [Validator.Validate] performs the cheap checks every key factory must
//     perform: the order is an integer > 1, the cofactor is a small positive
//     integer, the point is not the point at infinity and the point satisfies
//     the curve equation.
//   - [Validator.VerifySubgroupOrder] checks that the point lies in the
//     subgroup of the claimed order. This requires a scalar multiplication
//     and is never performed by Validate.
//
// A valid verdict from Validate does NOT mean the claimed order is correct or
// that the point generates a subgroup of that order. Code that relies on the
// order of the public key, e.g. ECDH, must call VerifySubgroupOrder or use
// trusted (named) domain parameters.
//
// All functions in this package are safe for concurrent use and never
// panic on malformed input: failures are reported as a [Verdict].
package ecvalidation

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/tink-crypto/tink-go-eckey/ecparams"
	"github.com/tink-crypto/tink-go-eckey/internal/ec"
	"github.com/tink-crypto/tink-go-eckey/internal/ecarith"
)

// ErrUnsupportedCurve is returned by VerifySubgroupOrder when no scalar
// multiplication is available for the curve.
var ErrUnsupportedCurve = ecarith.ErrUnsupportedCurve

var defaultMaxCofactor = new(big.Int).Lsh(big.NewInt(1), 32)

// DefaultMaxCofactor returns the largest cofactor accepted by default, 2^32.
//
// Cofactors of curves used in practice are at most 8. Anything close to the
// field size, such as a cofactor equal to p or to the order, indicates a
// corrupted encoding.
func DefaultMaxCofactor() *big.Int { return new(big.Int).Set(defaultMaxCofactor) }

var bigOne = big.NewInt(1)

// Validator validates public keys. The zero value is not usable; use [New].
//
// A Validator is immutable and safe for concurrent use.
type Validator struct {
	maxCofactor *big.Int
}

// Option configures a [Validator].
type Option func(*Validator) error

// WithMaxCofactor sets the largest accepted cofactor. It must be >= 1.
func WithMaxCofactor(maxCofactor *big.Int) Option {
	return func(v *Validator) error {
		if maxCofactor == nil || maxCofactor.Cmp(bigOne) < 0 {
			return fmt.Errorf("max cofactor must be >= 1, got %v", maxCofactor)
		}
		v.maxCofactor = new(big.Int).Set(maxCofactor)
		return nil
	}
}

// New creates a new Validator.
func New(opts ...Option) (*Validator, error) {
	v := &Validator{maxCofactor: DefaultMaxCofactor()}
	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, fmt.Errorf("ecvalidation.New: %v", err)
		}
	}
	return v, nil
}

var defaultValidator = &Validator{maxCofactor: DefaultMaxCofactor()}

// Default returns a Validator with default options.
func Default() *Validator { return defaultValidator }

// Validate validates point as a public key for params using the default
// Validator.
func Validate(params *ecparams.DomainParameters, point ecparams.Point) Verdict {
	return defaultValidator.Validate(params, point)
}

// ValidateParameters validates params using the default Validator.
func ValidateParameters(params *ecparams.DomainParameters) Verdict {
	return defaultValidator.ValidateParameters(params)
}

// VerifySubgroupOrder calls [Validator.VerifySubgroupOrder] on the default
// Validator.
func VerifySubgroupOrder(params *ecparams.DomainParameters, point ecparams.Point) (bool, error) {
	return defaultValidator.VerifySubgroupOrder(params, point)
}

// Validate validates point as a public key for params.
//
// Checks run in order and stop at the first failure:
//
//  1. the order n is > 1 and at most the Hasse bound p+1+2*sqrt(p)
//     ([InvalidOrder]);
//  2. the cofactor h is present, >= 1, <= the maximum cofactor and h*n is at
//     most the Hasse bound ([InvalidCofactor]);
//  3. point is not the point at infinity ([PointAtInfinity]);
//  4. point has coordinates in [0, p) and satisfies the curve equation
//     ([PointNotOnCurve]).
//
// The point at infinity is therefore reported as [PointAtInfinity] only when
// the order and cofactor checks pass; with an invalid order or cofactor the
// verdict names that parameter instead.
//
// Validate does not check that point lies in the subgroup of order n; see
// [Validator.VerifySubgroupOrder].
func (v *Validator) Validate(params *ecparams.DomainParameters, point ecparams.Point) Verdict {
	if verdict := v.ValidateParameters(params); !verdict.Valid() {
		return verdict
	}
	if point.IsInfinity() {
		return invalid(PointAtInfinity, "public key is the point at infinity")
	}
	curve := params.Curve()
	p := curve.P()
	x, y := point.X(), point.Y()
	if !ec.InField(x, p) || !ec.InField(y, p) {
		return invalid(PointNotOnCurve, "coordinate is not in [0, p)")
	}
	if !ec.IsOnCurve(p, curve.A(), curve.B(), x, y) {
		return invalid(PointNotOnCurve, "point %v does not satisfy the curve equation", point)
	}
	return valid()
}

// ValidateParameters performs the order and cofactor checks of
// [Validator.Validate], i.e. the checks that do not depend on the point.
func (v *Validator) ValidateParameters(params *ecparams.DomainParameters) Verdict {
	if params == nil || params.Curve() == nil || params.Curve().P() == nil {
		return invalid(InvalidField, "domain parameters are missing")
	}
	n := params.Order()
	if n == nil || n.Cmp(bigOne) <= 0 {
		return invalid(InvalidOrder, "order %v is not greater than 1", n)
	}
	bound := ec.HasseUpperBound(params.Curve().P())
	if n.Cmp(bound) > 0 {
		return invalid(InvalidOrder, "order %v exceeds the number of points of any curve over the field", n)
	}
	h := params.Cofactor()
	if h == nil {
		return invalid(InvalidCofactor, "cofactor is missing")
	}
	if h.Sign() <= 0 {
		return invalid(InvalidCofactor, "cofactor %v is not positive", h)
	}
	if h.Cmp(v.maxCofactor) > 0 {
		return invalid(InvalidCofactor, "cofactor %v exceeds the maximum %v", h, v.maxCofactor)
	}
	if new(big.Int).Mul(h, n).Cmp(bound) > 0 {
		return invalid(InvalidCofactor, "cofactor %v times order exceeds the number of points of any curve over the field", h)
	}
	return valid()
}

// VerifySubgroupOrder tells whether n*point is the point at infinity, where
// n is the claimed order of params, i.e. whether the order of point divides
// n.
//
// This check is expensive and optional: [Validator.Validate] never performs
// it. Callers that need the guarantee must call this function themselves.
//
// It returns an error if point fails [Validator.Validate], or if no scalar
// multiplication is available for the curve (wrapping [ErrUnsupportedCurve]).
func (v *Validator) VerifySubgroupOrder(params *ecparams.DomainParameters, point ecparams.Point) (bool, error) {
	if err := v.Validate(params, point).Err(); err != nil {
		return false, fmt.Errorf("ecvalidation.VerifySubgroupOrder: %w", err)
	}
	q, err := ecarith.ScalarMult(params, point, params.Order().Bytes())
	if err != nil {
		if errors.Is(err, ecarith.ErrUnsupportedCurve) {
			return false, fmt.Errorf("ecvalidation.VerifySubgroupOrder: %w", err)
		}
		return false, fmt.Errorf("ecvalidation.VerifySubgroupOrder: %v", err)
	}
	return q.IsInfinity(), nil
}

// ValidateCurve checks the field and curve equation: p must be a prime
// greater than 3, a and b must be in [0, p) and the curve must be
// non-singular.
//
// This check belongs to parameter construction; [ecparams.NewCurve]
// performs the same checks.
func ValidateCurve(p, a, b *big.Int) Verdict {
	if err := ecparams.CheckField(p, a, b); err != nil {
		return invalid(InvalidField, "%v", err)
	}
	if ec.IsSingular(p, a, b) {
		return invalid(CurveSingular, "4a^3 + 27b^2 = 0 (mod p)")
	}
	return valid()
}

// ValidateGenerator checks that g is an affine point on curve.
func ValidateGenerator(curve *ecparams.Curve, g ecparams.Point) Verdict {
	if curve == nil || curve.P() == nil {
		return invalid(InvalidField, "curve is missing")
	}
	if !curve.Contains(g) {
		return invalid(InvalidGenerator, "generator %v is not on the curve", g)
	}
	return valid()
}
