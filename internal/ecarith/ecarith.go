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

// Package ecarith selects an existing scalar multiplication implementation
// for a set of domain parameters.
//
// This package does not implement curve arithmetic. It maps the curve
// equation and generator of [ecparams.DomainParameters] to crypto/elliptic
// or to github.com/decred/dcrd/dcrec/secp256k1/v4.
package ecarith

import (
	"crypto/elliptic"
	"errors"
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/tink-crypto/tink-go-eckey/ecparams"
)

// ErrUnsupportedCurve is returned when no arithmetic backend exists for a
// curve.
var ErrUnsupportedCurve = errors.New("unsupported curve")

var bigThree = big.NewInt(3)

// Arithmetic is the subset of [elliptic.Curve] used by this module.
//
// The point at infinity is represented as (0, 0), as in crypto/elliptic.
// Inputs to ScalarMult must be points on the curve.
type Arithmetic interface {
	// ScalarMult returns k*(x, y) where k is a big-endian integer.
	ScalarMult(x, y *big.Int, k []byte) (*big.Int, *big.Int)
	// ScalarBaseMult returns k*G where G is the generator and k is a
	// big-endian integer.
	ScalarBaseMult(k []byte) (*big.Int, *big.Int)
}

var (
	_ Arithmetic = elliptic.P256()
	_ Arithmetic = secp256k1.S256()
)

type backend struct {
	params *ecparams.DomainParameters
	curve  Arithmetic
}

var backends = []backend{
	{params: ecparams.P224(), curve: elliptic.P224()},
	{params: ecparams.P256(), curve: elliptic.P256()},
	{params: ecparams.P384(), curve: elliptic.P384()},
	{params: ecparams.P521(), curve: elliptic.P521()},
	{params: ecparams.Secp256k1(), curve: secp256k1.S256()},
}

// ForParameters returns the arithmetic for the curve and generator of
// params. The claimed order and cofactor are ignored.
//
// Standard curves use their dedicated implementation. Other curves with
// a = -3 use the generic [elliptic.CurveParams] implementation. Any other
// curve yields [ErrUnsupportedCurve].
func ForParameters(params *ecparams.DomainParameters) (Arithmetic, error) {
	if params == nil {
		return nil, fmt.Errorf("ecarith.ForParameters: parameters are nil")
	}
	for _, b := range backends {
		if b.params.SameCurveAndGenerator(params) {
			return b.curve, nil
		}
	}
	curve := params.Curve()
	p := curve.P()
	minusThree := new(big.Int).Sub(p, bigThree)
	if curve.A().Cmp(minusThree) != 0 {
		return nil, fmt.Errorf("ecarith.ForParameters: %w: %v", ErrUnsupportedCurve, params)
	}
	g := params.Generator()
	cp := &elliptic.CurveParams{
		P:       p,
		N:       params.Order(),
		B:       curve.B(),
		Gx:      g.X(),
		Gy:      g.Y(),
		BitSize: p.BitLen(),
		Name:    params.String(),
	}
	return cp, nil
}

// ToPoint converts a crypto/elliptic style result to an [ecparams.Point].
func ToPoint(x, y *big.Int) ecparams.Point {
	if x.Sign() == 0 && y.Sign() == 0 {
		return ecparams.Infinity()
	}
	return ecparams.NewPoint(x, y)
}

// ScalarBaseMult returns k*G for the generator G of params.
func ScalarBaseMult(params *ecparams.DomainParameters, k []byte) (ecparams.Point, error) {
	arith, err := ForParameters(params)
	if err != nil {
		return ecparams.Point{}, err
	}
	return ToPoint(arith.ScalarBaseMult(k)), nil
}

// ScalarMult returns k*pt. pt must be an affine point on the curve of
// params.
func ScalarMult(params *ecparams.DomainParameters, pt ecparams.Point, k []byte) (ecparams.Point, error) {
	if !params.Curve().Contains(pt) {
		return ecparams.Point{}, fmt.Errorf("ecarith.ScalarMult: point is not on the curve")
	}
	arith, err := ForParameters(params)
	if err != nil {
		return ecparams.Point{}, err
	}
	return ToPoint(arith.ScalarMult(pt.X(), pt.Y(), k)), nil
}
