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

package ecparams

import (
	"crypto/elliptic"
	"encoding/asn1"
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Named curve object identifiers, RFC 5480 Section 2.1.1.1 and RFC 5639
// Section 4.1.
var (
	OIDNamedCurveP224            = asn1.ObjectIdentifier{1, 3, 132, 0, 33}
	OIDNamedCurveP256            = asn1.ObjectIdentifier{1, 2, 840, 10045, 3, 1, 7}
	OIDNamedCurveP384            = asn1.ObjectIdentifier{1, 3, 132, 0, 34}
	OIDNamedCurveP521            = asn1.ObjectIdentifier{1, 3, 132, 0, 35}
	OIDNamedCurveSecp256k1       = asn1.ObjectIdentifier{1, 3, 132, 0, 10}
	OIDNamedCurveBrainpoolP256r1 = asn1.ObjectIdentifier{1, 3, 36, 3, 3, 2, 8, 1, 1, 7}
)

var (
	p224            = mustNISTDomainParameters(elliptic.P224(), OIDNamedCurveP224)
	p256            = mustNISTDomainParameters(elliptic.P256(), OIDNamedCurveP256)
	p384            = mustNISTDomainParameters(elliptic.P384(), OIDNamedCurveP384)
	p521            = mustNISTDomainParameters(elliptic.P521(), OIDNamedCurveP521)
	secp256k1Params = mustSecp256k1DomainParameters()
	brainpoolP256r1 = mustHexDomainParameters("brainpoolP256r1", OIDNamedCurveBrainpoolP256r1,
		"a9fb57dba1eea9bc3e660a909d838d726e3bf623d52620282013481d1f6e5377",
		"7d5a0975fc2c3057eef67530417affe7fb8055c126dc5c6ce94a4b44f330b5d9",
		"26dc5c6ce94a4b44f330b5d9bbd77cbf958416295cf7e1ce6bccdc18ff8c07b6",
		"8bd2aeb9cb7e57cb2c4b482ffc81b7afb9de27e1e3bd23c23a4453bd9ace3262",
		"547ef835c3dac4fd97f8461a14611dc9c27745132ded8e545c1d54c72f046997",
		"a9fb57dba1eea9bc3e660a909d838d718c397aa3b561a6f7901e0e82974856a7")

	named = []*DomainParameters{p224, p256, p384, p521, secp256k1Params, brainpoolP256r1}
)

func mustDomainParameters(name string, oid asn1.ObjectIdentifier, p, a, b, gx, gy, n *big.Int) *DomainParameters {
	curve, err := NewCurve(p, a, b)
	if err != nil {
		panic(fmt.Sprintf("ecparams: invalid curve %s: %v", name, err))
	}
	params, err := newNamedDomainParameters(name, oid, curve, NewPoint(gx, gy), n, big.NewInt(1))
	if err != nil {
		panic(fmt.Sprintf("ecparams: invalid domain parameters %s: %v", name, err))
	}
	return params
}

// NIST curves all have a = -3.
func mustNISTDomainParameters(c elliptic.Curve, oid asn1.ObjectIdentifier) *DomainParameters {
	cp := c.Params()
	a := new(big.Int).Sub(cp.P, bigThree)
	return mustDomainParameters(cp.Name, oid, cp.P, a, cp.B, cp.Gx, cp.Gy, cp.N)
}

func mustSecp256k1DomainParameters() *DomainParameters {
	cp := secp256k1.S256().Params()
	return mustDomainParameters("secp256k1", OIDNamedCurveSecp256k1, cp.P, new(big.Int), cp.B, cp.Gx, cp.Gy, cp.N)
}

func mustHexDomainParameters(name string, oid asn1.ObjectIdentifier, p, a, b, gx, gy, n string) *DomainParameters {
	values := make([]*big.Int, 0, 6)
	for _, h := range []string{p, a, b, gx, gy, n} {
		v, ok := new(big.Int).SetString(h, 16)
		if !ok {
			panic(fmt.Sprintf("ecparams: invalid constant for %s: %q", name, h))
		}
		values = append(values, v)
	}
	return mustDomainParameters(name, oid, values[0], values[1], values[2], values[3], values[4], values[5])
}

// P224 returns the NIST P-224 domain parameters.
func P224() *DomainParameters { return p224 }

// P256 returns the NIST P-256 domain parameters.
func P256() *DomainParameters { return p256 }

// P384 returns the NIST P-384 domain parameters.
func P384() *DomainParameters { return p384 }

// P521 returns the NIST P-521 domain parameters.
func P521() *DomainParameters { return p521 }

// Secp256k1 returns the SEC 2 secp256k1 domain parameters.
func Secp256k1() *DomainParameters { return secp256k1Params }

// BrainpoolP256r1 returns the RFC 5639 brainpoolP256r1 domain parameters.
func BrainpoolP256r1() *DomainParameters { return brainpoolP256r1 }

// Named returns all named domain parameters known to this package.
func Named() []*DomainParameters {
	return append([]*DomainParameters(nil), named...)
}

// ByOID returns the named domain parameters with the given object
// identifier.
func ByOID(oid asn1.ObjectIdentifier) (*DomainParameters, bool) {
	for _, params := range named {
		if params.oid.Equal(oid) {
			return params, true
		}
	}
	return nil, false
}

// ByName returns the named domain parameters with the given name, e.g.
// "P-256" or "secp256k1".
func ByName(name string) (*DomainParameters, bool) {
	for _, params := range named {
		if params.name == name {
			return params, true
		}
	}
	return nil, false
}

// Lookup returns the named domain parameters equal to params, ignoring
// names and OIDs. It is used to recognize explicitly encoded standard
// curves.
func Lookup(params *DomainParameters) (*DomainParameters, bool) {
	for _, n := range named {
		if n.Equal(params) {
			return n, true
		}
	}
	return nil, false
}
