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

package eckey_test

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tink-crypto/tink-go-eckey/eckey"
	"github.com/tink-crypto/tink-go-eckey/ecparams"
	"github.com/tink-crypto/tink-go-eckey/ecvalidation"
	"github.com/tink-crypto/tink-go-eckey/insecuresecretdataaccess"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestPrivateKeyProtoRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		name   string
		params *ecparams.DomainParameters
	}{
		{name: "P-224", params: ecparams.P224()},
		{name: "P-256", params: ecparams.P256()},
		{name: "P-384", params: ecparams.P384()},
		{name: "P-521", params: ecparams.P521()},
		{name: "secp256k1", params: ecparams.Secp256k1()},
		{name: "unnamed P-256", params: unnamedP256(t)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			priv, err := eckey.NewPrivateKey(tc.params, secret([]byte{0xab, 0xcd}))
			if err != nil {
				t.Fatalf("eckey.NewPrivateKey() err = %v, want nil", err)
			}
			serialized, err := priv.MarshalProto(insecuresecretdataaccess.Token{})
			if err != nil {
				t.Fatalf("priv.MarshalProto() err = %v, want nil", err)
			}
			got, err := eckey.ParsePrivateKeyProto(serialized, insecuresecretdataaccess.Token{})
			if err != nil {
				t.Fatalf("eckey.ParsePrivateKeyProto() err = %v, want nil", err)
			}
			if !got.Equal(priv) {
				t.Errorf("eckey.ParsePrivateKeyProto() = %v, want %v", got, priv)
			}
			if diff := cmp.Diff(tc.params.Name(), got.DomainParameters().Name()); diff != "" {
				t.Errorf("Name() returned unexpected diff (-want +got):\n%s", diff)
			}
			if got.DomainParameters().Cofactor().Cmp(tc.params.Cofactor()) != 0 {
				t.Errorf("Cofactor() = %v, want %v", got.DomainParameters().Cofactor(), tc.params.Cofactor())
			}

			pubSerialized, err := priv.PublicKey().MarshalProto()
			if err != nil {
				t.Fatalf("MarshalProto() err = %v, want nil", err)
			}
			gotPub, err := eckey.ParsePublicKeyProto(pubSerialized)
			if err != nil {
				t.Fatalf("eckey.ParsePublicKeyProto() err = %v, want nil", err)
			}
			if !gotPub.Equal(priv.PublicKey()) {
				t.Errorf("eckey.ParsePublicKeyProto() = %v, want %v", gotPub, priv.PublicKey())
			}
		})
	}
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func TestParsePublicKeyProtoByCurveName(t *testing.T) {
	p256 := ecparams.P256()
	g := p256.Generator()
	params := appendBytes(nil, 8, []byte("P-256"))
	var serialized []byte
	serialized = appendBytes(serialized, 2, params)
	serialized = appendBytes(serialized, 3, g.X().Bytes())
	serialized = appendBytes(serialized, 4, g.Y().Bytes())
	// Unknown fields are ignored.
	serialized = protowire.AppendTag(serialized, 15, protowire.VarintType)
	serialized = protowire.AppendVarint(serialized, 1)

	got, err := eckey.ParsePublicKeyProto(serialized)
	if err != nil {
		t.Fatalf("eckey.ParsePublicKeyProto() err = %v, want nil", err)
	}
	if got.DomainParameters() != p256 {
		t.Errorf("got.DomainParameters() = %v, want P-256", got.DomainParameters())
	}
	if !got.Point().Equal(g) {
		t.Errorf("got.Point() = %v, want %v", got.Point(), g)
	}
}

func TestParsePublicKeyProtoValidates(t *testing.T) {
	p256 := ecparams.P256()
	curve := p256.Curve()
	g := p256.Generator()
	explicitParams := func(order, cofactor *big.Int) []byte {
		var b []byte
		b = appendBytes(b, 1, curve.P().Bytes())
		b = appendBytes(b, 2, curve.A().Bytes())
		b = appendBytes(b, 3, curve.B().Bytes())
		b = appendBytes(b, 4, g.X().Bytes())
		b = appendBytes(b, 5, g.Y().Bytes())
		if order.Sign() != 0 {
			b = appendBytes(b, 6, order.Bytes())
		}
		if cofactor != nil {
			b = appendBytes(b, 7, cofactor.Bytes())
		}
		return b
	}
	publicKey := func(params []byte, x, y *big.Int) []byte {
		var b []byte
		b = appendBytes(b, 2, params)
		if x != nil {
			b = appendBytes(b, 3, x.Bytes())
		}
		if y != nil {
			b = appendBytes(b, 4, y.Bytes())
		}
		return b
	}
	for _, tc := range []struct {
		name       string
		serialized []byte
		want       ecvalidation.Reason
	}{
		{
			name:       "missing order",
			serialized: publicKey(explicitParams(big.NewInt(0), big.NewInt(1)), g.X(), g.Y()),
			want:       ecvalidation.InvalidOrder,
		},
		{
			name:       "missing cofactor",
			serialized: publicKey(explicitParams(p256.Order(), nil), g.X(), g.Y()),
			want:       ecvalidation.InvalidCofactor,
		},
		{
			name:       "cofactor equal to order",
			serialized: publicKey(explicitParams(p256.Order(), p256.Order()), g.X(), g.Y()),
			want:       ecvalidation.InvalidCofactor,
		},
		{
			name:       "missing point",
			serialized: publicKey(explicitParams(p256.Order(), big.NewInt(1)), nil, nil),
			want:       ecvalidation.PointAtInfinity,
		},
		{
			name:       "point not on curve",
			serialized: publicKey(explicitParams(p256.Order(), big.NewInt(1)), g.X(), g.X()),
			want:       ecvalidation.PointNotOnCurve,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := eckey.ParsePublicKeyProto(tc.serialized)
			if err == nil {
				t.Fatalf("eckey.ParsePublicKeyProto() err = nil, want error")
			}
			if got := reasonOf(t, err); got != tc.want {
				t.Errorf("reason = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParsePublicKeyProtoFails(t *testing.T) {
	p256 := ecparams.P256()
	g := p256.Generator()
	for _, tc := range []struct {
		name       string
		serialized []byte
	}{
		{name: "empty", serialized: nil},
		{name: "truncated", serialized: []byte{0x12, 0x05, 0x00}},
		{name: "unknown curve name", serialized: appendBytes(nil, 2, appendBytes(nil, 8, []byte("P-257")))},
		{
			name: "unsupported version",
			serialized: appendBytes(
				protowire.AppendVarint(protowire.AppendTag(nil, 1, protowire.VarintType), 1),
				2, appendBytes(nil, 8, []byte("P-256"))),
		},
		{
			name:       "invalid generator",
			serialized: appendBytes(nil, 2, appendBytes(appendBytes(appendBytes(appendBytes(nil, 1, p256.Curve().P().Bytes()), 3, p256.Curve().B().Bytes()), 4, g.X().Bytes()), 5, g.Y().Bytes())),
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := eckey.ParsePublicKeyProto(tc.serialized); err == nil {
				t.Errorf("eckey.ParsePublicKeyProto() err = nil, want error")
			}
		})
	}
}

func TestParsePrivateKeyProtoFailsForMismatchedKeyValue(t *testing.T) {
	p256 := ecparams.P256()
	priv, err := eckey.NewPrivateKey(p256, secret([]byte{0x05}))
	if err != nil {
		t.Fatalf("eckey.NewPrivateKey() err = %v, want nil", err)
	}
	pubSerialized, err := priv.PublicKey().MarshalProto()
	if err != nil {
		t.Fatalf("MarshalProto() err = %v, want nil", err)
	}
	var serialized []byte
	serialized = appendBytes(serialized, 2, pubSerialized)
	serialized = appendBytes(serialized, 3, []byte{0x06})
	if _, err := eckey.ParsePrivateKeyProto(serialized, insecuresecretdataaccess.Token{}); err == nil {
		t.Errorf("eckey.ParsePrivateKeyProto() err = nil, want error")
	}
	if _, err := eckey.ParsePrivateKeyProto(appendBytes(nil, 3, []byte{0x05}), insecuresecretdataaccess.Token{}); err == nil {
		t.Errorf("eckey.ParsePrivateKeyProto(no public key) err = nil, want error")
	}
}
