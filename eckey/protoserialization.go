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

package eckey

import (
	"fmt"
	"math/big"

	"github.com/tink-crypto/tink-go-eckey/ecparams"
	"github.com/tink-crypto/tink-go-eckey/insecuresecretdataaccess"
	"github.com/tink-crypto/tink-go-eckey/secretdata"
	"google.golang.org/protobuf/encoding/protowire"
)

// Keys are serialized as the following proto3 messages:
//
//	message EcDomainParameters {
//	  bytes p = 1;
//	  bytes a = 2;
//	  bytes b = 3;
//	  bytes gx = 4;
//	  bytes gy = 5;
//	  bytes order = 6;
//	  bytes cofactor = 7;
//	  string name = 8;
//	}
//
//	message EcPublicKey {
//	  uint32 version = 1;
//	  EcDomainParameters params = 2;
//	  bytes x = 3;
//	  bytes y = 4;
//	}
//
//	message EcPrivateKey {
//	  uint32 version = 1;
//	  EcPublicKey public_key = 2;
//	  bytes key_value = 3;
//	}
//
// Integers are unsigned big-endian. A zero integer is an absent field. When
// name refers to a known named curve and p is absent, the named parameters
// are used.
const (
	protoKeyVersion = 0

	paramsPField        protowire.Number = 1
	paramsAField        protowire.Number = 2
	paramsBField        protowire.Number = 3
	paramsGxField       protowire.Number = 4
	paramsGyField       protowire.Number = 5
	paramsOrderField    protowire.Number = 6
	paramsCofactorField protowire.Number = 7
	paramsNameField     protowire.Number = 8

	publicKeyVersionField protowire.Number = 1
	publicKeyParamsField  protowire.Number = 2
	publicKeyXField       protowire.Number = 3
	publicKeyYField       protowire.Number = 4

	privateKeyVersionField   protowire.Number = 1
	privateKeyPublicKeyField protowire.Number = 2
	privateKeyValueField     protowire.Number = 3
)

func appendBytesField(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendBigIntField(b []byte, num protowire.Number, v *big.Int) []byte {
	if v == nil {
		return b
	}
	return appendBytesField(b, num, v.Bytes())
}

func appendVersionField(b []byte, num protowire.Number, version uint32) []byte {
	if version == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(version))
}

func marshalDomainParameters(params *ecparams.DomainParameters) []byte {
	var b []byte
	curve := params.Curve()
	g := params.Generator()
	b = appendBigIntField(b, paramsPField, curve.P())
	b = appendBigIntField(b, paramsAField, curve.A())
	b = appendBigIntField(b, paramsBField, curve.B())
	b = appendBigIntField(b, paramsGxField, g.X())
	b = appendBigIntField(b, paramsGyField, g.Y())
	b = appendBigIntField(b, paramsOrderField, params.Order())
	b = appendBigIntField(b, paramsCofactorField, params.Cofactor())
	if name := params.Name(); name != "" {
		b = protowire.AppendTag(b, paramsNameField, protowire.BytesType)
		b = protowire.AppendString(b, name)
	}
	return b
}

func marshalPublicKey(k *PublicKey) []byte {
	var b []byte
	b = appendVersionField(b, publicKeyVersionField, protoKeyVersion)
	b = protowire.AppendTag(b, publicKeyParamsField, protowire.BytesType)
	b = protowire.AppendBytes(b, marshalDomainParameters(k.params))
	b = appendBigIntField(b, publicKeyXField, k.point.X())
	b = appendBigIntField(b, publicKeyYField, k.point.Y())
	return b
}

// MarshalProto serializes the public key as an EcPublicKey message.
func (k *PublicKey) MarshalProto() ([]byte, error) {
	return marshalPublicKey(k), nil
}

// MarshalProto serializes the private key as an EcPrivateKey message.
func (k *PrivateKey) MarshalProto(token insecuresecretdataaccess.Token) ([]byte, error) {
	var b []byte
	b = appendVersionField(b, privateKeyVersionField, protoKeyVersion)
	b = protowire.AppendTag(b, privateKeyPublicKeyField, protowire.BytesType)
	b = protowire.AppendBytes(b, marshalPublicKey(k.publicKey))
	b = appendBytesField(b, privateKeyValueField, k.keyValue.Data(token))
	return b, nil
}

// fieldVisitor is called for each field of a message. It returns the number
// of bytes consumed from value, or a negative value on error.
type fieldVisitor func(num protowire.Number, typ protowire.Type, value []byte) int

// walkMessage calls visit for each field of b. Fields visit does not consume
// (it returns 0) are skipped.
func walkMessage(b []byte, visit fieldVisitor) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		m := visit(num, typ, b)
		if m < 0 {
			return protowire.ParseError(m)
		}
		if m == 0 {
			m = protowire.ConsumeFieldValue(num, typ, b)
			if m < 0 {
				return protowire.ParseError(m)
			}
		}
		b = b[m:]
	}
	return nil
}

// consumeBytesField consumes a length-delimited field into dst. It returns 0
// for a wire type mismatch so that the field is skipped as unknown.
func consumeBytesField(typ protowire.Type, value []byte, dst *[]byte) int {
	if typ != protowire.BytesType {
		return 0
	}
	v, n := protowire.ConsumeBytes(value)
	if n < 0 {
		return n
	}
	*dst = v
	return n
}

func consumeVersionField(typ protowire.Type, value []byte, dst *uint64) int {
	if typ != protowire.VarintType {
		return 0
	}
	v, n := protowire.ConsumeVarint(value)
	if n < 0 {
		return n
	}
	*dst = v
	return n
}

func parseDomainParameters(b []byte) (*ecparams.DomainParameters, error) {
	var p, a, bb, gx, gy, order, cofactor, name []byte
	err := walkMessage(b, func(num protowire.Number, typ protowire.Type, value []byte) int {
		switch num {
		case paramsPField:
			return consumeBytesField(typ, value, &p)
		case paramsAField:
			return consumeBytesField(typ, value, &a)
		case paramsBField:
			return consumeBytesField(typ, value, &bb)
		case paramsGxField:
			return consumeBytesField(typ, value, &gx)
		case paramsGyField:
			return consumeBytesField(typ, value, &gy)
		case paramsOrderField:
			return consumeBytesField(typ, value, &order)
		case paramsCofactorField:
			return consumeBytesField(typ, value, &cofactor)
		case paramsNameField:
			return consumeBytesField(typ, value, &name)
		default:
			return 0
		}
	})
	if err != nil {
		return nil, err
	}
	if len(p) == 0 {
		named, ok := ecparams.ByName(string(name))
		if !ok {
			return nil, fmt.Errorf("missing field modulus and unknown curve name %q", name)
		}
		return named, nil
	}
	toInt := func(v []byte) *big.Int { return new(big.Int).SetBytes(v) }
	curve, err := ecparams.NewCurve(toInt(p), toInt(a), toInt(bb))
	if err != nil {
		return nil, err
	}
	var cofactorValue *big.Int
	if len(cofactor) > 0 {
		cofactorValue = toInt(cofactor)
	}
	params, err := ecparams.NewDomainParameters(curve, ecparams.NewPoint(toInt(gx), toInt(gy)), toInt(order), cofactorValue)
	if err != nil {
		return nil, err
	}
	if named, ok := ecparams.Lookup(params); ok && named.Name() == string(name) {
		return named, nil
	}
	return params, nil
}

func parsePublicKey(b []byte) (*PublicKey, error) {
	var version uint64
	var paramsBytes, x, y []byte
	hasParams := false
	err := walkMessage(b, func(num protowire.Number, typ protowire.Type, value []byte) int {
		switch num {
		case publicKeyVersionField:
			return consumeVersionField(typ, value, &version)
		case publicKeyParamsField:
			hasParams = typ == protowire.BytesType
			return consumeBytesField(typ, value, &paramsBytes)
		case publicKeyXField:
			return consumeBytesField(typ, value, &x)
		case publicKeyYField:
			return consumeBytesField(typ, value, &y)
		default:
			return 0
		}
	})
	if err != nil {
		return nil, err
	}
	if version != protoKeyVersion {
		return nil, fmt.Errorf("unsupported public key version: %d", version)
	}
	if !hasParams {
		return nil, fmt.Errorf("missing domain parameters")
	}
	params, err := parseDomainParameters(paramsBytes)
	if err != nil {
		return nil, classifyParametersError(err)
	}
	var point ecparams.Point
	if len(x) > 0 || len(y) > 0 {
		point = ecparams.NewPoint(new(big.Int).SetBytes(x), new(big.Int).SetBytes(y))
	}
	return NewPublicKey(params, point)
}

// ParsePublicKeyProto parses and validates an EcPublicKey message.
func ParsePublicKeyProto(b []byte) (*PublicKey, error) {
	k, err := parsePublicKey(b)
	if err != nil {
		return nil, fmt.Errorf("eckey.ParsePublicKeyProto: %w", err)
	}
	return k, nil
}

// ParsePrivateKeyProto parses and validates an EcPrivateKey message. The
// private scalar must match the public key.
func ParsePrivateKeyProto(b []byte, token insecuresecretdataaccess.Token) (*PrivateKey, error) {
	var version uint64
	var publicKeyBytes, keyValue []byte
	hasPublicKey := false
	err := walkMessage(b, func(num protowire.Number, typ protowire.Type, value []byte) int {
		switch num {
		case privateKeyVersionField:
			return consumeVersionField(typ, value, &version)
		case privateKeyPublicKeyField:
			hasPublicKey = typ == protowire.BytesType
			return consumeBytesField(typ, value, &publicKeyBytes)
		case privateKeyValueField:
			return consumeBytesField(typ, value, &keyValue)
		default:
			return 0
		}
	})
	if err != nil {
		return nil, fmt.Errorf("eckey.ParsePrivateKeyProto: %v", err)
	}
	if version != protoKeyVersion {
		return nil, fmt.Errorf("eckey.ParsePrivateKeyProto: unsupported private key version: %d", version)
	}
	if !hasPublicKey {
		return nil, fmt.Errorf("eckey.ParsePrivateKeyProto: missing public key")
	}
	publicKey, err := parsePublicKey(publicKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("eckey.ParsePrivateKeyProto: %w", err)
	}
	privateKey, err := NewPrivateKeyFromPublicKey(publicKey, secretdata.NewBytesFromData(keyValue, token))
	if err != nil {
		return nil, fmt.Errorf("eckey.ParsePrivateKeyProto: %w", err)
	}
	return privateKey, nil
}
