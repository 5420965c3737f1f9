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

// Package eckey provides validated elliptic curve public and private keys
// over arbitrary prime-field domain parameters.
//
// Every constructor and parser in this package validates the public key with
// [ecvalidation.Validate]. A *PublicKey value therefore always has a well
// formed order and cofactor and a finite point on the curve. Validation
// errors wrap an [*ecvalidation.ValidationError] and can be inspected with
// errors.As.
package eckey

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/tink-crypto/tink-go-eckey/ecder"
	"github.com/tink-crypto/tink-go-eckey/ecparams"
	"github.com/tink-crypto/tink-go-eckey/ecvalidation"
	"github.com/tink-crypto/tink-go-eckey/insecuresecretdataaccess"
	"github.com/tink-crypto/tink-go-eckey/internal/ec"
	"github.com/tink-crypto/tink-go-eckey/internal/ecarith"
	"github.com/tink-crypto/tink-go-eckey/key"
	"github.com/tink-crypto/tink-go-eckey/secretdata"
)

// PublicKey is a validated EC public key.
type PublicKey struct {
	params *ecparams.DomainParameters
	point  ecparams.Point
}

var _ key.Key = (*PublicKey)(nil)

// NewPublicKey creates a new PublicKey from domain parameters and a point.
//
// It fails with an error wrapping [*ecvalidation.ValidationError] if
// [ecvalidation.Validate] rejects the key.
func NewPublicKey(params *ecparams.DomainParameters, point ecparams.Point) (*PublicKey, error) {
	if err := ecvalidation.Validate(params, point).Err(); err != nil {
		return nil, fmt.Errorf("eckey.NewPublicKey: %w", err)
	}
	return &PublicKey{params: params, point: point}, nil
}

// ParsePublicKey decodes and validates an X.509 SubjectPublicKeyInfo.
//
// Decoding errors of explicit parameters are reported as validation errors:
// a singular curve as [ecvalidation.CurveSingular], an invalid field as
// [ecvalidation.InvalidField].
func ParsePublicKey(der []byte) (*PublicKey, error) {
	params, point, err := ecder.ParseSubjectPublicKeyInfo(der)
	if err != nil {
		return nil, fmt.Errorf("eckey.ParsePublicKey: %w", classifyParametersError(err))
	}
	pub, err := NewPublicKey(params, point)
	if err != nil {
		return nil, fmt.Errorf("eckey.ParsePublicKey: %w", err)
	}
	return pub, nil
}

// classifyParametersError maps parameter construction failures to the
// validation reason they correspond to. Other errors are returned unchanged.
func classifyParametersError(err error) error {
	switch {
	case errors.Is(err, ecparams.ErrSingularCurve):
		return &ecvalidation.ValidationError{Reason: ecvalidation.CurveSingular, Detail: err.Error()}
	case errors.Is(err, ecparams.ErrInvalidField):
		return &ecvalidation.ValidationError{Reason: ecvalidation.InvalidField, Detail: err.Error()}
	case errors.Is(err, ecparams.ErrInvalidGenerator):
		return &ecvalidation.ValidationError{Reason: ecvalidation.InvalidGenerator, Detail: err.Error()}
	default:
		return err
	}
}

// DomainParameters returns the domain parameters of this key.
func (k *PublicKey) DomainParameters() *ecparams.DomainParameters { return k.params }

// Parameters returns the parameters of this key.
func (k *PublicKey) Parameters() key.Parameters { return k.params }

// Point returns the public point.
func (k *PublicKey) Point() ecparams.Point { return k.point }

// EncodedPoint returns the public point encoded uncompressed as per
// [SEC 1 v2.0, Section 2.3.3].
//
// [SEC 1 v2.0, Section 2.3.3]: https://www.secg.org/sec1-v2.pdf#page=17.08
func (k *PublicKey) EncodedPoint() []byte {
	// Cannot fail: the point is on the curve.
	b, _ := ecder.MarshalPoint(k.params.Curve(), k.point)
	return b
}

// MarshalPKIX encodes the key as an X.509 SubjectPublicKeyInfo.
func (k *PublicKey) MarshalPKIX(form ecder.ParametersForm) ([]byte, error) {
	der, err := ecder.MarshalSubjectPublicKeyInfo(k.params, k.point, form)
	if err != nil {
		return nil, fmt.Errorf("eckey.PublicKey.MarshalPKIX: %v", err)
	}
	return der, nil
}

// VerifySubgroupOrder tells whether the point lies in the subgroup of the
// claimed order. See [ecvalidation.VerifySubgroupOrder].
func (k *PublicKey) VerifySubgroupOrder() (bool, error) {
	return ecvalidation.VerifySubgroupOrder(k.params, k.point)
}

// Equal tells whether this key value is equal to other.
func (k *PublicKey) Equal(other key.Key) bool {
	that, ok := other.(*PublicKey)
	return ok && k.params.Equal(that.params) && k.point.Equal(that.point)
}

// PrivateKey is an EC private key together with its validated public key.
type PrivateKey struct {
	publicKey *PublicKey
	keyValue  secretdata.Bytes
}

var _ key.Key = (*PrivateKey)(nil)

// NewPrivateKey creates a new PrivateKey from domain parameters and a secret
// scalar, computing the public point.
//
// The scalar is a big-endian integer that must be in [1, n-1], where n is the
// order of params. Leading zeros are accepted; the stored key value is
// padded to the byte length of n.
func NewPrivateKey(params *ecparams.DomainParameters, keyValue secretdata.Bytes) (*PrivateKey, error) {
	if err := ecvalidation.ValidateParameters(params).Err(); err != nil {
		return nil, fmt.Errorf("eckey.NewPrivateKey: %w", err)
	}
	scalar, err := normalizeScalar(params, keyValue)
	if err != nil {
		return nil, fmt.Errorf("eckey.NewPrivateKey: %v", err)
	}
	point, err := ecarith.ScalarBaseMult(params, scalar)
	if err != nil {
		return nil, fmt.Errorf("eckey.NewPrivateKey: %w", err)
	}
	publicKey, err := NewPublicKey(params, point)
	if err != nil {
		return nil, fmt.Errorf("eckey.NewPrivateKey: %w", err)
	}
	return &PrivateKey{
		publicKey: publicKey,
		keyValue:  secretdata.NewBytesFromData(scalar, insecuresecretdataaccess.Token{}),
	}, nil
}

// NewPrivateKeyFromPublicKey creates a new PrivateKey from a public key and a
// secret scalar. It fails if the scalar does not correspond to publicKey.
func NewPrivateKeyFromPublicKey(publicKey *PublicKey, keyValue secretdata.Bytes) (*PrivateKey, error) {
	if publicKey == nil {
		return nil, fmt.Errorf("eckey.NewPrivateKeyFromPublicKey: public key is nil")
	}
	privateKey, err := NewPrivateKey(publicKey.params, keyValue)
	if err != nil {
		return nil, fmt.Errorf("eckey.NewPrivateKeyFromPublicKey: %w", err)
	}
	if !privateKey.publicKey.point.Equal(publicKey.point) {
		return nil, fmt.Errorf("eckey.NewPrivateKeyFromPublicKey: private key does not match public key")
	}
	privateKey.publicKey = publicKey
	return privateKey, nil
}

// normalizeScalar checks that keyValue encodes an integer in [1, n-1] and
// returns it padded to the byte length of n.
func normalizeScalar(params *ecparams.DomainParameters, keyValue secretdata.Bytes) ([]byte, error) {
	n := params.Order()
	raw := keyValue.Data(insecuresecretdataaccess.Token{})
	s := new(big.Int).SetBytes(raw)
	if s.Sign() == 0 || s.Cmp(n) >= 0 {
		return nil, fmt.Errorf("private scalar is not in [1, n-1]")
	}
	return ec.BigIntBytesToFixedSizeBuffer(s.Bytes(), (n.BitLen()+7)/8)
}

// ParsePrivateKey decodes a PKCS #8 EC private key.
//
// If the encoding carries a public key, it must match the one computed from
// the private scalar.
func ParsePrivateKey(der []byte) (*PrivateKey, error) {
	info, err := ecder.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("eckey.ParsePrivateKey: %w", classifyParametersError(err))
	}
	keyValue := secretdata.NewBytesFromData(info.Scalar, insecuresecretdataaccess.Token{})
	if info.PublicKey == nil {
		privateKey, err := NewPrivateKey(info.Params, keyValue)
		if err != nil {
			return nil, fmt.Errorf("eckey.ParsePrivateKey: %w", err)
		}
		return privateKey, nil
	}
	publicKey, err := NewPublicKey(info.Params, *info.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("eckey.ParsePrivateKey: %w", err)
	}
	privateKey, err := NewPrivateKeyFromPublicKey(publicKey, keyValue)
	if err != nil {
		return nil, fmt.Errorf("eckey.ParsePrivateKey: %w", err)
	}
	return privateKey, nil
}

// MarshalPKCS8 encodes the key as a PKCS #8 PrivateKeyInfo. The public key is
// included in the ECPrivateKey structure.
func (k *PrivateKey) MarshalPKCS8(form ecder.ParametersForm, token insecuresecretdataaccess.Token) ([]byte, error) {
	point := k.publicKey.point
	der, err := ecder.MarshalPKCS8PrivateKey(k.publicKey.params, k.keyValue.Data(token), &point, form)
	if err != nil {
		return nil, fmt.Errorf("eckey.PrivateKey.MarshalPKCS8: %v", err)
	}
	return der, nil
}

// PublicKey returns the public key of this private key.
func (k *PrivateKey) PublicKey() *PublicKey { return k.publicKey }

// DomainParameters returns the domain parameters of this key.
func (k *PrivateKey) DomainParameters() *ecparams.DomainParameters { return k.publicKey.params }

// Parameters returns the parameters of this key.
func (k *PrivateKey) Parameters() key.Parameters { return k.publicKey.params }

// KeyValue returns the private scalar, big-endian and padded to the byte
// length of the order.
func (k *PrivateKey) KeyValue() secretdata.Bytes { return k.keyValue }

// Equal tells whether this key value is equal to other.
func (k *PrivateKey) Equal(other key.Key) bool {
	that, ok := other.(*PrivateKey)
	return ok && k.publicKey.Equal(that.publicKey) && k.keyValue.Equal(that.keyValue)
}
