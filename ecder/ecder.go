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

// Package ecder encodes and decodes EC keys in the DER structures of
// [RFC 5480] (X.509 SubjectPublicKeyInfo), [RFC 5208] (PKCS #8) and
// [RFC 5915] (ECPrivateKey), with either named curves or explicit
// prime-field domain parameters as in [RFC 3279, Section 2.3.5].
//
// Decoding produces [ecparams.DomainParameters] and [ecparams.Point]
// values; it does not validate the public key. The subgroup order and the
// cofactor are decoded leniently (a negative two's-complement value is kept
// and an empty INTEGER decodes to 0) so that malformed values reach the
// validator in package ecvalidation.
//
// [RFC 5480]: https://www.rfc-editor.org/rfc/rfc5480
// [RFC 5208]: https://www.rfc-editor.org/rfc/rfc5208
// [RFC 5915]: https://www.rfc-editor.org/rfc/rfc5915
// [RFC 3279, Section 2.3.5]: https://www.rfc-editor.org/rfc/rfc3279#section-2.3.5
package ecder

import (
	encasn1 "encoding/asn1"
	"errors"
	"fmt"
	"math/big"

	"github.com/tink-crypto/tink-go-eckey/ecparams"
	"github.com/tink-crypto/tink-go-eckey/internal/ec"
	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

var (
	oidPublicKeyEC = encasn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}
	oidPrimeField  = encasn1.ObjectIdentifier{1, 2, 840, 10045, 1, 1}

	tagECPrivateKeyParams    = asn1.Tag(0).Constructed().ContextSpecific()
	tagECPrivateKeyPublicKey = asn1.Tag(1).Constructed().ContextSpecific()
	tagPKCS8Attributes       = asn1.Tag(0).Constructed().ContextSpecific()
)

// ErrUnknownCurve is returned when a named curve OID is not supported.
var ErrUnknownCurve = errors.New("unknown named curve")

const (
	specifiedECDomainVersion = 1
	ecPrivateKeyVersion      = 1
	pkcs8Version             = 0
)

// ParametersForm selects how domain parameters are encoded.
type ParametersForm int

const (
	// UnknownParametersForm is the default value of ParametersForm.
	UnknownParametersForm ParametersForm = iota
	// NamedCurve encodes the parameters as a named curve OID. Only
	// parameters with an OID can be encoded in this form.
	NamedCurve
	// ExplicitParameters encodes the parameters as a SpecifiedECDomain.
	ExplicitParameters
)

func (f ParametersForm) String() string {
	switch f {
	case NamedCurve:
		return "NAMED_CURVE"
	case ExplicitParameters:
		return "EXPLICIT_PARAMETERS"
	default:
		return "UNKNOWN"
	}
}

var bigOne = big.NewInt(1)

// parseLenientInteger interprets raw as the content octets of a DER INTEGER
// without the minimal-encoding checks. An empty content decodes to 0.
func parseLenientInteger(raw []byte) *big.Int {
	n := new(big.Int).SetBytes(raw)
	if len(raw) > 0 && raw[0]&0x80 != 0 {
		n.Sub(n, new(big.Int).Lsh(bigOne, uint(len(raw))*8))
	}
	return n
}

// parseECParameters parses an ECParameters CHOICE: a named curve OID or a
// SpecifiedECDomain SEQUENCE.
func parseECParameters(s *cryptobyte.String) (*ecparams.DomainParameters, error) {
	switch {
	case s.PeekASN1Tag(asn1.OBJECT_IDENTIFIER):
		var oid encasn1.ObjectIdentifier
		if !s.ReadASN1ObjectIdentifier(&oid) {
			return nil, fmt.Errorf("malformed named curve OID")
		}
		params, ok := ecparams.ByOID(oid)
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrUnknownCurve, oid)
		}
		return params, nil
	case s.PeekASN1Tag(asn1.SEQUENCE):
		var domain cryptobyte.String
		if !s.ReadASN1(&domain, asn1.SEQUENCE) {
			return nil, fmt.Errorf("malformed SpecifiedECDomain")
		}
		return parseSpecifiedECDomain(domain)
	case s.PeekASN1Tag(asn1.NULL):
		return nil, fmt.Errorf("implicitlyCA parameters are not supported")
	default:
		return nil, fmt.Errorf("malformed ECParameters")
	}
}

func parseSpecifiedECDomain(domain cryptobyte.String) (*ecparams.DomainParameters, error) {
	var version int64
	if !domain.ReadASN1Integer(&version) {
		return nil, fmt.Errorf("malformed SpecifiedECDomain version")
	}
	if version != specifiedECDomainVersion {
		return nil, fmt.Errorf("unsupported SpecifiedECDomain version: %d", version)
	}

	var fieldID cryptobyte.String
	var fieldType encasn1.ObjectIdentifier
	p := new(big.Int)
	if !domain.ReadASN1(&fieldID, asn1.SEQUENCE) ||
		!fieldID.ReadASN1ObjectIdentifier(&fieldType) {
		return nil, fmt.Errorf("malformed FieldID")
	}
	if !fieldType.Equal(oidPrimeField) {
		return nil, fmt.Errorf("unsupported field type: %v", fieldType)
	}
	if !fieldID.ReadASN1Integer(p) || !fieldID.Empty() {
		return nil, fmt.Errorf("malformed prime field modulus")
	}

	var curveSeq, aBytes, bBytes cryptobyte.String
	if !domain.ReadASN1(&curveSeq, asn1.SEQUENCE) ||
		!curveSeq.ReadASN1(&aBytes, asn1.OCTET_STRING) ||
		!curveSeq.ReadASN1(&bBytes, asn1.OCTET_STRING) {
		return nil, fmt.Errorf("malformed Curve")
	}
	// The optional seed is not used.
	if !curveSeq.SkipOptionalASN1(asn1.BIT_STRING) || !curveSeq.Empty() {
		return nil, fmt.Errorf("malformed Curve seed")
	}
	curve, err := ecparams.NewCurve(p, new(big.Int).SetBytes(aBytes), new(big.Int).SetBytes(bBytes))
	if err != nil {
		return nil, err
	}

	var base cryptobyte.String
	if !domain.ReadASN1(&base, asn1.OCTET_STRING) {
		return nil, fmt.Errorf("malformed base point")
	}
	generator, err := ParsePoint(curve, base)
	if err != nil {
		return nil, fmt.Errorf("base point: %v", err)
	}

	var orderBytes cryptobyte.String
	if !domain.ReadASN1(&orderBytes, asn1.INTEGER) {
		return nil, fmt.Errorf("malformed order")
	}
	order := parseLenientInteger(orderBytes)

	var cofactor *big.Int
	var cofactorBytes cryptobyte.String
	var hasCofactor bool
	if !domain.ReadOptionalASN1(&cofactorBytes, &hasCofactor, asn1.INTEGER) {
		return nil, fmt.Errorf("malformed cofactor")
	}
	if hasCofactor {
		cofactor = parseLenientInteger(cofactorBytes)
	}
	if !domain.Empty() {
		return nil, fmt.Errorf("trailing data in SpecifiedECDomain")
	}
	return ecparams.NewDomainParameters(curve, generator, order, cofactor)
}

func addECParameters(b *cryptobyte.Builder, params *ecparams.DomainParameters, form ParametersForm) error {
	switch form {
	case NamedCurve:
		oid := params.OID()
		if oid == nil {
			return fmt.Errorf("parameters %v have no named curve OID", params)
		}
		b.AddASN1ObjectIdentifier(oid)
		return nil
	case ExplicitParameters:
		return addSpecifiedECDomain(b, params)
	default:
		return fmt.Errorf("unsupported parameters form: %v", form)
	}
}

func addSpecifiedECDomain(b *cryptobyte.Builder, params *ecparams.DomainParameters) error {
	curve := params.Curve()
	p := curve.P()
	a, err := ec.FieldElementBytes(curve.A(), p)
	if err != nil {
		return err
	}
	bb, err := ec.FieldElementBytes(curve.B(), p)
	if err != nil {
		return err
	}
	base, err := MarshalPoint(curve, params.Generator())
	if err != nil {
		return err
	}
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1Int64(specifiedECDomainVersion)
		b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
			b.AddASN1ObjectIdentifier(oidPrimeField)
			b.AddASN1BigInt(p)
		})
		b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
			b.AddASN1OctetString(a)
			b.AddASN1OctetString(bb)
		})
		b.AddASN1OctetString(base)
		b.AddASN1BigInt(params.Order())
		if cofactor := params.Cofactor(); cofactor != nil {
			b.AddASN1BigInt(cofactor)
		}
	})
	return nil
}

// ParseSubjectPublicKeyInfo decodes an X.509 SubjectPublicKeyInfo holding an
// EC public key.
//
// The returned point is not validated; use package ecvalidation.
func ParseSubjectPublicKeyInfo(der []byte) (*ecparams.DomainParameters, ecparams.Point, error) {
	input := cryptobyte.String(der)
	var spki, algorithm cryptobyte.String
	var algorithmOID encasn1.ObjectIdentifier
	if !input.ReadASN1(&spki, asn1.SEQUENCE) || !input.Empty() {
		return nil, ecparams.Point{}, fmt.Errorf("ecder.ParseSubjectPublicKeyInfo: malformed SubjectPublicKeyInfo")
	}
	if !spki.ReadASN1(&algorithm, asn1.SEQUENCE) ||
		!algorithm.ReadASN1ObjectIdentifier(&algorithmOID) {
		return nil, ecparams.Point{}, fmt.Errorf("ecder.ParseSubjectPublicKeyInfo: malformed AlgorithmIdentifier")
	}
	if !algorithmOID.Equal(oidPublicKeyEC) {
		return nil, ecparams.Point{}, fmt.Errorf("ecder.ParseSubjectPublicKeyInfo: unsupported algorithm: %v", algorithmOID)
	}
	params, err := parseECParameters(&algorithm)
	if err != nil {
		return nil, ecparams.Point{}, fmt.Errorf("ecder.ParseSubjectPublicKeyInfo: %w", err)
	}
	if !algorithm.Empty() {
		return nil, ecparams.Point{}, fmt.Errorf("ecder.ParseSubjectPublicKeyInfo: trailing data in AlgorithmIdentifier")
	}
	var publicKey encasn1.BitString
	if !spki.ReadASN1BitString(&publicKey) || !spki.Empty() {
		return nil, ecparams.Point{}, fmt.Errorf("ecder.ParseSubjectPublicKeyInfo: malformed subjectPublicKey")
	}
	if publicKey.BitLength%8 != 0 {
		return nil, ecparams.Point{}, fmt.Errorf("ecder.ParseSubjectPublicKeyInfo: subjectPublicKey is not octet aligned")
	}
	point, err := ParsePoint(params.Curve(), publicKey.Bytes)
	if err != nil {
		return nil, ecparams.Point{}, fmt.Errorf("ecder.ParseSubjectPublicKeyInfo: %v", err)
	}
	return params, point, nil
}

// MarshalSubjectPublicKeyInfo encodes an EC public key as an X.509
// SubjectPublicKeyInfo. The point is encoded uncompressed.
func MarshalSubjectPublicKeyInfo(params *ecparams.DomainParameters, point ecparams.Point, form ParametersForm) ([]byte, error) {
	if params == nil {
		return nil, fmt.Errorf("ecder.MarshalSubjectPublicKeyInfo: parameters are nil")
	}
	encodedPoint, err := MarshalPoint(params.Curve(), point)
	if err != nil {
		return nil, fmt.Errorf("ecder.MarshalSubjectPublicKeyInfo: %v", err)
	}
	var paramsErr error
	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
			b.AddASN1ObjectIdentifier(oidPublicKeyEC)
			paramsErr = addECParameters(b, params, form)
		})
		b.AddASN1BitString(encodedPoint)
	})
	if paramsErr != nil {
		return nil, fmt.Errorf("ecder.MarshalSubjectPublicKeyInfo: %v", paramsErr)
	}
	out, err := b.Bytes()
	if err != nil {
		return nil, fmt.Errorf("ecder.MarshalSubjectPublicKeyInfo: %v", err)
	}
	return out, nil
}

// PrivateKeyInfo is the decoded content of a PKCS #8 EC private key.
type PrivateKeyInfo struct {
	// Params are the domain parameters.
	Params *ecparams.DomainParameters
	// Scalar is the private scalar, big-endian, padded to the byte length of
	// the order. The caller owns the slice.
	Scalar []byte
	// PublicKey is the optional public point stored with the private key.
	PublicKey *ecparams.Point
}

// scalarSize returns the byte length used for private scalars.
func scalarSize(params *ecparams.DomainParameters) int {
	if order := params.Order(); order.Sign() > 0 {
		return (order.BitLen() + 7) / 8
	}
	return ec.FieldElementSize(params.Curve().P())
}

// ParsePKCS8PrivateKey decodes a PKCS #8 PrivateKeyInfo holding an RFC 5915
// ECPrivateKey.
//
// If the ECPrivateKey also carries parameters they must be equal to the
// parameters of the AlgorithmIdentifier.
func ParsePKCS8PrivateKey(der []byte) (*PrivateKeyInfo, error) {
	input := cryptobyte.String(der)
	var info, algorithm, privateKey cryptobyte.String
	var version int64
	var algorithmOID encasn1.ObjectIdentifier
	if !input.ReadASN1(&info, asn1.SEQUENCE) || !input.Empty() {
		return nil, fmt.Errorf("ecder.ParsePKCS8PrivateKey: malformed PrivateKeyInfo")
	}
	if !info.ReadASN1Integer(&version) || version != pkcs8Version {
		return nil, fmt.Errorf("ecder.ParsePKCS8PrivateKey: unsupported PrivateKeyInfo version")
	}
	if !info.ReadASN1(&algorithm, asn1.SEQUENCE) ||
		!algorithm.ReadASN1ObjectIdentifier(&algorithmOID) {
		return nil, fmt.Errorf("ecder.ParsePKCS8PrivateKey: malformed AlgorithmIdentifier")
	}
	if !algorithmOID.Equal(oidPublicKeyEC) {
		return nil, fmt.Errorf("ecder.ParsePKCS8PrivateKey: unsupported algorithm: %v", algorithmOID)
	}
	params, err := parseECParameters(&algorithm)
	if err != nil {
		return nil, fmt.Errorf("ecder.ParsePKCS8PrivateKey: %w", err)
	}
	if !algorithm.Empty() {
		return nil, fmt.Errorf("ecder.ParsePKCS8PrivateKey: trailing data in AlgorithmIdentifier")
	}
	if !info.ReadASN1(&privateKey, asn1.OCTET_STRING) {
		return nil, fmt.Errorf("ecder.ParsePKCS8PrivateKey: malformed privateKey")
	}
	if !info.SkipOptionalASN1(tagPKCS8Attributes) || !info.Empty() {
		return nil, fmt.Errorf("ecder.ParsePKCS8PrivateKey: trailing data in PrivateKeyInfo")
	}
	out, err := parseECPrivateKey(privateKey, params)
	if err != nil {
		return nil, fmt.Errorf("ecder.ParsePKCS8PrivateKey: %w", err)
	}
	return out, nil
}

func parseECPrivateKey(der cryptobyte.String, params *ecparams.DomainParameters) (*PrivateKeyInfo, error) {
	var ecPrivateKey, scalar, innerParams, publicKeyField cryptobyte.String
	var version int64
	var hasParams, hasPublicKey bool
	if !der.ReadASN1(&ecPrivateKey, asn1.SEQUENCE) || !der.Empty() {
		return nil, fmt.Errorf("malformed ECPrivateKey")
	}
	if !ecPrivateKey.ReadASN1Integer(&version) || version != ecPrivateKeyVersion {
		return nil, fmt.Errorf("unsupported ECPrivateKey version")
	}
	if !ecPrivateKey.ReadASN1(&scalar, asn1.OCTET_STRING) {
		return nil, fmt.Errorf("malformed ECPrivateKey privateKey")
	}
	if !ecPrivateKey.ReadOptionalASN1(&innerParams, &hasParams, tagECPrivateKeyParams) ||
		!ecPrivateKey.ReadOptionalASN1(&publicKeyField, &hasPublicKey, tagECPrivateKeyPublicKey) ||
		!ecPrivateKey.Empty() {
		return nil, fmt.Errorf("malformed ECPrivateKey optional fields")
	}
	if hasParams {
		inner, err := parseECParameters(&innerParams)
		if err != nil {
			return nil, err
		}
		if !innerParams.Empty() || !inner.Equal(params) {
			return nil, fmt.Errorf("ECPrivateKey parameters do not match AlgorithmIdentifier")
		}
	}
	fixed, err := ec.BigIntBytesToFixedSizeBuffer(scalar, scalarSize(params))
	if err != nil {
		return nil, fmt.Errorf("private scalar: %v", err)
	}
	out := &PrivateKeyInfo{
		Params: params,
		Scalar: append([]byte(nil), fixed...),
	}
	if hasPublicKey {
		var publicKey encasn1.BitString
		if !publicKeyField.ReadASN1BitString(&publicKey) || !publicKeyField.Empty() || publicKey.BitLength%8 != 0 {
			return nil, fmt.Errorf("malformed ECPrivateKey publicKey")
		}
		point, err := ParsePoint(params.Curve(), publicKey.Bytes)
		if err != nil {
			return nil, err
		}
		out.PublicKey = &point
	}
	return out, nil
}

// MarshalPKCS8PrivateKey encodes an EC private key as a PKCS #8
// PrivateKeyInfo. The parameters are encoded in the AlgorithmIdentifier only.
// If publicKey is not nil, it is stored in the ECPrivateKey.
func MarshalPKCS8PrivateKey(params *ecparams.DomainParameters, scalar []byte, publicKey *ecparams.Point, form ParametersForm) ([]byte, error) {
	if params == nil {
		return nil, fmt.Errorf("ecder.MarshalPKCS8PrivateKey: parameters are nil")
	}
	fixed, err := ec.BigIntBytesToFixedSizeBuffer(scalar, scalarSize(params))
	if err != nil {
		return nil, fmt.Errorf("ecder.MarshalPKCS8PrivateKey: %v", err)
	}
	var encodedPoint []byte
	if publicKey != nil {
		if encodedPoint, err = MarshalPoint(params.Curve(), *publicKey); err != nil {
			return nil, fmt.Errorf("ecder.MarshalPKCS8PrivateKey: %v", err)
		}
	}
	var ecPrivateKey cryptobyte.Builder
	ecPrivateKey.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1Int64(ecPrivateKeyVersion)
		b.AddASN1OctetString(fixed)
		if encodedPoint != nil {
			b.AddASN1(tagECPrivateKeyPublicKey, func(b *cryptobyte.Builder) {
				b.AddASN1BitString(encodedPoint)
			})
		}
	})
	ecPrivateKeyBytes, err := ecPrivateKey.Bytes()
	if err != nil {
		return nil, fmt.Errorf("ecder.MarshalPKCS8PrivateKey: %v", err)
	}

	var paramsErr error
	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1Int64(pkcs8Version)
		b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
			b.AddASN1ObjectIdentifier(oidPublicKeyEC)
			paramsErr = addECParameters(b, params, form)
		})
		b.AddASN1OctetString(ecPrivateKeyBytes)
	})
	if paramsErr != nil {
		return nil, fmt.Errorf("ecder.MarshalPKCS8PrivateKey: %v", paramsErr)
	}
	out, err := b.Bytes()
	if err != nil {
		return nil, fmt.Errorf("ecder.MarshalPKCS8PrivateKey: %v", err)
	}
	return out, nil
}
