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

package conformance

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/tink-crypto/tink-go-eckey/ecparams"
	"github.com/tink-crypto/tink-go-eckey/ecvalidation"
	"github.com/tink-crypto/tink-go-eckey/internal/eckeyvectors"
	"github.com/tink-crypto/tink-go-eckey/keygen"
)

// minDefaultFieldSize is the smallest acceptable field size of default keys,
// NIST SP 800-57 Part 1 Rev. 4, Table 2.
const minDefaultFieldSize = 224

// scalarBitLenSlack is the number of leading zero bits tolerated in a fresh
// private scalar. A uniform scalar has more with probability about 2^-32.
const scalarBitLenSlack = 32

// InvalidPublicKeyVector is an encoded public key with invalid domain
// parameters.
type InvalidPublicKeyVector struct {
	// Comment describes the defect.
	Comment string
	// DER is the X.509 SubjectPublicKeyInfo encoding.
	DER []byte
	// Reason is the reason a validator reports for the key.
	Reason ecvalidation.Reason
}

// InvalidPublicKeyVectors returns P-256 public keys with explicit
// parameters where the order is negative or zero, or the cofactor is
// negative, zero or equal to the order.
func InvalidPublicKeyVectors() []InvalidPublicKeyVector {
	out := make([]InvalidPublicKeyVector, 0, len(eckeyvectors.InvalidPublicKeys))
	for _, v := range eckeyvectors.InvalidPublicKeys {
		der, err := hex.DecodeString(v.EncodedHex)
		if err != nil {
			panic(fmt.Sprintf("conformance: invalid test vector %q: %v", v.Comment, err))
		}
		reason := ecvalidation.InvalidOrder
		if v.Defect == eckeyvectors.DefectCofactor {
			reason = ecvalidation.InvalidCofactor
		}
		out = append(out, InvalidPublicKeyVector{Comment: v.Comment, DER: der, Reason: reason})
	}
	return out
}

func checkEncodedPublicKey(f KeyFactory) error {
	for _, v := range InvalidPublicKeyVectors() {
		_, err := f.ParsePublicKey(v.DER)
		if err == nil {
			return fmt.Errorf("constructed invalid public key (%s) from %x", v.Comment, v.DER)
		}
		var validationErr *ecvalidation.ValidationError
		if errors.As(err, &validationErr) && validationErr.Reason != v.Reason {
			return fmt.Errorf("public key (%s) rejected with reason %v, want %v", v.Comment, validationErr.Reason, v.Reason)
		}
	}
	return nil
}

func checkEncodedPrivateKey(f KeyFactory) error {
	params := ecparams.P256()
	priv, err := f.GenerateKeyPair(params)
	if err != nil {
		return fmt.Errorf("GenerateKeyPair(%v): %v", params, err)
	}
	der, err := f.MarshalPrivateKey(priv)
	if err != nil {
		return fmt.Errorf("MarshalPrivateKey: %v", err)
	}
	decoded, err := f.ParsePrivateKey(der)
	if err != nil {
		return fmt.Errorf("ParsePrivateKey(%x): %v", der, err)
	}
	want, got := priv.DomainParameters(), decoded.DomainParameters()
	switch {
	case !got.Curve().Equal(want.Curve()):
		return fmt.Errorf("decoded curve %v, want %v", got.Curve(), want.Curve())
	case !got.Generator().Equal(want.Generator()):
		return fmt.Errorf("decoded generator %v, want %v", got.Generator(), want.Generator())
	case got.Order().Cmp(want.Order()) != 0:
		return fmt.Errorf("decoded order %v, want %v", got.Order(), want.Order())
	case !equalCofactors(got, want):
		return fmt.Errorf("decoded cofactor %v, want %v", got.Cofactor(), want.Cofactor())
	case !decoded.KeyValue().Equal(priv.KeyValue()):
		return fmt.Errorf("decoded private scalar differs")
	}
	return nil
}

func equalCofactors(a, b *ecparams.DomainParameters) bool {
	x, y := a.Cofactor(), b.Cofactor()
	if x == nil || y == nil {
		return x == nil && y == nil
	}
	return x.Cmp(y) == 0
}

func checkKeyGeneration(f KeyFactory) error {
	for _, tc := range []struct {
		params   *ecparams.DomainParameters
		standard bool
	}{
		{params: ecparams.P224(), standard: true},
		{params: ecparams.P256(), standard: true},
		{params: ecparams.P384(), standard: true},
		{params: ecparams.P521(), standard: true},
		// Sometimes not supported.
		{params: ecparams.BrainpoolP256r1(), standard: false},
	} {
		priv, err := f.GenerateKeyPair(tc.params)
		if err != nil {
			if !tc.standard && errors.Is(err, keygen.ErrUnsupportedCurve) {
				continue
			}
			return fmt.Errorf("GenerateKeyPair(%v): %v", tc.params, err)
		}
		pub := priv.PublicKey()
		if err := ecvalidation.Validate(tc.params, pub.Point()).Err(); err != nil {
			return fmt.Errorf("GenerateKeyPair(%v) returned an invalid public key: %v", tc.params, err)
		}
		floor := tc.params.FieldSizeInBits() - scalarBitLenSlack
		if got := priv.KeyValue().BitLen(); got < floor {
			return fmt.Errorf("GenerateKeyPair(%v) returned a %d-bit private scalar, want at least %d bits", tc.params, got, floor)
		}
	}
	return nil
}

func checkDefaultKeyGeneration(f KeyFactory) error {
	priv, err := f.GenerateDefaultKeyPair()
	if err != nil {
		return fmt.Errorf("GenerateDefaultKeyPair: %v", err)
	}
	if size := priv.DomainParameters().FieldSizeInBits(); size < minDefaultFieldSize {
		return fmt.Errorf("default key size is %d bits, want at least %d", size, minDefaultFieldSize)
	}
	return nil
}

func checkPublicKeyAtInfinity(f KeyFactory) error {
	if _, err := f.NewPublicKey(ecparams.P256(), ecparams.Infinity()); err == nil {
		return fmt.Errorf("point at infinity accepted as a public key")
	}
	return nil
}
