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

// Package conformance runs a suite of EC key handling checks against a
// [KeyFactory].
//
// The suite checks that a key factory rejects public keys with malformed
// domain parameters or the point at infinity, round trips private keys, and
// generates keys of adequate strength. Known gaps of a provider are declared
// in an [ExclusionPolicy] loaded from YAML; excluded checks are reported as
// skipped.
package conformance

import (
	"fmt"

	"github.com/tink-crypto/tink-go-eckey/ecder"
	"github.com/tink-crypto/tink-go-eckey/eckey"
	"github.com/tink-crypto/tink-go-eckey/ecparams"
	"github.com/tink-crypto/tink-go-eckey/insecuresecretdataaccess"
	"github.com/tink-crypto/tink-go-eckey/keygen"
)

// KeyFactory is the interface of an EC key provider under test.
type KeyFactory interface {
	// Name identifies the provider in an [ExclusionPolicy].
	Name() string
	// ParsePublicKey decodes an X.509 SubjectPublicKeyInfo.
	ParsePublicKey(der []byte) (*eckey.PublicKey, error)
	// ParsePrivateKey decodes a PKCS #8 PrivateKeyInfo.
	ParsePrivateKey(der []byte) (*eckey.PrivateKey, error)
	// MarshalPrivateKey encodes a private key as a PKCS #8 PrivateKeyInfo.
	MarshalPrivateKey(priv *eckey.PrivateKey) ([]byte, error)
	// NewPublicKey creates a public key from domain parameters and a point.
	NewPublicKey(params *ecparams.DomainParameters, point ecparams.Point) (*eckey.PublicKey, error)
	// GenerateKeyPair generates a key pair on params.
	GenerateKeyPair(params *ecparams.DomainParameters) (*eckey.PrivateKey, error)
	// GenerateDefaultKeyPair generates a key pair on the provider's default
	// curve.
	GenerateDefaultKeyPair() (*eckey.PrivateKey, error)
}

// DefaultFactoryName is the name of the factory returned by [NewKeyFactory]
// unless [WithName] is used.
const DefaultFactoryName = "eckey"

// Factory is the [KeyFactory] implemented by this module.
type Factory struct {
	name   string
	policy *keygen.Policy
	form   ecder.ParametersForm
}

var _ KeyFactory = (*Factory)(nil)

// FactoryOption configures a [Factory].
type FactoryOption func(*Factory) error

// WithName sets the provider name.
func WithName(name string) FactoryOption {
	return func(f *Factory) error {
		if name == "" {
			return fmt.Errorf("name is empty")
		}
		f.name = name
		return nil
	}
}

// WithPolicy sets the key generation policy.
func WithPolicy(policy *keygen.Policy) FactoryOption {
	return func(f *Factory) error {
		if policy == nil {
			return fmt.Errorf("policy is nil")
		}
		f.policy = policy
		return nil
	}
}

// WithParametersForm sets how MarshalPrivateKey encodes domain parameters.
// The default is [ecder.NamedCurve] for named curves and
// [ecder.ExplicitParameters] otherwise.
func WithParametersForm(form ecder.ParametersForm) FactoryOption {
	return func(f *Factory) error {
		if form != ecder.NamedCurve && form != ecder.ExplicitParameters {
			return fmt.Errorf("unsupported parameters form: %v", form)
		}
		f.form = form
		return nil
	}
}

// NewKeyFactory returns the key factory implemented by this module.
func NewKeyFactory(opts ...FactoryOption) (*Factory, error) {
	policy, err := keygen.NewPolicy()
	if err != nil {
		return nil, fmt.Errorf("conformance.NewKeyFactory: %v", err)
	}
	f := &Factory{name: DefaultFactoryName, policy: policy}
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, fmt.Errorf("conformance.NewKeyFactory: %v", err)
		}
	}
	return f, nil
}

// Name implements [KeyFactory].
func (f *Factory) Name() string { return f.name }

// ParsePublicKey implements [KeyFactory].
func (f *Factory) ParsePublicKey(der []byte) (*eckey.PublicKey, error) {
	return eckey.ParsePublicKey(der)
}

// ParsePrivateKey implements [KeyFactory].
func (f *Factory) ParsePrivateKey(der []byte) (*eckey.PrivateKey, error) {
	return eckey.ParsePrivateKey(der)
}

// MarshalPrivateKey implements [KeyFactory].
func (f *Factory) MarshalPrivateKey(priv *eckey.PrivateKey) ([]byte, error) {
	form := f.form
	if form == ecder.UnknownParametersForm {
		form = ecder.ExplicitParameters
		if priv.DomainParameters().OID() != nil {
			form = ecder.NamedCurve
		}
	}
	return priv.MarshalPKCS8(form, insecuresecretdataaccess.Token{})
}

// NewPublicKey implements [KeyFactory].
func (f *Factory) NewPublicKey(params *ecparams.DomainParameters, point ecparams.Point) (*eckey.PublicKey, error) {
	return eckey.NewPublicKey(params, point)
}

// GenerateKeyPair implements [KeyFactory].
func (f *Factory) GenerateKeyPair(params *ecparams.DomainParameters) (*eckey.PrivateKey, error) {
	return f.policy.GenerateKeyPair(params)
}

// GenerateDefaultKeyPair implements [KeyFactory].
func (f *Factory) GenerateDefaultKeyPair() (*eckey.PrivateKey, error) {
	return f.policy.GenerateDefaultKeyPair()
}
