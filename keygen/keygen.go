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

// Package keygen generates EC key pairs under a strength policy.
//
// A [Policy] refuses to generate keys on curves whose field is smaller than a
// minimum size (224 bits by default) unless weak curves are explicitly
// allowed. Private scalars are sampled uniformly in [1, n-1] by rejection
// sampling.
//
// Failures of the random source are not recoverable: they are reported as
// errors wrapping [ErrRandomSource] and are never retried.
package keygen

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/tink-crypto/tink-go-eckey/eckey"
	"github.com/tink-crypto/tink-go-eckey/ecparams"
	"github.com/tink-crypto/tink-go-eckey/ecvalidation"
	"github.com/tink-crypto/tink-go-eckey/insecuresecretdataaccess"
	"github.com/tink-crypto/tink-go-eckey/internal/ecarith"
	"github.com/tink-crypto/tink-go-eckey/secretdata"
	"golang.org/x/crypto/hkdf"
)

const (
	// DefaultMinFieldSize is the default minimum field size in bits.
	DefaultMinFieldSize = 224

	// maxSamplingAttempts bounds rejection sampling. Each draw is accepted
	// with probability close to or above 1/2.
	maxSamplingAttempts = 128
)

var (
	// ErrBelowStrengthFloor is matched by a [*PolicyViolationError].
	ErrBelowStrengthFloor = errors.New("field size below the strength floor")
	// ErrRandomSource is wrapped by errors caused by the random source. Such
	// errors are fatal.
	ErrRandomSource = errors.New("random source failure")
	// ErrUnsupportedCurve is returned when no arithmetic is available for the
	// requested curve.
	ErrUnsupportedCurve = ecarith.ErrUnsupportedCurve
)

// PolicyViolationError is returned when key generation is requested on a
// curve below the strength floor.
type PolicyViolationError struct {
	// Params are the requested domain parameters.
	Params *ecparams.DomainParameters
	// FieldSize is the field size of Params in bits.
	FieldSize int
	// MinFieldSize is the floor of the policy.
	MinFieldSize int
}

func (e *PolicyViolationError) Error() string {
	return fmt.Sprintf("keygen: field size %d of %v is below the minimum of %d bits", e.FieldSize, e.Params, e.MinFieldSize)
}

// Is makes errors.Is(err, ErrBelowStrengthFloor) true.
func (e *PolicyViolationError) Is(target error) bool { return target == ErrBelowStrengthFloor }

// Policy generates key pairs. It is immutable and safe for concurrent use if
// its random source is.
type Policy struct {
	rand         io.Reader
	minFieldSize int
	defaultCurve *ecparams.DomainParameters
	allowWeak    bool
}

// Option configures a [Policy].
type Option func(*Policy) error

// WithRandom sets the random source. The default is crypto/rand.Reader.
func WithRandom(r io.Reader) Option {
	return func(p *Policy) error {
		if r == nil {
			return fmt.Errorf("random source is nil")
		}
		p.rand = r
		return nil
	}
}

// WithMinFieldSize sets the minimum field size in bits.
func WithMinFieldSize(bits int) Option {
	return func(p *Policy) error {
		if bits <= 0 {
			return fmt.Errorf("minimum field size must be positive, got %d", bits)
		}
		p.minFieldSize = bits
		return nil
	}
}

// WithDefaultCurve sets the curve used by [Policy.GenerateDefaultKeyPair]. The
// default is P-256.
func WithDefaultCurve(params *ecparams.DomainParameters) Option {
	return func(p *Policy) error {
		if err := ecvalidation.ValidateParameters(params).Err(); err != nil {
			return fmt.Errorf("invalid default curve: %w", err)
		}
		p.defaultCurve = params
		return nil
	}
}

// AllowWeakCurves disables the strength floor for [Policy.GenerateKeyPair].
//
// The floor still applies to [Policy.GenerateDefaultKeyPair].
func AllowWeakCurves() Option {
	return func(p *Policy) error {
		p.allowWeak = true
		return nil
	}
}

// NewPolicy creates a new Policy.
func NewPolicy(opts ...Option) (*Policy, error) {
	p := &Policy{
		rand:         rand.Reader,
		minFieldSize: DefaultMinFieldSize,
		defaultCurve: ecparams.P256(),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, fmt.Errorf("keygen.NewPolicy: %w", err)
		}
	}
	return p, nil
}

// MinFieldSize returns the strength floor in bits.
func (p *Policy) MinFieldSize() int { return p.minFieldSize }

// DefaultCurve returns the curve used by [Policy.GenerateDefaultKeyPair].
func (p *Policy) DefaultCurve() *ecparams.DomainParameters { return p.defaultCurve }

// CheckStrength returns a [*PolicyViolationError] if the field of params is
// smaller than the strength floor.
func (p *Policy) CheckStrength(params *ecparams.DomainParameters) error {
	if params == nil {
		return fmt.Errorf("keygen.Policy.CheckStrength: parameters are nil")
	}
	if size := params.FieldSizeInBits(); size < p.minFieldSize {
		return &PolicyViolationError{Params: params, FieldSize: size, MinFieldSize: p.minFieldSize}
	}
	return nil
}

// GenerateKeyPair generates a key pair on params.
//
// It fails with a [*PolicyViolationError] if params are below the strength
// floor and weak curves are not allowed, with an [*ecvalidation.ValidationError]
// if the order or cofactor of params are invalid, and with
// [ErrUnsupportedCurve] if no arithmetic is available for the curve.
func (p *Policy) GenerateKeyPair(params *ecparams.DomainParameters) (*eckey.PrivateKey, error) {
	if !p.allowWeak {
		if err := p.CheckStrength(params); err != nil {
			return nil, err
		}
	}
	return generate(p.rand, params)
}

// GenerateDefaultKeyPair generates a key pair on the default curve. The
// strength floor always applies.
func (p *Policy) GenerateDefaultKeyPair() (*eckey.PrivateKey, error) {
	if err := p.CheckStrength(p.defaultCurve); err != nil {
		return nil, err
	}
	return generate(p.rand, p.defaultCurve)
}

// DeriveKeyPair deterministically derives a key pair on params from the
// input keying material ikm, using HKDF-SHA256 with salt and info as the
// random source. The strength floor applies as in [Policy.GenerateKeyPair].
func (p *Policy) DeriveKeyPair(params *ecparams.DomainParameters, ikm, salt, info []byte) (*eckey.PrivateKey, error) {
	if len(ikm) == 0 {
		return nil, fmt.Errorf("keygen.Policy.DeriveKeyPair: input keying material is empty")
	}
	if !p.allowWeak {
		if err := p.CheckStrength(params); err != nil {
			return nil, err
		}
	}
	return generate(hkdf.New(sha256.New, ikm, salt, info), params)
}

func generate(r io.Reader, params *ecparams.DomainParameters) (*eckey.PrivateKey, error) {
	if err := ecvalidation.ValidateParameters(params).Err(); err != nil {
		return nil, fmt.Errorf("keygen: %w", err)
	}
	if _, err := ecarith.ForParameters(params); err != nil {
		return nil, fmt.Errorf("keygen: %w", err)
	}
	scalar, err := sampleScalar(r, params.Order())
	if err != nil {
		return nil, fmt.Errorf("keygen: %w", err)
	}
	priv, err := eckey.NewPrivateKey(params, secretdata.NewBytesFromData(scalar, insecuresecretdataaccess.Token{}))
	if err != nil {
		return nil, fmt.Errorf("keygen: %w", err)
	}
	return priv, nil
}

// sampleScalar returns a uniformly random integer in [1, n-1], big-endian
// and padded to the byte length of n.
//
// Candidates are drawn with the bits above the bit length of n masked off
// and rejected if not in range.
func sampleScalar(r io.Reader, n *big.Int) ([]byte, error) {
	bitLen := n.BitLen()
	buf := make([]byte, (bitLen+7)/8)
	mask := byte(0xff >> (8*len(buf) - bitLen))
	s := new(big.Int)
	for i := 0; i < maxSamplingAttempts; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRandomSource, err)
		}
		buf[0] &= mask
		s.SetBytes(buf)
		if s.Sign() > 0 && s.Cmp(n) < 0 {
			return buf, nil
		}
	}
	return nil, fmt.Errorf("%w: no scalar in range after %d draws", ErrRandomSource, maxSamplingAttempts)
}

var defaultPolicy = &Policy{
	rand:         rand.Reader,
	minFieldSize: DefaultMinFieldSize,
	defaultCurve: ecparams.P256(),
}

// GenerateKeyPair generates a key pair on params with the default policy.
func GenerateKeyPair(params *ecparams.DomainParameters) (*eckey.PrivateKey, error) {
	return defaultPolicy.GenerateKeyPair(params)
}

// GenerateDefaultKeyPair generates a P-256 key pair with the default policy.
func GenerateDefaultKeyPair() (*eckey.PrivateKey, error) {
	return defaultPolicy.GenerateDefaultKeyPair()
}
