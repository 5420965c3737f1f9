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
	"fmt"
	"log/slog"
)

// Check names a conformance check.
type Check string

const (
	// CheckEncodedPublicKey decodes public keys with invalid order or
	// cofactor, which must be rejected.
	CheckEncodedPublicKey Check = "encoded_public_key"
	// CheckEncodedPrivateKey round trips a generated P-256 private key
	// through PKCS #8.
	CheckEncodedPrivateKey Check = "encoded_private_key"
	// CheckKeyGeneration generates keys on the NIST curves, and on
	// brainpoolP256r1 if supported, and checks the public key and the bit
	// length of the private scalar.
	CheckKeyGeneration Check = "key_generation"
	// CheckDefaultKeyGeneration checks that default keys have a field of at
	// least 224 bits.
	CheckDefaultKeyGeneration Check = "default_key_generation"
	// CheckPublicKeyAtInfinity checks that the point at infinity is rejected
	// as a public key.
	CheckPublicKeyAtInfinity Check = "public_key_at_infinity"
)

var allChecks = []Check{
	CheckEncodedPublicKey,
	CheckEncodedPrivateKey,
	CheckKeyGeneration,
	CheckDefaultKeyGeneration,
	CheckPublicKeyAtInfinity,
}

// Checks returns all checks in the order [Suite.Run] runs them.
func Checks() []Check { return append([]Check(nil), allChecks...) }

func (c Check) known() bool {
	for _, k := range allChecks {
		if c == k {
			return true
		}
	}
	return false
}

// Status is the outcome of a check.
type Status int

const (
	// Passed means the provider behaved as required.
	Passed Status = iota
	// Failed means the provider did not behave as required.
	Failed
	// Skipped means the check is excluded for the provider.
	Skipped
)

func (s Status) String() string {
	switch s {
	case Passed:
		return "PASSED"
	case Failed:
		return "FAILED"
	case Skipped:
		return "SKIPPED"
	default:
		return "UNKNOWN"
	}
}

// Result is the result of one check.
type Result struct {
	Check  Check
	Status Status
	// Detail explains a failure or holds the comment of an exclusion.
	Detail string
}

// Suite runs the conformance checks against a [KeyFactory].
type Suite struct {
	factory    KeyFactory
	exclusions *ExclusionPolicy
	logger     *slog.Logger
}

// SuiteOption configures a [Suite].
type SuiteOption func(*Suite) error

// WithExclusionPolicy sets the exclusion policy.
func WithExclusionPolicy(policy *ExclusionPolicy) SuiteOption {
	return func(s *Suite) error {
		if policy == nil {
			return fmt.Errorf("exclusion policy is nil")
		}
		s.exclusions = policy
		return nil
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) SuiteOption {
	return func(s *Suite) error {
		if logger == nil {
			return fmt.Errorf("logger is nil")
		}
		s.logger = logger
		return nil
	}
}

// NewSuite creates a new Suite for factory.
func NewSuite(factory KeyFactory, opts ...SuiteOption) (*Suite, error) {
	if factory == nil {
		return nil, fmt.Errorf("conformance.NewSuite: factory is nil")
	}
	s := &Suite{
		factory:    factory,
		exclusions: &ExclusionPolicy{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("conformance.NewSuite: %v", err)
		}
	}
	s.logger = s.logger.With("provider", factory.Name())
	return s, nil
}

// Run runs all checks.
func (s *Suite) Run() []Result {
	results := make([]Result, 0, len(allChecks))
	for _, c := range allChecks {
		results = append(results, s.RunCheck(c))
	}
	return results
}

// RunCheck runs a single check.
func (s *Suite) RunCheck(c Check) Result {
	if comment, ok := s.exclusions.Excluded(s.factory.Name(), c); ok {
		s.logger.Info("check skipped", "check", c, "comment", comment)
		return Result{Check: c, Status: Skipped, Detail: comment}
	}
	var err error
	switch c {
	case CheckEncodedPublicKey:
		err = checkEncodedPublicKey(s.factory)
	case CheckEncodedPrivateKey:
		err = checkEncodedPrivateKey(s.factory)
	case CheckKeyGeneration:
		err = checkKeyGeneration(s.factory)
	case CheckDefaultKeyGeneration:
		err = checkDefaultKeyGeneration(s.factory)
	case CheckPublicKeyAtInfinity:
		err = checkPublicKeyAtInfinity(s.factory)
	default:
		err = fmt.Errorf("unknown check %q", c)
	}
	if err != nil {
		s.logger.Error("check failed", "check", c, "err", err)
		return Result{Check: c, Status: Failed, Detail: err.Error()}
	}
	s.logger.Debug("check passed", "check", c)
	return Result{Check: c, Status: Passed}
}
