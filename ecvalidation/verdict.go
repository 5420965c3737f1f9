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

package ecvalidation

import "fmt"

// Reason is the reason a public key or curve was rejected.
type Reason int

const (
	// ReasonNone is the reason of a valid verdict.
	ReasonNone Reason = iota
	// InvalidOrder means the subgroup order is missing, at most 1, or larger
	// than any curve over the field could have.
	InvalidOrder
	// InvalidCofactor means the cofactor is missing, non-positive, or
	// implausibly large.
	InvalidCofactor
	// PointAtInfinity means the candidate point is the identity element.
	PointAtInfinity
	// PointNotOnCurve means the candidate point has a coordinate outside the
	// field or does not satisfy the curve equation.
	PointNotOnCurve
	// CurveSingular means 4a^3 + 27b^2 = 0 (mod p).
	CurveSingular
	// InvalidField means the field modulus is not a prime greater than 3 or a
	// curve coefficient is not a field element.
	InvalidField
	// InvalidGenerator means the generator is not an affine point on the
	// curve.
	InvalidGenerator
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "NONE"
	case InvalidOrder:
		return "INVALID_ORDER"
	case InvalidCofactor:
		return "INVALID_COFACTOR"
	case PointAtInfinity:
		return "POINT_AT_INFINITY"
	case PointNotOnCurve:
		return "POINT_NOT_ON_CURVE"
	case CurveSingular:
		return "CURVE_SINGULAR"
	case InvalidField:
		return "INVALID_FIELD"
	case InvalidGenerator:
		return "INVALID_GENERATOR"
	default:
		return "UNKNOWN"
	}
}

// Verdict is the result of a validation.
type Verdict struct {
	// Reason is ReasonNone if and only if the input is valid.
	Reason Reason
	// Detail is a human readable description of the failure.
	Detail string
}

func valid() Verdict { return Verdict{} }

func invalid(reason Reason, format string, args ...any) Verdict {
	return Verdict{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// Valid tells whether the verdict accepts the input.
func (v Verdict) Valid() bool { return v.Reason == ReasonNone }

// Err returns a *ValidationError for an invalid verdict and nil otherwise.
func (v Verdict) Err() error {
	if v.Valid() {
		return nil
	}
	return &ValidationError{Reason: v.Reason, Detail: v.Detail}
}

func (v Verdict) String() string {
	if v.Valid() {
		return "VALID"
	}
	return fmt.Sprintf("INVALID(%v: %s)", v.Reason, v.Detail)
}

// ValidationError wraps an invalid [Verdict] so that it can be propagated as
// an error and recovered with errors.As.
type ValidationError struct {
	Reason Reason
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("ecvalidation: %v: %s", e.Reason, e.Detail)
}

// Is reports whether target is a *ValidationError with the same reason, so
// that errors.Is(err, &ValidationError{Reason: InvalidOrder}) matches any
// detail.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Reason == e.Reason
}
