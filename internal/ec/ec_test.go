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

package ec_test

import (
	"crypto/elliptic"
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tink-crypto/tink-go-eckey/internal/ec"
)

func TestBigIntBytesToFixedSizeBuffer(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input []byte
		size  int
		want  []byte
	}{
		{
			name:  "same size",
			input: []byte{0x01, 0x02, 0x03, 0x04},
			size:  4,
			want:  []byte{0x01, 0x02, 0x03, 0x04},
		},
		{
			name:  "input smaller than size",
			input: []byte{0x01, 0x02, 0x03, 0x04},
			size:  5,
			want:  []byte{0x00, 0x01, 0x02, 0x03, 0x04},
		},
		{
			name:  "input larger than size",
			input: []byte{0x00, 0x00, 0x03, 0x04, 0x05, 0x06},
			size:  4,
			want:  []byte{0x03, 0x04, 0x05, 0x06},
		},
		{
			name:  "input larger than size with leading zeros",
			input: []byte{0x00, 0x00, 0x03, 0x04, 0x05, 0x06},
			size:  5,
			want:  []byte{0x00, 0x03, 0x04, 0x05, 0x06},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ec.BigIntBytesToFixedSizeBuffer(tc.input, tc.size)
			if err != nil {
				t.Fatalf("ec.BigIntBytesToFixedSizeBuffer(%v, %v) err = %v, want nil", tc.input, tc.size, err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ec.BigIntBytesToFixedSizeBuffer(%v, %v) returned unexpected diff (-want +got):\n%s", tc.input, tc.size, diff)
			}
		})
	}
}

func TestBigIntBytesToFixedSizeBuffer_FailsWhenInputTooLarge(t *testing.T) {
	if _, err := ec.BigIntBytesToFixedSizeBuffer([]byte{0x01, 0x02}, 1); err == nil {
		t.Errorf("ec.BigIntBytesToFixedSizeBuffer() err = nil, want error")
	}
}

func mustBigInt(t *testing.T, hexValue string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(hexValue, 16)
	if !ok {
		t.Fatalf("invalid hex value %q", hexValue)
	}
	return v
}

func p256Coefficients() (p, a, b *big.Int) {
	params := elliptic.P256().Params()
	a = new(big.Int).Sub(params.P, big.NewInt(3))
	return params.P, a, params.B
}

func TestFieldElementBytes(t *testing.T) {
	p := big.NewInt(0x1ff) // 9 bits, 2 bytes
	got, err := ec.FieldElementBytes(big.NewInt(5), p)
	if err != nil {
		t.Fatalf("ec.FieldElementBytes() err = %v, want nil", err)
	}
	if diff := cmp.Diff([]byte{0x00, 0x05}, got); diff != "" {
		t.Errorf("ec.FieldElementBytes() returned unexpected diff (-want +got):\n%s", diff)
	}
	for _, v := range []*big.Int{big.NewInt(-1), big.NewInt(0x1ff), big.NewInt(0x200)} {
		if _, err := ec.FieldElementBytes(v, p); err == nil {
			t.Errorf("ec.FieldElementBytes(%v, %v) err = nil, want error", v, p)
		}
	}
}

func TestIsSingular(t *testing.T) {
	p, a, b := p256Coefficients()
	if ec.IsSingular(p, a, b) {
		t.Errorf("ec.IsSingular(P-256) = true, want false")
	}
	// y^2 = x^3 is singular at the origin.
	if !ec.IsSingular(p, big.NewInt(0), big.NewInt(0)) {
		t.Errorf("ec.IsSingular(a=0, b=0) = false, want true")
	}
	// a = -3, b = 2 gives 4*(-27) + 27*4 = 0.
	if !ec.IsSingular(big.NewInt(17), big.NewInt(14), big.NewInt(2)) {
		t.Errorf("ec.IsSingular(p=17, a=-3, b=2) = false, want true")
	}
}

func TestIsOnCurve(t *testing.T) {
	params := elliptic.P256().Params()
	p, a, b := p256Coefficients()
	if !ec.IsOnCurve(p, a, b, params.Gx, params.Gy) {
		t.Errorf("ec.IsOnCurve(P-256 generator) = false, want true")
	}
	y := new(big.Int).Add(params.Gy, big.NewInt(1))
	if ec.IsOnCurve(p, a, b, params.Gx, y) {
		t.Errorf("ec.IsOnCurve(Gx, Gy+1) = true, want false")
	}
	// y^2 = x^3 + 2x + 2 over F_17 contains (5, 1).
	if !ec.IsOnCurve(big.NewInt(17), big.NewInt(2), big.NewInt(2), big.NewInt(5), big.NewInt(1)) {
		t.Errorf("ec.IsOnCurve(p=17, (5, 1)) = false, want true")
	}
}

func TestHasseUpperBound(t *testing.T) {
	for _, tc := range []struct {
		p    int64
		want int64
	}{
		{p: 17, want: 17 + 1 + 2*5},
		{p: 25, want: 25 + 1 + 2*5},
		{p: 97, want: 97 + 1 + 2*10},
	} {
		if got := ec.HasseUpperBound(big.NewInt(tc.p)); got.Cmp(big.NewInt(tc.want)) != 0 {
			t.Errorf("ec.HasseUpperBound(%d) = %v, want %d", tc.p, got, tc.want)
		}
	}
	params := elliptic.P256().Params()
	if ec.HasseUpperBound(params.P).Cmp(params.N) <= 0 {
		t.Errorf("ec.HasseUpperBound(P-256) <= order")
	}
}

func TestDecompressY(t *testing.T) {
	params := elliptic.P256().Params()
	p, a, b := p256Coefficients()
	got, err := ec.DecompressY(p, a, b, params.Gx, params.Gy.Bit(0))
	if err != nil {
		t.Fatalf("ec.DecompressY() err = %v, want nil", err)
	}
	if got.Cmp(params.Gy) != 0 {
		t.Errorf("ec.DecompressY() = %x, want %x", got, params.Gy)
	}
	other, err := ec.DecompressY(p, a, b, params.Gx, 1-params.Gy.Bit(0))
	if err != nil {
		t.Fatalf("ec.DecompressY() err = %v, want nil", err)
	}
	if want := new(big.Int).Sub(p, params.Gy); other.Cmp(want) != 0 {
		t.Errorf("ec.DecompressY() = %x, want %x", other, want)
	}
}

func TestDecompressYFailsForInvalidX(t *testing.T) {
	p := mustBigInt(t, "11")
	// x = 0 gives y^2 = 3, a non-residue mod 17.
	if _, err := ec.DecompressY(p, big.NewInt(2), big.NewInt(3), big.NewInt(0), 0); err == nil {
		t.Errorf("ec.DecompressY() err = nil, want error")
	}
	if _, err := ec.DecompressY(p, big.NewInt(2), big.NewInt(3), big.NewInt(17), 0); err == nil {
		t.Errorf("ec.DecompressY(x = p) err = nil, want error")
	}
}
