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

// Package eckeyvectors contains EC public key encodings with invalid domain
// parameters, taken from Wycheproof's EcKeyTest.
//
// All vectors are X.509 SubjectPublicKeyInfo encodings with explicit
// parameters of NIST P-256 in which the order or the cofactor was modified.
// The public point is the same valid P-256 point in every vector.
package eckeyvectors

// Defect identifies the parameter modification of a vector.
type Defect int

const (
	// DefectUnknown is the default value of Defect.
	DefectUnknown Defect = iota
	// DefectOrder means the subgroup order was modified.
	DefectOrder
	// DefectCofactor means the cofactor was modified.
	DefectCofactor
)

// Vector is an invalid public key encoding.
type Vector struct {
	// Comment describes the modification.
	Comment string
	// Defect is the modified parameter.
	Defect Defect
	// EncodedHex is the hex encoded SubjectPublicKeyInfo.
	EncodedHex string
}

// PublicPointXHex and PublicPointYHex are the coordinates of the public
// point in every vector.
const (
	PublicPointXHex = "cdeb39edd03e2b1a11a5e134ec99d5f25f21673d403f3ecb47bd1fa676638958"
	PublicPointYHex = "ea58493b8429598c0b49bbb85c3303ddb1553c3b761c2caacca71606ba9ebac8"
)

// InvalidPublicKeys are public key encodings with invalid parameters that a
// key factory must reject: the order must be a positive integer and the
// cofactor a small positive integer.
var InvalidPublicKeys = []Vector{
	{
		Comment: "order = -115792089210356248762697446949407573529996955224135760342422259061068512044369",
		Defect:  DefectOrder,
		EncodedHex: "308201333081ec06072a8648ce3d02013081e0020101302c06072a8648ce3d01" +
			"01022100ffffffff00000001000000000000000000000000ffffffffffffffff" +
			"ffffffff30440420ffffffff00000001000000000000000000000000ffffffff" +
			"fffffffffffffffc04205ac635d8aa3a93e7b3ebbd55769886bc651d06b0cc53" +
			"b0f63bce3c3e27d2604b0441046b17d1f2e12c4247f8bce6e563a440f277037d" +
			"812deb33a0f4a13945d898c2964fe342e2fe1a7f9b8ee7eb4a7c0f9e162bce33" +
			"576b315ececbb6406837bf51f50221ff00000000ffffffff0000000000000000" +
			"4319055258e8617b0c46353d039cdaaf02010103420004cdeb39edd03e2b1a11" +
			"a5e134ec99d5f25f21673d403f3ecb47bd1fa676638958ea58493b8429598c0b" +
			"49bbb85c3303ddb1553c3b761c2caacca71606ba9ebac8",
	},
	{
		Comment: "order = 0",
		Defect:  DefectOrder,
		EncodedHex: "308201123081cb06072a8648ce3d02013081bf020101302c06072a8648ce3d01" +
			"01022100ffffffff00000001000000000000000000000000ffffffffffffffff" +
			"ffffffff30440420ffffffff00000001000000000000000000000000ffffffff" +
			"fffffffffffffffc04205ac635d8aa3a93e7b3ebbd55769886bc651d06b0cc53" +
			"b0f63bce3c3e27d2604b0441046b17d1f2e12c4247f8bce6e563a440f277037d" +
			"812deb33a0f4a13945d898c2964fe342e2fe1a7f9b8ee7eb4a7c0f9e162bce33" +
			"576b315ececbb6406837bf51f5020002010103420004cdeb39edd03e2b1a11a5" +
			"e134ec99d5f25f21673d403f3ecb47bd1fa676638958ea58493b8429598c0b49" +
			"bbb85c3303ddb1553c3b761c2caacca71606ba9ebac8",
	},
	{
		Comment: "cofactor = -1",
		Defect:  DefectCofactor,
		EncodedHex: "308201333081ec06072a8648ce3d02013081e0020101302c06072a8648ce3d01" +
			"01022100ffffffff00000001000000000000000000000000ffffffffffffffff" +
			"ffffffff30440420ffffffff00000001000000000000000000000000ffffffff" +
			"fffffffffffffffc04205ac635d8aa3a93e7b3ebbd55769886bc651d06b0cc53" +
			"b0f63bce3c3e27d2604b0441046b17d1f2e12c4247f8bce6e563a440f277037d" +
			"812deb33a0f4a13945d898c2964fe342e2fe1a7f9b8ee7eb4a7c0f9e162bce33" +
			"576b315ececbb6406837bf51f5022100ffffffff00000000ffffffffffffffff" +
			"bce6faada7179e84f3b9cac2fc6325510201ff03420004cdeb39edd03e2b1a11" +
			"a5e134ec99d5f25f21673d403f3ecb47bd1fa676638958ea58493b8429598c0b" +
			"49bbb85c3303ddb1553c3b761c2caacca71606ba9ebac8",
	},
	{
		Comment: "cofactor = 0",
		Defect:  DefectCofactor,
		EncodedHex: "308201323081eb06072a8648ce3d02013081df020101302c06072a8648ce3d01" +
			"01022100ffffffff00000001000000000000000000000000ffffffffffffffff" +
			"ffffffff30440420ffffffff00000001000000000000000000000000ffffffff" +
			"fffffffffffffffc04205ac635d8aa3a93e7b3ebbd55769886bc651d06b0cc53" +
			"b0f63bce3c3e27d2604b0441046b17d1f2e12c4247f8bce6e563a440f277037d" +
			"812deb33a0f4a13945d898c2964fe342e2fe1a7f9b8ee7eb4a7c0f9e162bce33" +
			"576b315ececbb6406837bf51f5022100ffffffff00000000ffffffffffffffff" +
			"bce6faada7179e84f3b9cac2fc632551020003420004cdeb39edd03e2b1a11a5" +
			"e134ec99d5f25f21673d403f3ecb47bd1fa676638958ea58493b8429598c0b49" +
			"bbb85c3303ddb1553c3b761c2caacca71606ba9ebac8",
	},
	{
		Comment: "cofactor = 115792089210356248762697446949407573529996955224135760342422259061068512044369",
		Defect:  DefectCofactor,
		EncodedHex: "308201553082010d06072a8648ce3d020130820100020101302c06072a8648ce" +
			"3d0101022100ffffffff00000001000000000000000000000000ffffffffffff" +
			"ffffffffffff30440420ffffffff00000001000000000000000000000000ffff" +
			"fffffffffffffffffffc04205ac635d8aa3a93e7b3ebbd55769886bc651d06b0" +
			"cc53b0f63bce3c3e27d2604b0441046b17d1f2e12c4247f8bce6e563a440f277" +
			"037d812deb33a0f4a13945d898c2964fe342e2fe1a7f9b8ee7eb4a7c0f9e162b" +
			"ce33576b315ececbb6406837bf51f5022100ffffffff00000000ffffffffffff" +
			"ffffbce6faada7179e84f3b9cac2fc632551022100ffffffff00000000ffffff" +
			"ffffffffffbce6faada7179e84f3b9cac2fc63255103420004cdeb39edd03e2b" +
			"1a11a5e134ec99d5f25f21673d403f3ecb47bd1fa676638958ea58493b842959" +
			"8c0b49bbb85c3303ddb1553c3b761c2caacca71606ba9ebac8",
	},
}
