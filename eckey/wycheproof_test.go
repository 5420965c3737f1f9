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

package eckey_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/tink-crypto/tink-go-eckey/eckey"
	"github.com/tink-crypto/tink-go-eckey/ecvalidation"
	"github.com/tink-crypto/tink-go-eckey/testutil"
)

type publicKeyTest struct {
	testutil.WycheproofCase
	Encoded testutil.HexBytes `json:"encoded"`
}

type publicKeyGroup struct {
	testutil.WycheproofGroup
	Tests []*publicKeyTest `json:"tests"`
}

type publicKeySuite struct {
	testutil.WycheproofSuite
	TestGroups []*publicKeyGroup `json:"testGroups"`
}

var reasonsByFlag = map[string]ecvalidation.Reason{
	ecvalidation.InvalidOrder.String():     ecvalidation.InvalidOrder,
	ecvalidation.InvalidCofactor.String():  ecvalidation.InvalidCofactor,
	ecvalidation.PointAtInfinity.String():  ecvalidation.PointAtInfinity,
	ecvalidation.PointNotOnCurve.String():  ecvalidation.PointNotOnCurve,
	ecvalidation.CurveSingular.String():    ecvalidation.CurveSingular,
	ecvalidation.InvalidField.String():     ecvalidation.InvalidField,
	ecvalidation.InvalidGenerator.String(): ecvalidation.InvalidGenerator,
}

func TestParsePublicKeyWycheproofVectors(t *testing.T) {
	suite := new(publicKeySuite)
	if err := testutil.PopulateSuite(suite, "ec_public_key_test.json"); err != nil {
		t.Fatalf("testutil.PopulateSuite() err = %v, want nil", err)
	}
	for _, group := range suite.TestGroups {
		for _, test := range group.Tests {
			t.Run(fmt.Sprintf("%d: %s", test.CaseID, test.Comment), func(t *testing.T) {
				pub, err := eckey.ParsePublicKey(test.Encoded)
				switch test.Result {
				case "valid":
					if err != nil {
						t.Fatalf("eckey.ParsePublicKey() err = %v, want nil", err)
					}
					if v := ecvalidation.Validate(pub.DomainParameters(), pub.Point()); !v.Valid() {
						t.Errorf("ecvalidation.Validate() = %v, want valid", v)
					}
				case "invalid":
					if err == nil {
						t.Fatalf("eckey.ParsePublicKey() err = nil, want error")
					}
					if len(test.Flags) != 1 {
						t.Fatalf("test case has flags %v, want exactly one reason", test.Flags)
					}
					want, ok := reasonsByFlag[test.Flags[0]]
					if !ok {
						t.Fatalf("unknown flag %q", test.Flags[0])
					}
					var validationErr *ecvalidation.ValidationError
					if !errors.As(err, &validationErr) {
						t.Fatalf("eckey.ParsePublicKey() err = %v, want a *ecvalidation.ValidationError", err)
					}
					if validationErr.Reason != want {
						t.Errorf("eckey.ParsePublicKey() reason = %v, want %v", validationErr.Reason, want)
					}
				default:
					t.Fatalf("unsupported result %q", test.Result)
				}
			})
		}
	}
}
