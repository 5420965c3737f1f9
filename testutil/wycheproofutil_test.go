// Copyright 2019 Google LLC
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

package testutil_test

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"os"
	"testing"

	"github.com/tink-crypto/tink-go-eckey/testutil"
)

func TestPopulateSuite(t *testing.T) {
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

	suite := new(publicKeySuite)
	if err := testutil.PopulateSuite(suite, "ec_public_key_test.json"); err != nil {
		t.Fatalf("error populating suite: %s", err)
	}

	if suite.Algorithm != "EC" {
		t.Errorf("suite.Algorithm=%s, want EC", suite.Algorithm)
	}
	var numTests int
	for _, g := range suite.TestGroups {
		numTests += len(g.Tests)
	}
	if numTests != suite.NumberOfTests {
		t.Errorf("found %d tests, want %d", numTests, suite.NumberOfTests)
	}
	if suite.TestGroups[0].Tests[0].Encoded == nil {
		t.Error("suite.TestGroups[0].Tests[0].Encoded is nil")
	}
}

func TestPopulateSuite_FileOpenError(t *testing.T) {
	suite := new(testutil.WycheproofSuite)
	err := testutil.PopulateSuite(suite, "NON_EXISTENT_FILE")
	if err == nil {
		t.Error("succeeded with non-existent file")
	}
	if _, ok := err.(*os.PathError); !ok {
		t.Errorf("unexpected error for non-existent file: %s", err)
	}
}

func TestPopulateSuite_DecodeError(t *testing.T) {
	var suite *testutil.WycheproofSuite
	err := testutil.PopulateSuite(suite, "ec_public_key_test.json")
	if err == nil {
		t.Error("succeeded with nil suite")
	}
	if _, ok := err.(*json.InvalidUnmarshalError); !ok {
		t.Errorf("unexpected error for decode error: %s", err)
	}
}

func TestHexBytes(t *testing.T) {
	validHex := []byte("abc123")
	want, err := hex.DecodeString(string(validHex))
	if err != nil {
		t.Fatalf("hex.DecodeString(%q) err = %v, want nil", validHex, err)
	}

	var got testutil.HexBytes
	if err = got.UnmarshalText(validHex); err != nil {
		t.Fatalf("hb.UnmarshalText(%q) err = %v, want nil", validHex, err)
	}

	if !bytes.Equal(got, want) {
		t.Errorf("hb.UnmarshalText(%q); hb = %v, want %v", validHex, got, want)
	}
}

func TestHexBytes_DecodeError(t *testing.T) {
	invalidHex := []byte("xyz")
	var hb testutil.HexBytes
	err := hb.UnmarshalText(invalidHex)
	if err == nil {
		t.Errorf("hb.UnmarshalText(%q) = nil, want err", invalidHex)
	}
}
