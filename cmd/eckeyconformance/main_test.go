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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if got := run([]string{"-form", "explicit"}, &stdout, &stderr); got != 0 {
		t.Fatalf("run() = %d, want 0; stderr:\n%s", got, stderr.String())
	}
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("run() printed %d lines, want 5:\n%s", len(lines), stdout.String())
	}
	for _, line := range lines {
		if !strings.Contains(line, "PASSED") {
			t.Errorf("line %q, want PASSED", line)
		}
	}
}

func TestRunWithExclusions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exclusions.yaml")
	policy := "providers:\n  - name: legacy\n    exclude:\n      - check: key_generation\n        comment: not supported\n"
	if err := os.WriteFile(path, []byte(policy), 0o600); err != nil {
		t.Fatalf("os.WriteFile() err = %v, want nil", err)
	}
	var stdout, stderr bytes.Buffer
	if got := run([]string{"-name", "legacy", "-exclusions", path}, &stdout, &stderr); got != 0 {
		t.Fatalf("run() = %d, want 0; stderr:\n%s", got, stderr.String())
	}
	if !strings.Contains(stdout.String(), "SKIPPED (not supported)") {
		t.Errorf("stdout = %q, want a skipped check", stdout.String())
	}
	if !strings.Contains(stderr.String(), `"msg":"check skipped"`) {
		t.Errorf("stderr = %q, want a JSON log of the skipped check", stderr.String())
	}
}

func TestRunInvalidFlags(t *testing.T) {
	for _, args := range [][]string{
		{"-form", "compressed"},
		{"-exclusions", filepath.Join(t.TempDir(), "missing.yaml")},
		{"-name", ""},
		{"-unknown"},
	} {
		var stdout, stderr bytes.Buffer
		if got := run(args, &stdout, &stderr); got != 2 {
			t.Errorf("run(%q) = %d, want 2", args, got)
		}
	}
}
