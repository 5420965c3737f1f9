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
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Exclusion excludes one check for a provider.
type Exclusion struct {
	Check   Check  `yaml:"check"`
	Comment string `yaml:"comment,omitempty"`
}

// ProviderExclusions lists the checks excluded for a provider.
type ProviderExclusions struct {
	Name    string      `yaml:"name"`
	Exclude []Exclusion `yaml:"exclude"`
}

// ExclusionPolicy declares which checks are skipped for which providers.
//
// The YAML form is:
//
//	providers:
//	  - name: legacy
//	    exclude:
//	      - check: key_generation
//	        comment: KeyPairGenerator.EC is removed
//
// The zero value excludes nothing.
type ExclusionPolicy struct {
	Providers []ProviderExclusions `yaml:"providers"`
}

// ParseExclusionPolicy parses an exclusion policy from YAML.
//
// Unknown fields, unknown check names, empty and duplicate provider names are
// rejected.
func ParseExclusionPolicy(data []byte) (*ExclusionPolicy, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	policy := &ExclusionPolicy{}
	if err := dec.Decode(policy); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("conformance.ParseExclusionPolicy: %v", err)
	}
	if err := policy.validate(); err != nil {
		return nil, fmt.Errorf("conformance.ParseExclusionPolicy: %v", err)
	}
	return policy, nil
}

// LoadExclusionPolicy reads and parses an exclusion policy file.
func LoadExclusionPolicy(path string) (*ExclusionPolicy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("conformance.LoadExclusionPolicy: %v", err)
	}
	policy, err := ParseExclusionPolicy(data)
	if err != nil {
		return nil, fmt.Errorf("conformance.LoadExclusionPolicy: %s: %v", path, err)
	}
	return policy, nil
}

// Marshal encodes the policy as YAML.
func (p *ExclusionPolicy) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("conformance.ExclusionPolicy.Marshal: %v", err)
	}
	return out, nil
}

func (p *ExclusionPolicy) validate() error {
	seen := make(map[string]bool)
	for _, provider := range p.Providers {
		if provider.Name == "" {
			return fmt.Errorf("provider name is empty")
		}
		if seen[provider.Name] {
			return fmt.Errorf("duplicate provider %q", provider.Name)
		}
		seen[provider.Name] = true
		for _, e := range provider.Exclude {
			if !e.Check.known() {
				return fmt.Errorf("provider %q: unknown check %q", provider.Name, e.Check)
			}
		}
	}
	return nil
}

// Excluded tells whether check is excluded for provider, and returns the
// comment of the exclusion.
func (p *ExclusionPolicy) Excluded(provider string, check Check) (string, bool) {
	if p == nil {
		return "", false
	}
	for _, pe := range p.Providers {
		if pe.Name != provider {
			continue
		}
		for _, e := range pe.Exclude {
			if e.Check == check {
				return e.Comment, true
			}
		}
	}
	return "", false
}
