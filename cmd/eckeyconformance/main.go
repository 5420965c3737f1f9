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

// Command eckeyconformance runs the EC key conformance suite against the key
// factory of this module and prints one line per check.
//
// Usage:
//
//	eckeyconformance [-name eckey] [-exclusions exclusions.yaml] [-form named|explicit] [-v]
//
// The exit status is 1 if any check failed.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tink-crypto/tink-go-eckey/conformance"
	"github.com/tink-crypto/tink-go-eckey/ecder"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func parseForm(s string) (ecder.ParametersForm, error) {
	switch s {
	case "named":
		return ecder.NamedCurve, nil
	case "explicit":
		return ecder.ExplicitParameters, nil
	default:
		return ecder.UnknownParametersForm, fmt.Errorf("unknown parameters form %q", s)
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("eckeyconformance", flag.ContinueOnError)
	fs.SetOutput(stderr)
	name := fs.String("name", conformance.DefaultFactoryName, "provider name used to look up exclusions")
	exclusionsPath := fs.String("exclusions", "", "path of a YAML exclusion policy")
	formName := fs.String("form", "named", "encoding of domain parameters in private keys: named or explicit")
	verbose := fs.Bool("v", false, "log passed checks")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: level}))

	form, err := parseForm(*formName)
	if err != nil {
		logger.Error("invalid flag", "err", err)
		return 2
	}
	factory, err := conformance.NewKeyFactory(conformance.WithName(*name), conformance.WithParametersForm(form))
	if err != nil {
		logger.Error("creating key factory", "err", err)
		return 2
	}
	opts := []conformance.SuiteOption{conformance.WithLogger(logger)}
	if *exclusionsPath != "" {
		policy, err := conformance.LoadExclusionPolicy(*exclusionsPath)
		if err != nil {
			logger.Error("loading exclusion policy", "err", err)
			return 2
		}
		opts = append(opts, conformance.WithExclusionPolicy(policy))
	}
	suite, err := conformance.NewSuite(factory, opts...)
	if err != nil {
		logger.Error("creating suite", "err", err)
		return 2
	}

	status := 0
	for _, r := range suite.Run() {
		fmt.Fprintf(stdout, "%-24s %s", r.Check, r.Status)
		if r.Detail != "" {
			fmt.Fprintf(stdout, " (%s)", r.Detail)
		}
		fmt.Fprintln(stdout)
		if r.Status == conformance.Failed {
			status = 1
		}
	}
	return status
}
