// Command boundarycheck enforces the domain import rules for the repository.
//
// Each directory directly under internal/ is a domain (infrastructure
// directories are exempt). Code in one domain may not import another domain's
// internal packages directly; the only sanctioned crossings are the target
// domain's facade surfaces (its root package, or a package named facade or
// gateway). Violations are printed to stderr and the process exits non-zero,
// making the tool usable as a CI gate. Run from the repository root:
//
//	go run ./tools/boundarycheck
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

func main() {
	sharedFlag := flag.String(
		"shared",
		"api,config,platform,redact",
		"comma-separated internal/ directories exempt from domain rules",
	)
	flag.Parse()

	rootDir := "."
	if flag.NArg() > 0 {
		rootDir = flag.Arg(0)
	}

	shared := map[string]bool{}
	for _, name := range strings.Split(*sharedFlag, ",") {
		if name = strings.TrimSpace(name); name != "" {
			shared[name] = true
		}
	}

	violations, err := Check(rootDir, shared)
	if err != nil {
		fmt.Fprintf(os.Stderr, "boundarycheck: %v\n", err)
		os.Exit(2)
	}

	if len(violations) > 0 {
		for _, v := range violations {
			fmt.Fprintln(os.Stderr, v)
		}
		os.Exit(1)
	}
}
