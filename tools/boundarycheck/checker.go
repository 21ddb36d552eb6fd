package main

import (
	"bufio"
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Violation describes one forbidden cross-domain import.
type Violation struct {
	Path         string
	Line         int
	ImportPath   string
	FromDomain   string
	ToDomain     string
	FacadeImport string
}

func (v Violation) String() string {
	return fmt.Sprintf(
		"%s:%d: direct cross-domain import %q (%s -> %s). Use the domain facade import %q or a local gateway.",
		v.Path, v.Line, v.ImportPath, v.FromDomain, v.ToDomain, v.FacadeImport,
	)
}

// Check walks internal/ under rootDir and reports every import that crosses
// from one domain into another domain's internal packages. Importing the
// target domain's facade is allowed: its root package, or a package named
// facade or gateway.
// Directories listed in shared are infrastructure and are neither policed
// nor protected.
func Check(rootDir string, shared map[string]bool) ([]Violation, error) {
	modulePath, err := readModulePath(filepath.Join(rootDir, "go.mod"))
	if err != nil {
		return nil, err
	}

	internalDir := filepath.Join(rootDir, "internal")
	if _, err := os.Stat(internalDir); err != nil {
		return nil, fmt.Errorf("no internal directory under %s: %w", rootDir, err)
	}

	internalPrefix := modulePath + "/internal/"
	fset := token.NewFileSet()
	var violations []Violation

	walkErr := filepath.WalkDir(internalDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if name == "vendor" || name == "testdata" || strings.HasPrefix(name, ".") ||
				strings.HasPrefix(name, "_") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".go") {
			return nil
		}

		rel, err := filepath.Rel(rootDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		fromDomain := domainOf(strings.TrimPrefix(rel, "internal/"))
		if fromDomain == "" || shared[fromDomain] {
			return nil
		}

		file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", rel, err)
		}

		for _, spec := range file.Imports {
			importPath := strings.Trim(spec.Path.Value, `"`)
			if !strings.HasPrefix(importPath, internalPrefix) {
				continue
			}

			target := strings.TrimPrefix(importPath, internalPrefix)
			toDomain := domainOf(target)
			if toDomain == fromDomain || shared[toDomain] {
				continue
			}
			if isFacade(target, toDomain) {
				continue
			}

			violations = append(violations, Violation{
				Path:         rel,
				Line:         fset.Position(spec.Pos()).Line,
				ImportPath:   importPath,
				FromDomain:   fromDomain,
				ToDomain:     toDomain,
				FacadeImport: internalPrefix + toDomain,
			})
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return violations, nil
}

// isFacade reports whether a target package (path relative to internal/) is
// a sanctioned crossing into its domain: the domain root package, or a
// package named facade or gateway.
func isFacade(target, domain string) bool {
	if target == domain {
		return true
	}
	last := target
	if i := strings.LastIndexByte(target, '/'); i >= 0 {
		last = target[i+1:]
	}
	return last == "facade" || last == "gateway"
}

// domainOf returns the first path element of a slash-separated path relative
// to internal/.
func domainOf(rel string) string {
	if i := strings.IndexByte(rel, '/'); i >= 0 {
		return rel[:i]
	}
	// A file directly under internal/ belongs to no domain.
	if strings.HasSuffix(rel, ".go") {
		return ""
	}
	return rel
}

// readModulePath extracts the module path from a go.mod file.
func readModulePath(goModPath string) (string, error) {
	f, err := os.Open(goModPath)
	if err != nil {
		return "", fmt.Errorf("failed to open go.mod: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "module ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "module ")), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	return "", fmt.Errorf("no module directive in %s", goModPath)
}
