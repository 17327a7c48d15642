//go:build mage

// Package main contains Mage build targets for tileboard developer tooling.
package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "tileboard"
	cmdPkg  = "./cmd/tileboard"
)

// sampleConfig is written by Init when no tileboard.yaml exists.
const sampleConfig = `dispatch:
  document_endpoint: http://localhost:5000/query
  datasource_endpoint: http://localhost:8000/query
  timeout: 30s
board:
  max_groups: 20
  default_backend: document
history:
  path: .tileboard/history.db
log:
  level: info
  format: console
  file: .tileboard/tileboard.log
`

// sampleQueries is written by Init as a starting point for "tileboard batch".
const sampleQueries = `backend: document
questions:
  - What topics does the uploaded document cover?
  - Summarize the main findings.
`

// projectFiles maps the files Init creates to their initial contents.
var projectFiles = map[string]string{
	"tileboard.yaml":       sampleConfig,
	"queries/example.yaml": sampleQueries,
}

// projectDirs lists the working directories the CLI writes into.
var projectDirs = []string{
	".tileboard",
	"exports",
	"queries",
}

// Init creates the working directories and a sample config and query
// file. Existing files are left alone.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir+"/")
	}

	paths := make([]string, 0, len(projectFiles))
	for p := range projectFiles {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			fmt.Println("   kept", p)
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if err := os.WriteFile(p, []byte(projectFiles[p]), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", p, err)
		}
		fmt.Println("  ", p)
	}
	fmt.Println("Project initialized.")
	return nil
}

// Build compiles the CLI binary into bin/, stamping the version from
// TILEBOARD_VERSION (default "dev").
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	version := os.Getenv("TILEBOARD_VERSION")
	if version == "" {
		version = "dev"
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-ldflags", "-X main.version="+version, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s (%s)\n", out, version)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Check runs vet and the tests, then builds.
func Check() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	mg.SerialDeps(Test, Build)
	return nil
}

// Stats prints non-blank Go lines per package, split into production and
// test code.
func Stats() error {
	type counts struct{ prod, test int }
	perPkg := map[string]*counts{}

	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if name := d.Name(); path != "." && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		n, err := countLines(path)
		if err != nil {
			return err
		}
		pkg := filepath.Dir(path)
		c := perPkg[pkg]
		if c == nil {
			c = &counts{}
			perPkg[pkg] = c
		}
		if strings.HasSuffix(path, "_test.go") {
			c.test += n
		} else {
			c.prod += n
		}
		return nil
	})
	if err != nil {
		return err
	}

	pkgs := make([]string, 0, len(perPkg))
	for p := range perPkg {
		pkgs = append(pkgs, p)
	}
	sort.Strings(pkgs)

	var prod, test int
	fmt.Printf("%-24s  %8s  %8s\n", "Package", "Prod", "Test")
	for _, p := range pkgs {
		c := perPkg[p]
		prod += c.prod
		test += c.test
		fmt.Printf("%-24s  %8d  %8d\n", p, c.prod, c.test)
	}
	fmt.Printf("%-24s  %8d  %8d\n", "total", prod, test)
	return nil
}

// countLines counts the non-blank lines in a file.
func countLines(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	n := 0
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) != "" {
			n++
		}
	}
	return n, scanner.Err()
}
