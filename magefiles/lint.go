//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Lint mg.Namespace

// All Run all linters
func (l Lint) All() error {
	mg.Deps(l.Go)
	return nil
}

// Go Run all go linters
func (l Lint) Go() error {
	if err := (Gen{}).Go(); err != nil {
		return err
	}
	mg.Deps(l.Gofumpt, l.Golangcilint, l.Vulncheck)
	return nil
}

// Gofumpt Run gofumpt
func (Lint) Gofumpt() error {
	fmt.Println("formatting go")
	return RunSh("go", Tool())("run", "mvdan.cc/gofumpt", "-l", "-w", "..")
}

// Golangcilint Run golangci-lint
func (Lint) Golangcilint() error {
	if err := requireBinary("golangci-lint"); err != nil {
		return err
	}
	fmt.Println("running golangci-lint")
	return RunSh("golangci-lint", WithV())("run", "--fix")
}

// Vulncheck Run vulncheck
func (Lint) Vulncheck() error {
	if err := requireBinary("govulncheck"); err != nil {
		return err
	}
	fmt.Println("running vulncheck")
	return RunSh("govulncheck", WithV())("./...")
}
