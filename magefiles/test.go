//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// All Runs all test suites
func (t Test) All() error {
	mg.Deps(t.Unit, t.Assertions)
	return nil
}

// Unit Runs the unit tests
func (Test) Unit() error {
	fmt.Println("running unit tests")
	return goTest("./...", "-race", "-timeout", "10m")
}

// Assertions Runs the unit tests with debug assertions enabled
func (Test) Assertions() error {
	fmt.Println("running unit tests with debug assertions")
	return goTest("./...", "-tags", "ci", "-timeout", "10m")
}

// Rapid Runs the property tests with more checks than the default
func (Test) Rapid() error {
	fmt.Println("running property tests")
	return goTest("./pkg/genutil/mapz/...", "-run", "MatchesModel|AfterAnyMutation", "-rapid.checks=10000")
}
