//go:build mage

package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// run go test in the root, with richgo if it is installed
func goTest(path string, args ...string) error {
	goCmd := "go"
	if hasBinary("richgo") {
		goCmd = "richgo"
	}

	testArgs := append([]string{"test", "-failfast", "-count=1"}, args...)
	return RunSh(goCmd, WithV(), WithArgs(testArgs...))(path)
}

// requireBinary fails a target when a linter is not on the PATH.
func requireBinary(binaryName string) error {
	if !hasBinary(binaryName) {
		return fmt.Errorf("%s must be installed", binaryName)
	}
	return nil
}

func hasBinary(binaryName string) bool {
	_, err := exec.LookPath(binaryName)
	return err == nil
}

type runOptions struct {
	args           []string
	dir            string
	stderr, stdout io.Writer
}

// RunOpt applies an option to a runOptions set.
type RunOpt func(*runOptions)

// WithV connects the command to the standard streams.
func WithV() RunOpt {
	return func(options *runOptions) {
		options.stdout = os.Stdout
		options.stderr = os.Stderr
	}
}

// WithDir sets the working directory for the command.
func WithDir(dir string) RunOpt {
	return func(options *runOptions) {
		options.dir = dir
	}
}

// WithArgs prepends arguments to every invocation.
func WithArgs(args ...string) RunOpt {
	return func(options *runOptions) {
		options.args = append(options.args, args...)
	}
}

// Tool runs the command from the magefiles module.
func Tool() RunOpt {
	return func(options *runOptions) {
		WithDir("magefiles")(options)
		WithV()(options)
	}
}

// RunSh returns a function that runs cmd with the configured arguments
// followed by its own. A failing command makes mage exit with the command's
// exit code.
func RunSh(cmd string, options ...RunOpt) func(args ...string) error {
	opts := runOptions{}
	for _, o := range options {
		o(&opts)
	}

	return func(args ...string) error {
		finalArgs := append(append([]string{}, opts.args...), args...)

		c := exec.Command(cmd, finalArgs...)
		c.Dir = opts.dir
		c.Stdout = opts.stdout
		c.Stderr = opts.stderr
		c.Stdin = os.Stdin

		if mg.Verbose() {
			log.Println("exec:", cmd, strings.Join(finalArgs, " "))
		}

		err := c.Run()
		switch {
		case err == nil:
			return nil
		case sh.CmdRan(err):
			code := sh.ExitStatus(err)
			return mg.Fatalf(code, `running "%s %s" failed with exit code %d`, cmd, strings.Join(finalArgs, " "), code)
		default:
			return fmt.Errorf(`failed to run "%s %s": %w`, cmd, strings.Join(finalArgs, " "), err)
		}
	}
}
