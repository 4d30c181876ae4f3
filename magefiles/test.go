//go:build mage

package main

import (
	"fmt"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Test mg.Namespace

// tagSets are the backend configurations exercised by Test:Matrix. Each
// leaves at least one backend enabled.
var tagSets = [][]string{
	nil,
	{"novulkan"},
	{"noempty"},
	{"nometal"},
	{"nometal", "novulkan"},
}

// Runs the unit tests for the default backend set.
func (Test) Unit() error {
	if err := sh.RunV("go", "test", "-race", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "test", "-tags", "mage", "./magefiles")
}

// Runs the unit tests once per backend tag set.
func (Test) Matrix() error {
	for _, tags := range tagSets {
		args := []string{"test", "-count=1"}
		if len(tags) > 0 {
			args = append(args, "-tags", strings.Join(tags, ","))
		}
		args = append(args, "./...")
		if _, err := executeCmd("go", withArgs(args...), withStream()); err != nil {
			return fmt.Errorf("tags %v: %w", tags, err)
		}
	}
	return nil
}

// guardSymbol is the undefined name reported by backend/guard.go.
const guardSymbol = "enable_at_least_one_graphics_backend"

// Checks that disabling every backend fails the build with the guard error.
func (Test) Guard() error {
	out, err := executeCmd("go", withArgs("build", "-tags", "nometal,novulkan,noempty", "./backend"))
	if err := checkGuard(out, err); err != nil {
		return err
	}
	fmt.Println("guard rejected the empty backend set as expected")
	return nil
}

// checkGuard accepts only a build that failed on the guard symbol.
func checkGuard(out string, buildErr error) error {
	if buildErr == nil {
		return fmt.Errorf("build with every backend disabled succeeded: %s", out)
	}
	if !strings.Contains(out, guardSymbol) {
		return fmt.Errorf("build failed without the guard error: %w\n%s", buildErr, out)
	}
	return nil
}

// Runs vet and every test target.
func (Test) All() {
	mg.SerialDeps(Vet, Test.Unit, Test.Matrix, Test.Guard)
}

// Runs go vet with the default tags.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}
