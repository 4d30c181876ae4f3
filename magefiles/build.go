//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Build mg.Namespace

// Builds the gpures command into bin/.
func (Build) Cli() error {
	fmt.Println("Build gpures...")
	return sh.RunV("go", "build", "-o", "bin/gpures", "./cmd/gpures")
}

// Builds the gpures command with only the no-op backend, for CI hosts
// without a GPU driver.
func (Build) Headless() error {
	_, err := executeCmd("go",
		withArgs("build", "-tags", "nometal,novulkan", "-o", "bin/gpures-headless", "./cmd/gpures"),
		withEnv("CGO_ENABLED=0"),
		withStream())
	return err
}
