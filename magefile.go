//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "aksharmala"
	mainPkg    = "./cmd/aksharmala"
)

var Default = Build

// Build compiles the binary into the repository root
func Build() error {
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binaryName, mainPkg)
}

// Test runs the unit tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install builds and installs the binary into $GOPATH/bin
func Install() error {
	mg.Deps(Test)

	gopath, err := sh.Output("go", "env", "GOPATH")
	if err != nil {
		return err
	}
	fmt.Printf("Installing %s\n", filepath.Join(gopath, "bin", binaryName))
	return sh.RunV("go", "install", "-ldflags", ldflags(), mainPkg)
}

// FetchAudio pre-fetches the pronunciation audio into ./assets
func FetchAudio() error {
	mg.Deps(Build)
	return sh.RunV("./"+binaryName, "fetch-audio")
}

// FetchImages fills in the example pictures named by the dataset
func FetchImages() error {
	mg.Deps(Build)
	return sh.RunV("./"+binaryName, "fetch-images")
}

// Clean removes the built binary
func Clean() error {
	if err := os.Remove(binaryName); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func ldflags() string {
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || version == "" {
		version = "dev"
	}
	return fmt.Sprintf("-X codeberg.org/snonux/aksharmala/internal.Version=%s", version)
}
