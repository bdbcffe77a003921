//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "tweetlate"

// Default target to run when none is specified
var Default = Build

// Build compiles the tweetlate binary
func Build() error {
	mg.Deps(Vet)
	fmt.Println("Building", binary)
	return sh.RunV("go", "build", "-o", binary, "./cmd/tweetlate")
}

// Install installs tweetlate into GOPATH/bin
func Install() error {
	return sh.RunV("go", "install", "./cmd/tweetlate")
}

// Test runs the unit tests, integration tests skip themselves without API keys
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// TestShort runs the tests without loading the lingua language models
func TestShort() error {
	return sh.RunV("go", "test", "-short", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Clean removes the binary
func Clean() error {
	fmt.Println("Cleaning...")
	return os.RemoveAll(binary)
}
