//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the testbed for a few seconds with the builtin font.
func (Run) Demo() error {
	mg.Deps(Build.Vet)
	fmt.Println("Run testbed...")
	if _, err := executeCmd("go", withArgs("run", ".", "--frames", "180", "--width", "12", "--text", "the quick brown fox jumps over the lazy dog"), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the testbed until interrupted, reloading assets/ on change.
func (Run) Watch() error {
	fmt.Println("Run testbed watching assets/...")
	_, err := executeCmd("go", withArgs("run", ".", "--frames", "0", "--watch", "assets", "--config", "assets/demo.text.toml"), withStream())
	return err
}
