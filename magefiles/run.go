//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the sample authoring round trip.
func (Run) Demo() error {
	fmt.Println("Run demo...")
	if _, err := executeCmd("go", withArgs("run", ".", "demo"), withStream()); err != nil {
		return err
	}
	return nil
}

// Starts the scene watcher against the configured scenes directory.
func (Run) Watch() error {
	fmt.Println("Run watcher...")
	if _, err := executeCmd("go", withArgs("run", ".", "watch"), withStream()); err != nil {
		return err
	}
	return nil
}
