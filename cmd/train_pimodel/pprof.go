package main

import "runtime/pprof"
import "os"

import "github.com/pkg/errors"

// profiled runs fn, collecting a cpu profile into default.pgo when enabled.
// The profile is complete once profiled returns.
func profiled(enabled bool, fn func() error) error {
	if !enabled {
		return fn()
	}
	f, err := os.Create("default.pgo")
	if err != nil {
		return errors.Wrap(err, "cannot create profile")
	}
	defer f.Close()
	if err := pprof.StartCPUProfile(f); err != nil {
		return errors.Wrap(err, "cannot start profile")
	}
	defer pprof.StopCPUProfile()
	return fn()
}
