package main

import (
	"os"
	"runtime/pprof"
	"testing"

	"github.com/pkg/errors"
)

func TestProfiled(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	boom := errors.New("boom")
	if err := profiled(true, func() error { return boom }); err != boom {
		t.Fatalf("err = %v", err)
	}
	// a failing run still stops the profile
	if err := pprof.StartCPUProfile(new(discard)); err != nil {
		t.Fatalf("profile left running: %v", err)
	}
	pprof.StopCPUProfile()

	info, err := os.Stat("default.pgo")
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Errorf("empty profile")
	}

	var ran bool
	if err := profiled(false, func() error { ran = true; return nil }); err != nil || !ran {
		t.Errorf("unprofiled run: %v %v", ran, err)
	}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) {
	return len(p), nil
}
