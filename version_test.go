package flopsbench

import (
	"runtime/debug"
	"testing"
)

func TestVersionReadsMainModule(t *testing.T) {
	version, sum := Version()

	b, ok := debug.ReadBuildInfo()
	if !ok || b.Main.Path != root {
		if version != "" || sum != "" {
			t.Errorf("got %q %q outside the flopsbench module", version, sum)
		}
		return
	}
	if version != b.Main.Version || sum != b.Main.Sum {
		t.Errorf("Version() = %q, %q; build info has %q, %q", version, sum, b.Main.Version, b.Main.Sum)
	}
}
