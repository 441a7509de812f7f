package flopsbench

import (
	"fmt"
	"runtime"
)

// ProcessorInfo describes the host processor. Only the architecture and the
// logical CPU count are reported; instruction set features are not probed.
func ProcessorInfo() string {
	return fmt.Sprintf("%s, %d logical CPUs", runtime.GOARCH, runtime.NumCPU())
}
