package flopsbench

import (
	"fmt"
	"io"
)

// WriteReport writes one line per workload, in order:
//
//	<name>: <median>FLOPS  (Q1: <q1>FLOPS Q3: <q3>FLOPS)
//
// or "<name>: measurement error" when no sample was accepted.
func WriteReport(w io.Writer, workloads []*Workload) error {
	for _, wl := range workloads {
		var err error
		s, serr := wl.Summary()
		if serr != nil {
			_, err = fmt.Fprintf(w, "%s: measurement error\n", wl.Name)
		} else {
			_, err = fmt.Fprintf(w, "%s: %sFLOPS  (Q1: %sFLOPS Q3: %sFLOPS)\n",
				wl.Name, FormatSI(s.Median), FormatSI(s.Q1), FormatSI(s.Q3))
		}
		if err != nil {
			return fmt.Errorf("writing report for %s: %w", wl.Name, err)
		}
	}
	return nil
}
