package plan

import (
	"bufio"
	"fmt"
	"io"

	"github.com/claude/musclemap/internal/soreness"
)

const rule = "-----------------------------------------------------------------"

// WriteReport renders the status probe and the plan as plain text to w.
func WriteReport(w io.Writer, status Status, candidates []soreness.MuscleGroup, threshold soreness.Level) error {
	probes, err := ProbeGroups(status, candidates)
	if err != nil {
		return err
	}
	p, err := Build(status, threshold)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "--- Setting Status (Using 'add' kernel method) ---")
	fmt.Fprintf(bw, "Map size: %d\n", status.Size())
	writeProbes(bw, probes)
	fmt.Fprintln(bw, rule)
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "--- Today's Adaptive Workout Plan (Via 'iterator' secondary method) ---")
	writePlan(bw, p)
	return bw.Flush()
}

// WritePlan renders only the plan section and the overall line.
func WritePlan(w io.Writer, p *Plan) error {
	bw := bufio.NewWriter(w)
	writePlan(bw, p)
	return bw.Flush()
}

func writeProbes(w io.Writer, probes []Probe) {
	for _, pr := range probes {
		if pr.Present {
			fmt.Fprintf(w, "- %-10s is PRESENT. Status: %s\n", pr.Group, pr.Level)
		} else {
			fmt.Fprintf(w, "- %-10s is ABSENT.\n", pr.Group)
		}
	}
}

func writePlan(w io.Writer, p *Plan) {
	for _, e := range p.Entries {
		fmt.Fprintf(w, "- %-10s: %s [%s]: %s\n", e.Group, e.Level, e.Verdict, e.Recommendation)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Overall Recommendation: %s\n", p.Overall())
}
