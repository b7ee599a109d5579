package trace

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// WriteReport prints one row per result and a weighted summary row.
// Numbers are grouped for readability.
//
//	trace                ops    peak     arena  util   grows  moved   Kops/s
//	binary.rep        12,000  96,048   118,800  80.8%     27    311  4,120.3
//	----
//	total (2)         20,000          ...       78.1%                3,900.0
func WriteReport(w io.Writer, results []*Result) error {
	p := message.NewPrinter(language.English)

	if _, err := p.Fprintf(w, "%-20s %10s %12s %12s %7s %7s %7s %10s\n",
		"trace", "ops", "peak", "arena", "util", "grows", "moved", "Kops/s"); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	var ops, weight int
	var utilSum, kopsSum float64
	for _, r := range results {
		util := r.Utilization() * 100
		kops := r.OpsPerSecond() / 1000
		p.Fprintf(w, "%-20s %10d %12d %12d %6.1f%% %7d %7d %10.1f\n",
			truncate(r.Name, 20), r.Ops, r.PeakPayload, r.ArenaBytes,
			util, r.Stats.GrowCalls, r.Stats.ReallocMoved, kops)

		wt := max(r.Weight, 0)
		ops += r.Ops
		weight += wt
		utilSum += util * float64(wt)
		kopsSum += kops * float64(wt)
	}

	if len(results) > 1 {
		p.Fprintf(w, "%s\n", "----")
		var util, kops float64
		if weight > 0 {
			util = utilSum / float64(weight)
			kops = kopsSum / float64(weight)
		}
		label := p.Sprintf("total (%d)", len(results))
		if _, err := p.Fprintf(w, "%-20s %10d %12s %12s %6.1f%% %7s %7s %10.1f\n",
			label, ops, "", "", util, "", "", kops); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "~"
}
