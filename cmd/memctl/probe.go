package main

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/memory/align"
	"github.com/joshuapare/memkit/memory/alloc"
)

var (
	probeSizes  []uint
	probeAligns []uint
)

func init() {
	rootCmd.AddCommand(newProbeCmd())
}

func newProbeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Allocate each size/alignment pair and report the result",
		Long: `The probe command allocates one block for every combination of --sizes and
--aligns, reports the returned address and whether it honours the effective
alignment, then frees it.

Example:
  memctl probe
  memctl probe --sizes 1,64,4096 --aligns 0,32,4096 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProbe()
		},
	}
	cmd.Flags().UintSliceVar(&probeSizes, "sizes", []uint{0, 1, 8, 15, 16, 100, 4096}, "Block sizes in bytes")
	cmd.Flags().UintSliceVar(&probeAligns, "aligns", []uint{0, 8, 16, 64, 4096}, "Requested alignments (0 = natural)")
	return cmd
}

// probeResult is one row of probe output.
type probeResult struct {
	Size      uintptr `json:"size"`
	Requested uintptr `json:"requested_alignment"`
	Effective uintptr `json:"effective_alignment"`
	Address   string  `json:"address,omitempty"`
	Aligned   bool    `json:"aligned"`
	Error     string  `json:"error,omitempty"`
}

type probeReport struct {
	Strategy string        `json:"strategy"`
	System   string        `json:"system,omitempty"`
	OffHeap  bool          `json:"off_heap"`
	Results  []probeResult `json:"results"`
}

func probe(b backend, sizes, aligns []uint) (probeReport, error) {
	a := b.allocator
	report := probeReport{Strategy: a.Strategy().String(), System: b.system, OffHeap: b.offHeap}
	var failed error
	for _, sz := range sizes {
		for _, al := range aligns {
			size, req := uintptr(sz), uintptr(al)
			res := probeResult{Size: size, Requested: req}

			p, err := a.Malloc(size, req)
			switch {
			case errors.Is(err, alloc.ErrInvalidAlignment):
				res.Error = err.Error()
			case err != nil:
				res.Error = err.Error()
				failed = errors.Join(failed, err)
			default:
				res.Effective = alloc.EffectiveAlignment(size, req)
				res.Aligned = p == nil || align.Pointer(p, res.Effective)
				if p != nil {
					res.Address = fmt.Sprintf("%#x", uintptr(p))
				}
				if !res.Aligned {
					failed = errors.Join(failed, fmt.Errorf("size %d align %d: %s is not %d-aligned", size, req, res.Address, res.Effective))
				}
				a.Free(p)
			}
			report.Results = append(report.Results, res)
		}
	}
	return report, failed
}

func runProbe() error {
	b, err := newBackend(cfg, logger)
	if err != nil {
		return err
	}
	report, probeErr := probe(b, probeSizes, probeAligns)

	if jsonOut {
		if err := printJSON(report); err != nil {
			return err
		}
		return probeErr
	}

	printInfo("\nStrategy: %s\n", report.Strategy)
	if report.System != "" {
		printInfo("System:   %s\n", report.System)
	}
	printInfo("Off-heap: %t\n\n", report.OffHeap)
	printInfo("  %-10s %-9s %-9s %-20s %s\n", "SIZE", "ALIGN", "EFFECTIVE", "ADDRESS", "STATUS")
	for _, r := range report.Results {
		status := "ok"
		switch {
		case r.Error != "":
			status = r.Error
		case !r.Aligned:
			status = "MISALIGNED"
		case r.Address == "":
			status = "ok (nil)"
		}
		printInfo("  %-10s %-9d %-9d %-20s %s\n", humanize.IBytes(uint64(r.Size)), r.Requested, r.Effective, r.Address, status)
	}
	return probeErr
}
