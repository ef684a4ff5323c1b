// Command slabinfo prints radiative properties of synthetic gas slabs and
// their line-of-sight compositions.
//
// Usage:
//
//	slabinfo [flags] [path-length ...]
//
// Each argument is a slab path length in cm. Without arguments a default
// line of sight of three slabs (10, 20 and 30 cm) is used.
//
// Examples:
//
//	slabinfo 5 15
//	slabinfo -wmin 1900 -wmax 2400 -n 2001 10 20 30
//	slabinfo -source 0.5 -parallel 10 10
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-spectra/spectra/compare"
	"github.com/cwbudde/algo-spectra/spectra/los"
	"github.com/cwbudde/algo-spectra/spectra/spectrum"
	"github.com/cwbudde/algo-spectra/spectra/unit"
)

func main() {
	wmin := flag.Float64("wmin", 2000, "lower axis bound [cm-1]")
	wmax := flag.Float64("wmax", 2300, "upper axis bound [cm-1]")
	n := flag.Int("n", 1001, "number of axis samples")
	source := flag.Float64("source", 1, "source radiance scale per slab")
	parallel := flag.Bool("parallel", false, "merge the slabs in parallel instead of composing them serially")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: slabinfo [flags] [path-length ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints radiative properties of synthetic gas slabs and their\n")
		fmt.Fprintf(os.Stderr, "line-of-sight composition. Path lengths are in cm.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  slabinfo 5 15\n")
		fmt.Fprintf(os.Stderr, "  slabinfo -wmin 1900 -wmax 2400 -n 2001 10 20 30\n")
		fmt.Fprintf(os.Stderr, "  slabinfo -parallel 10 10\n")
	}
	flag.Parse()

	if *wmax <= *wmin || *n < 2 {
		fmt.Fprintf(os.Stderr, "error: need wmin < wmax and n >= 2\n")
		os.Exit(1)
	}

	paths, err := parsePaths(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	axis := linearAxis(*wmin, *wmax, *n)
	slabs := make([]*spectrum.Spectrum, len(paths))
	for i, l := range paths {
		s, err := makeSlab(axis, l, *source)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: building slab: %v\n", err)
			os.Exit(1)
		}
		slabs[i] = s
	}

	var composed *spectrum.Spectrum
	label := "serial"
	if *parallel {
		label = "parallel"
		composed, err = los.MergeSlabs(slabs)
	} else {
		composed, err = los.SerialSlabs(slabs)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: composing slabs: %v\n", err)
		os.Exit(1)
	}

	printAnalysis(append(slabs, composed), label)
}

func linearAxis(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

// makeSlab builds a synthetic slab with two Gaussian absorption lines,
// internally consistent so that serial and parallel compositions hold:
// absorbance = abscoeff * pathLength, transmittance = exp(-absorbance),
// radiance = source * (1 - transmittance).
func makeSlab(axis []float64, pathLength, source float64) (*spectrum.Spectrum, error) {
	span := axis[len(axis)-1] - axis[0]
	centers := []float64{axis[0] + 0.3*span, axis[0] + 0.7*span}
	strengths := []float64{0.08, 0.05}
	width := 0.05 * span

	n := len(axis)
	k := make([]float64, n)
	absorbance := make([]float64, n)
	transmittance := make([]float64, n)
	radiance := make([]float64, n)
	for i, w := range axis {
		for j, c := range centers {
			d := (w - c) / width
			k[i] += strengths[j] * math.Exp(-0.5*d*d)
		}
		absorbance[i] = k[i] * pathLength
		transmittance[i] = math.Exp(-absorbance[i])
		radiance[i] = source * (1 - transmittance[i])
	}

	return spectrum.New(axis, "cm-1",
		spectrum.WithQuantity(spectrum.AbsCoeff, k, "cm-1"),
		spectrum.WithQuantity(spectrum.Absorbance, absorbance, ""),
		spectrum.WithQuantity(spectrum.TransmittanceNoSlit, transmittance, ""),
		spectrum.WithQuantity(spectrum.RadianceNoSlit, radiance, "mW/cm2/sr/nm"),
		spectrum.WithCondition("path_length", pathLength),
		spectrum.WithName(fmt.Sprintf("slab_L%g", pathLength)),
	)
}

func parsePaths(args []string) ([]float64, error) {
	if len(args) == 0 {
		return []float64{10, 20, 30}, nil
	}
	out := make([]float64, len(args))
	for i, a := range args {
		l, err := strconv.ParseFloat(a, 64)
		if err != nil || l <= 0 {
			return nil, fmt.Errorf("invalid path length %q", a)
		}
		out[i] = l
	}
	return out, nil
}

func printAnalysis(spectra []*spectrum.Spectrum, label string) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Slab\tPath [cm]\tPeak radiance\tMean transmittance\tIntegrated radiance\n")
	fmt.Fprintf(tw, "----\t---------\t-------------\t------------------\t-------------------\n")

	for i, s := range spectra {
		name := s.Name()
		if i == len(spectra)-1 {
			name = label + ": " + name
		}

		radiance, err := s.Get(spectrum.RadianceNoSlit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", name, err)
			continue
		}
		transmittance, _ := s.Get(spectrum.TransmittanceNoSlit)

		pathCol := "-"
		if pl, ok := s.Condition("path_length"); ok {
			pathCol = fmt.Sprintf("%g", pl)
		}
		meanCol := "-"
		if len(transmittance) > 0 {
			meanCol = fmt.Sprintf("%.6f", vecmath.Sum(transmittance)/float64(len(transmittance)))
		}

		u, _ := s.Unit(spectrum.RadianceNoSlit)
		if canon, err := unit.Simplify(u); err == nil {
			u = canon
		}
		fmt.Fprintf(tw, "%s\t%s\t%.6f\t%s\t%.4f %s·cm-1\n",
			name,
			pathCol,
			vecmath.MaxAbs(radiance),
			meanCol,
			compare.Trapz(s.Axis(), radiance),
			u,
		)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}
