// Command analyze-halfband prints the frequency response of a halfband
// oversampling kernel: passband ripple, stopband attenuation, and an
// optional bin-by-bin magnitude table.
//
// Usage:
//
//	analyze-halfband
//	analyze-halfband -taps 127 -beta 12
//	analyze-halfband -table
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/jsquie/jdsp/internal/analysis"
	"github.com/jsquie/jdsp/internal/mathutil"
	"github.com/jsquie/jdsp/window"
)

const (
	// FFT resolution for the response evaluation
	defaultFFTSize = 8192

	// Band edges in normalized frequency (1.0 = the doubled sample rate).
	// A halfband filter cuts at 0.25 with a symmetric transition band.
	passbandEdge  = 0.2
	stopbandStart = 0.3

	// Rows printed by the -table option
	tableRows = 32
)

func main() {
	taps := flag.Int("taps", window.DefaultHalfbandTaps, "Kernel length (odd)")
	beta := flag.Float64("beta", window.DefaultKaiserBeta, "Kaiser window β")
	fftSize := flag.Int("fft", defaultFFTSize, "FFT size for response evaluation")
	table := flag.Bool("table", false, "Print a bin-by-bin magnitude table")
	flag.Parse()

	kernel, err := window.HalfbandTaps(*taps, *beta)
	if err != nil {
		log.Fatal(err)
	}

	resp := analysis.FilterResponseDB(kernel, *fftSize)
	bins := len(resp)

	// Passband: worst deviation from 0 dB below the passband edge
	ripple := 0.0
	passEnd := int(passbandEdge * 2 * float64(bins-1))
	for i := range passEnd + 1 {
		dev := resp[i]
		if dev < 0 {
			dev = -dev
		}
		if dev > ripple {
			ripple = dev
		}
	}

	// Stopband: loudest bin above the stopband start
	stopStart := int(stopbandStart * 2 * float64(bins-1))
	worst := -1000.0
	for i := stopStart; i < bins; i++ {
		if resp[i] > worst {
			worst = resp[i]
		}
	}

	fmt.Printf("Halfband kernel: %d taps, Kaiser β = %.2f\n", *taps, *beta)
	fmt.Printf("  Center tap:            %.9f\n", kernel[*taps/2])
	fmt.Printf("  Passband ripple:       %.4f dB (0 .. %.2f)\n", ripple, passbandEdge)
	fmt.Printf("  Stopband attenuation:  %.1f dB (%.2f .. 0.5)\n", -worst, stopbandStart)
	fmt.Printf("  Kaiser estimate for β: %.1f dB\n", mathutil.KaiserAttenuation(*beta))
	fmt.Printf("  Taps needed for that:  %d (Kaiser length formula)\n",
		mathutil.EstimateFilterLength(mathutil.KaiserAttenuation(*beta), stopbandStart-passbandEdge))

	if *table {
		fmt.Println()
		step := bins / tableRows
		if step == 0 {
			step = 1
		}
		for i := 0; i < bins; i += step {
			freq := 0.5 * float64(i) / float64(bins-1)
			fmt.Printf("  %.4f  %8.2f dB\n", freq, resp[i])
		}
	}
}
