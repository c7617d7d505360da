// Command shape-wav runs a WAV file through the oversampled waveshaping chain.
//
// Usage:
//
//	shape-wav -factor 4 -style tanh -order 2 input.wav output.wav
//	shape-wav -style softclip -drive 2.0 input.wav output.wav
//	shape-wav -lowpass 8000 -dc input.wav output.wav
//
// Each channel runs through its own independent processing chain.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/jsquie/jdsp"
)

const (
	// CLI defaults
	defaultFactor = 4
	defaultDrive  = 1.0

	minRequiredArgs = 2

	// Sample format constants
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	// Full-scale values for PCM normalization
	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	// PCM audio format tag for the WAV encoder
	wavFormatPCM = 1
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	factor := flag.Int("factor", defaultFactor, "Oversampling factor: 2, 4, 8 or 16")
	style := flag.String("style", "hardclip", "Shaper style: hardclip, tanh, softclip")
	order := flag.Int("order", 1, "Antialiasing order: 1 or 2")
	drive := flag.Float64("drive", defaultDrive, "Input gain applied before shaping")
	lowpass := flag.Float64("lowpass", 0, "Pre-filter lowpass cutoff in Hz (0 = off)")
	dcBlock := flag.Bool("dc", false, "Block DC after the shaper")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		return fmt.Errorf("insufficient arguments")
	}
	inputPath := args[0]
	outputPath := args[1]

	shaperStyle, err := parseStyle(*style)
	if err != nil {
		return err
	}
	shaperOrder, err := parseOrder(*order)
	if err != nil {
		return err
	}

	cfg := jdsp.Config{
		Factor:  *factor,
		Shaper:  jdsp.ShaperConfig{Style: shaperStyle, Order: shaperOrder},
		BlockDC: *dcBlock,
	}

	if *verbose {
		log.Printf("Input: %s", inputPath)
		log.Printf("Output: %s", outputPath)
		log.Printf("Factor: %d×, style: %s, %s", cfg.Factor, shaperStyle, shaperOrder)
		log.Printf("Drive: %.2f", *drive)
	}

	start := time.Now()
	stats, err := shapeWAV(inputPath, outputPath, cfg, *drive, *lowpass)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("Shaped %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	fmt.Printf("  %d Hz, %d channels, %d-bit, %d samples/channel\n",
		stats.rate, stats.channels, stats.bitDepth, stats.samples)
	fmt.Printf("  %d× oversampling, chain latency %d samples\n", cfg.Factor, stats.latency)
	fmt.Printf("  Duration: %.2fs\n", elapsed.Seconds())

	return nil
}

type shapeStats struct {
	rate     int
	channels int
	bitDepth int
	samples  int
	latency  int
}

func parseStyle(s string) (jdsp.Style, error) {
	switch strings.ToLower(s) {
	case "hardclip", "hard":
		return jdsp.StyleHardClip, nil
	case "tanh":
		return jdsp.StyleTanh, nil
	case "softclip", "soft":
		return jdsp.StyleSoftClipX2, nil
	}
	return 0, fmt.Errorf("unknown style %q (want hardclip, tanh or softclip)", s)
}

func parseOrder(n int) (jdsp.Order, error) {
	switch n {
	case 1:
		return jdsp.OrderFirst, nil
	case 2:
		return jdsp.OrderSecond, nil
	}
	return 0, fmt.Errorf("unknown order %d (want 1 or 2)", n)
}

func shapeWAV(inputPath, outputPath string, cfg jdsp.Config, drive, lowpass float64) (*shapeStats, error) {
	inFile, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer func() { _ = inFile.Close() }()

	decoder := wav.NewDecoder(inFile)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("%s is not a valid WAV file", inputPath)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}

	rate := int(decoder.SampleRate)
	channels := int(decoder.NumChans)
	bitDepth := int(decoder.BitDepth)
	maxVal := fullScale(bitDepth)

	// Deinterleave and normalize to [-1, 1]
	frames := len(buf.Data) / channels
	chans := make([][]float64, channels)
	for ch := range chans {
		chans[ch] = make([]float64, frames)
	}
	for i := range frames {
		for ch := range channels {
			chans[ch][i] = float64(buf.Data[i*channels+ch]) / maxVal
		}
	}

	procs, err := jdsp.NewMultiChannel[float64](cfg, channels)
	if err != nil {
		return nil, err
	}

	for ch := range channels {
		data := chans[ch]

		if lowpass > 0 {
			filter, err := jdsp.NewBiquadFilter[float64](jdsp.Lowpass, jdsp.FilterOrderSecond, float64(rate), lowpass)
			if err != nil {
				return nil, err
			}
			filter.ProcessBlock(data)
		}

		if drive != 1.0 {
			for i := range data {
				data[i] *= drive
			}
		}

		procs[ch].ProcessBlock(data)
	}

	// Interleave, clamp and denormalize
	out := make([]int, frames*channels)
	for i := range frames {
		for ch := range channels {
			s := chans[ch][i]
			if s > 1 {
				s = 1
			} else if s < -1 {
				s = -1
			}
			out[i*channels+ch] = int(s * maxVal)
		}
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create output: %w", err)
	}
	defer func() { _ = outFile.Close() }()

	encoder := wav.NewEncoder(outFile, rate, bitDepth, channels, wavFormatPCM)
	err = encoder.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: rate},
		SourceBitDepth: bitDepth,
		Data:           out,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to write audio data: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize output: %w", err)
	}

	return &shapeStats{
		rate:     rate,
		channels: channels,
		bitDepth: bitDepth,
		samples:  frames,
		latency:  procs[0].Latency(),
	}, nil
}

func fullScale(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}
