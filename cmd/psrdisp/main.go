// Command psrdisp runs the interstellar-medium propagation chain over a
// synthetic filterbank signal and prints the per-channel delays.
//
// Usage:
//
//	psrdisp [flags]
//	psrdisp -scenario observation.yaml
//
// Without a scenario file the signal is described by flags alone.
//
// Examples:
//
//	psrdisp -dm 10 -lo 1200 -hi 1500 -nchan 4
//	psrdisp -dm 26.8 -nchan 64 -samples 8192 -workers 8 -v
//	psrdisp -scenario j1744.yaml
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/yaml.v3"

	"github.com/pulsarkit/pulsim/ism"
	"github.com/pulsarkit/pulsim/phys"
	"github.com/pulsarkit/pulsim/signal"
	"github.com/pulsarkit/pulsim/units"
)

// scenario describes one propagation run. All fields are optional; zero
// values fall back to the flag defaults.
type scenario struct {
	DM           float64   `yaml:"dm"`              // pc cm^-3
	ChannelsMHz  []float64 `yaml:"channels_mhz"`    // explicit channel centers
	LoMHz        float64   `yaml:"lo_mhz"`          // band edges, used when channels_mhz is empty
	HiMHz        float64   `yaml:"hi_mhz"`
	NumChannels  int       `yaml:"nchan"`
	NumSamples   int       `yaml:"samples"`
	SampleRateHz float64   `yaml:"sample_rate_hz"`
	Workers      int       `yaml:"workers"`
	FDSeconds    []float64 `yaml:"fd_seconds"`
	Scatter      *struct {
		TauSeconds float64 `yaml:"tau_seconds"`
		RefMHz     float64 `yaml:"ref_mhz"`
		Beta       float64 `yaml:"beta"`
	} `yaml:"scatter"`
}

func main() {
	var (
		scenarioPath = flag.String("scenario", "", "YAML scenario file")
		dm           = flag.Float64("dm", 10, "dispersion measure in pc cm^-3")
		lo           = flag.Float64("lo", 1200, "lowest channel center in MHz")
		hi           = flag.Float64("hi", 1500, "highest channel center in MHz")
		nchan        = flag.Int("nchan", 4, "number of channels")
		samples      = flag.Int("samples", 2048, "samples per channel")
		rate         = flag.Float64("rate", 1000, "sample rate in Hz")
		workers      = flag.Int("workers", 1, "per-channel worker goroutines")
		verbose      = flag.Bool("v", false, "log per-channel progress")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
	}))

	sc := scenario{
		DM:           *dm,
		LoMHz:        *lo,
		HiMHz:        *hi,
		NumChannels:  *nchan,
		NumSamples:   *samples,
		SampleRateHz: *rate,
		Workers:      *workers,
	}
	if *scenarioPath != "" {
		if err := loadScenario(*scenarioPath, &sc); err != nil {
			log.Error("failed to load scenario", "path", *scenarioPath, "err", err)
			os.Exit(1)
		}
	}

	if err := run(log, sc); err != nil {
		log.Error("propagation failed", "err", err)
		os.Exit(1)
	}
}

func loadScenario(path string, sc *scenario) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(raw, sc)
}

func run(log *slog.Logger, sc scenario) error {
	freqs := channelFreqs(sc)
	sig, err := signal.NewFilterBank(signal.FilterBankConfig{
		Freqs:      freqs,
		SampleRate: units.Hz(sc.SampleRateHz),
		NumSamples: sc.NumSamples,
	})
	if err != nil {
		return err
	}
	fillPulses(sig.Data())

	eng := ism.New(
		ism.WithWorkers(sc.Workers),
		ism.WithProgress(func(stage string, done, total int) {
			log.Debug(stage, "done", done, "total", total)
		}),
	)

	dm := units.PcPerCm3(sc.DM)
	start := time.Now()
	if err := eng.Disperse(sig, dm); err != nil {
		return err
	}
	log.Info("dispersed", "dm", sc.DM, "nchan", len(freqs), "elapsed", time.Since(start))

	if len(sc.FDSeconds) > 0 {
		fd := make([]units.Time, len(sc.FDSeconds))
		for i, v := range sc.FDSeconds {
			fd[i] = units.Seconds(v)
		}
		if err := eng.FDShift(sig, fd); err != nil {
			return err
		}
		log.Info("fd shifted", "order", len(fd))
	}

	var scatterDelays []units.Time
	if sc.Scatter != nil {
		beta := sc.Scatter.Beta
		if beta == 0 {
			beta = phys.KolmogorovBeta
		}
		tau := units.Seconds(sc.Scatter.TauSeconds)
		ref := units.MHz(sc.Scatter.RefMHz)
		if err := eng.ScatterBroaden(sig, tau, ref, ism.WithBeta(beta)); err != nil {
			return err
		}
		scatterDelays, err = ism.ScatterDelays(tau, ref, freqs, beta)
		if err != nil {
			return err
		}
		log.Info("scatter broadened", "tau_us", tau.Microseconds(), "ref_mhz", ref.MHz(), "beta", beta)
	}

	printDelayTable(sig, dm, scatterDelays)
	return nil
}

func channelFreqs(sc scenario) []units.Frequency {
	if len(sc.ChannelsMHz) > 0 {
		freqs := make([]units.Frequency, len(sc.ChannelsMHz))
		for i, f := range sc.ChannelsMHz {
			freqs[i] = units.MHz(f)
		}
		return freqs
	}
	n := sc.NumChannels
	if n < 1 {
		n = 1
	}
	freqs := make([]units.Frequency, n)
	for i := range freqs {
		frac := 0.0
		if n > 1 {
			frac = float64(i) / float64(n-1)
		}
		freqs[i] = units.MHz(sc.LoMHz + frac*(sc.HiMHz-sc.LoMHz))
	}
	return freqs
}

// fillPulses writes one Gaussian pulse into every channel row.
func fillPulses(data [][]float64) {
	const width = 4.0
	for _, row := range data {
		pos := len(row) / 8
		for i := range row {
			d := float64(i - pos)
			row[i] = math.Exp(-d * d / (2 * width * width))
		}
	}
}

func printDelayTable(sig *signal.FilterBank, dm units.DispersionMeasure, scatter []units.Time) {
	delays := ism.DispersionDelays(dm, sig.Freqs())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if len(scatter) == len(delays) {
		fmt.Fprintln(w, "channel\tfreq (MHz)\tdispersion (ms)\tscatter (ms)")
		for i, f := range sig.Freqs() {
			fmt.Fprintf(w, "%d\t%.1f\t%.4f\t%.4f\n", i, f.MHz(), delays[i].Milliseconds(), scatter[i].Milliseconds())
		}
	} else {
		fmt.Fprintln(w, "channel\tfreq (MHz)\tdispersion (ms)")
		for i, f := range sig.Freqs() {
			fmt.Fprintf(w, "%d\t%.1f\t%.4f\n", i, f.MHz(), delays[i].Milliseconds())
		}
	}
	w.Flush()
}
