package energy

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"
)

// Logger is the minimal logging interface accepted by the Simulator.
// Compatible with logging.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Recorder mirrors samples to a time-series backend. Implementations
// must not block; the influxdb client batches asynchronously.
type Recorder interface {
	WriteEnergySample(currentKW, solarKW float64)
	WriteEnvironmentSample(temperatureC, humidityPct float64)
}

// Sample is one usage reading.
type Sample struct {
	Timestamp time.Time `json:"timestamp"`
	Usage     float64   `json:"usage"` // kW
}

// Stats summarises the trailing 24 hours of samples.
type Stats struct {
	TotalUsage   float64 `json:"totalUsage"`
	AverageUsage float64 `json:"averageUsage"`
	PeakUsage    float64 `json:"peakUsage"`
	DataPoints   int     `json:"dataPoints"`
}

// Environment is the modelled indoor climate.
type Environment struct {
	TemperatureC float64 `json:"temperature"`
	HumidityPct  float64 `json:"humidity"`
}

// Simulator generates and retains usage samples.
type Simulator struct {
	historyDays int
	interval    time.Duration

	mu      sync.RWMutex
	samples []Sample
	current Sample
	env     Environment

	recorder Recorder
	logger   Logger

	// noise returns a value in [-0.5, 0.5); replaceable in tests.
	noise func() float64
}

// NewSimulator creates a simulator and backfills the history window
// with hourly samples so dashboards have data on first boot.
func NewSimulator(historyDays int, interval time.Duration) *Simulator {
	if historyDays <= 0 {
		historyDays = 30
	}
	if interval <= 0 {
		interval = time.Minute
	}

	s := &Simulator{
		historyDays: historyDays,
		interval:    interval,
		logger:      noopLogger{},
		noise:       func() float64 { return rand.Float64() - 0.5 },
	}
	s.backfill(time.Now())

	return s
}

// SetLogger attaches a logger.
func (s *Simulator) SetLogger(logger Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// SetRecorder attaches the time-series mirror.
func (s *Simulator) SetRecorder(r Recorder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recorder = r
}

// Run generates samples until the context is cancelled.
func (s *Simulator) Run(ctx context.Context) {
	s.logger.Info("energy simulator started",
		"interval", s.interval.String(), "history_days", s.historyDays)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("energy simulator stopped")
			return
		case now := <-ticker.C:
			s.step(now)
		}
	}
}

// Current returns the latest sample.
func (s *Simulator) Current() Sample {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Environment returns the latest modelled climate reading.
func (s *Simulator) Environment() Environment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.env
}

// History returns all samples at or after the given time, oldest first.
func (s *Simulator) History(since time.Time) []Sample {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Samples are appended in time order; find the cut point.
	i := sort.Search(len(s.samples), func(i int) bool {
		return !s.samples[i].Timestamp.Before(since)
	})

	out := make([]Sample, len(s.samples)-i)
	copy(out, s.samples[i:])
	return out
}

// Stats summarises the trailing 24 hours.
func (s *Simulator) Stats() Stats {
	window := s.History(time.Now().Add(-24 * time.Hour))
	if len(window) == 0 {
		return Stats{}
	}

	var total, peak float64
	for _, sample := range window {
		total += sample.Usage
		if sample.Usage > peak {
			peak = sample.Usage
		}
	}

	return Stats{
		TotalUsage:   round2(total),
		AverageUsage: round2(total / float64(len(window))),
		PeakUsage:    round2(peak),
		DataPoints:   len(window),
	}
}

// step produces one sample, prunes the window and mirrors the reading.
func (s *Simulator) step(now time.Time) {
	usage := round2(baseLoadAt(now.Hour()) + s.noise())
	solar := round2(solarAt(now) * (1 + s.noise()*0.2))
	temp := round2(21 + 3*math.Sin(dayFraction(now)*2*math.Pi) + s.noise())
	humidity := round2(50 + 10*s.noise())

	s.mu.Lock()
	sample := Sample{Timestamp: now, Usage: usage}
	s.samples = append(s.samples, sample)
	s.current = sample
	s.env = Environment{TemperatureC: temp, HumidityPct: humidity}
	s.prune(now)
	recorder := s.recorder
	s.mu.Unlock()

	if recorder != nil {
		recorder.WriteEnergySample(usage, solar)
		recorder.WriteEnvironmentSample(temp, humidity)
	}
}

// backfill seeds the window with hourly samples following the daily
// profile.
func (s *Simulator) backfill(now time.Time) {
	start := now.AddDate(0, 0, -s.historyDays).Truncate(time.Hour)
	for t := start; t.Before(now); t = t.Add(time.Hour) {
		s.samples = append(s.samples, Sample{
			Timestamp: t,
			Usage:     round2(baseLoadAt(t.Hour()) + s.noise()),
		})
	}
	if len(s.samples) > 0 {
		s.current = s.samples[len(s.samples)-1]
	}
	s.env = Environment{TemperatureC: 21, HumidityPct: 50}
}

// prune drops samples older than the history window.
func (s *Simulator) prune(now time.Time) {
	cutoff := now.AddDate(0, 0, -s.historyDays)
	i := sort.Search(len(s.samples), func(i int) bool {
		return !s.samples[i].Timestamp.Before(cutoff)
	})
	if i > 0 {
		s.samples = append(s.samples[:0:0], s.samples[i:]...)
	}
}

// baseLoadAt models the household profile: quiet baseline with morning
// and evening peaks.
func baseLoadAt(hour int) float64 {
	switch {
	case hour >= 6 && hour <= 9:
		return 2.5
	case hour >= 17 && hour <= 22:
		return 3.0
	default:
		return 1.5
	}
}

// solarAt models rooftop generation: zero at night, peaking around
// midday at roughly 2 kW.
func solarAt(now time.Time) float64 {
	h := float64(now.Hour()) + float64(now.Minute())/60
	if h < 6 || h > 18 {
		return 0
	}
	return 2.0 * math.Sin((h-6)/12*math.Pi)
}

func dayFraction(now time.Time) float64 {
	return (float64(now.Hour())*3600 + float64(now.Minute())*60 + float64(now.Second())) / 86400
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
