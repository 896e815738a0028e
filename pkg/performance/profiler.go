package performance

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"time"

	"go.uber.org/zap"

	"github.com/ajitpratap0/stockpile/pkg/errors"
)

// ProfileType represents the type of profiling to perform
type ProfileType string

const (
	CPUProfile    ProfileType = "cpu"
	MemoryProfile ProfileType = "memory"
	MutexProfile  ProfileType = "mutex"
)

// ParseProfileType validates a profile name.
func ParseProfileType(s string) (ProfileType, error) {
	switch t := ProfileType(s); t {
	case CPUProfile, MemoryProfile, MutexProfile:
		return t, nil
	}
	return "", errors.InvalidArgument("profile", fmt.Sprintf("unknown profile type %q", s))
}

// ProfileConfig contains configuration for profiling
type ProfileConfig struct {
	// Profile types to collect
	Types []ProfileType

	// Output directory for profile files
	OutputDir string

	// Mutex profile fraction while profiling (0 = leave unchanged)
	MutexProfileFraction int
}

// DefaultProfileConfig returns a default profiling configuration
func DefaultProfileConfig(dir string) ProfileConfig {
	return ProfileConfig{
		Types:                []ProfileType{CPUProfile, MemoryProfile},
		OutputDir:            dir,
		MutexProfileFraction: 1,
	}
}

// Profiler writes pprof profiles covering the span between Start and Stop.
// A mutex profile shows contention on locked pools shared by many workers.
type Profiler struct {
	config    ProfileConfig
	logger    *zap.Logger
	startTime time.Time
	cpuFile   *os.File
	prevMutex int
	files     []string
}

// NewProfiler creates a new profiler instance
func NewProfiler(config ProfileConfig, logger *zap.Logger) *Profiler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Profiler{config: config, logger: logger}
}

func (p *Profiler) wants(t ProfileType) bool {
	for _, want := range p.config.Types {
		if want == t {
			return true
		}
	}
	return false
}

// Start begins profiling
func (p *Profiler) Start() error {
	p.startTime = time.Now()

	if err := os.MkdirAll(p.config.OutputDir, 0o755); err != nil { //nolint:gosec
		return errors.Wrap(err, errors.ErrorTypeInternal, "failed to create profile directory")
	}

	if p.wants(MutexProfile) && p.config.MutexProfileFraction > 0 {
		p.prevMutex = runtime.SetMutexProfileFraction(p.config.MutexProfileFraction)
	}

	if p.wants(CPUProfile) {
		file, err := os.Create(p.path(CPUProfile))
		if err != nil {
			return errors.Wrap(err, errors.ErrorTypeInternal, "failed to create CPU profile file")
		}
		if err := pprof.StartCPUProfile(file); err != nil {
			_ = file.Close() // Ignore close error
			return errors.Wrap(err, errors.ErrorTypeInternal, "failed to start CPU profiling")
		}
		p.cpuFile = file
	}

	p.logger.Info("profiling started",
		zap.String("output_dir", p.config.OutputDir),
		zap.Any("types", p.config.Types))
	return nil
}

// Stop stops profiling, writes the remaining profiles and returns the
// files written.
func (p *Profiler) Stop() ([]string, error) {
	if p.cpuFile != nil {
		pprof.StopCPUProfile()
		if err := p.cpuFile.Close(); err != nil {
			return p.files, errors.Wrap(err, errors.ErrorTypeInternal, "failed to close CPU profile")
		}
		p.files = append(p.files, p.cpuFile.Name())
		p.cpuFile = nil
	}

	if p.wants(MemoryProfile) {
		runtime.GC() // Force GC before heap profile
		if err := p.writeLookup(MemoryProfile, "heap"); err != nil {
			return p.files, err
		}
	}

	if p.wants(MutexProfile) {
		err := p.writeLookup(MutexProfile, "mutex")
		if p.config.MutexProfileFraction > 0 {
			runtime.SetMutexProfileFraction(p.prevMutex)
		}
		if err != nil {
			return p.files, err
		}
	}

	p.logger.Info("profiling completed",
		zap.Duration("duration", time.Since(p.startTime)),
		zap.Strings("files", p.files))
	return p.files, nil
}

func (p *Profiler) writeLookup(t ProfileType, name string) error {
	file, err := os.Create(p.path(t))
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "failed to create profile file").
			WithDetail("profile", string(t))
	}
	defer file.Close()

	if err := pprof.Lookup(name).WriteTo(file, 0); err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "failed to write profile").
			WithDetail("profile", string(t))
	}
	p.files = append(p.files, file.Name())
	return nil
}

func (p *Profiler) path(t ProfileType) string {
	return filepath.Join(p.config.OutputDir, fmt.Sprintf("%s_%s.prof", t, p.startTime.Format("20060102_150405")))
}
