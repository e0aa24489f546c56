package verify

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/nrdiv/datapath"
	"github.com/katalvlaran/nrdiv/divider"
)

var log = logrus.WithField("component", "verify")

// MaxExhaustiveWidth bounds exhaustive sweeps; width n visits about 2^(3n-2) inputs.
const MaxExhaustiveWidth = 8

// sampleChunk is the number of random inputs one worker job draws.
const sampleChunk = 4096

var (
	// ErrInvalidConfig indicates a Config that cannot be swept.
	ErrInvalidConfig = errors.New("verify: invalid config")

	// ErrMismatch indicates a divider result that differs from the reference.
	ErrMismatch = errors.New("verify: result mismatch")
)

// Config selects what Sweep checks.
type Config struct {
	// Width is the divisor width n.
	Width int

	// Samples is the number of random inputs to draw. Zero means every
	// input whose quotient fits Width bits.
	Samples int

	// Seed seeds the random sample. Equal seeds draw equal inputs.
	Seed int64

	// Workers bounds the concurrent jobs. Defaults to GOMAXPROCS.
	Workers int

	// Datapaths to check. Defaults to word-parallel and bit-serial.
	Datapaths []datapath.Datapath

	// Logger receives progress at Info level. Defaults to the package logger.
	Logger logrus.FieldLogger
}

// Mismatch is one input where two results disagree.
type Mismatch struct {
	// Source names what produced Got: a datapath name or a quotient rule.
	Source   string `json:"source" yaml:"source"`
	Dividend int64  `json:"dividend" yaml:"dividend"`
	Divisor  int64  `json:"divisor" yaml:"divisor"`

	WantQuotient  int64 `json:"want_quotient" yaml:"want_quotient"`
	WantRemainder int64 `json:"want_remainder" yaml:"want_remainder"`
	GotQuotient   int64 `json:"got_quotient" yaml:"got_quotient"`
	GotRemainder  int64 `json:"got_remainder" yaml:"got_remainder"`
}

// Error implements error; it wraps ErrMismatch.
func (m Mismatch) Error() string {
	return fmt.Sprintf("%v: %s %d/%d = (%d, %d), want (%d, %d)", ErrMismatch,
		m.Source, m.Dividend, m.Divisor, m.GotQuotient, m.GotRemainder, m.WantQuotient, m.WantRemainder)
}

// Unwrap returns ErrMismatch.
func (m Mismatch) Unwrap() error { return ErrMismatch }

// Report summarises a sweep.
type Report struct {
	Width int `json:"width" yaml:"width"`
	// Checked counts inputs, not divisions: each input runs once per datapath.
	Checked    int        `json:"checked" yaml:"checked"`
	Mismatches []Mismatch `json:"mismatches" yaml:"mismatches"`
}

// Err combines every mismatch into one error, or returns nil.
func (r *Report) Err() error {
	var err error
	for _, m := range r.Mismatches {
		err = multierr.Append(err, m)
	}

	return err
}

// Reference returns the truncating quotient and remainder of dividend/divisor.
func Reference(dividend, divisor int64) (quotient, remainder int64, err error) {
	if divisor == 0 {
		return 0, 0, divider.ErrDivisionByZero
	}

	return dividend / divisor, dividend % divisor, nil
}

// Sweep divides the inputs cfg selects on every configured datapath and
// reports each result that differs from Reference or flags Overflow.
// A cancelled ctx stops the sweep between divisions.
func Sweep(ctx context.Context, cfg Config) (*Report, error) {
	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	check := func(a, b int64, emit func(Mismatch)) error {
		wq, wr, err := Reference(a, b)
		if err != nil {
			return err
		}
		for _, dp := range cfg.Datapaths {
			res, err := divider.Divide(cfg.Width, a, b, divider.WithDatapath(dp))
			if err != nil {
				return err
			}
			if res.Overflow || res.Quotient != wq || res.Remainder != wr {
				emit(Mismatch{
					Source: dp.Name(), Dividend: a, Divisor: b,
					WantQuotient: wq, WantRemainder: wr,
					GotQuotient: res.Quotient, GotRemainder: res.Remainder,
				})
			}
		}

		return nil
	}

	return sweep(ctx, cfg, check)
}

// CompareRules divides every input of width whose quotient fits with both
// quotient rules and reports each input where the carry rule's quotient
// differs from the sign rule's.
func CompareRules(ctx context.Context, width int) (*Report, error) {
	cfg := Config{Width: width}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	check := func(a, b int64, emit func(Mismatch)) error {
		signs, err := divider.Divide(width, a, b, divider.WithQuotientRule(divider.QuotientFromSigns))
		if err != nil {
			return err
		}
		carry, err := divider.Divide(width, a, b, divider.WithQuotientRule(divider.QuotientFromCarry))
		if err != nil {
			return err
		}
		if signs.Quotient != carry.Quotient || signs.Remainder != carry.Remainder {
			emit(Mismatch{
				Source: divider.QuotientFromCarry.String(), Dividend: a, Divisor: b,
				WantQuotient: signs.Quotient, WantRemainder: signs.Remainder,
				GotQuotient: carry.Quotient, GotRemainder: carry.Remainder,
			})
		}

		return nil
	}

	return sweep(ctx, cfg, check)
}

func (cfg *Config) normalize() error {
	if cfg.Width < 1 || cfg.Width > divider.MaxWidth {
		return fmt.Errorf("%w: width %d outside [1, %d]", ErrInvalidConfig, cfg.Width, divider.MaxWidth)
	}
	if cfg.Samples < 0 {
		return fmt.Errorf("%w: negative sample count %d", ErrInvalidConfig, cfg.Samples)
	}
	if cfg.Samples == 0 && cfg.Width > MaxExhaustiveWidth {
		return fmt.Errorf("%w: exhaustive sweep of width %d exceeds %d; set Samples",
			ErrInvalidConfig, cfg.Width, MaxExhaustiveWidth)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if len(cfg.Datapaths) == 0 {
		cfg.Datapaths = []datapath.Datapath{datapath.WordParallel{}, datapath.BitSerial{}}
	}
	if cfg.Logger == nil {
		cfg.Logger = log
	}

	return nil
}

// job visits a slice of the input space, calling visit for every input.
type job func(ctx context.Context, visit func(a, b int64) error) error

func sweep(ctx context.Context, cfg Config, check func(a, b int64, emit func(Mismatch)) error) (*Report, error) {
	var (
		mu      sync.Mutex
		checked atomic.Int64
		report  = &Report{Width: cfg.Width}
	)
	emit := func(m Mismatch) {
		mu.Lock()
		report.Mismatches = append(report.Mismatches, m)
		mu.Unlock()
	}

	jobs := exhaustiveJobs(cfg.Width)
	if cfg.Samples > 0 {
		jobs = sampleJobs(cfg.Width, cfg.Samples, cfg.Seed)
	}
	cfg.Logger.WithFields(logrus.Fields{
		"width":   cfg.Width,
		"samples": cfg.Samples,
		"jobs":    len(jobs),
		"workers": cfg.Workers,
	}).Info("sweep started")

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.Workers)
	for _, j := range jobs {
		if gctx.Err() != nil {
			break
		}
		j := j
		eg.Go(func() error {
			return j(gctx, func(a, b int64) error {
				checked.Add(1)
				return check(a, b, emit)
			})
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report.Checked = int(checked.Load())
	sort.Slice(report.Mismatches, func(i, j int) bool {
		a, b := report.Mismatches[i], report.Mismatches[j]
		if a.Divisor != b.Divisor {
			return a.Divisor < b.Divisor
		}
		if a.Dividend != b.Dividend {
			return a.Dividend < b.Dividend
		}
		return a.Source < b.Source
	})

	cfg.Logger.WithFields(logrus.Fields{
		"width":      cfg.Width,
		"checked":    report.Checked,
		"mismatches": len(report.Mismatches),
	}).Info("sweep finished")

	return report, nil
}

// dividendRange returns the dividends whose truncated quotient by b fits
// width signed bits, clamped to the 2·width-bit dividend register.
func dividendRange(width int, b int64) (lo, hi int64) {
	qmin, qmax := -(int64(1) << uint(width-1)), int64(1)<<uint(width-1)-1
	m := b
	if m < 0 {
		m = -m
		// a/b = -(a/m), so the bounds on a/m are -qmax and -qmin
		qmin, qmax = -qmax, -qmin
	}
	lo, hi = qmin*m-(m-1), qmax*m+(m-1)

	dlo, dhi := -(int64(1) << uint(2*width-1)), int64(1)<<uint(2*width-1)-1
	if lo < dlo {
		lo = dlo
	}
	if hi > dhi {
		hi = dhi
	}

	return lo, hi
}

func fits(v int64, bits int) bool {
	lim := int64(1) << uint(bits-1)

	return v >= -lim && v < lim
}

// exhaustiveJobs returns one job per non-zero divisor.
func exhaustiveJobs(width int) []job {
	half := int64(1) << uint(width-1)
	jobs := make([]job, 0, 2*half-1)
	for b := -half; b < half; b++ {
		if b == 0 {
			continue
		}
		b := b
		jobs = append(jobs, func(ctx context.Context, visit func(a, b int64) error) error {
			lo, hi := dividendRange(width, b)
			for a := lo; a <= hi; a++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if !fits(a/b, width) {
					continue
				}
				if err := visit(a, b); err != nil {
					return err
				}
			}

			return nil
		})
	}

	return jobs
}

// sampleJobs splits samples into chunks. Chunk i draws from its own source
// seeded with seed+i, so the inputs do not depend on scheduling.
func sampleJobs(width, samples int, seed int64) []job {
	var jobs []job
	for i := 0; samples > 0; i++ {
		count := min(samples, sampleChunk)
		samples -= count
		src := seed + int64(i)
		jobs = append(jobs, func(ctx context.Context, visit func(a, b int64) error) error {
			rng := rand.New(rand.NewSource(src))
			for k := 0; k < count; k++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				a, b := drawInput(rng, width)
				if err := visit(a, b); err != nil {
					return err
				}
			}

			return nil
		})
	}

	return jobs
}

// drawInput returns a random input whose quotient fits width bits:
// a random divisor and quotient, plus a remainder smaller than the divisor
// when the sum still fits.
func drawInput(rng *rand.Rand, width int) (a, b int64) {
	half := int64(1) << uint(width-1)
	for b == 0 {
		b = rng.Int63n(2*half) - half
	}
	q := rng.Int63n(2*half) - half
	m := b
	if m < 0 {
		m = -m
	}
	r := rng.Int63n(2*m-1) - (m - 1)

	a = q*b + r
	if !fits(a, 2*width) || !fits(a/b, width) {
		a = q * b
	}

	return a, b
}
