// Package logx is the demo CLI's logging facility: a thread-safe,
// level-filtered writer with an optional periodic-reporter facility for
// long-running progress messages (tree size, query throughput). It is
// adapted from the teacher's logger package (logger/logger.go,
// logger/periodic.go), reconciling those two files' conflicting
// periodicLogger declarations into the single backoff-scheduled design
// kept here (see DESIGN.md). The rtree package itself never imports this:
// the core algorithms do no I/O (spec.md §5).
package logx

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/cenkalti/backoff"
)

// Importance levels, in the teacher's ordering: lower is more severe
// (Fatal is 1), and a Logger only emits messages numerically at or below
// its Threshold. Debug is numerically highest and thus the "log
// everything" level when Threshold is set to it.
const (
	Debug   int = 9
	Info    int = 7
	Warning int = 5
	Error   int = 3
	Fatal   int = 1
)

// fatalExitCode is the process exit status used after a Fatal message.
const fatalExitCode int = 3

// Logger is a minimal thread-safe, level-filtered sink plus a periodic
// reporter runner. It must not be copied after first use, since it embeds
// a mutex and an internal timer goroutine.
type Logger struct {
	writeTo   io.WriteCloser
	writeLock sync.Mutex
	Threshold int

	p periodic
}

// New creates a Logger writing to writeTo, emitting only messages at or
// below level. The periodic-reporter goroutine is always started; with no
// reporters registered it sits idle on its timer.
func New(writeTo io.WriteCloser, level int) *Logger {
	l := &Logger{
		writeTo:   writeTo,
		Threshold: level,
		p:         newPeriodic(),
	}
	go periodicRunner(l)
	return l
}

// Close stops the periodic runner and the underlying writer.
func (l *Logger) Close() {
	l.p.Close()
	l.writeLock.Lock()
	defer l.writeLock.Unlock()
	if l.writeTo != nil {
		_ = l.writeTo.Close()
		l.writeTo = nil
	}
}

func (l *Logger) prefixMessage(level int) {
	if l.Threshold < Debug {
		fmt.Fprint(l.writeTo, time.Now().Format("2006-01-02 15:04:05: "))
	}
	switch level {
	case Warning:
		fmt.Fprint(l.writeTo, "WARNING: ")
	case Error:
		fmt.Fprint(l.writeTo, "ERROR: ")
	case Fatal:
		fmt.Fprint(l.writeTo, "FATAL: ")
	}
}

// Log writes the message if it passes the Logger's Threshold.
func (l *Logger) Log(level int, format string, args ...interface{}) {
	if level > l.Threshold {
		return
	}
	l.writeLock.Lock()
	defer l.writeLock.Unlock()
	l.prefixMessage(level)
	if len(args) == 0 {
		fmt.Fprint(l.writeTo, format)
	} else {
		fmt.Fprintf(l.writeTo, format, args...)
	}
	fmt.Fprintln(l.writeTo)
	if level == Fatal {
		os.Exit(fatalExitCode)
	}
}

func (l *Logger) Debug(format string, args ...interface{})   { l.Log(Debug, format, args...) }
func (l *Logger) Info(format string, args ...interface{})    { l.Log(Info, format, args...) }
func (l *Logger) Warning(format string, args ...interface{}) { l.Log(Warning, format, args...) }
func (l *Logger) Error(format string, args ...interface{})   { l.Log(Error, format, args...) }
func (l *Logger) Fatal(format string, args ...interface{})   { l.Log(Fatal, format, args...) }

// FatalIf does nothing if cond is false; otherwise it logs and exits.
func (l *Logger) FatalIf(cond bool, format string, args ...interface{}) {
	if cond {
		l.Fatal(format, args...)
	}
}

// FatalIfErr does nothing if err is nil; otherwise it logs "Failed to
// <format>: <err>" and exits.
func (l *Logger) FatalIfErr(err error, format string, args ...interface{}) {
	if err != nil {
		args = append(args, err.Error())
		l.Fatal("Failed to "+format+": %s", args...)
	}
}

// Compose returns a Composer holding the write lock across multiple
// writes, so a multi-part message isn't interleaved with another
// goroutine's log line.
func (l *Logger) Compose(level int) Composer {
	c := Composer{level: level}
	if level <= l.Threshold {
		c.writeTo = l.writeTo
		c.heldLock = &l.writeLock
		l.writeLock.Lock()
		l.prefixMessage(level)
	}
	return c
}

// Composer lets a caller build up one log line across multiple writes.
// Call Close (or Finish) to release the lock.
type Composer struct {
	level    int
	writeTo  io.Writer
	heldLock *sync.Mutex
}

func (c *Composer) Write(format string, args ...interface{}) {
	if c.writeTo == nil {
		return
	}
	if len(args) == 0 {
		fmt.Fprint(c.writeTo, format)
	} else {
		fmt.Fprintf(c.writeTo, format, args...)
	}
}

func (c *Composer) Writeln(format string, args ...interface{}) {
	if c.writeTo == nil {
		return
	}
	c.Write(format, args...)
	fmt.Fprintln(c.writeTo)
}

func (c *Composer) Finish(format string, args ...interface{}) {
	c.Write(format, args...)
	c.Close()
}

func (c *Composer) Close() {
	if c.writeTo == nil {
		return
	}
	fmt.Fprintln(c.writeTo)
	c.heldLock.Unlock()
	c.writeTo = nil
	if c.level == Fatal {
		os.Exit(fatalExitCode)
	}
}

// WriteAdapter returns an io.Writer that logs each newline-terminated
// write through l at level, or nil if level is numerically above
// l.Threshold (and so would be filtered out).
func (l *Logger) WriteAdapter(level int) io.Writer {
	if level > l.Threshold {
		return nil
	}
	return &writeAdapter{logger: l, level: level}
}

type writeAdapter struct {
	logger *Logger
	buf    []byte
	level  int
}

func (wa *writeAdapter) Write(message []byte) (int, error) {
	if len(message) > 0 {
		wa.buf = append(wa.buf, message...)
		if wa.buf[len(wa.buf)-1] == '\n' {
			wa.logger.Log(wa.level, "%s", string(wa.buf[:len(wa.buf)-1]))
			wa.buf = wa.buf[:0]
		}
	}
	return len(message), nil
}

// RoundDuration truncates d to a multiple of to, for terser log output.
func RoundDuration(d, to time.Duration) string {
	return (d - d%to).String()
}

const (
	periodicMinSleep = 2 * time.Second
	periodicMaxSleep = 365 * 24 * time.Hour
)

type reporterFunc func(c *Composer, sinceLast time.Duration)

type reporter struct {
	id       string
	report   reporterFunc
	interval backoff.ExponentialBackOff
	nextRun  time.Time
	lastRun  time.Time
}

// periodic groups the periodic-reporter state kept on Logger, adapted
// from the teacher's logger/periodic.go.
type periodic struct {
	timer     *time.Timer
	reporters []*reporter
	m         sync.Mutex
	stop      bool
}

func newPeriodic() periodic {
	return periodic{timer: time.NewTimer(periodicMaxSleep)}
}

func (p *periodic) Close() {
	p.m.Lock()
	defer p.m.Unlock()
	p.stop = true
	p.timer.Stop()
	p.timer.Reset(0)
}

func resetTimer(l *Logger, now time.Time) {
	next := now.Add(periodicMaxSleep)
	for _, r := range l.p.reporters {
		if next.After(r.nextRun) {
			next = r.nextRun
		}
	}
	l.p.timer.Stop()
	l.p.timer.Reset(next.Sub(now))
}

func runPeriodic(l *Logger, minSleep time.Duration, started time.Time) {
	c := l.Compose(Info)
	defer c.Close()
	limit := started.Add(minSleep)
	for _, r := range l.p.reporters {
		if !limit.After(r.nextRun) {
			continue
		}
		r.report(&c, started.Sub(r.lastRun))
		r.lastRun = started
		next := r.interval.NextBackOff()
		if next <= 0 {
			next = periodicMaxSleep
		}
		r.nextRun = started.Add(next)
	}
}

func periodicRunner(l *Logger) {
	for {
		now := <-l.p.timer.C
		l.p.m.Lock()
		if l.p.stop {
			l.p.m.Unlock()
			return
		}
		runPeriodic(l, periodicMinSleep, now)
		resetTimer(l, now)
		l.p.m.Unlock()
	}
}

// RunAllPeriodic runs every registered reporter immediately, ignoring
// intervals. Useful right before process shutdown.
func (l *Logger) RunAllPeriodic() {
	l.p.m.Lock()
	defer l.p.m.Unlock()
	n := time.Now()
	runPeriodic(l, periodicMaxSleep, n)
	resetTimer(l, n)
}

// AddPeriodic registers a reporter that runs on an interval growing
// exponentially from minInterval to maxInterval, via
// backoff.ExponentialBackOff (github.com/cenkalti/backoff), matching the
// teacher's AddPeriodic (logger/periodic.go).
func (l *Logger) AddPeriodic(id string, minInterval, maxInterval time.Duration, f reporterFunc) {
	b := backoff.ExponentialBackOff{
		InitialInterval:     minInterval,
		MaxInterval:         maxInterval,
		Multiplier:          3.0,
		RandomizationFactor: 0.0,
		MaxElapsedTime:      0,
		Clock:               backoff.SystemClock,
	}
	b.Reset()

	l.p.m.Lock()
	defer l.p.m.Unlock()
	for _, r := range l.p.reporters {
		if r.id == id {
			l.Error("A periodic reporter with ID %s already exists", id)
			return
		}
	}
	added := time.Now()
	l.p.reporters = append(l.p.reporters, &reporter{
		id:       id,
		report:   f,
		interval: b,
		lastRun:  added,
		nextRun:  added.Add(b.NextBackOff()),
	})
	resetTimer(l, added)
}

// RemovePeriodic removes a previously-registered reporter.
func (l *Logger) RemovePeriodic(id string) {
	l.p.m.Lock()
	defer l.p.m.Unlock()
	n := len(l.p.reporters)
	for i := 0; i < n; i++ {
		if l.p.reporters[i].id == id {
			l.p.reporters[i] = l.p.reporters[n-1]
			l.p.reporters = l.p.reporters[:n-1]
			return
		}
	}
	l.Error("There is no periodic reporter with ID %s to remove", id)
}
