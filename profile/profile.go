// Package profile provides a simple way to generate pprof compatible model build profiles.
//
// Since a model is driven from a single go-routine, this package is also NOT
// thread safe and is meant to be called in the same go-routine.
package profile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gomip/gomip/logger"
	"github.com/google/pprof/profile"
)

var (
	sessions       []*Profile // active sessions
	activeSessions uint32
)

// Profile represents an active model profiling session. It samples every
// variable and constraint creation with the stack that triggered it.
type Profile struct {
	// defaults to ./gomip.pprof
	// if blank, profile is not written to disk
	filePath string

	// actual pprof profile struct
	// details on pprof format: https://github.com/google/pprof/blob/main/proto/README.md
	pprof profile.Profile

	functions map[string]*profile.Function
	locations map[uint64]*profile.Location

	nbVariables   int
	nbConstraints int

	onceSetName sync.Once

	chDone chan struct{}
}

// Option defines configuration Options for Profile.
type Option func(*Profile)

// WithPath controls the profile destination file. If blank, profile is not written.
//
// Defaults to ./gomip.pprof.
func WithPath(path string) Option {
	return func(p *Profile) {
		p.filePath = path
	}
}

// WithNoOutput indicates that the profile is not going to be written to disk.
//
// This is equivalent to WithPath("")
func WithNoOutput() Option {
	return func(p *Profile) {
		p.filePath = ""
	}
}

// Start creates a new active profiling session. When Stop() is called, this session is removed from
// active profiling sessions and may be serialized to disk as a pprof compatible file (see WithPath option).
//
// All calls to profile.Start() and Stop() are meant to be executed in the same go routine that
// builds the model.
//
// It is allowed to create multiple overlapping profiling sessions for one model.
func Start(options ...Option) *Profile {

	// start the worker first time a profiling session starts.
	onceInit.Do(func() {
		go worker()
	})

	p := Profile{
		functions: make(map[string]*profile.Function),
		locations: make(map[uint64]*profile.Location),
		filePath:  filepath.Join(".", "gomip.pprof"),
		chDone:    make(chan struct{}),
	}
	p.pprof.SampleType = []*profile.ValueType{
		{Type: "variables", Unit: "count"},
		{Type: "constraints", Unit: "count"},
	}

	for _, option := range options {
		option(&p)
	}

	log := logger.Logger()
	if p.filePath == "" {
		log.Warn().Msg("gomip profiling enabled [not writing to disk]")
	} else {
		log.Info().Str("path", p.filePath).Msg("gomip profiling enabled")
	}

	// add the session to active sessions
	chCommands <- command{p: &p}
	atomic.AddUint32(&activeSessions, 1)

	return &p
}

// Stop removes the profile from active session and may write the pprof file to disk. See WithPath option.
func (p *Profile) Stop() {
	log := logger.Logger()

	if p.chDone == nil {
		log.Fatal().Msg("gomip profile stopped multiple times")
	}

	// ask worker routine to remove ourselves from the active sessions
	chCommands <- command{p: p, remove: true}

	// wait for worker routine to remove us.
	<-p.chDone
	p.chDone = nil

	// if filePath is set, serialize profile to disk in pprof format
	if p.filePath != "" {
		f, err := os.Create(p.filePath)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create gomip profile")
		}
		if err := p.pprof.Write(f); err != nil {
			log.Error().Err(err).Msg("writing profile")
		}
		f.Close()
		log.Info().Str("path", p.filePath).Msg("gomip profiling disabled")
	} else {
		log.Warn().Msg("gomip profiling disabled [not writing to disk]")
	}

}

// NbVariables return number of variable creations collected by the profile session
func (p *Profile) NbVariables() int {
	return p.nbVariables
}

// NbConstraints return number of constraint creations collected by the profile session
func (p *Profile) NbConstraints() int {
	return p.nbConstraints
}

// RecordVariable add a variable sample (with count == 1) to all the active profiling sessions.
func RecordVariable() {
	record(sampleVariable)
}

// RecordConstraint add a constraint sample (with count == 1) to all the active profiling sessions.
func RecordConstraint() {
	record(sampleConstraint)
}

func record(kind sampleKind) {
	if n := atomic.LoadUint32(&activeSessions); n == 0 {
		return // do nothing, no active session.
	}

	// collect the stack and send it async to the worker
	pc := make([]uintptr, 20)
	n := runtime.Callers(4, pc)
	if n == 0 {
		return
	}
	pc = pc[:n]
	chCommands <- command{pc: pc, kind: kind}
}

func (p *Profile) getLocation(frame *runtime.Frame) *profile.Location {
	l, ok := p.locations[uint64(frame.PC)]
	if !ok {
		// first let's see if we have the function.
		f, ok := p.functions[frame.File+frame.Function]
		if !ok {
			fe := strings.Split(frame.Function, "/")
			fName := fe[len(fe)-1]
			f = &profile.Function{
				ID:         uint64(len(p.functions) + 1),
				Name:       fName,
				SystemName: frame.Function,
				Filename:   frame.File,
			}

			p.functions[frame.File+frame.Function] = f
			p.pprof.Function = append(p.pprof.Function, f)
		}

		l = &profile.Location{
			ID:   uint64(len(p.locations) + 1),
			Line: []profile.Line{{Function: f, Line: int64(frame.Line)}},
		}
		p.locations[uint64(frame.PC)] = l
		p.pprof.Location = append(p.pprof.Location, l)
	}

	return l
}

// Top return a similar output than pprof top command
func (p *Profile) Top() string {
	type node struct {
		fn   *profile.Function
		line int64
		flat int64
		cum  int64
	}
	byFn := make(map[*profile.Function]*node)
	var total int64

	for _, s := range p.pprof.Sample {
		v := s.Value[0] + s.Value[1]
		total += v
		seen := make(map[*profile.Function]bool, len(s.Location))
		for i, loc := range s.Location {
			f := loc.Line[0].Function
			n, ok := byFn[f]
			if !ok {
				n = &node{fn: f, line: loc.Line[0].Line}
				byFn[f] = n
			}
			if i == 0 {
				n.flat += v
			}
			if !seen[f] {
				n.cum += v
				seen[f] = true
			}
		}
	}

	if total == 0 {
		return "Showing nodes accounting for 0, 0% of 0 total\n"
	}

	nodes := make([]*node, 0, len(byFn))
	for _, n := range byFn {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].flat != nodes[j].flat {
			return nodes[i].flat > nodes[j].flat
		}
		return nodes[i].fn.Name < nodes[j].fn.Name
	})

	percent := func(v int64) string {
		r := float64(v) / float64(total) * 100
		if r == 100 {
			return "100%"
		}
		return fmt.Sprintf("%.2f%%", r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Showing nodes accounting for %d, 100%% of %d total\n", total, total)
	fmt.Fprintf(&buf, "      flat  flat%%   sum%%        cum   cum%%\n")
	var sum int64
	for _, n := range nodes {
		sum += n.flat
		file := n.fn.Filename
		if d := filepath.Base(filepath.Dir(file)); d != "." && d != string(filepath.Separator) {
			file = filepath.Join(d, filepath.Base(file))
		} else {
			file = filepath.Base(file)
		}
		fmt.Fprintf(&buf, "%10d %6s %6s %10d %6s  %s %s:%d\n",
			n.flat, percent(n.flat), percent(sum), n.cum, percent(n.cum), n.fn.Name, file, n.line)
	}
	return buf.String()
}
