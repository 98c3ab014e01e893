package profile

import (
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/pprof/profile"
)

// since we are assuming usage of this package from a single go routine, this channel only has
// one "producer", and one "consumer". it's purpose is to guarantee the order of execution of
// adding / removing a profiling session and sampling events, while enabling the caller
// (the model building code) to sample the events asynchronously.
var chCommands = make(chan command, 100)
var onceInit sync.Once

type sampleKind uint8

const (
	sampleVariable sampleKind = iota
	sampleConstraint
)

type command struct {
	p      *Profile
	pc     []uintptr
	remove bool
	kind   sampleKind
}

func worker() {
	for c := range chCommands {
		if c.p != nil {
			if c.remove {
				for i := 0; i < len(sessions); i++ {
					if sessions[i] == c.p {
						sessions[i] = sessions[len(sessions)-1]
						sessions = sessions[:len(sessions)-1]
						break
					}
				}
				close(c.p.chDone)

				// decrement active sessions
				atomic.AddUint32(&activeSessions, ^uint32(0))
			} else {
				sessions = append(sessions, c.p)
			}
			continue
		}

		collectSample(c.kind, c.pc)
	}

}

// collectSample must be called from the worker go routine
func collectSample(kind sampleKind, pc []uintptr) {
	value := []int64{1, 0}
	if kind == sampleConstraint {
		value = []int64{0, 1}
	}

	// for each session we may have a distinct sample, since ids of functions and locations may mismatch
	samples := make([]*profile.Sample, len(sessions))
	for i := range samples {
		samples[i] = &profile.Sample{Value: []int64{value[0], value[1]}}
	}

	var entry runtime.Frame

	frames := runtime.CallersFrames(pc)
	// Loop to get frames.
	// A fixed number of pcs can expand to an indefinite number of Frames.
	for {
		frame, more := frames.Next()

		if strings.HasPrefix(frame.Function, "runtime.") || strings.HasPrefix(frame.Function, "testing.") {
			// we stop; previous frame was the entry point of the model building code
			break
		}

		if strings.HasSuffix(frame.Function, ".func1") {
			// filter anonymous closures from the trace
			continue
		}

		frame.Function = strings.ReplaceAll(frame.Function, "[...]", "[T]")

		for i := range samples {
			samples[i].Location = append(samples[i].Location, sessions[i].getLocation(&frame))
		}
		entry = frame

		if !more {
			break
		}
	}

	for i := range sessions {
		s := sessions[i]
		s.pprof.Sample = append(s.pprof.Sample, samples[i])
		if kind == sampleConstraint {
			s.nbConstraints++
		} else {
			s.nbVariables++
		}
		if entry.Function != "" {
			s.onceSetName.Do(func() {
				// once per profile session, we set the "name of the binary"
				// to the outermost function driving the model build.
				fe := strings.Split(entry.Function, "/")
				s.pprof.Mapping = []*profile.Mapping{
					{ID: 1, File: fe[len(fe)-1]},
				}
			})
		}
	}
}
