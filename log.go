package novelins

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/google/uuid"
)

// verbose gates Vprint/Vprintf/Vprintln, set once by each cmd/ main from
// its -verbose flag, the same gate the teacher's progress_bar.go and
// cmd/cablastp-compress/main.go print through.
var verbose int32

// SetVerbose turns Vprint output on or off for the process.
func SetVerbose(on bool) {
	if on {
		atomic.StoreInt32(&verbose, 1)
	} else {
		atomic.StoreInt32(&verbose, 0)
	}
}

func Vprint(a ...interface{}) {
	if atomic.LoadInt32(&verbose) == 1 {
		fmt.Fprint(os.Stderr, a...)
	}
}

func Vprintf(format string, a ...interface{}) {
	if atomic.LoadInt32(&verbose) == 1 {
		fmt.Fprintf(os.Stderr, format, a...)
	}
}

func Vprintln(a ...interface{}) {
	if atomic.LoadInt32(&verbose) == 1 {
		fmt.Fprintln(os.Stderr, a...)
	}
}

// RunID tags one invocation of novelins-partition or novelins-merge, so
// skip-log lines collected from many concurrent batches (spec: batches
// are separate OS processes) can be told apart after the fact.
func RunID() string {
	return uuid.NewString()
}

// ProgressBar renders an ASCII progress bar to stderr, gated by
// SetVerbose, adapted from the teacher's own neutronium.ProgressBar.
type ProgressBar struct {
	Label   string
	Total   uint64
	Current uint64
}

func (bar *ProgressBar) Increment() {
	atomic.AddUint64(&bar.Current, 1)
}

func (bar *ProgressBar) ClearAndDisplay() {
	if bar.Total == 0 {
		return
	}
	Vprint("\r")
	barWidth := uint64(80 - len(bar.Label))
	ticks := (barWidth * bar.Current) / bar.Total
	Vprintf("%s [", bar.Label)
	for i := uint64(0); i < ticks; i++ {
		Vprint("=")
	}
	for i := ticks; i < barWidth; i++ {
		Vprint(" ")
	}
	Vprintf("] %d / %d", bar.Current, bar.Total)
}
