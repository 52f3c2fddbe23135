// Package cpufeature exposes a process-wide, lazily-latched view of the
// ISA extensions relevant to this module's accelerated back-ends.
// The first caller to ask for Features() pays the cost of reading
// golang.org/x/sys/cpu's globals; every later caller sees the same
// cached value.
package cpufeature

import (
	"runtime"
	"sync"

	"golang.org/x/sys/cpu"
)

// Set is a snapshot of the ISA extensions available to this process.
type Set struct {
	AVX2      bool
	AVX512    bool
	AESNI     bool
	ARMAES    bool
	ARMSHA2   bool
	ARMSHA3   bool
	ARMPMULL  bool
	ARMNEON   bool
	RISCVVector bool
}

var (
	once   sync.Once
	cached Set
	forced *Set
	mu     sync.Mutex
)

// Features returns the latched feature set, detecting it on first call.
// A test-only override installed via Force takes precedence over the
// real detection, so the portable fallback path can be exercised
// deterministically ("test-only API can force specific
// capabilities").
func Features() Set {
	mu.Lock()
	f := forced
	mu.Unlock()
	if f != nil {
		return *f
	}
	once.Do(detect)
	return cached
}

func detect() {
	cached = Set{
		AVX2:        cpu.X86.HasAVX2,
		AVX512:      cpu.X86.HasAVX512F,
		AESNI:       cpu.X86.HasAES,
		ARMAES:      cpu.ARM64.HasAES,
		ARMSHA2:     cpu.ARM64.HasSHA2,
		ARMSHA3:     cpu.ARM64.HasSHA3,
		ARMPMULL:    cpu.ARM64.HasPMULL,
		ARMNEON:     runtime.GOARCH == "arm64", // ARM64 baseline always has NEON.
		RISCVVector: false,
	}
}

// Force overrides the latched feature set for the remainder of the
// process, or restores automatic detection when passed nil. Intended
// only for tests that need to exercise the portable fallback path on
// hardware that would otherwise select an accelerated back-end.
func Force(s *Set) {
	mu.Lock()
	defer mu.Unlock()
	forced = s
}
