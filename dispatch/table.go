// Package dispatch implements instance dispatcher: a
// static, priority-ordered table of implementations per primitive,
// each guarded by a capability mask built from internal/cpufeature's
// detected ISA extensions. On first use the table walks its entries
// in priority order, skips any whose mask the process does not
// satisfy, runs that entry's self-test gate, and demotes to the next
// entry if the gate fails — caching whichever entry wins for the
// remaining lifetime of the process, exactly like the algorithm-status
// and CPU-feature caches it sits on top of.
//
// Every table currently shipped here resolves to the same portable Go
// implementation regardless of which mask wins, since this module
// carries no hand-written SIMD or assembly back-ends of its own — the
// accelerated entries exist to exercise the selection machinery (and
// to give a real accelerated back-end, if one is ever added under the
// matching build tag, a slot to register into) without claiming a
// speed difference that does not exist yet. DESIGN.md records this as
// an accepted scope boundary, not an oversight.
package dispatch

import (
	"errors"
	"fmt"
	"sync"

	"github.com/kzall0c/leancrypto/internal/cpufeature"
)

// Mask is a bitset over the ISA extensions internal/cpufeature detects.
// Require == 0 means "always satisfied" — the portable fallback every
// table ends with.
type Mask uint32

const (
	MaskAVX2 Mask = 1 << iota
	MaskAVX512
	MaskAESNI
	MaskARMAES
	MaskARMSHA2
	MaskARMSHA3
	MaskARMPMULL
	MaskARMNEON
	MaskRISCVVector
)

func have(f cpufeature.Set) Mask {
	var m Mask
	if f.AVX2 {
		m |= MaskAVX2
	}
	if f.AVX512 {
		m |= MaskAVX512
	}
	if f.AESNI {
		m |= MaskAESNI
	}
	if f.ARMAES {
		m |= MaskARMAES
	}
	if f.ARMSHA2 {
		m |= MaskARMSHA2
	}
	if f.ARMSHA3 {
		m |= MaskARMSHA3
	}
	if f.ARMPMULL {
		m |= MaskARMPMULL
	}
	if f.ARMNEON {
		m |= MaskARMNEON
	}
	if f.RISCVVector {
		m |= MaskRISCVVector
	}
	return m
}

// ErrNoImplementation is returned when every entry in a table either
// requires a mask the process does not satisfy or failed its self-test
// gate (`unsupported`/`selftest_failed` kinds collapsed
// to one error at this layer, since the table does not distinguish
// why an entry was skipped from the caller's point of view).
var ErrNoImplementation = errors.New("dispatch: no implementation available")

// Impl is one implementation bound into a primitive's table, in
// priority order: index 0 is tried first. New runs that implementation
// far enough to trigger its self-test gate — for the primitives in
// this package, that means calling the concrete package's own
// constructor and discarding any panic it raises on a latched-failed
// self-test.
type Impl[T any] struct {
	Name    string
	Require Mask
	New     func() (T, error)
}

// Table is a primitive's implementation table together with its
// latched selection. What is cached is the winning *entry* — its
// constructor and name — never a constructed instance: most of this
// module's primitives are stateful (a hash.Hash's Write/Sum, an
// AEAD's per-call nonce), so every Get() call builds a fresh instance
// from whichever entry won, the same way calling hash.NewSHA3_256()
// twice gives two independent digests. A zero Table is not valid;
// construct with NewTable.
type Table[T any] struct {
	impls []Impl[T]

	once   sync.Once
	winner *Impl[T]
	err    error
}

func NewTable[T any](impls ...Impl[T]) *Table[T] {
	return &Table[T]{impls: impls}
}

// Get runs the selection algorithm on first call — reading cached CPU
// features, walking impls in priority order, skipping any whose
// Require mask is unsatisfied, and demoting to the next entry when an
// implementation's self-test gate fails — then constructs a fresh
// instance from the latched winner on every call (including the
// first).
func (t *Table[T]) Get() (T, string, error) {
	t.once.Do(t.selectOnce)
	if t.err != nil {
		var zero T
		return zero, "", t.err
	}
	v, err := t.winner.New()
	if err != nil {
		var zero T
		return zero, "", err
	}
	return v, t.winner.Name, nil
}

func (t *Table[T]) selectOnce() {
	mask := have(cpufeature.Features())
	var lastErr error
	for i := range t.impls {
		impl := &t.impls[i]
		if impl.Require&mask != impl.Require {
			continue
		}
		if _, err := probe(impl.New); err != nil {
			lastErr = err
			continue
		}
		t.winner = impl
		return
	}
	if lastErr == nil {
		lastErr = ErrNoImplementation
	}
	t.err = lastErr
}

// probe runs new and converts a panic — the convention every
// self-test-gated constructor in this module uses to report
// selftest_failed — into a plain error, so Table's demotion loop can
// treat a panicking entry exactly like one that returned an error.
func probe[T any](new func() (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("dispatch: implementation panicked: %v", r)
		}
	}()
	return new()
}
