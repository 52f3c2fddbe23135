package dispatch

import (
	"errors"
	"testing"
)

func TestTableSelectsFirstSatisfiedImpl(t *testing.T) {
	// A mask combining x86 and ARM feature bits can never be satisfied
	// by any real process's single architecture, so this impl is
	// always skipped regardless of which machine the test runs on.
	impossible := MaskAVX2 | MaskARMNEON | MaskRISCVVector
	tbl := NewTable(
		Impl[int]{Name: "needs-impossible-combo", Require: impossible, New: func() (int, error) { return 1, nil }},
		Impl[int]{Name: "portable", Require: 0, New: func() (int, error) { return 2, nil }},
	)
	v, name, err := tbl.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if name != "portable" || v != 2 {
		t.Fatalf("got (%v, %q), want (2, \"portable\")", v, name)
	}
}

func TestTableDemotesOnConstructorError(t *testing.T) {
	tbl := NewTable(
		Impl[int]{Name: "broken", Require: 0, New: func() (int, error) { return 0, errors.New("boom") }},
		Impl[int]{Name: "fallback", Require: 0, New: func() (int, error) { return 9, nil }},
	)
	v, name, err := tbl.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if name != "fallback" || v != 9 {
		t.Fatalf("got (%v, %q), want (9, \"fallback\")", v, name)
	}
}

func TestTableDemotesOnConstructorPanic(t *testing.T) {
	tbl := NewTable(
		Impl[int]{Name: "panics", Require: 0, New: func() (int, error) { panic("latched failed") }},
		Impl[int]{Name: "fallback", Require: 0, New: func() (int, error) { return 7, nil }},
	)
	v, name, err := tbl.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if name != "fallback" || v != 7 {
		t.Fatalf("got (%v, %q), want (7, \"fallback\")", v, name)
	}
}

func TestTableNoImplementationSatisfiesMask(t *testing.T) {
	tbl := NewTable(
		Impl[int]{Name: "needs-avx512", Require: MaskAVX512, New: func() (int, error) { return 1, nil }},
	)
	if _, _, err := tbl.Get(); !errors.Is(err, ErrNoImplementation) {
		t.Fatalf("got %v, want ErrNoImplementation", err)
	}
}

func TestTableConstructsFreshInstanceEachGet(t *testing.T) {
	calls := 0
	tbl := NewTable(
		Impl[int]{Name: "counting", Require: 0, New: func() (int, error) {
			calls++
			return calls, nil
		}},
	)
	a, _, err := tbl.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	b, _, err := tbl.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if a == b {
		t.Fatalf("two Get() calls returned the same constructed value (%v == %v); selection should be cached, construction should not", a, b)
	}
}

func TestAES(t *testing.T) {
	key := make([]byte, 16)
	a, name, err := AES(key)
	if err != nil {
		t.Fatalf("AES: %v", err)
	}
	if a == nil || name == "" {
		t.Fatal("expected a non-nil AES instance and a non-empty implementation name")
	}
}

func TestSHA3_256Dispatch(t *testing.T) {
	h, name, err := SHA3_256()
	if err != nil {
		t.Fatalf("SHA3_256: %v", err)
	}
	if name == "" {
		t.Fatal("expected a non-empty implementation name")
	}
	h.Write([]byte("dispatch smoke test"))
	if len(h.Sum(nil)) != 32 {
		t.Fatal("SHA3-256 digest must be 32 bytes")
	}
}

func TestChaCha20DRNGDispatch(t *testing.T) {
	rng, name, err := ChaCha20DRNG()
	if err != nil {
		t.Fatalf("ChaCha20DRNG: %v", err)
	}
	if name == "" {
		t.Fatal("expected a non-empty implementation name")
	}
	out := make([]byte, 16)
	rng.Generate(out, nil)
}
