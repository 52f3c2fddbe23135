package selftest

import "testing"

func TestRunLatchesOnce(t *testing.T) {
	id := ID(numIDs - 1)
	reset(id)
	defer reset(id)

	runs := 0
	test := func() bool {
		runs++
		return true
	}

	if err := Run(id, test); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if err := Run(id, test); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if runs != 1 {
		t.Fatalf("KAT executed %d times, want 1 (second call should observe Passed)", runs)
	}
	if Get(id) != Passed {
		t.Fatalf("status = %v, want Passed", Get(id))
	}
}

func TestRunLatchesFailure(t *testing.T) {
	id := ID(numIDs - 1)
	reset(id)
	defer reset(id)

	err := Run(id, func() bool { return false })
	if err == nil {
		t.Fatal("expected selftest_failed error")
	}
	if Get(id) != Failed {
		t.Fatalf("status = %v, want Failed", Get(id))
	}

	// A primitive latched Failed stays permanently non-functional: a
	// later call that would otherwise pass must still fail.
	err = Run(id, func() bool { return true })
	if err == nil {
		t.Fatal("expected selftest_failed to persist")
	}
}
