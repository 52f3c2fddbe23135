package dispatch

import "testing"

func TestPQCRegistryHasPlaceholderSlots(t *testing.T) {
	if _, ok := KEMByName("ML-KEM-768"); !ok {
		t.Fatal("expected a registered (even if unimplemented) ML-KEM-768 slot")
	}
	if _, ok := SignerByName("ML-DSA-65"); !ok {
		t.Fatal("expected a registered (even if unimplemented) ML-DSA-65 slot")
	}
	if _, ok := KEMByName("does-not-exist"); ok {
		t.Fatal("expected no slot for an unregistered algorithm name")
	}
}
