package dispatch

import "github.com/kzall0c/leancrypto/pqc"

// pqcKEMs and pqcSigners are registration slots for post-quantum
// algorithms: the same name-keyed shape as every Table in this
// package, minus the CPU-feature probing, since no concrete backend
// exists yet to probe.
// RegisterKEM/RegisterSigner let a future backend package claim a slot
// from its own init() without this package importing it.
var (
	pqcKEMs    = map[string]pqc.KEM{}
	pqcSigners = map[string]pqc.Signer{}
)

func init() {
	for _, k := range []pqc.KEM{pqc.MLKEM512, pqc.MLKEM768, pqc.MLKEM1024, pqc.HQC128, pqc.BIKEL1} {
		pqcKEMs[k.Name()] = k
	}
	for _, s := range []pqc.Signer{pqc.MLDSA44, pqc.MLDSA65, pqc.MLDSA87, pqc.SLHDSASHA2128s} {
		pqcSigners[s.Name()] = s
	}
}

// RegisterKEM lets a backend package claim or replace a named slot,
// e.g. a real ML-KEM-768 implementation overriding the unimplemented
// placeholder registered above.
func RegisterKEM(k pqc.KEM) { pqcKEMs[k.Name()] = k }

// RegisterSigner is RegisterKEM's counterpart for Signer backends.
func RegisterSigner(s pqc.Signer) { pqcSigners[s.Name()] = s }

// KEMByName and SignerByName look up a registered algorithm, whether
// it is this package's unimplemented placeholder or a real backend
// that called Register* from its own init().
func KEMByName(name string) (pqc.KEM, bool) {
	k, ok := pqcKEMs[name]
	return k, ok
}

func SignerByName(name string) (pqc.Signer, bool) {
	s, ok := pqcSigners[name]
	return s, ok
}
