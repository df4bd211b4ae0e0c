// Package ratchet's three ratchets are documented on their respective
// files: the Double Ratchet in ratchet.go, the sparse PQ ratchet in
// sparsepq.go, and their composition in triple.go.
//
// The Double Ratchet maintains a root key and two message chains (send
// and receive). Each message advances a KDF chain so that keys are
// forward secure. When a party changes its DH ratchet public key, both
// sides derive new chain keys from a new root derived via DH.
//
// Concurrency: State and TripleState are NOT safe for concurrent use.
// Callers must serialize access per conversation.
package ratchet
