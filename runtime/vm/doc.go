// Package vm provides the gas accounting and contract-preparation
// primitives the pipelining package drives speculatively, ahead of
// execution: a [GasCounter] mirroring the executor's own accounting, a
// [ContractCache]/[ContractStorage] pair standing in for the compiled-module
// cache and the code database, and [Prepare] standing in for the opaque
// WASM validation step a real near-vm-runner backend would perform.
package vm
