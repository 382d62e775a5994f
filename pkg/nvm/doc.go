// Package nvm defines the controller-information record consumed by the
// NVM Express example programs.
//
// The record is produced by a driver that lives outside this module. The
// types here only carry it: they give it a Go shape, serialization tags
// for snapshots and capture logs, and accessors for the packed fields.
//
// # Decoding Captured Data
//
// When a driver is not available, a record can be rebuilt from a register
// snapshot (CAP and VS) plus a captured Identify Controller data structure:
//
//	regs := nvm.Registers{CAP: 0x0020_0000_2803_03ff, VS: 0x0001_0200}
//	info, err := nvm.Decode(regs, identifyPage)
//
// Decode never talks to hardware. It interprets bytes the caller already has.
package nvm
