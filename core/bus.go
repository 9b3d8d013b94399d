// bus.go - Memory Bus: routes reads/writes to a device by address, fans out
// per-cycle sync accounting, and preserves the exact write-observer -> sync
// -> device-write / sync -> device-read -> read-observer ordering the
// debugger and trace subsystem depend on.

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/vectrexcore
License: GPLv3 or later
*/

package core

import "sort"

// BusDevice is a passive byte store or peripheral reachable through the bus.
type BusDevice interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
}

// Syncer is implemented by devices that accumulate pending cycles between
// bus accesses (the VIA). Devices that don't need per-cycle accounting
// (RAM, ROM, cartridge, the unmapped window) don't implement it.
type Syncer interface {
	Sync(cycles int)
}

// ReadObserver and WriteObserver are the optional debugger/trace hooks fired
// synchronously inside Read/Write.
type ReadObserver func(addr uint16, value uint8)
type WriteObserver func(addr uint16, value uint8)

type deviceRecord struct {
	device     BusDevice
	syncer     Syncer
	first      uint16
	last       uint16
	syncEnable bool
	pending    int
}

// Bus is the Memory Bus: it routes every address to
// the unique device record that contains it, and accumulates sync cycles
// per device between accesses.
type Bus struct {
	devices []*deviceRecord
	onRead  ReadObserver
	onWrite WriteObserver
	errs    *ErrorHandler
}

// NewBus builds an empty bus reporting through the given error handler.
func NewBus(errs *ErrorHandler) *Bus {
	return &Bus{errs: errs}
}

// RegisterObservers installs the optional debugger/trace hooks. Pass nil for
// either to clear it.
func (b *Bus) RegisterObservers(onRead ReadObserver, onWrite WriteObserver) {
	b.onRead = onRead
	b.onWrite = onWrite
}

// Connect appends a device record for [first, last] inclusive and keeps the
// record list sorted by range start. Overlapping ranges are a fatal
// configuration error: the composition root wires devices once at startup,
// so a panic here surfaces a programming mistake rather than a runtime
// condition the error policy should absorb.
func (b *Bus) Connect(device BusDevice, first, last uint16, syncEnabled bool) {
	for _, d := range b.devices {
		if first <= d.last && last >= d.first {
			panic("core: bus.Connect: overlapping address range")
		}
	}
	rec := &deviceRecord{device: device, first: first, last: last, syncEnable: syncEnabled}
	if syncEnabled {
		if s, ok := device.(Syncer); ok {
			rec.syncer = s
		}
	}
	b.devices = append(b.devices, rec)
	sort.Slice(b.devices, func(i, j int) bool { return b.devices[i].first < b.devices[j].first })
}

// find locates the unique device record containing addr, or nil if the
// address is unmapped.
func (b *Bus) find(addr uint16) *deviceRecord {
	if len(b.devices) == 0 || addr < b.devices[0].first {
		return nil
	}
	for _, d := range b.devices {
		if addr <= d.last {
			if addr >= d.first {
				return d
			}
			return nil
		}
	}
	return nil
}

func (b *Bus) syncDevice(d *deviceRecord) {
	if d.pending > 0 && d.syncer != nil {
		d.syncer.Sync(d.pending)
	}
	d.pending = 0
}

// Read locates the device owning addr, flushes its pending sync, invokes
// the device read, fires the read observer, and returns the byte. An
// unmapped address reports through the error policy and returns 0.
func (b *Bus) Read(addr uint16) uint8 {
	d := b.find(addr)
	if d == nil {
		b.errs.Unmapped("unmapped address: $%04x", addr)
		return 0
	}
	b.syncDevice(d)
	value := d.device.Read(addr)
	if b.onRead != nil {
		b.onRead(addr, value)
	}
	return value
}

// Write fires the write observer first, then flushes pending sync, then
// invokes the device write. Reversing this order breaks the debugger's
// memory-access log relative to peripheral side effects.
func (b *Bus) Write(addr uint16, value uint8) {
	if b.onWrite != nil {
		b.onWrite(addr, value)
	}
	d := b.find(addr)
	if d == nil {
		b.errs.Unmapped("unmapped address: $%04x", addr)
		return
	}
	b.syncDevice(d)
	d.device.Write(addr, value)
}

// ReadRaw reads without flushing sync or firing observers, so the trace and
// debugger hooks can inspect state without perturbing it.
func (b *Bus) ReadRaw(addr uint16) uint8 {
	d := b.find(addr)
	if d == nil {
		return 0
	}
	return d.device.Read(addr)
}

// Read16 performs two ordered big-endian Read calls.
func (b *Bus) Read16(addr uint16) uint16 {
	high := b.Read(addr)
	low := b.Read(addr + 1)
	return uint16(high)<<8 | uint16(low)
}

// AddSyncCycles adds n to the pending-cycles counter of every sync-enabled
// record.
func (b *Bus) AddSyncCycles(n int) {
	for _, d := range b.devices {
		if d.syncEnable {
			d.pending += n
		}
	}
}

// Sync flushes pending sync on every sync-enabled record. Idempotent when
// pending cycles are already zero.
func (b *Bus) Sync() {
	for _, d := range b.devices {
		if d.syncEnable {
			b.syncDevice(d)
		}
	}
}
