// devices.go - passive byte stores behind the bus: BIOS ROM, RAM, cartridge
// and the development/unmapped window.

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/vectrexcore
License: GPLv3 or later
*/

package core

import (
	"fmt"
	"math/rand"
)

// BIOSSize is the exact size a BIOS ROM file must be.
const BIOSSize = 8192

// CartridgeMaxSize is the largest a cartridge ROM file may be; shorter ROMs
// occupy the low portion of the cartridge window and reads above the loaded
// size return 0xFF, matching real cartridge hardware.
const CartridgeMaxSize = 49152

// BIOSRom is the 8K chip holding the Vectrex BIOS (and, in the low half of
// its window, the resident Mine Storm cartridge).
type BIOSRom struct {
	data [BIOSSize]byte
	errs *ErrorHandler
}

func NewBIOSRom(errs *ErrorHandler) *BIOSRom { return &BIOSRom{errs: errs} }

func (r *BIOSRom) Init(bus *Bus) {
	bus.Connect(r, MapBIOS.First, MapBIOS.Last, false)
}

// Load installs the BIOS image. The file must be exactly BIOSSize bytes.
func (r *BIOSRom) Load(data []byte) error {
	if len(data) != BIOSSize {
		return fmt.Errorf("core: BIOS ROM must be exactly %d bytes, got %d", BIOSSize, len(data))
	}
	copy(r.data[:], data)
	return nil
}

func (r *BIOSRom) Read(addr uint16) uint8 {
	return r.data[MapBIOS.MapAddress(addr)]
}

func (r *BIOSRom) Write(addr uint16, value uint8) {
	r.errs.Undefined("write to BIOS ROM at $%04x (value $%02x)", addr, value)
}

// RAM is the console's 1 KiB of scratch memory, shadow-mirrored twice across
// its 2 KiB window.
type RAM struct {
	data [1024]byte
}

func NewRAM() *RAM { return &RAM{} }

func (r *RAM) Init(bus *Bus) {
	bus.Connect(r, MapRAM.First, MapRAM.Last, false)
}

// Randomize fills RAM with pseudo-random bytes from seed. Some titles (Mine
// Storm among them) rely on nondeterministic initial RAM state, so Reset
// calls this with a fresh seed every time rather than zeroing.
func (r *RAM) Randomize(seed int64) {
	rnd := rand.New(rand.NewSource(seed))
	for i := range r.data {
		r.data[i] = uint8(rnd.Intn(256))
	}
}

func (r *RAM) Zero() {
	for i := range r.data {
		r.data[i] = 0
	}
}

func (r *RAM) Read(addr uint16) uint8 {
	return r.data[MapRAM.MapAddress(addr)]
}

func (r *RAM) Write(addr uint16, value uint8) {
	r.data[MapRAM.MapAddress(addr)] = value
}

// CartridgeHeader is the best-effort title/music-pointer parse of a
// cartridge's header; malformed headers return a zero-value struct rather
// than an error, since this is display/debug information only.
type CartridgeHeader struct {
	Title       string
	MusicTable  uint16
	HeightAvail bool
}

// Cartridge is the console's 48 KiB cartridge ROM window. Addresses above
// the loaded ROM's length return 0xFF, matching real cartridge hardware.
type Cartridge struct {
	data []byte
	errs *ErrorHandler
}

func NewCartridge(errs *ErrorHandler) *Cartridge { return &Cartridge{errs: errs} }

func (c *Cartridge) Init(bus *Bus) {
	bus.Connect(c, MapCartridge.First, MapCartridge.Last, false)
}

// Load installs a cartridge image. The image must not exceed
// CartridgeMaxSize bytes.
func (c *Cartridge) Load(data []byte) error {
	if len(data) > CartridgeMaxSize {
		return fmt.Errorf("core: cartridge ROM exceeds %d bytes, got %d", CartridgeMaxSize, len(data))
	}
	c.data = append([]byte(nil), data...)
	return nil
}

func (c *Cartridge) Read(addr uint16) uint8 {
	offset := int(MapCartridge.MapAddress(addr))
	if offset >= len(c.data) {
		return 0xFF
	}
	return c.data[offset]
}

func (c *Cartridge) Write(addr uint16, value uint8) {
	c.errs.Undefined("write to cartridge ROM at $%04x (value $%02x)", addr, value)
}

// Header extracts the cartridge's title string (a length-prefixed ASCII
// string conventionally stored a few bytes into the header) for display by
// an external monitor/overlay. Best-effort: a short or absent cartridge
// yields a zero-value header.
func (c *Cartridge) Header() CartridgeHeader {
	const titleOffset = 0x0E
	if len(c.data) <= titleOffset {
		return CartridgeHeader{}
	}
	end := titleOffset
	for end < len(c.data) && c.data[end] != 0 && end-titleOffset < 64 {
		end++
	}
	title := string(c.data[titleOffset:end])
	var musicTable uint16
	if len(c.data) >= 6 {
		musicTable = uint16(c.data[4])<<8 | uint16(c.data[5])
	}
	return CartridgeHeader{Title: title, MusicTable: musicTable, HeightAvail: true}
}

// UnmappedDevice services the 2 KiB development/unmapped window: every
// access there is Undefined (a legal bus access with no meaningful
// semantics), not Unmapped (there's no device at all).
type UnmappedDevice struct {
	errs *ErrorHandler
}

func NewUnmappedDevice(errs *ErrorHandler) *UnmappedDevice { return &UnmappedDevice{errs: errs} }

func (u *UnmappedDevice) Init(bus *Bus) {
	bus.Connect(u, MapUnmapped.First, MapUnmapped.Last, false)
}

func (u *UnmappedDevice) Read(addr uint16) uint8 {
	u.errs.Undefined("read from unmapped range at $%04x", addr)
	return 0
}

func (u *UnmappedDevice) Write(addr uint16, value uint8) {
	u.errs.Undefined("write to unmapped range at $%04x (value $%02x)", addr, value)
}

// IllegalDevice services the VIA+RAM overlap window $D800-$DFFF.
type IllegalDevice struct {
	errs *ErrorHandler
}

func NewIllegalDevice(errs *ErrorHandler) *IllegalDevice { return &IllegalDevice{errs: errs} }

func (d *IllegalDevice) Init(bus *Bus) {
	bus.Connect(d, MapIllegal.First, MapIllegal.Last, false)
}

func (d *IllegalDevice) Read(addr uint16) uint8 {
	d.errs.Undefined("read from illegal combined VIA+RAM window at $%04x", addr)
	return 0
}

func (d *IllegalDevice) Write(addr uint16, value uint8) {
	d.errs.Undefined("write to illegal combined VIA+RAM window at $%04x (value $%02x)", addr, value)
}
