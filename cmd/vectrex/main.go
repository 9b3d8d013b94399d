// main.go - vectrex binary entry point: loads the BIOS and cartridge,
// wires the render/audio frontends, and runs the emulation loop.

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/vectrexcore
License: GPLv3 or later
*/

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/intuitionamiga/vectrexcore/core"
	"github.com/intuitionamiga/vectrexcore/internal/overlay"
)

func main() {
	biosPath := flag.String("bios", "bios.bin", "path to the 8 KiB BIOS ROM image")
	overlayPath := flag.String("overlay", "", "optional cartridge overlay image (PNG or GIF)")
	policyName := flag.String("errors", "logonce", "error policy: ignore, log, logonce, fail")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <cartridge.bin>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	policy, err := parsePolicy(*policyName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	emu := core.NewEmulator(policy)

	biosImage, err := os.ReadFile(*biosPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read BIOS: %v\n", err)
		os.Exit(1)
	}
	if err := emu.Init(biosImage); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	if cartPath := flag.Arg(0); cartPath != "" {
		cartImage, err := os.ReadFile(cartPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read cartridge: %v\n", err)
			os.Exit(1)
		}
		if err := emu.LoadCartridge(cartImage); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load cartridge: %v\n", err)
			os.Exit(1)
		}
		if header := emu.Cartridge.Header(); header.Title != "" {
			fmt.Printf("Cartridge: %s\n", header.Title)
		}
	}

	var bezel *overlay.Overlay
	if *overlayPath != "" {
		bezel, err = overlay.Load(*overlayPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load overlay: %v\n", err)
			os.Exit(1)
		}
	}

	emu.Reset()

	if err := runFrontend(emu, bezel); err != nil {
		fmt.Fprintf(os.Stderr, "Frontend error: %v\n", err)
		os.Exit(1)
	}
}

func parsePolicy(name string) (core.Policy, error) {
	switch name {
	case "ignore":
		return core.PolicyIgnore, nil
	case "log":
		return core.PolicyLog, nil
	case "logonce":
		return core.PolicyLogOnce, nil
	case "fail":
		return core.PolicyFail, nil
	default:
		return 0, fmt.Errorf("unknown error policy %q (use ignore, log, logonce, fail)", name)
	}
}
