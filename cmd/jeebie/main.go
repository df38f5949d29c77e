package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli"
	"github.com/valerio/jeebie-core/jeebie"
	"github.com/valerio/jeebie-core/jeebie/backend"
	"github.com/valerio/jeebie-core/jeebie/backend/headless"
	"github.com/valerio/jeebie-core/jeebie/backend/terminal"
	"github.com/valerio/jeebie-core/jeebie/debug"
	"github.com/valerio/jeebie-core/jeebie/disasm"
	"github.com/valerio/jeebie-core/jeebie/loader"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		slog.Error("Error running emulator", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "Jeebie"
	app.Description = "A simple gameboy emulator"
	app.Usage = "jeebie [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file (.gb, or a .zip/.gz/.7z archive containing one)",
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run the emulator without a terminal interface",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (required for headless)",
		},
		cli.IntFlag{
			Name:  "snapshot-interval",
			Usage: "Save PNG frame snapshots every N frames in headless mode (0 = disabled)",
		},
		cli.StringFlag{
			Name:  "snapshot-dir",
			Usage: "Directory to save frame snapshots (default: temp directory)",
		},
		cli.IntFlag{
			Name:  "snapshot-scale",
			Usage: "Upscaling factor for PNG snapshots",
			Value: debug.DefaultSnapshotScale,
		},
		cli.BoolFlag{
			Name:  "hash",
			Usage: "Log a hash of every frame in headless mode",
		},
		cli.BoolFlag{
			Name:  "trace",
			Usage: "Log every executed instruction (implies --debug)",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "Start with debug logging and the debug panels enabled",
		},
		cli.BoolFlag{
			Name:  "serial",
			Usage: "Print the bytes written to the serial port on exit",
		},
		cli.BoolFlag{
			Name:  "no-save",
			Usage: "Do not load or write battery-backed cartridge RAM",
		},
		cli.IntFlag{
			Name:  "disasm",
			Usage: "Print N disassembled instructions from the entry point and exit",
		},
	}
	app.Action = runEmulator
	return app
}

func romPath(c *cli.Context) (string, error) {
	if path := c.String("rom"); path != "" {
		return path, nil
	}
	if c.NArg() > 0 {
		return c.Args().Get(0), nil
	}
	cli.ShowAppHelp(c)
	return "", errors.New("no ROM path provided")
}

func runEmulator(c *cli.Context) error {
	path, err := romPath(c)
	if err != nil {
		return err
	}

	emu, err := jeebie.NewWithFile(path)
	if err != nil {
		return err
	}

	if n := c.Int("disasm"); n > 0 {
		printDisassembly(c.App.Writer, emu, n)
		return nil
	}

	level := new(slog.LevelVar)
	if c.Bool("debug") || c.Bool("trace") {
		level.Set(slog.LevelDebug)
	}
	emu.SetTrace(c.Bool("trace"))

	savePath := ""
	if !c.Bool("no-save") && emu.HasBattery() {
		savePath = loader.SavePath(path)
		if err := loadBattery(emu, savePath); err != nil {
			return err
		}
	}

	b, err := newBackend(c, path)
	if err != nil {
		return err
	}

	config := backend.BackendConfig{
		Title:     "Jeebie - " + emu.Header().Title,
		ShowDebug: c.Bool("debug"),
		Debug:     emu,
		LogLevel:  level,
	}
	if err := b.Init(config); err != nil {
		return fmt.Errorf("initializing backend: %w", err)
	}

	runErr := backend.NewLoop(emu, b).Run()
	if err := b.Cleanup(); err != nil {
		slog.Warn("Backend cleanup failed", "error", err)
	}

	if savePath != "" {
		if err := saveBattery(emu, savePath); err != nil {
			runErr = errors.Join(runErr, err)
		}
	}

	if c.Bool("serial") {
		fmt.Fprintln(c.App.Writer, emu.SerialOutput())
	}

	return runErr
}

func newBackend(c *cli.Context, path string) (backend.Backend, error) {
	if !c.Bool("headless") {
		return terminal.New(), nil
	}

	frames := c.Int("frames")
	if frames <= 0 {
		return nil, errors.New("headless mode requires --frames option with a positive value")
	}

	snapshots, err := headless.CreateSnapshotConfig(
		c.Int("snapshot-interval"), c.String("snapshot-dir"), path, c.Int("snapshot-scale"))
	if err != nil {
		return nil, err
	}

	var opts []headless.Option
	if c.Bool("hash") {
		opts = append(opts, headless.WithFrameHashes())
	}
	return headless.New(frames, snapshots, opts...), nil
}

func loadBattery(emu *jeebie.DMG, path string) error {
	data, err := loader.LoadSave(path)
	if err != nil || data == nil {
		return err
	}
	if err := emu.LoadBatteryRAM(data); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	slog.Info("Loaded battery RAM", "path", path, "size", len(data))
	return nil
}

func saveBattery(emu *jeebie.DMG, path string) error {
	data, err := emu.BatteryRAM()
	if err != nil {
		return err
	}
	return loader.WriteSave(path, data)
}

func printDisassembly(w io.Writer, emu *jeebie.DMG, count int) {
	pc := emu.CPU().PC
	for _, line := range disasm.DisassembleRange(pc, count, emu.Bus()) {
		fmt.Fprintln(w, disasm.FormatDisassemblyLine(line, line.Address == pc))
	}
}
