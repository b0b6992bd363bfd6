package main

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/urfave/cli"

	"github.com/quartzgb/quartz/internal/emu"
	"github.com/quartzgb/quartz/internal/ui"
)

func main() {
	app := cli.NewApp()
	app.Name = "quartz"
	app.Description = "A Game Boy / Game Boy Color emulator"
	app.Usage = "quartz [options] <ROM file>"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file",
		},
		cli.IntFlag{
			Name:  "scale",
			Usage: "Window scale factor",
			Value: 3,
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run without a window",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Frames to run in headless mode",
			Value: 300,
		},
		cli.StringFlag{
			Name:  "outpng",
			Usage: "Write the final framebuffer to a PNG (headless)",
		},
		cli.BoolTFlag{
			Name:  "save",
			Usage: "Persist battery RAM to <rom>.sav",
		},
		cli.BoolFlag{
			Name:  "skip-bootrom",
			Usage: "Start directly at the cartridge entry point",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("emulator exited with error", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
	}

	rom, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("read ROM: %w", err)
	}

	savePath := romPath + ".sav"
	var saveFile []byte
	if c.BoolT("save") {
		if data, err := os.ReadFile(savePath); err == nil {
			saveFile = data
			slog.Info("loaded save file", "path", savePath, "bytes", len(data))
		}
	}

	stream := ui.NewStream()
	m, err := emu.New(rom, stream.Push, saveFile)
	if err != nil {
		return fmt.Errorf("construct machine: %w", err)
	}

	h := m.Header()
	slog.Info("cartridge loaded",
		"title", h.Title,
		"type", h.CartTypeStr,
		"banks", h.ROMBanks,
		"cgb", m.IsCGB(),
	)

	if c.Bool("skip-bootrom") {
		m.SkipBootROM()
	}

	if c.Bool("headless") {
		err = runHeadless(m, c.Int("frames"), c.String("outpng"))
	} else {
		err = ebiten.RunGame(ui.NewApp(ui.Config{Title: "quartz - " + h.Title, Scale: c.Int("scale")}, m, stream))
	}
	if err != nil {
		return err
	}

	if c.BoolT("save") {
		if dump := m.RAMDump(); dump != nil {
			if err := os.WriteFile(savePath, dump, 0o644); err != nil {
				return fmt.Errorf("write save: %w", err)
			}
			slog.Info("wrote save file", "path", savePath, "bytes", len(dump))
		}
	}
	return nil
}

func runHeadless(m *emu.Machine, frames int, pngPath string) error {
	if frames <= 0 {
		frames = 1
	}
	for i := 0; i < frames; i++ {
		m.ExecuteFrame()
	}
	slog.Info("headless run complete", "frames", frames)

	if pngPath != "" {
		if err := writeFramePNG(m.Framebuffer(), pngPath); err != nil {
			return fmt.Errorf("write PNG: %w", err)
		}
		slog.Info("wrote framebuffer", "path", pngPath)
	}
	return nil
}

// writeFramePNG expands the engine's RGB24 buffer into an NRGBA image.
func writeFramePNG(fb []byte, path string) error {
	img := image.NewNRGBA(image.Rect(0, 0, emu.ScreenWidth, emu.ScreenHeight))
	for i, j := 0, 0; i < len(fb); i, j = i+3, j+4 {
		img.Pix[j] = fb[i]
		img.Pix[j+1] = fb[i+1]
		img.Pix[j+2] = fb[i+2]
		img.Pix[j+3] = 0xFF
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
