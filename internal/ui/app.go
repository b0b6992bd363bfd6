package ui

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/quartzgb/quartz/internal/apu"
	"github.com/quartzgb/quartz/internal/emu"
	"github.com/quartzgb/quartz/internal/joypad"
)

// Config holds the host window settings.
type Config struct {
	Title string
	Scale int
}

func (c *Config) defaults() {
	if c.Title == "" {
		c.Title = "quartz"
	}
	if c.Scale <= 0 {
		c.Scale = 3
	}
}

// keyMap binds host keys to the emulated pad.
var keyMap = map[ebiten.Key]joypad.Key{
	ebiten.KeyArrowRight: joypad.Right,
	ebiten.KeyArrowLeft:  joypad.Left,
	ebiten.KeyArrowUp:    joypad.Up,
	ebiten.KeyArrowDown:  joypad.Down,
	ebiten.KeyZ:          joypad.A,
	ebiten.KeyX:          joypad.B,
	ebiten.KeyBackspace:  joypad.Select,
	ebiten.KeyEnter:      joypad.Start,
}

// App drives a Machine from the ebiten game loop: one emulated frame per
// Update, the front buffer blitted in Draw, audio streamed to the player.
type App struct {
	cfg Config
	m   *emu.Machine

	tex    *ebiten.Image
	pixels []byte // RGBA staging for WritePixels

	audioCtx *audio.Context
	player   *audio.Player
	stream   *Stream

	paused bool
}

func NewApp(cfg Config, m *emu.Machine, stream *Stream) *App {
	cfg.defaults()
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(emu.ScreenWidth*cfg.Scale, emu.ScreenHeight*cfg.Scale)

	return &App{
		cfg:      cfg,
		m:        m,
		tex:      ebiten.NewImage(emu.ScreenWidth, emu.ScreenHeight),
		pixels:   make([]byte, emu.ScreenWidth*emu.ScreenHeight*4),
		audioCtx: audio.NewContext(apu.SampleRate),
		stream:   stream,
	}
}

func (a *App) Update() error {
	if a.player == nil && a.stream != nil {
		player, err := a.audioCtx.NewPlayer(a.stream)
		if err != nil {
			slog.Warn("audio player unavailable", "error", err)
			a.stream = nil
		} else {
			a.player = player
			a.player.Play()
		}
	}

	for key, pad := range keyMap {
		if inpututil.IsKeyJustPressed(key) {
			a.m.KeyDown(pad)
		}
		if inpututil.IsKeyJustReleased(key) {
			a.m.KeyUp(pad)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.paused = !a.paused
	}

	if !a.paused {
		a.m.ExecuteFrame()
	}

	// Expand the engine's RGB24 buffer into the RGBA staging area.
	fb := a.m.Framebuffer()
	for i, j := 0, 0; i < len(fb); i, j = i+3, j+4 {
		a.pixels[j] = fb[i]
		a.pixels[j+1] = fb[i+1]
		a.pixels[j+2] = fb[i+2]
		a.pixels[j+3] = 0xFF
	}
	a.tex.WritePixels(a.pixels)

	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	var op ebiten.DrawImageOptions
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	op.GeoM.Scale(float64(sw)/emu.ScreenWidth, float64(sh)/emu.ScreenHeight)
	screen.DrawImage(a.tex, &op)
}

func (a *App) Layout(_, _ int) (int, int) {
	return emu.ScreenWidth, emu.ScreenHeight
}
