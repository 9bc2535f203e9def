package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/decker502/portfolio/internal/particle"
	"github.com/decker502/portfolio/pkg/game"
)

// terminalFrame 终端渲染间隔（约 30 FPS）
const terminalFrame = 33 * time.Millisecond

// pointerIdleFrames 鼠标静止这么多帧后视为离开（终端不报告鼠标移出）
const pointerIdleFrames = 90

// terminalViewer 在终端中渲染粒子场
//
// 事件由单独的 goroutine 轮询并送入 channel，渲染循环在主 goroutine 中运行。
// run 返回前调用 screen.Fini() 并等待轮询 goroutine 退出。
type terminalViewer struct {
	screen  tcell.Screen
	theme   *game.ThemeManager
	field   *particle.Field
	surface *particle.TerminalSurface
	pointer particle.Pointer
	idle    int
	frame   time.Duration
	log     *zap.Logger
}

func newTerminalViewer(screen tcell.Screen, opts particle.Options, theme *game.ThemeManager, seed int64, log *zap.Logger) *terminalViewer {
	if log == nil {
		log = zap.NewNop()
	}
	bg := backgrounds[theme.Resolved()]
	return &terminalViewer{
		screen:  screen,
		theme:   theme,
		field:   particle.NewField(opts, rand.New(rand.NewSource(seed))),
		surface: particle.NewTerminalSurface(screen, bg),
		frame:   terminalFrame,
		log:     log.Named("TerminalViewer"),
	}
}

// run 运行渲染循环，直到按下退出键或 stop 被关闭
func (v *terminalViewer) run(stop <-chan struct{}) error {
	v.screen.EnableMouse()
	v.screen.EnableFocus()
	v.screen.HideCursor()
	v.applyTheme(v.theme.Resolved())
	cancel := v.theme.SubscribeResolved(v.applyTheme)
	defer cancel()

	w, h := v.surface.Size()
	v.field.Initialize(w, h, palettes.For(v.theme.Resolved()))

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			// Fini 之后 PollEvent 返回 nil
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()
	defer func() {
		close(quit)
		v.screen.Fini()
		<-done
		v.log.Debug("terminal released")
	}()

	ticker := time.NewTicker(v.frame)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return nil
		case ev := <-events:
			if !v.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			v.tick()
			v.field.Draw(v.surface, v.pointer)
			v.drawStatus()
			v.screen.Show()
		}
	}
}

// tick 推进一帧，指针长时间无事件时清除悬停
func (v *terminalViewer) tick() {
	v.theme.Update()
	if v.pointer.Over {
		v.idle++
		if v.idle >= pointerIdleFrames {
			v.pointer.Over = false
		}
	}
	v.field.Tick(v.pointer)
}

// handleEvent 处理一个终端事件，返回 false 表示退出
func (v *terminalViewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case 't', 'T':
				v.theme.ToggleTheme()
			case 'r', 'R':
				w, h := v.surface.Size()
				v.field.Initialize(w, h, v.field.Palette())
			}
		}

	case *tcell.EventResize:
		v.screen.Sync()
		w, h := v.surface.Size()
		v.field.Resize(w, h)
		v.log.Debug("resized", zap.Float64("width", w), zap.Float64("height", h))

	case *tcell.EventMouse:
		// 指针位于单元格中心
		col, row := ev.Position()
		v.pointer = particle.Pointer{
			X:    (float64(col) + 0.5) * particle.DefaultCellWidth,
			Y:    (float64(row) + 0.5) * particle.DefaultCellHeight,
			Over: true,
		}
		v.idle = 0

	case *tcell.EventFocus:
		if !ev.Focused {
			v.pointer.Over = false
		}
	}
	return true
}

// applyTheme 切换调色板和终端背景
func (v *terminalViewer) applyTheme(t game.Theme) {
	bg := backgrounds[t]
	v.surface.SetBackground(bg)
	v.screen.SetStyle(tcell.StyleDefault.Background(tcell.NewRGBColor(int32(bg.R), int32(bg.G), int32(bg.B))))
	v.field.SetPalette(palettes.For(t))
}

// drawStatus 在最后一行绘制状态
func (v *terminalViewer) drawStatus() {
	_, rows := v.screen.Size()
	if rows == 0 {
		return
	}
	line := fmt.Sprintf(" %d particles | %s | [t] theme [r] regenerate [q] quit ",
		len(v.field.Particles()), v.theme.Resolved())
	style := tcell.StyleDefault.Reverse(true)
	col := 0
	for _, r := range line {
		v.screen.SetContent(col, rows-1, r, nil, style)
		col++
	}
}
