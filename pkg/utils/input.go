// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerState 当前帧的指针状态（鼠标或触摸）
type PointerState struct {
	X, Y float64
	// Pressed 鼠标左键按下或有活动触摸
	Pressed bool
	// JustPressed / JustReleased 本帧刚按下/刚释放
	JustPressed  bool
	JustReleased bool
	// Touch 是否来自触摸输入
	Touch bool
}

// 触摸释放时 ebiten 已无法查询位置，保存最后一次触摸位置
var lastTouchX, lastTouchY int

// ReadPointer 读取当前帧的指针状态，优先检测触摸
func ReadPointer() PointerState {
	if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		lastTouchX, lastTouchY = x, y
		return PointerState{
			X:           float64(x),
			Y:           float64(y),
			Pressed:     true,
			JustPressed: len(inpututil.AppendJustPressedTouchIDs(nil)) > 0,
			Touch:       true,
		}
	}

	if len(inpututil.AppendJustReleasedTouchIDs(nil)) > 0 {
		return PointerState{
			X:            float64(lastTouchX),
			Y:            float64(lastTouchY),
			JustReleased: true,
			Touch:        true,
		}
	}

	x, y := ebiten.CursorPosition()
	return PointerState{
		X:            float64(x),
		Y:            float64(y),
		Pressed:      ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		JustPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		JustReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}
}

// WheelDeltaY 返回本帧垂直滚轮增量（向下滚动为正）
func WheelDeltaY() float64 {
	_, dy := ebiten.Wheel()
	return -dy
}

// DragScroller 把触摸/鼠标拖拽转换为滚动增量
//
// 按下后移动超过 Slop 像素才开始拖拽，这样普通点击不会引起滚动。
type DragScroller struct {
	// Slop 开始拖拽前允许的抖动距离
	Slop float64

	active   bool
	dragging bool
	startY   float64
	lastY    float64
}

// DefaultDragSlop 默认拖拽阈值（像素）
const DefaultDragSlop = 6.0

// NewDragScroller 创建拖拽滚动器
func NewDragScroller() *DragScroller {
	return &DragScroller{Slop: DefaultDragSlop}
}

// Update 输入本帧指针状态，返回应当施加的滚动增量（向下滚动为正）
func (d *DragScroller) Update(p PointerState) float64 {
	if !p.Pressed {
		d.active = false
		d.dragging = false
		return 0
	}
	if !d.active {
		d.active = true
		d.startY = p.Y
		d.lastY = p.Y
		return 0
	}

	if !d.dragging {
		dist := p.Y - d.startY
		if dist < 0 {
			dist = -dist
		}
		if dist <= d.Slop {
			return 0
		}
		d.dragging = true
	}

	dy := d.lastY - p.Y
	d.lastY = p.Y
	return dy
}

// Dragging 是否正在拖拽（用于抑制点击）
func (d *DragScroller) Dragging() bool {
	return d.dragging
}
