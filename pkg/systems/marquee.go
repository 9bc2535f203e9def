package systems

import "math"

// 跑马灯默认参数
const (
	DefaultMarqueeMaxSpeed     = 2.5 // 像素/帧
	DefaultMarqueeAcceleration = 0.1 // 像素/帧²
)

// speedEpsilon 吸收浮点累加误差，保证 25 帧内从 0 加速到 2.5
const speedEpsilon = 1e-9

// Marquee 水平自动滚动条
//
// 速度以固定加速度逼近目标速度且不会越过目标；鼠标悬停时目标为 0。
// 内容必须按两份拷贝首尾相接排布，位移达到单份宽度时归零，形成无缝循环。
type Marquee struct {
	position     float64
	currentSpeed float64
	targetSpeed  float64
	maxSpeed     float64
	accel        float64
	trackWidth   float64
	hovered      bool
	running      bool
}

// NewMarquee 创建跑马灯，非正参数使用默认值
func NewMarquee(maxSpeed, accel float64) *Marquee {
	if maxSpeed <= 0 {
		maxSpeed = DefaultMarqueeMaxSpeed
	}
	if accel <= 0 {
		accel = DefaultMarqueeAcceleration
	}
	return &Marquee{maxSpeed: maxSpeed, accel: accel, targetSpeed: maxSpeed}
}

// Start 开始滚动
func (m *Marquee) Start() { m.running = true }

// Stop 停止滚动（状态保留）
func (m *Marquee) Stop() { m.running = false }

// Running 是否在滚动
func (m *Marquee) Running() bool { return m.running }

// SetHover 更新悬停状态
func (m *Marquee) SetHover(hovered bool) {
	m.hovered = hovered
	if hovered {
		m.targetSpeed = 0
	} else {
		m.targetSpeed = m.maxSpeed
	}
}

// Hovered 是否处于悬停状态
func (m *Marquee) Hovered() bool { return m.hovered }

// SetContentWidth 设置渲染内容（两份拷贝）的总宽度
func (m *Marquee) SetContentWidth(w float64) {
	if w <= 0 {
		m.trackWidth = 0
		return
	}
	m.trackWidth = w / 2
	if math.Abs(m.position) >= m.trackWidth {
		m.position = 0
	}
}

// Tick 前进一帧
func (m *Marquee) Tick() {
	if !m.running {
		return
	}

	diff := m.targetSpeed - m.currentSpeed
	switch {
	case math.Abs(diff) <= m.accel+speedEpsilon:
		m.currentSpeed = m.targetSpeed
	case diff > 0:
		m.currentSpeed += m.accel
	default:
		m.currentSpeed -= m.accel
	}

	m.position -= m.currentSpeed
	if m.trackWidth > 0 && math.Abs(m.position) >= m.trackWidth {
		m.position = 0
	}
}

// Position 当前水平偏移（<=0）
func (m *Marquee) Position() float64 { return m.position }

// Speed 当前速度
func (m *Marquee) Speed() float64 { return m.currentSpeed }

// TargetSpeed 目标速度
func (m *Marquee) TargetSpeed() float64 { return m.targetSpeed }

// TrackWidth 单份内容宽度
func (m *Marquee) TrackWidth() float64 { return m.trackWidth }
