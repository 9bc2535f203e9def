package systems

import (
	"math"

	"go.uber.org/zap"
)

// DefaultSettleTicks 重新测量前等待布局稳定的帧数（60 TPS 下约 100ms）
const DefaultSettleTicks = 6

// Rect 浮动元素的位置和尺寸（正方形元素，Size 为边长）
type Rect struct {
	Top, Left, Size float64
}

// AnchorSource 锚点测量端口
//
// origin 为 Hero 中占位元素的视口坐标，dest 为导航栏中占位元素的视口坐标。
// 某个锚点当前不存在（未布局、尺寸为零）时对应的 ok 返回 false。
type AnchorSource interface {
	Measure() (origin Rect, originOK bool, dest Rect, destOK bool)
}

// Interpolate 在两个矩形之间按 progress 线性插值（三个分量相互独立）
func Interpolate(origin, dest Rect, progress float64) Rect {
	return Rect{
		Top:  origin.Top + (dest.Top-origin.Top)*progress,
		Left: origin.Left + (dest.Left-origin.Left)*progress,
		Size: origin.Size + (dest.Size-origin.Size)*progress,
	}
}

// PositionInterpolator 根据滚动进度计算浮动头像的位置
//
// 起点锚点以文档坐标保存（随页面滚动），终点锚点以视口坐标保存（固定导航栏）。
// 每次计算时用当前滚动偏移把起点换算到视口坐标再插值。
type PositionInterpolator struct {
	source      AnchorSource
	settleTicks int
	pending     int // 剩余等待帧数，0 表示没有待执行的测量

	origin    Rect // 文档坐标
	dest      Rect // 视口坐标
	hasOrigin bool
	hasDest   bool

	last Rect
	log  *zap.Logger
}

// NewPositionInterpolator 创建插值器
//
// 参数：
//   - source: 锚点测量端口
//   - settleTicks: 防抖帧数，<=0 时使用 DefaultSettleTicks
//   - log: 日志，可为 nil
func NewPositionInterpolator(source AnchorSource, settleTicks int, log *zap.Logger) *PositionInterpolator {
	if settleTicks <= 0 {
		settleTicks = DefaultSettleTicks
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &PositionInterpolator{
		source:      source,
		settleTicks: settleTicks,
		log:         log.Named("PositionInterpolator"),
	}
}

// RequestRemeasure 请求重新测量锚点
// 在视图就绪和每次窗口尺寸变化时调用；连续请求会重新开始计时
func (pi *PositionInterpolator) RequestRemeasure() {
	pi.pending = pi.settleTicks
}

// Pending 是否有尚未执行的测量
func (pi *PositionInterpolator) Pending() bool {
	return pi.pending > 0
}

// Update 每帧调用，推进防抖计时，到期后执行测量
func (pi *PositionInterpolator) Update(scrollY float64) {
	if pi.pending == 0 {
		return
	}
	pi.pending--
	if pi.pending == 0 {
		pi.Remeasure(scrollY)
	}
}

// Remeasure 立即测量锚点
//
// 无法测量的锚点保留上一次的有效值。
func (pi *PositionInterpolator) Remeasure(scrollY float64) {
	if pi.source == nil {
		return
	}
	origin, originOK, dest, destOK := pi.source.Measure()

	if originOK && validRect(origin) {
		origin.Top += scrollY
		pi.origin = origin
		pi.hasOrigin = true
	} else {
		pi.log.Debug("origin anchor unavailable, keeping last known value")
	}

	if destOK && validRect(dest) {
		pi.dest = dest
		pi.hasDest = true
	} else {
		pi.log.Debug("destination anchor unavailable, keeping last known value")
	}
}

// Anchors 返回当前保存的锚点（起点为文档坐标）
func (pi *PositionInterpolator) Anchors() (origin, dest Rect, ok bool) {
	return pi.origin, pi.dest, pi.hasOrigin && pi.hasDest
}

// At 计算给定进度和滚动偏移下的位置
//
// 两个锚点都至少测量成功一次之前返回 (上一次结果, false)。
func (pi *PositionInterpolator) At(progress, scrollY float64) (Rect, bool) {
	if !pi.hasOrigin || !pi.hasDest {
		return pi.last, false
	}
	if progress < 0 {
		progress = 0
	} else if progress > 1 {
		progress = 1
	}
	adjusted := pi.origin
	adjusted.Top -= scrollY
	pi.last = Interpolate(adjusted, pi.dest, progress)
	return pi.last, true
}

func validRect(r Rect) bool {
	for _, v := range [...]float64{r.Top, r.Left, r.Size} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return r.Size > 0
}
