package utils

import "math"

// 缓动与插值
//
// 缓动函数接受进度 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
// 参考：https://easings.net/

// EaseOutCubic 三次方缓出，开始快、结束慢（导航平滑滚动使用）
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutCubic 三次方缓入缓出
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Lerp 线性插值，t=0 返回 a，t=1 返回 b（t 不做限制）
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp 把 v 限制在 [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 把 v 限制在 [0, 1]
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Tween 固定帧数的补间动画
//
// 每次 Step 前进一帧，Value 返回经过缓动后的当前值。
// 用于点击导航链接后的平滑滚动。
type Tween struct {
	from, to float64
	ticks    int
	elapsed  int
	ease     func(float64) float64
}

// NewTween 创建补间
//
// 参数：
//   - from, to: 起止值
//   - ticks: 持续帧数，<=0 时立即完成
//   - ease: 缓动函数，nil 表示线性
func NewTween(from, to float64, ticks int, ease func(float64) float64) *Tween {
	if ease == nil {
		ease = func(t float64) float64 { return t }
	}
	return &Tween{from: from, to: to, ticks: ticks, ease: ease}
}

// Step 前进一帧并返回当前值
func (tw *Tween) Step() float64 {
	if tw.elapsed < tw.ticks {
		tw.elapsed++
	}
	return tw.Value()
}

// Value 返回当前值
func (tw *Tween) Value() float64 {
	if tw.Done() {
		return tw.to
	}
	return Lerp(tw.from, tw.to, tw.ease(float64(tw.elapsed)/float64(tw.ticks)))
}

// Done 补间是否完成
func (tw *Tween) Done() bool {
	return tw.elapsed >= tw.ticks
}

// Target 返回终点值
func (tw *Tween) Target() float64 {
	return tw.to
}
