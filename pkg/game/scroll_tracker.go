package game

// 滚动跟踪默认值
const (
	// DefaultScrollThreshold 头像从 Hero 移动到导航栏所需的滚动距离（像素）
	DefaultScrollThreshold = 300.0
	// DefaultScrolledOffset 导航栏切换为"已滚动"样式的偏移量
	DefaultScrolledOffset = 50.0
)

// ScrollProgress 把滚动偏移映射为 [0,1] 的进度
//
// threshold <= 0 时视为已完成（返回 1），避免除零。
func ScrollProgress(offset, threshold float64) float64 {
	if threshold <= 0 {
		return 1
	}
	p := offset / threshold
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// ScrollTracker 记录文档滚动偏移并派生动画进度
//
// SetOffset 只做赋值，不会阻塞滚动；进度在读取时计算。
// 场景每帧读取进度，因此不提供订阅。
type ScrollTracker struct {
	threshold      float64
	scrolledOffset float64
	offset         float64
}

// NewScrollTracker 创建滚动跟踪器
//
// 参数：
//   - threshold: 动画完成所需的滚动距离，<=0 时使用 DefaultScrollThreshold
//   - scrolledOffset: 导航栏"已滚动"阈值，<=0 时使用 DefaultScrolledOffset
func NewScrollTracker(threshold, scrolledOffset float64) *ScrollTracker {
	if threshold <= 0 {
		threshold = DefaultScrollThreshold
	}
	if scrolledOffset <= 0 {
		scrolledOffset = DefaultScrolledOffset
	}
	return &ScrollTracker{threshold: threshold, scrolledOffset: scrolledOffset}
}

// SetOffset 更新滚动偏移（负值按 0 处理）
func (st *ScrollTracker) SetOffset(y float64) {
	if y < 0 {
		y = 0
	}
	st.offset = y
}

// Offset 返回当前滚动偏移
func (st *ScrollTracker) Offset() float64 {
	return st.offset
}

// Threshold 返回动画阈值
func (st *ScrollTracker) Threshold() float64 {
	return st.threshold
}

// Progress 返回 [0,1] 的动画进度
func (st *ScrollTracker) Progress() float64 {
	return ScrollProgress(st.offset, st.threshold)
}

// IsAnimating 进度是否处于 (0,1) 之间
func (st *ScrollTracker) IsAnimating() bool {
	p := st.Progress()
	return p > 0 && p < 1
}

// ReachedEnd 进度是否已到 1
func (st *ScrollTracker) ReachedEnd() bool {
	return st.Progress() >= 1
}

// IsScrolled 导航栏是否应显示为"已滚动"
func (st *ScrollTracker) IsScrolled() bool {
	return st.offset > st.scrolledOffset
}
