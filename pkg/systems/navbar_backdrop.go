package systems

import "github.com/charmbracelet/harmonica"

// 导航栏背景弹簧参数
const (
	navbarSpringFrequency = 6.0
	navbarSpringDamping   = 1.0 // 临界阻尼，不回弹
)

// NavbarBackdrop 导航栏背景不透明度
//
// 页面滚动超过阈值后导航栏显示半透明背景，未滚动时透明。
// 不透明度由临界阻尼弹簧驱动，两种状态之间平滑过渡。
type NavbarBackdrop struct {
	spring   harmonica.Spring
	opacity  float64
	velocity float64
}

// NewNavbarBackdrop 创建导航栏背景
func NewNavbarBackdrop() *NavbarBackdrop {
	return &NavbarBackdrop{
		spring: harmonica.NewSpring(harmonica.FPS(60), navbarSpringFrequency, navbarSpringDamping),
	}
}

// Update 每帧调用，scrolled 为页面是否已滚动
func (nb *NavbarBackdrop) Update(scrolled bool) {
	target := 0.0
	if scrolled {
		target = 1
	}
	nb.opacity, nb.velocity = nb.spring.Update(nb.opacity, nb.velocity, target)
}

// Opacity 当前不透明度，范围 [0,1]
func (nb *NavbarBackdrop) Opacity() float64 {
	switch {
	case nb.opacity < 0:
		return 0
	case nb.opacity > 1:
		return 1
	}
	return nb.opacity
}
