package scenes

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/portfolio/pkg/config"
	"github.com/decker502/portfolio/pkg/systems"
)

// Draw 渲染整页
//
// 绘制顺序：背景、粒子层、页面内容、跑马灯、导航栏、浮动头像。
func (s *PortfolioScene) Draw(screen *ebiten.Image) {
	ui := s.transition.current()
	screen.Fill(ui.Background)
	if s.layout == nil || s.layout.DocHeight == 0 {
		return
	}

	scrollY := s.scroll.Offset()
	top, bottom := scrollY, scrollY+float64(s.height)
	visible := func(y, h float64) bool {
		return y+h >= top && y <= bottom
	}

	if hero, ok := s.layout.section(sectionHero); ok && visible(hero.Top, hero.Height) {
		s.heroLayer.Draw(screen, 0, hero.Top-scrollY)
	}
	if contact, ok := s.layout.section(sectionContact); ok && visible(contact.Top, contact.Height) {
		s.contactLayer.Draw(screen, 0, contact.Top-scrollY)
	}

	for _, b := range s.layout.Boxes {
		if !visible(b.Y, b.H) {
			continue
		}
		s.fillRect(screen, b.X, b.Y-scrollY, b.W, b.H, roleColor(ui, b.Role))
	}
	for _, t := range s.layout.Texts {
		if !visible(t.Y, lineHeight(t.Size)) {
			continue
		}
		s.drawText(screen, t.Text, t.X, t.Y-scrollY, t.Size, t.Bold, roleColor(ui, t.Role))
	}

	s.drawTypewriter(screen, scrollY, ui.Text, ui.Accent)
	if visible(s.layout.MarqueeTop, config.MarqueeHeight) {
		s.drawMarquee(screen, s.layout.MarqueeTop-scrollY, ui.Surface, ui.Text)
	}
	s.drawNavbar(screen, ui)
	s.drawAvatar(screen, scrollY, ui.Accent, ui.Background)
}

func (s *PortfolioScene) fillRect(dst *ebiten.Image, x, y, w, h float64, clr color.Color) {
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), clr, true)
}

func (s *PortfolioScene) drawText(dst *ebiten.Image, str string, x, y, size float64, bold bool, clr color.Color) {
	if str == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, str, s.fonts.face(size, bold), op)
}

// drawTypewriter 居中绘制打字机文字和闪烁光标
func (s *PortfolioScene) drawTypewriter(dst *ebiten.Image, scrollY float64, textColor, cursorColor color.NRGBA) {
	y := s.layout.TypewriterY - scrollY
	size := config.FontSizeSubtitle
	if y+lineHeight(size) < 0 || y > float64(s.height) {
		return
	}
	str := s.typewriter.Text()
	m := s.measure(size, false)
	w := m(str)
	x := (float64(s.width) - w) / 2
	s.drawText(dst, str, x, y, size, false, textColor)
	if s.typewriter.CursorVisible() {
		s.fillRect(dst, x+w+2, y+size*0.15, 2, size*1.1, cursorColor)
	}
}

// drawMarquee 绘制跑马灯条带，内容重复铺满窗口宽度
func (s *PortfolioScene) drawMarquee(dst *ebiten.Image, y float64, band, fg color.NRGBA) {
	s.fillRect(dst, 0, y, float64(s.width), config.MarqueeHeight, band)
	one := s.layout.MarqueeWidth
	if one <= 0 {
		return
	}
	ty := y + (config.MarqueeHeight-lineHeight(config.FontSizeMarquee))/2
	copies := int(math.Ceil(float64(s.width)/one)) + 1
	if copies < 2 {
		copies = 2
	}
	pos := s.marquee.Position()
	for c := 0; c < copies; c++ {
		base := pos + float64(c)*one
		for _, item := range s.layout.MarqueeItems {
			x := base + item.X
			if x > float64(s.width) {
				break
			}
			s.drawText(dst, item.Text, x, ty, config.FontSizeMarquee, true, fg)
		}
	}
}

// drawNavbar 绘制导航栏背景（随滚动淡入）和右侧按钮
func (s *PortfolioScene) drawNavbar(dst *ebiten.Image, ui config.UIColors) {
	if a := s.backdrop.Opacity() * config.ScrolledNavbarAlpha; a > 0 {
		s.fillRect(dst, 0, 0, float64(s.width), config.NavbarHeight, withAlpha(ui.Surface, a))
	}

	active := s.activeSection()
	for _, l := range s.layout.NavLinks {
		clr := ui.Text
		if l.Target == active {
			clr = ui.Accent
		}
		s.drawLinkLabel(dst, l, clr)
	}
	s.drawLinkLabel(dst, s.layout.ThemeButton, ui.Muted)
	s.drawLinkLabel(dst, s.layout.LangButton, ui.Accent)
}

func (s *PortfolioScene) drawLinkLabel(dst *ebiten.Image, l linkItem, clr color.Color) {
	y := l.Y + (l.H-lineHeight(config.FontSizeNav))/2
	s.drawText(dst, l.Label, l.X+navLinkPadX, y, config.FontSizeNav, false, clr)
}

// activeSection 视口顶部（导航栏下沿）所在的区块
func (s *PortfolioScene) activeSection() sectionID {
	probe := s.scroll.Offset() + config.NavbarHeight + 1
	active := sectionHero
	for _, sec := range s.layout.Sections {
		if sec.Top <= probe {
			active = sec.ID
		}
	}
	return active
}

// drawAvatar 在插值位置绘制圆形头像（首字母）
func (s *PortfolioScene) drawAvatar(dst *ebiten.Image, scrollY float64, fill, fg color.NRGBA) {
	r, ok := s.interpolator.At(s.scroll.Progress(), scrollY)
	if !ok || r.Size <= 0 {
		return
	}
	s.drawAvatarAt(dst, r, fill, fg)
}

func (s *PortfolioScene) drawAvatarAt(dst *ebiten.Image, r systems.Rect, fill, fg color.NRGBA) {
	radius := r.Size / 2
	cx, cy := r.Left+radius, r.Top+radius
	vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(radius), fill, true)

	initials := s.site.Profile.Initials
	if initials == "" {
		return
	}
	// 字号随头像尺寸缩放，取 0.5 的倍数以限制字体缓存
	size := math.Round(config.FontSizeAvatar*r.Size/s.site.Profile.HeroSize*2) / 2
	if size <= 0 {
		return
	}
	w := s.measure(size, true)(initials)
	s.drawText(dst, initials, cx-w/2, cy-lineHeight(size)/2, size, true, fg)
}
