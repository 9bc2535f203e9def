package scenes

import (
	"fmt"
	"math"
	"strings"

	"github.com/decker502/portfolio/pkg/config"
	"github.com/decker502/portfolio/pkg/game"
	"github.com/decker502/portfolio/pkg/systems"
	"github.com/decker502/portfolio/pkg/utils"
)

// sectionID 页面区块
type sectionID int

const (
	sectionHero sectionID = iota
	sectionTech
	sectionProjects
	sectionExperience
	sectionCredentials
	sectionContact
	sectionFooter
)

// colorRole 绘制时按当前主题解析的颜色
type colorRole int

const (
	roleText colorRole = iota
	roleMuted
	roleAccent
	roleSurface
	roleOnAccent
)

// rect 轴对齐矩形
type rect struct {
	X, Y, W, H float64
}

func (r rect) contains(x, y float64) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

// textItem 一行文字，Y 为文档坐标下的行顶
type textItem struct {
	X, Y float64
	Text string
	Size float64
	Bold bool
	Role colorRole
}

// boxItem 填充矩形（卡片、按钮背景），文档坐标
type boxItem struct {
	rect
	Role colorRole
}

// linkItem 可点击区域，点击后滚动到 Target；URL 非空时改为在浏览器中打开
type linkItem struct {
	rect
	Label  string
	Target sectionID
	URL    string
}

// sectionBox 区块在文档中的范围
type sectionBox struct {
	ID     sectionID
	Top    float64
	Height float64
}

// marqueeItem 跑马灯条目，X 相对于单份内容起点
type marqueeItem struct {
	Text string
	X    float64
}

// pageLayout 一次布局的结果
//
// 文档坐标的内容随滚动移动，导航栏（nav*）使用视口坐标。
type pageLayout struct {
	Width, Height float64 // 视口尺寸
	DocHeight     float64

	Sections []sectionBox
	Texts    []textItem
	Boxes    []boxItem
	Buttons  []linkItem // 文档坐标

	NavLinks    []linkItem // 视口坐标
	ThemeButton linkItem
	LangButton  linkItem

	HeroAnchor systems.Rect // 文档坐标
	NavAnchor  systems.Rect // 视口坐标

	TypewriterY float64

	MarqueeTop   float64
	MarqueeItems []marqueeItem
	MarqueeWidth float64 // 单份内容宽度
}

// section 返回区块范围
func (l *pageLayout) section(id sectionID) (sectionBox, bool) {
	for _, s := range l.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return sectionBox{}, false
}

// MaxScroll 最大滚动偏移
func (l *pageLayout) MaxScroll() float64 {
	return math.Max(0, l.DocHeight-l.Height)
}

// layoutInput 布局参数
type layoutInput struct {
	Width, Height float64
	Strings       *game.SiteStrings
	Profile       config.ProfileConfig
	Language      game.Language
	ThemeLabel    string
	Year          int
	Measure       Measurer
}

const (
	lineSpacing   = 1.4
	buttonPadX    = 20.0
	buttonHeight  = 44.0
	navLinkPadX   = 12.0
	navLinkHeight = 36.0
	heroGap       = 24.0
)

func lineHeight(size float64) float64 {
	return size * lineSpacing
}

// columnsFor 根据内容宽度决定卡片列数
func columnsFor(width float64, maxCols int) int {
	cols := 1
	switch {
	case width >= 960:
		cols = 3
	case width >= 640:
		cols = 2
	}
	if cols > maxCols {
		cols = maxCols
	}
	return cols
}

// cardLine 卡片中的一段文字（会自动换行），URL 非空时整段可点击
type cardLine struct {
	Text string
	Size float64
	Bold bool
	Role colorRole
	URL  string
}

// buttonSpec 一个按钮：滚动到 target 或打开 url
type buttonSpec struct {
	label  string
	target sectionID
	url    string
	fill   colorRole
	text   colorRole
}

type layoutBuilder struct {
	in     layoutInput
	out    *pageLayout
	left   float64 // 内容列
	column float64
	y      float64
}

// buildLayout 计算整页布局
func buildLayout(in layoutInput) *pageLayout {
	out := &pageLayout{Width: in.Width, Height: in.Height}
	if in.Strings == nil || in.Measure == nil || in.Width <= 0 || in.Height <= 0 {
		return out
	}
	left, column := config.ContentColumn(in.Width)
	b := &layoutBuilder{in: in, out: out, left: left, column: column}

	b.navbar()
	b.hero()
	b.tech()
	b.projects()
	b.experience()
	b.credentials()
	b.contact()
	b.footer()

	out.DocHeight = b.y
	return out
}

func (b *layoutBuilder) measure(s string, size float64, bold bool) float64 {
	return b.in.Measure(size, bold)(s)
}

// beginSection 开始新区块；endSection 结束并记录高度
func (b *layoutBuilder) beginSection() float64 {
	start := b.y
	b.y += config.SectionPaddingY
	return start
}

func (b *layoutBuilder) endSection(id sectionID, start float64) {
	b.y += config.SectionPaddingY
	b.out.Sections = append(b.out.Sections, sectionBox{ID: id, Top: start, Height: b.y - start})
}

// centered 添加一段水平居中的文字（自动换行）
func (b *layoutBuilder) centered(s string, size float64, bold bool, role colorRole) {
	if s == "" {
		return
	}
	m := b.in.Measure(size, bold)
	for _, line := range utils.WrapWords(s, b.column, m) {
		b.out.Texts = append(b.out.Texts, textItem{
			X:    b.left + (b.column-m(line))/2,
			Y:    b.y,
			Text: line,
			Size: size,
			Bold: bold,
			Role: role,
		})
		b.y += lineHeight(size)
	}
}

// header 区块标题 + 副标题
func (b *layoutBuilder) header(title, subtitle string) {
	b.centered(title, config.FontSizeTitle, true, roleText)
	b.y += 8
	b.centered(subtitle, config.FontSizeSubtitle, false, roleMuted)
	b.y += 32
}

// heading 左对齐的小标题
func (b *layoutBuilder) heading(s string) {
	if s == "" {
		return
	}
	b.out.Texts = append(b.out.Texts, textItem{
		X: b.left, Y: b.y, Text: s, Size: config.FontSizeSubtitle, Bold: true, Role: roleText,
	})
	b.y += lineHeight(config.FontSizeSubtitle) + 12
}

// cards 以网格排列卡片，每行高度取该行最高的卡片
func (b *layoutBuilder) cards(cards [][]cardLine, maxCols int) {
	if len(cards) == 0 {
		return
	}
	cols := columnsFor(b.column, maxCols)
	cardW := (b.column - float64(cols-1)*config.CardGap) / float64(cols)
	innerW := cardW - 2*config.CardPadding

	type placedCard struct {
		x     float64
		items []textItem
		links []linkItem
	}
	for row := 0; row*cols < len(cards); row++ {
		rowH := 0.0
		var placed []placedCard
		for col := 0; col < cols; col++ {
			i := row*cols + col
			if i >= len(cards) {
				break
			}
			x := b.left + float64(col)*(cardW+config.CardGap)
			y := b.y + config.CardPadding
			var items []textItem
			var links []linkItem
			for j, cl := range cards[i] {
				if cl.Text == "" {
					continue
				}
				if j > 0 {
					y += 4
				}
				top, widest := y, 0.0
				m := b.in.Measure(cl.Size, cl.Bold)
				for _, line := range utils.WrapWords(cl.Text, innerW, m) {
					items = append(items, textItem{
						X: x + config.CardPadding, Y: y, Text: line, Size: cl.Size, Bold: cl.Bold, Role: cl.Role,
					})
					widest = math.Max(widest, m(line))
					y += lineHeight(cl.Size)
				}
				if cl.URL != "" {
					links = append(links, linkItem{
						rect:  rect{X: x + config.CardPadding, Y: top, W: math.Min(widest, innerW), H: y - top},
						Label: cl.Text,
						URL:   cl.URL,
					})
				}
			}
			h := y + config.CardPadding - b.y
			rowH = math.Max(rowH, h)
			placed = append(placed, placedCard{x: x, items: items, links: links})
		}
		for _, p := range placed {
			b.out.Boxes = append(b.out.Boxes, boxItem{rect: rect{X: p.x, Y: b.y, W: cardW, H: rowH}, Role: roleSurface})
			b.out.Texts = append(b.out.Texts, p.items...)
			b.out.Buttons = append(b.out.Buttons, p.links...)
		}
		b.y += rowH + config.CardGap
	}
	b.y -= config.CardGap
}

// navbar 导航栏（视口坐标）：左侧头像占位，右侧链接、主题和语言按钮
func (b *layoutBuilder) navbar() {
	s := b.in.Strings.Navbar
	size := b.in.Profile.NavbarSize
	b.out.NavAnchor = systems.Rect{
		Top:  (config.NavbarHeight - size) / 2,
		Left: config.NavbarLogoLeft,
		Size: size,
	}

	y := (config.NavbarHeight - navLinkHeight) / 2
	x := b.in.Width - config.NavbarLogoLeft
	place := func(label string, target sectionID) linkItem {
		w := b.measure(label, config.FontSizeNav, false) + 2*navLinkPadX
		x -= w
		item := linkItem{rect: rect{X: x, Y: y, W: w, H: navLinkHeight}, Label: label, Target: target}
		x -= 4
		return item
	}

	b.out.LangButton = place(strings.ToUpper(string(b.in.Language)), sectionHero)
	b.out.ThemeButton = place(b.in.ThemeLabel, sectionHero)

	links := []struct {
		label  string
		target sectionID
	}{
		{s.Home, sectionHero},
		{s.Technologies, sectionTech},
		{s.Projects, sectionProjects},
		{s.Experience, sectionExperience},
		{s.Credentials, sectionCredentials},
		{s.Contact, sectionContact},
	}
	var nav []linkItem
	for i := len(links) - 1; i >= 0; i-- {
		nav = append(nav, place(links[i].label, links[i].target))
	}
	// 空间不足时只保留主题和语言按钮
	if x < config.NavbarLogoLeft+size+heroGap {
		return
	}
	for i := len(nav) - 1; i >= 0; i-- {
		b.out.NavLinks = append(b.out.NavLinks, nav[i])
	}
}

func (b *layoutBuilder) hero() {
	s := b.in.Strings.Hero
	p := b.in.Profile
	height := math.Max(config.HeroMinHeight, b.in.Height)

	block := p.HeroSize + heroGap +
		lineHeight(config.FontSizeHeroTitle) +
		lineHeight(config.FontSizeSubtitle) +
		lineHeight(config.FontSizeSubtitle) + heroGap +
		buttonHeight
	offset := math.Max(heroGap, (height-config.NavbarHeight-block)/2)

	b.y = config.NavbarHeight + offset
	b.out.HeroAnchor = systems.Rect{Top: b.y, Left: (b.in.Width - p.HeroSize) / 2, Size: p.HeroSize}
	b.y += p.HeroSize + heroGap

	b.centered(p.Name, config.FontSizeHeroTitle, true, roleText)
	b.centered(s.Subtitle, config.FontSizeSubtitle, false, roleAccent)
	b.out.TypewriterY = b.y
	b.y += lineHeight(config.FontSizeSubtitle) + heroGap

	b.buttonRow([]buttonSpec{
		{label: s.Contact, target: sectionContact, fill: roleAccent, text: roleOnAccent},
		{label: s.ViewProjects, target: sectionProjects, fill: roleSurface, text: roleText},
	})

	b.y = math.Max(b.y+buttonHeight+heroGap, height)
	b.out.Sections = append(b.out.Sections, sectionBox{ID: sectionHero, Top: 0, Height: b.y})
}

// buttonRow 在当前行水平居中排列按钮，不移动 b.y
func (b *layoutBuilder) buttonRow(buttons []buttonSpec) {
	if len(buttons) == 0 {
		return
	}
	widths := make([]float64, len(buttons))
	total := float64(len(buttons)-1) * heroGap
	for i, btn := range buttons {
		widths[i] = b.measure(btn.label, config.FontSizeBody, true) + 2*buttonPadX
		total += widths[i]
	}
	x := (b.in.Width - total) / 2
	for i, btn := range buttons {
		r := rect{X: x, Y: b.y, W: widths[i], H: buttonHeight}
		b.out.Boxes = append(b.out.Boxes, boxItem{rect: r, Role: btn.fill})
		b.out.Texts = append(b.out.Texts, textItem{
			X:    x + buttonPadX,
			Y:    b.y + (buttonHeight-lineHeight(config.FontSizeBody))/2,
			Text: btn.label,
			Size: config.FontSizeBody,
			Bold: true,
			Role: btn.text,
		})
		b.out.Buttons = append(b.out.Buttons, linkItem{rect: r, Label: btn.label, Target: btn.target, URL: btn.url})
		x += widths[i] + heroGap
	}
}

func (b *layoutBuilder) tech() {
	s := b.in.Strings.Tech
	start := b.beginSection()
	b.header(s.Title, s.Subtitle)

	// 跑马灯横跨整个窗口
	b.out.MarqueeTop = b.y
	x := 0.0
	for _, item := range s.Marquee {
		b.out.MarqueeItems = append(b.out.MarqueeItems, marqueeItem{Text: item, X: x})
		x += b.measure(item, config.FontSizeMarquee, true) + config.MarqueeItemGap
	}
	b.out.MarqueeWidth = x
	b.y += config.MarqueeHeight + 40

	var cards [][]cardLine
	for _, cat := range s.Categories {
		lines := []cardLine{{Text: cat.Title, Size: config.FontSizeSubtitle, Bold: true, Role: roleAccent}}
		for _, g := range cat.Items {
			lines = append(lines,
				cardLine{Text: g.Label, Size: config.FontSizeSmall, Bold: true, Role: roleText},
				cardLine{Text: strings.Join(g.Techs, " · "), Size: config.FontSizeSmall, Role: roleMuted},
			)
		}
		cards = append(cards, lines)
	}
	b.cards(cards, 3)

	if len(s.Strengths.Items) > 0 {
		b.y += 40
		b.heading(s.Strengths.Title)
		cards = cards[:0]
		for _, st := range s.Strengths.Items {
			cards = append(cards, []cardLine{
				{Text: st.Title, Size: config.FontSizeBody, Bold: true, Role: roleText},
				{Text: st.Description, Size: config.FontSizeSmall, Role: roleMuted},
			})
		}
		b.cards(cards, 3)
	}
	b.endSection(sectionTech, start)
}

func (b *layoutBuilder) projects() {
	s := b.in.Strings.Projects
	start := b.beginSection()
	b.header(s.Title, s.Subtitle)
	var cards [][]cardLine
	for _, p := range s.Items {
		cards = append(cards, []cardLine{
			{Text: p.Category, Size: config.FontSizeSmall, Bold: true, Role: roleAccent},
			{Text: p.Title, Size: config.FontSizeSubtitle, Bold: true, Role: roleText},
			{Text: p.Description, Size: config.FontSizeBody, Role: roleMuted},
		})
	}
	b.cards(cards, 3)
	b.endSection(sectionProjects, start)
}

func (b *layoutBuilder) experience() {
	s := b.in.Strings.Experience
	start := b.beginSection()
	b.header(s.Title, s.Subtitle)
	var cards [][]cardLine
	for _, e := range s.Items {
		cards = append(cards, []cardLine{
			{Text: e.Period, Size: config.FontSizeSmall, Bold: true, Role: roleAccent},
			{Text: e.Role, Size: config.FontSizeSubtitle, Bold: true, Role: roleText},
			{Text: e.Company, Size: config.FontSizeBody, Role: roleText},
			{Text: e.Description, Size: config.FontSizeBody, Role: roleMuted},
		})
	}
	b.cards(cards, 1)
	b.endSection(sectionExperience, start)
}

func (b *layoutBuilder) credentials() {
	s := b.in.Strings.Credentials
	start := b.beginSection()
	b.header(s.Title, s.Subtitle)

	if len(s.Education.Items) > 0 {
		b.heading(s.Education.Title)
		var cards [][]cardLine
		for _, e := range s.Education.Items {
			cards = append(cards, []cardLine{
				{Text: e.Degree, Size: config.FontSizeBody, Bold: true, Role: roleText},
				{Text: e.Institution, Size: config.FontSizeSmall, Role: roleMuted},
			})
		}
		b.cards(cards, 2)
		b.y += 40
	}
	if len(s.Certifications.Items) > 0 {
		b.heading(s.Certifications.Title)
		var cards [][]cardLine
		for _, c := range s.Certifications.Items {
			cards = append(cards, []cardLine{
				{Text: c.Name, Size: config.FontSizeBody, Bold: true, Role: roleText},
				{Text: c.Issuer, Size: config.FontSizeSmall, Role: roleMuted},
				{Text: c.Link, Size: config.FontSizeSmall, Role: roleAccent, URL: c.Link},
			})
		}
		b.cards(cards, 2)
	}
	b.endSection(sectionCredentials, start)
}

func (b *layoutBuilder) contact() {
	s := b.in.Strings.Contact
	start := b.beginSection()
	b.header(s.Title, s.Subtitle)
	b.cards([][]cardLine{
		{
			{Text: s.AboutMeTitle, Size: config.FontSizeSubtitle, Bold: true, Role: roleText},
			{Text: s.AboutMeText, Size: config.FontSizeBody, Role: roleMuted},
		},
		{
			{Text: s.InfoTitle, Size: config.FontSizeSubtitle, Bold: true, Role: roleText},
			{Text: s.InfoText, Size: config.FontSizeBody, Role: roleMuted},
		},
	}, 2)
	var buttons []buttonSpec
	if email := b.in.Profile.Email; email != "" {
		buttons = append(buttons, buttonSpec{
			label: orDefault(s.SendEmail, email), url: "mailto:" + email, fill: roleAccent, text: roleOnAccent,
		})
	}
	if url := whatsappURL(b.in.Profile.Whatsapp); url != "" {
		buttons = append(buttons, buttonSpec{
			label: orDefault(s.Whatsapp, "WhatsApp"), url: url, fill: roleSurface, text: roleText,
		})
	}
	if len(buttons) > 0 {
		b.y += 32
		b.centered(b.in.Profile.Email, config.FontSizeSmall, false, roleMuted)
		b.y += 12
		b.buttonRow(buttons)
		b.y += buttonHeight
	}
	b.endSection(sectionContact, start)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// whatsappURL 生成 wa.me 链接，号码中的非数字字符被忽略
func whatsappURL(number string) string {
	var digits strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return ""
	}
	return "https://wa.me/" + digits.String()
}

func (b *layoutBuilder) footer() {
	start := b.y
	line := fmt.Sprintf("© %d %s. %s", b.in.Year, b.in.Profile.Name, b.in.Strings.Footer.Copyright)
	b.y += (config.FooterHeight - lineHeight(config.FontSizeSmall)) / 2
	b.centered(strings.TrimSpace(line), config.FontSizeSmall, false, roleMuted)
	b.y = start + config.FooterHeight
	b.out.Sections = append(b.out.Sections, sectionBox{ID: sectionFooter, Top: start, Height: config.FooterHeight})
}
