package config

// 布局配置常量
// 本文件定义了页面各区块的布局参数。
// 所有 Y 坐标分两种：
//   - 文档坐标：相对于页面顶部，随滚动移动（各区块、Hero 头像占位）
//   - 视口坐标：相对于窗口顶部，不随滚动移动（导航栏及其头像占位）
//
// 文档坐标 = 视口坐标 + 滚动偏移量

const (
	// NavbarHeight 固定导航栏高度（视口坐标）
	NavbarHeight = 64.0

	// NavbarLogoLeft 导航栏头像占位的左边距
	NavbarLogoLeft = 24.0

	// ContentMaxWidth 内容区最大宽度，窗口更宽时居中
	ContentMaxWidth = 1100.0

	// ContentPadding 内容区左右最小留白
	ContentPadding = 32.0

	// SectionPaddingY 区块上下留白
	SectionPaddingY = 72.0

	// SectionTitleHeight 区块标题 + 副标题占用的高度
	SectionTitleHeight = 96.0

	// CardGap 卡片之间的间距
	CardGap = 20.0

	// CardPadding 卡片内边距
	CardPadding = 20.0

	// MarqueeHeight 技术跑马灯条带高度
	MarqueeHeight = 56.0

	// MarqueeItemGap 跑马灯条目之间的间距
	MarqueeItemGap = 40.0

	// FooterHeight 页脚高度
	FooterHeight = 72.0

	// HeroMinHeight Hero 区块最小高度（窗口更高时占满首屏）
	HeroMinHeight = 560.0

	// ScrolledNavbarAlpha 导航栏完全不透明时背景的 alpha
	ScrolledNavbarAlpha = 0.92
)

// Font sizes (字号)
const (
	FontSizeHeroTitle = 48.0
	FontSizeTitle     = 32.0
	FontSizeSubtitle  = 18.0
	FontSizeBody      = 16.0
	FontSizeSmall     = 13.0
	FontSizeNav       = 15.0
	FontSizeMarquee   = 20.0
	FontSizeAvatar    = 40.0
)

// ContentColumn 返回给定窗口宽度下内容列的左边界和宽度
//
// 参数：
//   - windowWidth: 窗口宽度（像素）
//
// 返回：
//   - left: 内容列左边界
//   - width: 内容列宽度
func ContentColumn(windowWidth float64) (left, width float64) {
	width = windowWidth - 2*ContentPadding
	if width > ContentMaxWidth {
		width = ContentMaxWidth
	}
	if width < 0 {
		width = 0
	}
	left = (windowWidth - width) / 2
	return left, width
}
