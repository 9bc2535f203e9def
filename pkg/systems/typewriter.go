package systems

// 打字机默认节奏（帧）
const (
	DefaultTypeTicks   = 6
	DefaultDeleteTicks = 3
	DefaultHoldTicks   = 120
	DefaultBlinkPeriod = 0.5 // 光标闪烁间隔（秒）
)

type typewriterPhase int

const (
	phaseTyping typewriterPhase = iota
	phaseHolding
	phaseDeleting
)

// Typewriter Hero 标语的打字机效果
//
// 逐字输入一条标语，停留 holdTicks 帧，再逐字删除，然后切换到下一条，循环往复。
// 光标按 blinkPeriod 秒闪烁，与打字节奏无关。
type Typewriter struct {
	phrases []string
	index   int
	shown   int // 已显示的字符数（rune）

	phase typewriterPhase
	ticks int

	typeTicks   int
	deleteTicks int
	holdTicks   int

	blinkPeriod   float64
	blinkTimer    float64
	cursorVisible bool
}

// NewTypewriter 创建打字机，非正参数使用默认值
func NewTypewriter(phrases []string, typeTicks, deleteTicks, holdTicks int, blinkPeriod float64) *Typewriter {
	if typeTicks <= 0 {
		typeTicks = DefaultTypeTicks
	}
	if deleteTicks <= 0 {
		deleteTicks = DefaultDeleteTicks
	}
	if holdTicks < 0 {
		holdTicks = DefaultHoldTicks
	}
	if blinkPeriod <= 0 {
		blinkPeriod = DefaultBlinkPeriod
	}
	tw := &Typewriter{
		typeTicks:     typeTicks,
		deleteTicks:   deleteTicks,
		holdTicks:     holdTicks,
		blinkPeriod:   blinkPeriod,
		cursorVisible: true,
	}
	tw.SetPhrases(phrases)
	return tw
}

// SetPhrases 替换标语列表（切换语言时调用），从第一条重新开始
func (tw *Typewriter) SetPhrases(phrases []string) {
	tw.phrases = make([]string, 0, len(phrases))
	for _, p := range phrases {
		if p != "" {
			tw.phrases = append(tw.phrases, p)
		}
	}
	tw.index = 0
	tw.shown = 0
	tw.phase = phaseTyping
	tw.ticks = 0
}

// Update 推进一帧
func (tw *Typewriter) Update(deltaTime float64) {
	tw.updateCursorBlink(deltaTime)

	if len(tw.phrases) == 0 {
		return
	}
	tw.ticks++

	current := []rune(tw.phrases[tw.index])
	switch tw.phase {
	case phaseTyping:
		if tw.ticks < tw.typeTicks {
			return
		}
		tw.ticks = 0
		if tw.shown < len(current) {
			tw.shown++
		}
		if tw.shown >= len(current) {
			tw.phase = phaseHolding
		}

	case phaseHolding:
		if tw.ticks < tw.holdTicks {
			return
		}
		tw.ticks = 0
		tw.phase = phaseDeleting

	case phaseDeleting:
		if tw.ticks < tw.deleteTicks {
			return
		}
		tw.ticks = 0
		if tw.shown > 0 {
			tw.shown--
		}
		if tw.shown == 0 {
			tw.index = (tw.index + 1) % len(tw.phrases)
			tw.phase = phaseTyping
		}
	}
}

func (tw *Typewriter) updateCursorBlink(deltaTime float64) {
	tw.blinkTimer += deltaTime
	for tw.blinkTimer >= tw.blinkPeriod {
		tw.blinkTimer -= tw.blinkPeriod
		tw.cursorVisible = !tw.cursorVisible
	}
}

// Text 当前显示的文字
func (tw *Typewriter) Text() string {
	if len(tw.phrases) == 0 {
		return ""
	}
	return string([]rune(tw.phrases[tw.index])[:tw.shown])
}

// CursorVisible 光标是否可见
func (tw *Typewriter) CursorVisible() bool {
	return tw.cursorVisible
}

// PhraseIndex 当前标语序号
func (tw *Typewriter) PhraseIndex() int {
	return tw.index
}
