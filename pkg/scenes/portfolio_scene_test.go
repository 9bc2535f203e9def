package scenes

import (
	"errors"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/portfolio/pkg/game"
	"github.com/decker502/portfolio/pkg/systems"
	"github.com/decker502/portfolio/pkg/utils"
)

// scriptedInput feeds queued frames to the scene, then idle frames.
type scriptedInput struct {
	frames  []frameInput
	cursors []ebiten.CursorShapeType
}

func (si *scriptedInput) push(frames ...frameInput) {
	si.frames = append(si.frames, frames...)
}

func (si *scriptedInput) platform() platform {
	return platform{
		readInput: func() frameInput {
			if len(si.frames) == 0 {
				return frameInput{}
			}
			f := si.frames[0]
			si.frames = si.frames[1:]
			return f
		},
		setCursor: func(c ebiten.CursorShapeType) { si.cursors = append(si.cursors, c) },
	}
}

type sceneFixture struct {
	scene    *PortfolioScene
	theme    *game.ThemeManager
	language *game.LanguageManager
	input    *scriptedInput
}

func newSceneFixture(t *testing.T) *sceneFixture {
	t.Helper()
	site := loadTestSite(t)
	theme := game.NewThemeManager(game.ThemeManagerConfig{
		Storage:  game.NewMemoryStorage(),
		Detector: game.StaticDetector(false),
	})
	language, err := game.NewLanguageManager(game.LanguageManagerConfig{
		Storage: game.NewMemoryStorage(),
		Catalog: loadTestCatalog(t),
	})
	require.NoError(t, err)

	scene, err := NewPortfolioScene(PortfolioSceneConfig{Site: site, Theme: theme, Language: language})
	require.NoError(t, err)
	input := &scriptedInput{}
	scene.platform = input.platform()

	sm := game.NewSceneManager(nil)
	sm.SwitchTo(scene)
	sm.Resize(1280, 800)
	t.Cleanup(sm.Stop)

	return &sceneFixture{scene: scene, theme: theme, language: language, input: input}
}

func (f *sceneFixture) run(ticks int) {
	for i := 0; i < ticks; i++ {
		f.scene.Update(1.0 / 60)
	}
}

func (f *sceneFixture) key(k ebiten.Key) {
	f.input.push(frameInput{Keys: []ebiten.Key{k}})
	f.run(1)
}

func center(r rect) (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

func pointerAt(x, y float64, pressed, justPressed bool) utils.PointerState {
	return utils.PointerState{X: x, Y: y, Pressed: pressed, JustPressed: justPressed}
}

func touchAt(x, y float64, pressed, justPressed, justReleased bool) frameInput {
	return frameInput{Pointer: utils.PointerState{
		X: x, Y: y, Pressed: pressed, JustPressed: justPressed, JustReleased: justReleased, Touch: true,
	}}
}

// sectionScroll is the offset a navigation to id ends at.
func sectionScroll(t *testing.T, s *PortfolioScene, id sectionID) float64 {
	t.Helper()
	sec, ok := s.layout.section(id)
	require.True(t, ok)
	if sec.Top > s.layout.MaxScroll() {
		return s.layout.MaxScroll()
	}
	return sec.Top
}

func TestPortfolioScene_RequiresDependencies(t *testing.T) {
	_, err := NewPortfolioScene(PortfolioSceneConfig{})
	assert.Error(t, err)
}

func TestPortfolioScene_StartStop(t *testing.T) {
	f := newSceneFixture(t)
	s := f.scene

	require.True(t, s.Running())
	assert.True(t, s.heroLayer.Running())
	assert.True(t, s.contactLayer.Running())
	assert.True(t, s.marquee.Running())

	s.Stop()
	assert.False(t, s.Running())
	assert.False(t, s.heroLayer.Running())
	assert.False(t, s.contactLayer.Running())
	assert.False(t, s.marquee.Running())

	// no longer subscribed
	f.theme.ToggleTheme()
	assert.True(t, s.transition.done())
	phrase := s.typewriter.PhraseIndex()
	f.language.Cycle()
	assert.Equal(t, "CA", s.layout.LangButton.Label)
	assert.Equal(t, phrase, s.typewriter.PhraseIndex())

	// restart resubscribes
	s.Start()
	f.language.Cycle()
	assert.Equal(t, "EN", s.layout.LangButton.Label)
}

func TestPortfolioScene_WheelScrollIsClamped(t *testing.T) {
	f := newSceneFixture(t)
	s := f.scene

	f.input.push(frameInput{WheelY: 1})
	f.run(1)
	assert.Equal(t, s.site.Scroll.WheelStep, s.ScrollOffset())

	f.input.push(frameInput{WheelY: 100000})
	f.run(1)
	assert.Equal(t, s.layout.MaxScroll(), s.ScrollOffset())

	f.input.push(frameInput{WheelY: -100000})
	f.run(1)
	assert.Equal(t, 0.0, s.ScrollOffset())
}

func TestPortfolioScene_KeyboardNavigation(t *testing.T) {
	f := newSceneFixture(t)
	s := f.scene

	f.key(ebiten.KeyEnd)
	f.run(s.site.Scroll.NavigateTicks)
	assert.Equal(t, s.layout.MaxScroll(), s.ScrollOffset())

	f.key(ebiten.KeyHome)
	f.run(s.site.Scroll.NavigateTicks)
	assert.Equal(t, 0.0, s.ScrollOffset())

	f.key(ebiten.KeyArrowDown)
	assert.Equal(t, s.site.Scroll.WheelStep, s.ScrollOffset())

	f.key(ebiten.KeyPageDown)
	f.run(s.site.Scroll.NavigateTicks)
	assert.InDelta(t, s.site.Scroll.WheelStep+800-64, s.ScrollOffset(), 1e-9)
}

func TestPortfolioScene_ManualScrollCancelsNavigation(t *testing.T) {
	f := newSceneFixture(t)
	s := f.scene

	f.key(ebiten.KeyEnd)
	f.run(3)
	f.input.push(frameInput{WheelY: -100000})
	f.run(s.site.Scroll.NavigateTicks)
	assert.Equal(t, 0.0, s.ScrollOffset())
}

func TestPortfolioScene_ThemeAndLanguageKeys(t *testing.T) {
	f := newSceneFixture(t)
	s := f.scene
	require.Equal(t, game.ThemeLight, f.theme.Resolved())

	f.key(ebiten.KeyT)
	assert.Equal(t, game.ThemeDark, f.theme.Resolved())
	assert.False(t, s.transition.done())
	f.run(themeTransitionTicks)
	assert.True(t, s.transition.done())
	assert.Equal(t, s.colors.Dark, s.transition.current())

	f.key(ebiten.KeyL)
	assert.Equal(t, game.LanguageSpanish, f.language.Language())
	require.NotEmpty(t, s.layout.NavLinks)
	assert.Equal(t, "Inicio", s.layout.NavLinks[0].Label)
	assert.Equal(t, "ES", s.layout.LangButton.Label)
	assert.Equal(t, 0, s.typewriter.PhraseIndex())
}

func TestPortfolioScene_EscapeRequestsQuit(t *testing.T) {
	f := newSceneFixture(t)
	assert.False(t, f.scene.QuitRequested())
	f.key(ebiten.KeyEscape)
	assert.True(t, f.scene.QuitRequested())
}

func TestPortfolioScene_NavLinkClickScrollsToSection(t *testing.T) {
	f := newSceneFixture(t)
	s := f.scene

	var link *linkItem
	for i := range s.layout.NavLinks {
		if s.layout.NavLinks[i].Target == sectionProjects {
			link = &s.layout.NavLinks[i]
		}
	}
	require.NotNil(t, link)

	x, y := center(link.rect)
	f.input.push(frameInput{Pointer: pointerAt(x, y, true, true)})
	f.run(s.site.Scroll.NavigateTicks + 1)

	assert.InDelta(t, sectionScroll(t, s, sectionProjects), s.ScrollOffset(), 1e-9)
	assert.Contains(t, f.input.cursors, ebiten.CursorShapePointer)
}

// urlRecorder captures links handed to the browser.
type urlRecorder struct {
	opened []string
	err    error
}

func (r *urlRecorder) open(url string) error {
	r.opened = append(r.opened, url)
	return r.err
}

// clickExternal scrolls the link with the given URL prefix into view and clicks it.
func clickExternal(t *testing.T, f *sceneFixture, prefix string) linkItem {
	t.Helper()
	s := f.scene
	var link linkItem
	for _, b := range s.layout.Buttons {
		if strings.HasPrefix(b.URL, prefix) {
			link = b
		}
	}
	require.NotEmpty(t, link.URL, prefix)

	s.scrollBy(link.Y - 300 - s.ScrollOffset())
	x, y := center(link.rect)
	f.input.push(
		frameInput{Pointer: pointerAt(x, y-s.ScrollOffset(), true, true)},
		frameInput{Pointer: pointerAt(x, y-s.ScrollOffset(), false, false)},
	)
	f.run(2)
	return link
}

func TestPortfolioScene_ExternalLinkOpensBrowser(t *testing.T) {
	f := newSceneFixture(t)
	rec := &urlRecorder{}
	f.scene.platform.openURL = rec.open

	mail := clickExternal(t, f, "mailto:")
	// 指针仍停在按钮上
	require.NotEmpty(t, f.input.cursors)
	assert.Equal(t, ebiten.CursorShapePointer, f.input.cursors[len(f.input.cursors)-1])
	cert := clickExternal(t, f, "https://verify.")

	assert.Equal(t, []string{mail.URL, cert.URL}, rec.opened)
	assert.Equal(t, "mailto:hello@example.com", mail.URL)
}

func TestPortfolioScene_ExternalLinkErrorKeepsScroll(t *testing.T) {
	f := newSceneFixture(t)
	rec := &urlRecorder{err: errors.New("no browser")}
	f.scene.platform.openURL = rec.open

	clickExternal(t, f, "https://wa.me/")
	offset := f.scene.ScrollOffset()
	f.run(f.scene.site.Scroll.NavigateTicks)

	assert.Len(t, rec.opened, 1)
	assert.Equal(t, offset, f.scene.ScrollOffset(), "an external link never navigates the page")
}

func TestPortfolioScene_TouchTapAndDrag(t *testing.T) {
	f := newSceneFixture(t)
	s := f.scene

	var button linkItem
	for _, b := range s.layout.Buttons {
		if b.Target == sectionProjects {
			button = b
		}
	}
	require.NotZero(t, button.W)
	bx, by := center(button.rect)

	// drag up by 100 px, released over the button: scrolls, no click
	f.input.push(
		touchAt(bx, by+100, true, true, false),
		touchAt(bx, by, true, false, false),
		touchAt(bx, by, false, false, true),
	)
	f.run(3 + s.site.Scroll.NavigateTicks)
	assert.Equal(t, 100.0, s.ScrollOffset())

	// tap on the button (now 100 px higher on screen)
	f.input.push(
		touchAt(bx, by-100, true, true, false),
		touchAt(bx, by-100, false, false, true),
	)
	f.run(2 + s.site.Scroll.NavigateTicks)
	assert.InDelta(t, sectionScroll(t, s, sectionProjects), s.ScrollOffset(), 1e-9)
}

func TestPortfolioScene_AvatarFollowsScroll(t *testing.T) {
	f := newSceneFixture(t)
	s := f.scene

	_, ok := s.interpolator.At(0, 0)
	assert.False(t, ok, "anchors are measured after the layout settles")

	f.run(systems.DefaultSettleTicks)
	origin, dest, ok := s.interpolator.Anchors()
	require.True(t, ok)
	assert.Equal(t, s.layout.HeroAnchor, origin)
	assert.Equal(t, s.layout.NavAnchor, dest)

	r, ok := s.interpolator.At(s.scroll.Progress(), s.ScrollOffset())
	require.True(t, ok)
	assert.Equal(t, s.layout.HeroAnchor, r)

	s.setScroll(s.site.Scroll.Threshold)
	r, _ = s.interpolator.At(s.scroll.Progress(), s.ScrollOffset())
	assert.InDelta(t, s.layout.NavAnchor.Top, r.Top, 1e-9)
	assert.InDelta(t, s.layout.NavAnchor.Left, r.Left, 1e-9)
	assert.InDelta(t, s.layout.NavAnchor.Size, r.Size, 1e-9)
	assert.True(t, s.scroll.IsScrolled())
}

func TestPortfolioScene_MarqueePausesOnHover(t *testing.T) {
	f := newSceneFixture(t)
	s := f.scene

	f.run(5)
	assert.Greater(t, s.marquee.Speed(), 0.0)

	s.setScroll(s.layout.MarqueeTop - 200)
	y := s.layout.MarqueeTop - s.ScrollOffset() + 10
	f.input.push(frameInput{Pointer: pointerAt(300, y, false, false)})
	f.run(1)
	assert.Equal(t, 0.0, s.marquee.TargetSpeed())

	f.run(1)
	assert.Equal(t, s.site.Marquee.MaxSpeed, s.marquee.TargetSpeed())
}

func TestPortfolioScene_ResizeRelayouts(t *testing.T) {
	f := newSceneFixture(t)
	s := f.scene
	wide := s.layout.DocHeight

	s.Resize(480, 800)
	assert.Greater(t, s.layout.DocHeight, wide, "narrow windows stack cards")
	assert.True(t, s.interpolator.Pending())
	w, _ := s.heroLayer.Bounds()
	assert.Equal(t, 480, w)
}

func TestPortfolioScene_Draw(t *testing.T) {
	f := newSceneFixture(t)
	f.run(systems.DefaultSettleTicks + 1)

	screen := ebiten.NewImage(1280, 800)
	f.scene.Draw(screen)

	f.scene.setScroll(f.scene.layout.MaxScroll())
	f.run(1)
	f.scene.Draw(screen)
}
