package game

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// ErrUnknownLanguage 不支持的语言
var ErrUnknownLanguage = errors.New("unknown language")

// Language 页面语言
type Language string

const (
	LanguageCatalan Language = "ca"
	LanguageSpanish Language = "es"
	LanguageEnglish Language = "en"
)

// LanguageAuto 命令行/配置中表示"根据系统区域设置选择"
const LanguageAuto = "auto"

var supportedTags = []language.Tag{language.Catalan, language.Spanish, language.English}

// 第一个标签是无法匹配时的回退
var languageMatcher = language.NewMatcher(supportedTags)

// Languages 返回支持的语言（切换顺序）
func Languages() []Language {
	return []Language{LanguageCatalan, LanguageSpanish, LanguageEnglish}
}

// Valid 是否为支持的语言
func (l Language) Valid() bool {
	switch l {
	case LanguageCatalan, LanguageSpanish, LanguageEnglish:
		return true
	}
	return false
}

// Next 返回切换顺序中的下一种语言
func (l Language) Next() Language {
	langs := Languages()
	for i, x := range langs {
		if x == l {
			return langs[(i+1)%len(langs)]
		}
	}
	return LanguageCatalan
}

// Tag 返回 BCP 47 标签
func (l Language) Tag() language.Tag {
	t, err := language.Parse(string(l))
	if err != nil {
		return language.Catalan
	}
	return t
}

// normalizeLocale 把 POSIX 区域名（如 "es_ES.UTF-8@euro"）转换为 BCP 47 形式
func normalizeLocale(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	return strings.ReplaceAll(s, "_", "-")
}

// ParseLanguage 解析语言代码或区域名
//
// 接受 "ca"、"es-ES"、"en_US.UTF-8" 等形式，只看基础语言。
func ParseLanguage(s string) (Language, error) {
	norm := normalizeLocale(s)
	if norm == "" {
		return "", fmt.Errorf("%w: empty", ErrUnknownLanguage)
	}
	tag, err := language.Parse(norm)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrUnknownLanguage, s, err)
	}
	base, _ := tag.Base()
	if l := Language(base.String()); l.Valid() {
		return l, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
}

// MatchLanguage 从用户偏好的区域名列表中选出最合适的支持语言
// 无法匹配时返回加泰罗尼亚语
func MatchLanguage(locales ...string) Language {
	var tags []language.Tag
	for _, loc := range locales {
		// LANGUAGE 变量可能是冒号分隔的列表
		for _, part := range strings.Split(loc, ":") {
			norm := normalizeLocale(part)
			if norm == "" || norm == "C" || norm == "POSIX" {
				continue
			}
			if t, err := language.Parse(norm); err == nil {
				tags = append(tags, t)
			}
		}
	}
	if len(tags) == 0 {
		return LanguageCatalan
	}
	_, idx, conf := languageMatcher.Match(tags...)
	if conf == language.No {
		return LanguageCatalan
	}
	return Languages()[idx]
}

// SystemLanguage 根据 LANGUAGE / LC_ALL / LC_MESSAGES / LANG 选择语言
func SystemLanguage() Language {
	return MatchLanguage(os.Getenv("LANGUAGE"), os.Getenv("LC_ALL"), os.Getenv("LC_MESSAGES"), os.Getenv("LANG"))
}

// LanguageManagerConfig LanguageManager 构造参数
type LanguageManagerConfig struct {
	Storage PreferenceStorage
	Catalog *SiteCatalog
	Default Language
	Logger  *zap.Logger
}

// LanguageManager 语言管理器
// 持有语言偏好并提供当前语言的页面文本
type LanguageManager struct {
	pref    *Preference[Language]
	catalog *SiteCatalog
	log     *zap.Logger
}

// NewLanguageManager 创建语言管理器并恢复已保存的偏好
func NewLanguageManager(cfg LanguageManagerConfig) (*LanguageManager, error) {
	if cfg.Catalog == nil {
		return nil, errors.New("language manager requires a site catalog")
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("LanguageManager")

	def := cfg.Default
	if !def.Valid() {
		def = LanguageCatalan
	}
	lm := &LanguageManager{
		pref:    NewPreference(LanguagePreferenceKey, def, Language.Valid, cfg.Storage, log),
		catalog: cfg.Catalog,
		log:     log,
	}
	log.Debug("language restored", zap.String("language", string(lm.Language())))
	return lm, nil
}

// Language 返回当前语言
func (lm *LanguageManager) Language() Language {
	return lm.pref.Get()
}

// Strings 返回当前语言的页面文本
func (lm *LanguageManager) Strings() *SiteStrings {
	return lm.catalog.Strings(lm.pref.Get())
}

// SetLanguage 切换语言
func (lm *LanguageManager) SetLanguage(l Language) error {
	if err := lm.pref.Set(l); err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownLanguage, err)
	}
	return nil
}

// Cycle 切换到下一种语言并返回它
func (lm *LanguageManager) Cycle() Language {
	next := lm.Language().Next()
	_ = lm.pref.Set(next)
	return next
}

// Subscribe 订阅语言变化
func (lm *LanguageManager) Subscribe(fn func(Language)) (cancel func()) {
	return lm.pref.Subscribe(fn)
}
