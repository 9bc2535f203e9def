package game

import (
	"fmt"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/decker502/portfolio/pkg/embedded"
)

// DefaultI18nDir 多语言文本目录（embedded 路径）
const DefaultI18nDir = "data/i18n"

// SiteStrings 一种语言下的全部页面文本
type SiteStrings struct {
	Navbar      NavbarStrings      `yaml:"navbar"`
	Hero        HeroStrings        `yaml:"hero"`
	Tech        TechStrings        `yaml:"tech"`
	Projects    ProjectsStrings    `yaml:"projects"`
	Experience  ExperienceStrings  `yaml:"experience"`
	Credentials CredentialsStrings `yaml:"credentials"`
	Contact     ContactStrings     `yaml:"contact"`
	Footer      FooterStrings      `yaml:"footer"`
}

type NavbarStrings struct {
	Home         string `yaml:"home"`
	Technologies string `yaml:"technologies"`
	Projects     string `yaml:"projects"`
	Experience   string `yaml:"experience"`
	Credentials  string `yaml:"credentials"`
	Contact      string `yaml:"contact"`
	Theme        string `yaml:"theme"`
	Language     string `yaml:"language"`
}

type HeroStrings struct {
	Subtitle     string   `yaml:"subtitle"`
	Phrases      []string `yaml:"phrases"` // 打字机轮播的标语
	Contact      string   `yaml:"contact"`
	ViewProjects string   `yaml:"viewProjects"`
}

type TechStrings struct {
	Title      string           `yaml:"title"`
	Subtitle   string           `yaml:"subtitle"`
	Marquee    []string         `yaml:"marquee"` // 跑马灯条目
	Categories []TechCategory   `yaml:"categories"`
	Strengths  StrengthsStrings `yaml:"strengths"`
}

type TechCategory struct {
	Title string      `yaml:"title"`
	Items []TechGroup `yaml:"items"`
}

type TechGroup struct {
	Label string   `yaml:"label"`
	Techs []string `yaml:"techs"`
}

type StrengthsStrings struct {
	Title string     `yaml:"title"`
	Items []Strength `yaml:"items"`
}

type Strength struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type ProjectsStrings struct {
	Title      string        `yaml:"title"`
	Subtitle   string        `yaml:"subtitle"`
	ViewMore   string        `yaml:"viewMore"`
	SourceCode string        `yaml:"sourceCode"`
	Items      []ProjectItem `yaml:"items"`
}

type ProjectItem struct {
	Title       string `yaml:"title"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
}

type ExperienceStrings struct {
	Title    string           `yaml:"title"`
	Subtitle string           `yaml:"subtitle"`
	Present  string           `yaml:"present"`
	Items    []ExperienceItem `yaml:"items"`
}

type ExperienceItem struct {
	Role        string `yaml:"role"`
	Company     string `yaml:"company"`
	Period      string `yaml:"period"`
	Description string `yaml:"description"`
}

type CredentialsStrings struct {
	Title          string                `yaml:"title"`
	Subtitle       string                `yaml:"subtitle"`
	Education      EducationStrings      `yaml:"education"`
	Certifications CertificationsStrings `yaml:"certifications"`
}

type EducationStrings struct {
	Title string          `yaml:"title"`
	Items []EducationItem `yaml:"items"`
}

type CertificationsStrings struct {
	Title string              `yaml:"title"`
	Items []CertificationItem `yaml:"items"`
}

type EducationItem struct {
	Degree      string `yaml:"degree"`
	Institution string `yaml:"institution"`
}

type CertificationItem struct {
	Name   string `yaml:"name"`
	Issuer string `yaml:"issuer"`
	Link   string `yaml:"link,omitempty"`
}

type ContactStrings struct {
	Title        string `yaml:"title"`
	Subtitle     string `yaml:"subtitle"`
	AboutMeTitle string `yaml:"aboutMeTitle"`
	AboutMeText  string `yaml:"aboutMeText"`
	InfoTitle    string `yaml:"infoTitle"`
	InfoText     string `yaml:"infoText"`
	SendEmail    string `yaml:"sendEmail"`
	Whatsapp     string `yaml:"whatsapp"`
}

type FooterStrings struct {
	Copyright string `yaml:"copyright"`
}

// SiteCatalog 所有语言的页面文本
type SiteCatalog struct {
	byLang map[Language]*SiteStrings
}

// NewSiteCatalog 从 embedded 目录加载所有语言的文本
//
// 参数：
//   - dir: 文本目录（通常为 DefaultI18nDir），其中每种语言一个 <code>.yaml 文件
//
// 返回：
//   - *SiteCatalog: 文本目录
//   - error: 任一语言文件缺失或解析失败
//
// 加泰罗尼亚语（ca）是基准目录：其他语言文件中缺少的键取 ca 中的值。
func NewSiteCatalog(dir string) (*SiteCatalog, error) {
	files := make(map[Language][]byte, len(Languages()))
	for _, lang := range Languages() {
		p := path.Join(dir, string(lang)+".yaml")
		data, err := embedded.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read site strings %s: %w", p, err)
		}
		files[lang] = data
	}
	return ParseSiteCatalog(files)
}

// ParseSiteCatalog 从内存中的 YAML 文本构建目录
func ParseSiteCatalog(files map[Language][]byte) (*SiteCatalog, error) {
	baseData, ok := files[LanguageCatalan]
	if !ok {
		return nil, fmt.Errorf("%w: missing base catalog %s", ErrUnknownLanguage, LanguageCatalan)
	}
	var base SiteStrings
	if err := yaml.Unmarshal(baseData, &base); err != nil {
		return nil, fmt.Errorf("failed to parse site strings %s: %w", LanguageCatalan, err)
	}

	c := &SiteCatalog{byLang: map[Language]*SiteStrings{LanguageCatalan: &base}}
	for lang, data := range files {
		if lang == LanguageCatalan {
			continue
		}
		if !lang.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
		}
		// 浅拷贝基准文本再覆盖：YAML 中出现的字段替换基准值，缺失的保留
		s := base
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to parse site strings %s: %w", lang, err)
		}
		c.byLang[lang] = &s
	}
	return c, nil
}

// Strings 返回指定语言的文本，未知语言返回基准文本
func (c *SiteCatalog) Strings(lang Language) *SiteStrings {
	if s, ok := c.byLang[lang]; ok {
		return s
	}
	return c.byLang[LanguageCatalan]
}

// Has 是否包含该语言
func (c *SiteCatalog) Has(lang Language) bool {
	_, ok := c.byLang[lang]
	return ok
}
