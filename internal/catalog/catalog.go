// Package catalog holds the static content catalogs the agent works from.
// A Catalog is built once and handed to each component; components never
// mutate it, so tests can substitute smaller catalogs freely.
package catalog

import "SEOAgent/internal/domain"

// Placeholder tokens understood by the generator.
const (
	TokenYear          = "year"
	TokenEdition       = "edition"
	TokenPlatform      = "platform"
	TokenTheme         = "theme"
	TokenAudience      = "audience"
	TokenPlatformSteps = "platform_steps"
)

// Topic is one entry of the suggestion topic catalog.
type Topic struct {
	TitlePattern string
	Keywords     []string
	Priority     domain.Priority
}

// Variants are the pools random placeholder values are drawn from.
type Variants struct {
	Editions  []string
	Platforms []string
	Themes    []string
	Audiences []string
}

// Catalog bundles everything that used to be module-level state.
type Catalog struct {
	Keywords               []string
	Topics                 []Topic
	Outline                []string
	Templates              []domain.ArticleTemplate
	Variants               Variants
	PlatformSteps          map[string]string
	FallbackPlatform       string
	UserAgents             []string
	GeneralRecommendations []string
}

// StepsFor returns the install steps for platform, falling back to the generic entry.
func (c Catalog) StepsFor(platform string) string {
	if steps, ok := c.PlatformSteps[platform]; ok {
		return steps
	}
	return c.PlatformSteps[c.FallbackPlatform]
}

// Default returns a fresh copy of the built-in Telegram catalog.
func Default() Catalog {
	return Catalog{
		Keywords:               defaultKeywords(),
		Topics:                 defaultTopics(),
		Outline:                []string{"引言", "主要内容", "详细步骤", "常见问题", "总结"},
		Templates:              defaultTemplates(),
		Variants:               defaultVariants(),
		PlatformSteps:          defaultPlatformSteps(),
		FallbackPlatform:       "电脑",
		UserAgents:             defaultUserAgents(),
		GeneralRecommendations: defaultGeneralRecommendations(),
	}
}

func defaultKeywords() []string {
	return []string{
		"telegram", "tg", "电报", "纸飞机", "telegram下载", "telegram中文",
		"秘密聊天", "频道", "群组", "机器人", "bot", "贴纸", "sticker",
		"两步验证", "端到端加密", "云同步", "代理", "proxy", "mtproto",
		"语音通话", "视频通话", "premium", "会员", "文件传输",
		"安卓", "android", "ios", "iphone", "windows", "mac",
		"注册", "登录", "验证码", "安全", "隐私", "设置",
	}
}

func defaultTopics() []Topic {
	return []Topic{
		{TitlePattern: "Telegram {year}最新版下载 - 全平台安装指南", Keywords: []string{"telegram下载", "telegram安装", "telegram中文"}, Priority: domain.PriorityHigh},
		{TitlePattern: "Telegram秘密聊天功能详解 - 端到端加密教程", Keywords: []string{"秘密聊天", "端到端加密", "telegram安全"}, Priority: domain.PriorityHigh},
		{TitlePattern: "Telegram群组创建与管理完整指南", Keywords: []string{"telegram群组", "tg群", "群组管理"}, Priority: domain.PriorityMedium},
		{TitlePattern: "Telegram频道运营技巧 - 涨粉方法大全", Keywords: []string{"telegram频道", "频道运营", "telegram推广"}, Priority: domain.PriorityMedium},
		{TitlePattern: "Telegram机器人Bot使用教程", Keywords: []string{"telegram机器人", "telegram bot", "tg机器人"}, Priority: domain.PriorityMedium},
		{TitlePattern: "Telegram代理设置教程 - 解决连接问题", Keywords: []string{"telegram代理", "mtproto", "telegram翻墙"}, Priority: domain.PriorityHigh},
		{TitlePattern: "Telegram vs WhatsApp对比 - 哪个更安全", Keywords: []string{"telegram对比", "telegram vs whatsapp", "即时通讯"}, Priority: domain.PriorityMedium},
		{TitlePattern: "Telegram Premium会员功能详解", Keywords: []string{"telegram premium", "telegram会员", "tg会员"}, Priority: domain.PriorityLow},
		{TitlePattern: "中文纸飞机下载 - Telegram安卓APK下载", Keywords: []string{"中文纸飞机下载", "纸飞机apk", "telegram安卓"}, Priority: domain.PriorityHigh},
		{TitlePattern: "Telegram电脑版下载安装 - Windows/Mac教程", Keywords: []string{"telegram电脑版", "telegram windows", "telegram mac"}, Priority: domain.PriorityHigh},
	}
}

func defaultVariants() Variants {
	return Variants{
		Editions:  []string{"中文版", "最新版", "官方版", "正式版"},
		Platforms: []string{"安卓", "iOS", "Windows", "Mac", "电脑"},
		Themes:    []string{"使用教程", "完整指南", "入门教程", "高级技巧", "详解"},
		Audiences: []string{"新手必看", "详细步骤", "完全攻略", "最新教程"},
	}
}

func defaultPlatformSteps() map[string]string {
	return map[string]string{
		"安卓":      "1. 打开Google Play商店\n2. 搜索\"Telegram\"\n3. 点击安装\n4. 等待下载完成",
		"iOS":     "1. 打开App Store\n2. 搜索\"Telegram\"\n3. 点击获取\n4. 完成安装",
		"Windows": "1. 访问官网下载页面\n2. 选择Windows版本\n3. 运行安装程序\n4. 完成安装",
		"Mac":     "1. 从App Store下载\n2. 或官网下载DMG\n3. 拖到应用程序文件夹\n4. 打开使用",
		"电脑":      "Windows和Mac都可以从官网下载对应版本安装使用。",
	}
}

func defaultUserAgents() []string {
	return []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
	}
}

func defaultGeneralRecommendations() []string {
	return []string{
		"Update content regularly to keep the blog active",
		"Add internal links to strengthen site structure",
		"Optimize meta titles and descriptions around target keywords",
		"Add structured data (Schema.org)",
		"Keep pages mobile friendly and fast to load",
	}
}
