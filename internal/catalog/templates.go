package catalog

import "SEOAgent/internal/domain"

func defaultTemplates() []domain.ArticleTemplate {
	return []domain.ArticleTemplate{
		{
			Keyword:      "telegram下载",
			TitlePattern: "Telegram{edition}下载 - {platform}安装教程{year}",
			BodyPattern: `# Telegram{edition}下载指南

Telegram是全球领先的即时通讯应用，本文提供{year}年最新的下载和安装教程。

## 为什么选择Telegram

- **安全加密**：采用MTProto协议，保护通讯安全
- **云端同步**：消息永久保存在云端
- **大文件传输**：支持最大2GB文件
- **超大群组**：群组最多20万成员
- **丰富功能**：机器人、频道、贴纸等

## {platform}版下载方法

### 方法一：官方下载

1. 访问Telegram官方网站
2. 选择{platform}版本
3. 下载安装包
4. 按照提示完成安装

### 方法二：应用商店下载

{platform_steps}

## 注册和登录

1. 打开Telegram应用
2. 输入手机号码
3. 输入验证码
4. 设置用户名
5. 开始使用

## 常见问题

**Q: Telegram免费吗？**
A: 是的，Telegram完全免费使用。

**Q: 需要翻墙吗？**
A: 在某些地区可能需要使用代理。

**Q: 消息安全吗？**
A: Telegram采用加密技术保护消息安全，秘密聊天更是端到端加密。

## 总结

Telegram是一款功能强大、安全可靠的即时通讯应用，推荐下载使用。`,
			DescriptionPattern: "Telegram{edition}下载，{platform}安装教程{year}最新版。提供官方下载链接和详细安装步骤。",
			Tags:               []string{"telegram下载", "telegram安装", "tg下载", "{platform}"},
		},
		{
			Keyword:      "秘密聊天",
			TitlePattern: "Telegram秘密聊天{theme} - {audience}",
			BodyPattern: `# Telegram秘密聊天{theme}

Telegram的秘密聊天功能提供端到端加密，确保通讯绝对安全。

## 什么是秘密聊天

- **端到端加密**：只有收发双方能读取消息
- **阅后即焚**：可设置消息自动销毁
- **禁止转发**：消息无法被转发
- **截图通知**：截图时对方会收到通知

## 如何开启秘密聊天

### 移动端操作步骤

1. 打开与好友的对话
2. 点击好友名称
3. 选择"开始秘密聊天"
4. 等待对方接受

### 桌面端操作

1. 右键联系人
2. 选择"Start Secret Chat"

## 安全特性详解

Telegram使用256位对称AES加密和RSA 2048密钥交换，可以通过比对加密密钥图像来确认通讯安全。

## 自毁消息设置

1. 点击计时器图标
2. 选择销毁时间
3. 发送的消息会在设定时间后自动删除

## 注意事项

- 秘密聊天不支持云端同步
- 只能在创建的设备上查看
- 不支持群组秘密聊天`,
			DescriptionPattern: "Telegram秘密聊天{theme}教程，了解端到端加密、阅后即焚等隐私保护功能。",
			Tags:               []string{"telegram秘密聊天", "端到端加密", "telegram隐私", "telegram安全"},
		},
		{
			Keyword:      "群组",
			TitlePattern: "Telegram群组{theme}教程 - {audience}",
			BodyPattern: `# Telegram群组{theme}教程

Telegram群组功能强大，支持最多20万成员，是社区运营的理想工具。

## 群组类型

### 普通群组
- 最多200成员
- 基础功能

### 超级群组
- 最多20万成员
- 高级管理功能
- 消息历史永久保存

## 创建群组

1. 点击新建群组
2. 添加初始成员
3. 设置名称和头像
4. 完成创建

## 群组管理

- 群组名称、头像和描述
- 发送消息与添加成员权限
- 管理员权限分配
- 慢速模式、机器人管理、投票和测验

## 运营技巧

- 制定群规
- 定期活跃气氛
- 使用机器人辅助管理
- 设置管理员分工

## 常见问题

**Q: 如何升级为超级群组？**
A: 群组设置中选择升级选项。`,
			DescriptionPattern: "Telegram群组{theme}完整教程，学习创建、管理和运营Telegram群组的技巧。",
			Tags:               []string{"telegram群组", "tg群", "群组管理", "telegram社区"},
		},
		{
			Keyword:      "频道",
			TitlePattern: "Telegram频道{theme} - {audience}",
			BodyPattern: `# Telegram频道{theme}

Telegram频道是内容发布和品牌推广的强大工具，无订阅人数上限。

## 频道特点

- 单向广播模式
- 无订阅人数限制
- 支持评论功能
- 详细统计数据

## 创建频道

1. 点击新建频道
2. 设置频道名称和描述
3. 选择公开或私密
4. 设置频道链接

## 频道运营

### 内容策略
- 确定内容方向
- 保持更新频率
- 提供有价值内容

### 推广方法
- 群组内分享
- 社交媒体推广
- 与其他频道互推

## 变现方式

- 广告合作
- 会员付费内容
- 导流到其他平台`,
			DescriptionPattern: "Telegram频道{theme}教程，学习创建和运营频道，打造成功的内容发布平台。",
			Tags:               []string{"telegram频道", "telegram channel", "频道运营", "telegram推广"},
		},
		{
			Keyword:      "机器人",
			TitlePattern: "Telegram机器人{theme} - {audience}",
			BodyPattern: `# Telegram机器人{theme}

Telegram机器人是自动化工具，可以完成各种任务，提升使用效率。

## 什么是Telegram Bot

机器人是自动化账号，可以执行预设任务、回复消息、处理命令并与外部服务集成。

## 使用机器人

1. 搜索机器人名称或通过链接访问
2. 点击Start或/start
3. 按照提示操作
4. 需要时添加到群组

## 实用机器人推荐

- @GmailBot - 邮件管理
- @GroupHelpBot - 群组管理助手
- @Combot - 统计分析
- @PDFBot - PDF处理

## 创建机器人

1. 联系@BotFather
2. 发送/newbot
3. 设置名称和用户名
4. 获取API Token
5. 开始开发

## 安全注意事项

- 只使用可信机器人
- 不提供敏感信息
- 检查权限请求`,
			DescriptionPattern: "Telegram机器人{theme}教程，推荐实用Bot，学习如何使用和创建机器人。",
			Tags:               []string{"telegram机器人", "telegram bot", "tg机器人", "telegram自动化"},
		},
		{
			Keyword:      "中文纸飞机下载",
			TitlePattern: "中文纸飞机下载{year} - Telegram{platform}版安装",
			BodyPattern: `# 中文纸飞机下载{year}

纸飞机（Telegram）是全球最流行的即时通讯应用之一，本文提供中文版下载方法。

## 什么是纸飞机

纸飞机是Telegram在中国的俗称，因其图标像纸飞机而得名。

## {platform}版下载

{platform_steps}

## 设置中文界面

1. 打开设置
2. 选择Language
3. 找到简体中文
4. 应用语言包

## 注册使用

1. 输入手机号
2. 接收验证码
3. 完成注册
4. 设置用户名

## 常见问题

**Q: 纸飞机和Telegram是一个软件吗？**
A: 是的，纸飞机是Telegram的中文俗称。

**Q: 安全吗？**
A: Telegram采用加密技术，非常安全。`,
			DescriptionPattern: "中文纸飞机下载{year}最新版，提供Telegram安卓/iOS/电脑版下载和安装教程。",
			Tags:               []string{"中文纸飞机下载", "纸飞机", "telegram中文", "telegram下载"},
		},
	}
}
