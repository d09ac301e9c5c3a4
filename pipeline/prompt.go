package pipeline

import (
	"fmt"
	"strings"
)

const (
	rewriteInstruction = "請將以下%s改寫成一篇全新、流暢、專業的新聞稿，避免與原文重複，但保留核心資訊和事實。請以繁體中文輸出。"
	jsonContentOnly    = `請以 JSON 格式輸出結果，包含 "content"（新聞稿內容），例如：{"content": "..."}`
	jsonWithTitles     = `請以 JSON 格式輸出結果，包含 "content"（新聞稿內容）與 "long_titles"（三個建議標題），例如：{"content": "...", "long_titles": ["...", "...", "..."]}`
)

// prompt joins non-empty lines with newlines.
func prompt(lines ...string) string {
	var kept []string
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, "\n")
}

// sourceAttribution asks the model to credit the outlet.
func sourceAttribution(site string) string {
	if site == "" {
		return ""
	}
	return fmt.Sprintf("若原文來自《%s》，請在改寫後的新聞稿開頭註明來源。", site)
}

func rewriteURLPrompt(site, body string) string {
	return prompt(
		fmt.Sprintf(rewriteInstruction, "新聞內容"),
		sourceAttribution(site),
		jsonContentOnly,
		"原文：\n\n"+body,
	)
}

func draftPrompt(draft string, opts Options) string {
	return prompt(
		fmt.Sprintf(rewriteInstruction, "通稿內容"),
		strings.TrimSpace(opts.lengthInstruction()+" "+opts.paragraphInstruction()),
		jsonContentOnly,
		"原始通稿：\n\n"+draft,
	)
}

func translatePrompt(lang, body string) string {
	return fmt.Sprintf("請將以下%s新聞內容精準翻譯成繁體中文。只提供翻譯後的內容，不要額外評論。原文：\n\n%s", languageLabel(lang), body)
}

func translatedRewritePrompt(site, translated string) string {
	return prompt(
		fmt.Sprintf(rewriteInstruction, "繁體中文的新聞內容"),
		sourceAttribution(site),
		jsonContentOnly,
		"改寫前內容：\n\n"+translated,
	)
}

func interviewPrompt(in Interview, opts Options) string {
	var suggested string
	if in.Title != "" {
		suggested = fmt.Sprintf("建議新聞標題：「%s」", in.Title)
	}
	return prompt(
		"請根據以下訪問內容和提供的資訊，生成一篇專業的繁體中文新聞稿。",
		suggested,
		strings.TrimSpace(opts.lengthInstruction()+" "+opts.paragraphInstruction()+" "+ParseTone(string(opts.Tone)).instruction()),
		jsonContentOnly,
		"訪問內容：\n"+in.Content,
		"請確保新聞稿內容連貫、語氣專業，並總結訪問的核心要點。",
	)
}

func socialPrompt(post SocialPost) string {
	platform := post.Platform
	if platform == "" {
		platform = "社群平台"
	}
	var media, link, remark string
	if post.MediaDescription != "" {
		media = fmt.Sprintf("貼文伴隨的圖片或影片內容描述為：「%s」。", post.MediaDescription)
	}
	if post.OriginalLink != "" {
		link = fmt.Sprintf("（原始貼文連結：%s）", post.OriginalLink)
	}
	if post.Remark != "" {
		remark = "用戶特別指示：" + post.Remark
	}
	return prompt(
		fmt.Sprintf("請將以下關於藝人 %s 在 %s 發布的社群文章內容，改寫成一篇專業、客觀且流暢的繁體中文新聞稿。", post.ArtistName, platform),
		"請將社群內容以媒體報導的方式呈現，並提取其主要事件、發言或情感作為新聞重點。",
		media,
		link,
		remark,
		jsonWithTitles,
		"藝人名稱："+post.ArtistName,
		"社群平台："+platform,
		"社群文章內容：\n"+post.Content,
	)
}

func videoPrompt(v Video, transcript string) string {
	var media, remark string
	if v.MediaDescription != "" {
		media = fmt.Sprintf("影片畫面描述：「%s」。", v.MediaDescription)
	}
	if v.Remark != "" {
		remark = "用戶特別指示：" + v.Remark
	}
	return prompt(
		"請根據以下 YouTube 影片字幕內容，寫一篇繁體中文新聞報導。",
		media,
		remark,
		jsonWithTitles,
		"字幕內容：\n```\n"+transcript+"\n```",
	)
}

func proofreadPrompt(text string) string {
	return prompt(
		"請以繁體中文檢查以下文本的錯字、語法錯誤、標點符號錯誤。",
		"你的目標是返回原始文本的完整內容。",
		"對於錯字或明顯的語法錯誤，請在原文中以「原始錯誤詞彙（訂正後的詞彙）」的格式直接標註。",
		"除了這些訂正標記外，不要改寫、增刪任何其他文字。如果沒有錯誤，則直接返回原始文本。",
		"原始文本：\n\n"+text,
	)
}
