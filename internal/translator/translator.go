package translator

import (
	"context"
	"fmt"
)

const (
	temperature     = 0.5
	topP            = 0.9
	topK            = 40
	maxOutputTokens = 2048
)

const promptTemplate = `以下のテキストを指定の形式で処理してください。

# 元のテキスト:
` + "```" + `
%s
` + "```" + `

# 元のURL:
%s

# 処理指示:
1.  元のテキストを日本語に自然に和訳してください。
2.  和訳した内容は、表現をわかりやすく変換し、ポイントを箇条書き（各項目の先頭は「・」）でまとめてください。
3.  元のテキストに含まれるコードブロック（` + "```" + `で囲まれた部分）は、内容を保持し、コードブロックとしてわかるように ` + "```" + ` で囲んでください。
4.  元のURLからWebページのタイトルを取得してください。
5.  和訳した文章の内容と元のテキストのテーマに最も関連性の高い重要な名詞を10個程度、カンマ区切りでリストアップしてください。固有名詞や専門用語を優先してください。

# 出力形式 (JSON):
` + "```json" + `
{
  "translated_summary": "・箇条書き1\n・箇条書き2\n・箇条書き3...",
  "code_blocks": [
    "` + "```python\\nprint('hello')\\n```" + `",
    "` + "```javascript\\nconsole.log('world');\\n```" + `"
  ],
  "page_title": "取得したページタイトル",
  "keywords": "名詞1, 名詞2, 名詞3, ..."
}
` + "```" + `

上記形式に従って、JSON文字列のみを出力してください。
`

// Translator asks a language model to translate and summarize one source
// text, returning the raw generated output for Parse to distill.
type Translator interface {
	Translate(ctx context.Context, text, sourceURL string) (string, error)
}

func buildPrompt(text, sourceURL string) string {
	return fmt.Sprintf(promptTemplate, text, sourceURL)
}
