package assistant

import (
	"fmt"
	"slices"
	"strings"
)

// MatchKind 表示命中的是哪一轮规则。
type MatchKind string

const (
	MatchDisease  MatchKind = "disease"
	MatchFever    MatchKind = "fever"
	MatchTopic    MatchKind = "topic"
	MatchFallback MatchKind = "fallback"
)

// Match 是一次分类的结果。
type Match struct {
	Kind MatchKind
	Rule string // 命中规则的名称，fallback 时为空
	Text string
}

// ResponseClassifier 根据用户输入中的关键词返回固定的健康科普应答。
// 规则表在构造时复制，之后只读，可被多个 goroutine 并发使用。
type ResponseClassifier struct {
	diseases      []diseaseRule
	feverTriggers []string
	fevers        []feverRule
	topics        []topicRule
	fallback      string
	greeting      string
}

// 每条规则与其预先渲染好的应答放在一起
type diseaseRule struct {
	entry KnowledgeEntry
	text  string
}

type feverRule struct {
	name    string
	primary string
	cues    []string
	text    string
}

type topicRule struct {
	name     string
	keywords []string
	text     string
}

// NewClassifier 校验知识库并创建分类器。知识库不合法时返回 ErrInvalidKnowledge。
// 分类器持有规则表的副本，构造后对 kb 的修改不会影响它。
func NewClassifier(kb *KnowledgeBase) (*ResponseClassifier, error) {
	if err := kb.Validate(); err != nil {
		return nil, err
	}
	c := &ResponseClassifier{
		feverTriggers: slices.Clone(kb.FeverTriggers),
		fallback:      kb.Fallback,
		greeting:      kb.Greeting,
	}
	if c.greeting == "" {
		c.greeting = DefaultGreeting
	}
	for _, d := range kb.Diseases {
		entry := cloneEntry(d)
		c.diseases = append(c.diseases, diseaseRule{entry: entry, text: renderDisease(entry)})
	}
	for _, f := range kb.Fevers {
		c.fevers = append(c.fevers, feverRule{
			name:    f.Name,
			primary: f.Primary,
			cues:    slices.Clone(f.Cues),
			text:    f.Response.Render(),
		})
	}
	for _, t := range kb.Topics {
		c.topics = append(c.topics, topicRule{
			name:     t.Name,
			keywords: slices.Clone(t.Keywords),
			text:     t.Response.Render(),
		})
	}
	return c, nil
}

// Classify 返回输入对应的应答文本，永不失败。
func (c *ResponseClassifier) Classify(input string) string {
	return c.Match(input).Text
}

// Match 按 疾病 -> 发热亚型 -> 话题 -> fallback 的顺序逐轮匹配，首个命中即返回。
func (c *ResponseClassifier) Match(input string) Match {
	text := strings.ToLower(input)

	for _, d := range c.diseases {
		if strings.Contains(text, d.entry.Key) {
			return Match{Kind: MatchDisease, Rule: d.entry.Key, Text: d.text}
		}
	}

	// 单独的 "fever" 没有亚型线索时不会在这里命中，会继续落到话题轮
	if containsAny(text, c.feverTriggers) {
		for _, f := range c.fevers {
			if strings.Contains(text, f.primary) || containsAll(text, f.cues) {
				return Match{Kind: MatchFever, Rule: f.name, Text: f.text}
			}
		}
	}

	for _, t := range c.topics {
		if containsAny(text, t.keywords) {
			return Match{Kind: MatchTopic, Rule: t.name, Text: t.text}
		}
	}

	return Match{Kind: MatchFallback, Text: c.fallback}
}

// Greeting 返回对话开场白。
func (c *ResponseClassifier) Greeting() string {
	return c.greeting
}

// Diseases 返回疾病条目的副本（按优先级顺序）。
func (c *ResponseClassifier) Diseases() []KnowledgeEntry {
	out := make([]KnowledgeEntry, len(c.diseases))
	for i, d := range c.diseases {
		out[i] = cloneEntry(d.entry)
	}
	return out
}

func cloneEntry(e KnowledgeEntry) KnowledgeEntry {
	e.Symptoms = slices.Clone(e.Symptoms)
	e.WarningSigns = slices.Clone(e.WarningSigns)
	e.Management = slices.Clone(e.Management)
	e.Diet = slices.Clone(e.Diet)
	return e
}

// Render 将应答拼接为纯文本：段落之间空一行，要点以 "• " 开头。
func (r Composed) Render() string {
	parts := make([]string, 0, len(r.Sections)+2)
	parts = append(parts, r.Intro)
	for _, s := range r.Sections {
		parts = append(parts, s.Title+"\n"+bulletList(s.Bullets))
	}
	if r.Closing != "" {
		parts = append(parts, r.Closing)
	}
	return strings.Join(parts, "\n\n")
}

func renderDisease(d KnowledgeEntry) string {
	return Composed{
		Intro: fmt.Sprintf(diseaseIntroFormat, d.Name),
		Sections: []Section{
			{Title: symptomsTitle, Bullets: d.Symptoms},
			{Title: warningSignsTitle, Bullets: d.WarningSigns},
			{Title: managementTitle, Bullets: d.Management},
			{Title: dietTitle, Bullets: d.Diet},
		},
		Closing: diseaseDisclaimer,
	}.Render()
}

func bulletList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "• " + item
	}
	return strings.Join(lines, "\n")
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

func containsAll(text string, terms []string) bool {
	if len(terms) == 0 {
		return false
	}
	for _, t := range terms {
		if !strings.Contains(text, t) {
			return false
		}
	}
	return true
}
