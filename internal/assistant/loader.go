package assistant

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidKnowledge 表示知识库数据不完整或格式错误。
var ErrInvalidKnowledge = errors.New("invalid knowledge base")

// LoadKnowledgeBase 从 YAML 文件加载知识库；path 为空时返回内置知识库。
func LoadKnowledgeBase(path string) (*KnowledgeBase, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge file: %w", err)
	}

	var kb KnowledgeBase
	if err := yaml.Unmarshal(data, &kb); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge file: %w", err)
	}
	if err := kb.Validate(); err != nil {
		return nil, err
	}
	return &kb, nil
}

// Validate 检查规则表是否完整。所有关键词必须是非空的小写字符串，
// 这样匹配时只需要把输入转成小写。
func (kb *KnowledgeBase) Validate() error {
	if kb == nil {
		return fmt.Errorf("%w: knowledge base is nil", ErrInvalidKnowledge)
	}
	if len(kb.Diseases) == 0 {
		return fmt.Errorf("%w: no disease entries", ErrInvalidKnowledge)
	}

	seen := make(map[string]struct{}, len(kb.Diseases))
	for i, d := range kb.Diseases {
		if err := checkTerm(d.Key); err != nil {
			return fmt.Errorf("%w: disease[%d] key: %v", ErrInvalidKnowledge, i, err)
		}
		if _, dup := seen[d.Key]; dup {
			return fmt.Errorf("%w: duplicate disease key %q", ErrInvalidKnowledge, d.Key)
		}
		seen[d.Key] = struct{}{}
		if strings.TrimSpace(d.Name) == "" {
			return fmt.Errorf("%w: disease %q has no name", ErrInvalidKnowledge, d.Key)
		}
		sections := []struct {
			label   string
			bullets []string
		}{
			{"symptoms", d.Symptoms},
			{"warning_signs", d.WarningSigns},
			{"management", d.Management},
			{"diet", d.Diet},
		}
		for _, s := range sections {
			if err := checkBullets(s.bullets); err != nil {
				return fmt.Errorf("%w: disease %q %s: %v", ErrInvalidKnowledge, d.Key, s.label, err)
			}
		}
	}

	if len(kb.FeverTriggers) == 0 {
		return fmt.Errorf("%w: no fever triggers", ErrInvalidKnowledge)
	}
	for _, t := range kb.FeverTriggers {
		if err := checkTerm(t); err != nil {
			return fmt.Errorf("%w: fever trigger: %v", ErrInvalidKnowledge, err)
		}
	}
	for i, f := range kb.Fevers {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("%w: fever[%d] has no name", ErrInvalidKnowledge, i)
		}
		if err := checkTerm(f.Primary); err != nil {
			return fmt.Errorf("%w: fever[%d] primary: %v", ErrInvalidKnowledge, i, err)
		}
		if len(f.Cues) == 0 {
			return fmt.Errorf("%w: fever %q has no cues", ErrInvalidKnowledge, f.Primary)
		}
		for _, cue := range f.Cues {
			if err := checkTerm(cue); err != nil {
				return fmt.Errorf("%w: fever %q cue: %v", ErrInvalidKnowledge, f.Primary, err)
			}
		}
		if err := f.Response.validate(); err != nil {
			return fmt.Errorf("%w: fever %q response: %v", ErrInvalidKnowledge, f.Primary, err)
		}
	}

	for i, t := range kb.Topics {
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("%w: topic[%d] has no name", ErrInvalidKnowledge, i)
		}
		if len(t.Keywords) == 0 {
			return fmt.Errorf("%w: topic[%d] has no keywords", ErrInvalidKnowledge, i)
		}
		for _, k := range t.Keywords {
			if err := checkTerm(k); err != nil {
				return fmt.Errorf("%w: topic[%d] keyword: %v", ErrInvalidKnowledge, i, err)
			}
		}
		if err := t.Response.validate(); err != nil {
			return fmt.Errorf("%w: topic[%d] response: %v", ErrInvalidKnowledge, i, err)
		}
	}

	if strings.TrimSpace(kb.Fallback) == "" {
		return fmt.Errorf("%w: empty fallback", ErrInvalidKnowledge)
	}
	return nil
}

func (r Composed) validate() error {
	if strings.TrimSpace(r.Intro) == "" {
		return errors.New("empty intro")
	}
	if len(r.Sections) == 0 {
		return errors.New("no sections")
	}
	for _, s := range r.Sections {
		if strings.TrimSpace(s.Title) == "" {
			return errors.New("section without title")
		}
		if err := checkBullets(s.Bullets); err != nil {
			return fmt.Errorf("section %q: %v", s.Title, err)
		}
	}
	return nil
}

func checkTerm(term string) error {
	if strings.TrimSpace(term) == "" {
		return errors.New("empty term")
	}
	if term != strings.ToLower(term) {
		return fmt.Errorf("term %q must be lowercase", term)
	}
	return nil
}

func checkBullets(bullets []string) error {
	if len(bullets) == 0 {
		return errors.New("no bullets")
	}
	for _, b := range bullets {
		if strings.TrimSpace(b) == "" {
			return errors.New("empty bullet")
		}
	}
	return nil
}
