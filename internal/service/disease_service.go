package service

import (
	"errors"
	"strings"

	"health-dashboard-go/internal/assistant"
	"health-dashboard-go/internal/model"
	"health-dashboard-go/internal/repository"

	"gorm.io/gorm"
)

// DiseaseService 定义了疾病目录的业务操作。
type DiseaseService interface {
	// Seed 将知识库中的疾病写入数据库，已存在的名称保持不变，返回新增数量。
	Seed(entries []assistant.KnowledgeEntry) (int, error)
	List() ([]string, error)
	Get(name string) (*model.DiseaseInfo, error)
}

type diseaseService struct {
	repo repository.DiseaseRepository
}

// NewDiseaseService 创建一个新的 DiseaseService 实例。
func NewDiseaseService(repo repository.DiseaseRepository) DiseaseService {
	return &diseaseService{repo: repo}
}

func (s *diseaseService) Seed(entries []assistant.KnowledgeEntry) (int, error) {
	created := 0
	for _, e := range entries {
		d := &model.Disease{
			Name:         e.Name,
			Symptoms:     strings.Join(e.Symptoms, "\n"),
			WarningSigns: strings.Join(e.WarningSigns, "\n"),
			Management:   strings.Join(e.Management, "\n"),
			Diet:         strings.Join(e.Diet, "\n"),
		}
		ok, err := s.repo.CreateIfAbsent(d)
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}
	return created, nil
}

func (s *diseaseService) List() ([]string, error) {
	return s.repo.ListNames()
}

// Get 按名称模糊查找疾病。
func (s *diseaseService) Get(name string) (*model.DiseaseInfo, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrDiseaseNotFound
	}
	d, err := s.repo.FindByNameLike(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDiseaseNotFound
		}
		return nil, err
	}
	return &model.DiseaseInfo{
		Name:         d.Name,
		Symptoms:     splitLines(d.Symptoms),
		WarningSigns: splitLines(d.WarningSigns),
		Management:   splitLines(d.Management),
		Diet:         splitLines(d.Diet),
	}, nil
}

func splitLines(s string) []string {
	out := []string{}
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
