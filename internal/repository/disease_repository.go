package repository

import (
	"errors"
	"strings"

	"health-dashboard-go/internal/model"

	"gorm.io/gorm"
)

// DiseaseRepository 定义了疾病目录的持久化操作。
type DiseaseRepository interface {
	// CreateIfAbsent 按名称插入，已存在时不做任何修改，返回是否新插入。
	CreateIfAbsent(d *model.Disease) (bool, error)
	FindByNameLike(name string) (*model.Disease, error)
	ListNames() ([]string, error)
}

type diseaseRepository struct {
	db *gorm.DB
}

// NewDiseaseRepository 创建一个新的 DiseaseRepository 实例。
func NewDiseaseRepository(db *gorm.DB) DiseaseRepository {
	return &diseaseRepository{db: db}
}

func (r *diseaseRepository) CreateIfAbsent(d *model.Disease) (bool, error) {
	res := r.db.Where(model.Disease{Name: d.Name}).FirstOrCreate(d)
	return res.RowsAffected > 0, res.Error
}

// FindByNameLike 按子串匹配名称，name 中的 % 和 _ 按字面匹配。
// 未找到时返回 gorm.ErrRecordNotFound。
func (r *diseaseRepository) FindByNameLike(name string) (*model.Disease, error) {
	var d model.Disease
	err := r.db.Where("name LIKE ? ESCAPE '!'", "%"+escapeLike(name)+"%").Order("id").First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *diseaseRepository) ListNames() ([]string, error) {
	var names []string
	err := r.db.Model(&model.Disease{}).Order("id").Pluck("name", &names).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []string{}, nil
	}
	return names, err
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// escapeLike 转义 LIKE 通配符，配合 ESCAPE '!' 使用。
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
