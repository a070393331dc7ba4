// igp-generator/internal/planner/catalog.go
package planner

import (
	"github.com/SinSayWu/igp-generator-sub000/models"
	"gorm.io/gorm"
)

// CatalogEntry - снимок курса из каталога на время одного прогона конвейера.
type CatalogEntry struct {
	Name     string
	Credits  float64
	Fulfills []string
	Level    string
}

// CatalogIndex - индекс каталога по точному имени курса.
type CatalogIndex map[string]CatalogEntry

// BuildCatalogIndex строит индекс из строк каталога. Отсутствующие кредиты
// считаются равными 1.0, отсутствующий список требований - пустым.
func BuildCatalogIndex(courses []models.Course) CatalogIndex {
	index := make(CatalogIndex, len(courses))
	for _, course := range courses {
		credits := course.Credits
		if credits == 0 {
			credits = 1.0
		}
		fulfills := course.Fulfills
		if fulfills == nil {
			fulfills = []string{}
		}
		index[course.Name] = CatalogEntry{
			Name:     course.Name,
			Credits:  credits,
			Fulfills: fulfills,
			Level:    course.Level,
		}
	}
	return index
}

// LoadCatalogIndex загружает каталог из БД и строит индекс. Индекс живет
// один запрос: каталог могут редактировать между вызовами, кэшировать нельзя.
func LoadCatalogIndex(db *gorm.DB) (CatalogIndex, error) {
	var courses []models.Course
	if err := db.Find(&courses).Error; err != nil {
		return nil, err
	}
	return BuildCatalogIndex(courses), nil
}

// LoadGraduationRequirements загружает таблицу выпускных требований.
func LoadGraduationRequirements(db *gorm.DB) ([]models.GraduationRequirement, error) {
	var reqs []models.GraduationRequirement
	if err := db.Order("id asc").Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}
