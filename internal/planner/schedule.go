// igp-generator/internal/planner/schedule.go

// Пакет planner реализует конвейер генерации многолетнего учебного плана:
// черновик от модели -> независимая ревизия -> механическая валидация ->
// одна попытка ремонта -> принудительная фиксация истории -> сверка с БД.
package planner

import (
	"sort"
	"strconv"
	"strings"
)

// SlotSeparator разделяет два полукредитных курса в одном слоте расписания
// ("Art 1/Band: Symphonic"). Полный слот всегда равен 1.0 кредита.
const SlotSeparator = "/"

// GradeMS - метка "средняя школа" для курсов, пройденных до 9 класса.
const GradeMS = "MS"

// ScheduleDraft - расписание по классам: метка класса ("MS", "9".."12") ->
// упорядоченный список слотов. Это рабочий артефакт конвейера; каждая стадия
// получает свою копию и не мутирует чужую.
type ScheduleDraft map[string][]string

// Clone возвращает глубокую копию черновика.
func (d ScheduleDraft) Clone() ScheduleDraft {
	if d == nil {
		return nil
	}
	out := make(ScheduleDraft, len(d))
	for grade, slots := range d {
		out[grade] = append([]string(nil), slots...)
	}
	return out
}

// Grades возвращает метки классов в детерминированном порядке:
// сначала "MS", затем числовые по возрастанию, затем все прочее по алфавиту.
func (d ScheduleDraft) Grades() []string {
	grades := make([]string, 0, len(d))
	for g := range d {
		grades = append(grades, g)
	}
	sort.Slice(grades, func(i, j int) bool {
		return gradeSortKey(grades[i]) < gradeSortKey(grades[j])
	})
	return grades
}

func gradeSortKey(label string) int {
	if label == GradeMS {
		return 0
	}
	if n, err := strconv.Atoi(label); err == nil {
		return n
	}
	// Пустая метка - мусор из JSON модели; сортируем в хвост, не падаем.
	if label == "" {
		return 1000
	}
	return 1000 + int(label[0])
}

// SplitSlot разбивает слот на имена курсов и отбрасывает лишние пробелы.
// Модель пишет разделитель то как "A/B", то как "A / B".
func SplitSlot(slot string) []string {
	parts := strings.Split(slot, SlotSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
