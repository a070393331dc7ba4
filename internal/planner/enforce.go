// igp-generator/internal/planner/enforce.go
package planner

// EnforceHistory приводит черновик в соответствие с зафиксированной историей.
// Это главная гарантия конвейера: что бы ни сгенерировала модель, прошлое
// студента переписать нельзя.
//
// 1. Каждая метка класса из History перезаписывается историческим списком
//    дословно.
// 2. В остальных классах вычищаются слоты, содержащие заблокированный курс:
//    пройденный курс нельзя "пройти еще раз" в будущем.
//
// Функция чистая и идемпотентная; вызывается дважды за прогон - после первого
// извлечения и после ремонта, потому что вывод ремонта - такой же
// недоверенный текст модели, как и черновик.
func EnforceHistory(draft ScheduleDraft, snap *Snapshot) (ScheduleDraft, bool) {
	if draft == nil {
		return nil, false
	}

	out := make(ScheduleDraft, len(draft))
	changed := false

	for grade, slots := range draft {
		if snap.IsHistoryGrade(grade) {
			continue // исторические классы заполняются ниже
		}
		kept := make([]string, 0, len(slots))
		for _, slot := range slots {
			if slotContainsLocked(slot, snap.LockedCourses) {
				changed = true
				continue
			}
			kept = append(kept, slot)
		}
		out[grade] = kept
	}

	for grade, names := range snap.History {
		if !slicesEqual(draft[grade], names) {
			changed = true
		}
		out[grade] = append([]string(nil), names...)
	}

	return out, changed
}

func slotContainsLocked(slot string, locked map[string]bool) bool {
	for _, name := range SplitSlot(slot) {
		if locked[name] {
			return true
		}
	}
	return false
}

func slicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
