package smoke

import "maps"

// Fixture — имя значения, которое одна проверка передаёт другой.
type Fixture string

// Фикстуры цепочек.
const (
	FixtureDiscountID   Fixture = "discountId"
	FixtureDiscountCode Fixture = "discountCode"
	FixtureCourseID     Fixture = "courseId"
	FixtureSectionID    Fixture = "sectionId"
	FixtureLessonID     Fixture = "lessonId"
)

// Fixtures хранит значения, полученные в ходе прогона.
// Каждое значение записывается один раз.
type Fixtures struct {
	values map[Fixture]string
}

// NewFixtures создаёт пустое хранилище.
func NewFixtures() *Fixtures {
	return &Fixtures{values: make(map[Fixture]string)}
}

// Get возвращает значение фикстуры и признак его наличия.
func (f *Fixtures) Get(key Fixture) (string, bool) {
	v, ok := f.values[key]
	return v, ok
}

// Value возвращает значение фикстуры или пустую строку.
func (f *Fixtures) Value(key Fixture) string {
	return f.values[key]
}

// Snapshot возвращает копию всех значений.
func (f *Fixtures) Snapshot() map[Fixture]string {
	return maps.Clone(f.values)
}

// set записывает значение. Пустое значение и повторная запись игнорируются.
func (f *Fixtures) set(key Fixture, value string) bool {
	if value == "" {
		return false
	}
	if _, exists := f.values[key]; exists {
		return false
	}
	f.values[key] = value
	return true
}

// firstMissing возвращает первую отсутствующую фикстуру из keys.
func (f *Fixtures) firstMissing(keys []Fixture) (Fixture, bool) {
	for _, k := range keys {
		if _, ok := f.values[k]; !ok {
			return k, true
		}
	}
	return "", false
}
