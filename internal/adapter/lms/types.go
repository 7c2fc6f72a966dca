package lms

import (
	"encoding/json"
	"fmt"
	"time"
)

// ID — идентификатор сущности. Сервер отдаёт его то строкой, то числом,
// оба варианта приводятся к строке.
type ID string

// UnmarshalJSON принимает строку, число или null.
func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("идентификатор должен быть строкой или числом: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// String возвращает идентификатор строкой.
func (id ID) String() string { return string(id) }

// firstNonEmpty возвращает первое непустое значение.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Credentials — тело запроса логина.
type Credentials struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Session — data ответа логина.
type Session struct {
	Token string `json:"token"`
}

// DiscountRequest — тело создания промокода.
type DiscountRequest struct {
	Code              string    `json:"code"`
	Description       string    `json:"description"`
	DiscountType      string    `json:"discountType"`
	DiscountValue     float64   `json:"discountValue"`
	ApplicableType    string    `json:"applicableType"`
	MinPurchaseAmount float64   `json:"minPurchaseAmount"`
	MaxUses           int       `json:"maxUses"`
	MaxUsesPerUser    int       `json:"maxUsesPerUser"`
	ValidFrom         time.Time `json:"validFrom"`
	ValidUntil        time.Time `json:"validUntil"`
	IsActive          bool      `json:"isActive"`
}

// Discount — идентификация промокода в ответах API. Прочие поля не
// разбираются: суммы DECIMAL сервер отдаёт строками ("20.00").
type Discount struct {
	DiscountID ID     `json:"discountId,omitempty"`
	ID         ID     `json:"id,omitempty"`
	Code       string `json:"code,omitempty"`
}

// Identifier возвращает discountId, иначе id, иначе code.
func (d Discount) Identifier() string {
	return firstNonEmpty(d.DiscountID.String(), d.ID.String(), d.Code)
}

// DiscountPage — data ответа GET /discounts: объект {discountCodes: [...]}
// или сам массив. Элементы не разбираются, считается только их число.
type DiscountPage struct {
	Items []json.RawMessage
	known bool
}

// Count возвращает число промокодов; ok=false, если оно неизвестно.
func (p *DiscountPage) Count() (n int, ok bool) {
	if p == nil || !p.known {
		return 0, false
	}
	return len(p.Items), true
}

// UnmarshalJSON принимает массив или объект с полем discountCodes.
// Любая другая форма даёт страницу с неизвестным числом, не ошибку.
func (p *DiscountPage) UnmarshalJSON(data []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err == nil {
		p.Items, p.known = items, true
		return nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil
	}
	if raw, ok := obj["discountCodes"]; ok && json.Unmarshal(raw, &items) == nil && items != nil {
		p.Items, p.known = items, true
	}
	return nil
}

// DiscountLookup — data ответа GET /discounts/{id}: промокод целиком
// либо вложенный в discountCode.
type DiscountLookup struct {
	Discount
	DiscountCode *Discount `json:"discountCode,omitempty"`
}

// EchoedCode возвращает код промокода из ответа или пустую строку.
func (l DiscountLookup) EchoedCode() string {
	if l.DiscountCode != nil && l.DiscountCode.Code != "" {
		return l.DiscountCode.Code
	}
	return l.Code
}

// Course — курс каталога.
type Course struct {
	CourseID ID     `json:"courseId,omitempty"`
	ID       ID     `json:"id,omitempty"`
	Title    string `json:"title,omitempty"`
}

// Identifier возвращает courseId, иначе id.
func (c Course) Identifier() string {
	return firstNonEmpty(c.CourseID.String(), c.ID.String())
}

// CoursePage — data ответа GET /course/getAllCourses.
type CoursePage struct {
	Courses []Course `json:"courses"`
}

// Section — раздел курса.
type Section struct {
	SectionID ID     `json:"sectionId,omitempty"`
	ID        ID     `json:"id,omitempty"`
	CourseID  ID     `json:"courseId,omitempty"`
	Title     string `json:"title,omitempty"`
}

// Identifier возвращает sectionId, иначе id.
func (s Section) Identifier() string {
	return firstNonEmpty(s.SectionID.String(), s.ID.String())
}

// SectionPage — data ответа GET /section/getSectionsByCourseId/{courseId}.
type SectionPage struct {
	Sections []Section `json:"sections"`
}

// SectionRequest — тело создания раздела.
type SectionRequest struct {
	CourseID    string `json:"courseId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

// LessonRequest — тело создания урока.
type LessonRequest struct {
	CourseID  string `json:"courseId"`
	SectionID string `json:"sectionId"`
	Title     string `json:"title"`
	Type      string `json:"type"`
	Content   string `json:"content"`
	Duration  int    `json:"duration"`
	Order     int    `json:"order"`
	IsPreview bool   `json:"isPreview"`
}

// Lesson — урок в ответах API.
type Lesson struct {
	LessonID ID     `json:"lessonId,omitempty"`
	ID       ID     `json:"id,omitempty"`
	Title    string `json:"title,omitempty"`
}

// Identifier возвращает lessonId, иначе id.
func (l Lesson) Identifier() string {
	return firstNonEmpty(l.LessonID.String(), l.ID.String())
}

// LessonUpdate — тело обновления урока.
type LessonUpdate struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
