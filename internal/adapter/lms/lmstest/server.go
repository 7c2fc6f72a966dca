package lmstest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// Учётные данные и токен по умолчанию.
const (
	Identifier = "admin@example.com"
	Password   = "SecurePassword@123"
	Token      = "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.smoke-test-token.signature"
)

// APIPrefix — префикс маршрутов, как у реального сервера.
const APIPrefix = "/api"

// Request — записанный входящий запрос.
type Request struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	RequestID     string
	Body          []byte
}

// Override — фиксированный ответ маршрута.
type Override struct {
	Status      int
	Body        string
	ContentType string
}

// Course и Section — элементы каталога.
type Course struct {
	CourseID string `json:"courseId"`
	Title    string `json:"title"`
}

type Section struct {
	SectionID string `json:"sectionId"`
	CourseID  string `json:"courseId"`
	Title     string `json:"title"`
}

// Server — фейковый API.
type Server struct {
	srv *httptest.Server
	mux *http.ServeMux

	mu        sync.Mutex
	requests  []Request
	overrides map[string]Override
	discounts []map[string]any
	courses   []Course
	sections  map[string][]Section
	lessons   map[string]map[string]any
	nextID    int
}

// NewServer запускает сервер с одним курсом, одним разделом и двумя промокодами.
// Сервер закрывается через t.Cleanup.
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		mux:       http.NewServeMux(),
		overrides: make(map[string]Override),
		courses:   []Course{{CourseID: "course-1", Title: "Python для начинающих"}},
		sections: map[string][]Section{
			"course-1": {{SectionID: "section-1", CourseID: "course-1", Title: "Введение"}},
		},
		lessons: make(map[string]map[string]any),
		discounts: []map[string]any{
			{"id": "d-seed-1", "code": "WELCOME10", "discountType": "percentage", "discountValue": "10.00", "isActive": true},
			{"id": "d-seed-2", "code": "SPRING25", "discountType": "percentage", "discountValue": "25.00", "isActive": false},
		},
	}
	s.routes()
	s.srv = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.srv.Close)
	return s
}

// BaseURL возвращает адрес вида "http://127.0.0.1:port/api".
func (s *Server) BaseURL() string {
	return s.srv.URL + APIPrefix
}

// Close останавливает сервер раньше t.Cleanup (имитация недоступного API).
func (s *Server) Close() {
	s.srv.Close()
}

// Override подменяет ответ маршрута. route — как в ServeMux без префикса,
// например "POST /discounts" или "GET /discounts/{id}".
func (s *Server) Override(route string, o Override) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[route] = o
}

// SetCourses заменяет каталог курсов.
func (s *Server) SetCourses(courses ...Course) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courses = courses
}

// SetSections заменяет разделы курса.
func (s *Server) SetSections(courseID string, sections ...Section) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sections[courseID] = sections
}

// Requests возвращает копию записанных запросов.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Calls возвращает запросы в виде "METHOD /path" без префикса /api.
func (s *Server) Calls() []string {
	reqs := s.Requests()
	out := make([]string, len(reqs))
	for i, r := range reqs {
		out[i] = r.Method + " " + strings.TrimPrefix(r.Path, APIPrefix)
	}
	return out
}

// LastRequest возвращает последний запрос по маршруту "METHOD /path" или nil.
func (s *Server) LastRequest(call string) *Request {
	reqs := s.Requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Method+" "+strings.TrimPrefix(reqs[i].Path, APIPrefix) == call {
			r := reqs[i]
			return &r
		}
	}
	return nil
}

// Discounts возвращает число промокодов в хранилище.
func (s *Server) Discounts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.discounts)
}

// Lesson возвращает сохранённый урок или nil.
func (s *Server) Lesson(id string) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lessons[id]
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST "+APIPrefix+"/user/userLogin", s.handleLogin)
	s.mux.HandleFunc("GET "+APIPrefix+"/discounts", s.auth(s.handleListDiscounts))
	s.mux.HandleFunc("POST "+APIPrefix+"/discounts", s.auth(s.handleCreateDiscount))
	s.mux.HandleFunc("GET "+APIPrefix+"/discounts/{id}", s.auth(s.handleGetDiscount))
	s.mux.HandleFunc("GET "+APIPrefix+"/course/getAllCourses", s.auth(s.handleListCourses))
	s.mux.HandleFunc("GET "+APIPrefix+"/section/getSectionsByCourseId/{courseId}", s.auth(s.handleListSections))
	s.mux.HandleFunc("POST "+APIPrefix+"/section/admin/create", s.auth(s.handleCreateSection))
	s.mux.HandleFunc("POST "+APIPrefix+"/lesson/admin/create", s.auth(s.handleCreateLesson))
	s.mux.HandleFunc("PUT "+APIPrefix+"/lesson/admin/{lessonId}", s.auth(s.handleUpdateLesson))
}

// serve записывает запрос и применяет Override до маршрутизации.
func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body) //nolint:errcheck // test server
	r.Body = io.NopCloser(strings.NewReader(string(body)))

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method:        r.Method,
		Path:          r.URL.Path,
		Query:         r.URL.RawQuery,
		Authorization: r.Header.Get("Authorization"),
		RequestID:     r.Header.Get("X-Request-ID"),
		Body:          body,
	})
	_, pattern := s.mux.Handler(r)
	o, overridden := s.overrides[strings.Replace(pattern, " "+APIPrefix, " ", 1)]
	s.mu.Unlock()

	if overridden {
		ct := o.ContentType
		if ct == "" {
			ct = "application/json"
		}
		w.Header().Set("Content-Type", ct)
		w.WriteHeader(o.Status)
		_, _ = io.WriteString(w, o.Body) //nolint:errcheck // test server
		return
	}

	s.mux.ServeHTTP(w, r)
}

func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+Token {
			writeJSON(w, http.StatusUnauthorized, envelope(false, "Unauthorized", nil))
			return
		}
		next(w, r)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, envelope(false, "invalid body", nil))
		return
	}
	if creds.Identifier != Identifier || creds.Password != Password {
		writeJSON(w, http.StatusUnauthorized, envelope(false, "Invalid credentials", nil))
		return
	}
	writeJSON(w, http.StatusOK, envelope(true, "Login successful", map[string]any{
		"token": Token,
		"user":  map[string]any{"email": Identifier, "role": "admin"},
	}))
}

func (s *Server) handleListDiscounts(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	codes := make([]map[string]any, len(s.discounts))
	copy(codes, s.discounts)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, envelope(true, "", map[string]any{
		"discountCodes": codes,
		"pagination":    map[string]any{"total": len(codes)},
	}))
}

func (s *Server) handleCreateDiscount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code       string    `json:"code"`
		ValidFrom  time.Time `json:"validFrom"`
		ValidUntil time.Time `json:"validUntil"`
	}
	raw := map[string]any{}
	body, _ := io.ReadAll(r.Body) //nolint:errcheck // test server
	if json.Unmarshal(body, &req) != nil || json.Unmarshal(body, &raw) != nil {
		writeJSON(w, http.StatusBadRequest, envelope(false, "invalid body", nil))
		return
	}
	if n := len(req.Code); n < 3 || n > 20 {
		writeJSON(w, http.StatusBadRequest, envelope(false, "Code must be between 3 and 20 characters", nil))
		return
	}
	if !req.ValidFrom.Before(req.ValidUntil) {
		writeJSON(w, http.StatusBadRequest, envelope(false, "validUntil must be after validFrom", nil))
		return
	}

	s.mu.Lock()
	for _, d := range s.discounts {
		if d["code"] == req.Code {
			s.mu.Unlock()
			writeJSON(w, http.StatusConflict, envelope(false, "Discount code already exists", nil))
			return
		}
	}
	raw["id"] = s.newID("d")
	decimalStrings(raw, "discountValue", "minPurchaseAmount", "maxDiscountAmount")
	s.discounts = append(s.discounts, raw)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, envelope(true, "Discount code created", raw))
}

// decimalStrings приводит числовые поля к строкам с двумя знаками,
// как их отдаёт сервер для колонок DECIMAL.
func decimalStrings(m map[string]any, keys ...string) {
	for _, k := range keys {
		if v, ok := m[k].(float64); ok {
			m[k] = strconv.FormatFloat(v, 'f', 2, 64)
		}
	}
}

func (s *Server) handleGetDiscount(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.discounts {
		if d["id"] == id || d["code"] == id {
			writeJSON(w, http.StatusOK, envelope(true, "", d))
			return
		}
	}
	writeJSON(w, http.StatusNotFound, envelope(false, "Discount code not found", nil))
}

func (s *Server) handleListCourses(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	s.mu.Lock()
	all := s.courses
	s.mu.Unlock()

	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	courses := make([]Course, end-start)
	copy(courses, all[start:end])

	writeJSON(w, http.StatusOK, envelope(true, "", map[string]any{
		"courses":    courses,
		"pagination": map[string]any{"page": page, "limit": limit, "total": len(all)},
	}))
}

func (s *Server) handleListSections(w http.ResponseWriter, r *http.Request) {
	courseID := r.PathValue("courseId")

	s.mu.Lock()
	sections := append([]Section{}, s.sections[courseID]...)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, envelope(true, "", map[string]any{"sections": sections}))
}

func (s *Server) handleCreateSection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CourseID string `json:"courseId"`
		Title    string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CourseID == "" || req.Title == "" {
		writeJSON(w, http.StatusBadRequest, envelope(false, "courseId and title are required", nil))
		return
	}

	s.mu.Lock()
	section := Section{SectionID: s.newID("section"), CourseID: req.CourseID, Title: req.Title}
	s.sections[req.CourseID] = append(s.sections[req.CourseID], section)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, envelope(true, "Section created", section))
}

func (s *Server) handleCreateLesson(w http.ResponseWriter, r *http.Request) {
	raw := map[string]any{}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeJSON(w, http.StatusBadRequest, envelope(false, "invalid body", nil))
		return
	}
	courseID, _ := raw["courseId"].(string)
	sectionID, _ := raw["sectionId"].(string)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasSection(courseID, sectionID) {
		writeJSON(w, http.StatusNotFound, envelope(false, "Course or section not found", nil))
		return
	}
	id := s.newID("lesson")
	raw["lessonId"] = id
	s.lessons[id] = raw
	writeJSON(w, http.StatusOK, envelope(true, "Lesson created", raw))
}

func (s *Server) handleUpdateLesson(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("lessonId")
	update := map[string]any{}
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeJSON(w, http.StatusBadRequest, envelope(false, "invalid body", nil))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	lesson, ok := s.lessons[id]
	if !ok {
		writeJSON(w, http.StatusNotFound, envelope(false, "Lesson not found", nil))
		return
	}
	for k, v := range update {
		lesson[k] = v
	}
	writeJSON(w, http.StatusOK, envelope(true, "Lesson updated", lesson))
}

// hasSection вызывается под s.mu.
func (s *Server) hasSection(courseID, sectionID string) bool {
	for _, sec := range s.sections[courseID] {
		if sec.SectionID == sectionID {
			return true
		}
	}
	return false
}

// newID вызывается под s.mu.
func (s *Server) newID(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

func queryInt(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v < 1 {
		return def
	}
	return v
}

func envelope(success bool, message string, data any) map[string]any {
	env := map[string]any{"success": success}
	if message != "" {
		env["message"] = message
	}
	if data != nil {
		env["data"] = data
	}
	return env
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck // test server
}
