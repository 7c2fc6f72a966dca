package lms

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Kargones/api-smoke/internal/pkg/apperrors"
)

// Пути эндпоинтов относительно base URL.
const (
	PathLogin          = "/user/userLogin"
	PathDiscounts      = "/discounts"
	PathCourses        = "/course/getAllCourses"
	PathSectionsPrefix = "/section/getSectionsByCourseId/"
	PathSectionCreate  = "/section/admin/create"
	PathLessonCreate   = "/lesson/admin/create"
	PathLessonPrefix   = "/lesson/admin/"
)

// DiscountPath возвращает путь промокода.
func DiscountPath(id string) string { return PathDiscounts + "/" + url.PathEscape(id) }

// SectionsPath возвращает путь списка разделов курса.
func SectionsPath(courseID string) string { return PathSectionsPrefix + url.PathEscape(courseID) }

// LessonPath возвращает путь урока.
func LessonPath(lessonID string) string { return PathLessonPrefix + url.PathEscape(lessonID) }

// Login выполняет POST /user/userLogin. Успех: 200, success=true и непустой data.token.
func (c *HTTPClient) Login(ctx context.Context, creds Credentials) (string, *Response, error) {
	resp, err := c.do(ctx, http.MethodPost, PathLogin, nil, creds)
	if err != nil {
		return "", resp, err
	}
	if err := resp.Expect(http.StatusOK); err != nil {
		return "", resp, err
	}

	var session Session
	if err := resp.DecodeData(&session); err != nil {
		return "", resp, err
	}
	if session.Token == "" {
		return "", resp, apperrors.NewAppError(apperrors.ErrFixtureMissing, "в ответе логина нет data.token", nil)
	}
	return session.Token, resp, nil
}

// ListDiscounts выполняет GET /discounts. Успех: 200 и success=true.
// Если data не разобрано, число промокодов считается неизвестным.
func (c *HTTPClient) ListDiscounts(ctx context.Context) (*DiscountPage, *Response, error) {
	resp, err := c.do(ctx, http.MethodGet, PathDiscounts, nil, nil)
	if err != nil {
		return nil, resp, err
	}
	if err := resp.Expect(http.StatusOK); err != nil {
		return nil, resp, err
	}

	page := &DiscountPage{}
	c.decodeLenient(resp, page)
	return page, resp, nil
}

// CreateDiscount выполняет POST /discounts. Сервер отвечает 201 или 200.
// Наличие идентификатора в ответе проверяет вызывающий.
func (c *HTTPClient) CreateDiscount(ctx context.Context, req DiscountRequest) (*Discount, *Response, error) {
	resp, err := c.do(ctx, http.MethodPost, PathDiscounts, nil, req)
	if err != nil {
		return nil, resp, err
	}
	if err := resp.Expect(http.StatusCreated, http.StatusOK); err != nil {
		return nil, resp, err
	}

	discount := &Discount{}
	c.decodeLenient(resp, discount)
	return discount, resp, nil
}

// GetDiscount выполняет GET /discounts/{id}. Успех: 200 и success=true.
func (c *HTTPClient) GetDiscount(ctx context.Context, id string) (*DiscountLookup, *Response, error) {
	resp, err := c.do(ctx, http.MethodGet, DiscountPath(id), nil, nil)
	if err != nil {
		return nil, resp, err
	}
	if err := resp.Expect(http.StatusOK); err != nil {
		return nil, resp, err
	}

	lookup := &DiscountLookup{}
	c.decodeLenient(resp, lookup)
	return lookup, resp, nil
}

// decodeLenient разбирает data в v. Ошибка разбора не делает ответ
// неуспешным: v остаётся с нулевыми полями, причина пишется в debug лог.
func (c *HTTPClient) decodeLenient(resp *Response, v any) {
	if err := resp.DecodeData(v); err != nil {
		c.logger.Debug("data ответа не разобрано",
			"method", resp.Method,
			"path", resp.Path,
			"error", err.Error(),
		)
	}
}

// ListCourses выполняет GET /course/getAllCourses?page=&limit=.
func (c *HTTPClient) ListCourses(ctx context.Context, page, limit int) (*CoursePage, *Response, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	resp, err := c.do(ctx, http.MethodGet, PathCourses, query, nil)
	if err != nil {
		return nil, resp, err
	}
	if err := resp.Expect(http.StatusOK); err != nil {
		return nil, resp, err
	}

	result := &CoursePage{}
	if err := resp.DecodeData(result); err != nil {
		return nil, resp, err
	}
	return result, resp, nil
}

// ListSections выполняет GET /section/getSectionsByCourseId/{courseId}.
func (c *HTTPClient) ListSections(ctx context.Context, courseID string) (*SectionPage, *Response, error) {
	resp, err := c.do(ctx, http.MethodGet, SectionsPath(courseID), nil, nil)
	if err != nil {
		return nil, resp, err
	}
	if err := resp.Expect(http.StatusOK); err != nil {
		return nil, resp, err
	}

	result := &SectionPage{}
	if err := resp.DecodeData(result); err != nil {
		return nil, resp, err
	}
	return result, resp, nil
}

// CreateSection выполняет POST /section/admin/create.
func (c *HTTPClient) CreateSection(ctx context.Context, req SectionRequest) (*Section, *Response, error) {
	resp, err := c.do(ctx, http.MethodPost, PathSectionCreate, nil, req)
	if err != nil {
		return nil, resp, err
	}
	if err := resp.Expect(http.StatusCreated, http.StatusOK); err != nil {
		return nil, resp, err
	}

	section := &Section{}
	if err := resp.DecodeData(section); err != nil {
		return nil, resp, err
	}
	return section, resp, nil
}

// CreateLesson выполняет POST /lesson/admin/create. Успех: 200 и success=true.
// Отсутствие data не считается ошибкой: lessonId нужен только проверке обновления.
func (c *HTTPClient) CreateLesson(ctx context.Context, req LessonRequest) (*Lesson, *Response, error) {
	resp, err := c.do(ctx, http.MethodPost, PathLessonCreate, nil, req)
	if err != nil {
		return nil, resp, err
	}
	if err := resp.Expect(http.StatusOK); err != nil {
		return nil, resp, err
	}

	lesson := &Lesson{}
	if err := resp.DecodeData(lesson); err != nil {
		if apperrors.CodeOf(err) == apperrors.ErrFixtureMissing {
			return lesson, resp, nil
		}
		return nil, resp, err
	}
	return lesson, resp, nil
}

// UpdateLesson выполняет PUT /lesson/admin/{lessonId}.
func (c *HTTPClient) UpdateLesson(ctx context.Context, lessonID string, req LessonUpdate) (*Response, error) {
	resp, err := c.do(ctx, http.MethodPut, LessonPath(lessonID), nil, req)
	if err != nil {
		return resp, err
	}
	if err := resp.Expect(http.StatusOK); err != nil {
		return resp, err
	}
	return resp, nil
}
