package lms

import "context"

// Authenticator выполняет логин.
type Authenticator interface {
	// Login возвращает токен из data.token.
	Login(ctx context.Context, creds Credentials) (string, *Response, error)
}

// DiscountAPI — операции с промокодами.
type DiscountAPI interface {
	ListDiscounts(ctx context.Context) (*DiscountPage, *Response, error)
	CreateDiscount(ctx context.Context, req DiscountRequest) (*Discount, *Response, error)
	GetDiscount(ctx context.Context, id string) (*DiscountLookup, *Response, error)
}

// CatalogAPI — курсы и разделы.
type CatalogAPI interface {
	ListCourses(ctx context.Context, page, limit int) (*CoursePage, *Response, error)
	ListSections(ctx context.Context, courseID string) (*SectionPage, *Response, error)
	CreateSection(ctx context.Context, req SectionRequest) (*Section, *Response, error)
}

// LessonAPI — уроки.
type LessonAPI interface {
	CreateLesson(ctx context.Context, req LessonRequest) (*Lesson, *Response, error)
	UpdateLesson(ctx context.Context, lessonID string, req LessonUpdate) (*Response, error)
}

// API объединяет операции, требующие токена.
type API interface {
	DiscountAPI
	CatalogAPI
	LessonAPI
}

// Client — точка входа: логин и получение авторизованного API.
type Client interface {
	Authenticator

	// Authorized возвращает API, отправляющий "Authorization: Bearer <token>".
	Authorized(token string) API
}
