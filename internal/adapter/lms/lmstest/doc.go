// Package lmstest предоставляет in-process реализацию API учебной платформы
// для тестов клиента lms и smoke-прогона.
//
// Server хранит промокоды, курсы, разделы и уроки в памяти, проверяет
// Bearer токен и записывает все входящие запросы:
//
//	srv := lmstest.NewServer(t)
//	client, _ := lms.NewHTTPClient(srv.BaseURL())
//	...
//	assert.Equal(t, []string{"POST /user/userLogin"}, srv.Calls())
//
// Override подменяет ответ маршрута целиком, SetCourses и SetSections
// задают каталог.
package lmstest
