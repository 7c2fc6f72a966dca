// Package smoke реализует последовательный smoke-прогон API учебной платформы.
//
// Прогон начинается с логина. Без токена прогон прерывается: сетевых
// вызовов больше нет, сводка не печатается. После логина выполняется
// упорядоченный конвейер проверок (Pipeline). Каждая проверка объявляет
// фикстуры, которые ей нужны (Requires) и которые она производит (Produces):
//
//	list-discounts
//	create-discount  → discountId, discountCode
//	get-discount     ← discountId, discountCode
//	discover-course  → courseId
//	discover-section ← courseId → sectionId
//	create-lesson    ← courseId, sectionId → lessonId
//	update-lesson    ← lessonId
//
// Если нужной фикстуры нет, проверка не выполняется и получает исход
// skipped с причиной. Исход каждой проверки: passed, failed или skipped.
package smoke
