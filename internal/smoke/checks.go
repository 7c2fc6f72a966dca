package smoke

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Kargones/api-smoke/internal/adapter/lms"
	"github.com/Kargones/api-smoke/internal/constants"
	"github.com/Kargones/api-smoke/internal/pkg/apperrors"
)

// Pipeline возвращает проверки после логина в порядке выполнения.
// update-lesson включается настройкой lesson.verifyUpdate.
func (r *Runner) Pipeline() Pipeline {
	p := Pipeline{
		{
			Name:   constants.CheckListDiscounts,
			Method: http.MethodGet, Path: lms.PathDiscounts,
			Run: r.listDiscounts,
		},
		{
			Name:   constants.CheckCreateDiscount,
			Method: http.MethodPost, Path: lms.PathDiscounts,
			Produces: []Fixture{FixtureDiscountID, FixtureDiscountCode},
			Run:      r.createDiscount,
		},
		{
			Name:   constants.CheckGetDiscount,
			Method: http.MethodGet, Path: lms.PathDiscounts + "/{discountId}",
			Requires: []Fixture{FixtureDiscountID, FixtureDiscountCode},
			Run:      r.getDiscount,
		},
		{
			Name:   constants.CheckDiscoverCourse,
			Method: http.MethodGet, Path: lms.PathCourses + "?page=1&limit=1",
			Produces: []Fixture{FixtureCourseID},
			Run:      r.discoverCourse,
		},
		{
			Name:   constants.CheckDiscoverSection,
			Method: http.MethodGet, Path: lms.PathSectionsPrefix + "{courseId}",
			Requires: []Fixture{FixtureCourseID},
			Produces: []Fixture{FixtureSectionID},
			Run:      r.discoverSection,
		},
		{
			Name:   constants.CheckCreateLesson,
			Method: http.MethodPost, Path: lms.PathLessonCreate,
			Requires: []Fixture{FixtureCourseID, FixtureSectionID},
			Produces: []Fixture{FixtureLessonID},
			Run:      r.createLesson,
		},
	}

	if r.cfg.Lesson.VerifyUpdate {
		p = append(p, Step{
			Name:   constants.CheckUpdateLesson,
			Method: http.MethodPut, Path: lms.PathLessonPrefix + "{lessonId}",
			Requires: []Fixture{FixtureLessonID},
			Run:      r.updateLesson,
		})
	}
	return p
}

func (r *Runner) listDiscounts(ctx context.Context, api lms.API, _ *Fixtures) CheckResult {
	page, resp, err := api.ListDiscounts(ctx)
	if err != nil {
		return failure(constants.CheckListDiscounts, resp, err)
	}

	res := success(constants.CheckListDiscounts, resp)
	if n, ok := page.Count(); ok {
		res.detail("count", strconv.Itoa(n))
	}
	return res
}

// DiscountCode возвращает уникальный код скидки: префикс и unix-время.
func DiscountCode(prefix string, unix int64) string {
	return prefix + strconv.FormatInt(unix, 10)
}

func (r *Runner) createDiscount(ctx context.Context, api lms.API, _ *Fixtures) CheckResult {
	cfg := r.cfg.Discount
	now := r.now().UTC().Truncate(time.Millisecond)
	code := DiscountCode(cfg.CodePrefix, now.Unix())

	discount, resp, err := api.CreateDiscount(ctx, lms.DiscountRequest{
		Code:              code,
		Description:       cfg.Description,
		DiscountType:      cfg.DiscountType,
		DiscountValue:     cfg.DiscountValue,
		ApplicableType:    cfg.ApplicableType,
		MinPurchaseAmount: cfg.MinPurchaseAmount,
		MaxUses:           cfg.MaxUses,
		MaxUsesPerUser:    cfg.MaxUsesPerUser,
		ValidFrom:         now,
		ValidUntil:        now.Add(cfg.Validity),
		IsActive:          cfg.IsActive,
	})
	if err != nil {
		res := failure(constants.CheckCreateDiscount, resp, err)
		res.detail("code", code)
		return res
	}

	id := discount.Identifier()
	if id == "" {
		res := failure(constants.CheckCreateDiscount, resp,
			apperrors.NewAppError(apperrors.ErrFixtureMissing, "в ответе создания нет discountId, id и code", nil))
		res.detail("code", code)
		return res
	}

	res := success(constants.CheckCreateDiscount, resp)
	res.detail("code", code)
	res.detail("id", id)
	res.produce(FixtureDiscountCode, code)
	res.produce(FixtureDiscountID, id)
	return res
}

func (r *Runner) getDiscount(ctx context.Context, api lms.API, fx *Fixtures) CheckResult {
	id := fx.Value(FixtureDiscountID)
	want := fx.Value(FixtureDiscountCode)

	lookup, resp, err := api.GetDiscount(ctx, id)
	if err != nil {
		return failure(constants.CheckGetDiscount, resp, err)
	}

	echoed := lookup.EchoedCode()
	if echoed != "" && echoed != want {
		return failure(constants.CheckGetDiscount, resp, apperrors.NewAppError(apperrors.ErrAssertion,
			fmt.Sprintf("код в ответе %q, ожидался %q", echoed, want), nil))
	}

	res := success(constants.CheckGetDiscount, resp)
	res.detail("id", id)
	if echoed != "" {
		res.detail("code", echoed)
	}
	return res
}

func (r *Runner) discoverCourse(ctx context.Context, api lms.API, _ *Fixtures) CheckResult {
	page, resp, err := api.ListCourses(ctx, 1, 1)
	if err != nil {
		return failure(constants.CheckDiscoverCourse, resp, err)
	}
	if len(page.Courses) == 0 {
		return failure(constants.CheckDiscoverCourse, resp,
			apperrors.NewAppError(apperrors.ErrFixtureMissing, "no courses found", nil))
	}

	course := page.Courses[0]
	id := course.Identifier()
	if id == "" {
		return failure(constants.CheckDiscoverCourse, resp,
			apperrors.NewAppError(apperrors.ErrFixtureMissing, "courses[0] has no courseId", nil))
	}

	res := success(constants.CheckDiscoverCourse, resp)
	res.detail("courseId", id)
	res.produce(FixtureCourseID, id)
	return res
}

func (r *Runner) discoverSection(ctx context.Context, api lms.API, fx *Fixtures) CheckResult {
	courseID := fx.Value(FixtureCourseID)

	page, resp, err := api.ListSections(ctx, courseID)
	if err != nil {
		return failure(constants.CheckDiscoverSection, resp, err)
	}

	if len(page.Sections) == 0 {
		if !r.cfg.Lesson.CreateMissingSection {
			return failure(constants.CheckDiscoverSection, resp,
				apperrors.NewAppError(apperrors.ErrFixtureMissing, "no sections found", nil))
		}
		return r.createSection(ctx, api, courseID)
	}

	id := page.Sections[0].Identifier()
	if id == "" {
		return failure(constants.CheckDiscoverSection, resp,
			apperrors.NewAppError(apperrors.ErrFixtureMissing, "sections[0] has no sectionId", nil))
	}

	res := success(constants.CheckDiscoverSection, resp)
	res.detail("sectionId", id)
	res.produce(FixtureSectionID, id)
	return res
}

// createSection создаёт раздел, если у курса их нет (lesson.createMissingSection).
func (r *Runner) createSection(ctx context.Context, api lms.API, courseID string) CheckResult {
	r.logger.Info("у курса нет разделов, создаётся новый", "course_id", courseID)
	r.diag.step(http.MethodPost, lms.PathSectionCreate)

	section, resp, err := api.CreateSection(ctx, lms.SectionRequest{
		CourseID:    courseID,
		Title:       r.cfg.Lesson.SectionTitle,
		Description: r.cfg.Lesson.SectionDescription,
		Order:       1,
	})
	if err != nil {
		return failure(constants.CheckDiscoverSection, resp, err)
	}

	id := section.Identifier()
	if id == "" {
		return failure(constants.CheckDiscoverSection, resp,
			apperrors.NewAppError(apperrors.ErrFixtureMissing, "created section has no sectionId", nil))
	}

	res := success(constants.CheckDiscoverSection, resp)
	res.Reason = "раздел создан"
	res.detail("sectionId", id)
	res.produce(FixtureSectionID, id)
	return res
}

func (r *Runner) createLesson(ctx context.Context, api lms.API, fx *Fixtures) CheckResult {
	cfg := r.cfg.Lesson

	lesson, resp, err := api.CreateLesson(ctx, lms.LessonRequest{
		CourseID:  fx.Value(FixtureCourseID),
		SectionID: fx.Value(FixtureSectionID),
		Title:     cfg.Title,
		Type:      cfg.Type,
		Content:   cfg.Content,
		Duration:  cfg.Duration,
		Order:     cfg.Order,
		IsPreview: cfg.IsPreview,
	})
	if err != nil {
		return failure(constants.CheckCreateLesson, resp, err)
	}

	res := success(constants.CheckCreateLesson, resp)
	if id := lesson.Identifier(); id != "" {
		res.detail("lessonId", id)
		res.produce(FixtureLessonID, id)
	} else {
		res.Reason = "в ответе нет lessonId"
	}
	return res
}

func (r *Runner) updateLesson(ctx context.Context, api lms.API, fx *Fixtures) CheckResult {
	id := fx.Value(FixtureLessonID)

	resp, err := api.UpdateLesson(ctx, id, lms.LessonUpdate{
		Title:   r.cfg.Lesson.UpdatedTitle,
		Content: r.cfg.Lesson.UpdatedContent,
	})
	if err != nil {
		return failure(constants.CheckUpdateLesson, resp, err)
	}

	res := success(constants.CheckUpdateLesson, resp)
	res.detail("lessonId", id)
	return res
}
