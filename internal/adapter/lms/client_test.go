package lms_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/api-smoke/internal/adapter/lms"
	"github.com/Kargones/api-smoke/internal/adapter/lms/lmstest"
	"github.com/Kargones/api-smoke/internal/pkg/apperrors"
)

func newClient(t *testing.T, srv *lmstest.Server) *lms.HTTPClient {
	t.Helper()
	c, err := lms.NewHTTPClient(srv.BaseURL(), lms.WithTimeout(5*time.Second), lms.WithUserAgent("api-smoke/test"))
	require.NoError(t, err)
	return c
}

func login(t *testing.T, c *lms.HTTPClient) lms.API {
	t.Helper()
	token, _, err := c.Login(context.Background(), lms.Credentials{Identifier: lmstest.Identifier, Password: lmstest.Password})
	require.NoError(t, err)
	return c.Authorized(token)
}

func TestNewHTTPClient_InvalidBaseURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:8080", "/api", "://bad"} {
		_, err := lms.NewHTTPClient(raw)
		assert.Error(t, err, raw)
	}
}

func TestNewHTTPClient_TrimsTrailingSlash(t *testing.T) {
	c, err := lms.NewHTTPClient("http://localhost:8080/api/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api", c.BaseURL())
}

func TestLogin_Success(t *testing.T) {
	srv := lmstest.NewServer(t)
	c := newClient(t, srv)

	token, resp, err := c.Login(context.Background(), lms.Credentials{Identifier: lmstest.Identifier, Password: lmstest.Password})
	require.NoError(t, err)
	assert.Equal(t, lmstest.Token, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.RequestID)

	req := srv.LastRequest("POST /user/userLogin")
	require.NotNil(t, req)
	assert.Empty(t, req.Authorization)
	assert.Equal(t, resp.RequestID, req.RequestID)

	var body map[string]string
	require.NoError(t, json.Unmarshal(req.Body, &body))
	assert.Equal(t, lmstest.Identifier, body["identifier"])
	assert.Equal(t, lmstest.Password, body["password"])
}

func TestLogin_WrongPassword(t *testing.T) {
	srv := lmstest.NewServer(t)
	c := newClient(t, srv)

	token, resp, err := c.Login(context.Background(), lms.Credentials{Identifier: lmstest.Identifier, Password: "wrong"})
	require.Error(t, err)
	assert.Empty(t, token)
	assert.Equal(t, apperrors.ErrUnexpectedStatus, apperrors.CodeOf(err))
	assert.Contains(t, err.Error(), "Invalid credentials")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_MissingToken(t *testing.T) {
	srv := lmstest.NewServer(t)
	srv.Override("POST /user/userLogin", lmstest.Override{Status: http.StatusOK, Body: `{"success":true,"data":{"user":{}}}`})
	c := newClient(t, srv)

	_, _, err := c.Login(context.Background(), lms.Credentials{Identifier: lmstest.Identifier, Password: lmstest.Password})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrFixtureMissing, apperrors.CodeOf(err))
}

func TestLogin_SuccessFalse(t *testing.T) {
	srv := lmstest.NewServer(t)
	srv.Override("POST /user/userLogin", lmstest.Override{Status: http.StatusOK, Body: `{"success":false,"message":"account locked"}`})
	c := newClient(t, srv)

	_, _, err := c.Login(context.Background(), lms.Credentials{})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrEnvelopeNotSuccess, apperrors.CodeOf(err))
	assert.Contains(t, err.Error(), "account locked")
}

func TestLogin_Unreachable(t *testing.T) {
	srv := lmstest.NewServer(t)
	c := newClient(t, srv)
	srv.Close()

	_, resp, err := c.Login(context.Background(), lms.Credentials{})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTransport, apperrors.CodeOf(err))
	require.NotNil(t, resp)
	assert.Zero(t, resp.StatusCode)
	assert.NotEmpty(t, resp.Curl)
}

func TestAuthorized_SendsBearer(t *testing.T) {
	srv := lmstest.NewServer(t)
	api := login(t, newClient(t, srv))

	_, _, err := api.ListDiscounts(context.Background())
	require.NoError(t, err)

	req := srv.LastRequest("GET /discounts")
	require.NotNil(t, req)
	assert.Equal(t, "Bearer "+lmstest.Token, req.Authorization)
}

func TestAuthorized_DoesNotMutateParent(t *testing.T) {
	srv := lmstest.NewServer(t)
	c := newClient(t, srv)
	_ = c.Authorized("secret")

	_, _, err := c.Login(context.Background(), lms.Credentials{Identifier: lmstest.Identifier, Password: lmstest.Password})
	require.NoError(t, err)
	assert.Empty(t, srv.LastRequest("POST /user/userLogin").Authorization)
}

func TestListDiscounts_Unauthorized(t *testing.T) {
	srv := lmstest.NewServer(t)
	api := newClient(t, srv).Authorized("bad-token")

	_, resp, err := api.ListDiscounts(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrUnexpectedStatus, apperrors.CodeOf(err))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestListDiscounts(t *testing.T) {
	srv := lmstest.NewServer(t)
	api := login(t, newClient(t, srv))

	page, _, err := api.ListDiscounts(context.Background())
	require.NoError(t, err)
	n, ok := page.Count()
	assert.True(t, ok)
	assert.Equal(t, 2, n)
}

func TestListDiscounts_ArrayData(t *testing.T) {
	srv := lmstest.NewServer(t)
	srv.Override("GET /discounts", lmstest.Override{Status: http.StatusOK, Body: `{"success":true,` +
		`"data":[{"discountId":7,"code":"WELCOME10","discountValue":"10.00","minPurchaseAmount":"0.00"}],` +
		`"pagination":{"total":1,"page":1,"limit":10,"totalPages":1}}`})
	api := login(t, newClient(t, srv))

	page, _, err := api.ListDiscounts(context.Background())
	require.NoError(t, err)
	n, ok := page.Count()
	assert.True(t, ok)
	assert.Equal(t, 1, n)
}

func TestListDiscounts_UnknownShape(t *testing.T) {
	srv := lmstest.NewServer(t)
	srv.Override("GET /discounts", lmstest.Override{Status: http.StatusOK, Body: `{"success":true,"data":{"discountCodes":"n/a"}}`})
	api := login(t, newClient(t, srv))

	page, _, err := api.ListDiscounts(context.Background())
	require.NoError(t, err)
	_, ok := page.Count()
	assert.False(t, ok)
}

func TestListDiscounts_NoData(t *testing.T) {
	srv := lmstest.NewServer(t)
	srv.Override("GET /discounts", lmstest.Override{Status: http.StatusOK, Body: `{"success":true}`})
	api := login(t, newClient(t, srv))

	page, _, err := api.ListDiscounts(context.Background())
	require.NoError(t, err)
	_, ok := page.Count()
	assert.False(t, ok)
}

func TestListDiscounts_HTMLBody(t *testing.T) {
	srv := lmstest.NewServer(t)
	srv.Override("GET /discounts", lmstest.Override{Status: http.StatusOK, Body: "<html>gateway</html>", ContentType: "text/html"})
	api := login(t, newClient(t, srv))

	_, resp, err := api.ListDiscounts(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrEnvelopeMalformed, apperrors.CodeOf(err))
	assert.Nil(t, resp.Envelope)
	assert.Equal(t, "<html>gateway</html>", resp.PrettyBody())
}

func TestCreateAndGetDiscount(t *testing.T) {
	srv := lmstest.NewServer(t)
	api := login(t, newClient(t, srv))
	now := time.Now().UTC()

	created, resp, err := api.CreateDiscount(context.Background(), lms.DiscountRequest{
		Code:          "TEST1760000000",
		DiscountType:  "percentage",
		DiscountValue: 10,
		ValidFrom:     now,
		ValidUntil:    now.Add(30 * 24 * time.Hour),
		IsActive:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "TEST1760000000", created.Code)
	require.NotEmpty(t, created.Identifier())
	assert.Equal(t, 3, srv.Discounts())

	lookup, resp, err := api.GetDiscount(context.Background(), created.Identifier())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "TEST1760000000", lookup.EchoedCode())

	assert.Contains(t, resp.PrettyBody(), `"discountValue": "10.00"`)
}

func TestCreateDiscount_DecimalStrings(t *testing.T) {
	srv := lmstest.NewServer(t)
	srv.Override("POST /discounts", lmstest.Override{Status: http.StatusCreated, Body: `{"success":true,` +
		`"message":"Discount code created successfully",` +
		`"data":{"discountId":42,"code":"TEST1760000000","discountValue":"20.00","minPurchaseAmount":"0.00","maxDiscountAmount":null}}`})
	api := login(t, newClient(t, srv))
	now := time.Now().UTC()

	created, _, err := api.CreateDiscount(context.Background(), lms.DiscountRequest{
		Code:          "TEST1760000000",
		DiscountValue: 20,
		ValidFrom:     now,
		ValidUntil:    now.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "42", created.Identifier())
	assert.Equal(t, "TEST1760000000", created.Code)
}

func TestCreateDiscount_Rejected(t *testing.T) {
	srv := lmstest.NewServer(t)
	api := login(t, newClient(t, srv))
	now := time.Now().UTC()

	_, resp, err := api.CreateDiscount(context.Background(), lms.DiscountRequest{
		Code:       "X",
		ValidFrom:  now,
		ValidUntil: now.Add(time.Hour),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, apperrors.ErrUnexpectedStatus, apperrors.CodeOf(err))
	assert.Contains(t, err.Error(), "between 3 and 20")
}

func TestGetDiscount_NotFound(t *testing.T) {
	srv := lmstest.NewServer(t)
	api := login(t, newClient(t, srv))

	_, resp, err := api.GetDiscount(context.Background(), "missing/id")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "/discounts/missing%2Fid", resp.Path)
}

func TestGetDiscount_NestedCode(t *testing.T) {
	srv := lmstest.NewServer(t)
	srv.Override("GET /discounts/{id}", lmstest.Override{
		Status: http.StatusOK,
		Body:   `{"success":true,"data":{"discountCode":{"id":7,"code":"NESTED"}}}`,
	})
	api := login(t, newClient(t, srv))

	lookup, _, err := api.GetDiscount(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "NESTED", lookup.EchoedCode())
}

func TestListCourses_Query(t *testing.T) {
	srv := lmstest.NewServer(t)
	api := login(t, newClient(t, srv))

	page, _, err := api.ListCourses(context.Background(), 1, 1)
	require.NoError(t, err)
	require.Len(t, page.Courses, 1)
	assert.Equal(t, "course-1", page.Courses[0].Identifier())

	req := srv.LastRequest("GET /course/getAllCourses")
	require.NotNil(t, req)
	assert.Equal(t, "limit=1&page=1", req.Query)
}

func TestListCourses_Empty(t *testing.T) {
	srv := lmstest.NewServer(t)
	srv.SetCourses()
	api := login(t, newClient(t, srv))

	page, _, err := api.ListCourses(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Empty(t, page.Courses)
}

func TestSectionsAndLesson(t *testing.T) {
	srv := lmstest.NewServer(t)
	api := login(t, newClient(t, srv))
	ctx := context.Background()

	sections, _, err := api.ListSections(ctx, "course-1")
	require.NoError(t, err)
	require.Len(t, sections.Sections, 1)
	assert.Equal(t, "section-1", sections.Sections[0].Identifier())

	lesson, resp, err := api.CreateLesson(ctx, lms.LessonRequest{
		CourseID:  "course-1",
		SectionID: "section-1",
		Title:     "Smoke lesson",
		Type:      "text",
		Content:   "body",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, lesson.Identifier())

	_, err = api.UpdateLesson(ctx, lesson.Identifier(), lms.LessonUpdate{Title: "Updated", Content: "new"})
	require.NoError(t, err)
	assert.Equal(t, "Updated", srv.Lesson(lesson.Identifier())["title"])
}

func TestCreateSection(t *testing.T) {
	srv := lmstest.NewServer(t)
	srv.SetSections("course-1")
	api := login(t, newClient(t, srv))

	section, resp, err := api.CreateSection(context.Background(), lms.SectionRequest{CourseID: "course-1", Title: "Smoke"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, section.Identifier())

	page, _, err := api.ListSections(context.Background(), "course-1")
	require.NoError(t, err)
	assert.Len(t, page.Sections, 1)
}

func TestCreateLesson_UnknownSection(t *testing.T) {
	srv := lmstest.NewServer(t)
	api := login(t, newClient(t, srv))

	_, resp, err := api.CreateLesson(context.Background(), lms.LessonRequest{CourseID: "course-1", SectionID: "nope"})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateLesson_NoData(t *testing.T) {
	srv := lmstest.NewServer(t)
	srv.Override("POST /lesson/admin/create", lmstest.Override{Status: http.StatusOK, Body: `{"success":true,"message":"ok"}`})
	api := login(t, newClient(t, srv))

	lesson, _, err := api.CreateLesson(context.Background(), lms.LessonRequest{})
	require.NoError(t, err)
	assert.Empty(t, lesson.Identifier())
}

func TestResponse_CurlMasksToken(t *testing.T) {
	srv := lmstest.NewServer(t)
	api := login(t, newClient(t, srv))

	_, resp, err := api.ListDiscounts(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.Curl, "curl -sS -X GET '"+srv.BaseURL()+"/discounts'"))
	assert.NotContains(t, resp.Curl, lmstest.Token)
	assert.Contains(t, resp.Curl, "Bearer eyJhbGciOiJIUzI1NiIs...")
}

func TestLoginResponse_PrettyBodyMasksToken(t *testing.T) {
	srv := lmstest.NewServer(t)
	_, resp, err := newClient(t, srv).Login(context.Background(), lms.Credentials{Identifier: lmstest.Identifier, Password: lmstest.Password})
	require.NoError(t, err)

	pretty := resp.PrettyBody()
	assert.NotContains(t, pretty, lmstest.Token)
	assert.Contains(t, pretty, `"token": "eyJhbGciOiJIUzI1NiIs..."`)
	assert.NotContains(t, resp.Curl, lmstest.Password)
}
