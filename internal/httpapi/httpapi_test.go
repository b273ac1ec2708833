package httpapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/goliatone/go-campus-api/cache"
	"github.com/goliatone/go-campus-api/courses"
	"github.com/goliatone/go-campus-api/pkg/testsupport"
	"github.com/goliatone/go-campus-api/students"
)

type fixture struct {
	handler      http.Handler
	courseStore  *testsupport.StoreFake[courses.Course]
	studentStore *testsupport.StoreFake[students.Student]
	cache        *testsupport.CacheFake
}

func newFixture() *fixture {
	courseStore := testsupport.NewStoreFake(
		func(c courses.Course) string { return c.ID.Hex() },
		func(c courses.Course, id string) courses.Course {
			oid, _ := primitive.ObjectIDFromHex(id)
			c.ID = oid
			return c
		},
	)
	studentStore := testsupport.NewStoreFake(
		func(s students.Student) string { return s.ID.Hex() },
		func(s students.Student, id string) students.Student {
			oid, _ := primitive.ObjectIDFromHex(id)
			s.ID = oid
			return s
		},
	)
	cacheFake := testsupport.NewCacheFake()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	courseSvc := courses.NewService(courseStore, cacheFake, cache.CourseKeys(), cache.DefaultTTL)
	studentSvc := students.NewService(studentStore, cacheFake, cache.StudentKeys(), cache.DefaultTTL)

	return &fixture{
		handler:      NewHandler(courseSvc, studentSvc, logger),
		courseStore:  courseStore,
		studentStore: studentStore,
		cache:        cacheFake,
	}
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response body %q: %v", rec.Body.String(), err)
	}
	return body
}

const createCourseBody = `{
	"title": "Distributed Systems",
	"description": "Consensus, replication and caching",
	"category": "computer-science",
	"instructor": "R. Lamport",
	"startDate": "2026-09-01",
	"endDate": "2027-01-15"
}`

func TestCreateCourse(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodPost, "/api/courses", createCourseBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["message"] != "Course created successfully." {
		t.Errorf("unexpected message %q", body["message"])
	}

	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %T", body["data"])
	}
	for field, want := range map[string]string{
		"title":       "Distributed Systems",
		"description": "Consensus, replication and caching",
		"category":    "computer-science",
		"instructor":  "R. Lamport",
	} {
		if data[field] != want {
			t.Errorf("data[%q] = %v, want %q", field, data[field], want)
		}
	}
	if id, _ := data["id"].(string); len(id) != 24 {
		t.Errorf("expected generated 24-char id, got %v", data["id"])
	}
	if v, present := data["updatedAt"]; !present || v != nil {
		t.Errorf("expected explicit null updatedAt, got %v (present=%v)", v, present)
	}
	if _, present := data["startDate"]; !present {
		t.Error("expected startDate in response")
	}
}

func TestCreateCourse_MissingFieldIsRejected(t *testing.T) {
	f := newFixture()

	body := `{"title": "Distributed Systems"}`
	rec := f.do(t, http.MethodPost, "/api/courses", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if decoded := decodeBody(t, rec); decoded["error"] == nil {
		t.Error("expected error in response body")
	}
	if f.courseStore.StoreCalls() != 0 {
		t.Errorf("expected zero store calls, got %d", f.courseStore.StoreCalls())
	}
}

func TestCreateCourse_MalformedBody(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodPost, "/api/courses", `{"title": `)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "Invalid request body." {
		t.Errorf("unexpected error %q", body["error"])
	}
}

func TestUpdateCourse_PartialMergePreservesOmittedFields(t *testing.T) {
	f := newFixture()

	created := decodeBody(t, f.do(t, http.MethodPost, "/api/courses", createCourseBody))
	id := created["data"].(map[string]any)["id"].(string)

	rec := f.do(t, http.MethodPut, "/api/courses/"+id, `{"title": "Advanced Distributed Systems"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	data := decodeBody(t, rec)["data"].(map[string]any)
	if data["title"] != "Advanced Distributed Systems" {
		t.Errorf("expected updated title, got %v", data["title"])
	}
	if data["instructor"] != "R. Lamport" || data["category"] != "computer-science" {
		t.Error("omitted fields must survive a partial update")
	}
	if data["updatedAt"] == nil {
		t.Error("expected refreshed updatedAt")
	}
}

func TestGetCourse_MalformedID(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodGet, "/api/courses/not-an-id", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "Invalid course ID." {
		t.Errorf("unexpected error %q", body["error"])
	}
	if f.courseStore.StoreCalls() != 0 {
		t.Errorf("expected zero store calls, got %d", f.courseStore.StoreCalls())
	}
}

func TestGetCourse_NotFound(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodGet, "/api/courses/"+testsupport.NewID(), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "Course not found." {
		t.Errorf("unexpected error %q", body["error"])
	}
}

func TestListCourses(t *testing.T) {
	f := newFixture()

	// Empty collection responds with a message, not an error.
	rec := f.do(t, http.MethodGet, "/api/courses", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "No courses found." {
		t.Errorf("unexpected body %v", body)
	}

	f.do(t, http.MethodPost, "/api/courses", createCourseBody)
	f.do(t, http.MethodPost, "/api/courses", createCourseBody)

	rec = f.do(t, http.MethodGet, "/api/courses", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "Courses retrieved successfully." {
		t.Errorf("unexpected message %q", body["message"])
	}
	if count, _ := body["count"].(float64); count != 2 {
		t.Errorf("expected count 2, got %v", body["count"])
	}

	// The follow-up read is served by the cache and says so.
	body = decodeBody(t, f.do(t, http.MethodGet, "/api/courses", ""))
	if body["message"] != "Courses retrieved successfully from cache." {
		t.Errorf("unexpected message %q", body["message"])
	}
	if f.courseStore.FindAllCalls != 1 {
		t.Errorf("expected a single FindAll, got %d", f.courseStore.FindAllCalls)
	}
}

func TestDeleteCourse(t *testing.T) {
	f := newFixture()

	created := decodeBody(t, f.do(t, http.MethodPost, "/api/courses", createCourseBody))
	id := created["data"].(map[string]any)["id"].(string)

	rec := f.do(t, http.MethodDelete, "/api/courses/"+id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "Course deleted successfully." {
		t.Errorf("unexpected message %q", body["message"])
	}

	rec = f.do(t, http.MethodGet, "/api/courses/"+id, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestCourseStats(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodGet, "/api/courses/stats", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on empty collection, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "No courses found." {
		t.Errorf("unexpected error %q", body["error"])
	}

	f.do(t, http.MethodPost, "/api/courses", createCourseBody)

	body := decodeBody(t, f.do(t, http.MethodGet, "/api/courses/stats", ""))
	data := body["data"].(map[string]any)
	if total, _ := data["totalCourses"].(float64); total != 1 {
		t.Errorf("expected totalCourses 1, got %v", data["totalCourses"])
	}
}

func studentBody(email string, yearsOld int) string {
	dob := time.Now().UTC().AddDate(-yearsOld, 0, 0).Format(time.RFC3339)
	return `{"firstName": "Ada", "lastName": "Lovelace", "email": "` + email + `", "dateOfBirth": "` + dob + `"}`
}

func TestStudentLifecycle(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodPost, "/api/students", studentBody("ada@example.edu", 21))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	created := decodeBody(t, rec)
	id := created["data"].(map[string]any)["id"].(string)

	rec = f.do(t, http.MethodPut, "/api/students/"+id, `{"lastName": "Byron"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	data := decodeBody(t, rec)["data"].(map[string]any)
	if data["lastName"] != "Byron" || data["firstName"] != "Ada" {
		t.Errorf("partial update mismatch: %v", data)
	}

	rec = f.do(t, http.MethodGet, "/api/students/not-an-id", "")
	if body := decodeBody(t, rec); rec.Code != http.StatusBadRequest || body["error"] != "Invalid student ID." {
		t.Errorf("expected 400 Invalid student ID., got %d %v", rec.Code, body)
	}

	rec = f.do(t, http.MethodDelete, "/api/students/"+id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rec = f.do(t, http.MethodGet, "/api/students/"+id, "")
	if body := decodeBody(t, rec); rec.Code != http.StatusNotFound || body["error"] != "Student not found." {
		t.Errorf("expected 404 Student not found., got %d %v", rec.Code, body)
	}
}

func TestStudentCreate_InvalidEmail(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodPost, "/api/students", studentBody("not-an-email", 21))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestStudentStats(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodGet, "/api/students/stats", "")
	if body := decodeBody(t, rec); rec.Code != http.StatusNotFound || body["error"] != "No students found." {
		t.Fatalf("expected 404 No students found., got %d %v", rec.Code, body)
	}

	for i, years := range []int{20, 30, 40} {
		email := []string{"a@example.edu", "b@example.edu", "c@example.edu"}[i]
		if rec := f.do(t, http.MethodPost, "/api/students", studentBody(email, years)); rec.Code != http.StatusCreated {
			t.Fatalf("seed student: %d %s", rec.Code, rec.Body.String())
		}
	}

	body := decodeBody(t, f.do(t, http.MethodGet, "/api/students/stats", ""))
	data := body["data"].(map[string]any)
	if count, _ := data["studentCount"].(float64); count != 3 {
		t.Errorf("expected studentCount 3, got %v", data["studentCount"])
	}
	if avg, _ := data["averageAge"].(float64); avg != 30 {
		t.Errorf("expected averageAge 30, got %v", data["averageAge"])
	}
}

func TestRequestIDHeader(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodGet, "/api/courses", "")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header on every response")
	}
}
