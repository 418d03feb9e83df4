package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/campuskit/linkboard/core/report"
	emailsvc "github.com/campuskit/linkboard/services/email"
	testutil "github.com/campuskit/linkboard/tests"
)

func Test_reportApi_submit(t *testing.T) {
	testutil.ResetDB(t, db)
	emailsvc.ClearSentMessages()

	db.AddCourse(4, "History 101")
	db.AddUser(student.ID, student.Name, student.Email)

	act := testutil.CreateActivity(t, actRepo, 4, "Lecture recording", "https://youtu.be/abc123", true)
	path := fmt.Sprintf("/v1/activities/%d/report", act.ID)
	studentToken := getToken(t, student)

	t.Run("Auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, path)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("code = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("Role required", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, path, getToken(t, outsider))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("code = %d, want %d", rec.Code, http.StatusForbidden)
		}
	})

	t.Run("No recipient configured", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, path, studentToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %d, body: %s", rec.Code, rec.Body.String())
		}

		var resp struct {
			Report   report.Report         `json:"report"`
			Dispatch report.DispatchResult `json:"dispatch"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshalling: %v", err)
		}
		if resp.Dispatch != report.DispatchSkippedNoEmail {
			t.Errorf("dispatch = %q, want %q", resp.Dispatch, report.DispatchSkippedNoEmail)
		}
		if resp.Report.Status != report.StatusOpen {
			t.Errorf("status = %q, want %q", resp.Report.Status, report.StatusOpen)
		}
		if resp.Report.URL != act.ExternalURL {
			t.Errorf("url snapshot = %q, want %q", resp.Report.URL, act.ExternalURL)
		}
		if resp.Report.ReportedBy != student.ID {
			t.Errorf("reportedBy = %d, want %d", resp.Report.ReportedBy, student.ID)
		}
		if len(emailsvc.SentMessages) != 0 {
			t.Errorf("sent %d messages, want none", len(emailsvc.SentMessages))
		}
	})

	t.Run("Notification sent", func(t *testing.T) {
		testutil.CreateSettings(t, setRepo, 4, "prof@test.cd")

		req, rec := newAuthRequest(http.MethodPost, path, studentToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %d, body: %s", rec.Code, rec.Body.String())
		}

		var resp struct {
			Dispatch report.DispatchResult `json:"dispatch"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshalling: %v", err)
		}
		if resp.Dispatch != report.DispatchSent {
			t.Errorf("dispatch = %q, want %q", resp.Dispatch, report.DispatchSent)
		}
		if len(emailsvc.SentMessages) != 1 {
			t.Fatalf("sent %d messages, want 1", len(emailsvc.SentMessages))
		}
		msg := emailsvc.SentMessages[0]
		if msg.To[0].Address != "prof@test.cd" {
			t.Errorf("recipient = %q", msg.To[0].Address)
		}
		if !strings.Contains(msg.TextContent, "History 101") {
			t.Errorf("body missing course name:\n%s", msg.TextContent)
		}
	})

	t.Run("Unknown activity", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/activities/999/report", studentToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}

func Test_reportApi_query(t *testing.T) {
	testutil.ResetDB(t, db)

	db.AddUser(student.ID, student.Name, student.Email)
	act := testutil.CreateActivity(t, actRepo, 4, "Lecture recording", "https://youtu.be/abc123", true)

	now := time.Now().UTC()
	old := testutil.CreateReport(t, repRepo, act, student.ID, now.Add(-2*time.Hour))
	recent := testutil.CreateReport(t, repRepo, act, student.ID, now)

	tests := []httpTest{
		{
			name: "Auth required", method: http.MethodGet, path: "/v1/courses/4/reports",
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "Moderation rights required", method: http.MethodGet, path: "/v1/courses/4/reports",
			token: getToken(t, student), wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "Most recent first", method: http.MethodGet, path: "/v1/courses/4/reports",
			token: getToken(t, editingTeacher), wantCode: http.StatusOK,
		},
		{
			name: "Empty course", method: http.MethodGet, path: "/v1/courses/999/reports",
			token: getToken(t, manager), wantCode: http.StatusOK, wantData: []byte(`[]`),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if tt.name != "Most recent first" {
				return
			}
			var rows []report.Row
			if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
				t.Fatalf("unmarshalling: %v", err)
			}
			if len(rows) != 2 {
				t.Fatalf("got %d rows, want 2", len(rows))
			}
			if rows[0].ID != recent.ID || rows[1].ID != old.ID {
				t.Errorf("order = [%d, %d], want [%d, %d]", rows[0].ID, rows[1].ID, recent.ID, old.ID)
			}
			if rows[0].ActivityName != act.Name {
				t.Errorf("activityName = %q", rows[0].ActivityName)
			}
			if rows[0].ReporterName != student.Name {
				t.Errorf("reporterName = %q", rows[0].ReporterName)
			}
		})
	}
}

func Test_reportApi_action(t *testing.T) {
	testutil.ResetDB(t, db)

	act := testutil.CreateActivity(t, actRepo, 4, "Lecture recording", "https://youtu.be/abc123", true)
	rep := testutil.CreateReport(t, repRepo, act, student.ID)

	path := fmt.Sprintf("/v1/courses/4/reports/%d", rep.ID)
	teacherToken := getToken(t, editingTeacher)

	applyAction := func(t *testing.T, token, action string) *report.Report {
		req, rec := newAuthRequest(http.MethodPut, path, token, []byte(fmt.Sprintf(`{"action": %q}`, action)))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d, body: %s", rec.Code, rec.Body.String())
		}
		var got report.Report
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("unmarshalling: %v", err)
		}
		return &got
	}

	t.Run("Moderation rights required", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, path, getToken(t, student), []byte(`{"action": "resolve"}`))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("code = %d, want %d", rec.Code, http.StatusForbidden)
		}
	})

	t.Run("Action required", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, path, teacherToken, []byte(`{}`))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("Unknown action", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, path, teacherToken, []byte(`{"action": "bogus"}`))
		app.ServeHTTP(rec, req)
		tt := httpTest{
			method: http.MethodPut, path: path,
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "invalid report action"}),
		}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("Resolve", func(t *testing.T) {
		got := applyAction(t, teacherToken, "resolve")
		if got.Status != report.StatusResolved {
			t.Errorf("status = %q, want %q", got.Status, report.StatusResolved)
		}
		if got.ResolvedBy == nil || *got.ResolvedBy != editingTeacher.ID {
			t.Errorf("resolvedBy = %v, want %d", got.ResolvedBy, editingTeacher.ID)
		}
		if got.ResolvedTime == nil {
			t.Error("resolvedTime not set")
		}
	})

	t.Run("Resolve twice", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, path, teacherToken, []byte(`{"action": "resolve"}`))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("Reopen clears resolution", func(t *testing.T) {
		got := applyAction(t, teacherToken, "reopen")
		if got.Status != report.StatusOpen {
			t.Errorf("status = %q, want %q", got.Status, report.StatusOpen)
		}
		if got.ResolvedBy != nil || got.ResolvedTime != nil {
			t.Errorf("resolution fields kept: by=%v time=%v", got.ResolvedBy, got.ResolvedTime)
		}
	})

	t.Run("Wrong course", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, fmt.Sprintf("/v1/courses/999/reports/%d", rep.ID), teacherToken,
			[]byte(`{"action": "resolve"}`))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}

func Test_reportApi_settings(t *testing.T) {
	testutil.ResetDB(t, db)

	teacherToken := getToken(t, editingTeacher)
	path := "/v1/courses/4/report-settings"

	t.Run("Moderation rights required", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, path, getToken(t, student))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("code = %d, want %d", rec.Code, http.StatusForbidden)
		}
	})

	t.Run("Unconfigured course reads as empty form", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, path, teacherToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d, body: %s", rec.Code, rec.Body.String())
		}
		var s report.Settings
		if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
			t.Fatalf("unmarshalling: %v", err)
		}
		if s.ID != 0 || s.CourseID != 4 || s.ReportEmail != "" {
			t.Errorf("settings = %+v", s)
		}
	})

	t.Run("Invalid email", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, path, teacherToken, []byte(`{"report_email": "prof"}`))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("Save and read back", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, path, teacherToken, []byte(`{"report_email": "Prof@Test.CD"}`))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d, body: %s", rec.Code, rec.Body.String())
		}
		var saved report.Settings
		if err := json.Unmarshal(rec.Body.Bytes(), &saved); err != nil {
			t.Fatalf("unmarshalling: %v", err)
		}
		if saved.ReportEmail != "prof@test.cd" {
			t.Errorf("email = %q, want lowercased", saved.ReportEmail)
		}

		req, rec = newAuthRequest(http.MethodGet, path, teacherToken)
		app.ServeHTTP(rec, req)
		var got report.Settings
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("unmarshalling: %v", err)
		}
		if got.ID != saved.ID || got.ReportEmail != "prof@test.cd" {
			t.Errorf("settings = %+v", got)
		}
	})

	t.Run("Clearing keeps the row", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, path, teacherToken, []byte(`{"report_email": ""}`))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d, body: %s", rec.Code, rec.Body.String())
		}
		var got report.Settings
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("unmarshalling: %v", err)
		}
		if got.ID == 0 {
			t.Error("clearing created a new row")
		}
		if got.ReportEmail != "" {
			t.Errorf("email = %q, want empty", got.ReportEmail)
		}
	})
}
