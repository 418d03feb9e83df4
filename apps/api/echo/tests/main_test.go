package tests

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	. "github.com/campuskit/linkboard/apps/api/echo"
	"github.com/campuskit/linkboard/core"
	"github.com/campuskit/linkboard/core/activity"
	"github.com/campuskit/linkboard/core/report"
	emailsvc "github.com/campuskit/linkboard/services/email"
	logsvc "github.com/campuskit/linkboard/services/logger"
	dummydb "github.com/campuskit/linkboard/storage/database/dummy"
	testutil "github.com/campuskit/linkboard/tests"
)

var (
	conf *core.Config
	db   *dummydb.DB
	app  Server

	actRepo activity.Repository
	repRepo report.Repository
	setRepo report.SettingsRepository

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errForbidden    = httpErr{Error: "Permission denied"}
)

func TestMain(m *testing.M) {
	conf = testutil.NewConfig()
	logger := logsvc.NewStdLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags))

	// set up DB & repos
	var err error
	if db, err = dummydb.Open(); err != nil {
		log.Fatalf("dummydb.Open(): %v", err)
	}
	actRepo = dummydb.NewActivityRepository(db)
	repRepo = dummydb.NewReportRepository(db)
	setRepo = dummydb.NewSettingsRepository(db)

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	actSvc := activity.NewService(actRepo)
	repSvc := report.NewService(repRepo, setRepo, dummydb.NewCourseDirectory(db), mailSvc, conf, logger)

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	core.ParseEmailTemplates(conf, logger)

	// set up server
	app = NewServer(
		ServerDeps{
			Conf:        conf,
			Logger:      logger,
			ActivitySvc: actSvc,
			ReportSvc:   repSvc,
			Validate:    validate,
			Translator:  translator,
		},
	)

	os.Exit(m.Run())
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, actor core.Actor) string {
	claims := GetActorClaims(actor)
	token, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ObjectsAreEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("%s %s code = %d, want %d; body: %s", tt.method, tt.path, rec.Code, tt.wantCode, rec.Body.String())
	}
	if tt.wantData != nil {
		equal, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
		if err != nil {
			t.Fatalf("comparing body %q: %v", rec.Body.String(), err)
		}
		if !equal {
			t.Errorf("%s %s body = %s, want %s", tt.method, tt.path, rec.Body.String(), tt.wantData)
		}
	}
}

// test actors; identity comes from the host platform via JWT claims
var (
	student        = core.Actor{ID: 7, Name: "Jo Mutombo", Email: "jo@test.cd", Roles: []string{core.RoleStudent}}
	editingTeacher = core.Actor{ID: 2, Name: "Prof Kalala", Email: "kalala@test.cd", Roles: []string{core.RoleEditingTeacher}}
	manager        = core.Actor{ID: 3, Name: "Mama Yemo", Email: "yemo@test.cd", Roles: []string{core.RoleManager}}
	outsider       = core.Actor{ID: 9, Name: "N Dog", Email: "ndog@test.cd", Roles: nil}
)
