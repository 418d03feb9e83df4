package core

import (
	"net/mail"
	"strings"
	"testing"
)

type testLogger struct{ t *testing.T }

func (l testLogger) Debug(msg string, args ...interface{}) {}
func (l testLogger) Info(msg string, args ...interface{})  {}
func (l testLogger) Warn(msg string, args ...interface{})  {}
func (l testLogger) Error(msg string, args ...interface{}) { l.t.Errorf("logger.Error: %s %v", msg, args) }
func (l testLogger) Fatal(msg string, args ...interface{}) { l.t.Fatalf("logger.Fatal: %s %v", msg, args) }

func testConfig() *Config {
	conf := NewConfig()
	conf.Debug = false
	conf.TestMode = true
	return conf
}

func TestEmailMessage_Render(t *testing.T) {
	ParseEmailTemplates(testConfig(), testLogger{t})

	t.Run("templated", func(t *testing.T) {
		msg := EmailMessage{
			To:           []mail.Address{{Address: "prof@test.cd"}},
			Subject:      "Broken link report: Lecture recording",
			TemplateName: "broken_link_report",
			TemplateData: struct {
				SiteName      string
				CourseName    string
				CourseID      int
				ActivityName  string
				URL           string
				CmID          int
				ReporterName  string
				ReporterID    int
				ReporterEmail string
				ReportTime    string
			}{
				SiteName:      "Campus",
				CourseName:    "History 101",
				CourseID:      4,
				ActivityName:  "Lecture recording",
				URL:           "https://youtu.be/abc123",
				CmID:          11,
				ReporterName:  "Jo Mutombo",
				ReporterID:    7,
				ReporterEmail: "jo@test.cd",
				ReportTime:    "Mon, 02 Jan 2006 15:04:05 UTC",
			},
		}
		if err := msg.Render(); err != nil {
			t.Fatalf("Render() failed: %v", err)
		}
		if !msg.HasContent() {
			t.Fatal("Render() produced no content")
		}
		for _, want := range []string{"History 101", "https://youtu.be/abc123", "Jo Mutombo"} {
			if !strings.Contains(msg.TextContent, want) {
				t.Errorf("Render() text missing %q:\n%s", want, msg.TextContent)
			}
			if !strings.Contains(msg.HTMLContent, want) {
				t.Errorf("Render() html missing %q", want)
			}
		}
	})

	t.Run("plain body", func(t *testing.T) {
		msg := EmailMessage{
			To:      []mail.Address{{Address: "prof@test.cd"}},
			Subject: "hello",
			BodyStr: "plain content",
		}
		if err := msg.Render(); err != nil {
			t.Fatalf("Render() failed: %v", err)
		}
		if msg.TextContent != "plain content" {
			t.Errorf("Render() text = %q", msg.TextContent)
		}
		if msg.HTMLContent != "" {
			t.Errorf("Render() unexpected html: %q", msg.HTMLContent)
		}
	})

	t.Run("unknown template", func(t *testing.T) {
		msg := EmailMessage{TemplateName: "nope"}
		if err := msg.Render(); err != nil {
			t.Fatalf("Render() failed: %v", err)
		}
		if msg.HasContent() {
			t.Error("Render() produced content for an unknown template")
		}
	})
}

func TestCleanString(t *testing.T) {
	if got := CleanString("  Hello "); got != "Hello" {
		t.Errorf("CleanString() = %q", got)
	}
	if got := CleanString(" Prof@Test.CD ", true); got != "prof@test.cd" {
		t.Errorf("CleanString(lower) = %q", got)
	}
}
