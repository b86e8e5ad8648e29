package render

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"judgeman/internal/checksum"
	"judgeman/internal/scraper"
)

func sampleRecord() *scraper.CaseRecord {
	record := scraper.NewCaseRecord()
	record.Title = "Public Prosecutor v Tan"
	record.CaseNumber = "Criminal Appeal No 6 of 2008"
	record.Date = "23 January 2009"
	record.TribunalCourt = "Court of Appeal"
	record.Coram = "Chan Sek Keong CJ"
	record.Counsel = "Lee Lit Cheng"
	record.Parties = "Public Prosecutor v Tan"
	record.LegalIssues = []string{"Criminal Law", "Evidence"}
	record.Body.Set("Background", []string{"1 First point.", "2 Second point."})
	record.Body.Set("Decision", []string{"14. Appeal dismissed."})
	return record
}

func renderSample(t *testing.T, record *scraper.CaseRecord, original Original) string {
	t.Helper()
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer error: %v", err)
	}
	out, err := renderer.RenderString(record, original)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	return out
}

func TestRenderSimplifiedView(t *testing.T) {
	out := renderSample(t, sampleRecord(), Original{URL: "https://www.elitigation.sg/gd/s/2009_SGCA_3", Markup: "<html></html>"})

	wants := []string{
		"<title>Public Prosecutor v Tan</title>",
		`<span id="dynamic-header">Public Prosecutor v Tan</span>`,
		"Criminal Appeal No 6 of 2008",
		`<time datetime="2009-01-23">23 January 2009</time>`,
		"<li>Criminal Law</li><li>Evidence</li>",
		"<summary>Background</summary>",
		`<p class="para">1.&emsp;First point.</p>`,
		`<p class="para">2.&emsp;Second point.</p>`,
		`<p class="para">3.&emsp;Appeal dismissed.</p>`,
		`id="toggleButton"`,
		`id="originalContainer"`,
		`sandbox`,
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	if strings.Index(out, "<summary>Background</summary>") > strings.Index(out, "<summary>Decision</summary>") {
		t.Error("sections out of order")
	}
}

func TestRenderEscapesText(t *testing.T) {
	record := scraper.NewCaseRecord()
	record.Title = `A & B <script>alert("x")</script> 'q'`
	record.Body.Set("<b>Heading</b>", []string{"1 x < y && y > z"})

	out := renderSample(t, record, Original{Markup: "<p>original</p>"})

	if strings.Contains(out, "<script>alert") {
		t.Error("title was not escaped")
	}
	for _, want := range []string{"A &amp; B &lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt; &#39;q&#39;", "&lt;b&gt;Heading&lt;/b&gt;", "x &lt; y &amp;&amp; y &gt; z"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing escaped %q", want)
		}
	}
}

func TestRenderSnapshotRoundTrip(t *testing.T) {
	markup := "<html><head><script>var s = \"</script>\";</script></head><body>Café “quoted” 判决 \u2028</body></html>"

	out := renderSample(t, sampleRecord(), Original{URL: "https://example.com/x", Markup: markup})

	m := snapshotLiteral.FindStringSubmatch(out)
	if m == nil {
		t.Fatal("snapshot literal not found")
	}

	var encoded string
	if err := json.Unmarshal([]byte(m[1]), &encoded); err != nil {
		t.Fatalf("snapshot literal is not a JS string: %v", err)
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("snapshot is not base64: %v", err)
	}
	if string(decoded) != markup {
		t.Errorf("snapshot round trip mismatch:\n got %q\nwant %q", decoded, markup)
	}

	hash := checksum.NewGenerator().SnapshotHash(markup)
	if !strings.Contains(out, `<meta name="judgeman:snapshot-sha256" content="`+hash+`">`) {
		t.Error("snapshot hash meta missing")
	}

	if strings.Count(out, "</script>") != 1 {
		t.Errorf("original markup leaked into the report: %d closing script tags", strings.Count(out, "</script>"))
	}
}

func TestRenderEmptyRecord(t *testing.T) {
	out := renderSample(t, scraper.NewCaseRecord(), Original{})

	if !strings.Contains(out, "<title>Judgeman</title>") {
		t.Error("empty title should fall back to Judgeman")
	}
	if strings.Contains(out, "<details") {
		t.Error("empty body should render no sections")
	}
	if !snapshotLiteral.MatchString(out) {
		t.Error("snapshot literal should be present even when empty")
	}
}

func TestNumberSections(t *testing.T) {
	views := NumberSections(sampleRecord())

	if len(views) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(views))
	}
	got := []NumberedParagraph{}
	for _, v := range views {
		got = append(got, v.Paragraphs...)
	}
	want := []NumberedParagraph{{1, "First point."}, {2, "Second point."}, {3, "Appeal dismissed."}}
	if len(got) != len(want) {
		t.Fatalf("got %d paragraphs, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("paragraph %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDump(t *testing.T) {
	var buf bytes.Buffer
	if err := Dump(&buf, sampleRecord()); err != nil {
		t.Fatalf("Dump error: %v", err)
	}

	want := `Case Title: Public Prosecutor v Tan
Case Number: Criminal Appeal No 6 of 2008
Case Date: 23 January 2009
Tribunal Court: Court of Appeal
Coram: Chan Sek Keong CJ
Counsel: Lee Lit Cheng
Parties: Public Prosecutor v Tan
Legal Issues: Criminal Law, Evidence
Facts Section: Background (2 paragraphs)
Case Body:
Section: Background
1 First point.
2 Second point.
Section: Decision
14. Appeal dismissed.
`
	if buf.String() != want {
		t.Errorf("Dump output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestDumpJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := DumpJSON(&buf, sampleRecord()); err != nil {
		t.Fatalf("DumpJSON error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"case_number": "Criminal Appeal No 6 of 2008"`) {
		t.Errorf("case_number missing:\n%s", out)
	}
	if strings.Index(out, `"Background"`) > strings.Index(out, `"Decision"`) {
		t.Error("body sections should keep page order")
	}

	var decoded struct {
		LegalIssues []string            `json:"legal_issues"`
		Body        map[string][]string `json:"body"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(decoded.Body["Background"]) != 2 || len(decoded.LegalIssues) != 2 {
		t.Errorf("unexpected decoded record: %+v", decoded)
	}
}

func TestMarkdown(t *testing.T) {
	md, err := NewMarkdownRenderer()
	if err != nil {
		t.Fatalf("NewMarkdownRenderer error: %v", err)
	}

	out, err := md.Render(sampleRecord())
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	for _, want := range []string{"# Public Prosecutor v Tan", "## Background", "## Decision", "Criminal Law", "First point."} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "<p>") {
		t.Errorf("markdown still contains HTML:\n%s", out)
	}
}

func TestReadSnapshot(t *testing.T) {
	markup := "<!doctype html>\n<html><body><p class=\"Judg-1\">1 Café “quoted”</p></body></html>"
	out := renderSample(t, sampleRecord(), Original{URL: "https://example.com/x", Markup: markup})

	encoded, digest, err := ReadSnapshot([]byte(out))
	if err != nil {
		t.Fatalf("ReadSnapshot error: %v", err)
	}
	if want := checksum.NewGenerator().SnapshotHash(markup); digest != want {
		t.Errorf("digest = %q, want %q", digest, want)
	}
	ok, err := checksum.NewGenerator().VerifySnapshot(digest, encoded)
	if err != nil || !ok {
		t.Errorf("VerifySnapshot = %v, %v", ok, err)
	}
}

func TestReadSnapshotRejects(t *testing.T) {
	tests := []struct {
		name   string
		report string
	}{
		{"no meta", `<html><body><script>const originalHtmlBase64 = "";</script></body></html>`},
		{"no literal", `<html><head><meta name="judgeman:snapshot-sha256" content="ab"></head><body><script>x()</script></body></html>`},
		{"bad literal", `<html><head><meta name="judgeman:snapshot-sha256" content="ab"></head><body><script>const originalHtmlBase64 = "\q";</script></body></html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ReadSnapshot([]byte(tt.report)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
