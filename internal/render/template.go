package render

// reportTemplate is executed by html/template, so every {{ }} value is escaped
// for its context. The snapshot is the only markup that reaches the page, and
// it travels as base64 inside a JS string.
const reportTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <meta name="generator" content="judgeman">
  <meta name="judgeman:source" content="{{.SourceURL}}">
  <meta name="judgeman:snapshot-sha256" content="{{.SnapshotHash}}">
  <title>{{if .Record.Title}}{{.Record.Title}}{{else}}Judgeman{{end}}</title>
  <style>{{template "style"}}</style>
</head>
<body>
  <header>
    <span id="dynamic-header">{{.Record.Title}}</span>
    <button id="toggleButton" type="button">Toggle Page</button>
  </header>

  <div id="simplifiedContainer">
    <main id="dynamic-body">
      <div class="line" id="case-num"><b>Case number:</b> {{.Record.CaseNumber}}</div>
      <div class="line" id="case-date"><b>Date:</b> {{if .DecisionDate}}<time datetime="{{.DecisionDate}}">{{.Record.Date}}</time>{{else}}{{.Record.Date}}{{end}}</div>
      <div class="line" id="case-tribunal-court"><b>Tribunal / Court:</b> {{.Record.TribunalCourt}}</div>
      <div class="line" id="case-coram"><b>Coram:</b> {{.Record.Coram}}</div>
      <div class="line" id="case-counsel"><b>Counsel:</b> {{.Record.Counsel}}</div>
      <div class="line" id="case-parties"><b>Parties:</b> {{.Record.Parties}}</div>
      <div class="line" id="case-legal-issues"><b>Legal issues:</b>
        <ul>{{range .Record.LegalIssues}}<li>{{.}}</li>{{end}}</ul>
      </div>
{{range .Sections}}
      <details class="section">
        <summary>{{.Name}}</summary>
        {{range .Paragraphs}}<p class="para">{{.Number}}.&emsp;{{.Text}}</p>{{end}}
      </details>
{{end}}
    </main>

    <div class="credit">
      Generated by judgeman{{if .SourceURL}} from <a href="{{.SourceURL}}" rel="noreferrer">{{.SourceURL}}</a>{{end}}
    </div>
  </div>

  <div id="originalContainer" style="display:none">
    <iframe id="originalFrame" title="Original judgment" sandbox="allow-forms allow-modals allow-popups allow-same-origin allow-scripts"></iframe>
  </div>

  <script>
    const originalHtmlBase64 = {{.SnapshotBase64}};
    const bytes = Uint8Array.from(atob(originalHtmlBase64), c => c.charCodeAt(0));
    document.getElementById('originalFrame').srcdoc = new TextDecoder('utf-8').decode(bytes);

    let simplified = true;
    document.getElementById('toggleButton').addEventListener('click', () => {
      simplified = !simplified;
      document.getElementById('simplifiedContainer').style.display = simplified ? '' : 'none';
      document.getElementById('originalContainer').style.display = simplified ? 'none' : '';
    });
  </script>
</body>
</html>
`

const styleTemplate = `{{define "style"}}
    body {
        font-family: 'Arial', sans-serif;
        background-color: #f8f8f8;
        color: #333;
        margin: 0;
        padding: 0;
    }

    header {
        background-color: #333;
        color: #fff;
        text-align: center;
        padding: 1em;
        position: sticky;
        top: 0;
        z-index: 10;
    }

    #toggleButton {
        background-color: #4CAF50;
        color: white;
        cursor: pointer;
        border: none;
        border-radius: 5px;
        padding: 0.5em 0.8em;
        margin-left: 1em;
    }

    #toggleButton:hover {
        background-color: #316935;
    }

    main {
        max-width: 800px;
        margin: 2em auto;
        padding: 1em;
        background-color: #fff;
        box-shadow: 0 0 10px rgba(0, 0, 0, 0.1);
    }

    .line {
        margin-bottom: 1em;
        border-bottom: 1px solid #ccc;
        padding-bottom: 0.5em;
    }

    details {
        margin-bottom: 1em;
    }

    summary {
        cursor: pointer;
        font-weight: bold;
        border-bottom: 1px solid #ccc;
        padding-bottom: 0.5em;
        margin-bottom: 0.5em;
        outline: none;
    }

    .para {
        margin-top: 0;
        line-height: 1.45;
    }

    .credit {
        position: fixed;
        bottom: 10px;
        right: 10px;
        font-size: 12px;
        color: #555;
    }

    #originalFrame {
        width: 100%;
        height: calc(100vh - 80px);
        border: 0;
    }
{{end}}`
