package httpserver

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

// Page rendering is deliberately minimal: two small templates compiled at
// startup, no asset pipeline.

type loginData struct {
	Flash string
}

type indexData struct {
	Username       string
	HistoryEnabled bool
}

var loginTemplate = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html>
<head><title>Lead Capture - Login</title></head>
<body>
  <h1>Lead Capture</h1>
  {{if .Flash}}<p class="flash">{{.Flash}}</p>{{end}}
  <form method="post" action="/login">
    <label>Username <input type="text" name="username" required></label>
    <label>Password <input type="password" name="password" required></label>
    <button type="submit">Log in</button>
  </form>
</body>
</html>
`))

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>Lead Capture</title></head>
<body>
  <h1>Sales Cheat Sheet Generator</h1>
  <p>Signed in as {{.Username}} &middot; <a href="/logout">Log out</a></p>
  <form id="emailForm">
    <label>Prospect email <input type="email" id="email" required></label>
    <button type="submit">Analyze</button>
  </form>
  <div id="results" style="display:none">
    <p id="loading">Analyzing&hellip;</p>
    <pre id="analysisResult"></pre>
  </div>
  {{if .HistoryEnabled}}<p><a href="/api/history">Recent analyses</a></p>{{end}}
  <script>
    document.getElementById('emailForm').addEventListener('submit', async function (e) {
      e.preventDefault();
      const results = document.getElementById('results');
      const loading = document.getElementById('loading');
      const out = document.getElementById('analysisResult');
      results.style.display = 'block';
      loading.style.display = 'block';
      out.textContent = '';
      try {
        const resp = await fetch('/api/analyze-email', {
          method: 'POST',
          headers: { 'Content-Type': 'application/json' },
          body: JSON.stringify({ email: document.getElementById('email').value.trim() })
        });
        const data = await resp.json();
        out.textContent = JSON.stringify(data, null, 2);
      } catch (err) {
        out.textContent = 'Request failed: ' + err;
      } finally {
        loading.style.display = 'none';
      }
    });
  </script>
</body>
</html>
`))

func (s *WebServer) renderPage(w http.ResponseWriter, tmpl *template.Template, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		s.logger.Error("Failed to render page", zap.Error(err))
	}
}
