package view

import (
	"html/template"
	"io"
)

var pageTmpl = template.Must(template.New("page").Parse(pageHTML))

// Render writes the full page for snap. Cell text is escaped by html/template.
func Render(w io.Writer, snap Snapshot) error {
	return pageTmpl.Execute(w, snap)
}

const pageHTML = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>UAC Tasks</title>
    <style>
      body { font-family: Arial, sans-serif; margin: 24px; }
      table { border-collapse: collapse; width: 100%; margin-top: 16px; }
      th, td { border: 1px solid #ccc; padding: 6px 8px; text-align: left; vertical-align: top; }
      th { background: #f2f2f2; }
      pre { margin: 0; white-space: pre-wrap; }
      #error { color: #b00020; margin-top: 8px; }
      #info { color: #555; margin-top: 8px; }
      form { display: inline; }
    </style>
  </head>
  <body>
    <h1>Stonebranch UAC Tasks</h1>
    <form method="post" action="/load/basic"><button id="loadBasicBtn" type="submit">Load Basic Tasks</button></form>
    <form method="post" action="/load/advanced"><button id="loadAdvancedBtn" type="submit">Load Advanced Tasks</button></form>
    <div id="info">{{.Info}}</div>
    <div id="error">{{.Error}}</div>
    <table id="taskTable">
      <thead>
        <tr><th>Task Name</th><th>Description</th><th>Agent</th><th>Command</th></tr>
      </thead>
      <tbody>
        {{- range .Rows}}
        <tr><td>{{.Name}}</td><td>{{.Description}}</td><td>{{.Agent}}</td><td><pre>{{.Command}}</pre></td></tr>
        {{- end}}
      </tbody>
    </table>
  </body>
</html>
`
