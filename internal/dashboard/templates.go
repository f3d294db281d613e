package dashboard

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"
)

var funcMap = template.FuncMap{
	"upper": strings.ToUpper,
}

var pageTmpls = map[string]*template.Template{
	"overview":  template.Must(template.New("overview").Funcs(funcMap).Parse(navHTML + overviewHTML)),
	"chat":      template.Must(template.New("chat").Funcs(funcMap).Parse(navHTML + chatHTML)),
	"approvals": template.Must(template.New("approvals").Funcs(funcMap).Parse(navHTML + approvalsHTML)),
	"history":   template.Must(template.New("history").Funcs(funcMap).Parse(navHTML + historyHTML)),
}

func renderPage(w http.ResponseWriter, name string, data map[string]any) {
	tmpl, ok := pageTmpls[name]
	if !ok {
		http.Error(w, "unknown page: "+name, http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

const navHTML = `{{define "nav"}}
<nav class="bg-gray-900 border-b border-gray-700 px-6 py-4">
    <div class="flex items-center justify-between max-w-7xl mx-auto">
        <div class="flex items-center space-x-2">
            <span class="text-xl font-bold text-white">OpConsole</span>
            <span class="text-xs bg-gray-700 text-gray-300 px-2 py-1 rounded">Dashboard</span>
        </div>
        <div class="flex space-x-4">
            <a href="/" class="px-3 py-2 rounded hover:bg-gray-800 {{if eq .Page "overview"}}bg-gray-800 text-white{{else}}text-gray-400{{end}}">Overview</a>
            <a href="/chat" class="px-3 py-2 rounded hover:bg-gray-800 {{if eq .Page "chat"}}bg-gray-800 text-white{{else}}text-gray-400{{end}}">Chat</a>
            <a href="/approvals" class="px-3 py-2 rounded hover:bg-gray-800 {{if eq .Page "approvals"}}bg-gray-800 text-white{{else}}text-gray-400{{end}}">Approvals</a>
            <a href="/history" class="px-3 py-2 rounded hover:bg-gray-800 {{if eq .Page "history"}}bg-gray-800 text-white{{else}}text-gray-400{{end}}">History</a>
        </div>
    </div>
</nav>
{{end}}`

const headHTML = `<!DOCTYPE html>
<html lang="en" class="dark">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>OpConsole Dashboard</title>
    <script src="https://cdn.tailwindcss.com"></script>
    <script src="https://unpkg.com/htmx.org@2.0.4"></script>
    <style>body { background-color: #0f172a; color: #e2e8f0; }</style>
</head>
<body class="min-h-screen">
{{template "nav" .}}
<main class="max-w-7xl mx-auto px-6 py-8">`

const footHTML = `</main>
</body>
</html>`

const overviewHTML = headHTML + `
<h1 class="text-2xl font-bold mb-6">Overview</h1>
<div class="grid grid-cols-1 md:grid-cols-4 gap-6 mb-8">
    <div class="bg-gray-900 border border-gray-700 rounded-lg p-6">
        <div class="text-gray-400 text-sm mb-1">Transport</div>
        <div class="text-3xl font-bold text-white">{{upper .Transport}}</div>
    </div>
    <div class="bg-gray-900 border {{if .HealthErr}}border-red-900{{else}}border-green-900{{end}} rounded-lg p-6">
        <div class="text-gray-400 text-sm mb-1">Backend</div>
        {{if .HealthErr}}
        <div class="text-3xl font-bold text-red-300">DOWN</div>
        {{else if .Health.OK}}
        <div class="text-3xl font-bold text-green-300">OK</div>
        {{else}}
        <div class="text-3xl font-bold text-yellow-300">DEGRADED</div>
        {{end}}
    </div>
    <div class="bg-gray-900 border {{if .Pending}}border-yellow-900{{else}}border-gray-700{{end}} rounded-lg p-6">
        <div class="text-gray-400 text-sm mb-1">Pending Consent</div>
        <div class="text-3xl font-bold {{if .Pending}}text-yellow-300{{else}}text-white{{end}}">{{if .Pending}}{{len .Pending.Requests}}{{else}}0{{end}}</div>
    </div>
    <div class="bg-gray-900 border border-gray-700 rounded-lg p-6">
        <div class="text-gray-400 text-sm mb-1">History Entries</div>
        <div class="text-3xl font-bold text-white">{{.HistoryLen}}</div>
    </div>
</div>
{{if .HealthErr}}
<div class="bg-gray-900 border border-red-700 rounded-lg p-4 text-red-300 text-sm mb-6">{{.HealthErr}}</div>
{{else}}
<div class="bg-gray-900 border border-gray-700 rounded-lg p-6">
    <h2 class="text-lg font-bold mb-4">Backend Report</h2>
    <div class="flex justify-between py-1 border-b border-gray-800">
        <span class="text-gray-300 text-sm">Active provider</span>
        <span class="text-gray-400 font-mono text-sm">{{if .Health.ActiveProvider}}{{.Health.ActiveProvider}}{{else}}none{{end}}</span>
    </div>
    <div class="flex justify-between py-1 border-b border-gray-800">
        <span class="text-gray-300 text-sm">Providers configured</span>
        <span class="text-gray-400">{{.Health.ProviderCount}}</span>
    </div>
    <div class="flex justify-between py-1 border-b border-gray-800">
        <span class="text-gray-300 text-sm">Backend pending consents</span>
        <span class="text-gray-400">{{.Health.PendingConsents}}</span>
    </div>
    {{range .Health.Warnings}}
    <div class="text-yellow-400 text-sm mt-2">{{.}}</div>
    {{end}}
</div>
{{end}}
` + footHTML

const chatHTML = headHTML + `
<h1 class="text-2xl font-bold mb-6">Chat</h1>
<form method="post" action="/chat" class="mb-6 flex space-x-2">
    <input type="text" name="prompt" placeholder="Ask for an action..."
           class="flex-1 bg-gray-900 border border-gray-700 rounded px-4 py-2 text-white" autofocus>
    <button type="submit" class="px-6 py-2 bg-blue-700 hover:bg-blue-600 text-white rounded font-bold">Send</button>
</form>
{{if .Outcome}}
<div class="bg-gray-900 border {{if .Outcome.Err}}border-red-700{{else}}border-gray-700{{end}} rounded-lg p-6 mb-6">
    <div class="{{if .Outcome.Err}}text-red-300{{else}}text-white{{end}}">{{.Outcome.Status}}</div>
    {{if .Outcome.Warning}}<div class="text-yellow-400 text-sm mt-2">{{.Outcome.Warning}}</div>{{end}}
    {{range .Outcome.Executed}}
    <div class="text-gray-400 text-sm mt-1 font-mono">{{.ToolName}} <span class="text-xs">({{.CapabilityTier}})</span> executed</div>
    {{end}}
</div>
{{end}}
{{if .Pending}}
<div class="bg-gray-900 border border-yellow-700 rounded-lg p-6 mb-6">
    <div class="text-yellow-400 text-xs font-bold mb-2">APPROVAL REQUIRED</div>
    {{range .Pending.Requests}}
    <div class="text-white font-mono">{{.ToolName}} <span class="text-gray-400 text-xs">({{.CapabilityTier}})</span></div>
    {{if .Reason}}<div class="text-gray-400 text-sm">{{.Reason}}</div>{{end}}
    {{end}}
    <div class="mt-3"><a href="/approvals" class="text-blue-400 text-sm hover:underline">Go to approvals</a></div>
</div>
{{end}}
` + footHTML

const approvalsHTML = headHTML + `
<h1 class="text-2xl font-bold mb-6">Approvals</h1>
{{if .Status}}
<div class="bg-gray-900 border border-gray-700 rounded-lg p-4 text-gray-300 text-sm mb-6">{{.Status}}</div>
{{end}}
{{if .Pending}}
<div class="bg-gray-900 border {{if .Armed}}border-red-700{{else}}border-yellow-700{{end}} rounded-lg p-6 mb-8">
    <div class="flex justify-between items-start">
        <div>
            {{if .Armed}}
            <div class="text-red-400 text-xs font-bold mb-2">CONFIRM HIGH-RISK ACTION</div>
            {{else}}
            <div class="text-yellow-400 text-xs font-bold mb-2">PENDING APPROVAL</div>
            {{end}}
            {{range .Pending.Requests}}
            <div class="text-white font-bold font-mono">{{.ToolName}} <span class="text-gray-400 text-xs font-normal">({{.CapabilityTier}})</span></div>
            {{if .Reason}}<div class="text-gray-400 text-sm mt-1">{{.Reason}}</div>{{end}}
            {{if .ArgumentsPreview}}
            <div class="mt-2 bg-gray-800 rounded p-2 font-mono text-xs text-gray-300">{{.ArgumentsPreview}}</div>
            {{end}}
            {{end}}
            {{if .Pending.Meta}}{{if .Pending.Meta.HumanSummary}}
            <div class="text-gray-300 text-sm mt-2">{{.Pending.Meta.HumanSummary}}</div>
            {{end}}{{end}}
        </div>
        <div class="flex space-x-2">
            <form method="post" action="/approvals/approve">
                <button type="submit" class="px-4 py-2 {{if .Armed}}bg-red-700 hover:bg-red-600{{else}}bg-green-700 hover:bg-green-600{{end}} text-white rounded text-sm font-bold">
                    {{if .Armed}}Confirm{{else}}Approve{{end}}
                </button>
            </form>
            <form method="post" action="/approvals/deny">
                <button type="submit" class="px-4 py-2 bg-red-900 hover:bg-red-800 text-white rounded text-sm font-bold">Deny</button>
            </form>
        </div>
    </div>
</div>
{{else}}
<div class="bg-gray-900 border border-gray-700 rounded-lg p-8 text-center text-gray-400 mb-8">
    No pending approval in this session
</div>
{{end}}
<h2 class="text-lg font-bold mb-4">Backend Queue</h2>
{{if .QueueErr}}
<div class="bg-gray-900 border border-red-700 rounded-lg p-4 text-red-300 text-sm">{{.QueueErr}}</div>
{{else if .Queue}}
<div class="bg-gray-900 border border-gray-700 rounded-lg overflow-hidden">
    <table class="w-full text-sm text-left">
        <thead class="bg-gray-800 text-gray-400 uppercase text-xs">
            <tr>
                <th class="px-4 py-3">Tool</th>
                <th class="px-4 py-3">Tier</th>
                <th class="px-4 py-3">Status</th>
                <th class="px-4 py-3">Rationale</th>
                <th class="px-4 py-3">Session</th>
            </tr>
        </thead>
        <tbody>
            {{range .Queue}}
            <tr class="border-b border-gray-700 hover:bg-gray-800">
                <td class="px-4 py-2 font-mono">{{.ToolName}}</td>
                <td class="px-4 py-2">{{.CapabilityTier}}</td>
                <td class="px-4 py-2"><span class="px-2 py-1 rounded text-xs font-bold bg-yellow-900 text-yellow-300">{{upper .Status}}</span></td>
                <td class="px-4 py-2 text-gray-400 text-xs">{{.Rationale}}</td>
                <td class="px-4 py-2 text-gray-400 text-xs font-mono">{{.SessionID}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>
</div>
{{else}}
<div class="bg-gray-900 border border-gray-700 rounded-lg p-8 text-center text-gray-400">Backend queue is empty</div>
{{end}}
` + footHTML

const historyHTML = headHTML + `
<div class="flex justify-between items-center mb-6">
    <h1 class="text-2xl font-bold">History</h1>
    <form method="get" action="/history" class="flex space-x-2">
        <input type="text" name="q" value="{{.Query}}" placeholder="Filter..."
               class="bg-gray-900 border border-gray-700 rounded px-3 py-1 text-white text-sm">
        <button type="submit" class="px-4 py-1 bg-gray-700 hover:bg-gray-600 text-white rounded text-sm">Search</button>
    </form>
</div>
{{if .Items}}
<div class="space-y-3">
    {{range .Items}}
    <div class="bg-gray-900 border border-gray-700 rounded-lg p-4">
        <div class="flex justify-between items-center">
            <div>
                <span class="px-2 py-1 rounded text-xs font-bold bg-gray-700 text-gray-300">{{upper .Kind}}</span>
                <span class="text-white ml-2">{{.Label}}</span>
            </div>
            <span class="text-gray-500 text-xs">{{.Timestamp.Format "2006-01-02 15:04:05"}}</span>
        </div>
        {{if .Body}}<div class="text-gray-400 text-sm mt-2">{{.Body}}</div>{{end}}
        {{if .Details}}
        <div class="mt-2 text-xs text-gray-500 font-mono">
            {{range $k, $v := .Details}}<div>{{$k}}: {{$v}}</div>{{end}}
        </div>
        {{end}}
    </div>
    {{end}}
</div>
{{else}}
<div class="bg-gray-900 border border-gray-700 rounded-lg p-8 text-center text-gray-400">
    {{if .Query}}No entries match "{{.Query}}"{{else}}No history yet{{end}}
</div>
{{end}}
` + footHTML
