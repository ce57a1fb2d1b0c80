// Package dashboard provides the embedded web page for courtboard.
//
// The page holds the two presentation targets (status label and room list)
// and mirrors them from the server's SSE stream. It is compiled into the
// binary so the dashboard needs no external files.
package dashboard

import "embed"

// Assets is an embedded filesystem containing the dashboard page.
//
//	assets/
//	  index.html    - page with inline CSS and JavaScript
//
// index.html carries {{.Title}}, {{.StatusID}} and {{.ListID}} placeholders
// that the server substitutes before serving.
//
//go:embed assets/*
var Assets embed.FS
