package script

import "strings"

// scriptHeader is prepended when the model returns a bare test body without
// a package clause.
const scriptHeader = `package main

import (
	"context"
	"testing"
	"time"

	"github.com/chromedp/chromedp"
)

`

// Clean strips markdown fences from a model response and ensures the result
// starts with a package clause. A language-tagged Go fence wins over the
// first generic fence.
func Clean(raw string) string {
	script := raw

	if idx := strings.Index(script, "```go"); idx != -1 {
		script = script[idx+len("```go"):]
		if end := strings.Index(script, "```"); end != -1 {
			script = script[:end]
		}
	} else if idx := strings.Index(script, "```"); idx != -1 {
		script = script[idx+len("```"):]
		// Drop a language tag left on the fence line.
		if nl := strings.Index(script, "\n"); nl != -1 && !strings.Contains(script[:nl], " ") {
			script = script[nl+1:]
		}
		if end := strings.Index(script, "```"); end != -1 {
			script = script[:end]
		}
	}

	script = strings.TrimSpace(script)

	if !strings.Contains(script, "package ") {
		script = scriptHeader + script
	}

	return script
}
