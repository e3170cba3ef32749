package main

import (
	"github.com/pkg/browser"

	"github.com/launchdarkly/unit-harness/framework"
)

var openFile = browser.OpenFile

func openReport(path string, diagnostics framework.Logger) {
	if err := openFile(path); err != nil {
		diagnostics.Printf("Failed to open %s in a browser: %s", path, err)
	}
}
