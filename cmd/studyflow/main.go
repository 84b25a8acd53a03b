// Package main is the single-binary entrypoint for StudyFlow.
package main

import "github.com/studyflow-app/studyflow/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
