package main

import "errors"

// Failure classes for a benchmark cell. Setup errors (missing template or
// dataset) and process errors are all fatal to the affected cell only.
var (
	ErrConfigTemplateMissing = errors.New("harness: config template missing")
	ErrDatasetFileMissing    = errors.New("harness: dataset file missing")
	ErrServerStartTimeout    = errors.New("harness: server start timeout")
	ErrClientProcessFailed   = errors.New("harness: client process failed")
	ErrVerifierUnreachable   = errors.New("harness: verifier unreachable")
)

func FailureClass(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrConfigTemplateMissing):
		return "config-template-missing"
	case errors.Is(err, ErrDatasetFileMissing):
		return "dataset-file-missing"
	case errors.Is(err, ErrServerStartTimeout):
		return "server-start-timeout"
	case errors.Is(err, ErrClientProcessFailed):
		return "client-process-failed"
	case errors.Is(err, ErrVerifierUnreachable):
		return "verifier-unreachable"
	}
	return "error"
}

// ExitCode assigns a distinct process exit code to every failure class.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrConfigTemplateMissing):
		return 2
	case errors.Is(err, ErrDatasetFileMissing):
		return 3
	case errors.Is(err, ErrServerStartTimeout):
		return 4
	case errors.Is(err, ErrClientProcessFailed):
		return 5
	case errors.Is(err, ErrVerifierUnreachable):
		return 6
	}
	return 1
}
