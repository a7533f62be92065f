package cli

// Export internal functions for testing.

// RunRun exports runRun for testing.
var RunRun = runRun

// ParseRunOptions exports parseRunOptions for testing.
var ParseRunOptions = parseRunOptions

// RunOptions exports runOptions for testing.
type RunOptions = runOptions

// RunConfigInit exports runConfigInit for testing.
var RunConfigInit = runConfigInit

// RunConfigShow exports runConfigShow for testing.
var RunConfigShow = runConfigShow

// NewLogger exports newLogger for testing.
var NewLogger = newLogger
