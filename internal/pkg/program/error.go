package program

// SilentError is used to indicate that clusterctl should exit with a non-zero error code, but there's no need to print
// any error message (it's to be used where the error message has already been printed, e.g. the tool-check report)
type SilentError struct {
}

func (e SilentError) Error() string {
	return "silent error"
}
