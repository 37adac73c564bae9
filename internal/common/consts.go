package common

// Placeholder strings shared by String methods and printers.
const (
	UnknownStr = "unknown"
	NoneStr    = "<none>"
)
