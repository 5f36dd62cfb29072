package handler

const (
	// RootPath is the root path of the api route group.
	RootPath = "/api"

	// ErrNilAppFatalLogMsg is used if the app, cfg or engine pointer is nil.
	ErrNilAppFatalLogMsg = "app, cfg or engine is nil"
)
