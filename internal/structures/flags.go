package structures

import "net/http"

type CliFlags struct {
	ConfigPath string
	EnvPath    string
	DebugMode  bool
}

type Route struct {
	Url     string
	Handler http.Handler
}
