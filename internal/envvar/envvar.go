package envvar

const (
	// MeloTTSEnv is the environment variable used to determine the environment
	MeloTTSEnv = "MELOTTS_ENV"

	// MeloTTSServerHTTPPort is the environment variable used to determine the HTTP port
	MeloTTSServerHTTPPort = "MELOTTS_SERVER_HTTP_PORT"

	// RenderInstanceID is set by the Render platform to identify the running
	// instance. Used in log lines only.
	RenderInstanceID = "RENDER_INSTANCE_ID"
)
