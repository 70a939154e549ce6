package webhook

// StatusResponse acknowledges a webhook delivery.
type StatusResponse struct {
	// Status is always "ok" for an accepted delivery.
	Status string `json:"status" example:"ok"`
}

// HealthResponse is returned by the liveness probe.
type HealthResponse struct {
	OK bool `json:"ok" example:"true"`
	// DataPath is the absolute path of the keyword store file.
	DataPath string `json:"data_path" example:"/srv/keyword-bot/users.json"`
}

// VersionResponse carries the build version.
type VersionResponse struct {
	Version string `json:"version" example:"v1.0.0"`
}
