package di

import (
	"quiethours/internal/jobs/completion"
	"quiethours/transport/http"
)

// App bundles everything the entrypoints run: the HTTP server and the
// background booking completion job.
type App struct {
	HTTP          *http.HTTP
	CompletionJob *completion.Job
}
