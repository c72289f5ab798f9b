package handler

import (
	"net/http"
	"sync"

	"spacebook/config"
	"spacebook/di"
	"spacebook/shared/logger"
	transport "spacebook/transport/http"
)

var (
	app  *transport.HTTP
	once sync.Once
)

// Handler is the serverless entrypoint. The dependency graph is built on the
// first invocation and reused while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		cfg := config.Get()

		logger.Init(cfg)

		app = di.InitializeService()
	})

	r.RequestURI = r.URL.String()

	app.ServeHTTP(w, r)
}
