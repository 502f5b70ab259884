// Package api translates HTTP requests into calls on the task, location and
// account services and maps their results and errors back onto JSON
// responses. Routing lives in cmd/server; handlers read chi URL parameters
// and the caller identity placed in the context by middleware.Authenticate.
package api
