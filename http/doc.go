// Package http provides the REST surface of the data API.
//
// # Routes
//
//	GET /      liveness probe, always {"message": "Data API is running!"}
//	GET /data  the stored document, decoded as JSON
//
// # Errors
//
// Every failure is a JSON body {"detail": "<message>"}:
//
//   - 404 "File not found" when the object is missing from the store
//   - 500 "S3 error" for any other store failure
//   - 502 "Invalid JSON document" when the stored bytes are not JSON
//   - 404 "Not Found" and 405 "Method Not Allowed" for routing misses
//
// # Usage
//
//	service, _ := dataapi.NewDocumentService(opener, dataapi.DefaultObjectKey)
//	handler := http.NewHandler(&http.HandlerConfig{}, service)
//	http.ListenAndServe(":8000", handler.Router())
//
// # Middleware
//
// RequestIDMiddleware tags each request with an X-Request-ID and
// AccessLogMiddleware writes one slog line per request. CORS is applied
// when HandlerConfig.CORS.Enabled is set.
package http
