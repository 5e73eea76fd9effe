// Package dataapi serves a single stored JSON document over HTTP.
//
// The document lives in an object store (Amazon S3 or a local directory) under
// one fixed key. Every request opens a fresh store session, performs exactly one
// read, validates the bytes as JSON and hands them to the HTTP layer. Nothing is
// cached between requests.
//
// # Key Components
//
//   - ObjectStore: get-by-key contract implemented by s3store and filesystem
//   - StoreOpener: establishes a store session for one request
//   - StoreError: typed failure carrying an ErrorKind (NotFound or Other)
//   - DocumentService: performs the read and the JSON decode
//
// # Example Usage
//
//	opener, err := s3store.NewOpener(ctx, s3store.Config{Region: "eu-west-1", Bucket: "data"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	service, err := dataapi.NewDocumentService(opener, dataapi.DefaultObjectKey)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	doc, err := service.Fetch(ctx)
//	switch dataapi.KindOf(err) {
//	case dataapi.KindNotFound:
//	    // 404
//	}
//
// See the http package for the REST surface.
package dataapi
