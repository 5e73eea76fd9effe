// Package s3store implements dataapi.ObjectStore on Amazon S3 using
// aws-sdk-go-v2.
//
// The AWS configuration (region, profile, credentials) is resolved once by
// NewOpener. Each call to Opener.Open builds a fresh s3.Client from it, so a
// request never shares a client with another request. Retries are disabled:
// one GetObject is exactly one round-trip.
//
// Errors are classified at this boundary. A NoSuchKey response becomes a
// dataapi.StoreError with KindNotFound; everything else is KindOther.
package s3store
