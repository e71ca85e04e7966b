// Package blob stores uploaded images and maps them to public URLs.
//
// Two stores implement Store: LocalStore writes under a directory served
// at /uploads, GCSStore writes to a Google Cloud Storage bucket. Delete
// takes the URL returned by Put; URLs from elsewhere yield ErrForeignURL.
package blob
