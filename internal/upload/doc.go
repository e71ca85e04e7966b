// Package upload parses multipart admin forms and re-validates uploaded
// images on the server: per-file and per-batch size limits, file count and
// a sniffed content type. A Form owns its temp files until Release.
package upload
