// Package security holds the HTML allow-list policy applied to notice
// content.
package security
