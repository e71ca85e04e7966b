// Package model defines the fan site's content entities and the request
// types the admin UI submits for them.
//
// Entities:
//
//   - Album: a discography entry with cover image and track list
//   - GalleryImage: one photo in the gallery
//   - Notice: an announcement or event post with sanitized HTML content
//   - ScheduleEvent: a calendar event; CalendarEvent adds the recurring flag
//     and display color used by the merged schedule view
//   - Video: a YouTube video referenced by URL
//   - MemberProfile: text blocks, images and SNS links for one roster entry
//   - Settings: the singleton site settings document
//
// Request types carry a Validate() []FieldError method. Every response is
// wrapped in an Envelope; failures are written through APIError.
package model
