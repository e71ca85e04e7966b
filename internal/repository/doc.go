// Package repository implements document access for the content tables
// on SurrealDB.
//
// All repositories follow the same pattern:
//
//   - NewXxxRepository accepts a database.Database
//   - GetByID returns (nil, nil) when the record does not exist
//   - Update and Delete return database.ErrNotFound for unknown ids
//   - Public ids are record keys without the table prefix; queries address
//     records with type::thing($tb, $id)
//
// Field names are snake_case in the store (created_on, video_url) and mapped
// to the model structs by the parseXxx helpers.
package repository
