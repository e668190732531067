// Package repository handles all interactions with the database.
//
// It runs named statements through the query executor and maps rows
// into domain values, abstracting SQL access away from the service
// layer.
package repository
