// Package testutil contains helpers used across tests to reduce boilerplate
// when asserting lifecycle traffic: a recording logger and an ordered call
// log that test behaviors append to. They are not intended for production
// usage.
package testutil
