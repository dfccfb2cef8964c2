// Package core provides the small set of domain contracts shared by every
// stagekit package: the error taxonomy (configuration versus usage errors)
// and identifier generation.
//
// Configuration errors are fatal to setup. They are returned while building
// the module registry or the application root, and setup must stop.
//
// Usage errors are non-fatal. The runtime reports them through the installed
// logger and the failing operation returns without effect. Callers that care
// can still match them with errors.Is.
package core
