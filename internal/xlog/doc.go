// Package xlog centralizes the zerolog construction idiom used throughout
// this module: every component takes an injected zerolog.Logger tagged
// with its own "component" field, never a package-level global.
package xlog
