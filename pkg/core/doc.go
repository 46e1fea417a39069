// Package core defines the shared language of the ngaudit system.
//
// This package contains:
//   - The parsed file record contract consumed from the parsing collaborator
//   - Domain entities (Project, Component, Service, Module, Directive, Pipe)
//   - Result types handed to formatters (Issue, Recommendation, AnalysisResult)
//   - Severity, Category and Priority enums
//   - The error taxonomy (ConfigError and warning kinds)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
