// Package driver steps parse tasks to resolution.
//
// [Run] drives one task with optional step limits, observation, and
// context cancellation between steps. [Batch] runs a grammar over many
// inputs concurrently, giving each input its own [parse.Registry] so no task
// graph is ever stepped by two goroutines. [Format] and [Write] render
// results as native text, JSON, or YAML.
package driver
