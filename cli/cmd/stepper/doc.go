// Package stepper is an interactive terminal view of a single task.
//
// Each key press advances the task by one [parse.Task.Step], so the cascade
// of a composite parser through its operands can be watched as it happens.
// Editing the input starts a new task from the same parser; because tasks
// are shared, revisiting an input shows the task where it was left.
package stepper
