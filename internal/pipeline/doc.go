// Package pipeline runs a scrape as a sequence of steps over one model.Run.
//
// The default sequence is: load the listing snapshot, fetch and parse every
// company detail page, export the records, and archive the run. Each step
// receives the run filled in by the previous steps. The pipeline checks for
// cancellation between steps and stops at the first failing step, so a
// failed fetch never leaves a partial export behind.
package pipeline
