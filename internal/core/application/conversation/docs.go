// Package conversation drives the multi-step forms of the bot: registration,
// order creation with its document loop, profile editing and attaching
// documents to an existing order.
//
// A Session records which flow a user is in, the step the next input answers
// and the draft collected so far. The Engine loads the session, applies one
// Input and saves the result under a per-user lock, so a user's inputs are
// never interleaved. Completed forms are handed to the command handlers; the
// engine never talks to storage directly.
//
// Invalid input keeps the current step and every value collected before it.
// Cancel is accepted at any step and removes the session before returning.
package conversation
