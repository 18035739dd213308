// Package user provides the User aggregate: a registered sender or carrier
// identified by their Telegram user id.
//
// Key business rules:
//   - The id is the messenger identity and is never generated locally
//   - Full name and phone are mandatory, email and company are optional
//   - The role is fixed at registration; profile edits cannot change it
package user
