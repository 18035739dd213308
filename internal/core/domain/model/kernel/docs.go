// Package kernel provides the value objects shared across the freight domain model.
//
// The package includes:
//   - Phone: an international phone number, "+" followed by 10 to 15 digits
//   - Email: an address of the local@domain.tld shape
//   - Weight: a positive cargo weight in kilograms
//   - Role: the immutable role a user registers with (sender or carrier)
//
// Alongside the value objects, IsValidPhone, IsValidEmail and IsValidWeight expose
// the same checks as pure predicates for callers that only need a yes or no, and
// NormalizePhone turns a shared contact number into the canonical "+digits" form.
//
// Every value object embeds a guard.ConstructorGuard, so a zero value fails Validate.
package kernel
