// Package parcel implements the package aggregate: the delivery booking,
// its lifecycle state machine, and the audit events recorded for each
// accepted transition.
//
// The aggregate root is Package, which owns its Events and enforces the
// transition graph (Pending -> Assigned -> PickedUp -> InTransit ->
// Delivered, with Pending -> Cancelled as the only terminal branch) along
// with the role and ownership rules gating each step. Supporting value
// objects (Recipient, Address, Details, Party) validate all sender-supplied
// fields at construction so a Package can never hold invalid data.
package parcel
