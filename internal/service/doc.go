// Package service contains the CasaFind use cases. Services receive store
// interfaces through their constructors, enforce ownership and participant
// rules, and run multi-statement operations inside store.RunInTransaction.
//
// Error handling:
//   - Expected conditions surface as sentinels (ErrNotOwned,
//     ErrNotParticipant, the store's not-found and duplicate errors,
//     domain validation errors) so the API layer can map them with errors.Is.
//   - Unexpected failures are wrapped in *OperationError, which names the
//     service and operation and unwraps to the cause.
package service
