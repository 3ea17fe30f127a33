// Package errors provides the structured error type shared by every layer of
// the skill tree service.
//
// Errors carry a Code, a user facing Message, an optional Cause and a Meta
// map. Engine rejections additionally record a Reason under the "reason"
// meta key so callers can tell which rule refused a command:
//
//	err := errors.Newf(errors.CodeFailedPrecondition, "node %s is locked", id).
//	    WithReason(ReasonPrerequisiteNotMet).
//	    WithMeta("node_id", id)
//
//	if errors.HasReason(err, ReasonPrerequisiteNotMet) {
//	    // show the lock icon
//	}
//
// # Wrapping
//
// Wrap keeps the code and metadata of an inner *Error so reasons survive
// repository and orchestrator layers:
//
//	if err := repo.Save(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to save slot")
//	}
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("session_id", input.SessionID, vb)
//	errors.ValidateRange("level", input.Level, 1, 20, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # gRPC
//
// Handlers return errors.ToGRPCError(err); metadata is attached as a
// google.protobuf.Struct detail and restored by FromGRPCError on the client.
package errors
