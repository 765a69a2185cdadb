// Package wire holds the protobuf wire types for the order entry API
// and the outbound event stream, hand-encoded with encoding/protowire
// against the schema in api/proto/orderentry.proto. Signed prices use
// zigzag (sint64) so negative ticks stay small on the wire; unknown
// fields are skipped on decode.
package wire
