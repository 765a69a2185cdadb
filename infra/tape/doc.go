// Package tape implements a segmented, CRC-validated journal for the
// engine's outbound events. Records are framed with their sequence
// number and timestamp, segments rotate on size, and fully consumed
// segments can be truncated away.
package tape
