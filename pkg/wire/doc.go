// Package wire implements the binary protocol between a diff engine and
// a loom document host.
//
// Diff producers send edit streams as Edits frames; the host sends back
// normalized triggers as Trigger frames and surfaces fatal
// desynchronization as Error frames.
//
// # Encoding
//
// Integers use protobuf-style varints (ZigZag for signed values);
// strings are varint-length-prefixed UTF-8. Frames carry a fixed 4-byte
// header:
//
//	┌────────────┬────────────┬────────────────────────────┐
//	│ Frame Type │ Flags      │ Payload Length             │
//	│ (1 byte)   │ (1 byte)   │ (2 bytes, big-endian)      │
//	└────────────┴────────────┴────────────────────────────┘
//
// The decoder enforces allocation and collection limits so a malicious
// length prefix cannot exhaust memory.
package wire
