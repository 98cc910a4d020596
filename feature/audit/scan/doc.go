// Package scan contains the input adapters feeding an audit session.
//
// Every adapter normalizes one input modality into calls to a single
// SubmitFunc: the camera adapter polls a FrameDecoder capability, the
// keyboard adapter debounces scanner keystroke streams, the manual adapter
// validates operator-typed identifiers, and the RFID adapter simulates a
// continuous tag reader.
//
// # Contract
//
// Start and Stop are idempotent on every adapter; Stop is safe without a
// prior Start and guarantees no submissions after it returns. Adapters never
// hold asset-domain state; they only observe identifiers and submit them.
package scan
