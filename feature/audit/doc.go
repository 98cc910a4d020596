// Package audit implements room audit sessions: an operator walks a room,
// scans every asset in it, and the session reconciles those scans against the
// room's expected inventory.
//
// The session classifies each scanned identifier as found, already scanned,
// misplaced (known asset assigned elsewhere), or unexpected (unknown to the
// backend), keeping its own roster and ledger as the working state. Scans
// arrive through the adapters in the scan subpackage; durable effects go
// through the Gateway contract; the presentation layer observes through the
// Notifier contract. Finalizing a session optionally reports every unfound
// expected asset missing in one batch; cancelling discards everything.
package audit
