// Package inventory is the system of record for tracked assets: buildings,
// floors, rooms, assignees, assets, and their scan history.
//
// It owns every durable status transition (Good, Missing, Misplaced, Lost)
// and the rules protecting them, like the misplaced-sighting threshold that
// keeps a recently-seen asset from being marked missing. The audit feature
// drives these transitions through the Gateway adapter; operators drive the
// discrepancy workflow through the HTTP surface.
package inventory
