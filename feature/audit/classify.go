package audit

import "asset-audit/feature/audit/models"

// Decision is the synchronous part of classifying a scanned identifier.
// Identifiers that match neither the roster nor the ledger need a backend
// lookup before they can be settled as misplaced or unexpected.
type Decision int

const (
	// DecideAlreadyScanned: the identifier was processed earlier this session.
	DecideAlreadyScanned Decision = iota
	// DecideFound: the identifier matches an expected asset not yet scanned.
	DecideFound
	// DecideLookup: the identifier is unknown to the session and must be
	// resolved against the backend.
	DecideLookup
)

// Classify applies the reconciliation decision order to one identifier
// against the session state as read at invocation time. First match wins:
//
//  1. An expected asset already marked found -> AlreadyScanned.
//  2. An expected asset not yet found -> Found.
//  3. Any existing ledger record (misplaced, unexpected, or a pending
//     reservation from a concurrent scan) -> AlreadyScanned.
//  4. Otherwise the identifier needs a backend lookup.
//
// Classify is a pure function: it never mutates roster or ledger.
func Classify(identifier string, roster map[string]*models.ExpectedAsset, ledger map[string]*models.ScannedRecord) Decision {
	if asset, ok := roster[identifier]; ok {
		if asset.Found {
			return DecideAlreadyScanned
		}
		return DecideFound
	}
	if _, ok := ledger[identifier]; ok {
		return DecideAlreadyScanned
	}
	return DecideLookup
}

// ClassifyResolved settles a looked-up identifier: a backend record means the
// asset is known but assigned elsewhere (misplaced); no record means the
// identifier is unexpected in this room.
func ClassifyResolved(record *models.AssetRecord) models.Classification {
	if record != nil {
		return models.ClassMisplaced
	}
	return models.ClassUnexpected
}
