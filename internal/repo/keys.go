// Package repo persists the three entity collections (trips, expenses, and
// the budget) as JSON documents under fixed keys in a store.KV.
//
// Persistence here is deliberately best-effort, mirroring the product's
// storage contract: reads that fail (missing key, malformed JSON, storage
// down) fall back to an empty or absent value instead of propagating, and
// write failures are logged and swallowed. The value handed back to the
// caller is always the source of truth for the rest of the request.
package repo

// Storage keys. These match the document keys the data was originally
// recorded under, so an imported data set loads without migration.
const (
	keyTrips    = "geo-journey-trips"
	keyExpenses = "geo-journey-expenses"
	keyBudget   = "geo-journey-budget"
)
