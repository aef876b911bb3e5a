// Package core provides the election results pipeline: reading the per-election
// source files, reconciling their schemas, and deriving the aggregate views the
// dashboard plots.
//
// This package has no UI or transport dependencies. The web server, the CLI and
// tests all drive it through [Service.LoadAndPrepare] or the individual stages.
//
// # Pipeline
//
// A load runs the stages below once per process (or once per change of the
// source files, see [Service.Dataset]):
//
//  1. [Read] parses one election's file, dropping positional artifacts and
//     administrative columns while the header is parsed ([Admit]).
//  2. [Normalize] cleans column names, applies the alias table and splits
//     canonical metadata from party-vote columns by name, never by position.
//  3. [Build] concatenates every election into one [UnifiedTable].
//  4. [Aggregate] sums votes per election and party with integer accumulators.
//  5. [TopNotable] picks the parties worth offering in selectors.
//  6. [Slice] projects the aggregate into per-party series for a range.
//
// # Sources
//
// Which file, encoding and container format belong to which election is data,
// not code. Source specs are registered at init time with [Register], normally
// by importing the sources package which embeds the manifest:
//
//	import _ "github.com/JonMunkholm/elections/internal/core/sources"
//
// # Error Handling
//
// A load either completes for every registered election or fails as a whole.
// Failures are classified by sentinel errors ([ErrSourceNotFound],
// [ErrSchemaDrift], [ErrInvalidSelection]) and mapped to coded user messages
// with [MapError].
package core
