/*
Package registry reads, writes and extends asset registry files: the index
a cooked game ships to catalog every asset in its packages.

# Quick Start

Load a registry, add a package and write it back:

	reg, err := registry.Open("AssetRegistry.bin", types.DecodeOptions{})
	if err != nil {
	    log.Fatal(err)
	}
	if err := reg.Populate("/Game/Maps/Main", pkg); err != nil {
	    log.Fatal(err)
	}
	if err := reg.WriteFile("AssetRegistry.bin"); err != nil {
	    log.Fatal(err)
	}

# Model

A Registry holds one global name table (Names), a deduplicated value Store,
the AssetData records and a trailing Dependencies block. Records refer to
names by NameIndexFlagged and to their tag maps by MapHandle, a run in
Store.Pairs. Each Pair holds a key name and a ValueRef selecting one of the
seven store tables.

Hashes, counts, byte totals and string offsets written alongside these
tables are never stored in the model. Encode derives them from the live
collections, so a registry stays consistent after any mutation.

# Validation

Decode checks every table index once the file is read and fails with
types.ErrIndexOutOfRange on the first dangling reference. Set
DecodeOptions.SkipValidation to defer those faults to the first lookup:
NameOf, ResolvePair, Tags and ResolveAsset all return the same error
instead of panicking.

# Concurrency

A Registry is not safe for concurrent use. Populate mutates the name table
and the record list together, so callers that parse packages in parallel
must funnel Populate calls through one goroutine or a lock.
*/
package registry
