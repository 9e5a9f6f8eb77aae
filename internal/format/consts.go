// Package format houses the low-level wire rules of the asset registry file:
// magic sentinels, bit layouts of the packed handles, and the three string
// encodings used by the store. Keeping them here lets the registry package
// describe records in terms of fields rather than bit twiddling.
package format

const (
	// StoreMagicStart opens the tag value store.
	// Layout (little-endian): 79 56 34 12
	StoreMagicStart uint32 = 0x12345679

	// StoreMagicEnd closes the tag value store.
	// Layout (little-endian): 21 43 65 87
	StoreMagicEnd uint32 = 0x87654321
)

const (
	// GUIDSize is the width of the registry format version GUID.
	GUIDSize = 16

	// StoreHeaderFields is the number of uint32 count/size fields that follow
	// StoreMagicStart:
	//
	//	 0  numberless name count
	//	 1  name count
	//	 2  numberless export path count
	//	 3  export path count
	//	 4  text count
	//	 5  ansi string count
	//	 6  wide string count
	//	 7  ansi payload size (bytes, terminators included)
	//	 8  wide payload size (code units, terminators included)
	//	 9  numberless pair count
	//	10  pair count
	//	11  text payload size (bytes, prefixes and terminators included)
	StoreHeaderFields = 12

	// RegistryHeaderSize is the fixed prefix of a registry file: version GUID,
	// version int, name count, name byte total and hash version.
	RegistryHeaderSize = GUIDSize + 4 + 4 + 4 + 8
)

// Flagged name index layout. The high bit announces a trailing uint32
// instance number; the low 31 bits are the name table index.
//
//	31 30                                0
//	+-+----------------------------------+
//	|N|           name index             |
//	+-+----------------------------------+
const (
	FlaggedNumberBit uint32 = 0x8000_0000
	FlaggedIndexMask uint32 = 0x7FFF_FFFF
)

// Value reference layout inside a pair. The low three bits select one of
// the store's per-type tables; the remaining 29 bits index into it.
//
//	31                              3 2   0
//	+--------------------------------+-----+
//	|           value index          | typ |
//	+--------------------------------+-----+
const (
	ValueTypeBits  = 3
	ValueTypeMask  uint32 = 1<<ValueTypeBits - 1
	MaxValueIndex  uint32 = 1<<(32-ValueTypeBits) - 1
	ValueTypeCount        = 7
)

// Map handle layout (uint64, little-endian).
//
//	63 62      48 47        32 31                 0
//	+-+----------+------------+--------------------+
//	|K|  unused  | pair count |   first pair index |
//	+-+----------+------------+--------------------+
//
// K is set when the map keys are numberless names.
const (
	MapHandleNumberlessBit   uint64 = 1 << 63
	MapHandleNumShift               = 32
	MapHandleNumMask         uint64 = 0xFFFF
	MapHandlePairBeginMask   uint64 = 0xFFFF_FFFF
	MaxNameLength                   = 0xFFFF
	TextPrefixSize                  = 4
	StringTerminatorSize            = 1
	WideStringTerminatorSize        = 1 // counted in code units
)
