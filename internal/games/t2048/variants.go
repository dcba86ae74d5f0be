// Package t2048 implements the 2048 sliding-tile puzzle on top of the
// engine package: per-tick input handling, rendering and board variants.
package t2048

// Variant is a registered board configuration.
type Variant struct {
	ID      string
	Title   string
	Size    int
	WinTile int // 0 uses the configured win tile
}

// ClassicID is the 4x4 variant. Its size and win tile come from the
// loaded configuration.
const ClassicID = "2048"

// Variants lists the playable boards in menu order.
var Variants = []Variant{
	{ID: ClassicID, Title: "2048"},
	{ID: "2048-3x3", Title: "2048 Mini (3x3)", Size: 3, WinTile: 512},
	{ID: "2048-5x5", Title: "2048 Large (5x5)", Size: 5, WinTile: 4096},
	{ID: "2048-6x6", Title: "2048 Huge (6x6)", Size: 6, WinTile: 8192},
}

// VariantByID returns the variant with the given ID.
func VariantByID(id string) (Variant, bool) {
	for _, v := range Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}
