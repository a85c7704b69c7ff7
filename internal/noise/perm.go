package noise

import "math/rand"

// TableSize is the number of entries in a permutation table.
const TableSize = 256

// PermutationTable is a bijection on [0,255] used as a hash via masked lookup.
type PermutationTable [TableSize]uint8

// canonical is Ken Perlin's reference permutation. Never mutated: Shuffle
// receives it by value.
var canonical = PermutationTable{
	151, 160, 137, 91, 90, 15, 131, 13, 201, 95, 96, 53, 194, 233, 7, 225,
	140, 36, 103, 30, 69, 142, 8, 99, 37, 240, 21, 10, 23, 190, 6, 148,
	247, 120, 234, 75, 0, 26, 197, 62, 94, 252, 219, 203, 117, 35, 11, 32,
	57, 177, 33, 88, 237, 149, 56, 87, 174, 20, 125, 136, 171, 168, 68, 175,
	74, 165, 71, 134, 139, 48, 27, 166, 77, 146, 158, 231, 83, 111, 229, 122,
	60, 211, 133, 230, 220, 105, 92, 41, 55, 46, 245, 40, 244, 102, 143, 54,
	65, 25, 63, 161, 1, 216, 80, 73, 209, 76, 132, 187, 208, 89, 18, 169,
	200, 196, 135, 130, 116, 188, 159, 86, 164, 100, 109, 198, 173, 186, 3, 64,
	52, 217, 226, 250, 124, 123, 5, 202, 38, 147, 118, 126, 255, 82, 85, 212,
	207, 206, 59, 227, 47, 16, 58, 17, 182, 189, 28, 42, 223, 183, 170, 213,
	119, 248, 152, 2, 44, 154, 163, 70, 221, 153, 101, 155, 167, 43, 172, 9,
	129, 22, 39, 253, 19, 98, 108, 110, 79, 113, 224, 232, 178, 185, 112, 104,
	218, 246, 97, 228, 251, 34, 242, 193, 238, 210, 144, 12, 191, 179, 162, 241,
	81, 51, 145, 235, 249, 14, 239, 107, 49, 192, 214, 31, 181, 199, 106, 157,
	184, 84, 204, 176, 115, 121, 50, 45, 127, 4, 150, 254, 138, 236, 205, 93,
	222, 114, 67, 29, 24, 72, 243, 141, 128, 195, 78, 66, 215, 61, 156, 180,
}

// Canonical returns a copy of the unshuffled reference table.
func Canonical() PermutationTable {
	return canonical
}

// Shuffle returns base permuted by a Fisher–Yates shuffle driven by a PRNG
// seeded with seed. The same seed always yields the same table.
func Shuffle(base PermutationTable, seed int64) PermutationTable {
	rng := rand.New(rand.NewSource(seed))
	for n := len(base) - 1; n > 0; n-- {
		k := rng.Intn(n + 1)
		base[k], base[n] = base[n], base[k]
	}
	return base
}

// IsPermutation reports whether every value in [0,255] appears exactly once.
func (p PermutationTable) IsPermutation() bool {
	var seen [TableSize]bool
	for _, v := range p {
		if seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// at looks up the hash for an index already reduced into [0,255].
func (p *PermutationTable) at(i int) int {
	return int(p[i&(TableSize-1)])
}
