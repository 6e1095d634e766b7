package params

const (
	// SecParam is the minimum bit width the modulus arithmetic must
	// support without overflowing intermediate products.
	SecParam = 256
	SecBytes = SecParam / 8

	// HashBytes is the minimum safe length for digests read from the
	// transcript hash.
	HashBytes = SecBytes
)
