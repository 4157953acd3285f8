package game

import "sync"

// Maximum consecutive passes that change the hash; two passes end the game.
const maxHashedPasses = 2

type zobristTable struct {
	stones []StateHash // two keys per point
	ko     []StateHash
	side   StateHash
	passes [maxHashedPasses + 1]StateHash
}

type zobristStore struct {
	mu     sync.Mutex
	tables map[int]*zobristTable
}

var zobristTables = &zobristStore{tables: make(map[int]*zobristTable)}

func getZobrist(size int) *zobristTable {
	zobristTables.mu.Lock()
	defer zobristTables.mu.Unlock()
	if table, ok := zobristTables.tables[size]; ok {
		return table
	}
	rng := splitmix64{state: 0x9e3779b97f4a7c15 ^ uint64(size)}
	points := size * size
	table := &zobristTable{
		stones: make([]StateHash, points*2),
		ko:     make([]StateHash, points),
	}
	for i := range table.stones {
		table.stones[i] = StateHash(rng.next())
	}
	for i := range table.ko {
		table.ko[i] = StateHash(rng.next())
	}
	table.side = StateHash(rng.next())
	// No passes contributes nothing so fresh boards hash by stones alone.
	for i := 1; i < len(table.passes); i++ {
		table.passes[i] = StateHash(rng.next())
	}
	zobristTables.tables[size] = table
	return table
}

func (z *zobristTable) stone(point int, force Force) StateHash {
	idx := point * 2
	if force == White {
		idx++
	}
	return z.stones[idx]
}

func (b *Board) computeHash() StateHash {
	z := getZobrist(b.size)
	var hash StateHash
	for point, cell := range b.cells {
		if cell != Empty {
			hash ^= z.stone(point, cell)
		}
	}
	if b.next == White {
		hash ^= z.side
	}
	if b.ko != PassMove {
		hash ^= z.ko[b.ko]
	}
	hash ^= z.passes[min(b.passes, maxHashedPasses)]
	return hash
}

type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// MixSeed derives an independent seed from a base seed and a sequence of values.
func MixSeed(base uint64, values ...uint64) uint64 {
	s := splitmix64{state: base}
	out := s.next()
	for _, v := range values {
		s.state ^= v
		out ^= s.next()
	}
	return out
}
