package layout

// Coincidence is one shared-letter position between two entries:
// entries[i].Word[IPos] == entries[j].Word[JPos].
type Coincidence struct {
	IPos int
	JPos int
}

// overlapMatrix is keyed by (i, j), i != j, onto every letter coincidence
// between entries[i] and entries[j]. It is derived once per generation
// from the entry list and never mutated.
type overlapMatrix struct {
	pairs map[[2]int][]Coincidence
	// total[i] is the sum, over every j != i, of len(pairs[i,j]) -- the
	// overlap total used for seed selection and candidate ordering.
	total []int
}

func buildOverlapMatrix(entries []Entry) *overlapMatrix {
	m := &overlapMatrix{
		pairs: make(map[[2]int][]Coincidence),
		total: make([]int, len(entries)),
	}

	for i := range entries {
		for j := range entries {
			if i == j {
				continue
			}
			var cs []Coincidence
			wi, wj := entries[i].Word, entries[j].Word
			for ip := 0; ip < len(wi); ip++ {
				for jp := 0; jp < len(wj); jp++ {
					if wi[ip] == wj[jp] {
						cs = append(cs, Coincidence{IPos: ip, JPos: jp})
					}
				}
			}
			if len(cs) > 0 {
				m.pairs[[2]int{i, j}] = cs
				m.total[i] += len(cs)
			}
		}
	}

	return m
}

func (m *overlapMatrix) coincidences(i, j int) []Coincidence {
	return m.pairs[[2]int{i, j}]
}
