package paper

import (
	"math/rand/v2"
	"slices"
)

// Sampler draws questions from a pool until a marks target is met.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler creates a Sampler using rng. Passing a seeded source makes
// selection reproducible.
func NewSampler(rng *rand.Rand) *Sampler {
	return &Sampler{rng: rng}
}

// Sample selects questions whose marks add up to at least target using a
// fresh random source for every call.
func Sample(target int, allowed []int, pool []Question) ([]Question, int) {
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	return NewSampler(rng).Sample(target, allowed, pool)
}

// Sample draws from the buckets of allowed marks values until the running
// total reaches target or every bucket is exhausted. Each allowed value gets
// one draw slot per available question (at least one), so larger buckets are
// visited more often. The last pick may overshoot target. Only questions
// whose marks are in allowed are ever returned and no question is returned
// twice.
func (s *Sampler) Sample(target int, allowed []int, pool []Question) ([]Question, int) {
	values := uniqueInts(allowed)
	if len(values) == 0 || len(pool) == 0 {
		return nil, 0
	}

	buckets := make(map[int][]Question, len(values))
	for _, m := range values {
		buckets[m] = nil
	}
	usable := 0
	for _, q := range pool {
		if _, ok := buckets[q.Marks]; ok {
			buckets[q.Marks] = append(buckets[q.Marks], q)
			usable++
		}
	}
	if usable == 0 {
		return nil, 0
	}

	var order []int
	for _, m := range values {
		for range max(1, len(buckets[m])) {
			order = append(order, m)
		}
	}
	s.rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	var selected []Question
	total := 0
	for i := 0; total < target && usable > 0; i++ {
		m := order[i%len(order)]
		bucket := buckets[m]
		if len(bucket) == 0 {
			continue
		}
		k := s.rng.IntN(len(bucket))
		selected = append(selected, bucket[k])
		buckets[m] = slices.Delete(bucket, k, k+1)
		usable--
		total += m
	}

	return selected, total
}

func uniqueInts(in []int) []int {
	seen := make(map[int]bool, len(in))
	out := make([]int, 0, len(in))
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
