package service

// MergeStats unions two evidence sources for the same logical metric. PV and
// order totals add because both sources record legitimate distinct
// occurrences; UV unions because one user seen by both sources is still one
// user. Inputs are not mutated.
func MergeStats(a, b StatsMap) StatsMap {
	out := make(StatsMap, len(a)+len(b))
	for _, src := range []StatsMap{a, b} {
		for key, stat := range src {
			merged := out.get(key)
			merged.PV += stat.PV
			merged.OrderCount += stat.OrderCount
			merged.AmountCents += stat.AmountCents
			for uid := range stat.UV {
				merged.UV[uid] = struct{}{}
			}
		}
	}
	return out
}
