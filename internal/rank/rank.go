package rank

// Rank is one tier of the ladder. MinExp is inclusive; MaxExp bounds the
// progress bar only, it does not cap earned exp.
type Rank struct {
	Name   string `json:"name"`
	MinExp int    `json:"min_exp"`
	MaxExp int    `json:"max_exp"`
	Icon   string `json:"icon"`
	Image  string `json:"image"`
}

// Ranks is ordered ascending by MinExp and covers 0 upward with no gaps.
var Ranks = []Rank{
	{Name: "Bronze", MinExp: 0, MaxExp: 100, Icon: "🥉", Image: "/bronze.png"},
	{Name: "Silver", MinExp: 100, MaxExp: 300, Icon: "🥈", Image: "/silver.png"},
	{Name: "Gold", MinExp: 300, MaxExp: 600, Icon: "🥇", Image: "/gold.png"},
	{Name: "Platinum", MinExp: 600, MaxExp: 1000, Icon: "💎", Image: "/platinum.png"},
	{Name: "Diamond", MinExp: 1000, MaxExp: 1500, Icon: "👑", Image: "/diamond.png"},
	{Name: "Master", MinExp: 1500, MaxExp: 9999, Icon: "🔥", Image: "/master.png"},
}

// Current returns the highest rank whose threshold exp has reached.
// Negative exp should not occur; it maps to the lowest rank.
func Current(exp int) Rank {
	for i := len(Ranks) - 1; i >= 0; i-- {
		if exp >= Ranks[i].MinExp {
			return Ranks[i]
		}
	}
	return Ranks[0]
}

// Progress returns how far exp sits inside its rank band, as a percentage
// clamped to [0, 100].
func Progress(exp int) float64 {
	r := Current(exp)
	inRank := float64(exp - r.MinExp)
	band := float64(r.MaxExp - r.MinExp)
	pct := inRank / band * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// ToNext returns the exp still needed to leave the current band. At the top
// rank this can go to zero or below, meaning max rank.
func ToNext(exp int) int {
	return Current(exp).MaxExp - exp
}
