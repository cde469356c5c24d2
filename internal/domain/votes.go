package domain

// VoteTally is the reduced form of a set of votes.
type VoteTally struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
	Net       int `json:"net"`
}

// ReduceVotes counts up and down votes. Values other than +1 and -1 are ignored.
func ReduceVotes(votes []Vote) VoteTally {
	var t VoteTally
	for _, v := range votes {
		switch v.Value {
		case 1:
			t.Upvotes++
		case -1:
			t.Downvotes++
		}
	}
	t.Net = t.Upvotes - t.Downvotes
	return t
}

// Add returns the sum of two tallies.
func (t VoteTally) Add(other VoteTally) VoteTally {
	sum := VoteTally{
		Upvotes:   t.Upvotes + other.Upvotes,
		Downvotes: t.Downvotes + other.Downvotes,
	}
	sum.Net = sum.Upvotes - sum.Downvotes
	return sum
}

// SumTallies folds per-item tallies into one aggregate.
func SumTallies(tallies map[ContentRef]VoteTally) VoteTally {
	var total VoteTally
	for _, t := range tallies {
		total = total.Add(t)
	}
	return total
}
