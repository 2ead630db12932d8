package shopping

import "golang.org/x/sync/errgroup"

// Build scales every contribution and merges the results into a single sorted
// shopping list.
func Build(contributions []Contribution) []string {
	agg := NewAggregator()
	Fold(agg, contributions)
	return agg.Lines()
}

// Fold scales contributions in parallel and merges them into agg in
// contribution order. Float sums depend on the order they are added in, so
// the merge itself stays sequential.
func Fold(agg *Aggregator, contributions []Contribution) {
	scaled := make([][]string, len(contributions))

	var g errgroup.Group
	for i, c := range contributions {
		g.Go(func() error {
			scaled[i] = c.Scaled()
			return nil
		})
	}
	// Scaling never fails; Wait only joins the goroutines.
	_ = g.Wait()

	for _, lines := range scaled {
		for _, line := range lines {
			agg.AddLine(line)
		}
	}
}
