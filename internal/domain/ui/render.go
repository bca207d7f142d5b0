package ui

import "github.com/okian/moviefront/internal/domain/movie"

// Render applies a settled response to prev and returns the next view.
// It never touches the loading flag; Session owns that transition.
//
// On success the header is filled, previous cards are replaced by one card
// per recommendation in response order, and the results panel is revealed.
// On failure only the error panel changes.
func Render(prev View, resp movie.Response) View {
	next := prev.Clone()
	if !resp.IsSuccess() {
		next.ErrorVisible = true
		next.ErrorMessage = resp.Message()
		next.ScrollToResults = false
		return next
	}

	recs := resp.Recommendations()
	next.Header = Header{
		SearchedMovie: resp.InputMovie(),
		Cluster:       resp.Cluster(),
		TotalMovies:   resp.TotalClusterMovies(),
	}
	next.Cards = make([]Card, 0, len(recs))
	for i, s := range recs {
		next.Cards = append(next.Cards, NewCard(i, s))
	}
	next.ErrorVisible = false
	next.ErrorMessage = ""
	next.ResultsVisible = true
	next.ScrollToResults = true
	return next
}
