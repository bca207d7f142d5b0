package movie

import "fmt"

// Wire status values used by the recommendation engine.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusWarning = "warning"
)

// fallbackFailureMessage is shown when the engine reports an error without text.
const fallbackFailureMessage = "Movie not found. Please try another search."

// DefaultRecommendations is the number of recommendations requested per search.
const DefaultRecommendations = 5

// WireRequest is the JSON body of POST /api/recommend.
type WireRequest struct {
	MovieName        string `json:"movie_name" validate:"required"`
	NRecommendations int    `json:"n_recommendations" validate:"omitempty,min=1,max=50"`
}

// WireResponse is the JSON body returned by POST /api/recommend.
type WireResponse struct {
	Status             string    `json:"status"`
	InputMovie         string    `json:"input_movie,omitempty"`
	Cluster            *int      `json:"cluster,omitempty"`
	TotalClusterMovies *int      `json:"total_cluster_movies,omitempty"`
	Recommendations    []Summary `json:"recommendations,omitempty"`
	Message            string    `json:"message,omitempty"`
}

// Response converts the wire shape to a Response. Any status other than
// success is a Failure; unknown statuses are rejected.
func (w WireResponse) Response() (Response, error) {
	switch w.Status {
	case StatusSuccess:
		var cluster, total int
		if w.Cluster != nil {
			cluster = *w.Cluster
		}
		if w.TotalClusterMovies != nil {
			total = *w.TotalClusterMovies
		}
		return Success(w.InputMovie, cluster, total, w.Recommendations), nil
	case StatusError, StatusWarning:
		msg := w.Message
		if msg == "" {
			msg = fallbackFailureMessage
		}
		return Failure(msg), nil
	default:
		return Response{}, fmt.Errorf("%w: %q", ErrBadStatus, w.Status)
	}
}

// ToWire converts r to the engine's wire shape.
func ToWire(r Response) WireResponse {
	if !r.IsSuccess() {
		return WireResponse{Status: StatusError, Message: r.message}
	}
	cluster, total := r.cluster, r.totalClusterMovies
	recs := r.Recommendations()
	if recs == nil {
		recs = []Summary{}
	}
	return WireResponse{
		Status:             StatusSuccess,
		InputMovie:         r.inputMovie,
		Cluster:            &cluster,
		TotalClusterMovies: &total,
		Recommendations:    recs,
	}
}
