package movie_test

import (
	"errors"
	"testing"

	"github.com/okian/moviefront/internal/domain/movie"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewSearchQuery(t *testing.T) {
	Convey("Given raw user input", t, func() {
		Convey("When it has surrounding whitespace", func() {
			q, err := movie.NewSearchQuery("  The Matrix \t")

			Convey("Then it should be trimmed", func() {
				So(err, ShouldBeNil)
				So(q.String(), ShouldEqual, "The Matrix")
				So(q.Lower(), ShouldEqual, "the matrix")
				So(q.IsZero(), ShouldBeFalse)
			})
		})

		Convey("When it is empty or whitespace only", func() {
			for _, raw := range []string{"", " ", "\t\n ", "   "} {
				q, err := movie.NewSearchQuery(raw)
				So(errors.Is(err, movie.ErrEmptyQuery), ShouldBeTrue)
				So(q.IsZero(), ShouldBeTrue)
			}
		})
	})
}

func TestNewSummary(t *testing.T) {
	Convey("Given summary fields", t, func() {
		Convey("When the rating is on the bounds", func() {
			low, errLow := movie.NewSummary("A", 2000, "Drama", 0)
			high, errHigh := movie.NewSummary("B", 2001, "Drama", 10)

			Convey("Then both should be accepted", func() {
				So(errLow, ShouldBeNil)
				So(errHigh, ShouldBeNil)
				So(low.Rating, ShouldEqual, 0)
				So(high.Rating, ShouldEqual, 10)
			})
		})

		Convey("When the rating is out of range", func() {
			_, errNeg := movie.NewSummary("A", 2000, "Drama", -0.1)
			_, errBig := movie.NewSummary("A", 2000, "Drama", 10.5)

			Convey("Then it should be rejected", func() {
				So(errors.Is(errNeg, movie.ErrInvalidRating), ShouldBeTrue)
				So(errors.Is(errBig, movie.ErrInvalidRating), ShouldBeTrue)
			})
		})
	})
}

func TestResponse(t *testing.T) {
	Convey("Given a success response", t, func() {
		recs := []movie.Summary{
			{Title: "Arrival", Year: 2016, Genre: "Sci-Fi", Rating: 7.9},
			{Title: "Her", Year: 2013, Genre: "Sci-Fi", Rating: 8.0},
		}
		r := movie.Success("The Matrix", 3, 120, recs)

		Convey("Then it should expose its fields", func() {
			So(r.IsSuccess(), ShouldBeTrue)
			So(r.Kind().String(), ShouldEqual, "success")
			So(r.InputMovie(), ShouldEqual, "The Matrix")
			So(r.Cluster(), ShouldEqual, 3)
			So(r.TotalClusterMovies(), ShouldEqual, 120)
			So(r.Recommendations(), ShouldResemble, recs)
		})

		Convey("And mutating the caller's slice should not leak in", func() {
			recs[0].Title = "changed"
			So(r.Recommendations()[0].Title, ShouldEqual, "Arrival")
		})

		Convey("And mutating a returned slice should not leak in", func() {
			got := r.Recommendations()
			got[1].Title = "changed"
			So(r.Recommendations()[1].Title, ShouldEqual, "Her")
		})
	})

	Convey("Given a failure response", t, func() {
		r := movie.NotFound()

		So(r.IsSuccess(), ShouldBeFalse)
		So(r.Kind().String(), ShouldEqual, "failure")
		So(r.Message(), ShouldEqual, "Movie not found in database. Please try another search.")
		So(r.Recommendations(), ShouldBeEmpty)
	})

	Convey("Given the zero response", t, func() {
		var r movie.Response
		So(r.IsSuccess(), ShouldBeFalse)
	})
}

func TestWireResponse(t *testing.T) {
	Convey("Given wire responses from the engine", t, func() {
		Convey("When the status is success", func() {
			cluster, total := 4, 210
			w := movie.WireResponse{
				Status:             movie.StatusSuccess,
				InputMovie:         "Inception",
				Cluster:            &cluster,
				TotalClusterMovies: &total,
				Recommendations:    []movie.Summary{{Title: "Her", Year: 2013, Genre: "Sci-Fi", Rating: 8}},
			}
			r, err := w.Response()

			So(err, ShouldBeNil)
			So(r.IsSuccess(), ShouldBeTrue)
			So(r.Cluster(), ShouldEqual, 4)
			So(r.TotalClusterMovies(), ShouldEqual, 210)
			So(r.Recommendations(), ShouldHaveLength, 1)

			Convey("And it should convert back to the same wire shape", func() {
				So(movie.ToWire(r), ShouldResemble, w)
			})
		})

		Convey("When the status is warning", func() {
			r, err := movie.WireResponse{Status: movie.StatusWarning, Message: "Movie is an outlier."}.Response()

			So(err, ShouldBeNil)
			So(r.IsSuccess(), ShouldBeFalse)
			So(r.Message(), ShouldEqual, "Movie is an outlier.")
		})

		Convey("When an error carries no message", func() {
			r, err := movie.WireResponse{Status: movie.StatusError}.Response()

			So(err, ShouldBeNil)
			So(r.Message(), ShouldEqual, "Movie not found. Please try another search.")
		})

		Convey("When the status is unknown", func() {
			_, err := movie.WireResponse{Status: "maybe"}.Response()
			So(errors.Is(err, movie.ErrBadStatus), ShouldBeTrue)
		})

		Convey("When a failure is converted to the wire", func() {
			w := movie.ToWire(movie.Failure("nope"))
			So(w.Status, ShouldEqual, movie.StatusError)
			So(w.Message, ShouldEqual, "nope")
			So(w.Cluster, ShouldBeNil)
		})
	})
}
