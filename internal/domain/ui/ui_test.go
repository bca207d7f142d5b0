package ui_test

import (
	"sync"
	"testing"
	"time"

	"github.com/okian/moviefront/internal/domain/movie"
	"github.com/okian/moviefront/internal/domain/ui"
	. "github.com/smartystreets/goconvey/convey"
)

func sciFi() []movie.Summary {
	return []movie.Summary{
		{Title: "Blade Runner 2049", Year: 2017, Genre: "Sci-Fi", Rating: 8.0},
		{Title: "Ex Machina", Year: 2014, Genre: "Sci-Fi", Rating: 7.7},
		{Title: "Arrival", Year: 2016, Genre: "Sci-Fi", Rating: 7.9},
	}
}

func TestRender(t *testing.T) {
	Convey("Given an idle view", t, func() {
		var view ui.View
		So(view.State(), ShouldEqual, ui.StateIdle)

		Convey("When a success response is rendered", func() {
			next := ui.Render(view, movie.Success("The Matrix", 7, 321, sciFi()))

			Convey("Then the header and cards should follow the response", func() {
				So(next.State(), ShouldEqual, ui.StateResults)
				So(next.Header, ShouldResemble, ui.Header{SearchedMovie: "The Matrix", Cluster: 7, TotalMovies: 321})
				So(next.ScrollToResults, ShouldBeTrue)
				So(next.Cards, ShouldHaveLength, 3)
			})

			Convey("And card order should match recommendation order", func() {
				for i, s := range sciFi() {
					So(next.Cards[i].Title, ShouldEqual, s.Title)
					So(next.Cards[i].Position, ShouldEqual, i)
					So(next.Cards[i].AnimationDelay, ShouldEqual, int64(i*100))
				}
			})

			Convey("And ratings should render out of ten", func() {
				So(next.Cards[0].Rating, ShouldEqual, "8/10")
				So(next.Cards[1].Rating, ShouldEqual, "7.7/10")
			})

			Convey("And a second success should replace the previous cards", func() {
				again := ui.Render(next, movie.Success("Her", 1, 100, sciFi()[:1]))
				So(again.Cards, ShouldHaveLength, 1)
				So(again.Header.SearchedMovie, ShouldEqual, "Her")
				So(next.Cards, ShouldHaveLength, 3)
			})

			Convey("And a failure afterwards should leave the results panel alone", func() {
				failed := ui.Render(next, movie.NotFound())
				So(failed.ErrorVisible, ShouldBeTrue)
				So(failed.ErrorMessage, ShouldEqual, movie.NotFoundMessage)
				So(failed.ResultsVisible, ShouldBeTrue)
				So(failed.Cards, ShouldResemble, next.Cards)
				So(failed.State(), ShouldEqual, ui.StateError)
			})
		})
	})
}

func TestStateString(t *testing.T) {
	Convey("Given each state", t, func() {
		So(ui.StateIdle.String(), ShouldEqual, "idle")
		So(ui.StateLoading.String(), ShouldEqual, "loading")
		So(ui.StateError.String(), ShouldEqual, "error")
		So(ui.StateResults.String(), ShouldEqual, "results")
		So(ui.State(42).String(), ShouldEqual, "state(42)")
	})
}

func TestSession(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	Convey("Given a new session", t, func() {
		s := ui.NewSession("abc", now)
		So(s.ID(), ShouldEqual, "abc")
		So(s.View().State(), ShouldEqual, ui.StateIdle)

		Convey("When a search begins", func() {
			id := s.Begin(now)

			Convey("Then the session should be loading", func() {
				So(id, ShouldEqual, uint64(1))
				So(s.Pending(), ShouldBeTrue)
				So(s.View().State(), ShouldEqual, ui.StateLoading)
				So(s.View().RequestID, ShouldEqual, id)
			})

			Convey("And settling with success should clear loading and show results", func() {
				view, applied := s.Settle(id, movie.Success("The Matrix", 2, 150, sciFi()), now)
				So(applied, ShouldBeTrue)
				So(view.Loading, ShouldBeFalse)
				So(view.State(), ShouldEqual, ui.StateResults)
				So(s.Pending(), ShouldBeFalse)
			})

			Convey("And settling with failure should clear loading and show the error", func() {
				view, applied := s.Settle(id, movie.NotFound(), now)
				So(applied, ShouldBeTrue)
				So(view.Loading, ShouldBeFalse)
				So(view.State(), ShouldEqual, ui.StateError)
			})
		})

		Convey("When a new search begins after results were shown", func() {
			first := s.Begin(now)
			s.Settle(first, movie.Success("The Matrix", 2, 150, sciFi()), now)
			s.Settle(s.Begin(now), movie.NotFound(), now)
			s.Begin(now)

			Convey("Then prior error and results should be hidden", func() {
				view := s.View()
				So(view.ErrorVisible, ShouldBeFalse)
				So(view.ErrorMessage, ShouldBeEmpty)
				So(view.ResultsVisible, ShouldBeFalse)
				So(view.Loading, ShouldBeTrue)
			})
		})

		Convey("When two searches overlap and the older one settles last", func() {
			older := s.Begin(now)
			newer := s.Begin(now)

			view, applied := s.Settle(newer, movie.Success("Her", 1, 100, sciFi()[:1]), now)
			So(applied, ShouldBeTrue)
			So(view.Header.SearchedMovie, ShouldEqual, "Her")

			staleView, staleApplied := s.Settle(older, movie.NotFound(), now)

			Convey("Then the stale completion should be ignored", func() {
				So(staleApplied, ShouldBeFalse)
				So(staleView.ErrorVisible, ShouldBeFalse)
				So(s.View().Header.SearchedMovie, ShouldEqual, "Her")
			})
		})

		Convey("When an older search settles while a newer one is pending", func() {
			older := s.Begin(now)
			s.Begin(now)
			_, applied := s.Settle(older, movie.Success("The Matrix", 2, 150, sciFi()), now)

			Convey("Then the session should stay loading", func() {
				So(applied, ShouldBeFalse)
				So(s.Pending(), ShouldBeTrue)
			})
		})

		Convey("When many goroutines search at once", func() {
			var wg sync.WaitGroup
			for i := 0; i < 50; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					id := s.Begin(now)
					s.Settle(id, movie.Success("The Matrix", 2, 150, sciFi()), now)
				}()
			}
			wg.Wait()

			Convey("Then the last begun request id should be 50", func() {
				So(s.View().RequestID, ShouldEqual, uint64(50))
			})
		})
	})
}
