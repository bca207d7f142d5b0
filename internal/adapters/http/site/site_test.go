package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/moviefront/internal/adapters/http/api"
	"github.com/okian/moviefront/internal/adapters/recommender"
	service "github.com/okian/moviefront/internal/app"
	"github.com/okian/moviefront/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func newService() *service.Service {
	fb := recommender.NewFallback(nil, recommender.NewMock(recommender.WithDelay(0), recommender.WithSeed(3)))
	svc := service.New(fb, service.WithLogger(logger.Nop()))
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	return svc
}

func get(mux http.Handler, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestSiteHandler(t *testing.T) {
	Convey("Given a registered search page", t, func() {
		ctx := context.Background()
		svc := newService()
		defer svc.Stop()
		mux := http.NewServeMux()
		Register(ctx, mux, svc, nil)

		Convey("When the page is opened without a search", func() {
			w := get(mux, "/")
			body := w.Body.String()

			Convey("Then the idle page should render", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
				So(body, ShouldContainSubstring, `data-state="idle"`)
				So(body, ShouldContainSubstring, `id="results" class="results hidden"`)
				So(body, ShouldContainSubstring, `id="loading" class="loading hidden"`)
			})

			Convey("And the featured chips should link to searches", func() {
				So(body, ShouldContainSubstring, `href="/?movie=The%20Matrix"`)
				So(body, ShouldContainSubstring, ">The Conjuring</a>")
			})

			Convey("And a session cookie should be issued", func() {
				So(w.Header().Get("Set-Cookie"), ShouldStartWith, api.CookieName+"=")
			})
		})

		Convey("When the page runs a search for a known movie", func() {
			w := get(mux, "/?movie=The+Hangover")
			body := w.Body.String()

			Convey("Then the cards should render in order with staggered delays", func() {
				So(body, ShouldContainSubstring, `data-state="results"`)
				So(body, ShouldContainSubstring, `data-scroll="results"`)
				So(body, ShouldContainSubstring, `id="searchedMovie">The Hangover<`)
				first := strings.Index(body, ">Anchorman<")
				last := strings.Index(body, ">Wedding Crashers<")
				So(first, ShouldBeGreaterThan, 0)
				So(last, ShouldBeGreaterThan, first)
				So(body, ShouldContainSubstring, "animation-delay: 400ms")
				So(body, ShouldContainSubstring, "7.2/10")
			})

			Convey("And reopening the page with the cookie should keep the results", func() {
				var cookie *http.Cookie
				for _, c := range w.Result().Cookies() {
					if c.Name == api.CookieName {
						cookie = c
					}
				}
				So(cookie, ShouldNotBeNil)
				again := get(mux, "/", cookie)
				So(again.Body.String(), ShouldContainSubstring, `data-state="results"`)
			})
		})

		Convey("When the page runs a search for an unknown movie", func() {
			body := get(mux, "/?movie=xyzxyz-not-a-movie").Body.String()

			So(body, ShouldContainSubstring, `data-state="error"`)
			So(body, ShouldContainSubstring, "Movie not found in database. Please try another search.")
		})

		Convey("When the search parameter is blank", func() {
			body := get(mux, "/?movie=%20%20").Body.String()

			So(body, ShouldContainSubstring, `data-state="idle"`)
			So(svc.GetStats().Searches, ShouldEqual, 0)
		})

		Convey("When a static asset is requested", func() {
			w := get(mux, "/static/app.js")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "/api/search")
			// Answers without a view still leave the loading state.
			So(w.Body.String(), ShouldContainSubstring, "An error occurred while searching. Please try again.")
			So(w.Body.String(), ShouldContainSubstring, "fail(answer.body.message)")

			css := get(mux, "/static/style.css")
			So(css.Code, ShouldEqual, http.StatusOK)
		})

		Convey("When an unknown path is requested", func() {
			So(get(mux, "/some-asset").Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestSiteHandlerWithNilMux(t *testing.T) {
	Convey("Given a nil mux", t, func() {
		svc := newService()
		defer svc.Stop()

		So(func() { Register(context.Background(), nil, svc, nil) }, ShouldPanic)
	})
}
