package catalog_test

import (
	"strings"
	"testing"

	"github.com/okian/moviefront/internal/domain/catalog"
	. "github.com/smartystreets/goconvey/convey"
)

func TestContains(t *testing.T) {
	Convey("Given the reference title list", t, func() {
		Convey("Then exact and partial titles should match case-insensitively", func() {
			So(catalog.Contains("The Matrix"), ShouldBeTrue)
			So(catalog.Contains("the matrix"), ShouldBeTrue)
			So(catalog.Contains("MATR"), ShouldBeTrue)
			So(catalog.Contains("hangover"), ShouldBeTrue)
		})

		Convey("And unknown titles should not match", func() {
			So(catalog.Contains("xyzxyz-not-a-movie"), ShouldBeFalse)
			So(catalog.Contains("The Matrix Reloaded"), ShouldBeFalse)
		})

		Convey("And Titles should return a copy", func() {
			titles := catalog.Titles()
			titles[0] = "mutated"
			So(catalog.Titles()[0], ShouldEqual, "The Matrix")
		})
	})
}

func TestSuggest(t *testing.T) {
	Convey("Given live autocomplete input", t, func() {
		Convey("When the input is two characters or fewer", func() {
			So(catalog.Suggest("", 5), ShouldBeEmpty)
			So(catalog.Suggest("th", 5), ShouldBeEmpty)
			So(catalog.Suggest("  th  ", 5), ShouldBeEmpty)
		})

		Convey("When the input matches many titles", func() {
			got := catalog.Suggest("the", 5)

			Convey("Then at most five should be returned in list order", func() {
				So(got, ShouldHaveLength, 5)
				So(got[0], ShouldEqual, "The Matrix")
				for _, title := range got {
					So(strings.ToLower(title), ShouldContainSubstring, "the")
				}
			})
		})

		Convey("When a smaller limit is given", func() {
			So(catalog.Suggest("the", 2), ShouldResemble, []string{"The Matrix", "The Dark Knight"})
		})

		Convey("When the limit is not positive", func() {
			So(catalog.Suggest("the", 0), ShouldHaveLength, catalog.DefaultSuggestionLimit)
		})

		Convey("When nothing matches", func() {
			So(catalog.Suggest("zzzz", 5), ShouldBeEmpty)
		})
	})
}

func TestClassify(t *testing.T) {
	Convey("Given queries for each canned bucket", t, func() {
		So(catalog.Classify("The Matrix"), ShouldEqual, catalog.BucketSciFi)
		So(catalog.Classify("INTERSTELLAR"), ShouldEqual, catalog.BucketSciFi)
		So(catalog.Classify("The Hangover"), ShouldEqual, catalog.BucketComedy)
		So(catalog.Classify("superbad"), ShouldEqual, catalog.BucketComedy)
		So(catalog.Classify("The Conjuring"), ShouldEqual, catalog.BucketHorror)
		So(catalog.Classify("Titanic"), ShouldEqual, catalog.BucketClassics)
	})

	Convey("Given the comedy bucket", t, func() {
		recs := catalog.Recommendations(catalog.BucketComedy)
		titles := make([]string, len(recs))
		for i, r := range recs {
			titles[i] = r.Title
		}

		So(titles, ShouldResemble, []string{"Anchorman", "Step Brothers", "Knocked Up", "Old School", "Wedding Crashers"})
	})

	Convey("Given every bucket", t, func() {
		for _, b := range []catalog.Bucket{catalog.BucketSciFi, catalog.BucketComedy, catalog.BucketHorror, catalog.BucketClassics} {
			recs := catalog.Recommendations(b)
			So(recs, ShouldHaveLength, 5)
			for _, r := range recs {
				So(r.Rating, ShouldBeBetweenOrEqual, 0, 10)
			}
		}
	})

	Convey("Given an unknown bucket", t, func() {
		So(catalog.Recommendations("nope")[0].Title, ShouldEqual, "The Shawshank Redemption")
	})
}
