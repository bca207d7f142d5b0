package catalog

import (
	"strings"

	"github.com/okian/moviefront/internal/domain/movie"
)

// Bucket names a canned recommendation set.
type Bucket string

// Canned buckets.
const (
	BucketSciFi    Bucket = "sci-fi"
	BucketComedy   Bucket = "comedy"
	BucketHorror   Bucket = "horror"
	BucketClassics Bucket = "classics"
)

type bucketRule struct {
	bucket   Bucket
	keywords []string
}

// Rules are checked in order; the first keyword hit wins.
var bucketRules = []bucketRule{
	{bucket: BucketSciFi, keywords: []string{"matrix", "inception", "interstellar"}},
	{bucket: BucketComedy, keywords: []string{"hangover", "superbad"}},
	{bucket: BucketHorror, keywords: []string{"conjuring", "insidious"}},
}

var bucketSets = map[Bucket][]movie.Summary{
	BucketSciFi: {
		{Title: "Blade Runner 2049", Year: 2017, Genre: "Sci-Fi", Rating: 8.0},
		{Title: "Ex Machina", Year: 2014, Genre: "Sci-Fi", Rating: 7.7},
		{Title: "Arrival", Year: 2016, Genre: "Sci-Fi", Rating: 7.9},
		{Title: "Minority Report", Year: 2002, Genre: "Sci-Fi", Rating: 7.6},
		{Title: "Her", Year: 2013, Genre: "Sci-Fi", Rating: 8.0},
	},
	BucketComedy: {
		{Title: "Anchorman", Year: 2004, Genre: "Comedy", Rating: 7.2},
		{Title: "Step Brothers", Year: 2008, Genre: "Comedy", Rating: 6.9},
		{Title: "Knocked Up", Year: 2007, Genre: "Comedy", Rating: 6.9},
		{Title: "Old School", Year: 2003, Genre: "Comedy", Rating: 7.0},
		{Title: "Wedding Crashers", Year: 2005, Genre: "Comedy", Rating: 6.9},
	},
	BucketHorror: {
		{Title: "The Ring", Year: 2002, Genre: "Horror", Rating: 7.1},
		{Title: "Sinister", Year: 2012, Genre: "Horror", Rating: 6.8},
		{Title: "Get Out", Year: 2017, Genre: "Horror", Rating: 7.7},
		{Title: "A Quiet Place", Year: 2018, Genre: "Horror", Rating: 7.5},
		{Title: "Hereditary", Year: 2018, Genre: "Horror", Rating: 7.3},
	},
	BucketClassics: {
		{Title: "The Shawshank Redemption", Year: 1994, Genre: "Drama", Rating: 9.3},
		{Title: "The Godfather", Year: 1972, Genre: "Crime", Rating: 9.2},
		{Title: "The Dark Knight", Year: 2008, Genre: "Action", Rating: 9.0},
		{Title: "Pulp Fiction", Year: 1994, Genre: "Crime", Rating: 8.9},
		{Title: "Forrest Gump", Year: 1994, Genre: "Drama", Rating: 8.8},
	},
}

// Classify picks the canned bucket for query by keyword.
func Classify(query string) Bucket {
	q := strings.ToLower(query)
	for _, rule := range bucketRules {
		for _, kw := range rule.keywords {
			if strings.Contains(q, kw) {
				return rule.bucket
			}
		}
	}
	return BucketClassics
}

// Recommendations returns a copy of the canned set for b, in rank order.
func Recommendations(b Bucket) []movie.Summary {
	set, ok := bucketSets[b]
	if !ok {
		set = bucketSets[BucketClassics]
	}
	cp := make([]movie.Summary, len(set))
	copy(cp, set)
	return cp
}
