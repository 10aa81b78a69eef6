// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/pdiddy/answer-engine/pkg/types"
)

func testCfg() types.SourcesConfig {
	return types.SourcesConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "test/0.1",
		},
	}
}

func TestRegistryHasSixteenUniqueNames(t *testing.T) {
	adapters := Registry(http.DefaultClient)
	if len(adapters) != 16 {
		t.Fatalf("len(Registry()) = %d, want 16", len(adapters))
	}
	seen := map[string]bool{}
	for _, a := range adapters {
		if seen[a.Name()] {
			t.Errorf("duplicate adapter name %q", a.Name())
		}
		seen[a.Name()] = true
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short unchanged", "abc", 10, "abc"},
		{"exact unchanged", "abcde", 5, "abcde"},
		{"long truncated", "abcdefghij", 8, "abcde..."},
		{"multibyte truncated", strings.Repeat("é", 10), 8, "ééééé..."},
		{"multibyte exact", strings.Repeat("日", 5), 5, strings.Repeat("日", 5)},
		{"mixed runes", "héllo wörld, héllo", 10, "héllo w..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.in, tt.max); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestFirstToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"serendipity meaning", "serendipity"},
		{"word", "word"},
		{"  padded  query ", "padded"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := firstToken(tt.in); got != tt.want {
			t.Errorf("firstToken(%q) = %q, want %q", tt.in, tt.want, got)
		}
	}
}

// --- arXiv ---

const arxivFixture = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2301.07041v1</id>
    <title>Attention Is All You Need</title>
    <summary>%s</summary>
    <published>2023-01-17T00:00:00Z</published>
    <author><name>A. Vaswani</name></author>
    <author><name>N. Shazeer</name></author>
    <link href="http://arxiv.org/pdf/2301.07041v1" title="pdf"/>
    <category term="cs.CL"/>
  </entry>
</feed>`

func TestArxivFetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, arxivFixture, "A short summary.")
	}))
	defer ts.Close()

	old := arxivAPIBase
	arxivAPIBase = ts.URL
	defer func() { arxivAPIBase = old }()

	a := &ArxivAdapter{Client: ts.Client()}
	result := a.Fetch(context.Background(), "transformers", testCfg())

	if result.IsError() {
		t.Fatalf("unexpected error result: %v", result.Record)
	}
	if len(result.Records) != 1 {
		t.Fatalf("len(Records) = %d, want 1", len(result.Records))
	}
	rec := result.Records[0]
	if got := rec.Str("title"); got != "Attention Is All You Need" {
		t.Errorf("title = %q", got)
	}
	if got := rec.Strs("authors"); len(got) != 2 {
		t.Errorf("authors = %v, want 2 names", got)
	}
	if got := rec.Str("pdf_url"); got != "http://arxiv.org/pdf/2301.07041v1" {
		t.Errorf("pdf_url = %q", got)
	}
}

// Truncation bound: a synthetically oversized abstract is cut to the
// adapter's budget with the marker appended.
func TestArxivTruncatesOversizedSummary(t *testing.T) {
	huge := strings.Repeat("x", 10000)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, arxivFixture, huge)
	}))
	defer ts.Close()

	old := arxivAPIBase
	arxivAPIBase = ts.URL
	defer func() { arxivAPIBase = old }()

	a := &ArxivAdapter{Client: ts.Client()}
	result := a.Fetch(context.Background(), "anything", testCfg())

	summary := result.Records[0].Str("summary")
	if len(summary) != arxivSummaryBudget {
		t.Errorf("len(summary) = %d, want %d", len(summary), arxivSummaryBudget)
	}
	if !strings.HasSuffix(summary, "...") {
		t.Errorf("summary missing truncation marker: %q", summary[len(summary)-10:])
	}
}

func TestArxivTruncationKeepsValidUTF8(t *testing.T) {
	huge := strings.Repeat("é", 4000)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, arxivFixture, huge)
	}))
	defer ts.Close()

	old := arxivAPIBase
	arxivAPIBase = ts.URL
	defer func() { arxivAPIBase = old }()

	a := &ArxivAdapter{Client: ts.Client()}
	result := a.Fetch(context.Background(), "anything", testCfg())

	summary := result.Records[0].Str("summary")
	if !utf8.ValidString(summary) {
		t.Fatalf("summary is not valid UTF-8: %q", summary[len(summary)-10:])
	}
	if got := utf8.RuneCountInString(summary); got != arxivSummaryBudget {
		t.Errorf("rune count = %d, want %d", got, arxivSummaryBudget)
	}
	if !strings.HasSuffix(summary, "...") {
		t.Errorf("summary missing truncation marker: %q", summary[len(summary)-10:])
	}
}

func TestArxivNetworkFailureIsErrorMarker(t *testing.T) {
	old := arxivAPIBase
	arxivAPIBase = "http://127.0.0.1:1"
	defer func() { arxivAPIBase = old }()

	a := &ArxivAdapter{Client: &http.Client{Timeout: time.Second}}
	result := a.Fetch(context.Background(), "anything", testCfg())

	if !result.IsError() {
		t.Fatal("expected error result")
	}
	// Error and success fields are mutually exclusive.
	if len(result.Record) != 1 {
		t.Errorf("error record has extra fields: %v", result.Record)
	}
}

// --- DuckDuckGo ---

func TestDuckDuckGoFetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"AbstractText": "Go is a programming language.",
			"AbstractURL": "https://golang.org",
			"Heading": "Go",
			"RelatedTopics": [
				{"Text": "Golang - The Go language", "FirstURL": "https://go.dev"},
				{"Text": "Gopher", "FirstURL": "https://go.dev/gopher"}
			]
		}`)
	}))
	defer ts.Close()

	old := ddgAPIBase
	ddgAPIBase = ts.URL
	defer func() { ddgAPIBase = old }()

	a := &DuckDuckGoAdapter{Client: ts.Client()}
	result := a.Fetch(context.Background(), "go", testCfg())

	if len(result.Records) != 3 {
		t.Fatalf("len(Records) = %d, want 3", len(result.Records))
	}
	if got := result.Records[0].Str("type"); got != "instant_answer" {
		t.Errorf("first record type = %q", got)
	}
	if got := result.Records[1].Str("title"); got != "Golang" {
		t.Errorf("split title = %q, want %q", got, "Golang")
	}
	if got := result.Records[1].Str("body"); got != "The Go language" {
		t.Errorf("split body = %q", got)
	}
	// Topic with no separator keeps the full text as title.
	if got := result.Records[2].Str("title"); got != "Gopher" {
		t.Errorf("no-separator title = %q", got)
	}
}

func TestInstantAnswerEmptyIsNotError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"AbstractText": "", "Heading": ""}`)
	}))
	defer ts.Close()

	old := ddgAPIBase
	ddgAPIBase = ts.URL
	defer func() { ddgAPIBase = old }()

	a := &InstantAnswerAdapter{Client: ts.Client()}
	result := a.Fetch(context.Background(), "obscure", testCfg())

	if result.IsError() {
		t.Error("empty instant answer must not be an error")
	}
	if !result.IsEmpty() {
		t.Error("empty instant answer must be empty")
	}
	if result.Renderable() {
		t.Error("empty instant answer must not be renderable")
	}
}

// --- Wikipedia ---

func wikipediaHandler(searchJSON, pageJSON string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("list") == "search" {
			fmt.Fprint(w, searchJSON)
			return
		}
		fmt.Fprint(w, pageJSON)
	}
}

func TestWikipediaFetch(t *testing.T) {
	ts := httptest.NewServer(wikipediaHandler(
		`{"query":{"search":[{"title":"Go (programming language)"}]}}`,
		`{"query":{"pages":{"123":{
			"title":"Go (programming language)",
			"extract":"Go is a statically typed language.",
			"fullurl":"https://en.wikipedia.org/wiki/Go",
			"categories":[{"title":"Category:Programming languages"}]}}}}`,
	))
	defer ts.Close()

	old := wikiAPIBase
	wikiAPIBase = ts.URL
	defer func() { wikiAPIBase = old }()

	a := &WikipediaAdapter{Client: ts.Client()}
	result := a.Fetch(context.Background(), "golang", testCfg())

	if !result.Renderable() {
		t.Fatalf("expected renderable result, got %v", result)
	}
	if got := result.Record.Str("title"); got != "Go (programming language)" {
		t.Errorf("title = %q", got)
	}
	cats := result.Record.Strs("categories")
	if len(cats) != 1 || cats[0] != "Programming languages" {
		t.Errorf("categories = %v", cats)
	}
}

func TestWikipediaDisambiguationIsSuccess(t *testing.T) {
	ts := httptest.NewServer(wikipediaHandler(
		`{"query":{"search":[{"title":"Mercury"},{"title":"Mercury (planet)"},{"title":"Mercury (element)"}]}}`,
		`{"query":{"pages":{"55":{
			"title":"Mercury",
			"extract":"Mercury may refer to: several things.",
			"fullurl":"https://en.wikipedia.org/wiki/Mercury"}}}}`,
	))
	defer ts.Close()

	old := wikiAPIBase
	wikiAPIBase = ts.URL
	defer func() { wikiAPIBase = old }()

	a := &WikipediaAdapter{Client: ts.Client()}
	result := a.Fetch(context.Background(), "Mercury", testCfg())

	if result.IsError() {
		t.Fatal("disambiguation must not be an error")
	}
	if !result.Renderable() {
		t.Fatal("disambiguation must be renderable")
	}
	options := result.Record.Strs("disambiguation")
	if len(options) != 3 {
		t.Errorf("disambiguation options = %v, want 3", options)
	}
	if !strings.Contains(result.Record.Str("summary"), "Multiple pages found") {
		t.Errorf("summary = %q", result.Record.Str("summary"))
	}
}

func TestWikipediaNoPageIsEmptySuccess(t *testing.T) {
	ts := httptest.NewServer(wikipediaHandler(`{"query":{"search":[]}}`, `{}`))
	defer ts.Close()

	old := wikiAPIBase
	wikiAPIBase = ts.URL
	defer func() { wikiAPIBase = old }()

	a := &WikipediaAdapter{Client: ts.Client()}
	result := a.Fetch(context.Background(), "qzxv", testCfg())

	if result.IsError() {
		t.Error("missing page must not be an error")
	}
	if !result.IsEmpty() {
		t.Error("missing page must be empty")
	}
}

// --- PubMed ---

func TestPubMedEmptyIDListSkipsSecondStep(t *testing.T) {
	var efetchCalled bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "esearch") {
			fmt.Fprint(w, `{"esearchresult":{"idlist":[]}}`)
			return
		}
		efetchCalled = true
	}))
	defer ts.Close()

	old := pubmedAPIBase
	pubmedAPIBase = ts.URL
	defer func() { pubmedAPIBase = old }()

	a := &PubMedAdapter{Client: ts.Client()}
	result := a.Fetch(context.Background(), "nonexistent condition", testCfg())

	if efetchCalled {
		t.Error("efetch must not run when esearch returns no IDs")
	}
	if result.IsError() {
		t.Error("empty ID list is an empty success, not an error")
	}
	if !result.IsEmpty() {
		t.Error("empty ID list must produce an empty result")
	}
}

func TestPubMedTwoStepFetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "esearch") {
			fmt.Fprint(w, `{"esearchresult":{"idlist":["12345"]}}`)
			return
		}
		fmt.Fprint(w, `<?xml version="1.0"?>
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <PMID>12345</PMID>
      <Article>
        <Journal><JournalIssue><PubDate><Year>2021</Year></PubDate></JournalIssue></Journal>
        <ArticleTitle>mRNA vaccines</ArticleTitle>
        <Abstract><AbstractText>Vaccines work.</AbstractText></Abstract>
        <AuthorList>
          <Author><LastName>Doe</LastName><ForeName>Jane</ForeName></Author>
        </AuthorList>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`)
	}))
	defer ts.Close()

	old := pubmedAPIBase
	pubmedAPIBase = ts.URL
	defer func() { pubmedAPIBase = old }()

	a := &PubMedAdapter{Client: ts.Client()}
	result := a.Fetch(context.Background(), "mrna", testCfg())

	if len(result.Records) != 1 {
		t.Fatalf("len(Records) = %d, want 1", len(result.Records))
	}
	rec := result.Records[0]
	if got := rec.Str("title"); got != "mRNA vaccines" {
		t.Errorf("title = %q", got)
	}
	if got := rec.Str("year"); got != "2021" {
		t.Errorf("year = %q", got)
	}
	authors := rec.Strs("authors")
	if len(authors) != 1 || authors[0] != "Jane Doe" {
		t.Errorf("authors = %v", authors)
	}
	if got := rec.Str("url"); got != "https://pubmed.ncbi.nlm.nih.gov/12345/" {
		t.Errorf("url = %q", got)
	}
}

// --- Dictionary ---

func TestDictionaryUsesFirstToken(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `[{"word":"serendipity","phonetics":[{"text":"/ˌsɛɹ.ənˈdɪp.ɪ.ti/"}],
			"meanings":[{"partOfSpeech":"noun","definitions":[{"definition":"A fortunate accident.","example":""}]}]}]`)
	}))
	defer ts.Close()

	old := dictionaryAPIBase
	dictionaryAPIBase = ts.URL
	defer func() { dictionaryAPIBase = old }()

	a := &DictionaryAdapter{Client: ts.Client()}
	result := a.Fetch(context.Background(), "serendipity meaning in english", testCfg())

	if !strings.HasSuffix(gotPath, "/serendipity") {
		t.Errorf("request path = %q, want first token only", gotPath)
	}
	if got := result.Record.Str("word"); got != "serendipity" {
		t.Errorf("word = %q", got)
	}
}

func TestDictionaryNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	old := dictionaryAPIBase
	dictionaryAPIBase = ts.URL
	defer func() { dictionaryAPIBase = old }()

	a := &DictionaryAdapter{Client: ts.Client()}
	result := a.Fetch(context.Background(), "qzxvw", testCfg())

	if !result.IsError() {
		t.Fatal("404 word lookup must be an error marker")
	}
	if got := result.Record.Str(types.ErrorKey); !strings.Contains(got, "not found in dictionary") {
		t.Errorf("error message = %q", got)
	}
}

// --- Country ---

func TestCountryRetriesAsPartialSearchOn404(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, `[{"name":{"common":"France","official":"French Republic"},
			"capital":["Paris"],"region":"Europe","subregion":"Western Europe",
			"population":67000000,"languages":{"fra":"French"},
			"currencies":{"EUR":{"name":"Euro"}}}]`)
	}))
	defer ts.Close()

	old := countryAPIBase
	countryAPIBase = ts.URL
	defer func() { countryAPIBase = old }()

	a := &CountryAdapter{Client: ts.Client()}
	result := a.Fetch(context.Background(), "franc", testCfg())

	if calls != 2 {
		t.Fatalf("calls = %d, want 2 (exact then partial)", calls)
	}
	if got := result.Record.Str("capital"); got != "Paris" {
		t.Errorf("capital = %q", got)
	}
	currencies := result.Record.Strs("currencies")
	if len(currencies) != 1 || currencies[0] != "Euro (EUR)" {
		t.Errorf("currencies = %v", currencies)
	}
}

func TestCountryNotFoundAfterRetry(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	old := countryAPIBase
	countryAPIBase = ts.URL
	defer func() { countryAPIBase = old }()

	a := &CountryAdapter{Client: ts.Client()}
	result := a.Fetch(context.Background(), "atlantis", testCfg())

	if !result.IsError() {
		t.Fatal("expected error marker")
	}
}

// --- Quotes ---

func TestQuotesFallsBackToRandom(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "search") {
			fmt.Fprint(w, `{"results":[]}`)
			return
		}
		fmt.Fprint(w, `[{"content":"Stay hungry.","author":"Someone","tags":["life"],"length":12}]`)
	}))
	defer ts.Close()

	old := quotesAPIBase
	quotesAPIBase = ts.URL
	defer func() { quotesAPIBase = old }()

	a := &QuotesAdapter{Client: ts.Client()}
	result := a.Fetch(context.Background(), "qzxv", testCfg())

	if len(result.Records) != 1 {
		t.Fatalf("len(Records) = %d, want 1 from random fallback", len(result.Records))
	}
	if got := result.Records[0].Str("content"); got != "Stay hungry." {
		t.Errorf("content = %q", got)
	}
}

// --- GitHub ---

func TestGitHubRateLimitIsDistinctError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	old := githubAPIBase
	githubAPIBase = ts.URL
	defer func() { githubAPIBase = old }()

	a := &GitHubAdapter{Client: ts.Client()}
	result := a.Fetch(context.Background(), "kubernetes", testCfg())

	if !result.IsError() {
		t.Fatal("expected error marker")
	}
	if got := result.Record.Str(types.ErrorKey); !strings.Contains(got, "rate limit") {
		t.Errorf("error message = %q, want rate limit mention", got)
	}
}

func TestGitHubFetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items":[{"name":"kubernetes","full_name":"kubernetes/kubernetes",
			"description":"Production-Grade Container Scheduling","html_url":"https://github.com/kubernetes/kubernetes",
			"stargazers_count":100000,"forks_count":40000,"language":"Go",
			"license":{"name":"Apache License 2.0"},"owner":{"login":"kubernetes"}}]}`)
	}))
	defer ts.Close()

	old := githubAPIBase
	githubAPIBase = ts.URL
	defer func() { githubAPIBase = old }()

	a := &GitHubAdapter{Client: ts.Client()}
	result := a.Fetch(context.Background(), "kubernetes", testCfg())

	rec := result.Records[0]
	if got := rec.Int("stars"); got != 100000 {
		t.Errorf("stars = %d", got)
	}
	if got := rec.Str("license"); got != "Apache License 2.0" {
		t.Errorf("license = %q", got)
	}
}

// --- Weather ---

func TestWeatherFetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"current_condition":[{"temp_C":"18","temp_F":"64","humidity":"70",
			"windspeedKmph":"12","weatherDesc":[{"value":"Cloudy"}]}]}`)
	}))
	defer ts.Close()

	old := weatherAPIBase
	weatherAPIBase = ts.URL
	defer func() { weatherAPIBase = old }()

	a := &WeatherAdapter{Client: ts.Client()}
	result := a.Fetch(context.Background(), "Paris", testCfg())

	if got := result.Record.Str("temperature_c"); got != "18" {
		t.Errorf("temperature_c = %q", got)
	}
	if got := result.Record.Str("condition"); got != "Cloudy" {
		t.Errorf("condition = %q", got)
	}
	// Absent fields read as the placeholder, never as a failure.
	if got := result.Record.Str("pressure_mb"); got != types.NotAvailable {
		t.Errorf("pressure_mb = %q, want %q", got, types.NotAvailable)
	}
}

// --- News ---

func TestNewsScrapesResultRows(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<a class="result__url" href="#">example.com/story</a>
			<a class="result__snippet" href="#">Big thing happened today.</a>
		</body></html>`)
	}))
	defer ts.Close()

	old := newsAPIBase
	newsAPIBase = ts.URL
	defer func() { newsAPIBase = old }()

	a := &NewsAdapter{Client: ts.Client()}
	result := a.Fetch(context.Background(), "big thing", testCfg())

	if len(result.Records) != 1 {
		t.Fatalf("len(Records) = %d, want 1", len(result.Records))
	}
	if got := result.Records[0].Str("body"); got != "Big thing happened today." {
		t.Errorf("body = %q", got)
	}
}
