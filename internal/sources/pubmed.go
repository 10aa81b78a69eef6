// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/answer-engine/internal/httputil"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// pubmedAPIBase is the NCBI E-utilities endpoint. Declared as a var so
// tests can substitute an httptest server.
var pubmedAPIBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

const pubmedAbstractBudget = 500

// PubMedAdapter searches PubMed for medical research articles. It is the
// one two-step source: an ID search followed by a detail fetch. Failure
// or emptiness at the first step is terminal; the second step never runs.
type PubMedAdapter struct {
	Client *http.Client
}

// Name returns the source identifier.
func (a *PubMedAdapter) Name() string { return "pubmed" }

// Fetch resolves article IDs via esearch, then fetches abstracts via
// efetch. An empty ID list is an empty success ("No articles found").
func (a *PubMedAdapter) Fetch(ctx context.Context, query string, cfg types.SourcesConfig) types.SourceResult {
	max := maxResults(cfg, 3)

	ids, err := a.searchIDs(ctx, query, max, cfg)
	if err != nil {
		return types.ErrorResult(err.Error())
	}
	if len(ids) == 0 {
		return types.EmptyResult("No articles found")
	}

	articles, err := a.fetchArticles(ctx, ids, cfg)
	if err != nil {
		return types.ErrorResult(err.Error())
	}

	records := make([]types.Record, 0, len(articles))
	for _, article := range articles {
		authors := make([]string, 0, len(article.Authors))
		for _, au := range article.Authors {
			switch {
			case au.LastName != "" && au.ForeName != "":
				authors = append(authors, au.ForeName+" "+au.LastName)
			case au.LastName != "":
				authors = append(authors, au.LastName)
			}
		}
		if len(authors) > 5 {
			authors = authors[:5]
		}

		abstract := strings.TrimSpace(article.Abstract)
		if abstract == "" {
			abstract = "No abstract available"
		}

		articleURL := ""
		if article.PMID != "" {
			articleURL = fmt.Sprintf("https://pubmed.ncbi.nlm.nih.gov/%s/", article.PMID)
		}

		records = append(records, types.Record{
			"title":    orDefault(strings.TrimSpace(article.Title)),
			"abstract": truncate(abstract, pubmedAbstractBudget),
			"authors":  authors,
			"year":     orDefault(article.Year),
			"pmid":     article.PMID,
			"url":      articleURL,
		})
	}
	return types.ListResult(records)
}

// searchIDs runs the esearch step and returns matching PubMed IDs.
func (a *PubMedAdapter) searchIDs(ctx context.Context, query string, max int, cfg types.SourcesConfig) ([]string, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"term":    {query},
		"retmode": {"json"},
		"retmax":  {fmt.Sprintf("%d", max)},
		"sort":    {"relevance"},
	}

	var data pubmedSearchResponse
	if err := httputil.GetJSON(ctx, a.Client, pubmedAPIBase+"/esearch.fcgi?"+params.Encode(), cfg.UserAgent, &data); err != nil {
		return nil, err
	}
	return data.ESearchResult.IDList, nil
}

// fetchArticles runs the efetch step for the resolved IDs.
func (a *PubMedAdapter) fetchArticles(ctx context.Context, ids []string, cfg types.SourcesConfig) ([]pubmedArticle, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"id":      {strings.Join(ids, ",")},
		"retmode": {"xml"},
		"rettype": {"abstract"},
	}

	resp, err := httputil.Get(ctx, a.Client, pubmedAPIBase+"/efetch.fcgi?"+params.Encode(), cfg.UserAgent)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var set pubmedArticleSet
	if err := xml.NewDecoder(resp.Body).Decode(&set); err != nil {
		return nil, fmt.Errorf("parsing PubMed response: %w", err)
	}
	return set.Articles, nil
}

// PubMed E-utilities structures.
type pubmedSearchResponse struct {
	ESearchResult struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

type pubmedArticleSet struct {
	XMLName  xml.Name        `xml:"PubmedArticleSet"`
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	PMID     string         `xml:"MedlineCitation>PMID"`
	Title    string         `xml:"MedlineCitation>Article>ArticleTitle"`
	Abstract string         `xml:"MedlineCitation>Article>Abstract>AbstractText"`
	Year     string         `xml:"MedlineCitation>Article>Journal>JournalIssue>PubDate>Year"`
	Authors  []pubmedAuthor `xml:"MedlineCitation>Article>AuthorList>Author"`
}

type pubmedAuthor struct {
	LastName string `xml:"LastName"`
	ForeName string `xml:"ForeName"`
}
