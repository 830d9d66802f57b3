package npm

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"buntab/pkg/config"
)

// SearchResult is one package from a free-text search, in registry
// relevance order.
type SearchResult struct {
	Name        string
	Description string
}

// Search performs a scope/keyword-qualified search against the richer search
// endpoint. The query joins the term with "scope:" and "keywords:" qualifiers
// using literal "+" separators, and the result count is capped at
// config.MaxResults.
func (c *Client) Search(ctx context.Context, term, scope string, keywords []string) ([]SearchResult, error) {
	u := fmt.Sprintf("%s/v2/search?q=%s&size=%d", c.search, searchQuery(term, scope, keywords), config.MaxResults)

	var resp searchResponse
	if err := c.getJSON(ctx, u, nil, &resp); err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(resp.Results))
	for _, r := range resp.Results {
		results = append(results, SearchResult{Name: r.Package.Name, Description: r.Package.Description})
	}
	return results, nil
}

// Suggestions performs a lighter-weight lookup against the suggestions
// endpoint. Scope and keyword qualifiers are not honored there.
func (c *Client) Suggestions(ctx context.Context, term string) ([]SearchResult, error) {
	u := fmt.Sprintf("%s/v2/search/suggestions?q=%s&size=%d", c.search, url.QueryEscape(term), config.MaxResults)

	var items []searchItem
	if err := c.getJSON(ctx, u, nil, &items); err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(items))
	for _, r := range items {
		results = append(results, SearchResult{Name: r.Package.Name, Description: r.Package.Description})
	}
	return results, nil
}

// searchQuery builds the q parameter. The "+" separators between the term
// and the qualifiers are part of the search syntax and must stay literal;
// only the term itself is escaped.
func searchQuery(term, scope string, keywords []string) string {
	parts := []string{url.QueryEscape(term)}
	if scope != "" {
		parts = append(parts, "scope:"+scope)
	}
	if len(keywords) > 0 {
		parts = append(parts, "keywords:"+strings.Join(keywords, ","))
	}
	return strings.Join(parts, "+")
}

type searchResponse struct {
	Total   int          `json:"total"`
	Results []searchItem `json:"results"`
}

type searchItem struct {
	Package packageSummary `json:"package"`
}

type packageSummary struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}
