package ads

import "github.com/matsen/cvpubs/internal/record"

// LibraryResponse is the biblib response for a library's documents.
type LibraryResponse struct {
	Documents []string        `json:"documents"` // Bibcodes in this page
	Solr      SolrResult      `json:"solr"`
	Metadata  LibraryMetadata `json:"metadata"`
}

// SolrResult wraps the search engine response embedded in a library page.
type SolrResult struct {
	Response SolrResponse `json:"response"`
}

// SolrResponse holds the requested fields for each document.
type SolrResponse struct {
	NumFound int             `json:"numFound"`
	Start    int             `json:"start"`
	Docs     []record.Record `json:"docs"`
}

// LibraryMetadata describes the library itself.
type LibraryMetadata struct {
	Name         string `json:"name"`
	ID           string `json:"id"`
	NumDocuments int    `json:"num_documents"`
	Public       bool   `json:"public"`
	Owner        string `json:"owner"`
}

// errorResponse is the body ADS sends with error statuses.
type errorResponse struct {
	Error string `json:"error"`
}
