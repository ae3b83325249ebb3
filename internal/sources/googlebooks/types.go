package googlebooks

import (
	"strings"

	"github.com/lepinkainen/libris/internal/search"
)

type volumesResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []volume `json:"items"`
}

type volume struct {
	VolumeInfo volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title               string               `json:"title"`
	Authors             []string             `json:"authors"`
	Publisher           string               `json:"publisher"`
	PublishedDate       string               `json:"publishedDate"`
	Description         string               `json:"description"`
	PageCount           int                  `json:"pageCount"`
	IndustryIdentifiers []industryIdentifier `json:"industryIdentifiers"`
	ImageLinks          imageLinks           `json:"imageLinks"`
	InfoLink            string               `json:"infoLink"`
	CanonicalVolumeLink string               `json:"canonicalVolumeLink"`
}

type industryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

type imageLinks struct {
	Thumbnail      string `json:"thumbnail"`
	SmallThumbnail string `json:"smallThumbnail"`
}

// parseVolume converts one API volume into a candidate record. Volumes
// without a title are rejected.
func parseVolume(item volume) (search.Book, bool) {
	info := item.VolumeInfo
	if info.Title == "" {
		return search.Book{}, false
	}

	author := search.UnknownAuthor
	if len(info.Authors) > 0 {
		author = strings.Join(info.Authors, ", ")
	}

	publisher := info.Publisher
	if publisher == "" {
		publisher = search.UnknownPublisher
	}

	// ISBN-13 wins over ISBN-10 when both are listed.
	isbn := search.UnknownISBN
	for _, id := range info.IndustryIdentifiers {
		if id.Type == "ISBN_13" {
			isbn = id.Identifier
			break
		}
		if id.Type == "ISBN_10" {
			isbn = id.Identifier
		}
	}

	summary := info.Description
	if summary == "" {
		summary = search.NoSummary
	}

	link := info.InfoLink
	if link == "" {
		link = info.CanonicalVolumeLink
	}

	return search.Book{
		Title:         info.Title,
		Author:        author,
		ISBN:          isbn,
		CoverURL:      info.ImageLinks.Thumbnail,
		Summary:       summary,
		PageCount:     info.PageCount,
		Publisher:     publisher,
		PublishedDate: info.PublishedDate,
		Source:        search.SourceGoogleBooks,
		Link:          link,
	}, true
}
