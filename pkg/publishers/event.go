package publishers

import (
	"time"

	"github.com/google/uuid"
	"github.com/samvad-hq/pubmed-buddy/internal/domain"
)

// Event represents the payload published downstream: the flat article mapping
// plus routing metadata.
type Event struct {
	// ID is unique per publish attempt so sinks can drop redeliveries.
	ID          string         `json:"id"`
	PMID        string         `json:"pmid"`
	PMCID       string         `json:"pmcid"`
	Article     map[string]any `json:"article"`
	CollectedAt time.Time      `json:"collected_at"`
}

// NewEvent constructs an Event for an assembled article.
func NewEvent(article domain.PubmedArticle) Event {
	m := article.ToMapping()
	m["abstract"] = article.Abstract
	return Event{
		ID:          uuid.NewString(),
		PMID:        article.PMID.Value,
		PMCID:       article.PMCID.Value,
		Article:     m,
		CollectedAt: time.Now().UTC(),
	}
}

// attributes are attached to queue and topic messages for subscriber filtering.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"event_id": e.ID,
		"pmid":     e.PMID,
		"pmcid":    e.PMCID,
	}
}
