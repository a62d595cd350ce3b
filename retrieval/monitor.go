package retrieval

import "github.com/helios-eng/helios/core"

// RetrievalMonitor provides hooks to observe the hybrid retrieval process.
// Implement this interface to track intermediate steps during a search.
type RetrievalMonitor interface {
	Start(query string)
	AfterSemanticSearch(results []core.ScoredResult)
	AfterKeywordSearch(results []core.ScoredResult)
	ExactMatchPromoted(source string)
	Finish(results []core.ScoredResult)
}

// noopMonitor is a no-op implementation of RetrievalMonitor
type noopMonitor struct{}

var _ RetrievalMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                             {}
func (n *noopMonitor) AfterSemanticSearch(_ []core.ScoredResult)  {}
func (n *noopMonitor) AfterKeywordSearch(_ []core.ScoredResult)   {}
func (n *noopMonitor) ExactMatchPromoted(_ string)                {}
func (n *noopMonitor) Finish(_ []core.ScoredResult)               {}
