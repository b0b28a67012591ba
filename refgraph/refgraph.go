package refgraph

import (
	"errors"
	"sort"
	"strings"

	"github.com/katalvlaran/refmatrix/core"
	"github.com/katalvlaran/refmatrix/normalize"
)

// Sentinel errors for graph construction.
var (
	// ErrNoDocuments indicates an empty document set.
	ErrNoDocuments = errors.New("refgraph: no documents")

	// ErrDuplicateDocument indicates two documents sharing one id.
	ErrDuplicateDocument = errors.New("refgraph: duplicate document id")

	// ErrUnknownPolicy indicates a Policy value outside the declared set.
	ErrUnknownPolicy = errors.New("refgraph: unknown resolution policy")
)

// Policy selects the fallback behavior for references that do not match
// any real document exactly.
type Policy int

const (
	// Strict resolves exact matches only; leftovers become
	// UnmatchedReference entries.
	Strict Policy = iota

	// Permissive falls back to substring matching and synthesizes a
	// VirtualDocument when nothing matches.
	Permissive
)

// Ambiguity records a reference with more than one viable substring
// candidate. The first candidate (sorted id order) is the one the builder
// picked for the edge.
type Ambiguity struct {
	OriginalText string   `json:"original_text"`
	Normalized   string   `json:"normalized"`
	Candidates   []string `json:"candidates"`
}

// Result is the output of Build.
//
// Count reconciliation invariant: len(Edges) + len(Unmatched) equals the
// sum of all documents' extracted-reference counts, under either policy.
type Result struct {
	// Edges are resolved references; Source is always a real document id.
	Edges []core.Edge

	// Unmatched are references the policy declined to resolve.
	Unmatched []core.UnmatchedReference

	// Virtual are the synthesized nodes, deduplicated by normalized text
	// and sorted by id. Empty under Strict.
	Virtual []core.VirtualDocument

	// Ambiguous are substring resolutions with multiple viable candidates,
	// sorted by normalized text.
	Ambiguous []Ambiguity
}

// resolution is the outcome of resolving one distinct raw reference.
type resolution struct {
	target     string
	matchType  core.MatchType
	candidates []string // >1 viable substring candidates, if any
}

// Build resolves every document's extracted references per policy and
// returns the reference graph.
//
// Steps:
//  1. validate and sort documents by id;
//  2. resolve each distinct raw reference once (resolution is independent
//     of which document cited it);
//  3. emit one Edge (or UnmatchedReference) per (document, reference)
//     pair, in document order then first-seen reference order;
//  4. collect deduplicated virtual nodes and ambiguity diagnostics.
//
// Complexity: O(D·R·L) worst case for substring scans, where D is the
// document count, R the distinct reference count, and L the mean name
// length; exact matches resolve via a hash lookup.
func Build(documents []core.Document, policy Policy) (Result, error) {
	if policy != Strict && policy != Permissive {
		return Result{}, ErrUnknownPolicy
	}
	if len(documents) == 0 {
		return Result{}, ErrNoDocuments
	}

	docs := make([]core.Document, len(documents))
	copy(docs, documents)
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })

	ids := make([]string, len(docs))
	normByID := make(map[string]string, len(docs))
	idsByNorm := make(map[string][]string, len(docs))
	for i, d := range docs {
		if _, dup := normByID[d.ID]; dup {
			return Result{}, ErrDuplicateDocument
		}
		norm := d.NormalizedName
		if norm == "" {
			norm = normalize.Normalize(d.ID)
		}
		ids[i] = d.ID
		normByID[d.ID] = norm
		idsByNorm[norm] = append(idsByNorm[norm], d.ID)
	}

	// Resolve each distinct reference once.
	resolved := make(map[string]resolution)
	for _, d := range docs {
		for _, raw := range d.ExtractedLinks {
			if _, done := resolved[raw]; done {
				continue
			}
			resolved[raw] = resolve(raw, ids, normByID, idsByNorm, policy)
		}
	}

	var res Result
	virtualByNorm := make(map[string]core.VirtualDocument)
	ambiguousByNorm := make(map[string]Ambiguity)
	for _, d := range docs {
		for _, raw := range d.ExtractedLinks {
			r := resolved[raw]
			if r.target == "" {
				res.Unmatched = append(res.Unmatched, core.UnmatchedReference{
					Source:       d.ID,
					OriginalText: raw,
					Normalized:   normalize.Normalize(raw),
				})
				continue
			}
			res.Edges = append(res.Edges, core.Edge{
				Source:       d.ID,
				Target:       r.target,
				OriginalText: raw,
				MatchType:    r.matchType,
			})
			if r.matchType == core.MatchVirtual {
				norm := normalize.Normalize(raw)
				virtualByNorm[norm] = core.VirtualDocument{ID: r.target, NormalizedName: norm}
			}
			if len(r.candidates) > 1 {
				norm := normalize.Normalize(raw)
				ambiguousByNorm[norm] = Ambiguity{
					OriginalText: raw,
					Normalized:   norm,
					Candidates:   r.candidates,
				}
			}
		}
	}

	for _, v := range virtualByNorm {
		res.Virtual = append(res.Virtual, v)
	}
	sort.Slice(res.Virtual, func(i, j int) bool { return res.Virtual[i].ID < res.Virtual[j].ID })
	for _, a := range ambiguousByNorm {
		res.Ambiguous = append(res.Ambiguous, a)
	}
	sort.Slice(res.Ambiguous, func(i, j int) bool { return res.Ambiguous[i].Normalized < res.Ambiguous[j].Normalized })

	return res, nil
}

// resolve maps one raw reference to its resolution under policy.
// ids is the sorted document-id list; tie-breaks depend on that order.
func resolve(raw string, ids []string, normByID map[string]string, idsByNorm map[string][]string, policy Policy) resolution {
	norm := normalize.Normalize(raw)

	// A reference that normalizes to nothing can never name a document;
	// under substring rules it would match everything, so it is declined
	// outright under both policies.
	if norm == "" {
		return resolution{}
	}

	// Exact match first. Normalized-name collisions between real documents
	// are possible; the first id in sorted order wins.
	if matches := idsByNorm[norm]; len(matches) > 0 {
		return resolution{target: matches[0], matchType: core.MatchExact}
	}
	if policy == Strict {
		return resolution{}
	}

	// Substring fallback: the shorter normalized string must be fully
	// contained in the longer one. All viable candidates are collected so
	// ambiguous references can be flagged; the first wins.
	var viable []string
	for _, id := range ids {
		docNorm := normByID[id]
		if len(norm) > len(docNorm) {
			if docNorm != "" && strings.Contains(norm, docNorm) {
				viable = append(viable, id)
			}
		} else if strings.Contains(docNorm, norm) {
			viable = append(viable, id)
		}
	}
	if len(viable) > 0 {
		return resolution{target: viable[0], matchType: core.MatchPartial, candidates: viable}
	}

	// Nothing matched: synthesize a virtual node keyed by normalized text.
	return resolution{target: strings.ReplaceAll(norm, " ", "_"), matchType: core.MatchVirtual}
}
