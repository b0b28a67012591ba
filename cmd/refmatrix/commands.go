package main

import (
	"context"
	"flag"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/refmatrix/core"
	"github.com/katalvlaran/refmatrix/extract"
	"github.com/katalvlaran/refmatrix/groundtruth"
	"github.com/katalvlaran/refmatrix/refgraph"
	"github.com/katalvlaran/refmatrix/relevance"
	"github.com/katalvlaran/refmatrix/reorder"
	"github.com/katalvlaran/refmatrix/runio"
)

// parsePolicy maps the flag value onto the resolution policy.
func parsePolicy(s string) (refgraph.Policy, error) {
	switch s {
	case "strict":
		return refgraph.Strict, nil
	case "permissive":
		return refgraph.Permissive, nil
	default:
		return 0, fmt.Errorf("%w: %q (want strict or permissive)", refgraph.ErrUnknownPolicy, s)
	}
}

// newRun creates (or resumes) the run directory.
func newRun(out, resume string) (*runio.RunContext, error) {
	var rc *runio.RunContext
	var err error
	if resume != "" {
		rc, err = runio.ResumeRunContext(resume)
	} else {
		rc, err = runio.NewRunContext(out)
	}
	if err != nil {
		return nil, err
	}

	return rc, rc.EnsureDir()
}

// extractionProfile resolves the extraction options from an optional YAML
// profile file.
func extractionProfile(path string) ([]extract.Option, error) {
	if path == "" {
		return nil, nil
	}
	p, err := extract.LoadProfile(path)
	if err != nil {
		return nil, err
	}

	return p.Options(), nil
}

func runExtract(ctx context.Context, args []string, logger *log.Logger) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	src := fs.String("src", getEnvString("REFMATRIX_SOURCE_DIR", "."), "directory of spreadsheet specifications")
	out := fs.String("out", getEnvString("REFMATRIX_OUTPUT_DIR", "extraction_results"), "output root directory")
	profile := fs.String("profile", "", "YAML extraction profile (markers, columns, extensions)")
	policyName := fs.String("policy", getEnvString("REFMATRIX_POLICY", "permissive"), "reference resolution policy: strict|permissive")
	if err := fs.Parse(args); err != nil {
		return err
	}

	policy, err := parsePolicy(*policyName)
	if err != nil {
		return err
	}
	opts, err := extractionProfile(*profile)
	if err != nil {
		return err
	}
	rc, err := newRun(*out, "")
	if err != nil {
		return err
	}

	docs, err := extract.Dir(ctx, *src, logger, opts...)
	if err != nil {
		return err
	}
	g, err := refgraph.Build(docs, policy)
	if err != nil {
		return err
	}
	for _, a := range g.Ambiguous {
		logger.Warn("ambiguous reference kept its first candidate",
			"reference", a.OriginalText, "candidates", a.Candidates)
	}

	res := runio.NewExtractionResult(rc, *src, docs, &g)
	if err := res.Reconcile(); err != nil {
		return err
	}
	path := rc.Path("links_extracted.json")
	if err := runio.SaveExtraction(path, res); err != nil {
		return err
	}

	progress, err := rc.LoadProgress()
	if err != nil {
		return err
	}
	progress.Mark("extract")
	if err := rc.SaveProgress(progress); err != nil {
		return err
	}

	logger.Info("extraction complete",
		"file", path,
		"documents", res.Metadata.TotalDocuments,
		"matched", res.Metadata.TotalMatchedLinks,
		"unmatched", res.Metadata.TotalUnmatchedLinks,
		"virtual", len(g.Virtual))

	return nil
}

func runRebuild(args []string, logger *log.Logger) error {
	fs := flag.NewFlagSet("rebuild", flag.ExitOnError)
	in := fs.String("in", "", "extraction-result JSON to rebuild from (required)")
	out := fs.String("out", getEnvString("REFMATRIX_OUTPUT_DIR", "extraction_results"), "output root directory")
	policyName := fs.String("policy", getEnvString("REFMATRIX_POLICY", "permissive"), "reference resolution policy: strict|permissive")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("rebuild: -in is required")
	}

	policy, err := parsePolicy(*policyName)
	if err != nil {
		return err
	}
	prev, err := runio.LoadExtraction(*in)
	if err != nil {
		return err
	}

	// The human edits extracted_links; the mirrored count is rederived so
	// a forgotten count update cannot poison the reconciliation.
	docs := prev.Documents
	for i := range docs {
		docs[i].ExtractedLinksCount = len(docs[i].ExtractedLinks)
	}

	g, err := refgraph.Build(docs, policy)
	if err != nil {
		return err
	}
	rc, err := newRun(*out, "")
	if err != nil {
		return err
	}
	res := runio.NewExtractionResult(rc, prev.Metadata.SourceDirectory, docs, &g)
	if err := res.Reconcile(); err != nil {
		return err
	}
	path := rc.Path("links_extracted.json")
	if err := runio.SaveExtraction(path, res); err != nil {
		return err
	}

	logger.Info("rebuild complete",
		"file", path,
		"matched", res.Metadata.TotalMatchedLinks,
		"unmatched", res.Metadata.TotalUnmatchedLinks)

	return nil
}

// adjacencyMethods are written as one CSV each by the relevance subcommand.
var adjacencyMethods = []relevance.Method{
	relevance.Direct,
	relevance.Bidirectional,
	relevance.CommonLinks,
	relevance.Combined,
}

func runRelevance(args []string, logger *log.Logger) error {
	fs := flag.NewFlagSet("relevance", flag.ExitOnError)
	in := fs.String("in", "", "extraction-result JSON (required)")
	out := fs.String("out", getEnvString("REFMATRIX_OUTPUT_DIR", "relevance_results"), "output root directory")
	resume := fs.String("resume", "", "existing run directory to resume into")
	policyName := fs.String("policy", getEnvString("REFMATRIX_POLICY", "permissive"), "reference resolution policy: strict|permissive")
	threshold := fs.Float64("threshold", getEnvFloat("REFMATRIX_THRESHOLD", groundtruth.DefaultThreshold), "ground-truth relevance threshold")
	topK := fs.Int("top-k", getEnvInt("REFMATRIX_TOP_K", groundtruth.DefaultTopK), "ground-truth list length cap")
	gtSource := fs.String("gt-source", string(relevance.Combined), "matrix feeding the ground truth: combined|common_links|reference_jaccard")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("relevance: -in is required")
	}

	policy, err := parsePolicy(*policyName)
	if err != nil {
		return err
	}
	res, err := runio.LoadExtraction(*in)
	if err != nil {
		return err
	}
	rc, err := newRun(*out, *resume)
	if err != nil {
		return err
	}
	progress, err := rc.LoadProgress()
	if err != nil {
		return err
	}

	// Rebuild the graph from the (possibly edited) documents rather than
	// trusting the persisted edges; that is the editing contract.
	docs := res.Documents
	for i := range docs {
		docs[i].ExtractedLinksCount = len(docs[i].ExtractedLinks)
	}
	g, err := refgraph.Build(docs, policy)
	if err != nil {
		return err
	}

	ids := relevance.NodeSet(docs, g.Edges)
	adj, err := relevance.Adjacency(g.Edges, ids)
	if err != nil {
		return err
	}

	matrices := make(map[string]*core.Matrix, len(adjacencyMethods)+1)
	for _, method := range adjacencyMethods {
		m, err := relevance.Calculate(adj, method)
		if err != nil {
			return err
		}
		matrices[string(method)] = m
	}
	refJaccard, err := relevance.ReferenceJaccard(docs)
	if err != nil {
		return err
	}
	matrices["reference_jaccard"] = refJaccard

	names := make([]string, 0, len(matrices))
	for name := range matrices {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		stage := "matrix_" + name
		if progress.Done(stage) {
			logger.Debug("skipping completed stage", "stage", stage)
			continue
		}
		path := rc.Path("relevance_" + name + ".csv")
		if err := runio.SaveMatrixCSV(path, matrices[name]); err != nil {
			return err
		}
		progress.Mark(stage)
		logger.Info("saved relevance matrix", "method", name, "file", path)
	}

	source, ok := matrices[*gtSource]
	if !ok {
		return fmt.Errorf("relevance: unknown -gt-source %q", *gtSource)
	}

	// Ground truth ranks real documents only; virtual nodes are artifacts
	// of resolution, not retrievable items.
	realIDs := make([]string, 0, len(docs))
	for _, d := range docs {
		realIDs = append(realIDs, d.ID)
	}
	sort.Strings(realIDs)
	real, err := source.Submatrix(realIDs)
	if err != nil {
		return err
	}
	entries, err := groundtruth.Generate(real, *threshold, *topK)
	if err != nil {
		return err
	}
	if err := runio.SaveGroundTruth(rc.Path("ground_truth.json"), entries); err != nil {
		return err
	}

	summary := runio.BuildSummary(rc, res.Metadata.SourceDirectory, real, len(g.Virtual), entries, *threshold)
	if err := runio.SaveSummary(rc.Path("summary.json"), summary); err != nil {
		return err
	}

	progress.Mark("relevance")
	if err := rc.SaveProgress(progress); err != nil {
		return err
	}

	logger.Info("relevance complete",
		"dir", rc.Dir(),
		"documents", summary.TotalDocuments,
		"virtual", summary.TotalVirtualDocuments,
		"queries", summary.GroundTruth.TotalQueries,
		"mean", summary.Statistics.Mean)

	return nil
}

func runCooccur(args []string, logger *log.Logger) error {
	fs := flag.NewFlagSet("cooccur", flag.ExitOnError)
	in := fs.String("in", "", "extraction-result JSON (required)")
	out := fs.String("out", getEnvString("REFMATRIX_OUTPUT_DIR", "relevance_results"), "output root directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("cooccur: -in is required")
	}

	res, err := runio.LoadExtraction(*in)
	if err != nil {
		return err
	}
	m, err := relevance.Cooccurrence(res.Documents)
	if err != nil {
		return err
	}
	rc, err := newRun(*out, "")
	if err != nil {
		return err
	}
	path := rc.Path("cooccurrence.csv")
	if err := runio.SaveMatrixCSV(path, m); err != nil {
		return err
	}

	logger.Info("co-occurrence matrix saved", "file", path, "size", m.Len())

	return nil
}

// strategies maps the flag spelling onto reorder strategies.
var strategies = map[string]reorder.Strategy{
	"average": reorder.Average,
	"ward":    reorder.Ward,
	"optimal": reorder.WardOptimal,
}

func runReorder(args []string, logger *log.Logger) error {
	fs := flag.NewFlagSet("reorder", flag.ExitOnError)
	matrixPath := fs.String("matrix", "", "labeled matrix CSV to reorder (required)")
	out := fs.String("out", getEnvString("REFMATRIX_OUTPUT_DIR", "reordered_matrices"), "output root directory")
	resume := fs.String("resume", "", "existing run directory to resume into")
	strategyName := fs.String("strategy", "all", "average|ward|optimal|all")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *matrixPath == "" {
		return fmt.Errorf("reorder: -matrix is required")
	}

	var chosen []string
	if *strategyName == "all" {
		chosen = []string{"average", "ward", "optimal"}
	} else if _, ok := strategies[*strategyName]; ok {
		chosen = []string{*strategyName}
	} else {
		return fmt.Errorf("%w: %q", reorder.ErrUnknownStrategy, *strategyName)
	}

	m, err := runio.LoadMatrixCSV(*matrixPath)
	if err != nil {
		return err
	}
	logger.Info("loaded matrix", "file", *matrixPath, "size", m.Len(), "kind", m.DetectKind())

	rc, err := newRun(*out, *resume)
	if err != nil {
		return err
	}
	progress, err := rc.LoadProgress()
	if err != nil {
		return err
	}

	for _, name := range chosen {
		stage := "reorder_" + name
		if progress.Done(stage) {
			logger.Debug("skipping completed stage", "stage", stage)
			continue
		}

		reordered, order, err := reorder.Reorder(m, strategies[name])
		if err != nil {
			return err
		}
		if err := runio.SaveMatrixCSV(rc.Path("reordered_"+name+".csv"), reordered); err != nil {
			return err
		}
		if err := runio.SaveOrder(rc.Path("order_"+name+".txt"), m.IDs(), order); err != nil {
			return err
		}
		progress.Mark(stage)
		if err := rc.SaveProgress(progress); err != nil {
			return err
		}
		logger.Info("reordered matrix saved", "strategy", name, "dir", rc.Dir())
	}

	return nil
}
