package pith

// CleanResult holds the output of the reader-mode cleaning pass.
type CleanResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as a reduced HTML fragment.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// Cleaner reduces a raw HTML document to its readable core.
//
// Cleaning is a black box to the extraction pipeline: the pipeline
// consumes a CleanResult produced elsewhere and never performs the
// reduction itself.
type Cleaner interface {
	// Clean processes raw HTML and returns the title and main content.
	Clean(rawHTML string) (*CleanResult, error)
}

// Segmenter turns a reader-cleaned HTML fragment into ordered content
// blocks. The output order is the filtered document order of the input;
// blocks and their IDs are deterministic for identical input.
type Segmenter interface {
	Segment(cleanedHTML string) ([]ContentBlock, error)
}

// Analyzer derives document metadata from the raw HTML and the segmented
// blocks. Individual heuristics are failure-tolerant: a malformed source
// (embedded structured data, odd markup) makes that heuristic contribute
// nothing and never fails the call.
type Analyzer interface {
	Analyze(rawHTML string, blocks []ContentBlock) (*DocumentMetadata, error)
}

// Extractor runs the full extraction pipeline for one document: segment
// the cleaned HTML, analyze raw HTML and blocks, assemble the envelope.
type Extractor interface {
	// Extract returns the extracted content for the document.
	// Returns EUNPROCESSABLE if segmentation yields zero blocks; a
	// document with nothing to translate is a failure, not an empty
	// success.
	Extract(rawHTML string, cleaned CleanResult, sourceURL string) (*ExtractedContent, error)
}
