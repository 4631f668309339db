// Package annotext is an on-device text-annotation engine: it finds,
// expands and labels entity spans (phone numbers, dates, addresses, ...)
// in free text.
//
// What it does:
//
//	A deterministic, dependency-light pipeline that brings together:
//		• Tokenization: codepoint-accurate tokens over Unicode text
//		• Cached features: per-token character n-gram embeddings, built once,
//		  queried many times with masked boundary windows
//		• Span chunking: batched neural scoring + greedy interval packing
//		• Multi-source candidates: learned model, regex rules, datetime grammar
//		• Conflict resolution: transitive overlap clusters, priority-greedy picks
//
// Three public operations, all on the annotator.Annotator type:
//
//	SuggestSelection - grow a tap/click into the intended span
//	ClassifyText     - label an existing selection
//	Annotate         - scan a whole text for every annotation worth surfacing
//
// Everything is organized under focused subpackages:
//
//	annotator/  — the assembled engine and its public API
//	chunker/    — candidate span enumeration, scoring and greedy packing
//	core/       — spans, tokens and classification primitives
//	datetime/   — the date/time grammar
//	features/   — per-token feature extraction and the cached feature matrix
//	matrix/     — float32 dense matrix kernels backing inference
//	model/      — model deserialization, embedding table, feed-forward nets
//	regexrules/ — compiled rule patterns
//	resolver/   — cross-source conflict resolution
//	tokenizer/  — text segmentation
//
// Quick ASCII example:
//
//	"call 555-1234 tomorrow"
//	      └──phone──┘└─date──┘
//
//	two annotations, resolved from three candidate sources.
//
//	go get github.com/annotext/annotext
package annotext
