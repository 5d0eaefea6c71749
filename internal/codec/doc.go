// Package codec implements byte-level detection and transcoding between
// on-disk file content and the editor's internal UTF-8 representation.
//
// Detection is deterministic and never fails: BOM markers are checked
// first (UTF-16 LE, UTF-16 BE, UTF-8, in that order), then a valid-UTF-8
// heuristic, with ANSI passthrough as the universal fallback. The same
// Encoding value recorded at load time selects the byte transform applied
// when the document is written back to disk.
package codec
