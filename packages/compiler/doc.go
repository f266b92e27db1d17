// Package compiler holds the template compiler front end: parsing soy
// template bodies, making the html structure latent in their raw text
// explicit, and flattening that structure back into normalized text.
//
// Main sub-packages:
//
//   - core: character classes shared by the scanners
//   - util: source files, locations, spans and error reporting
//   - soytree: the template body node types, their source rendering and
//     the tree outline used by tests and the structure listing
//   - soyparse: the command parser and the html rewriter that turns raw
//     text into tags, attributes and comments
//   - passes: raw text coalescing and the desugar pass that lowers html
//     nodes back to raw text
//   - driver: the file pipeline tying the stages together, with manifest
//     loading and per-file parallelism
//
// The command line tool in cmd/soyc-go exposes the pipeline as the
// structure, flatten and check commands.
package compiler
