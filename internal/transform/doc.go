// Package transform holds the per-file compilers the tree compiler dispatches to.
//
// Every transformer works in place inside an output tree: it reads a source file, writes the
// compiled sibling (`<base>.js` or `<base>.css`) and removes or keeps the original according to
// its kind. The module format and build mode travel with every call in a Target value, so two
// passes over different trees never share state.
//
// Scripts and plain CSS go through esbuild. Less and Sass sources are compiled by external
// commands (lessc, sass) before esbuild post-processes the CSS. Single-file components are split
// into their script and style blocks, which are then handed to the other two transformers.
package transform
