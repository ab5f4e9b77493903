// Package styles generates the style dependency map and the style entry files derived from it.
//
// A component depends on the style of every other component its script graph reaches. The
// map records those dependencies per component, and the sequence orders all components so
// that every component comes after the ones it depends on. Style entries import styles in
// that order, so later rules win over the rules they build on.
package styles
