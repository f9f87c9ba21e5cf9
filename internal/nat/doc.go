// Package nat implements arithmetic on unsigned magnitudes stored as
// little-endian limb slices. It knows nothing about signs: the bigint
// package applies sign rules on top of it.
//
// Every routine works on spans (sub-slices) so the same code serves whole
// values and the blocks of a recursive multiply or divide. Primitives never
// allocate; Mul, Sqr and Div take one pooled scratch Arena per call and
// thread it through their recursion.
//
// Building with the natdebug tag enables internal consistency checks that
// panic with a "BUG:" message.
package nat
