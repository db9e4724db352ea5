// Package hull defines the parametric hull description (longitudinal
// keel/sheer/deck curves plus measured station templates) and synthesizes
// transverse cross-section curves from it at arbitrary longitudinal
// positions. The package only ever reads a Description; nothing here
// mutates it after loading.
package hull
