// SPDX-License-Identifier: MPL-2.0

// Package cueutil decodes CUE documents against embedded schemas.
//
// Component catalogs and settings files share the same flow: the document
// is size-checked, unified with a schema definition, validated and decoded.
// Failures name the file and the JSON path of every offending field:
//
//	components.cue: components[2].wcag[0].level: 3 errors in empty disjunction
//
// Rules a schema cannot express are reported as ValidationError values by
// the packages that check them.
package cueutil
