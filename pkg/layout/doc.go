/*
Copyright © 2025 The speclint Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package layout classifies spec folder paths against the repository layout
// conventions.
//
// Two conventions coexist during the migration period:
//
//	v1: specification/{org}/{Package}[/{Sub}...]
//	v2: specification/{org}/data-plane/{Service}
//	    specification/{org}/resource-manager/{RP.Namespace}/{Service}
//
// Classify splits a repository-relative path into segments and detects the
// layout version structurally: a path is v2 only when a data-plane or
// resource-manager marker segment appears at index two or deeper. The
// package also provides the named casing predicates (IsLowerCase,
// IsPascalCaseAlnum, IsDotJoinedPascalPair, IsCapitalizedAfterPeriods) the
// rule evaluator applies to individual segments.
package layout
