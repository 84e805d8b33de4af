// Package defect records problems found on items while they are processed
// and their resolution by quality control.
package defect
