//go:build enumtable_release

package enumtable

const debugAssertions = false
