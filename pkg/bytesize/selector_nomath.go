//go:build bytesize_nomath

package bytesize

var defaultSelector Selector = IterativeSelector{}
