package common

import "fmt"

// FileHeader returns the "generated, do not edit" banner for a target
// language. It must not carry anything that varies between runs.
func FileHeader(commentPrefix, source string) string {
	if source == "" {
		return fmt.Sprintf("%s Code generated by fourccgen. DO NOT EDIT.", commentPrefix)
	}
	return fmt.Sprintf("%s Code generated by fourccgen from %s. DO NOT EDIT.", commentPrefix, source)
}
